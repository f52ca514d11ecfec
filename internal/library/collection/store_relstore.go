// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/dberr"
	"github.com/taibuivan/dishly/internal/platform/relstore"
	"github.com/taibuivan/dishly/pkg/slice"
)

// ErrNotFound is returned when no collection matches the requested id.
var ErrNotFound = apperr.NotFound("Collection")

// StoreRepository implements [Repository] over the relation store.
type StoreRepository struct {
	store relstore.Store
}

// NewStoreRepository constructs a new [StoreRepository].
func NewStoreRepository(store relstore.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

// # Collections

func (repository *StoreRepository) ListByUser(context context.Context, userID string) ([]*Collection, error) {
	rows, err := repository.store.Select(context, schema.LibraryCollection.Table,
		relstore.Where(relstore.Eq(schema.LibraryCollection.UserID, userID)),
		relstore.Desc(schema.LibraryCollection.Type),
		relstore.Asc(schema.LibraryCollection.CreatedAt))
	if err != nil {
		return nil, dberr.Wrap(err, "list_collections")
	}
	return slice.Map(rows, scanCollection), nil
}

func (repository *StoreRepository) FindByID(context context.Context, id string) (*Collection, error) {
	rows, err := repository.store.Select(context, schema.LibraryCollection.Table,
		relstore.Where(relstore.Eq(schema.LibraryCollection.ID, id)))
	if err != nil {
		return nil, dberr.Wrap(err, "find_collection")
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return scanCollection(rows[0]), nil
}

func (repository *StoreRepository) SystemCollections(context context.Context, userID string) (map[Subtype]string, error) {
	rows, err := repository.store.Select(context, schema.LibraryCollection.Table,
		relstore.Where(
			relstore.Eq(schema.LibraryCollection.UserID, userID),
			relstore.Eq(schema.LibraryCollection.Type, string(TypeSystem)),
		))
	if err != nil {
		return nil, dberr.Wrap(err, "list_system_collections")
	}

	ids := make(map[Subtype]string, len(rows))
	for _, row := range rows {
		ids[Subtype(row.String(schema.LibraryCollection.SystemSubtype))] = row.String(schema.LibraryCollection.ID)
	}
	return ids, nil
}

func (repository *StoreRepository) EnsureSystem(context context.Context, collections []*Collection) error {
	if len(collections) == 0 {
		return nil
	}
	rows := slice.Map(collections, collectionRow)
	err := repository.store.UpsertIgnoreConflict(context, schema.LibraryCollection.Table, rows,
		schema.LibraryCollection.UserID, schema.LibraryCollection.SystemSubtype)
	return dberr.Wrap(err, "ensure_system_collections")
}

func (repository *StoreRepository) Create(context context.Context, collection *Collection) error {
	_, err := repository.store.Insert(context, schema.LibraryCollection.Table, collectionRow(collection))
	return dberr.Wrap(err, "create_collection")
}

func (repository *StoreRepository) Update(context context.Context, collection *Collection) (*Collection, error) {
	rows, err := repository.store.Update(context, schema.LibraryCollection.Table,
		relstore.Where(relstore.Eq(schema.LibraryCollection.ID, collection.ID)),
		relstore.Row{
			schema.LibraryCollection.Name:        collection.Name,
			schema.LibraryCollection.Description: collection.Description,
			schema.LibraryCollection.UpdatedAt:   collection.UpdatedAt,
		})
	if err != nil {
		return nil, dberr.Wrap(err, "update_collection")
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return scanCollection(rows[0]), nil
}

func (repository *StoreRepository) Delete(context context.Context, id string) error {
	err := repository.store.Delete(context, schema.LibraryCollection.Table,
		relstore.Where(relstore.Eq(schema.LibraryCollection.ID, id)))
	return dberr.Wrap(err, "delete_collection")
}

// # Items

func (repository *StoreRepository) AddItem(context context.Context, item Item) error {
	err := repository.store.UpsertIgnoreConflict(context, schema.LibraryCollectionItem.Table,
		[]relstore.Row{{
			schema.LibraryCollectionItem.CollectionID: item.CollectionID,
			schema.LibraryCollectionItem.DishID:       item.DishID,
			schema.LibraryCollectionItem.UserID:       item.UserID,
			schema.LibraryCollectionItem.AddedAt:      item.AddedAt,
		}},
		schema.LibraryCollectionItem.CollectionID,
		schema.LibraryCollectionItem.DishID,
		schema.LibraryCollectionItem.UserID)
	return dberr.Wrap(err, "add_collection_item")
}

func (repository *StoreRepository) RemoveItem(context context.Context, collectionID, dishID string) error {
	err := repository.store.Delete(context, schema.LibraryCollectionItem.Table,
		relstore.Where(
			relstore.Eq(schema.LibraryCollectionItem.CollectionID, collectionID),
			relstore.Eq(schema.LibraryCollectionItem.DishID, dishID),
		))
	return dberr.Wrap(err, "remove_collection_item")
}

func (repository *StoreRepository) ListItems(context context.Context, collectionID string) ([]Item, error) {
	rows, err := repository.store.Select(context, schema.LibraryCollectionItem.Table,
		relstore.Where(relstore.Eq(schema.LibraryCollectionItem.CollectionID, collectionID)),
		relstore.Desc(schema.LibraryCollectionItem.AddedAt))
	if err != nil {
		return nil, dberr.Wrap(err, "list_collection_items")
	}
	return slice.Map(rows, func(row relstore.Row) Item {
		return Item{
			CollectionID: row.String(schema.LibraryCollectionItem.CollectionID),
			DishID:       row.String(schema.LibraryCollectionItem.DishID),
			UserID:       row.String(schema.LibraryCollectionItem.UserID),
			AddedAt:      row.Time(schema.LibraryCollectionItem.AddedAt),
		}
	}), nil
}

func (repository *StoreRepository) DeleteItemsByCollection(context context.Context, collectionID string) error {
	err := repository.store.Delete(context, schema.LibraryCollectionItem.Table,
		relstore.Where(relstore.Eq(schema.LibraryCollectionItem.CollectionID, collectionID)))
	return dberr.Wrap(err, "delete_collection_items")
}

// DeleteItemsByDish removes the dish from every collection of every user.
func (repository *StoreRepository) DeleteItemsByDish(context context.Context, dishID string) error {
	err := repository.store.Delete(context, schema.LibraryCollectionItem.Table,
		relstore.Where(relstore.Eq(schema.LibraryCollectionItem.DishID, dishID)))
	return dberr.Wrap(err, "delete_dish_collection_items")
}

// # Row Mapping

func collectionRow(collection *Collection) relstore.Row {
	var subtype *string
	if collection.SystemSubtype != nil {
		s := string(*collection.SystemSubtype)
		subtype = &s
	}
	return relstore.Row{
		schema.LibraryCollection.ID:            collection.ID,
		schema.LibraryCollection.UserID:        collection.UserID,
		schema.LibraryCollection.Name:          collection.Name,
		schema.LibraryCollection.Description:   collection.Description,
		schema.LibraryCollection.Type:          string(collection.Type),
		schema.LibraryCollection.SystemSubtype: subtype,
		schema.LibraryCollection.CreatedAt:     collection.CreatedAt,
		schema.LibraryCollection.UpdatedAt:     collection.UpdatedAt,
	}
}

func scanCollection(row relstore.Row) *Collection {
	collection := &Collection{
		ID:          row.String(schema.LibraryCollection.ID),
		UserID:      row.String(schema.LibraryCollection.UserID),
		Name:        row.String(schema.LibraryCollection.Name),
		Description: row.String(schema.LibraryCollection.Description),
		Type:        Type(row.String(schema.LibraryCollection.Type)),
		CreatedAt:   row.Time(schema.LibraryCollection.CreatedAt),
		UpdatedAt:   row.Time(schema.LibraryCollection.UpdatedAt),
	}
	if !row.IsNull(schema.LibraryCollection.SystemSubtype) {
		subtype := Subtype(row.String(schema.LibraryCollection.SystemSubtype))
		collection.SystemSubtype = &subtype
	}
	return collection
}
