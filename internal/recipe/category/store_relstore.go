// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"

	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/dberr"
	"github.com/taibuivan/dishly/internal/platform/relstore"
	"github.com/taibuivan/dishly/pkg/slice"
)

// StoreRepository implements [Repository] over the relation store.
type StoreRepository struct {
	store relstore.Store
}

// NewStoreRepository constructs a new [StoreRepository].
func NewStoreRepository(store relstore.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

func (repository *StoreRepository) List(context context.Context) ([]*Category, error) {
	rows, err := repository.store.Select(context, schema.RecipeCategory.Table, nil,
		relstore.Asc(schema.RecipeCategory.SortOrder), relstore.Asc(schema.RecipeCategory.Name))
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	return slice.Map(rows, scanCategory), nil
}

func (repository *StoreRepository) Missing(context context.Context, ids []string) ([]string, error) {
	ids = slice.Unique(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := repository.store.Select(context, schema.RecipeCategory.Table,
		relstore.Where(relstore.In(schema.RecipeCategory.ID, ids)))
	if err != nil {
		return nil, dberr.Wrap(err, "find_categories")
	}

	found := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		found[row.String(schema.RecipeCategory.ID)] = struct{}{}
	}

	return slice.Filter(ids, func(id string) bool {
		_, ok := found[id]
		return !ok
	}), nil
}

func (repository *StoreRepository) Create(context context.Context, category *Category) error {
	_, err := repository.store.Insert(context, schema.RecipeCategory.Table, relstore.Row{
		schema.RecipeCategory.ID:        category.ID,
		schema.RecipeCategory.Name:      category.Name,
		schema.RecipeCategory.Slug:      category.Slug,
		schema.RecipeCategory.SortOrder: category.SortOrder,
	})
	return dberr.Wrap(err, "create_category")
}

func scanCategory(row relstore.Row) *Category {
	return &Category{
		ID:        row.String(schema.RecipeCategory.ID),
		Name:      row.String(schema.RecipeCategory.Name),
		Slug:      row.String(schema.RecipeCategory.Slug),
		SortOrder: row.Int(schema.RecipeCategory.SortOrder),
	}
}
