// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"time"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/dberr"
	"github.com/taibuivan/dishly/internal/platform/relstore"
	"github.com/taibuivan/dishly/pkg/slice"
)

// ErrNotFound is returned when no comment matches the requested id.
var ErrNotFound = apperr.NotFound("Comment")

// Repository defines persistence for comments.
type Repository interface {
	Create(context context.Context, comment *Comment) error
	FindByID(context context.Context, id string) (*Comment, error)
	ListByDish(context context.Context, dishID string) ([]*Comment, error)
	SoftDelete(context context.Context, id string, at time.Time) error
	DeleteByDish(context context.Context, dishID string) error
}

// StoreRepository implements [Repository] over the relation store.
type StoreRepository struct {
	store relstore.Store
}

// NewStoreRepository constructs a new [StoreRepository].
func NewStoreRepository(store relstore.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

func (repository *StoreRepository) Create(context context.Context, comment *Comment) error {
	_, err := repository.store.Insert(context, schema.SocialComment.Table, relstore.Row{
		schema.SocialComment.ID:        comment.ID,
		schema.SocialComment.DishID:    comment.DishID,
		schema.SocialComment.UserID:    comment.UserID,
		schema.SocialComment.Body:      comment.Body,
		schema.SocialComment.IsDeleted: comment.IsDeleted,
		schema.SocialComment.CreatedAt: comment.CreatedAt,
		schema.SocialComment.UpdatedAt: comment.UpdatedAt,
	})
	return dberr.Wrap(err, "create_comment")
}

func (repository *StoreRepository) FindByID(context context.Context, id string) (*Comment, error) {
	rows, err := repository.store.Select(context, schema.SocialComment.Table,
		relstore.Where(relstore.Eq(schema.SocialComment.ID, id)))
	if err != nil {
		return nil, dberr.Wrap(err, "find_comment")
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return scanComment(rows[0]), nil
}

// ListByDish returns the dish's comments oldest first, tombstones included.
func (repository *StoreRepository) ListByDish(context context.Context, dishID string) ([]*Comment, error) {
	rows, err := repository.store.Select(context, schema.SocialComment.Table,
		relstore.Where(relstore.Eq(schema.SocialComment.DishID, dishID)),
		relstore.Asc(schema.SocialComment.CreatedAt))
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	return slice.Map(rows, scanComment), nil
}

// SoftDelete blanks the body and flags the comment. Repeating it is harmless.
func (repository *StoreRepository) SoftDelete(context context.Context, id string, at time.Time) error {
	_, err := repository.store.Update(context, schema.SocialComment.Table,
		relstore.Where(relstore.Eq(schema.SocialComment.ID, id)),
		relstore.Row{
			schema.SocialComment.Body:      "",
			schema.SocialComment.IsDeleted: true,
			schema.SocialComment.UpdatedAt: at,
		})
	return dberr.Wrap(err, "soft_delete_comment")
}

// DeleteByDish hard-deletes every comment of the dish.
func (repository *StoreRepository) DeleteByDish(context context.Context, dishID string) error {
	err := repository.store.Delete(context, schema.SocialComment.Table,
		relstore.Where(relstore.Eq(schema.SocialComment.DishID, dishID)))
	return dberr.Wrap(err, "delete_dish_comments")
}

func scanComment(row relstore.Row) *Comment {
	return &Comment{
		ID:        row.String(schema.SocialComment.ID),
		DishID:    row.String(schema.SocialComment.DishID),
		UserID:    row.String(schema.SocialComment.UserID),
		Body:      row.String(schema.SocialComment.Body),
		IsDeleted: row.Bool(schema.SocialComment.IsDeleted),
		CreatedAt: row.Time(schema.SocialComment.CreatedAt),
		UpdatedAt: row.Time(schema.SocialComment.UpdatedAt),
	}
}
