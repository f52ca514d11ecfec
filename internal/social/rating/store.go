// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"context"

	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/dberr"
	"github.com/taibuivan/dishly/internal/platform/relstore"
)

// Repository defines persistence for ratings. Every write is safe to repeat.
type Repository interface {
	// Upsert writes the like, overwriting an existing row for the same (dish, user).
	Upsert(context context.Context, rating Rating) error
	Delete(context context.Context, dishID, userID string) error
	Exists(context context.Context, dishID, userID string) (bool, error)
	CountByDish(context context.Context, dishID string) (int, error)
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

func (repository *StoreRepository) Upsert(context context.Context, rating Rating) error {
	err := repository.store.Upsert(context, schema.SocialDishRating.Table,
		[]relstore.Row{{
			schema.SocialDishRating.DishID:     rating.DishID,
			schema.SocialDishRating.UserID:     rating.UserID,
			schema.SocialDishRating.RatingType: ratingTypeLike,
			schema.SocialDishRating.UpdatedAt:  rating.UpdatedAt,
		}},
		schema.SocialDishRating.DishID, schema.SocialDishRating.UserID)
	return dberr.Wrap(err, "upsert_rating")
}

func (repository *StoreRepository) Delete(context context.Context, dishID, userID string) error {
	err := repository.store.Delete(context, schema.SocialDishRating.Table, relstore.Where(
		relstore.Eq(schema.SocialDishRating.DishID, dishID),
		relstore.Eq(schema.SocialDishRating.UserID, userID),
	))
	return dberr.Wrap(err, "delete_rating")
}

func (repository *StoreRepository) Exists(context context.Context, dishID, userID string) (bool, error) {
	rows, err := repository.store.Select(context, schema.SocialDishRating.Table, relstore.Where(
		relstore.Eq(schema.SocialDishRating.DishID, dishID),
		relstore.Eq(schema.SocialDishRating.UserID, userID),
	))
	if err != nil {
		return false, dberr.Wrap(err, "find_rating")
	}
	return len(rows) > 0, nil
}

func (repository *StoreRepository) CountByDish(context context.Context, dishID string) (int, error) {
	rows, err := repository.store.Select(context, schema.SocialDishRating.Table,
		relstore.Where(relstore.Eq(schema.SocialDishRating.DishID, dishID)))
	if err != nil {
		return 0, dberr.Wrap(err, "count_ratings")
	}
	return len(rows), nil
}

// DeleteByDish removes every rating of the dish.
func (repository *StoreRepository) DeleteByDish(context context.Context, dishID string) error {
	err := repository.store.Delete(context, schema.SocialDishRating.Table,
		relstore.Where(relstore.Eq(schema.SocialDishRating.DishID, dishID)))
	return dberr.Wrap(err, "delete_dish_ratings")
}
