// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/validate"
	"github.com/taibuivan/dishly/internal/recipe/dish"
)

// DishFinder looks up the rated dish.
type DishFinder interface {
	FindByID(context context.Context, id string) (*dish.Dish, error)
}

// LikedCollections mirrors likes into the liker's "liked" system collection.
type LikedCollections interface {
	AddLikedDish(context context.Context, dishID, likerID, ownerID string) error
	RemoveLikedDish(context context.Context, dishID, likerID string) error
}

// # Service Layer

// Service is the rating toggle.
type Service struct {
	repo        Repository
	dishes      DishFinder
	collections LikedCollections
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new rating [Service].
func NewService(repo Repository, dishes DishFinder, collections LikedCollections, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		dishes:      dishes,
		collections: collections,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

/*
SetRating likes (1) or unlikes (0) a dish for userID.

Description: The rating row is written first, then the liker's "liked"
collection follows. Both writes are idempotent, so when the collection write
fails the caller gets a StoreError and may simply repeat the call.

Parameters:
  - context: context.Context
  - dishID: string
  - userID: string
  - value: int (0 or 1)

Returns:
  - Summary: the like state after the change
  - error: Validation, NotFound (missing dish, or liking an invisible one), StoreError
*/
func (service *Service) SetRating(context context.Context, dishID, userID string, value int) (Summary, error) {
	validator := &validate.Validator{}
	validator.Range(FieldValue, value, ValueNone, ValueLiked)
	if err := validator.Err(); err != nil {
		return Summary{}, err
	}

	// Withdrawing a like only needs the dish to exist: a liker keeps the right
	// to unlike after the owner takes the dish out of "approved".
	if value == ValueNone {
		target, err := service.dishes.FindByID(context, dishID)
		if err != nil {
			return Summary{}, err
		}
		if err := service.unlike(context, target, userID); err != nil {
			return Summary{}, err
		}
	} else {
		target, err := service.visibleDish(context, dishID, userID)
		if err != nil {
			return Summary{}, err
		}
		if err := service.like(context, target, userID); err != nil {
			return Summary{}, err
		}
	}

	service.logger.InfoContext(context, "dish_rating_set",
		slog.String("dish_id", dishID),
		slog.String("user_id", userID),
		slog.Int("value", value),
	)
	return service.summary(context, dishID, userID)
}

// Summary returns the like count of a dish and whether userID likes it.
func (service *Service) Summary(context context.Context, dishID, userID string) (Summary, error) {
	if _, err := service.visibleDish(context, dishID, userID); err != nil {
		return Summary{}, err
	}
	return service.summary(context, dishID, userID)
}

func (service *Service) like(context context.Context, target *dish.Dish, userID string) error {
	if err := service.repo.Upsert(context, Rating{DishID: target.ID, UserID: userID, UpdatedAt: service.now()}); err != nil {
		return err
	}
	if err := service.collections.AddLikedDish(context, target.ID, userID, target.OwnerID); err != nil {
		service.logger.ErrorContext(context, "liked_collection_add_failed",
			slog.String("dish_id", target.ID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return apperr.StoreError("The like was saved but your liked collection could not be updated; retry to finish", err)
	}
	return nil
}

func (service *Service) unlike(context context.Context, target *dish.Dish, userID string) error {
	if err := service.repo.Delete(context, target.ID, userID); err != nil {
		return err
	}
	if err := service.collections.RemoveLikedDish(context, target.ID, userID); err != nil {
		service.logger.ErrorContext(context, "liked_collection_remove_failed",
			slog.String("dish_id", target.ID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return apperr.StoreError("The like was removed but your liked collection could not be updated; retry to finish", err)
	}
	return nil
}

func (service *Service) summary(context context.Context, dishID, userID string) (Summary, error) {
	likes, err := service.repo.CountByDish(context, dishID)
	if err != nil {
		return Summary{}, err
	}

	liked := false
	if userID != "" {
		if liked, err = service.repo.Exists(context, dishID, userID); err != nil {
			return Summary{}, err
		}
	}
	return Summary{DishID: dishID, Likes: likes, Liked: liked}, nil
}

// visibleDish returns the dish if userID may see it; otherwise NotFound.
func (service *Service) visibleDish(context context.Context, dishID, userID string) (*dish.Dish, error) {
	target, err := service.dishes.FindByID(context, dishID)
	if err != nil {
		return nil, err
	}
	if !target.VisibleTo(userID, false) {
		return nil, dish.ErrNotFound
	}
	return target, nil
}
