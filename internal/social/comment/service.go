// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/validate"
	"github.com/taibuivan/dishly/internal/recipe/dish"
	"github.com/taibuivan/dishly/pkg/uuid"
)

// DishFinder looks up the commented dish.
type DishFinder interface {
	FindByID(context context.Context, id string) (*dish.Dish, error)
}

// Service handles comment business logic.
type Service struct {
	repo   Repository
	dishes DishFinder
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new comment [Service].
func NewService(repo Repository, dishes DishFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		dishes: dishes,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns the comments on a dish the caller can see.
func (service *Service) List(context context.Context, dishID, callerID string, isAdmin bool) ([]*Comment, error) {
	if err := service.checkVisible(context, dishID, callerID, isAdmin); err != nil {
		return nil, err
	}
	return service.repo.ListByDish(context, dishID)
}

// Create posts a comment on a dish the caller can see.
func (service *Service) Create(context context.Context, dishID, userID, body string) (*Comment, error) {
	body = strings.TrimSpace(body)

	validator := &validate.Validator{}
	validator.Required(FieldBody, body).MaxLen(FieldBody, body, maxBodyLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.checkVisible(context, dishID, userID, false); err != nil {
		return nil, err
	}

	now := service.now()
	comment := &Comment{
		ID:        uuid.New(),
		DishID:    dishID,
		UserID:    userID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("dish_id", dishID),
	)
	return comment, nil
}

// Delete tombstones a comment. Authors may delete their own; admins any.
func (service *Service) Delete(context context.Context, id, callerID string, isAdmin bool) error {
	comment, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}
	if comment.UserID != callerID && !isAdmin {
		return apperr.Forbidden("You can only delete your own comments")
	}
	if comment.IsDeleted {
		return nil
	}

	if err := service.repo.SoftDelete(context, id, service.now()); err != nil {
		return err
	}

	service.logger.InfoContext(context, "comment_deleted",
		slog.String("comment_id", id),
		slog.Bool("by_admin", comment.UserID != callerID),
	)
	return nil
}

func (service *Service) checkVisible(context context.Context, dishID, callerID string, isAdmin bool) error {
	target, err := service.dishes.FindByID(context, dishID)
	if err != nil {
		return err
	}
	if !target.VisibleTo(callerID, isAdmin) {
		return dish.ErrNotFound
	}
	return nil
}
