// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

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

// DishFinder looks up a dish so it can be checked for visibility before being collected.
type DishFinder interface {
	FindByID(context context.Context, id string) (*dish.Dish, error)
}

// # Service Layer

// Service manages the collections a user curates by hand. System collections
// can be listed and read through it but never edited.
type Service struct {
	repo   Repository
	syncer *Syncer
	dishes DishFinder
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new collection [Service].
func NewService(repo Repository, syncer *Syncer, dishes DishFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		syncer: syncer,
		dishes: dishes,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns the user's collections, system ones first. Missing system
// collections are provisioned on the way.
func (service *Service) List(context context.Context, userID string) ([]*Collection, error) {
	if err := service.syncer.EnsureSystemCollections(context, userID); err != nil {
		service.logger.WarnContext(context, "system_collections_provision_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
	return service.repo.ListByUser(context, userID)
}

// Create adds a custom collection.
func (service *Service) Create(context context.Context, userID string, input Input) (*Collection, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := service.now()
	collection := &Collection{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Type:        TypeCustom,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := service.repo.Create(context, collection); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "collection_created",
		slog.String("collection_id", collection.ID),
		slog.String("user_id", userID),
	)
	return collection, nil
}

// Update renames a custom collection.
func (service *Service) Update(context context.Context, id, userID string, input Input) (*Collection, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	collection, err := service.editable(context, id, userID)
	if err != nil {
		return nil, err
	}

	collection.Name = strings.TrimSpace(input.Name)
	collection.Description = strings.TrimSpace(input.Description)
	collection.UpdatedAt = service.now()
	return service.repo.Update(context, collection)
}

/*
Delete removes a custom collection and its items.

Description: Items go first so the collection row has no dependants; a failure
after the item delete leaves an empty collection that a retry removes.
*/
func (service *Service) Delete(context context.Context, id, userID string) error {
	if _, err := service.editable(context, id, userID); err != nil {
		return err
	}
	if err := service.repo.DeleteItemsByCollection(context, id); err != nil {
		return err
	}
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "collection_deleted", slog.String("collection_id", id))
	return nil
}

// Items lists the dishes in one of the user's collections, newest first.
func (service *Service) Items(context context.Context, id, userID string) ([]Item, error) {
	if _, err := service.owned(context, id, userID); err != nil {
		return nil, err
	}
	return service.repo.ListItems(context, id)
}

// AddItem puts a dish the user can see into one of their custom collections.
func (service *Service) AddItem(context context.Context, id, userID, dishID string) error {
	validator := &validate.Validator{}
	if err := validator.UUID(FieldDishID, dishID).Err(); err != nil {
		return err
	}

	collection, err := service.editable(context, id, userID)
	if err != nil {
		return err
	}

	target, err := service.dishes.FindByID(context, dishID)
	if err != nil {
		return err
	}
	if !target.VisibleTo(userID, false) {
		return dish.ErrNotFound
	}

	return service.repo.AddItem(context, Item{
		CollectionID: collection.ID,
		DishID:       dishID,
		UserID:       userID,
		AddedAt:      service.now(),
	})
}

// RemoveItem takes a dish out of one of the user's custom collections.
func (service *Service) RemoveItem(context context.Context, id, userID, dishID string) error {
	if _, err := service.editable(context, id, userID); err != nil {
		return err
	}
	return service.repo.RemoveItem(context, id, dishID)
}

// # Helpers

// owned loads a collection of userID. Other users' collections do not exist for the caller.
func (service *Service) owned(context context.Context, id, userID string) (*Collection, error) {
	collection, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if collection.UserID != userID {
		return nil, ErrNotFound
	}
	return collection, nil
}

// editable is [Service.owned] restricted to custom collections.
func (service *Service) editable(context context.Context, id, userID string) (*Collection, error) {
	collection, err := service.owned(context, id, userID)
	if err != nil {
		return nil, err
	}
	if collection.IsSystem() {
		return nil, apperr.Forbidden("System collections are maintained automatically")
	}
	return collection, nil
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 100)
	validator.MaxLen(FieldDescription, input.Description, 1000)
	return validator.Err()
}
