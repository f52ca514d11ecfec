// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/validate"
	"github.com/taibuivan/dishly/pkg/pointer"
	"github.com/taibuivan/dishly/pkg/slice"
	"github.com/taibuivan/dishly/pkg/uuid"
)

// # Collaborators

// Resyncer re-applies a dish's status to its owner's system collections.
type Resyncer interface {
	Resync(context context.Context, dishID, userID string, status Status) error
}

// CategoryChecker rejects category ids that do not exist.
type CategoryChecker interface {
	EnsureExist(context context.Context, ids []string) error
}

// # Service Layer

// Service is the dish lifecycle controller. It validates payloads, persists
// status transitions and keeps the owner's system collections in step.
type Service struct {
	repo               Repository
	categories         CategoryChecker
	collections        Resyncer
	logger             *slog.Logger
	resyncOnModeration bool
	now                func() time.Time
}

// Option customizes a [Service].
type Option func(*Service)

// WithResyncOnModeration makes [Service.Moderate] resync the owner's collections
// in the same call.
func WithResyncOnModeration(enabled bool) Option {
	return func(service *Service) { service.resyncOnModeration = enabled }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs a new dish [Service].
func NewService(repo Repository, categories CategoryChecker, collections Resyncer, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		repo:        repo,
		categories:  categories,
		collections: collections,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// # Owner Operations

/*
Create stores a new draft dish with its children and registers it in the
owner's system collections.

Description: Categories are checked before anything is written. The children
are inserted as one concurrent batch; any failure fails the create, leaving the
dish row in place (no rollback). Collection registration is tolerant: a failure
is logged and the dish is still returned.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: Input

Returns:
  - *Dish: the created dish with children
  - error: Validation, StoreError
*/
func (service *Service) Create(context context.Context, ownerID string, input Input) (*Dish, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := service.categories.EnsureExist(context, input.CategoryIDs); err != nil {
		return nil, err
	}

	now := service.now()
	dish := &Dish{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Servings:    input.Servings,
		ImageURL:    input.ImageURL,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, dish); err != nil {
		service.logger.ErrorContext(context, "dish_create_failed",
			slog.String("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := service.insertChildren(context, dish, input); err != nil {
		service.logger.ErrorContext(context, "dish_children_insert_failed",
			slog.String("dish_id", dish.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := service.collections.Resync(context, dish.ID, ownerID, dish.Status); err != nil {
		service.logger.WarnContext(context, "dish_collection_registration_failed",
			slog.String("dish_id", dish.ID),
			slog.Any("error", err),
		)
	}

	service.logger.InfoContext(context, "dish_created",
		slog.String("dish_id", dish.ID),
		slog.String("owner_id", ownerID),
	)
	return dish, nil
}

/*
Update replaces the content of an owned dish and sends it back to moderation.

Description: The dish row is rewritten first (status pending, rejection reason
cleared) so an approved dish can never carry unmoderated content. Children are
then replaced wholesale: every existing row is deleted and the new set inserted,
steps renumbered 1..N in payload order.

Returns:
  - *Dish: the updated dish with its new children
  - error: NotFound, Forbidden, Validation, StoreError
*/
func (service *Service) Update(context context.Context, dishID, ownerID string, input Input) (*Dish, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := service.owned(context, dishID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := service.categories.EnsureExist(context, input.CategoryIDs); err != nil {
		return nil, err
	}

	next, err := NextStatus(existing.Status, ActionEdit)
	if err != nil {
		return nil, apperr.Conflict(err.Error())
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Description = strings.TrimSpace(input.Description)
	existing.Servings = input.Servings
	existing.ImageURL = input.ImageURL
	existing.Status = next
	existing.RejectionReason = nil
	existing.UpdatedAt = service.now()

	updated, err := service.repo.UpdateContent(context, existing)
	if err != nil {
		return nil, err
	}

	if err := service.clearChildren(context, dishID); err != nil {
		service.logger.ErrorContext(context, "dish_children_clear_failed",
			slog.String("dish_id", dishID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := service.insertChildren(context, updated, input); err != nil {
		service.logger.ErrorContext(context, "dish_children_insert_failed",
			slog.String("dish_id", dishID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := service.collections.Resync(context, dishID, ownerID, updated.Status); err != nil {
		service.logger.WarnContext(context, "dish_collection_resync_failed",
			slog.String("dish_id", dishID),
			slog.Any("error", err),
		)
	}

	service.logger.InfoContext(context, "dish_updated", slog.String("dish_id", dishID))
	return updated, nil
}

/*
UpdateStatus applies an owner action (submit_for_review or make_private) and
resyncs the owner's system collections.

Description: The new status is persisted before the resync. If the resync
fails the status change stands and a StoreError is returned; repeating the call
(or calling Resync) heals the membership.

Returns:
  - *Dish: the dish in its new status
  - error: NotFound, Forbidden, Validation (unknown action), Conflict (transition
    not allowed), StoreError
*/
func (service *Service) UpdateStatus(context context.Context, dishID, ownerID string, action Action) (*Dish, error) {
	if action != ActionSubmitForReview && action != ActionMakePrivate {
		return nil, validate.RequiredError(FieldAction, fmt.Sprintf("Must be one of: %s, %s", ActionSubmitForReview, ActionMakePrivate))
	}

	existing, err := service.owned(context, dishID, ownerID)
	if err != nil {
		return nil, err
	}

	next, err := NextStatus(existing.Status, action)
	if err != nil {
		return nil, apperr.Conflict(fmt.Sprintf("Cannot %s a dish that is %s", action, existing.Status))
	}

	updated, err := service.repo.UpdateStatus(context, dishID, StatusChange{
		Status:    next,
		UpdatedAt: service.now(),
	})
	if err != nil {
		return nil, err
	}

	if err := service.collections.Resync(context, dishID, ownerID, next); err != nil {
		service.logger.ErrorContext(context, "dish_status_resync_failed",
			slog.String("dish_id", dishID),
			slog.String("old_status", string(existing.Status)),
			slog.String("new_status", string(next)),
			slog.Any("error", err),
		)
		return nil, apperr.StoreError("The status was saved but collections could not be updated; retry to finish", err)
	}

	service.logger.InfoContext(context, "dish_status_changed",
		slog.String("dish_id", dishID),
		slog.String("old_status", string(existing.Status)),
		slog.String("new_status", string(next)),
	)
	return updated, nil
}

// Resync re-applies the current status to the owner's system collections.
// Owners may resync their own dishes; admins may resync any.
func (service *Service) Resync(context context.Context, dishID, callerID string, isAdmin bool) error {
	dish, err := service.repo.FindByID(context, dishID)
	if err != nil {
		return err
	}
	if !isAdmin {
		if err := ownership(dish, callerID); err != nil {
			return err
		}
	}

	if err := service.collections.Resync(context, dish.ID, dish.OwnerID, dish.Status); err != nil {
		service.logger.ErrorContext(context, "dish_resync_failed",
			slog.String("dish_id", dishID),
			slog.Any("error", err),
		)
		return apperr.StoreError("Collections could not be fully updated; retry to finish", err)
	}
	return nil
}

// # Admin Operations

/*
Moderate records an admin verdict on a pending dish.

Description: Approving clears any previous rejection reason; rejecting requires
one. Collections are only resynced here when the service was built with
[WithResyncOnModeration]; otherwise the owner's next status call, or an explicit
Resync, moves the dish between "private" and "published".

Returns:
  - *Dish: the moderated dish
  - error: Validation, NotFound, Conflict (dish not pending), StoreError
*/
func (service *Service) Moderate(context context.Context, dishID string, decision Decision) (*Dish, error) {
	reason := strings.TrimSpace(decision.Reason)

	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, string(decision.Status), string(StatusApproved), string(StatusRejected))
	validator.Custom(FieldReason, decision.Status == StatusRejected && reason == "", "A reason is required when rejecting")
	validator.MaxLen(FieldReason, reason, 1000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	existing, err := service.repo.FindByID(context, dishID)
	if err != nil {
		return nil, err
	}

	action := ActionApprove
	if decision.Status == StatusRejected {
		action = ActionReject
	}

	next, err := NextStatus(existing.Status, action)
	if err != nil {
		return nil, apperr.Conflict(fmt.Sprintf("Only pending dishes can be moderated; this dish is %s", existing.Status))
	}

	now := service.now()
	change := StatusChange{Status: next, ModeratedAt: &now, UpdatedAt: now}
	if next == StatusRejected {
		change.RejectionReason = pointer.To(reason)
	}

	updated, err := service.repo.UpdateStatus(context, dishID, change)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "dish_moderated",
		slog.String("dish_id", dishID),
		slog.String("status", string(next)),
	)

	if service.resyncOnModeration {
		if err := service.collections.Resync(context, dishID, updated.OwnerID, next); err != nil {
			service.logger.ErrorContext(context, "dish_moderation_resync_failed",
				slog.String("dish_id", dishID),
				slog.Any("error", err),
			)
			return nil, apperr.StoreError("The verdict was saved but collections could not be updated; retry to finish", err)
		}
	}

	return updated, nil
}

// # Reads

// Get returns a dish with its children if the caller may see it.
// Dishes the caller may not see are reported as not found.
func (service *Service) Get(context context.Context, dishID, callerID string, isAdmin bool) (*Dish, error) {
	dish, err := service.repo.FindByID(context, dishID)
	if err != nil {
		return nil, err
	}
	if !dish.VisibleTo(callerID, isAdmin) {
		return nil, ErrNotFound
	}
	if err := service.repo.LoadChildren(context, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

// ListByOwner returns the owner's dishes, newest first, without children.
func (service *Service) ListByOwner(context context.Context, ownerID string) ([]*Dish, error) {
	return service.repo.ListByOwner(context, ownerID)
}

// # Helpers

// owned loads a dish and checks the caller owns it.
func (service *Service) owned(context context.Context, dishID, callerID string) (*Dish, error) {
	dish, err := service.repo.FindByID(context, dishID)
	if err != nil {
		return nil, err
	}
	if err := ownership(dish, callerID); err != nil {
		return nil, err
	}
	return dish, nil
}

// ownership returns Forbidden for a visible dish owned by someone else and
// NotFound for an invisible one, so unpublished dishes do not leak.
func ownership(dish *Dish, callerID string) error {
	if dish.OwnerID == callerID {
		return nil
	}
	if dish.VisibleTo(callerID, false) {
		return apperr.Forbidden("You do not own this dish")
	}
	return ErrNotFound
}

// insertChildren writes ingredients, steps and category links as one batch.
// Every member runs even if another fails; the first error is returned.
func (service *Service) insertChildren(context context.Context, dish *Dish, input Input) error {
	ingredients := slice.Map(input.Ingredients, func(in IngredientInput) Ingredient {
		return Ingredient{
			ID:             uuid.New(),
			Name:           strings.TrimSpace(in.Name),
			Amount:         in.Amount,
			Unit:           strings.TrimSpace(in.Unit),
			ExternalFoodID: in.ExternalFoodID,
		}
	})

	steps := make([]Step, len(input.Steps))
	for i, in := range input.Steps {
		steps[i] = Step{
			ID:              uuid.New(),
			Position:        i + 1,
			Description:     strings.TrimSpace(in.Description),
			ImageURL:        in.ImageURL,
			DurationMinutes: in.DurationMinutes,
		}
	}

	categoryIDs := slice.Unique(input.CategoryIDs)

	var group errgroup.Group
	group.Go(func() error { return service.repo.InsertIngredients(context, dish.ID, ingredients) })
	group.Go(func() error { return service.repo.InsertSteps(context, dish.ID, steps) })
	group.Go(func() error { return service.repo.InsertCategories(context, dish.ID, categoryIDs) })
	if err := group.Wait(); err != nil {
		return err
	}

	dish.Ingredients = ingredients
	dish.Steps = steps
	dish.CategoryIDs = categoryIDs
	return nil
}

// clearChildren deletes every child row of a dish. All three deletes are
// attempted; their errors are joined.
func (service *Service) clearChildren(context context.Context, dishID string) error {
	var errs [3]error
	var group errgroup.Group
	group.Go(func() error { errs[0] = service.repo.DeleteIngredients(context, dishID); return nil })
	group.Go(func() error { errs[1] = service.repo.DeleteSteps(context, dishID); return nil })
	group.Go(func() error { errs[2] = service.repo.DeleteCategories(context, dishID); return nil })
	_ = group.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return apperr.StoreError("The dish details could not be replaced; retry the update", err)
	}
	return nil
}

// validateInput checks the owner-supplied payload.
func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validator.MaxLen(FieldDescription, input.Description, 5000)
	validator.Positive(FieldServings, input.Servings)

	for i, ingredient := range input.Ingredients {
		field := fmt.Sprintf("%s[%d]", FieldIngredients, i)
		validator.Required(field+".name", ingredient.Name).MaxLen(field+".name", ingredient.Name, 200)
		validator.NonNegative(field+".amount", ingredient.Amount)
		validator.MaxLen(field+".unit", ingredient.Unit, 50)
	}

	for i, step := range input.Steps {
		field := fmt.Sprintf("%s[%d]", FieldSteps, i)
		validator.Required(field+".description", step.Description)
		validator.Custom(field+".duration_minutes", step.DurationMinutes != nil && *step.DurationMinutes < 0, "Must not be negative")
	}

	for i, id := range input.CategoryIDs {
		validator.UUID(fmt.Sprintf("%s[%d]", FieldCategoryIDs, i), id)
	}

	return validator.Err()
}
