// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deletion

import (
	"context"
	"log/slog"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/recipe/dish"
)

// stageFunc applies one deletion stage to a dish.
type stageFunc func(context.Context, string) error

// DishFinder loads the dish being deleted.
type DishFinder interface {
	FindByID(context context.Context, id string) (*dish.Dish, error)
}

// Orchestrator runs the dish deletion sequence.
//
// Every stage runs through the service-role store, so rows written by other
// users (their comments, ratings and collection items) can be removed.
type Orchestrator struct {
	finder      DishFinder
	dishes      DishStore
	comments    CommentPurger
	ratings     RatingPurger
	collections CollectionPurger
	logger      *slog.Logger
}

// NewOrchestrator constructs a new deletion [Orchestrator].
func NewOrchestrator(finder DishFinder, dishes DishStore, comments CommentPurger, ratings RatingPurger, collections CollectionPurger, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		finder:      finder,
		dishes:      dishes,
		comments:    comments,
		ratings:     ratings,
		collections: collections,
		logger:      logger,
	}
}

/*
DeleteDish removes a dish on behalf of its owner.

Returns:
  - Report: stages completed, including on failure
  - error: NotFound, Forbidden, or a StoreError wrapping [*StageError]
*/
func (orchestrator *Orchestrator) DeleteDish(context context.Context, dishID, ownerID string) (Report, error) {
	return orchestrator.run(context, dishID, func(target *dish.Dish) error {
		if target.OwnerID == ownerID {
			return nil
		}
		if target.VisibleTo(ownerID, false) {
			return apperr.Forbidden("You do not own this dish")
		}
		return dish.ErrNotFound
	})
}

// DeleteDishByAdmin removes any dish without an ownership check.
func (orchestrator *Orchestrator) DeleteDishByAdmin(context context.Context, dishID string) (Report, error) {
	return orchestrator.run(context, dishID, func(*dish.Dish) error { return nil })
}

// run executes the stages in order and stops at the first failure.
func (orchestrator *Orchestrator) run(context context.Context, dishID string, authorize func(*dish.Dish) error) (Report, error) {
	report := Report{DishID: dishID}

	// 1. Verify
	target, err := orchestrator.finder.FindByID(context, dishID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return report, err
		}
		return report, orchestrator.fail(context, report, StageVerify, err)
	}
	if err := authorize(target); err != nil {
		return report, err
	}
	report.Completed = append(report.Completed, StageVerify)

	// 2. Dependants, then the dish itself
	stages := []struct {
		stage Stage
		apply stageFunc
	}{
		{StageComments, orchestrator.comments.DeleteByDish},
		{StageRatings, orchestrator.ratings.DeleteByDish},
		{StageCollectionItems, orchestrator.collections.DeleteItemsByDish},
		{StageIngredients, orchestrator.dishes.DeleteIngredients},
		{StageSteps, orchestrator.dishes.DeleteSteps},
		{StageCategories, orchestrator.dishes.DeleteCategories},
		{StageDish, orchestrator.dishes.Delete},
	}

	for _, step := range stages {
		if err := step.apply(context, dishID); err != nil {
			return report, orchestrator.fail(context, report, step.stage, err)
		}
		report.Completed = append(report.Completed, step.stage)
	}

	orchestrator.logger.InfoContext(context, "dish_deleted",
		slog.String("dish_id", dishID),
		slog.String("owner_id", target.OwnerID),
	)
	return report, nil
}

func (orchestrator *Orchestrator) fail(context context.Context, report Report, stage Stage, err error) error {
	orchestrator.logger.ErrorContext(context, "dish_deletion_stage_failed",
		slog.String("dish_id", report.DishID),
		slog.String("stage", string(stage)),
		slog.Int("completed", len(report.Completed)),
		slog.Any("error", err),
	)
	return apperr.StoreError("The dish was only partly deleted; retry to finish", &StageError{Stage: stage, Err: err})
}
