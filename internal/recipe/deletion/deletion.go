// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package deletion removes a dish together with everything that references it.

The store offers no multi-statement transaction, so deletion is a fixed
sequence of single-call stages:

	verify → comments → ratings → collection_items → ingredients → steps → categories → dish

The first failing stage stops the run. Stages already applied stay applied;
every stage is a delete-if-exists, so running the whole sequence again finishes
the job.
*/
package deletion

import (
	"context"
	"fmt"
)

// Stage names one step of the deletion sequence.
type Stage string

const (
	StageVerify          Stage = "verify"
	StageComments        Stage = "comments"
	StageRatings         Stage = "ratings"
	StageCollectionItems Stage = "collection_items"
	StageIngredients     Stage = "ingredients"
	StageSteps           Stage = "steps"
	StageCategories      Stage = "categories"
	StageDish            Stage = "dish"
)

// StageError reports the stage at which a deletion stopped.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("dish deletion failed at stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Report lists the stages a deletion run completed, in order.
type Report struct {
	DishID    string  `json:"dish_id"`
	Completed []Stage `json:"completed"`
}

// # Dependencies

// DishStore is the part of the dish repository used by the orchestrator.
type DishStore interface {
	DeleteIngredients(context context.Context, dishID string) error
	DeleteSteps(context context.Context, dishID string) error
	DeleteCategories(context context.Context, dishID string) error
	Delete(context context.Context, id string) error
}

// CommentPurger hard-deletes the comments of a dish.
type CommentPurger interface {
	DeleteByDish(context context.Context, dishID string) error
}

// RatingPurger deletes the ratings of a dish.
type RatingPurger interface {
	DeleteByDish(context context.Context, dishID string) error
}

// CollectionPurger removes a dish from every user's collections.
type CollectionPurger interface {
	DeleteItemsByDish(context context.Context, dishID string) error
}
