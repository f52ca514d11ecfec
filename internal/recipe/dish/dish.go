// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dish owns the dish entity, its child relations and its moderation
lifecycle.

A dish moves through a small cyclic state machine:

	draft    --submit_for_review--> pending
	pending  --approve-->           approved
	pending  --reject(reason)-->    rejected
	approved --edit-->              pending
	rejected --edit-->              pending
	any      --make_private-->      draft

Every status change is followed by a resync of the owner's system collections,
which is the only place membership of "published" and "private" is decided.
*/
package dish

import (
	"errors"
	"fmt"
	"time"
)

// # Status

// Status is the moderation state of a dish.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the four known states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// # Actions

// Action is a lifecycle event applied to a dish.
type Action string

const (
	// Owner actions.
	ActionSubmitForReview Action = "submit_for_review"
	ActionMakePrivate     Action = "make_private"
	ActionEdit            Action = "edit"

	// Admin actions.
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// ErrInvalidTransition is returned by [NextStatus] when action does not apply to the current status.
var ErrInvalidTransition = errors.New("dish: invalid status transition")

/*
NextStatus computes the state a dish enters when action is applied.

Submitting an already pending dish is accepted so a retried submit is harmless.
Editing from any state forces re-moderation.

Returns:
  - Status: the new state
  - error: wraps [ErrInvalidTransition] when the action is not allowed from current
*/
func NextStatus(current Status, action Action) (Status, error) {
	if !current.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, current)
	}

	switch action {
	case ActionMakePrivate:
		return StatusDraft, nil
	case ActionEdit:
		return StatusPending, nil
	case ActionSubmitForReview:
		if current == StatusDraft || current == StatusPending {
			return StatusPending, nil
		}
	case ActionApprove:
		if current == StatusPending {
			return StatusApproved, nil
		}
	case ActionReject:
		if current == StatusPending {
			return StatusRejected, nil
		}
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}

	return "", fmt.Errorf("%w: cannot %s a %s dish", ErrInvalidTransition, action, current)
}

// # Entities

// Dish is a recipe owned by a single user.
type Dish struct {
	ID              string     `json:"id"`
	OwnerID         string     `json:"owner_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Servings        int        `json:"servings"`
	ImageURL        *string    `json:"image_url"`
	Status          Status     `json:"status"`
	ModeratedAt     *time.Time `json:"moderated_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Children are only populated by [Repository.LoadChildren].
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Steps       []Step       `json:"steps,omitempty"`
	CategoryIDs []string     `json:"category_ids,omitempty"`
}

// VisibleTo reports whether callerID may read the dish. Anyone may read an
// approved dish; everything else is restricted to its owner and admins.
func (dish *Dish) VisibleTo(callerID string, isAdmin bool) bool {
	return dish.Status == StatusApproved || isAdmin || (callerID != "" && dish.OwnerID == callerID)
}

// Ingredient is an unordered line of a dish's ingredient list.
type Ingredient struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	Unit           string  `json:"unit"`
	ExternalFoodID *string `json:"external_food_id,omitempty"`
}

// Step is one instruction; positions run 1..N in display order.
type Step struct {
	ID              string  `json:"id"`
	Position        int     `json:"position"`
	Description     string  `json:"description"`
	ImageURL        *string `json:"image_url,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
}

// # Inputs

// Input is the owner-supplied content of a dish, used by both create and update.
type Input struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Servings    int               `json:"servings"`
	ImageURL    *string           `json:"image_url"`
	Ingredients []IngredientInput `json:"ingredients"`
	Steps       []StepInput       `json:"steps"`
	CategoryIDs []string          `json:"category_ids"`
}

// IngredientInput is one requested ingredient line.
type IngredientInput struct {
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	Unit           string  `json:"unit"`
	ExternalFoodID *string `json:"external_food_id"`
}

// StepInput is one requested step. Its position is implied by its index.
type StepInput struct {
	Description     string  `json:"description"`
	ImageURL        *string `json:"image_url"`
	DurationMinutes *int    `json:"duration_minutes"`
}

// Decision is an admin moderation verdict.
type Decision struct {
	Status Status `json:"status"`
	Reason string `json:"reason"`
}

// StatusChange is the persisted effect of a lifecycle transition.
type StatusChange struct {
	Status Status

	// RejectionReason is written as-is; nil clears it.
	RejectionReason *string

	// ModeratedAt is only written when non-nil.
	ModeratedAt *time.Time

	UpdatedAt time.Time
}

// Validation field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldServings    = "servings"
	FieldIngredients = "ingredients"
	FieldSteps       = "steps"
	FieldCategoryIDs = "category_ids"
	FieldStatus      = "status"
	FieldReason      = "reason"
	FieldAction      = "action"
)
