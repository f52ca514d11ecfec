// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish

import "context"

/*
Repository defines persistence for dishes and their child rows.

Each method is a single store call (LoadChildren issues three independent reads).
Child deletes are delete-if-exists and never fail on absence, so any sequence of
them is safe to retry.
*/
type Repository interface {
	Create(context context.Context, dish *Dish) error
	FindByID(context context.Context, id string) (*Dish, error)
	ListByOwner(context context.Context, ownerID string) ([]*Dish, error)
	LoadChildren(context context.Context, dish *Dish) error

	// UpdateContent writes the owner-editable columns plus status, rejection reason and updated_at.
	UpdateContent(context context.Context, dish *Dish) (*Dish, error)
	UpdateStatus(context context.Context, id string, change StatusChange) (*Dish, error)

	InsertIngredients(context context.Context, dishID string, ingredients []Ingredient) error
	InsertSteps(context context.Context, dishID string, steps []Step) error
	InsertCategories(context context.Context, dishID string, categoryIDs []string) error

	DeleteIngredients(context context.Context, dishID string) error
	DeleteSteps(context context.Context, dishID string) error
	DeleteCategories(context context.Context, dishID string) error
	Delete(context context.Context, id string) error
}
