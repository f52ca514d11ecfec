// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dish

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/dberr"
	"github.com/taibuivan/dishly/internal/platform/relstore"
	"github.com/taibuivan/dishly/pkg/slice"
	"github.com/taibuivan/dishly/pkg/uuid"
)

// ErrNotFound is returned when no dish matches the requested id.
var ErrNotFound = apperr.NotFound("Dish")

// StoreRepository implements [Repository] over the relation store.
type StoreRepository struct {
	store relstore.Store
}

// NewStoreRepository constructs a new [StoreRepository].
func NewStoreRepository(store relstore.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

// # Dish Rows

func (repository *StoreRepository) Create(context context.Context, dish *Dish) error {
	_, err := repository.store.Insert(context, schema.RecipeDish.Table, relstore.Row{
		schema.RecipeDish.ID:              dish.ID,
		schema.RecipeDish.OwnerID:         dish.OwnerID,
		schema.RecipeDish.Title:           dish.Title,
		schema.RecipeDish.Description:     dish.Description,
		schema.RecipeDish.Servings:        dish.Servings,
		schema.RecipeDish.ImageURL:        dish.ImageURL,
		schema.RecipeDish.Status:          string(dish.Status),
		schema.RecipeDish.ModeratedAt:     dish.ModeratedAt,
		schema.RecipeDish.RejectionReason: dish.RejectionReason,
		schema.RecipeDish.CreatedAt:       dish.CreatedAt,
		schema.RecipeDish.UpdatedAt:       dish.UpdatedAt,
	})
	return dberr.Wrap(err, "create_dish")
}

func (repository *StoreRepository) FindByID(context context.Context, id string) (*Dish, error) {
	rows, err := repository.store.Select(context, schema.RecipeDish.Table,
		relstore.Where(relstore.Eq(schema.RecipeDish.ID, id)))
	if err != nil {
		return nil, dberr.Wrap(err, "find_dish")
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return scanDish(rows[0]), nil
}

func (repository *StoreRepository) ListByOwner(context context.Context, ownerID string) ([]*Dish, error) {
	rows, err := repository.store.Select(context, schema.RecipeDish.Table,
		relstore.Where(relstore.Eq(schema.RecipeDish.OwnerID, ownerID)),
		relstore.Desc(schema.RecipeDish.CreatedAt))
	if err != nil {
		return nil, dberr.Wrap(err, "list_dishes_by_owner")
	}
	return slice.Map(rows, scanDish), nil
}

/*
LoadChildren hydrates ingredients, steps and category ids.

The three reads are independent and run concurrently; the first failure is returned.
*/
func (repository *StoreRepository) LoadChildren(context context.Context, dish *Dish) error {
	group, groupCtx := errgroup.WithContext(context)
	byDish := func(column string) relstore.Filter {
		return relstore.Where(relstore.Eq(column, dish.ID))
	}

	var ingredients []Ingredient
	group.Go(func() error {
		rows, err := repository.store.Select(groupCtx, schema.RecipeIngredient.Table,
			byDish(schema.RecipeIngredient.DishID), relstore.Asc(schema.RecipeIngredient.ID))
		if err != nil {
			return dberr.Wrap(err, "list_ingredients")
		}
		ingredients = slice.Map(rows, scanIngredient)
		return nil
	})

	var steps []Step
	group.Go(func() error {
		rows, err := repository.store.Select(groupCtx, schema.RecipeStep.Table,
			byDish(schema.RecipeStep.DishID), relstore.Asc(schema.RecipeStep.Position))
		if err != nil {
			return dberr.Wrap(err, "list_steps")
		}
		steps = slice.Map(rows, scanStep)
		return nil
	})

	var categoryIDs []string
	group.Go(func() error {
		rows, err := repository.store.Select(groupCtx, schema.RecipeDishCategory.Table,
			byDish(schema.RecipeDishCategory.DishID), relstore.Asc(schema.RecipeDishCategory.CategoryID))
		if err != nil {
			return dberr.Wrap(err, "list_dish_categories")
		}
		categoryIDs = slice.Map(rows, func(row relstore.Row) string {
			return row.String(schema.RecipeDishCategory.CategoryID)
		})
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	dish.Ingredients = ingredients
	dish.Steps = steps
	dish.CategoryIDs = categoryIDs
	return nil
}

func (repository *StoreRepository) UpdateContent(context context.Context, dish *Dish) (*Dish, error) {
	return repository.update(context, "update_dish", dish.ID, relstore.Row{
		schema.RecipeDish.Title:           dish.Title,
		schema.RecipeDish.Description:     dish.Description,
		schema.RecipeDish.Servings:        dish.Servings,
		schema.RecipeDish.ImageURL:        dish.ImageURL,
		schema.RecipeDish.Status:          string(dish.Status),
		schema.RecipeDish.RejectionReason: dish.RejectionReason,
		schema.RecipeDish.UpdatedAt:       dish.UpdatedAt,
	})
}

func (repository *StoreRepository) UpdateStatus(context context.Context, id string, change StatusChange) (*Dish, error) {
	patch := relstore.Row{
		schema.RecipeDish.Status:          string(change.Status),
		schema.RecipeDish.RejectionReason: change.RejectionReason,
		schema.RecipeDish.UpdatedAt:       change.UpdatedAt,
	}
	if change.ModeratedAt != nil {
		patch[schema.RecipeDish.ModeratedAt] = *change.ModeratedAt
	}
	return repository.update(context, "update_dish_status", id, patch)
}

func (repository *StoreRepository) update(context context.Context, action, id string, patch relstore.Row) (*Dish, error) {
	rows, err := repository.store.Update(context, schema.RecipeDish.Table,
		relstore.Where(relstore.Eq(schema.RecipeDish.ID, id)), patch)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return scanDish(rows[0]), nil
}

func (repository *StoreRepository) Delete(context context.Context, id string) error {
	err := repository.store.Delete(context, schema.RecipeDish.Table,
		relstore.Where(relstore.Eq(schema.RecipeDish.ID, id)))
	return dberr.Wrap(err, "delete_dish")
}

// # Child Rows

func (repository *StoreRepository) InsertIngredients(context context.Context, dishID string, ingredients []Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	rows := slice.Map(ingredients, func(ingredient Ingredient) relstore.Row {
		if ingredient.ID == "" {
			ingredient.ID = uuid.New()
		}
		return relstore.Row{
			schema.RecipeIngredient.ID:             ingredient.ID,
			schema.RecipeIngredient.DishID:         dishID,
			schema.RecipeIngredient.Name:           ingredient.Name,
			schema.RecipeIngredient.Amount:         ingredient.Amount,
			schema.RecipeIngredient.Unit:           ingredient.Unit,
			schema.RecipeIngredient.ExternalFoodID: ingredient.ExternalFoodID,
		}
	})
	_, err := repository.store.Insert(context, schema.RecipeIngredient.Table, rows...)
	return dberr.Wrap(err, "insert_ingredients")
}

func (repository *StoreRepository) InsertSteps(context context.Context, dishID string, steps []Step) error {
	if len(steps) == 0 {
		return nil
	}
	rows := slice.Map(steps, func(step Step) relstore.Row {
		if step.ID == "" {
			step.ID = uuid.New()
		}
		return relstore.Row{
			schema.RecipeStep.ID:              step.ID,
			schema.RecipeStep.DishID:          dishID,
			schema.RecipeStep.Position:        step.Position,
			schema.RecipeStep.Description:     step.Description,
			schema.RecipeStep.ImageURL:        step.ImageURL,
			schema.RecipeStep.DurationMinutes: step.DurationMinutes,
		}
	})
	_, err := repository.store.Insert(context, schema.RecipeStep.Table, rows...)
	return dberr.Wrap(err, "insert_steps")
}

func (repository *StoreRepository) InsertCategories(context context.Context, dishID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := slice.Map(categoryIDs, func(categoryID string) relstore.Row {
		return relstore.Row{
			schema.RecipeDishCategory.DishID:     dishID,
			schema.RecipeDishCategory.CategoryID: categoryID,
		}
	})
	err := repository.store.UpsertIgnoreConflict(context, schema.RecipeDishCategory.Table, rows,
		schema.RecipeDishCategory.DishID, schema.RecipeDishCategory.CategoryID)
	return dberr.Wrap(err, "insert_dish_categories")
}

func (repository *StoreRepository) DeleteIngredients(context context.Context, dishID string) error {
	err := repository.store.Delete(context, schema.RecipeIngredient.Table,
		relstore.Where(relstore.Eq(schema.RecipeIngredient.DishID, dishID)))
	return dberr.Wrap(err, "delete_ingredients")
}

func (repository *StoreRepository) DeleteSteps(context context.Context, dishID string) error {
	err := repository.store.Delete(context, schema.RecipeStep.Table,
		relstore.Where(relstore.Eq(schema.RecipeStep.DishID, dishID)))
	return dberr.Wrap(err, "delete_steps")
}

func (repository *StoreRepository) DeleteCategories(context context.Context, dishID string) error {
	err := repository.store.Delete(context, schema.RecipeDishCategory.Table,
		relstore.Where(relstore.Eq(schema.RecipeDishCategory.DishID, dishID)))
	return dberr.Wrap(err, "delete_dish_categories")
}

// # Row Mapping

func scanDish(row relstore.Row) *Dish {
	return &Dish{
		ID:              row.String(schema.RecipeDish.ID),
		OwnerID:         row.String(schema.RecipeDish.OwnerID),
		Title:           row.String(schema.RecipeDish.Title),
		Description:     row.String(schema.RecipeDish.Description),
		Servings:        row.Int(schema.RecipeDish.Servings),
		ImageURL:        row.StringPtr(schema.RecipeDish.ImageURL),
		Status:          Status(row.String(schema.RecipeDish.Status)),
		ModeratedAt:     row.TimePtr(schema.RecipeDish.ModeratedAt),
		RejectionReason: row.StringPtr(schema.RecipeDish.RejectionReason),
		CreatedAt:       row.Time(schema.RecipeDish.CreatedAt),
		UpdatedAt:       row.Time(schema.RecipeDish.UpdatedAt),
	}
}

func scanIngredient(row relstore.Row) Ingredient {
	return Ingredient{
		ID:             row.String(schema.RecipeIngredient.ID),
		Name:           row.String(schema.RecipeIngredient.Name),
		Amount:         row.Float(schema.RecipeIngredient.Amount),
		Unit:           row.String(schema.RecipeIngredient.Unit),
		ExternalFoodID: row.StringPtr(schema.RecipeIngredient.ExternalFoodID),
	}
}

func scanStep(row relstore.Row) Step {
	return Step{
		ID:              row.String(schema.RecipeStep.ID),
		Position:        row.Int(schema.RecipeStep.Position),
		Description:     row.String(schema.RecipeStep.Description),
		ImageURL:        row.StringPtr(schema.RecipeStep.ImageURL),
		DurationMinutes: row.IntPtr(schema.RecipeStep.DurationMinutes),
	}
}
