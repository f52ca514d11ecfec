// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deletion_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishly/internal/library/collection"
	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/relstore"
	"github.com/taibuivan/dishly/internal/platform/relstore/memstore"
	"github.com/taibuivan/dishly/internal/recipe/deletion"
	"github.com/taibuivan/dishly/internal/recipe/dish"
	"github.com/taibuivan/dishly/internal/social/comment"
	"github.com/taibuivan/dishly/internal/social/rating"
	"github.com/taibuivan/dishly/pkg/uuid"
)

var errBoom = errors.New("boom")

type fixture struct {
	store        *memstore.Store
	dishes       *dish.StoreRepository
	syncer       *collection.Syncer
	ratings      *rating.StoreRepository
	comments     *comment.StoreRepository
	orchestrator *deletion.Orchestrator
}

func newFixture() *fixture {
	store := memstore.New(memstore.WithUniqueKeys(schema.UniqueKeys()))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	dishes := dish.NewStoreRepository(store)
	collections := collection.NewStoreRepository(store)
	ratings := rating.NewStoreRepository(store)
	comments := comment.NewStoreRepository(store)
	return &fixture{
		store:        store,
		dishes:       dishes,
		syncer:       collection.NewSyncer(collections, nil, logger),
		ratings:      ratings,
		comments:     comments,
		orchestrator: deletion.NewOrchestrator(dishes, dishes, comments, ratings, collections, logger),
	}
}

// seed writes a dish with children, a comment, a like from another user and
// system collection memberships for both users.
func (f *fixture) seed(t *testing.T, ownerID string, status dish.Status) string {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	d := &dish.Dish{ID: uuid.New(), OwnerID: ownerID, Title: "Bánh xèo", Servings: 3, Status: status, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.dishes.Create(ctx, d))
	require.NoError(t, f.dishes.InsertIngredients(ctx, d.ID, []dish.Ingredient{{Name: "Rice flour", Amount: 200, Unit: "g"}}))
	require.NoError(t, f.dishes.InsertSteps(ctx, d.ID, []dish.Step{{Position: 1, Description: "Mix"}, {Position: 2, Description: "Fry"}}))
	require.NoError(t, f.dishes.InsertCategories(ctx, d.ID, []string{uuid.New()}))

	fanID := uuid.New()
	require.NoError(t, f.comments.Create(ctx, &comment.Comment{ID: uuid.New(), DishID: d.ID, UserID: fanID, Body: "Crispy!", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, f.ratings.Upsert(ctx, rating.Rating{DishID: d.ID, UserID: fanID, UpdatedAt: now}))
	require.NoError(t, f.syncer.AddLikedDish(ctx, d.ID, fanID, ownerID))
	require.NoError(t, f.syncer.Resync(ctx, d.ID, ownerID, status))
	return d.ID
}

// residual counts every row that still references dishID.
func (f *fixture) residual(dishID string) map[string]int {
	counts := map[string]int{
		schema.RecipeDish.Table:            f.store.Count(schema.RecipeDish.Table, relstore.Where(relstore.Eq(schema.RecipeDish.ID, dishID))),
		schema.RecipeIngredient.Table:      f.store.Count(schema.RecipeIngredient.Table, relstore.Where(relstore.Eq(schema.RecipeIngredient.DishID, dishID))),
		schema.RecipeStep.Table:            f.store.Count(schema.RecipeStep.Table, relstore.Where(relstore.Eq(schema.RecipeStep.DishID, dishID))),
		schema.RecipeDishCategory.Table:    f.store.Count(schema.RecipeDishCategory.Table, relstore.Where(relstore.Eq(schema.RecipeDishCategory.DishID, dishID))),
		schema.SocialComment.Table:         f.store.Count(schema.SocialComment.Table, relstore.Where(relstore.Eq(schema.SocialComment.DishID, dishID))),
		schema.SocialDishRating.Table:      f.store.Count(schema.SocialDishRating.Table, relstore.Where(relstore.Eq(schema.SocialDishRating.DishID, dishID))),
		schema.LibraryCollectionItem.Table: f.store.Count(schema.LibraryCollectionItem.Table, relstore.Where(relstore.Eq(schema.LibraryCollectionItem.DishID, dishID))),
	}
	for table, n := range counts {
		if n == 0 {
			delete(counts, table)
		}
	}
	return counts
}

func TestOrchestrator_DeleteDishLeavesNoResidue(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID := uuid.New()

	dishID := f.seed(t, ownerID, dish.StatusApproved)
	otherID := f.seed(t, ownerID, dish.StatusApproved)
	require.NotEmpty(t, f.residual(dishID))

	report, err := f.orchestrator.DeleteDish(ctx, dishID, ownerID)
	require.NoError(t, err)

	assert.Empty(t, f.residual(dishID))
	assert.NotEmpty(t, f.residual(otherID), "other dishes are untouched")
	assert.Equal(t, []deletion.Stage{
		deletion.StageVerify,
		deletion.StageComments,
		deletion.StageRatings,
		deletion.StageCollectionItems,
		deletion.StageIngredients,
		deletion.StageSteps,
		deletion.StageCategories,
		deletion.StageDish,
	}, report.Completed)
}

func TestOrchestrator_StageOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID := uuid.New()
	dishID := f.seed(t, ownerID, dish.StatusDraft)

	f.store.Reset()
	_, err := f.orchestrator.DeleteDishByAdmin(ctx, dishID)
	require.NoError(t, err)

	var deleted []string
	for _, call := range f.store.Calls() {
		if call.Op == memstore.OpDelete {
			deleted = append(deleted, call.Table)
		}
	}
	assert.Equal(t, []string{
		schema.SocialComment.Table,
		schema.SocialDishRating.Table,
		schema.LibraryCollectionItem.Table,
		schema.RecipeIngredient.Table,
		schema.RecipeStep.Table,
		schema.RecipeDishCategory.Table,
		schema.RecipeDish.Table,
	}, deleted)
}

func TestOrchestrator_StopsAtFailingStage(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID := uuid.New()
	dishID := f.seed(t, ownerID, dish.StatusApproved)

	f.store.FailOn(memstore.OpDelete, schema.RecipeStep.Table, errBoom)
	report, err := f.orchestrator.DeleteDish(ctx, dishID, ownerID)

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeStore))

	var stageErr *deletion.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, deletion.StageSteps, stageErr.Stage)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, deletion.StageIngredients, report.Completed[len(report.Completed)-1])

	// Earlier stages stay applied; later ones never ran.
	residue := f.residual(dishID)
	assert.NotContains(t, residue, schema.SocialComment.Table)
	assert.NotContains(t, residue, schema.RecipeIngredient.Table)
	assert.Contains(t, residue, schema.RecipeStep.Table)
	assert.Contains(t, residue, schema.RecipeDishCategory.Table)
	assert.Contains(t, residue, schema.RecipeDish.Table)

	// Retrying finishes the job.
	f.store.Reset()
	_, err = f.orchestrator.DeleteDish(ctx, dishID, ownerID)
	require.NoError(t, err)
	assert.Empty(t, f.residual(dishID))
}

func TestOrchestrator_Authorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID, strangerID := uuid.New(), uuid.New()

	draftID := f.seed(t, ownerID, dish.StatusDraft)
	_, err := f.orchestrator.DeleteDish(ctx, draftID, strangerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	approvedID := f.seed(t, ownerID, dish.StatusApproved)
	report, err := f.orchestrator.DeleteDish(ctx, approvedID, strangerID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	assert.Empty(t, report.Completed)
	assert.NotEmpty(t, f.residual(approvedID))

	_, err = f.orchestrator.DeleteDishByAdmin(ctx, approvedID)
	require.NoError(t, err)
	assert.Empty(t, f.residual(approvedID))

	_, err = f.orchestrator.DeleteDishByAdmin(ctx, uuid.New())
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestOrchestrator_VerifyStoreFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	dishID := f.seed(t, uuid.New(), dish.StatusDraft)

	f.store.FailOnce(memstore.OpSelect, schema.RecipeDish.Table, errBoom)
	_, err := f.orchestrator.DeleteDishByAdmin(ctx, dishID)

	var stageErr *deletion.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, deletion.StageVerify, stageErr.Stage)
}
