// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rating_test

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
	"github.com/taibuivan/dishly/internal/recipe/dish"
	"github.com/taibuivan/dishly/internal/social/rating"
	"github.com/taibuivan/dishly/pkg/uuid"
)

var errBoom = errors.New("boom")

type fixture struct {
	store   *memstore.Store
	dishes  *dish.StoreRepository
	service *rating.Service
}

func newFixture() *fixture {
	store := memstore.New(memstore.WithUniqueKeys(schema.UniqueKeys()))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	dishes := dish.NewStoreRepository(store)
	syncer := collection.NewSyncer(collection.NewStoreRepository(store), nil, logger)
	return &fixture{
		store:   store,
		dishes:  dishes,
		service: rating.NewService(rating.NewStoreRepository(store), dishes, syncer, logger),
	}
}

func (f *fixture) seedDish(t *testing.T, ownerID string, status dish.Status) string {
	t.Helper()
	now := time.Now().UTC()
	d := &dish.Dish{ID: uuid.New(), OwnerID: ownerID, Title: "Gỏi cuốn", Servings: 2, Status: status, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.dishes.Create(context.Background(), d))
	return d.ID
}

func (f *fixture) ratingRows(dishID string) int {
	return f.store.Count(schema.SocialDishRating.Table,
		relstore.Where(relstore.Eq(schema.SocialDishRating.DishID, dishID)))
}

func (f *fixture) inLiked(t *testing.T, userID, dishID string) bool {
	t.Helper()
	ids, err := collection.NewStoreRepository(f.store).SystemCollections(context.Background(), userID)
	require.NoError(t, err)
	if ids[collection.SubtypeLiked] == "" {
		return false
	}
	return f.store.Count(schema.LibraryCollectionItem.Table, relstore.Where(
		relstore.Eq(schema.LibraryCollectionItem.CollectionID, ids[collection.SubtypeLiked]),
		relstore.Eq(schema.LibraryCollectionItem.DishID, dishID),
	)) == 1
}

func TestService_LikeAndUnlike(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID, likerID := uuid.New(), uuid.New()
	dishID := f.seedDish(t, ownerID, dish.StatusApproved)

	summary, err := f.service.SetRating(ctx, dishID, likerID, rating.ValueLiked)
	require.NoError(t, err)
	assert.Equal(t, rating.Summary{DishID: dishID, Likes: 1, Liked: true}, summary)

	// Liking twice keeps a single row.
	_, err = f.service.SetRating(ctx, dishID, likerID, rating.ValueLiked)
	require.NoError(t, err)
	assert.Equal(t, 1, f.ratingRows(dishID))
	assert.True(t, f.inLiked(t, likerID, dishID))

	summary, err = f.service.SetRating(ctx, dishID, likerID, rating.ValueNone)
	require.NoError(t, err)
	assert.Equal(t, rating.Summary{DishID: dishID, Likes: 0, Liked: false}, summary)
	assert.Zero(t, f.ratingRows(dishID))
	assert.False(t, f.inLiked(t, likerID, dishID))

	// Unliking without a like is a no-op.
	_, err = f.service.SetRating(ctx, dishID, likerID, rating.ValueNone)
	require.NoError(t, err)
}

func TestService_OwnLikeStaysOutOfLikedCollection(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID := uuid.New()
	dishID := f.seedDish(t, ownerID, dish.StatusDraft)

	summary, err := f.service.SetRating(ctx, dishID, ownerID, rating.ValueLiked)
	require.NoError(t, err)
	assert.True(t, summary.Liked)
	assert.False(t, f.inLiked(t, ownerID, dishID))
}

func TestService_SetRatingValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)

	for _, value := range []int{-1, 2, 5} {
		_, err := f.service.SetRating(ctx, dishID, uuid.New(), value)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "value %d", value)
	}
	assert.Zero(t, f.ratingRows(dishID))
}

func TestService_SetRatingRequiresVisibleDish(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.service.SetRating(ctx, uuid.New(), uuid.New(), rating.ValueLiked)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	pendingID := f.seedDish(t, uuid.New(), dish.StatusPending)
	_, err = f.service.SetRating(ctx, pendingID, uuid.New(), rating.ValueLiked)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Zero(t, f.ratingRows(pendingID))
}

func TestService_LikedCollectionFailureIsRetryable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	likerID := uuid.New()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)

	f.store.FailOnce(memstore.OpUpsertIgnore, schema.LibraryCollectionItem.Table, errBoom)
	_, err := f.service.SetRating(ctx, dishID, likerID, rating.ValueLiked)
	assert.True(t, apperr.HasCode(err, apperr.CodeStore))
	assert.Equal(t, 1, f.ratingRows(dishID), "the like itself is kept")
	assert.False(t, f.inLiked(t, likerID, dishID))

	_, err = f.service.SetRating(ctx, dishID, likerID, rating.ValueLiked)
	require.NoError(t, err)
	assert.True(t, f.inLiked(t, likerID, dishID))
	assert.Equal(t, 1, f.ratingRows(dishID))
}

func TestService_SummaryAnonymous(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)

	for i := 0; i < 3; i++ {
		_, err := f.service.SetRating(ctx, dishID, uuid.New(), rating.ValueLiked)
		require.NoError(t, err)
	}

	summary, err := f.service.Summary(ctx, dishID, "")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Likes)
	assert.False(t, summary.Liked)
}

func TestService_UnlikeAfterDishLeavesApproved(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	likerID := uuid.New()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)

	_, err := f.service.SetRating(ctx, dishID, likerID, rating.ValueLiked)
	require.NoError(t, err)
	require.True(t, f.inLiked(t, likerID, dishID))

	// The owner makes the dish private again.
	_, err = f.dishes.UpdateStatus(ctx, dishID, dish.StatusChange{Status: dish.StatusDraft})
	require.NoError(t, err)

	summary, err := f.service.SetRating(ctx, dishID, likerID, rating.ValueNone)
	require.NoError(t, err)
	assert.False(t, summary.Liked)
	assert.Zero(t, f.ratingRows(dishID))
	assert.False(t, f.inLiked(t, likerID, dishID))

	// Liking it again stays hidden.
	_, err = f.service.SetRating(ctx, dishID, likerID, rating.ValueLiked)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	// A missing dish is still NotFound.
	_, err = f.service.SetRating(ctx, uuid.New(), likerID, rating.ValueNone)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
