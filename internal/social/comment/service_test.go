// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/relstore/memstore"
	"github.com/taibuivan/dishly/internal/recipe/dish"
	"github.com/taibuivan/dishly/internal/social/comment"
	"github.com/taibuivan/dishly/pkg/uuid"
)

type fixture struct {
	dishes  *dish.StoreRepository
	service *comment.Service
}

func newFixture() *fixture {
	store := memstore.New(memstore.WithUniqueKeys(schema.UniqueKeys()))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	dishes := dish.NewStoreRepository(store)
	return &fixture{
		dishes:  dishes,
		service: comment.NewService(comment.NewStoreRepository(store), dishes, logger),
	}
}

func (f *fixture) seedDish(t *testing.T, ownerID string, status dish.Status) string {
	t.Helper()
	now := time.Now().UTC()
	d := &dish.Dish{ID: uuid.New(), OwnerID: ownerID, Title: "Cơm tấm", Servings: 1, Status: status, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.dishes.Create(context.Background(), d))
	return d.ID
}

func TestService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)
	userID := uuid.New()

	created, err := f.service.Create(ctx, dishID, userID, "  Needs more fish sauce  ")
	require.NoError(t, err)
	assert.Equal(t, "Needs more fish sauce", created.Body)

	comments, err := f.service.List(ctx, dishID, "", false)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, created.ID, comments[0].ID)
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)

	_, err := f.service.Create(ctx, dishID, uuid.New(), "   ")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.service.Create(ctx, dishID, uuid.New(), strings.Repeat("a", 2001))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_HiddenDish(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	ownerID := uuid.New()
	dishID := f.seedDish(t, ownerID, dish.StatusDraft)

	_, err := f.service.Create(ctx, dishID, uuid.New(), "hello")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = f.service.Create(ctx, dishID, ownerID, "note to self")
	require.NoError(t, err)

	_, err = f.service.List(ctx, dishID, uuid.New(), false)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	comments, err := f.service.List(ctx, dishID, uuid.New(), true)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestService_DeleteTombstones(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)
	authorID := uuid.New()

	created, err := f.service.Create(ctx, dishID, authorID, "first!")
	require.NoError(t, err)

	err = f.service.Delete(ctx, created.ID, uuid.New(), false)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	require.NoError(t, f.service.Delete(ctx, created.ID, authorID, false))
	require.NoError(t, f.service.Delete(ctx, created.ID, authorID, false))

	comments, err := f.service.List(ctx, dishID, "", false)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.True(t, comments[0].IsDeleted)
	assert.Empty(t, comments[0].Body)
}

func TestService_AdminDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)

	created, err := f.service.Create(ctx, dishID, uuid.New(), "spam")
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, created.ID, uuid.New(), true))

	err = f.service.Delete(ctx, uuid.New(), uuid.New(), true)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
