// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishly/internal/library/collection"
	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/relstore/memstore"
	"github.com/taibuivan/dishly/internal/recipe/dish"
	"github.com/taibuivan/dishly/pkg/uuid"
)

type serviceFixture struct {
	store   *memstore.Store
	dishes  *dish.StoreRepository
	service *collection.Service
}

func newServiceFixture() *serviceFixture {
	store := newStore()
	repo := collection.NewStoreRepository(store)
	dishes := dish.NewStoreRepository(store)
	syncer := collection.NewSyncer(repo, nil, discardLogger())
	return &serviceFixture{
		store:   store,
		dishes:  dishes,
		service: collection.NewService(repo, syncer, dishes, discardLogger()),
	}
}

func (f *serviceFixture) seedDish(t *testing.T, ownerID string, status dish.Status) string {
	t.Helper()
	now := time.Now().UTC()
	d := &dish.Dish{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     "Bún chả",
		Servings:  2,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.dishes.Create(context.Background(), d))
	return d.ID
}

func TestService_ListProvisionsSystemCollections(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	userID := uuid.New()

	_, err := f.service.Create(ctx, userID, collection.Input{Name: "Weeknight"})
	require.NoError(t, err)

	collections, err := f.service.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, collections, 5)
	assert.True(t, collections[0].IsSystem())
	assert.Equal(t, collection.TypeCustom, collections[4].Type)
}

func TestService_CustomCollectionLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	userID := uuid.New()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)

	created, err := f.service.Create(ctx, userID, collection.Input{Name: "  Soups  "})
	require.NoError(t, err)
	assert.Equal(t, "Soups", created.Name)

	renamed, err := f.service.Update(ctx, created.ID, userID, collection.Input{Name: "Winter soups"})
	require.NoError(t, err)
	assert.Equal(t, "Winter soups", renamed.Name)

	require.NoError(t, f.service.AddItem(ctx, created.ID, userID, dishID))
	require.NoError(t, f.service.AddItem(ctx, created.ID, userID, dishID))

	items, err := f.service.Items(ctx, created.ID, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, dishID, items[0].DishID)

	require.NoError(t, f.service.RemoveItem(ctx, created.ID, userID, dishID))
	items, err = f.service.Items(ctx, created.ID, userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, f.service.AddItem(ctx, created.ID, userID, dishID))
	require.NoError(t, f.service.Delete(ctx, created.ID, userID))
	assert.Zero(t, f.store.Count(schema.LibraryCollectionItem.Table, nil))

	_, err = f.service.Items(ctx, created.ID, userID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestService_SystemCollectionsAreReadOnly(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	userID := uuid.New()
	dishID := f.seedDish(t, uuid.New(), dish.StatusApproved)

	collections, err := f.service.List(ctx, userID)
	require.NoError(t, err)
	system := collections[0]
	require.True(t, system.IsSystem())

	_, err = f.service.Update(ctx, system.ID, userID, collection.Input{Name: "Mine"})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	err = f.service.Delete(ctx, system.ID, userID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	err = f.service.AddItem(ctx, system.ID, userID, dishID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = f.service.Items(ctx, system.ID, userID)
	require.NoError(t, err)
}

func TestService_ForeignCollectionsAreHidden(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()

	created, err := f.service.Create(ctx, uuid.New(), collection.Input{Name: "Private list"})
	require.NoError(t, err)

	_, err = f.service.Items(ctx, created.ID, uuid.New())
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestService_AddItemRequiresVisibleDish(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture()
	userID := uuid.New()

	created, err := f.service.Create(ctx, userID, collection.Input{Name: "Ideas"})
	require.NoError(t, err)

	draftID := f.seedDish(t, uuid.New(), dish.StatusDraft)
	err = f.service.AddItem(ctx, created.ID, userID, draftID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	ownDraftID := f.seedDish(t, userID, dish.StatusDraft)
	require.NoError(t, f.service.AddItem(ctx, created.ID, userID, ownDraftID))

	err = f.service.AddItem(ctx, created.ID, userID, "not-a-uuid")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_CreateValidation(t *testing.T) {
	_, err := newServiceFixture().service.Create(context.Background(), uuid.New(), collection.Input{Name: " "})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}
