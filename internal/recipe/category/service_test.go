// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/relstore/memstore"
	"github.com/taibuivan/dishly/internal/recipe/category"
)

func newService() *category.Service {
	store := memstore.New(memstore.WithUniqueKeys(schema.UniqueKeys()))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return category.NewService(category.NewStoreRepository(store), logger)
}

func TestService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	service := newService()

	dessert, err := service.Create(ctx, "Dessert", 20)
	require.NoError(t, err)
	assert.Equal(t, "dessert", dessert.Slug)

	_, err = service.Create(ctx, "Bánh mì", 10)
	require.NoError(t, err)

	categories, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "banh-mi", categories[0].Slug)
	assert.Equal(t, "dessert", categories[1].Slug)
}

func TestService_CreateDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	service := newService()

	_, err := service.Create(ctx, "Soup", 0)
	require.NoError(t, err)

	_, err = service.Create(ctx, "soup!", 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestService_EnsureExist(t *testing.T) {
	ctx := context.Background()
	service := newService()

	soup, err := service.Create(ctx, "Soup", 0)
	require.NoError(t, err)

	assert.NoError(t, service.EnsureExist(ctx, nil))
	assert.NoError(t, service.EnsureExist(ctx, []string{soup.ID, soup.ID}))

	err = service.EnsureExist(ctx, []string{soup.ID, "0190a3c4-7b2e-7cc1-9a51-3c1d2f8e4b10"})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Contains(t, ae.Details[0].Message, "0190a3c4-7b2e-7cc1-9a51-3c1d2f8e4b10")
}
