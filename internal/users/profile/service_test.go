// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishly/internal/library/collection"
	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/database/schema"
	"github.com/taibuivan/dishly/internal/platform/relstore"
	"github.com/taibuivan/dishly/internal/platform/relstore/memstore"
	"github.com/taibuivan/dishly/internal/users/profile"
	"github.com/taibuivan/dishly/pkg/uuid"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

type fixture struct {
	store   *memstore.Store
	repo    *profile.StoreRepository
	service *profile.Service
}

func newFixture(options ...profile.Option) *fixture {
	store := memstore.New(memstore.WithUniqueKeys(schema.UniqueKeys()))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := profile.NewStoreRepository(store)
	syncer := collection.NewSyncer(collection.NewStoreRepository(store), nil, logger)

	options = append([]profile.Option{
		profile.WithTagRetry(3, 0),
		profile.WithClock(func() time.Time { return fixedNow }),
	}, options...)

	return &fixture{
		store:   store,
		repo:    repo,
		service: profile.NewService(repo, syncer, logger, options...),
	}
}

func constant(s string) func() string {
	return func() string { return s }
}

func (f *fixture) occupy(t *testing.T, tag string) {
	t.Helper()
	require.NoError(t, f.repo.Insert(context.Background(), &profile.Profile{
		UserID: uuid.New(), DisplayName: "taken", Tag: tag, CreatedAt: fixedNow,
	}))
}

func TestService_Provision(t *testing.T) {
	ctx := context.Background()
	f := newFixture(profile.WithSuffixes(constant("a1b2"), constant("long")))
	userID := uuid.New()

	created, isNew, err := f.service.Provision(ctx, userID, "  Nguyễn Văn An ")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "nguyen-van-an-a1b2", created.Tag)
	assert.Equal(t, "Nguyễn Văn An", created.DisplayName)

	// System collections come with the profile.
	assert.Equal(t, 4, f.store.Count(schema.LibraryCollection.Table,
		relstore.Where(relstore.Eq(schema.LibraryCollection.UserID, userID))))

	again, isNew, err := f.service.Provision(ctx, userID, "Someone else")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.Tag, again.Tag)

	got, err := f.service.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, created.Tag, got.Tag)
}

func TestService_ProvisionRetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	suffixes := []string{"aaaa", "aaaa", "bbbb"}
	next := 0
	f := newFixture(profile.WithSuffixes(func() string {
		s := suffixes[next]
		next++
		return s
	}, constant("long")))
	f.occupy(t, "pho-aaaa")

	created, _, err := f.service.Provision(ctx, uuid.New(), "Phở")
	require.NoError(t, err)
	assert.Equal(t, "pho-bbbb", created.Tag)
	assert.Equal(t, 3, next)
}

func TestService_ProvisionDegradesToTimestamp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(profile.WithSuffixes(constant("aaaa"), constant("long")))
	f.occupy(t, "pho-aaaa")

	created, _, err := f.service.Provision(ctx, uuid.New(), "Phở")
	require.NoError(t, err)
	assert.Equal(t, "pho-"+stamp(), created.Tag)
}

func TestService_ProvisionDegradesToLongSuffix(t *testing.T) {
	ctx := context.Background()
	f := newFixture(profile.WithSuffixes(constant("aaaa"), constant("0123456789ab")))
	f.occupy(t, "pho-aaaa")
	f.occupy(t, "pho-"+stamp())

	created, _, err := f.service.Provision(ctx, uuid.New(), "Phở")
	require.NoError(t, err)
	assert.Equal(t, "pho-0123456789ab", created.Tag)
}

func TestService_ProvisionGivesUp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(profile.WithSuffixes(constant("aaaa"), constant("bbbb")))
	f.occupy(t, "pho-aaaa")
	f.occupy(t, "pho-"+stamp())
	f.occupy(t, "pho-bbbb")

	_, _, err := f.service.Provision(ctx, uuid.New(), "Phở")
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

func TestService_ProvisionFallbackBase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(profile.WithSuffixes(constant("x1y2"), constant("long")))

	created, _, err := f.service.Provision(ctx, uuid.New(), "!!!")
	require.NoError(t, err)
	assert.Equal(t, "cook-x1y2", created.Tag)

	long, _, err := f.service.Provision(ctx, uuid.New(), strings.Repeat("spring roll ", 5))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(strings.TrimSuffix(long.Tag, "-x1y2")), 20)
}

func TestService_ProvisionValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, _, err := f.service.Provision(ctx, uuid.New(), "   ")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, _, err = f.service.Provision(ctx, uuid.New(), strings.Repeat("x", 51))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestService_ProvisionStoreFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.store.FailOn(memstore.OpInsert, schema.UsersProfile.Table, errors.New("boom"))

	_, _, err := f.service.Provision(ctx, uuid.New(), "Chef")
	assert.True(t, apperr.HasCode(err, apperr.CodeStore))
}

func TestService_GetMissing(t *testing.T) {
	_, err := newFixture().service.Get(context.Background(), uuid.New())
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

// stamp is the timestamp-seeded suffix minted at fixedNow.
func stamp() string {
	return strconv.FormatInt(fixedNow.UnixMilli()%1_000_000, 10)
}
