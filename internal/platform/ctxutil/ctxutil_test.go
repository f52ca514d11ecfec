// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishly/internal/platform/ctxutil"
	"github.com/taibuivan/dishly/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-42")
	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies the per-request logger and its default fallback.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies that the caller identity round-trips through context
and that only admins are reported as such.
*/
func TestContext_AuthUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
	assert.False(t, ctxutil.IsAdmin(ctx))

	member := ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "cook-1", Role: string(sec.RoleMember)})
	retrieved := ctxutil.GetAuthUser(member)
	require.NotNil(t, retrieved)
	assert.Equal(t, "cook-1", retrieved.UserID)
	assert.False(t, ctxutil.IsAdmin(member))

	admin := ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: "mod-1", Role: string(sec.RoleAdmin)})
	assert.True(t, ctxutil.IsAdmin(admin))
}
