// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level store errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/relstore"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a store error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Errors that already are [apperr.AppError] pass through untouched so repositories
// can return domain-specific NotFound values without them being reclassified.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Already classified
	if apperr.IsAppError(err) {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 3. Constraint violations
	if errors.Is(err, relstore.ErrConflict) {
		conflict := apperr.Conflict("Resource already exists")
		conflict.Cause = fmt.Errorf("%s: %w", action, err)
		return conflict
	}
	if errors.Is(err, relstore.ErrForeignKey) {
		invalid := apperr.ValidationError("Referenced resource does not exist")
		invalid.Cause = fmt.Errorf("%s: %w", action, err)
		return invalid
	}

	// 4. Anything else is a failed remote store call
	return apperr.StoreError("", fmt.Errorf("%s: %w", action, err))
}

// IsConflict reports whether err is a unique-constraint violation at any layer.
func IsConflict(err error) bool {
	return errors.Is(err, relstore.ErrConflict) || apperr.HasCode(err, apperr.CodeConflict)
}
