// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/platform/constants"
	"github.com/taibuivan/dishly/internal/platform/dberr"
	"github.com/taibuivan/dishly/internal/platform/validate"
	"github.com/taibuivan/dishly/pkg/retry"
	"github.com/taibuivan/dishly/pkg/slug"
	"github.com/taibuivan/dishly/pkg/uuid"
)

// SystemProvisioner creates the system collections of a new user.
type SystemProvisioner interface {
	EnsureSystemCollections(context context.Context, userID string) error
}

// errTagTaken marks a candidate tag that collided with an existing one.
var errTagTaken = fmt.Errorf("%w: tag taken", retry.ErrRetry)

// Service provisions and reads profiles.
type Service struct {
	repo        Repository
	collections SystemProvisioner
	logger      *slog.Logger

	attempts    int
	delay       time.Duration
	shortSuffix func() string
	longSuffix  func() string
	now         func() time.Time
}

// Option customizes a [Service].
type Option func(*Service)

// WithTagRetry overrides how many random tags are tried and the pause between them.
func WithTagRetry(attempts int, delay time.Duration) Option {
	return func(service *Service) {
		service.attempts = attempts
		service.delay = delay
	}
}

// WithSuffixes overrides the generators of the short random tag suffix and of
// the long suffix used as the last resort.
func WithSuffixes(short, long func() string) Option {
	return func(service *Service) {
		service.shortSuffix = short
		service.longSuffix = long
	}
}

// WithClock overrides the time source used for timestamps and fallback tags.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs a new profile [Service].
func NewService(repo Repository, collections SystemProvisioner, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		repo:        repo,
		collections: collections,
		logger:      logger,
		attempts:    constants.TagRandomAttempts,
		delay:       constants.TagRetryDelay,
		shortSuffix: func() string { return uuid.Short(4) },
		longSuffix:  func() string { return uuid.Short(12) },
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// Get returns the profile of userID.
func (service *Service) Get(context context.Context, userID string) (*Profile, error) {
	return service.repo.FindByUserID(context, userID)
}

/*
Provision creates the profile of userID, or returns the existing one.

Description: A unique tag is minted from the display name (see package doc).
The user's four system collections are provisioned as well; that step is
tolerant because they are provisioned again lazily on first use.

Returns:
  - *Profile: the stored profile
  - bool: true when the profile was created by this call
  - error: Validation, Conflict (no unique tag could be minted), StoreError
*/
func (service *Service) Provision(context context.Context, userID, displayName string) (*Profile, bool, error) {
	displayName = strings.TrimSpace(displayName)

	validator := &validate.Validator{}
	validator.Required(FieldDisplayName, displayName).MaxLen(FieldDisplayName, displayName, maxDisplayNameLength)
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	existing, err := service.repo.FindByUserID(context, userID)
	if err == nil {
		return existing, false, nil
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, false, err
	}

	result, err := service.mint(context, userID, displayName)
	if err != nil {
		return nil, false, err
	}
	if !result.created {
		return result.profile, false, nil
	}
	profile := result.profile

	if err := service.collections.EnsureSystemCollections(context, userID); err != nil {
		service.logger.WarnContext(context, "system_collections_provision_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	service.logger.InfoContext(context, "profile_provisioned",
		slog.String("user_id", userID),
		slog.String("tag", profile.Tag),
	)
	return profile, true, nil
}

// minted is the outcome of one tag candidate.
type minted struct {
	profile *Profile

	// created is false when a concurrent call provisioned the user first.
	created bool
}

// mint inserts the profile under the first free tag.
func (service *Service) mint(context context.Context, userID, displayName string) (minted, error) {
	base := slug.Truncate(slug.From(displayName), maxTagBaseLength)
	if base == "" {
		base = fallbackTagBase
	}

	// 1. Random suffixes, bounded
	result, err := retry.Attempts(context, service.attempts, retry.StaticBackoff(service.delay),
		func(int) (minted, error) {
			return service.tryTag(context, userID, displayName, base+"-"+service.shortSuffix())
		})
	if err == nil || !errors.Is(err, retry.ErrExhausted) {
		return result, err
	}

	service.logger.WarnContext(context, "profile_tag_degraded",
		slog.String("user_id", userID),
		slog.String("base", base),
	)

	// 2. Timestamp-seeded, then a long random suffix
	fallbacks := []string{
		fmt.Sprintf("%s-%d", base, service.now().UnixMilli()%1_000_000),
		base + "-" + service.longSuffix(),
	}
	for _, tag := range fallbacks {
		result, err := service.tryTag(context, userID, displayName, tag)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, retry.ErrRetry) {
			return minted{}, err
		}
	}

	return minted{}, apperr.Conflict("Could not generate a unique tag; please try again")
}

// tryTag inserts one candidate. A collision on the tag is reported as retryable;
// a concurrent provisioning of the same user yields that user's profile.
func (service *Service) tryTag(context context.Context, userID, displayName, tag string) (minted, error) {
	profile := &Profile{
		UserID:      userID,
		DisplayName: displayName,
		Tag:         tag,
		CreatedAt:   service.now(),
	}

	err := service.repo.Insert(context, profile)
	if err == nil {
		return minted{profile: profile, created: true}, nil
	}
	if !dberr.IsConflict(err) {
		return minted{}, err
	}

	if existing, findErr := service.repo.FindByUserID(context, userID); findErr == nil {
		return minted{profile: existing}, nil
	}
	return minted{}, errTagTaken
}
