// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/dishly/internal/platform/apperr"
	"github.com/taibuivan/dishly/internal/recipe/dish"
	"github.com/taibuivan/dishly/pkg/uuid"
)

// managedSubtypes are the system subtypes whose membership follows dish status.
var managedSubtypes = []Subtype{SubtypeMyDishes, SubtypePublished, SubtypePrivate}

// # Syncer

/*
Syncer keeps system collection membership consistent with dish status and likes.

There is no transaction across calls. Every primitive is idempotent so a
partially applied run is repaired by running it again.
*/
type Syncer struct {
	repo   Repository
	cache  SystemCache
	logger *slog.Logger
	now    func() time.Time
}

// NewSyncer constructs a [Syncer]. A nil cache disables caching.
func NewSyncer(repo Repository, cache SystemCache, logger *slog.Logger) *Syncer {
	if cache == nil {
		cache = NopSystemCache{}
	}
	return &Syncer{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

/*
Resync recomputes which of the owner's system collections contain the dish.

Description: The dish is first removed from every status-managed collection,
then added to exactly those whose [ShouldContain] predicate holds. A failed
removal does not stop the run; the add phase still executes and every error is
returned joined. Failing to resolve the collections aborts before any write.

Parameters:
  - context: context.Context
  - dishID: string
  - userID: string (dish owner)
  - status: dish.Status (the status just persisted)

Returns:
  - error: nil when membership is exactly as the predicate demands
*/
func (syncer *Syncer) Resync(context context.Context, dishID, userID string, status dish.Status) error {
	ids, err := syncer.systemIDs(context, userID)
	if err != nil {
		return err
	}

	var errs []error

	// 1. Clear
	for _, subtype := range managedSubtypes {
		if err := syncer.repo.RemoveItem(context, ids[subtype], dishID); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", subtype, err))
		}
	}

	// 2. Set
	now := syncer.now()
	for _, subtype := range managedSubtypes {
		if contain, _ := ShouldContain(subtype, status); !contain {
			continue
		}
		item := Item{CollectionID: ids[subtype], DishID: dishID, UserID: userID, AddedAt: now}
		if err := syncer.repo.AddItem(context, item); err != nil {
			errs = append(errs, fmt.Errorf("set %s: %w", subtype, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		syncer.logger.WarnContext(context, "collection_resync_partial",
			slog.String("dish_id", dishID),
			slog.String("user_id", userID),
			slog.String("status", string(status)),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// AddToSystemCollection puts dishID in the user's subtype collection. Adding a
// dish that is already present succeeds.
func (syncer *Syncer) AddToSystemCollection(context context.Context, userID string, subtype Subtype, dishID string) error {
	ids, err := syncer.systemIDs(context, userID)
	if err != nil {
		return err
	}
	return syncer.repo.AddItem(context, Item{
		CollectionID: ids[subtype],
		DishID:       dishID,
		UserID:       userID,
		AddedAt:      syncer.now(),
	})
}

// RemoveFromSystemCollection takes dishID out of the user's subtype collection.
// Removing an absent dish succeeds.
func (syncer *Syncer) RemoveFromSystemCollection(context context.Context, userID string, subtype Subtype, dishID string) error {
	ids, err := syncer.systemIDs(context, userID)
	if err != nil {
		return err
	}
	return syncer.repo.RemoveItem(context, ids[subtype], dishID)
}

// AddLikedDish records the like in the liker's "liked" collection. Owners
// liking their own dish are ignored.
func (syncer *Syncer) AddLikedDish(context context.Context, dishID, likerID, ownerID string) error {
	if likerID == ownerID {
		return nil
	}
	return syncer.AddToSystemCollection(context, likerID, SubtypeLiked, dishID)
}

// RemoveLikedDish takes dishID out of the liker's "liked" collection.
func (syncer *Syncer) RemoveLikedDish(context context.Context, dishID, likerID string) error {
	return syncer.RemoveFromSystemCollection(context, likerID, SubtypeLiked, dishID)
}

// EnsureSystemCollections provisions every missing system collection of userID.
func (syncer *Syncer) EnsureSystemCollections(context context.Context, userID string) error {
	_, err := syncer.systemIDs(context, userID)
	return err
}

// # Resolution

/*
systemIDs resolves the user's system collection ids, provisioning missing ones.

Description: Cache first, then the store. Provisioning is an insert that skips
existing subtypes, so two racing callers both end up reading the same rows.
Cache errors are logged and ignored.
*/
func (syncer *Syncer) systemIDs(context context.Context, userID string) (map[Subtype]string, error) {
	if ids, ok, err := syncer.cache.Get(context, userID); err != nil {
		syncer.logger.WarnContext(context, "system_collection_cache_get_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	} else if ok {
		return ids, nil
	}

	ids, err := syncer.repo.SystemCollections(context, userID)
	if err != nil {
		return nil, err
	}

	if missing := missingSubtypes(ids); len(missing) > 0 {
		now := syncer.now()
		collections := make([]*Collection, 0, len(missing))
		for _, subtype := range missing {
			subtype := subtype
			collections = append(collections, &Collection{
				ID:            uuid.New(),
				UserID:        userID,
				Name:          systemNames[subtype],
				Type:          TypeSystem,
				SystemSubtype: &subtype,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}

		if err := syncer.repo.EnsureSystem(context, collections); err != nil {
			return nil, err
		}

		// Re-read: a concurrent provisioner may own some of the rows.
		if ids, err = syncer.repo.SystemCollections(context, userID); err != nil {
			return nil, err
		}
		if missing := missingSubtypes(ids); len(missing) > 0 {
			return nil, apperr.StoreError("", fmt.Errorf("system collections %v still missing for user %s", missing, userID))
		}

		syncer.logger.InfoContext(context, "system_collections_provisioned",
			slog.String("user_id", userID),
			slog.Int("count", len(collections)),
		)
	}

	if err := syncer.cache.Set(context, userID, ids); err != nil {
		syncer.logger.WarnContext(context, "system_collection_cache_set_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
	return ids, nil
}

func missingSubtypes(ids map[Subtype]string) []Subtype {
	var missing []Subtype
	for _, subtype := range Subtypes {
		if ids[subtype] == "" {
			missing = append(missing, subtype)
		}
	}
	return missing
}
