// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/dishly/internal/platform/constants"
)

// SystemCache remembers a user's system collection ids (subtype → id).
//
// Ids of system collections never change once provisioned, so entries are only
// dropped on expiry. A cache failure is never fatal; callers fall back to the store.
type SystemCache interface {
	Get(context context.Context, userID string) (map[Subtype]string, bool, error)
	Set(context context.Context, userID string, ids map[Subtype]string) error
}

// # Redis

// RedisClient is the part of [redis.Client] the cache uses.
type RedisClient interface {
	HGetAll(context context.Context, key string) *redis.MapStringStringCmd
	TxPipeline() redis.Pipeliner
}

var _ RedisClient = (*redis.Client)(nil)

// RedisSystemCache implements [SystemCache] with one hash per user.
type RedisSystemCache struct {
	client RedisClient
	ttl    time.Duration
}

// NewRedisSystemCache creates a Redis-backed [SystemCache].
func NewRedisSystemCache(client RedisClient, ttl time.Duration) *RedisSystemCache {
	return &RedisSystemCache{client: client, ttl: ttl}
}

/*
Get returns the cached ids for userID.

Returns:
  - map[Subtype]string: cached ids
  - bool: false on a miss or when the entry is incomplete
  - error: connectivity errors
*/
func (cache *RedisSystemCache) Get(context context.Context, userID string) (map[Subtype]string, bool, error) {
	values, err := cache.client.HGetAll(context, systemCacheKey(userID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis_system_collections_get_failed: %w", err)
	}

	ids, complete := decodeSystemIDs(values)
	return ids, complete, nil
}

// decodeSystemIDs maps a cached hash to subtype ids. A hash missing any
// subtype is reported incomplete so provisioning runs again.
func decodeSystemIDs(values map[string]string) (map[Subtype]string, bool) {
	ids := make(map[Subtype]string, len(values))
	for subtype, id := range values {
		ids[Subtype(subtype)] = id
	}
	for _, subtype := range Subtypes {
		if ids[subtype] == "" {
			return nil, false
		}
	}
	return ids, true
}

// Set stores ids for userID and refreshes the expiry.
func (cache *RedisSystemCache) Set(context context.Context, userID string, ids map[Subtype]string) error {
	key := systemCacheKey(userID)

	fields := make(map[string]any, len(ids))
	for subtype, id := range ids {
		fields[string(subtype)] = id
	}

	pipe := cache.client.TxPipeline()
	pipe.HSet(context, key, fields)
	pipe.Expire(context, key, cache.ttl)
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_system_collections_set_failed: %w", err)
	}
	return nil
}

func systemCacheKey(userID string) string {
	return constants.RedisPrefixSystemCollections + userID
}

// # No-op

// NopSystemCache is used when no Redis is configured.
type NopSystemCache struct{}

func (NopSystemCache) Get(context.Context, string) (map[Subtype]string, bool, error) {
	return nil, false, nil
}

func (NopSystemCache) Set(context.Context, string, map[Subtype]string) error { return nil }
