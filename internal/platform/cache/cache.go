// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

/*
Package cache provides a Redis-backed response cache for hot list endpoints.

The legacy system cached a handful of catalogue list responses in process
memory for ten minutes, keyed by query string, with no invalidation on writes.
This package keeps the same contract (staleness up to the TTL is accepted) but
moves the storage to Redis so cached pages survive restarts and are shared
between instances. Admin write paths call [Store.InvalidatePrefix] as a
best-effort improvement; correctness never depends on it.
*/
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mlebrun/otaclub/internal/platform/constants"
)

// Store is a thin namespace-aware wrapper over the Redis client.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// New creates a response cache backed by the given Redis client.
func New(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// Get returns the cached JSON payload for key, or (nil, false) on a miss.
//
// Redis failures degrade to a miss — the cache must never take a request down.
func (store *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := store.client.Get(ctx, constants.RedisPrefixListCache+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			store.logger.Warn("cache_get_failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}

	return payload, true
}

// Set stores a JSON payload under key for the standard list TTL.
func (store *Store) Set(ctx context.Context, key string, payload []byte) {
	store.SetTTL(ctx, key, payload, constants.ListCacheTTL)
}

// SetTTL stores a JSON payload under key with an explicit TTL.
func (store *Store) SetTTL(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := store.client.Set(ctx, constants.RedisPrefixListCache+key, payload, ttl).Err(); err != nil {
		store.logger.Warn("cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// InvalidatePrefix removes every cached entry whose key starts with prefix.
//
// Uses SCAN rather than KEYS to avoid blocking Redis on large keyspaces.
func (store *Store) InvalidatePrefix(ctx context.Context, prefix string) {
	pattern := constants.RedisPrefixListCache + prefix + "*"

	iter := store.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := store.client.Del(ctx, iter.Val()).Err(); err != nil {
			store.logger.Warn("cache_invalidate_failed", slog.String("key", iter.Val()), slog.Any("error", err))
		}
	}

	if err := iter.Err(); err != nil {
		store.logger.Warn("cache_scan_failed", slog.String("pattern", pattern), slog.Any("error", err))
	}
}
