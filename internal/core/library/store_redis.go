// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/shelfy/internal/platform/constants"
)

// RedisSnapshotCache implements [SnapshotCache] using Redis string keys
// holding the JSON-encoded snapshot.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotCache creates a Redis-backed snapshot cache whose entries expire after ttl.
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

// SnapshotKey returns the Redis key holding userID's snapshot.
func SnapshotKey(userID string) string {
	return constants.RedisPrefixSnapshot + userID
}

/*
Get loads the cached snapshot for a user.

Returns:
  - *Snapshot: The decoded snapshot
  - error: [ErrCacheMiss] when absent or expired, otherwise connectivity or decode errors
*/
func (cache *RedisSnapshotCache) Get(context context.Context, userID string) (*Snapshot, error) {
	payload, err := cache.client.Get(context, SnapshotKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis_snapshot_get_failed: %w", err)
	}

	return DecodeSnapshot(payload)
}

// Set stores the snapshot with the configured TTL.
func (cache *RedisSnapshotCache) Set(context context.Context, userID string, snapshot *Snapshot) error {
	payload, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	if err := cache.client.Set(context, SnapshotKey(userID), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_snapshot_set_failed: %w", err)
	}
	return nil
}

// Invalidate deletes the user's snapshot; a missing key is not an error.
func (cache *RedisSnapshotCache) Invalidate(context context.Context, userID string) error {
	if err := cache.client.Del(context, SnapshotKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis_snapshot_delete_failed: %w", err)
	}
	return nil
}

// # Codec

// EncodeSnapshot serialises a snapshot for the cache.
func EncodeSnapshot(snapshot *Snapshot) ([]byte, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("library: encode snapshot: %w", err)
	}
	return payload, nil
}

// DecodeSnapshot restores a snapshot written by [EncodeSnapshot], replacing
// absent lists with empty ones. Owner IDs are not cached.
func DecodeSnapshot(payload []byte) (*Snapshot, error) {
	snapshot := &Snapshot{}
	if err := json.Unmarshal(payload, snapshot); err != nil {
		return nil, fmt.Errorf("library: decode snapshot: %w", err)
	}

	if snapshot.Series == nil {
		snapshot.Series = []*Series{}
	}
	if snapshot.Orphans == nil {
		snapshot.Orphans = []*Volume{}
	}
	for _, series := range snapshot.Series {
		if series.Volumes == nil {
			series.Volumes = []*Volume{}
		}
		if series.Tags == nil {
			series.Tags = []string{}
		}
	}
	return snapshot, nil
}
