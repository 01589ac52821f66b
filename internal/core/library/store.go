// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"errors"
)

// # Persistence Contracts

// Repository persists series and volumes. Every method is scoped to one
// owner: rows belonging to another user behave as if they do not exist.
type Repository interface {
	ListSeries(context context.Context, userID string) ([]*Series, error)
	FindSeries(context context.Context, userID, id string) (*Series, error)
	CreateSeries(context context.Context, series *Series) error
	UpdateSeries(context context.Context, series *Series) error
	DeleteSeries(context context.Context, userID, id string) error

	// ListVolumes returns every volume of the user ordered by number, then creation.
	ListVolumes(context context.Context, userID string) ([]*Volume, error)
	FindVolume(context context.Context, userID, id string) (*Volume, error)
	CreateVolume(context context.Context, volume *Volume) error
	UpdateVolume(context context.Context, volume *Volume) error
	DeleteVolume(context context.Context, userID, id string) error

	// MaxVolumeNumber returns the highest volume number in a series, or 0.
	MaxVolumeNumber(context context.Context, userID, seriesID string) (int, error)
}

// ErrCacheMiss is returned by [SnapshotCache.Get] when no snapshot is stored.
var ErrCacheMiss = errors.New("library: snapshot cache miss")

// SnapshotCache stores fully hydrated snapshots between requests.
//
// Implementations must be safe for concurrent use. A failing cache never
// fails a request: the service logs the error and reads from the repository.
type SnapshotCache interface {
	Get(context context.Context, userID string) (*Snapshot, error)
	Set(context context.Context, userID string, snapshot *Snapshot) error
	Invalidate(context context.Context, userID string) error
}

// NopCache is a [SnapshotCache] that stores nothing.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*Snapshot, error) { return nil, ErrCacheMiss }
func (NopCache) Set(context.Context, string, *Snapshot) error   { return nil }
func (NopCache) Invalidate(context.Context, string) error       { return nil }
