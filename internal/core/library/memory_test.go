// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/taibuivan/shelfy/internal/core/library"
	"github.com/taibuivan/shelfy/internal/platform/apperr"
)

// memoryRepository is an in-memory [library.Repository] used by the tests.
type memoryRepository struct {
	mu      sync.Mutex
	series  []*library.Series
	volumes []*library.Volume

	listCalls int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{}
}

func (repository *memoryRepository) ListSeries(_ context.Context, userID string) ([]*library.Series, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.listCalls++
	result := make([]*library.Series, 0)
	for _, series := range repository.series {
		if series.UserID == userID {
			clone := *series
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (repository *memoryRepository) FindSeries(_ context.Context, userID, id string) (*library.Series, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, series := range repository.series {
		if series.ID == id && series.UserID == userID {
			clone := *series
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Series")
}

func (repository *memoryRepository) CreateSeries(_ context.Context, series *library.Series) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	clone := *series
	repository.series = append(repository.series, &clone)
	return nil
}

func (repository *memoryRepository) UpdateSeries(_ context.Context, series *library.Series) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for index, existing := range repository.series {
		if existing.ID == series.ID && existing.UserID == series.UserID {
			clone := *series
			repository.series[index] = &clone
			return nil
		}
	}
	return apperr.NotFound("Series")
}

func (repository *memoryRepository) DeleteSeries(_ context.Context, userID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for index, existing := range repository.series {
		if existing.ID == id && existing.UserID == userID {
			repository.series = append(repository.series[:index], repository.series[index+1:]...)
			for _, volume := range repository.volumes {
				if volume.SeriesID != nil && *volume.SeriesID == id {
					volume.SeriesID = nil
				}
			}
			return nil
		}
	}
	return apperr.NotFound("Series")
}

func (repository *memoryRepository) ListVolumes(_ context.Context, userID string) ([]*library.Volume, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	result := make([]*library.Volume, 0)
	for _, volume := range repository.volumes {
		if volume.UserID == userID {
			clone := *volume
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (repository *memoryRepository) FindVolume(_ context.Context, userID, id string) (*library.Volume, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, volume := range repository.volumes {
		if volume.ID == id && volume.UserID == userID {
			clone := *volume
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Volume")
}

func (repository *memoryRepository) CreateVolume(_ context.Context, volume *library.Volume) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	clone := *volume
	repository.volumes = append(repository.volumes, &clone)
	return nil
}

func (repository *memoryRepository) UpdateVolume(_ context.Context, volume *library.Volume) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for index, existing := range repository.volumes {
		if existing.ID == volume.ID && existing.UserID == volume.UserID {
			clone := *volume
			repository.volumes[index] = &clone
			return nil
		}
	}
	return apperr.NotFound("Volume")
}

func (repository *memoryRepository) DeleteVolume(_ context.Context, userID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for index, existing := range repository.volumes {
		if existing.ID == id && existing.UserID == userID {
			repository.volumes = append(repository.volumes[:index], repository.volumes[index+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Volume")
}

func (repository *memoryRepository) MaxVolumeNumber(_ context.Context, userID, seriesID string) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	highest := 0
	for _, volume := range repository.volumes {
		if volume.UserID == userID && volume.SeriesID != nil && *volume.SeriesID == seriesID {
			highest = max(highest, volume.Number)
		}
	}
	return highest, nil
}

// memoryCache is an in-memory [library.SnapshotCache]. Setting failing makes
// every call return an error.
type memoryCache struct {
	mu        sync.Mutex
	entries   map[string]*library.Snapshot
	failing   bool
	sets      int
	invalided int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*library.Snapshot)}
}

var errCacheDown = errors.New("cache down")

func (cache *memoryCache) Get(_ context.Context, userID string) (*library.Snapshot, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.failing {
		return nil, errCacheDown
	}
	snapshot, found := cache.entries[userID]
	if !found {
		return nil, library.ErrCacheMiss
	}
	return snapshot, nil
}

func (cache *memoryCache) Set(_ context.Context, userID string, snapshot *library.Snapshot) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.failing {
		return errCacheDown
	}
	cache.sets++
	cache.entries[userID] = snapshot
	return nil
}

func (cache *memoryCache) Invalidate(_ context.Context, userID string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.failing {
		return errCacheDown
	}
	cache.invalided++
	delete(cache.entries, userID)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
