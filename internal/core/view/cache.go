// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"math"

	"github.com/taibuivan/shelfy/internal/core/library"
)

// # Aggregate Caches

// Cache maps a series ID to a value derived from its volumes.
//
// A cache is built once per filter/sort pass and never modified afterwards.
type Cache map[string]float64

// Get returns the cached value for a series, or 0 when absent.
func (c Cache) Get(seriesID string) float64 {
	return c[seriesID]
}

// Aggregate selects how [BuildVolumeCache] combines volume values.
type Aggregate int

const (
	// Sum adds every non-nil value.
	Sum Aggregate = iota

	// Average is the arithmetic mean of the non-nil values.
	Average
)

// DateStrategy selects which timestamp [BuildDateCache] keeps per series.
type DateStrategy int

const (
	// Earliest keeps the minimum valid timestamp.
	Earliest DateStrategy = iota

	// Latest keeps the maximum valid timestamp.
	Latest
)

// NumberExtractor reads an optional numeric field from a volume.
type NumberExtractor func(*library.Volume) *float64

// DateExtractor reads an optional ISO-8601 date field from a volume.
type DateExtractor func(*library.Volume) *string

// Standard extractors used by the sort keys.
var (
	VolumeRating     NumberExtractor = func(v *library.Volume) *float64 { return v.Rating }
	VolumePrice      NumberExtractor = func(v *library.Volume) *float64 { return v.Price }
	VolumeStartedAt  DateExtractor   = func(v *library.Volume) *string { return v.StartedAt }
	VolumeFinishedAt DateExtractor   = func(v *library.Volume) *string { return v.FinishedAt }
)

/*
BuildVolumeCache computes one number per series from its volumes in a single pass.

Nil values are skipped. A series without any non-nil value maps to exactly 0,
never NaN, and every series in the input has an entry.
*/
func BuildVolumeCache(series []*library.Series, extract NumberExtractor, mode Aggregate) Cache {
	cache := make(Cache, len(series))

	for _, entry := range series {
		var total float64
		var count int

		for _, volume := range entry.Volumes {
			value := extract(volume)
			if value == nil || math.IsNaN(*value) {
				continue
			}
			total += *value
			count++
		}

		switch {
		case count == 0:
			cache[entry.ID] = 0
		case mode == Average:
			cache[entry.ID] = total / float64(count)
		default:
			cache[entry.ID] = total
		}
	}

	return cache
}

/*
BuildDateCache keeps the earliest or latest valid volume timestamp per series.

Missing and unparseable dates are skipped rather than read as zero. A series
with no valid date maps to 0, which orders it before every dated series in
ascending order. A real event at the Unix epoch is therefore indistinguishable
from "no date"; sort order in the clients relies on undated series sorting first.
*/
func BuildDateCache(series []*library.Series, extract DateExtractor, strategy DateStrategy) Cache {
	cache := make(Cache, len(series))

	for _, entry := range series {
		found := false
		var best float64

		for _, volume := range entry.Volumes {
			raw := extract(volume)
			if raw == nil {
				continue
			}

			ts := ParseTimestamp(*raw)
			if math.IsNaN(ts) {
				continue
			}

			switch {
			case !found:
				best, found = ts, true
			case strategy == Latest && ts > best:
				best = ts
			case strategy == Earliest && ts < best:
				best = ts
			}
		}

		cache[entry.ID] = best
	}

	return cache
}
