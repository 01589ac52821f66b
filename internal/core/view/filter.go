// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import "github.com/taibuivan/shelfy/internal/core/library"

// # Filter Composition
//
// Every entity class applies its checks in the same order: search,
// categorical, tags, completeness, collection membership. All checks are
// combined with AND and stop at the first failure.

func matchSeries(series *library.Series, f Filter) bool {
	if f.Search != "" && !seriesMatchesSearch(series, f.Search) {
		return false
	}

	if !matchesValue(series.Type, f.Type) ||
		!matchesValue(series.Status, f.Status) ||
		!anyOwnership(series.Volumes, f.Ownership) ||
		!anyReading(series.Volumes, f.Reading) {
		return false
	}

	if f.hasTagFilter() && !MatchesTags(series.Tags, f.IncludeTags, f.ExcludeTags) {
		return false
	}

	if !anyCompleteness(series.Volumes, coverOf, f.Cover) ||
		!anyCompleteness(series.Volumes, isbnOf, f.ISBN) {
		return false
	}

	return seriesInCollection(series, f.ActiveCollection)
}

func matchPair(pair Pair, f Filter) bool {
	series, volume := pair.Series, pair.Volume

	if f.Search != "" && !seriesMatchesSearch(series, f.Search) && !volumeMatchesSearch(volume, f.Search) {
		return false
	}

	if !matchesValue(series.Type, f.Type) || !matchesValue(series.Status, f.Status) {
		return false
	}
	if !isAll(f.Ownership) && volume.Ownership != f.Ownership {
		return false
	}
	if !isAll(f.Reading) && volume.Reading != f.Reading {
		return false
	}

	if f.hasTagFilter() && !MatchesTags(series.Tags, f.IncludeTags, f.ExcludeTags) {
		return false
	}

	if !matchesCompleteness(volume.CoverURL, f.Cover) || !matchesCompleteness(volume.ISBN, f.ISBN) {
		return false
	}

	return volumeInCollection(volume, f.ActiveCollection)
}

func matchOrphan(volume *library.Volume, f Filter) bool {
	if f.Search != "" && !volumeMatchesSearch(volume, f.Search) {
		return false
	}

	// An orphan has no series, so it has no type and no tags. Any filter on
	// either excludes it.
	if !isAll(f.Type) || f.hasTagFilter() {
		return false
	}

	if !isAll(f.Ownership) && volume.Ownership != f.Ownership {
		return false
	}
	if !isAll(f.Reading) && volume.Reading != f.Reading {
		return false
	}

	if !matchesCompleteness(volume.CoverURL, f.Cover) || !matchesCompleteness(volume.ISBN, f.ISBN) {
		return false
	}

	return volumeInCollection(volume, f.ActiveCollection)
}

// MatchSeries reports whether a single series passes the filter.
func MatchSeries(series *library.Series, f Filter) bool {
	return matchSeries(series, f.Normalize())
}

// MatchPair reports whether a single series/volume pair passes the filter.
func MatchPair(pair Pair, f Filter) bool {
	return matchPair(pair, f.Normalize())
}

// MatchOrphan reports whether a single orphaned volume passes the filter.
func MatchOrphan(volume *library.Volume, f Filter) bool {
	return matchOrphan(volume, f.Normalize())
}

// FilterSeries returns the series that pass f, in input order.
func FilterSeries(series []*library.Series, f Filter) []*library.Series {
	f = f.Normalize()
	result := make([]*library.Series, 0, len(series))
	for _, entry := range series {
		if matchSeries(entry, f) {
			result = append(result, entry)
		}
	}
	return result
}

// FilterPairs returns the pairs that pass f, in input order.
func FilterPairs(pairs []Pair, f Filter) []Pair {
	f = f.Normalize()
	result := make([]Pair, 0, len(pairs))
	for _, pair := range pairs {
		if matchPair(pair, f) {
			result = append(result, pair)
		}
	}
	return result
}

// FilterOrphans returns the orphaned volumes that pass f, in input order.
//
// The series status filter does not apply to orphans; type and tag filters
// exclude them outright.
func FilterOrphans(volumes []*library.Volume, f Filter) []*library.Volume {
	f = f.Normalize()
	result := make([]*library.Volume, 0, len(volumes))
	for _, volume := range volumes {
		if matchOrphan(volume, f) {
			result = append(result, volume)
		}
	}
	return result
}
