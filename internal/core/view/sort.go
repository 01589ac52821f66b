// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/taibuivan/shelfy/internal/core/library"
	"github.com/taibuivan/shelfy/pkg/pointer"
)

// # Sort Composition
//
// The primary comparison is multiplied by the direction. When it is zero the
// tie-break chain runs in ascending order regardless of direction: title,
// then (pairs and orphans) volume number, then ID. The ID step makes the
// order total, so the output never depends on input order.

type comparator[T any] func(a, b T) int

// sortWith clones items and sorts the clone.
func sortWith[T any](items []T, primary, tieBreak func(a, b T) int, direction Direction) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	multiplier := direction.multiplier()
	slices.SortFunc(sorted, func(a, b T) int {
		if result := primary(a, b) * multiplier; result != 0 {
			return result
		}
		return tieBreak(a, b)
	})

	return sorted
}

// SortSeries returns the series in the given order. The input slice is not modified.
func SortSeries(series []*library.Series, order Sort) []*library.Series {
	order = order.Normalize()

	strs := newStringComparer()
	defer strs.release()

	tieBreak := func(a, b *library.Series) int {
		if result := strs.compare(a.Title, b.Title); result != 0 {
			return result
		}
		return strings.Compare(a.ID, b.ID)
	}

	return sortWith(series, seriesComparator(series, order.Field, strs), tieBreak, order.Direction)
}

// seriesComparator picks the primary comparison for a field and builds the
// aggregate cache it needs once, up front.
func seriesComparator(series []*library.Series, field SortField, strs *stringComparer) comparator[*library.Series] {
	byCache := func(cache Cache) comparator[*library.Series] {
		return func(a, b *library.Series) int { return cmp.Compare(cache.Get(a.ID), cache.Get(b.ID)) }
	}

	switch field {
	case SortAuthor:
		return func(a, b *library.Series) int {
			return strs.compare(pointer.Val(a.Author), pointer.Val(b.Author))
		}
	case SortCreatedAt:
		return func(a, b *library.Series) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortUpdatedAt:
		return func(a, b *library.Series) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case SortRating:
		return byCache(BuildVolumeCache(series, VolumeRating, Average))
	case SortPrice:
		return byCache(BuildVolumeCache(series, VolumePrice, Sum))
	case SortVolumeCount:
		return func(a, b *library.Series) int { return cmp.Compare(len(a.Volumes), len(b.Volumes)) }
	case SortStartedAt:
		return byCache(BuildDateCache(series, VolumeStartedAt, Earliest))
	case SortFinishedAt:
		return byCache(BuildDateCache(series, VolumeFinishedAt, Latest))
	default:
		return func(a, b *library.Series) int { return strs.compare(a.Title, b.Title) }
	}
}

// SortPairs returns the pairs in the given order. The input slice is not modified.
//
// Title, author and volume count read the series; every other key reads the
// volume's own value.
func SortPairs(pairs []Pair, order Sort) []Pair {
	order = order.Normalize()

	strs := newStringComparer()
	defer strs.release()

	tieBreak := func(a, b Pair) int {
		if result := strs.compare(a.seriesTitle(), b.seriesTitle()); result != 0 {
			return result
		}
		if result := cmp.Compare(a.Volume.Number, b.Volume.Number); result != 0 {
			return result
		}
		return strings.Compare(a.Volume.ID, b.Volume.ID)
	}

	var primary comparator[Pair]
	switch order.Field {
	case SortTitle:
		primary = func(a, b Pair) int { return strs.compare(a.seriesTitle(), b.seriesTitle()) }
	case SortAuthor:
		primary = func(a, b Pair) int { return strs.compare(a.seriesAuthor(), b.seriesAuthor()) }
	case SortVolumeCount:
		primary = func(a, b Pair) int { return cmp.Compare(a.seriesVolumeCount(), b.seriesVolumeCount()) }
	default:
		own := volumeComparator(volumesOf(pairs), order.Field, strs)
		primary = func(a, b Pair) int { return own(a.Volume, b.Volume) }
	}

	return sortWith(pairs, primary, tieBreak, order.Direction)
}

// SortOrphans returns the orphaned volumes in the given order. The input slice is not modified.
//
// Orphans have no author and no siblings, so those keys compare equal and
// the tie-break decides.
func SortOrphans(volumes []*library.Volume, order Sort) []*library.Volume {
	order = order.Normalize()

	strs := newStringComparer()
	defer strs.release()

	tieBreak := func(a, b *library.Volume) int {
		if result := strs.compare(pointer.Val(a.Title), pointer.Val(b.Title)); result != 0 {
			return result
		}
		if result := cmp.Compare(a.Number, b.Number); result != 0 {
			return result
		}
		return strings.Compare(a.ID, b.ID)
	}

	var primary comparator[*library.Volume]
	switch order.Field {
	case SortTitle:
		primary = func(a, b *library.Volume) int {
			return strs.compare(pointer.Val(a.Title), pointer.Val(b.Title))
		}
	case SortAuthor, SortVolumeCount:
		primary = func(a, b *library.Volume) int { return 0 }
	default:
		primary = volumeComparator(volumes, order.Field, strs)
	}

	return sortWith(volumes, primary, tieBreak, order.Direction)
}

// volumeComparator compares volumes on their own values. Date keys are parsed
// once per volume before sorting; nil numbers and invalid dates read as 0.
func volumeComparator(volumes []*library.Volume, field SortField, strs *stringComparer) comparator[*library.Volume] {
	byDate := func(extract DateExtractor) comparator[*library.Volume] {
		keys := make(map[*library.Volume]float64, len(volumes))
		for _, volume := range volumes {
			keys[volume] = timestampOrZero(extract(volume))
		}
		return func(a, b *library.Volume) int { return cmp.Compare(keys[a], keys[b]) }
	}

	switch field {
	case SortCreatedAt:
		return func(a, b *library.Volume) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortUpdatedAt:
		return func(a, b *library.Volume) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case SortRating:
		return func(a, b *library.Volume) int { return cmp.Compare(pointer.Val(a.Rating), pointer.Val(b.Rating)) }
	case SortPrice:
		return func(a, b *library.Volume) int { return cmp.Compare(pointer.Val(a.Price), pointer.Val(b.Price)) }
	case SortStartedAt:
		return byDate(VolumeStartedAt)
	case SortFinishedAt:
		return byDate(VolumeFinishedAt)
	default:
		return func(a, b *library.Volume) int {
			return strs.compare(pointer.Val(a.Title), pointer.Val(b.Title))
		}
	}
}
