// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"github.com/taibuivan/shelfy/internal/core/library"
	"github.com/taibuivan/shelfy/pkg/pointer"
)

// # Series/Volume Pairs

// Pair joins a volume with its owning series for the flattened "all volumes"
// listing. Several predicates and sort keys read the series (author, tags).
type Pair struct {
	Series *library.Series `json:"series"`
	Volume *library.Volume `json:"volume"`
}

func (p Pair) seriesTitle() string {
	if p.Series == nil {
		return ""
	}
	return p.Series.Title
}

func (p Pair) seriesAuthor() string {
	if p.Series == nil {
		return ""
	}
	return pointer.Val(p.Series.Author)
}

func (p Pair) seriesVolumeCount() int {
	if p.Series == nil {
		return 0
	}
	return len(p.Series.Volumes)
}

// Flatten pairs every volume with its series, keeping series order and the
// insertion order of volumes within each series.
func Flatten(series []*library.Series) []Pair {
	total := 0
	for _, entry := range series {
		total += len(entry.Volumes)
	}

	pairs := make([]Pair, 0, total)
	for _, entry := range series {
		for _, volume := range entry.Volumes {
			pairs = append(pairs, Pair{Series: entry, Volume: volume})
		}
	}
	return pairs
}

func volumesOf(pairs []Pair) []*library.Volume {
	volumes := make([]*library.Volume, len(pairs))
	for i, pair := range pairs {
		volumes[i] = pair.Volume
	}
	return volumes
}

// # View Assembly

// Input is everything one engine pass needs.
type Input struct {
	Series  []*library.Series
	Orphans []*library.Volume
	Filter  Filter
	Sort    Sort
}

// Counts carries list sizes for "select all" and pagination affordances.
type Counts struct {
	Series  int `json:"series"`
	Volumes int `json:"volumes"`
	Orphans int `json:"orphans"`

	TotalSeries  int `json:"total_series"`
	TotalVolumes int `json:"total_volumes"` // Volumes attached to a series
	TotalOrphans int `json:"total_orphans"`
}

// Result holds the derived lists of one pass. Filtered lists keep input order.
type Result struct {
	Series  []*library.Series
	Pairs   []Pair
	Orphans []*library.Volume

	SortedSeries  []*library.Series
	SortedPairs   []Pair
	SortedOrphans []*library.Volume

	Filter Filter
	Sort   Sort
	Counts Counts
}

// Assemble runs one full pass: filter every entity class, then sort each
// filtered list. Inputs are never modified and every output slice is newly
// allocated.
func Assemble(in Input) Result {
	filter := in.Filter.Normalize()
	sort := in.Sort.Normalize()

	pairs := Flatten(in.Series)

	result := Result{
		Series:  FilterSeries(in.Series, filter),
		Pairs:   FilterPairs(pairs, filter),
		Orphans: FilterOrphans(in.Orphans, filter),
		Filter:  filter,
		Sort:    sort,
	}

	result.SortedSeries = SortSeries(result.Series, sort)
	result.SortedPairs = SortPairs(result.Pairs, sort)
	result.SortedOrphans = SortOrphans(result.Orphans, sort)

	result.Counts = Counts{
		Series:       len(result.Series),
		Volumes:      len(result.Pairs),
		Orphans:      len(result.Orphans),
		TotalSeries:  len(in.Series),
		TotalVolumes: len(pairs),
		TotalOrphans: len(in.Orphans),
	}

	return result
}

// AssembleSnapshot is [Assemble] over a [library.Snapshot].
func AssembleSnapshot(snapshot *library.Snapshot, filter Filter, sort Sort) Result {
	if snapshot == nil {
		snapshot = &library.Snapshot{}
	}
	return Assemble(Input{
		Series:  snapshot.Series,
		Orphans: snapshot.Orphans,
		Filter:  filter,
		Sort:    sort,
	})
}
