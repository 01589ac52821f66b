// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"cmp"
	"slices"
	"strings"
)

// BuildSnapshot attaches volumes to their series and collects the rest as orphans.
//
// Series keep the order they were given in; each series' volumes keep the
// order of the volumes slice. A volume pointing at a series missing from the
// input is treated as an orphan. Previously attached volumes are replaced.
func BuildSnapshot(series []*Series, volumes []*Volume) *Snapshot {
	snapshot := &Snapshot{
		Series:  make([]*Series, 0, len(series)),
		Orphans: make([]*Volume, 0),
	}

	byID := make(map[string]*Series, len(series))
	for _, item := range series {
		item.Volumes = make([]*Volume, 0)
		byID[item.ID] = item
		snapshot.Series = append(snapshot.Series, item)
	}

	for _, volume := range volumes {
		if volume.IsOrphan() {
			snapshot.Orphans = append(snapshot.Orphans, volume)
			continue
		}

		parent, found := byID[*volume.SeriesID]
		if !found {
			snapshot.Orphans = append(snapshot.Orphans, volume)
			continue
		}
		parent.Volumes = append(parent.Volumes, volume)
	}

	return snapshot
}

// FindSeries returns the series with the given ID, or nil.
func (s *Snapshot) FindSeries(id string) *Series {
	for _, series := range s.Series {
		if series.ID == id {
			return series
		}
	}
	return nil
}

// # Tags

// TagCount is one distinct tag and the number of series carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Tags lists the distinct tags across the snapshot's series, ordered
// case-insensitively with an exact tiebreak so "Manga" and "manga" stay distinct.
func (s *Snapshot) Tags() []TagCount {
	counts := make(map[string]int)
	for _, series := range s.Series {
		for _, tag := range series.Tags {
			counts[tag]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, TagCount{Tag: tag, Count: count})
	}

	slices.SortFunc(result, func(a, b TagCount) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.Tag), strings.ToLower(b.Tag)),
			strings.Compare(a.Tag, b.Tag),
		)
	})
	return result
}

// NormalizeTags trims tags, drops blanks and removes exact duplicates while
// keeping first-seen order. Tags are case-sensitive.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, duplicate := seen[tag]; duplicate {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
