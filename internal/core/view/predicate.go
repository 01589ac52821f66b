// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"slices"
	"strings"

	"github.com/taibuivan/shelfy/internal/core/library"
)

// # Text Search

// containsLower reports whether the lower-cased field contains search.
// A nil field never matches.
func containsLower(field *string, search string) bool {
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), search)
}

func seriesMatchesSearch(series *library.Series, search string) bool {
	return strings.Contains(strings.ToLower(series.Title), search) ||
		containsLower(series.Author, search) ||
		containsLower(series.Description, search)
}

func volumeMatchesSearch(volume *library.Volume, search string) bool {
	return containsLower(volume.Title, search) || containsLower(volume.ISBN, search)
}

// MatchesSearch reports whether a series matches the normalized search string
// on its title, author or description. An empty search matches everything.
func MatchesSearch(series *library.Series, search string) bool {
	return search == "" || seriesMatchesSearch(series, search)
}

// # Categorical Filters

// matchesValue compares an optional entity field against a categorical filter.
func matchesValue[T ~string](field *T, filter T) bool {
	if isAll(filter) {
		return true
	}
	return field != nil && *field == filter
}

// anyVolume reports whether at least one volume satisfies the test.
func anyVolume(volumes []*library.Volume, test func(*library.Volume) bool) bool {
	return slices.ContainsFunc(volumes, test)
}

func anyOwnership(volumes []*library.Volume, filter library.Ownership) bool {
	if isAll(filter) {
		return true
	}
	return anyVolume(volumes, func(v *library.Volume) bool { return v.Ownership == filter })
}

func anyReading(volumes []*library.Volume, filter library.ReadingStatus) bool {
	if isAll(filter) {
		return true
	}
	return anyVolume(volumes, func(v *library.Volume) bool { return v.Reading == filter })
}

// # Tags

// MatchesTags reports whether tags contains every include tag and none of the
// exclude tags. A single excluded tag disqualifies. Tags are case-sensitive.
func MatchesTags(tags, include, exclude []string) bool {
	for _, tag := range include {
		if !slices.Contains(tags, tag) {
			return false
		}
	}
	for _, tag := range exclude {
		if slices.Contains(tags, tag) {
			return false
		}
	}
	return true
}

// # Data Completeness

// isBlank reports whether an optional field is absent or whitespace only.
func isBlank(field *string) bool {
	return field == nil || strings.TrimSpace(*field) == ""
}

// matchesCompleteness tests one optional field.
func matchesCompleteness(field *string, mode Completeness) bool {
	switch mode {
	case CompletenessHas:
		return !isBlank(field)
	case CompletenessMissing:
		return isBlank(field)
	}
	return true
}

// anyCompleteness passes when at least one volume satisfies mode. With no
// volumes, only [CompletenessAll] passes.
func anyCompleteness(volumes []*library.Volume, field func(*library.Volume) *string, mode Completeness) bool {
	if isAll(mode) {
		return true
	}
	return anyVolume(volumes, func(v *library.Volume) bool { return matchesCompleteness(field(v), mode) })
}

func coverOf(v *library.Volume) *string { return v.CoverURL }
func isbnOf(v *library.Volume) *string  { return v.ISBN }

// # Collection Membership

// seriesInCollection passes when members is nil or at least one volume is a member.
func seriesInCollection(series *library.Series, members Membership) bool {
	if members == nil {
		return true
	}
	return anyVolume(series.Volumes, func(v *library.Volume) bool { return members.Contains(v.ID) })
}

// volumeInCollection passes when members is nil or the volume itself is a member.
func volumeInCollection(volume *library.Volume, members Membership) bool {
	return members == nil || members.Contains(volume.ID)
}
