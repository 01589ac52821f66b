// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"strings"

	"github.com/taibuivan/shelfy/internal/core/library"
)

// # Filter Snapshot

// All is the categorical filter value that disables the filter.
const All = "all"

// isAll reports whether a categorical filter value is unrestricted. The zero
// value is treated like [All].
func isAll[T ~string](value T) bool {
	return value == "" || string(value) == All
}

// Completeness filters on whether a field carries data.
type Completeness string

const (
	CompletenessAll     Completeness = All
	CompletenessHas     Completeness = "has"
	CompletenessMissing Completeness = "missing"
)

// ParseCompleteness maps a raw parameter onto a [Completeness]; unknown values disable the filter.
func ParseCompleteness(raw string) Completeness {
	switch Completeness(strings.ToLower(strings.TrimSpace(raw))) {
	case CompletenessHas:
		return CompletenessHas
	case CompletenessMissing:
		return CompletenessMissing
	}
	return CompletenessAll
}

// Membership is the set of volume IDs belonging to the active collection.
//
// A nil Membership means "no collection selected" and restricts nothing; an
// empty, non-nil one hides everything.
type Membership map[string]struct{}

// NewMembership builds a [Membership] from volume IDs.
func NewMembership(volumeIDs ...string) Membership {
	members := make(Membership, len(volumeIDs))
	for _, id := range volumeIDs {
		members[id] = struct{}{}
	}
	return members
}

// Contains reports whether the volume ID is a member.
func (m Membership) Contains(volumeID string) bool {
	_, ok := m[volumeID]
	return ok
}

// Filter is an immutable snapshot of the active filter selections.
type Filter struct {
	// Search is matched as a lower-case substring. Call [Filter.Normalize]
	// before filtering.
	Search string

	Type      library.SeriesType
	Status    library.SeriesStatus
	Ownership library.Ownership
	Reading   library.ReadingStatus

	Cover Completeness
	ISBN  Completeness

	IncludeTags []string
	ExcludeTags []string

	ActiveCollection Membership
}

// Normalize returns a copy with the search string trimmed and lower-cased and
// empty categorical values replaced by [All].
func (f Filter) Normalize() Filter {
	f.Search = strings.ToLower(strings.TrimSpace(f.Search))

	if isAll(f.Type) {
		f.Type = All
	}
	if isAll(f.Status) {
		f.Status = All
	}
	if isAll(f.Ownership) {
		f.Ownership = All
	}
	if isAll(f.Reading) {
		f.Reading = All
	}
	if isAll(f.Cover) {
		f.Cover = CompletenessAll
	}
	if isAll(f.ISBN) {
		f.ISBN = CompletenessAll
	}

	return f
}

// hasTagFilter reports whether any include or exclude tag is set.
func (f Filter) hasTagFilter() bool {
	return len(f.IncludeTags) > 0 || len(f.ExcludeTags) > 0
}

// # Sort Specification

// SortField names a sort key. The set is closed; see [ParseSortField].
type SortField string

const (
	SortTitle       SortField = "title"
	SortAuthor      SortField = "author"
	SortCreatedAt   SortField = "created_at"
	SortUpdatedAt   SortField = "updated_at"
	SortRating      SortField = "rating"       // Average across volumes
	SortPrice       SortField = "price"        // Sum across volumes
	SortVolumeCount SortField = "volume_count" // Number of volumes
	SortStartedAt   SortField = "started_at"   // Earliest reading start
	SortFinishedAt  SortField = "finished_at"  // Latest reading finish
)

// SortFields lists every recognised sort key in display order.
var SortFields = []SortField{
	SortTitle,
	SortAuthor,
	SortCreatedAt,
	SortUpdatedAt,
	SortRating,
	SortPrice,
	SortVolumeCount,
	SortStartedAt,
	SortFinishedAt,
}

// ParseSortField resolves a raw name ("rating", "createdAt", "volume-count")
// to a [SortField]. Unrecognised names resolve to [SortTitle].
func ParseSortField(raw string) SortField {
	wanted := compactName(raw)
	for _, field := range SortFields {
		if compactName(string(field)) == wanted {
			return field
		}
	}
	return SortTitle
}

// compactName lower-cases s and drops separators so snake, kebab and camel case compare equal.
func compactName(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection resolves "desc"/"descending" to [Descending]; anything else is [Ascending].
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc", "descending":
		return Descending
	}
	return Ascending
}

// multiplier is +1 for ascending and -1 for descending.
func (d Direction) multiplier() int {
	if d == Descending {
		return -1
	}
	return 1
}

// Sort is a sort key with its direction.
type Sort struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// Normalize maps unknown fields to [SortTitle] and unknown directions to [Ascending].
func (s Sort) Normalize() Sort {
	return Sort{
		Field:     ParseSortField(string(s.Field)),
		Direction: ParseDirection(string(s.Direction)),
	}
}
