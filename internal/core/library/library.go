// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library defines the entities of a personal media collection.

A user's shelf is a two-level hierarchy: a [Series] owns an ordered list of
[Volume] records, and a volume may also exist on its own without a series
(an "orphan"). The package owns persistence and validation for both levels.

Core Responsibility:

  - Catalogue: Series metadata (type, publication status, free-form tags).
  - Tracking: Per-volume ownership, reading progress, rating and price.
  - Snapshot: A read-only, fully hydrated view of one user's shelf, consumed
    by the filter-and-sort engine.
*/
package library

import "time"

// # Domain Enums

// SeriesType classifies the medium of a series.
type SeriesType string

const (
	TypeManga      SeriesType = "manga"
	TypeLightNovel SeriesType = "light_novel"
	TypeComic      SeriesType = "comic"
	TypeBook       SeriesType = "book"
	TypeOther      SeriesType = "other"
)

// IsValid reports whether t is a recognised [SeriesType] value.
func (t SeriesType) IsValid() bool {
	switch t {
	case TypeManga, TypeLightNovel, TypeComic, TypeBook, TypeOther:
		return true
	}
	return false
}

// SeriesStatus is the publication status of a series.
type SeriesStatus string

const (
	// StatusOngoing indicates the publication is actively releasing volumes.
	StatusOngoing SeriesStatus = "ongoing"

	// StatusCompleted indicates no further volumes are expected.
	StatusCompleted SeriesStatus = "completed"

	// StatusHiatus indicates the publication is paused indefinitely.
	StatusHiatus SeriesStatus = "hiatus"

	// StatusCancelled indicates the publication was discontinued.
	StatusCancelled SeriesStatus = "cancelled"
)

// IsValid reports whether s is a recognised [SeriesStatus] value.
func (s SeriesStatus) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus, StatusCancelled:
		return true
	}
	return false
}

// Ownership describes how the user holds a volume.
type Ownership string

const (
	OwnershipOwned    Ownership = "owned"
	OwnershipWishlist Ownership = "wishlist"
	OwnershipDigital  Ownership = "digital"
)

// IsValid reports whether o is a recognised [Ownership] value.
func (o Ownership) IsValid() bool {
	switch o {
	case OwnershipOwned, OwnershipWishlist, OwnershipDigital:
		return true
	}
	return false
}

// ReadingStatus tracks the user's progress through a volume.
type ReadingStatus string

const (
	ReadingUnread    ReadingStatus = "unread"
	ReadingReading   ReadingStatus = "reading"
	ReadingCompleted ReadingStatus = "completed"
	ReadingOnHold    ReadingStatus = "on_hold"
	ReadingDropped   ReadingStatus = "dropped"
)

// IsValid reports whether r is a recognised [ReadingStatus] value.
func (r ReadingStatus) IsValid() bool {
	switch r {
	case ReadingUnread, ReadingReading, ReadingCompleted, ReadingOnHold, ReadingDropped:
		return true
	}
	return false
}

// # Core Entities

// Series is the parent entity of the shelf.
//
// Volumes is the authoritative source for every aggregate computed over the
// series (average rating, total price, reading dates).
type Series struct {
	ID          string        `json:"id"                    yaml:"id"`
	UserID      string        `json:"-"                     yaml:"-"`
	Title       string        `json:"title"                 yaml:"title"`
	Author      *string       `json:"author,omitempty"      yaml:"author,omitempty"`
	Description *string       `json:"description,omitempty" yaml:"description,omitempty"`
	Status      *SeriesStatus `json:"status,omitempty"      yaml:"status,omitempty"`
	Type        *SeriesType   `json:"type,omitempty"        yaml:"type,omitempty"`
	Tags        []string      `json:"tags"                  yaml:"tags,omitempty"` // Case-sensitive, deduplicated
	CreatedAt   time.Time     `json:"created_at"            yaml:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"            yaml:"updated_at"`
	Volumes     []*Volume     `json:"volumes"               yaml:"volumes,omitempty"`
}

// Volume is an individually tracked item. SeriesID is nil for orphans.
type Volume struct {
	ID          string        `json:"id"                    yaml:"id"`
	UserID      string        `json:"-"                     yaml:"-"`
	SeriesID    *string       `json:"series_id,omitempty"   yaml:"series_id,omitempty"`
	Number      int           `json:"number"                yaml:"number"` // Position within the series; not unique
	Title       *string       `json:"title,omitempty"       yaml:"title,omitempty"`
	Description *string       `json:"description,omitempty" yaml:"description,omitempty"`
	ISBN        *string       `json:"isbn,omitempty"        yaml:"isbn,omitempty"`
	CoverURL    *string       `json:"cover_url,omitempty"   yaml:"cover_url,omitempty"`
	Ownership   Ownership     `json:"ownership"             yaml:"ownership"`
	Reading     ReadingStatus `json:"reading"               yaml:"reading"`
	Rating      *float64      `json:"rating,omitempty"      yaml:"rating,omitempty"`
	Price       *float64      `json:"price,omitempty"       yaml:"price,omitempty"`
	PageCount   *int          `json:"page_count,omitempty"  yaml:"page_count,omitempty"`
	StartedAt   *string       `json:"started_at,omitempty"  yaml:"started_at,omitempty"`  // ISO-8601, user-entered
	FinishedAt  *string       `json:"finished_at,omitempty" yaml:"finished_at,omitempty"` // ISO-8601, user-entered
	CreatedAt   time.Time     `json:"created_at"            yaml:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"            yaml:"updated_at"`
}

// IsOrphan reports whether the volume is not attached to any series.
func (v *Volume) IsOrphan() bool {
	return v.SeriesID == nil || *v.SeriesID == ""
}

// Snapshot is the complete in-memory state of one user's shelf.
//
// Series carry their volumes already attached; Orphans holds every volume
// without a series. A snapshot is read-only once built.
type Snapshot struct {
	Series  []*Series `json:"series"  yaml:"series"`
	Orphans []*Volume `json:"orphans" yaml:"orphans"`
}

// VolumeCount returns the number of volumes in the snapshot, orphans included.
func (s *Snapshot) VolumeCount() int {
	total := len(s.Orphans)
	for _, series := range s.Series {
		total += len(series.Volumes)
	}
	return total
}

// # Field Identifiers

// Field names used in validation errors.
const (
	FieldTitle     = "title"
	FieldAuthor    = "author"
	FieldStatus    = "status"
	FieldType      = "type"
	FieldTags      = "tags"
	FieldSeriesID  = "series_id"
	FieldNumber    = "number"
	FieldISBN      = "isbn"
	FieldOwnership = "ownership"
	FieldReading   = "reading"
	FieldRating    = "rating"
	FieldPrice     = "price"
	FieldPageCount = "page_count"
	FieldStartedAt = "started_at"
	FieldFinished  = "finished_at"
)
