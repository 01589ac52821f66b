// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package browse serves the filtered and sorted library view.

It is the HTTP adapter around the view engine: query parameters become an
immutable filter snapshot and sort specification, the user's snapshot is
loaded through the library service, and one engine pass produces the page.

# Query Parameters

  - q: string (substring search)
  - type, status, ownership, reading: categorical filters ("all" disables)
  - cover, isbn: completeness filters (all, has, missing)
  - include_tags, exclude_tags: comma-separated or repeated
  - collection: collection UUID or slug
  - sort: title, author, created_at, updated_at, rating, price,
    volume_count, started_at, finished_at
  - dir: asc, desc
  - scope: series, volumes, orphans
  - page, limit: pagination
*/
package browse

import (
	"net/url"
	"strings"

	"github.com/taibuivan/shelfy/internal/core/library"
	"github.com/taibuivan/shelfy/internal/core/view"
	"github.com/taibuivan/shelfy/pkg/pagination"
	"github.com/taibuivan/shelfy/pkg/query"
)

// Scope selects which list of the engine result is paginated.
type Scope string

const (
	ScopeSeries  Scope = "series"
	ScopeVolumes Scope = "volumes"
	ScopeOrphans Scope = "orphans"
)

// ParseScope resolves a raw scope name; unknown values fall back to [ScopeSeries].
func ParseScope(raw string) Scope {
	switch Scope(strings.ToLower(strings.TrimSpace(raw))) {
	case ScopeVolumes:
		return ScopeVolumes
	case ScopeOrphans:
		return ScopeOrphans
	}
	return ScopeSeries
}

// Query is a parsed view request.
type Query struct {
	Filter     view.Filter
	Sort       view.Sort
	Scope      Scope
	Collection string // UUID or slug; empty for no restriction
	Page       pagination.Params
}

// ParseQuery converts URL query values into a [Query]. It never fails:
// malformed values fall back to their defaults.
func ParseQuery(values url.Values) Query {
	return Query{
		Filter: view.Filter{
			Search:      values.Get("q"),
			Type:        library.SeriesType(categorical(values.Get("type"))),
			Status:      library.SeriesStatus(categorical(values.Get("status"))),
			Ownership:   library.Ownership(categorical(values.Get("ownership"))),
			Reading:     library.ReadingStatus(categorical(values.Get("reading"))),
			Cover:       view.ParseCompleteness(values.Get("cover")),
			ISBN:        view.ParseCompleteness(values.Get("isbn")),
			IncludeTags: query.Strings(values["include_tags"]),
			ExcludeTags: query.Strings(values["exclude_tags"]),
		}.Normalize(),
		Sort: view.Sort{
			Field:     view.ParseSortField(values.Get("sort")),
			Direction: view.ParseDirection(values.Get("dir")),
		},
		Scope:      ParseScope(values.Get("scope")),
		Collection: strings.TrimSpace(values.Get("collection")),
		Page: pagination.Clamp(
			query.Int(values.Get("page"), pagination.DefaultPage),
			query.Int(values.Get("limit"), pagination.DefaultLimit),
		),
	}
}

func categorical(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
