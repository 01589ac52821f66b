// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/shelfy/internal/core/library"
	"github.com/taibuivan/shelfy/internal/core/view"
	"github.com/taibuivan/shelfy/internal/platform/metrics"
	"github.com/taibuivan/shelfy/pkg/pagination"
)

// SnapshotSource loads a user's hydrated shelf.
type SnapshotSource interface {
	Snapshot(context context.Context, userID string) (*library.Snapshot, error)
}

// MemberSource resolves a collection to its member volume IDs.
type MemberSource interface {
	Members(context context.Context, userID, identifier string) ([]string, error)
}

// # Service Layer

// Service runs view passes over the user's snapshot.
type Service struct {
	snapshots SnapshotSource
	members   MemberSource
	logger    *slog.Logger
}

// NewService constructs a browse [Service]. members may be nil, in which case
// the collection parameter is ignored.
func NewService(snapshots SnapshotSource, members MemberSource, logger *slog.Logger) *Service {
	return &Service{snapshots: snapshots, members: members, logger: logger}
}

// PairItem is one entry of the volumes scope: the volume plus enough of its
// series to render a row without a second lookup.
type PairItem struct {
	SeriesID    string          `json:"series_id"`
	SeriesTitle string          `json:"series_title"`
	Volume      *library.Volume `json:"volume"`
}

// Page is one paginated slice of a view result.
type Page struct {
	Scope  Scope
	Items  any // []*library.Series, []PairItem or []*library.Volume
	Total  int // Filtered size of the scope
	Params pagination.Params
	Sort   view.Sort
	Counts view.Counts
}

/*
View runs one engine pass for the user and returns the requested page.

Description: Loads the snapshot (cached), resolves the optional collection into
a membership set, assembles the view and paginates the sorted list of the
requested scope.

Parameters:
  - context: context.Context
  - userID: string
  - query: Query (from [ParseQuery])

Returns:
  - *Page: Items of the requested scope plus counts for every scope
  - error: Snapshot loading errors or NotFound for an unknown collection
*/
func (service *Service) View(context context.Context, userID string, query Query) (*Page, error) {
	snapshot, err := service.snapshots.Snapshot(context, userID)
	if err != nil {
		return nil, err
	}

	filter := query.Filter
	if query.Collection != "" && service.members != nil {
		volumeIDs, err := service.members.Members(context, userID, query.Collection)
		if err != nil {
			return nil, err
		}
		filter.ActiveCollection = view.NewMembership(volumeIDs...)
	}

	startTime := time.Now()
	result := view.AssembleSnapshot(snapshot, filter, query.Sort)
	metrics.RecordViewAssemble(string(query.Scope), time.Since(startTime), snapshot.VolumeCount())

	page := &Page{
		Scope:  query.Scope,
		Params: query.Page,
		Sort:   result.Sort,
		Counts: result.Counts,
	}

	switch query.Scope {
	case ScopeVolumes:
		page.Total = len(result.SortedPairs)
		page.Items = PairItems(pagination.Window(result.SortedPairs, query.Page))
	case ScopeOrphans:
		page.Total = len(result.SortedOrphans)
		page.Items = pagination.Window(result.SortedOrphans, query.Page)
	default:
		page.Total = len(result.SortedSeries)
		page.Items = pagination.Window(result.SortedSeries, query.Page)
	}

	service.logger.DebugContext(context, "library_view_assembled",
		slog.String("scope", string(query.Scope)),
		slog.String("sort", string(result.Sort.Field)),
		slog.Int("total", page.Total),
	)

	return page, nil
}

// PairItems converts engine pairs into their wire form.
func PairItems(pairs []view.Pair) []PairItem {
	items := make([]PairItem, len(pairs))
	for i, pair := range pairs {
		items[i] = PairItem{Volume: pair.Volume}
		if pair.Series != nil {
			items[i].SeriesID = pair.Series.ID
			items[i].SeriesTitle = pair.Series.Title
		}
	}
	return items
}
