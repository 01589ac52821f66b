// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfy/internal/core/library"
	"github.com/taibuivan/shelfy/internal/platform/apperr"
	"github.com/taibuivan/shelfy/pkg/pointer"
	"github.com/taibuivan/shelfy/pkg/uuid"
)

const testUser = "user-1"

func newTestService(t *testing.T) (*library.Service, *memoryRepository, *memoryCache) {
	t.Helper()

	repository := newMemoryRepository()
	cache := newMemoryCache()
	return library.NewService(repository, cache, discardLogger()), repository, cache
}

func errorCode(err error) string {
	if appError := apperr.As(err); appError != nil {
		return appError.Code
	}
	return ""
}

// # Snapshot

/*
TestService_Snapshot_ReadThrough loads from the repository once, then serves
the cached snapshot.
*/
func TestService_Snapshot_ReadThrough(t *testing.T) {
	service, repository, cache := newTestService(t)
	ctx := context.Background()

	_, err := service.CreateSeries(ctx, testUser, library.SeriesInput{Title: "Berserk"})
	require.NoError(t, err)

	first, err := service.Snapshot(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, first.Series, 1)
	assert.Equal(t, 1, repository.listCalls)
	assert.Equal(t, 1, cache.sets)

	second, err := service.Snapshot(ctx, testUser)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, repository.listCalls)
}

/*
TestService_Snapshot_CacheFailure falls back to the repository.
*/
func TestService_Snapshot_CacheFailure(t *testing.T) {
	service, repository, cache := newTestService(t)
	ctx := context.Background()

	_, err := service.CreateSeries(ctx, testUser, library.SeriesInput{Title: "Monster"})
	require.NoError(t, err)

	cache.failing = true

	snapshot, err := service.Snapshot(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, snapshot.Series, 1)

	_, err = service.Snapshot(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2, repository.listCalls)
}

/*
TestService_Snapshot_NilCache works without a cache.
*/
func TestService_Snapshot_NilCache(t *testing.T) {
	service := library.NewService(newMemoryRepository(), nil, discardLogger())

	snapshot, err := service.Snapshot(context.Background(), testUser)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Series)
	assert.Empty(t, snapshot.Orphans)
}

/*
TestService_MutationsInvalidate drops the cached snapshot after each write.
*/
func TestService_MutationsInvalidate(t *testing.T) {
	service, _, cache := newTestService(t)
	ctx := context.Background()

	series, err := service.CreateSeries(ctx, testUser, library.SeriesInput{Title: "Vagabond"})
	require.NoError(t, err)

	_, err = service.Snapshot(ctx, testUser)
	require.NoError(t, err)

	_, err = service.CreateVolume(ctx, testUser, library.VolumeInput{SeriesID: &series.ID})
	require.NoError(t, err)

	snapshot, err := service.Snapshot(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, snapshot.Series, 1)
	assert.Len(t, snapshot.Series[0].Volumes, 1)
	assert.Equal(t, 2, cache.invalided)
}

/*
TestService_Tags aggregates tags from the snapshot.
*/
func TestService_Tags(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.CreateSeries(ctx, testUser, library.SeriesInput{Title: "A", Tags: []string{"seinen", "drama"}})
	require.NoError(t, err)
	_, err = service.CreateSeries(ctx, testUser, library.SeriesInput{Title: "B", Tags: []string{"seinen"}})
	require.NoError(t, err)

	tags, err := service.Tags(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, []library.TagCount{{Tag: "drama", Count: 1}, {Tag: "seinen", Count: 2}}, tags)
}

// # Series

/*
TestService_CreateSeries_Validation rejects bad input with field details.
*/
func TestService_CreateSeries_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input library.SeriesInput
		field string
	}{
		{"blank title", library.SeriesInput{Title: "   "}, library.FieldTitle},
		{"bad status", library.SeriesInput{Title: "X", Status: pointer.To(library.SeriesStatus("paused"))}, library.FieldStatus},
		{"bad type", library.SeriesInput{Title: "X", Type: pointer.To(library.SeriesType("film"))}, library.FieldType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			_, err := service.CreateSeries(context.Background(), testUser, tt.input)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			require.NotEmpty(t, appError.Details)
			assert.Equal(t, tt.field, appError.Details[0].Field)
		})
	}
}

/*
TestService_CreateSeries_Normalizes trims text and deduplicates tags.
*/
func TestService_CreateSeries_Normalizes(t *testing.T) {
	service, _, _ := newTestService(t)

	series, err := service.CreateSeries(context.Background(), testUser, library.SeriesInput{
		Title:  "  Blame!  ",
		Author: pointer.To("  "),
		Tags:   []string{"sf", " sf", "", "Sf"},
		Type:   pointer.To(library.TypeManga),
	})
	require.NoError(t, err)

	assert.True(t, uuid.Valid(series.ID))
	assert.Equal(t, "Blame!", series.Title)
	assert.Nil(t, series.Author)
	assert.Equal(t, []string{"sf", "Sf"}, series.Tags)
	assert.Equal(t, testUser, series.UserID)
}

/*
TestService_UpdateSeries applies only present fields and clears with "".
*/
func TestService_UpdateSeries(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.CreateSeries(ctx, testUser, library.SeriesInput{
		Title:  "Old",
		Author: pointer.To("Someone"),
		Status: pointer.To(library.StatusOngoing),
	})
	require.NoError(t, err)

	updated, err := service.UpdateSeries(ctx, testUser, created.ID, library.SeriesPatch{
		Title:  pointer.To("New"),
		Author: pointer.To(""),
		Status: pointer.To(""),
		Tags:   &[]string{"a", "a"},
	})
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Title)
	assert.Nil(t, updated.Author)
	assert.Nil(t, updated.Status)
	assert.Equal(t, []string{"a"}, updated.Tags)

	_, err = service.UpdateSeries(ctx, testUser, created.ID, library.SeriesPatch{Type: pointer.To("film")})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(err))
}

/*
TestService_SeriesNotFound covers malformed and foreign IDs.
*/
func TestService_SeriesNotFound(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.CreateSeries(ctx, testUser, library.SeriesInput{Title: "Mine"})
	require.NoError(t, err)

	_, err = service.GetSeries(ctx, testUser, "not-a-uuid")
	assert.Equal(t, "NOT_FOUND", errorCode(err))

	_, err = service.GetSeries(ctx, "someone-else", created.ID)
	assert.Equal(t, "NOT_FOUND", errorCode(err))

	err = service.DeleteSeries(ctx, testUser, uuid.New())
	assert.Equal(t, "NOT_FOUND", errorCode(err))
}

/*
TestService_DeleteSeries_OrphansVolumes keeps volumes of a deleted series.
*/
func TestService_DeleteSeries_OrphansVolumes(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	series, err := service.CreateSeries(ctx, testUser, library.SeriesInput{Title: "Gone"})
	require.NoError(t, err)
	volume, err := service.CreateVolume(ctx, testUser, library.VolumeInput{SeriesID: &series.ID})
	require.NoError(t, err)

	require.NoError(t, service.DeleteSeries(ctx, testUser, series.ID))

	snapshot, err := service.Snapshot(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Series)
	require.Len(t, snapshot.Orphans, 1)
	assert.Equal(t, volume.ID, snapshot.Orphans[0].ID)
}

// # Volumes

/*
TestService_CreateVolume_Defaults numbers volumes and fills enum defaults.
*/
func TestService_CreateVolume_Defaults(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	series, err := service.CreateSeries(ctx, testUser, library.SeriesInput{Title: "Numbered"})
	require.NoError(t, err)

	_, err = service.CreateVolume(ctx, testUser, library.VolumeInput{SeriesID: &series.ID, Number: 4})
	require.NoError(t, err)

	next, err := service.CreateVolume(ctx, testUser, library.VolumeInput{SeriesID: &series.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, next.Number)
	assert.Equal(t, library.OwnershipOwned, next.Ownership)
	assert.Equal(t, library.ReadingUnread, next.Reading)

	orphan, err := service.CreateVolume(ctx, testUser, library.VolumeInput{
		Title:     pointer.To("One-shot"),
		Ownership: library.OwnershipWishlist,
		ISBN:      pointer.To("978-4-06-123456-7"),
	})
	require.NoError(t, err)
	assert.True(t, orphan.IsOrphan())
	assert.Equal(t, 1, orphan.Number)
	assert.Equal(t, library.OwnershipWishlist, orphan.Ownership)
	assert.Equal(t, "9784061234567", *orphan.ISBN)
}

/*
TestService_CreateVolume_Validation rejects out-of-range values.
*/
func TestService_CreateVolume_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input library.VolumeInput
		field string
	}{
		{"unknown series", library.VolumeInput{SeriesID: pointer.To(uuid.New())}, library.FieldSeriesID},
		{"malformed series", library.VolumeInput{SeriesID: pointer.To("nope")}, library.FieldSeriesID},
		{"negative number", library.VolumeInput{Number: -1}, library.FieldNumber},
		{"rating too high", library.VolumeInput{Rating: pointer.To(5.5)}, library.FieldRating},
		{"negative price", library.VolumeInput{Price: pointer.To(-1.0)}, library.FieldPrice},
		{"zero pages", library.VolumeInput{PageCount: pointer.To(0)}, library.FieldPageCount},
		{"bad ownership", library.VolumeInput{Ownership: "borrowed"}, library.FieldOwnership},
		{"bad reading", library.VolumeInput{Reading: "skimmed"}, library.FieldReading},
		{"bad isbn", library.VolumeInput{ISBN: pointer.To("12345")}, library.FieldISBN},
		{"bad cover", library.VolumeInput{CoverURL: pointer.To("ftp://cover")}, "cover_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService(t)

			_, err := service.CreateVolume(context.Background(), testUser, tt.input)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			require.NotEmpty(t, appError.Details)
			assert.Equal(t, tt.field, appError.Details[0].Field)
		})
	}
}

/*
TestService_UpdateVolume detaches, clears numeric fields and rejects unknown clear names.
*/
func TestService_UpdateVolume(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	series, err := service.CreateSeries(ctx, testUser, library.SeriesInput{Title: "Parent"})
	require.NoError(t, err)
	volume, err := service.CreateVolume(ctx, testUser, library.VolumeInput{
		SeriesID: &series.ID,
		Rating:   pointer.To(4.0),
		Price:    pointer.To(9.99),
	})
	require.NoError(t, err)

	updated, err := service.UpdateVolume(ctx, testUser, volume.ID, library.VolumePatch{
		SeriesID: pointer.To(""),
		Reading:  pointer.To(string(library.ReadingCompleted)),
		Clear:    []string{library.FieldRating},
	})
	require.NoError(t, err)
	assert.True(t, updated.IsOrphan())
	assert.Nil(t, updated.Rating)
	assert.Equal(t, pointer.To(9.99), updated.Price)
	assert.Equal(t, library.ReadingCompleted, updated.Reading)

	_, err = service.UpdateVolume(ctx, testUser, volume.ID, library.VolumePatch{Clear: []string{"title"}})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(err))

	_, err = service.UpdateVolume(ctx, testUser, volume.ID, library.VolumePatch{Ownership: pointer.To("")})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(err))

	_, err = service.UpdateVolume(ctx, testUser, uuid.New(), library.VolumePatch{})
	assert.Equal(t, "NOT_FOUND", errorCode(err))
}

/*
TestService_DeleteVolume removes the volume from the snapshot.
*/
func TestService_DeleteVolume(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	volume, err := service.CreateVolume(ctx, testUser, library.VolumeInput{})
	require.NoError(t, err)

	require.NoError(t, service.DeleteVolume(ctx, testUser, volume.ID))
	assert.Equal(t, "NOT_FOUND", errorCode(service.DeleteVolume(ctx, testUser, volume.ID)))

	snapshot, err := service.Snapshot(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Orphans)
}
