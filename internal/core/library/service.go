// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/shelfy/internal/platform/apperr"
	"github.com/taibuivan/shelfy/internal/platform/metrics"
	"github.com/taibuivan/shelfy/internal/platform/validate"
	"github.com/taibuivan/shelfy/pkg/pointer"
	"github.com/taibuivan/shelfy/pkg/uuid"
)

// Limits enforced on user input.
const (
	maxTitleLen       = 500
	maxAuthorLen      = 300
	maxDescriptionLen = 10000
	maxTags           = 50
	maxTagLen         = 64
	maxDateLen        = 64
	maxRating         = 5.0
)

// # Service Layer

// Service orchestrates shelf mutations and snapshot loading.
// Every mutation invalidates the owner's cached snapshot.
type Service struct {
	repo   Repository
	cache  SnapshotCache
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service]. A nil cache disables caching.
func NewService(repo Repository, cache SnapshotCache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// # Snapshot

/*
Snapshot returns the user's complete shelf with volumes attached.

Description: Reads through the snapshot cache. A cache failure is logged
and treated as a miss; the repository result is written back best-effort.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Snapshot: Series (creation order, volumes by number) and orphans
  - error: Repository errors only
*/
func (service *Service) Snapshot(context context.Context, userID string) (*Snapshot, error) {
	cached, err := service.cache.Get(context, userID)
	switch {
	case err == nil:
		metrics.RecordSnapshotCache(metrics.OutcomeHit)
		return cached, nil
	case errors.Is(err, ErrCacheMiss):
		metrics.RecordSnapshotCache(metrics.OutcomeMiss)
	default:
		metrics.RecordSnapshotCache(metrics.OutcomeError)
		service.logger.WarnContext(context, "snapshot_cache_get_failed", slog.String("user_id", userID), slog.Any("error", err))
	}

	series, err := service.repo.ListSeries(context, userID)
	if err != nil {
		return nil, err
	}

	volumes, err := service.repo.ListVolumes(context, userID)
	if err != nil {
		return nil, err
	}

	snapshot := BuildSnapshot(series, volumes)

	if err := service.cache.Set(context, userID, snapshot); err != nil {
		service.logger.WarnContext(context, "snapshot_cache_set_failed", slog.String("user_id", userID), slog.Any("error", err))
	}

	return snapshot, nil
}

// Tags lists the distinct tags of the user's series with usage counts.
func (service *Service) Tags(context context.Context, userID string) ([]TagCount, error) {
	snapshot, err := service.Snapshot(context, userID)
	if err != nil {
		return nil, err
	}
	return snapshot.Tags(), nil
}

// invalidate drops the cached snapshot after a successful mutation.
func (service *Service) invalidate(context context.Context, userID string) {
	if err := service.cache.Invalidate(context, userID); err != nil {
		service.logger.WarnContext(context, "snapshot_cache_invalidate_failed", slog.String("user_id", userID), slog.Any("error", err))
	}
}

// # Series Management

// GetSeries returns one series with its volumes attached.
func (service *Service) GetSeries(context context.Context, userID, id string) (*Series, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Series")
	}

	snapshot, err := service.Snapshot(context, userID)
	if err != nil {
		return nil, err
	}

	series := snapshot.FindSeries(id)
	if series == nil {
		return nil, apperr.NotFound("Series")
	}
	return series, nil
}

// SeriesInput carries the writable fields of a series.
type SeriesInput struct {
	Title       string        `json:"title"`
	Author      *string       `json:"author"`
	Description *string       `json:"description"`
	Status      *SeriesStatus `json:"status"`
	Type        *SeriesType   `json:"type"`
	Tags        []string      `json:"tags"`
}

/*
CreateSeries validates input and persists a new series.

Parameters:
  - context: context.Context
  - userID: string (owner)
  - input: SeriesInput

Returns:
  - *Series: The stored entity with an empty volume list
  - error: Validation or persistence errors
*/
func (service *Service) CreateSeries(context context.Context, userID string, input SeriesInput) (*Series, error) {
	currentTime := service.now()

	series := &Series{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Author:      trimOptional(input.Author),
		Description: trimOptional(input.Description),
		Status:      input.Status,
		Type:        input.Type,
		Tags:        NormalizeTags(input.Tags),
		CreatedAt:   currentTime,
		UpdatedAt:   currentTime,
		Volumes:     []*Volume{},
	}

	if err := validateSeries(series); err != nil {
		return nil, err
	}

	if err := service.repo.CreateSeries(context, series); err != nil {
		return nil, err
	}
	service.invalidate(context, userID)

	service.logger.InfoContext(context, "series_created",
		slog.String("series_id", series.ID),
		slog.String("title", series.Title),
	)

	return series, nil
}

// SeriesPatch carries a partial series update; nil fields are left unchanged.
// An empty string clears an optional text or enum field.
type SeriesPatch struct {
	Title       *string   `json:"title"`
	Author      *string   `json:"author"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	Type        *string   `json:"type"`
	Tags        *[]string `json:"tags"`
}

/*
UpdateSeries applies a partial update to an existing series.

Parameters:
  - context: context.Context
  - userID: string (owner)
  - id: string (series UUID)
  - patch: SeriesPatch

Returns:
  - *Series: The updated entity (volumes not attached)
  - error: NotFound, validation or persistence errors
*/
func (service *Service) UpdateSeries(context context.Context, userID, id string, patch SeriesPatch) (*Series, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Series")
	}

	series, err := service.repo.FindSeries(context, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		series.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Author != nil {
		series.Author = trimOptional(patch.Author)
	}
	if patch.Description != nil {
		series.Description = trimOptional(patch.Description)
	}
	if patch.Status != nil {
		series.Status = optionalEnum[SeriesStatus](*patch.Status)
	}
	if patch.Type != nil {
		series.Type = optionalEnum[SeriesType](*patch.Type)
	}
	if patch.Tags != nil {
		series.Tags = NormalizeTags(*patch.Tags)
	}
	series.UpdatedAt = service.now()

	if err := validateSeries(series); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateSeries(context, series); err != nil {
		return nil, err
	}
	service.invalidate(context, userID)

	service.logger.InfoContext(context, "series_updated", slog.String("series_id", series.ID))

	return series, nil
}

// DeleteSeries removes a series. Its volumes are kept as orphans.
func (service *Service) DeleteSeries(context context.Context, userID, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound("Series")
	}

	if err := service.repo.DeleteSeries(context, userID, id); err != nil {
		return err
	}
	service.invalidate(context, userID)

	service.logger.WarnContext(context, "series_deleted", slog.String("series_id", id))

	return nil
}

// # Volume Management

// GetVolume returns one volume.
func (service *Service) GetVolume(context context.Context, userID, id string) (*Volume, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Volume")
	}
	return service.repo.FindVolume(context, userID, id)
}

// VolumeInput carries the writable fields of a volume.
type VolumeInput struct {
	SeriesID    *string       `json:"series_id"`
	Number      int           `json:"number"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	ISBN        *string       `json:"isbn"`
	CoverURL    *string       `json:"cover_url"`
	Ownership   Ownership     `json:"ownership"`
	Reading     ReadingStatus `json:"reading"`
	Rating      *float64      `json:"rating"`
	Price       *float64      `json:"price"`
	PageCount   *int          `json:"page_count"`
	StartedAt   *string       `json:"started_at"`
	FinishedAt  *string       `json:"finished_at"`
}

/*
CreateVolume validates input and persists a new volume.

Description: A volume without series_id is stored as an orphan. When number
is omitted, series volumes take the next number after the current highest
and orphans take 1. Ownership defaults to owned and reading to unread.

Parameters:
  - context: context.Context
  - userID: string (owner)
  - input: VolumeInput

Returns:
  - *Volume: The stored entity
  - error: Validation (including unknown series) or persistence errors
*/
func (service *Service) CreateVolume(context context.Context, userID string, input VolumeInput) (*Volume, error) {
	currentTime := service.now()

	volume := &Volume{
		ID:          uuid.New(),
		UserID:      userID,
		SeriesID:    trimOptional(input.SeriesID),
		Number:      input.Number,
		Title:       trimOptional(input.Title),
		Description: trimOptional(input.Description),
		ISBN:        normalizeISBN(input.ISBN),
		CoverURL:    trimOptional(input.CoverURL),
		Ownership:   pointer.Fallback(optionalEnum[Ownership](string(input.Ownership)), OwnershipOwned),
		Reading:     pointer.Fallback(optionalEnum[ReadingStatus](string(input.Reading)), ReadingUnread),
		Rating:      input.Rating,
		Price:       input.Price,
		PageCount:   input.PageCount,
		StartedAt:   trimOptional(input.StartedAt),
		FinishedAt:  trimOptional(input.FinishedAt),
		CreatedAt:   currentTime,
		UpdatedAt:   currentTime,
	}

	if err := service.checkSeries(context, userID, volume.SeriesID); err != nil {
		return nil, err
	}

	if volume.Number == 0 {
		next, err := service.nextNumber(context, userID, volume.SeriesID)
		if err != nil {
			return nil, err
		}
		volume.Number = next
	}

	if err := validateVolume(volume); err != nil {
		return nil, err
	}

	if err := service.repo.CreateVolume(context, volume); err != nil {
		return nil, err
	}
	service.invalidate(context, userID)

	service.logger.InfoContext(context, "volume_created",
		slog.String("volume_id", volume.ID),
		slog.String("series_id", pointer.Val(volume.SeriesID)),
		slog.Int("number", volume.Number),
	)

	return volume, nil
}

// VolumePatch carries a partial volume update; nil fields are left unchanged.
//
// Text fields are cleared with an empty string. Numeric fields cannot be
// expressed as "absent" in JSON, so they are cleared by naming them in Clear.
type VolumePatch struct {
	SeriesID    *string  `json:"series_id"` // "" detaches the volume (orphan)
	Number      *int     `json:"number"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ISBN        *string  `json:"isbn"`
	CoverURL    *string  `json:"cover_url"`
	Ownership   *string  `json:"ownership"`
	Reading     *string  `json:"reading"`
	Rating      *float64 `json:"rating"`
	Price       *float64 `json:"price"`
	PageCount   *int     `json:"page_count"`
	StartedAt   *string  `json:"started_at"`
	FinishedAt  *string  `json:"finished_at"`
	Clear       []string `json:"clear"` // rating, price, page_count
}

/*
UpdateVolume applies a partial update to an existing volume.

Parameters:
  - context: context.Context
  - userID: string (owner)
  - id: string (volume UUID)
  - patch: VolumePatch

Returns:
  - *Volume: The updated entity
  - error: NotFound, validation or persistence errors
*/
func (service *Service) UpdateVolume(context context.Context, userID, id string, patch VolumePatch) (*Volume, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Volume")
	}

	volume, err := service.repo.FindVolume(context, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.SeriesID != nil {
		volume.SeriesID = trimOptional(patch.SeriesID)
		if err := service.checkSeries(context, userID, volume.SeriesID); err != nil {
			return nil, err
		}
	}
	if patch.Number != nil {
		volume.Number = *patch.Number
	}
	if patch.Title != nil {
		volume.Title = trimOptional(patch.Title)
	}
	if patch.Description != nil {
		volume.Description = trimOptional(patch.Description)
	}
	if patch.ISBN != nil {
		volume.ISBN = normalizeISBN(patch.ISBN)
	}
	if patch.CoverURL != nil {
		volume.CoverURL = trimOptional(patch.CoverURL)
	}
	if patch.Ownership != nil {
		volume.Ownership = Ownership(*patch.Ownership)
	}
	if patch.Reading != nil {
		volume.Reading = ReadingStatus(*patch.Reading)
	}
	if patch.Rating != nil {
		volume.Rating = patch.Rating
	}
	if patch.Price != nil {
		volume.Price = patch.Price
	}
	if patch.PageCount != nil {
		volume.PageCount = patch.PageCount
	}
	if patch.StartedAt != nil {
		volume.StartedAt = trimOptional(patch.StartedAt)
	}
	if patch.FinishedAt != nil {
		volume.FinishedAt = trimOptional(patch.FinishedAt)
	}

	validator := &validate.Validator{}
	for _, field := range patch.Clear {
		switch field {
		case FieldRating:
			volume.Rating = nil
		case FieldPrice:
			volume.Price = nil
		case FieldPageCount:
			volume.PageCount = nil
		default:
			validator.OneOf("clear", field, FieldRating, FieldPrice, FieldPageCount)
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	volume.UpdatedAt = service.now()

	if err := validateVolume(volume); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateVolume(context, volume); err != nil {
		return nil, err
	}
	service.invalidate(context, userID)

	service.logger.InfoContext(context, "volume_updated", slog.String("volume_id", volume.ID))

	return volume, nil
}

// DeleteVolume removes a volume; collection memberships go with it.
func (service *Service) DeleteVolume(context context.Context, userID, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound("Volume")
	}

	if err := service.repo.DeleteVolume(context, userID, id); err != nil {
		return err
	}
	service.invalidate(context, userID)

	service.logger.WarnContext(context, "volume_deleted", slog.String("volume_id", id))

	return nil
}

// # Internal Helpers

// checkSeries verifies that a referenced parent series exists for the owner.
func (service *Service) checkSeries(context context.Context, userID string, seriesID *string) error {
	if seriesID == nil {
		return nil
	}

	if !uuid.Valid(*seriesID) {
		return validate.RequiredError(FieldSeriesID, "Must reference an existing series")
	}

	if _, err := service.repo.FindSeries(context, userID, *seriesID); err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return validate.RequiredError(FieldSeriesID, "Must reference an existing series")
		}
		return err
	}
	return nil
}

// nextNumber picks the number for a volume created without one.
func (service *Service) nextNumber(context context.Context, userID string, seriesID *string) (int, error) {
	if seriesID == nil {
		return 1, nil
	}

	highest, err := service.repo.MaxVolumeNumber(context, userID, *seriesID)
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

func validateSeries(series *Series) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, series.Title).MaxLen(FieldTitle, series.Title, maxTitleLen)

	if series.Author != nil {
		validator.MaxLen(FieldAuthor, *series.Author, maxAuthorLen)
	}
	if series.Description != nil {
		validator.MaxLen("description", *series.Description, maxDescriptionLen)
	}
	if series.Status != nil {
		validator.Custom(FieldStatus, !series.Status.IsValid(), "Must be one of: ongoing, completed, hiatus, cancelled")
	}
	if series.Type != nil {
		validator.Custom(FieldType, !series.Type.IsValid(), "Must be one of: manga, light_novel, comic, book, other")
	}

	validator.Tags(FieldTags, series.Tags, maxTags, maxTagLen)

	return validator.Err()
}

func validateVolume(volume *Volume) error {
	validator := &validate.Validator{}

	validator.Custom(FieldNumber, volume.Number < 1, "Must be a positive volume number")
	validator.Custom(FieldOwnership, !volume.Ownership.IsValid(), "Must be one of: owned, wishlist, digital")
	validator.Custom(FieldReading, !volume.Reading.IsValid(), "Must be one of: unread, reading, completed, on_hold, dropped")

	if volume.Title != nil {
		validator.MaxLen(FieldTitle, *volume.Title, maxTitleLen)
	}
	if volume.Description != nil {
		validator.MaxLen("description", *volume.Description, maxDescriptionLen)
	}
	if volume.ISBN != nil {
		validator.ISBN(FieldISBN, *volume.ISBN)
	}
	if volume.CoverURL != nil {
		validator.HTTPURL("cover_url", *volume.CoverURL)
	}
	if volume.Rating != nil {
		validator.FloatRange(FieldRating, *volume.Rating, 0, maxRating)
	}
	if volume.Price != nil {
		validator.NonNegative(FieldPrice, *volume.Price)
	}
	if volume.PageCount != nil {
		validator.Positive(FieldPageCount, *volume.PageCount)
	}
	if volume.StartedAt != nil {
		validator.MaxLen(FieldStartedAt, *volume.StartedAt, maxDateLen)
	}
	if volume.FinishedAt != nil {
		validator.MaxLen(FieldFinished, *volume.FinishedAt, maxDateLen)
	}

	return validator.Err()
}

// trimOptional trims an optional string and maps blank values to nil.
func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// optionalEnum maps "" to nil and anything else to a pointer of the enum type.
// Validity is checked separately so the error names the field.
func optionalEnum[T ~string](raw string) *T {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value := T(raw)
	return &value
}

// normalizeISBN strips hyphens and spaces and upper-cases a trailing x.
func normalizeISBN(raw *string) *string {
	trimmed := trimOptional(raw)
	if trimmed == nil {
		return nil
	}
	cleaned := strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(*trimmed))
	return &cleaned
}
