// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/shelfy/internal/platform/apperr"
	"github.com/taibuivan/shelfy/internal/platform/validate"
	"github.com/taibuivan/shelfy/pkg/slug"
	"github.com/taibuivan/shelfy/pkg/uuid"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 2000
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) List(context context.Context, userID string) ([]*Collection, error) {
	return service.repo.List(context, userID)
}

/*
Get fetches a collection by UUID or by its per-user slug.

Description: UUID-shaped identifiers are resolved as primary keys; anything
else is treated as a slug.

Parameters:
  - context: context.Context
  - userID: string
  - identifier: string (UUID or slug)

Returns:
  - *Collection: With member volume IDs
  - error: NotFound when absent or owned by someone else
*/
func (service *Service) Get(context context.Context, userID, identifier string) (*Collection, error) {
	if uuid.Valid(identifier) {
		return service.repo.FindByID(context, userID, identifier)
	}
	return service.repo.FindBySlug(context, userID, identifier)
}

// Members returns the volume IDs of a collection, for use as a view filter.
func (service *Service) Members(context context.Context, userID, identifier string) ([]string, error) {
	collection, err := service.Get(context, userID, identifier)
	if err != nil {
		return nil, err
	}
	return collection.VolumeIDs, nil
}

// CreateInput carries the writable fields of a collection.
type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Create stores a new empty collection. The slug is derived from the name and
// must be unique for the user.
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Collection, error) {
	name := strings.TrimSpace(input.Name)

	var description *string
	if input.Description != nil {
		if trimmed := strings.TrimSpace(*input.Description); trimmed != "" {
			description = &trimmed
		}
	}

	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, maxNameLen)
	if description != nil {
		validator.MaxLen("description", *description, maxDescriptionLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	collectionSlug := slug.From(name)
	if collectionSlug == "" {
		return nil, validate.RequiredError("name", "Must contain at least one letter or digit")
	}

	if _, err := service.repo.FindBySlug(context, userID, collectionSlug); err == nil {
		return nil, apperr.Conflict("A collection with this name already exists")
	} else if !isNotFound(err) {
		return nil, err
	}

	currentTime := time.Now().UTC()
	collection := &Collection{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Slug:        collectionSlug,
		Description: description,
		VolumeIDs:   []string{},
		CreatedAt:   currentTime,
		UpdatedAt:   currentTime,
	}

	if err := service.repo.Create(context, collection); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "collection_created",
		slog.String("collection_id", collection.ID),
		slog.String("slug", collection.Slug),
	)

	return collection, nil
}

func (service *Service) Delete(context context.Context, userID, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound("Collection")
	}

	if err := service.repo.Delete(context, userID, id); err != nil {
		return err
	}

	service.logger.WarnContext(context, "collection_deleted", slog.String("collection_id", id))
	return nil
}

// AddVolume puts a volume into a collection; adding an existing member is a no-op.
func (service *Service) AddVolume(context context.Context, userID, collectionID, volumeID string) error {
	if !uuid.Valid(collectionID) || !uuid.Valid(volumeID) {
		return apperr.NotFound("Collection or volume")
	}

	if err := service.repo.AddVolume(context, userID, collectionID, volumeID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "collection_volume_added",
		slog.String("collection_id", collectionID),
		slog.String("volume_id", volumeID),
	)
	return nil
}

func (service *Service) RemoveVolume(context context.Context, userID, collectionID, volumeID string) error {
	if !uuid.Valid(collectionID) || !uuid.Valid(volumeID) {
		return apperr.NotFound("Collection member")
	}

	if err := service.repo.RemoveVolume(context, userID, collectionID, volumeID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "collection_volume_removed",
		slog.String("collection_id", collectionID),
		slog.String("volume_id", volumeID),
	)
	return nil
}

func isNotFound(err error) bool {
	var appError *apperr.AppError
	return errors.As(err, &appError) && appError.Code == "NOT_FOUND"
}
