// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shelfy/internal/platform/request"
	"github.com/taibuivan/shelfy/internal/platform/respond"
	"github.com/taibuivan/shelfy/pkg/slice"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /collections.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCollections)
	router.Post("/", handler.createCollection)
	router.Get("/{id}", handler.getCollection)
	router.Delete("/{id}", handler.deleteCollection)

	// ## Membership
	router.Put("/{id}/volumes/{volumeID}", handler.addVolume)
	router.Delete("/{id}/volumes/{volumeID}", handler.removeVolume)

	return router
}

// summary is the list representation; member IDs are only sent on detail reads.
type summary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	VolumeCount int     `json:"volume_count"`
}

func summarize(collection *Collection) summary {
	return summary{
		ID:          collection.ID,
		Name:        collection.Name,
		Slug:        collection.Slug,
		Description: collection.Description,
		VolumeCount: len(collection.VolumeIDs),
	}
}

/*
GET /api/v1/collections.

Response:
  - 200: []summary: Ordered by name
*/
func (handler *Handler) listCollections(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	collections, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, slice.Map(collections, summarize))
}

/*
GET /api/v1/collections/{id}.

Request:
  - id: string (UUID or slug)

Response:
  - 200: Collection
  - 404: ErrNotFound
*/
func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.service.Get(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, collection)
}

/*
POST /api/v1/collections.

Request (Body):
  - CreateInput: JSON object

Response:
  - 201: Collection
  - 400: Validation failure
  - 409: A collection with the same slug exists
*/
func (handler *Handler) createCollection(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, collection)
}

func (handler *Handler) deleteCollection(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/v1/collections/{id}/volumes/{volumeID}.

Description: Idempotently adds a volume to the collection.

Response:
  - 204: No Content
  - 404: Collection or volume not found
*/
func (handler *Handler) addVolume(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.AddVolume(request.Context(), userID,
		requestutil.ID(request, "id"), requestutil.ID(request, "volumeID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) removeVolume(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.RemoveVolume(request.Context(), userID,
		requestutil.ID(request, "id"), requestutil.ID(request, "volumeID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
