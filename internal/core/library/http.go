// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/shelfy/internal/platform/request"
	"github.com/taibuivan/shelfy/internal/platform/respond"
	"github.com/taibuivan/shelfy/pkg/pagination"
)

// # Handler Implementation

// Handler exposes series and volume management over HTTP.
// Every route acts on the authenticated user's own shelf.
type Handler struct {
	service *Service
}

// NewHandler constructs a new library [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SeriesRoutes returns the router mounted at /series.
func (handler *Handler) SeriesRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSeries)
	router.Post("/", handler.createSeries)
	router.Get("/{id}", handler.getSeries)
	router.Patch("/{id}", handler.updateSeries)
	router.Delete("/{id}", handler.deleteSeries)

	return router
}

// VolumeRoutes returns the router mounted at /volumes.
func (handler *Handler) VolumeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createVolume)
	router.Get("/{id}", handler.getVolume)
	router.Patch("/{id}", handler.updateVolume)
	router.Delete("/{id}", handler.deleteVolume)

	return router
}

/*
GET /api/v1/library/tags.

Description: Lists every distinct tag used by the user's series with the
number of series carrying it, sorted alphabetically.

Response:
  - 200: []TagCount
*/
func (handler *Handler) ListTags(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tags, err := handler.service.Tags(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

// # Series Endpoints

/*
GET /api/v1/series.

Description: Raw paginated series list in creation order, volumes attached.
Filtering and sorting live on /library/view.

Request:
  - page: int
  - limit: int

Response:
  - 200: []Series: Paginated list
*/
func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	snapshot, err := handler.service.Snapshot(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.Window(snapshot.Series, paginationParams)
	respond.Paginated(writer, page, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, len(snapshot.Series)))
}

/*
GET /api/v1/series/{id}.

Response:
  - 200: Series: With volumes ordered by number
  - 404: ErrNotFound
*/
func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.service.GetSeries(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, series)
}

/*
POST /api/v1/series.

Request (Body):
  - SeriesInput: JSON object

Response:
  - 201: Series: Created series
  - 400: Validation failure
*/
func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SeriesInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.service.CreateSeries(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, series)
}

/*
PATCH /api/v1/series/{id}.

Request (Body):
  - SeriesPatch: JSON object; omitted fields are unchanged, "" clears

Response:
  - 200: Series: Updated series
  - 400: Validation failure
  - 404: ErrNotFound
*/
func (handler *Handler) updateSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch SeriesPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.service.UpdateSeries(request.Context(), userID, requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, series)
}

/*
DELETE /api/v1/series/{id}.

Description: Deletes the series. Its volumes stay on the shelf as orphans.

Response:
  - 204: No Content
  - 404: ErrNotFound
*/
func (handler *Handler) deleteSeries(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSeries(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Volume Endpoints

/*
GET /api/v1/volumes/{id}.

Response:
  - 200: Volume
  - 404: ErrNotFound
*/
func (handler *Handler) getVolume(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, err := handler.service.GetVolume(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, volume)
}

/*
POST /api/v1/volumes.

Description: Creates a volume. Omitting series_id creates an orphan.

Request (Body):
  - VolumeInput: JSON object

Response:
  - 201: Volume: Created volume
  - 400: Validation failure (including an unknown series_id)
*/
func (handler *Handler) createVolume(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input VolumeInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, err := handler.service.CreateVolume(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, volume)
}

/*
PATCH /api/v1/volumes/{id}.

Request (Body):
  - VolumePatch: JSON object; "series_id": "" detaches the volume

Response:
  - 200: Volume: Updated volume
  - 400: Validation failure
  - 404: ErrNotFound
*/
func (handler *Handler) updateVolume(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch VolumePatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume, err := handler.service.UpdateVolume(request.Context(), userID, requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, volume)
}

/*
DELETE /api/v1/volumes/{id}.

Response:
  - 204: No Content
  - 404: ErrNotFound
*/
func (handler *Handler) deleteVolume(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteVolume(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
