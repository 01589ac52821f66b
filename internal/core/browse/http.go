// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"net/http"

	"github.com/taibuivan/shelfy/internal/core/view"
	requestutil "github.com/taibuivan/shelfy/internal/platform/request"
	"github.com/taibuivan/shelfy/internal/platform/respond"
	"github.com/taibuivan/shelfy/pkg/pagination"
)

// Handler serves GET /library/view.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Meta extends the pagination block with the resolved view parameters.
type Meta struct {
	pagination.Meta
	Scope  Scope       `json:"scope"`
	Sort   view.Sort   `json:"sort"`
	Counts view.Counts `json:"counts"`
}

/*
GET /api/v1/library/view.

Description: Filtered and sorted view of the user's shelf. See the package
documentation for the query parameters. The body carries a weak ETag; a
matching If-None-Match yields 304.

Response:
  - 200: Series, volume rows or orphans with Meta
  - 304: Not Modified
  - 404: Unknown collection
*/
func (handler *Handler) View(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := ParseQuery(request.URL.Query())

	page, err := handler.service.View(request.Context(), userID, query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Cached(writer, request, respond.MetaEnvelope{
		Data: page.Items,
		Meta: Meta{
			Meta:   pagination.NewMeta(page.Params.Page, page.Params.Limit, page.Total),
			Scope:  page.Scope,
			Sort:   page.Sort,
			Counts: page.Counts,
		},
	})
}
