// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfy/internal/core/library"
	"github.com/taibuivan/shelfy/internal/platform/ctxutil"
	"github.com/taibuivan/shelfy/internal/platform/sec"
)

// newTestRouter mounts the library routes behind a fake authenticator.
func newTestRouter(service *library.Service, userID string) http.Handler {
	handler := library.NewHandler(service)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if userID != "" {
				claims := &sec.AuthClaims{UserID: userID, Role: string(sec.RoleCollector)}
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/series", handler.SeriesRoutes())
	router.Mount("/volumes", handler.VolumeRoutes())
	router.Get("/library/tags", handler.ListTags)
	return router
}

func serve(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

type envelope[T any] struct {
	Data T              `json:"data"`
	Meta map[string]int `json:"meta"`
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var body envelope[T]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_SeriesLifecycle creates, reads, patches, lists and deletes a series.
*/
func TestHandler_SeriesLifecycle(t *testing.T) {
	service, _, _ := newTestService(t)
	router := newTestRouter(service, testUser)

	created := serve(t, router, http.MethodPost, "/series", `{"title":"Akira","type":"manga","tags":["sf"]}`)
	require.Equal(t, http.StatusCreated, created.Code)
	series := decode[library.Series](t, created).Data
	assert.Equal(t, "Akira", series.Title)

	volume := serve(t, router, http.MethodPost, "/volumes", `{"series_id":"`+series.ID+`","rating":4.5}`)
	require.Equal(t, http.StatusCreated, volume.Code)

	fetched := serve(t, router, http.MethodGet, "/series/"+series.ID, "")
	require.Equal(t, http.StatusOK, fetched.Code)
	assert.Len(t, decode[library.Series](t, fetched).Data.Volumes, 1)

	patched := serve(t, router, http.MethodPatch, "/series/"+series.ID, `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, patched.Code)
	assert.Equal(t, library.StatusCompleted, *decode[library.Series](t, patched).Data.Status)

	listed := serve(t, router, http.MethodGet, "/series?limit=10", "")
	require.Equal(t, http.StatusOK, listed.Code)
	page := decode[[]library.Series](t, listed)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 1, page.Meta["total"])

	tags := serve(t, router, http.MethodGet, "/library/tags", "")
	require.Equal(t, http.StatusOK, tags.Code)
	assert.Equal(t, []library.TagCount{{Tag: "sf", Count: 1}}, decode[[]library.TagCount](t, tags).Data)

	deleted := serve(t, router, http.MethodDelete, "/series/"+series.ID, "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	missing := serve(t, router, http.MethodGet, "/series/"+series.ID, "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

/*
TestHandler_VolumeLifecycle covers orphan creation, patch and delete.
*/
func TestHandler_VolumeLifecycle(t *testing.T) {
	service, _, _ := newTestService(t)
	router := newTestRouter(service, testUser)

	created := serve(t, router, http.MethodPost, "/volumes", `{"title":"One-shot","reading":"reading"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	volume := decode[library.Volume](t, created).Data
	assert.True(t, volume.IsOrphan())
	assert.Equal(t, 1, volume.Number)

	patched := serve(t, router, http.MethodPatch, "/volumes/"+volume.ID, `{"rating":3}`)
	require.Equal(t, http.StatusOK, patched.Code)
	assert.Equal(t, 3.0, *decode[library.Volume](t, patched).Data.Rating)

	fetched := serve(t, router, http.MethodGet, "/volumes/"+volume.ID, "")
	assert.Equal(t, http.StatusOK, fetched.Code)

	deleted := serve(t, router, http.MethodDelete, "/volumes/"+volume.ID, "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)
}

/*
TestHandler_Errors maps validation, decoding and auth failures to statuses.
*/
func TestHandler_Errors(t *testing.T) {
	service, _, _ := newTestService(t)

	tests := []struct {
		name   string
		userID string
		method string
		path   string
		body   string
		status int
	}{
		{"unauthenticated", "", http.MethodGet, "/series", "", http.StatusUnauthorized},
		{"invalid json", testUser, http.MethodPost, "/series", `{"title":`, http.StatusBadRequest},
		{"missing title", testUser, http.MethodPost, "/series", `{"title":""}`, http.StatusBadRequest},
		{"bad rating", testUser, http.MethodPost, "/volumes", `{"rating":9}`, http.StatusBadRequest},
		{"malformed id", testUser, http.MethodGet, "/volumes/abc", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(service, tt.userID)
			assert.Equal(t, tt.status, serve(t, router, tt.method, tt.path, tt.body).Code)
		})
	}
}
