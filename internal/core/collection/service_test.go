// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfy/internal/core/collection"
	"github.com/taibuivan/shelfy/internal/platform/apperr"
	"github.com/taibuivan/shelfy/internal/platform/ctxutil"
	"github.com/taibuivan/shelfy/internal/platform/sec"
	"github.com/taibuivan/shelfy/pkg/pointer"
	"github.com/taibuivan/shelfy/pkg/uuid"
)

const testUser = "user-1"

// memoryRepository keeps collections in memory. volumes holds the IDs each
// user owns so membership checks behave like the database join.
type memoryRepository struct {
	mu          sync.Mutex
	collections []*collection.Collection
	volumes     map[string][]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{volumes: make(map[string][]string)}
}

func (repository *memoryRepository) List(_ context.Context, userID string) ([]*collection.Collection, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	result := make([]*collection.Collection, 0)
	for _, item := range repository.collections {
		if item.UserID == userID {
			clone := *item
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (repository *memoryRepository) find(userID string, match func(*collection.Collection) bool) (*collection.Collection, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, item := range repository.collections {
		if item.UserID == userID && match(item) {
			clone := *item
			clone.VolumeIDs = slices.Clone(item.VolumeIDs)
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Collection")
}

func (repository *memoryRepository) FindByID(_ context.Context, userID, id string) (*collection.Collection, error) {
	return repository.find(userID, func(item *collection.Collection) bool { return item.ID == id })
}

func (repository *memoryRepository) FindBySlug(_ context.Context, userID, slug string) (*collection.Collection, error) {
	return repository.find(userID, func(item *collection.Collection) bool { return item.Slug == slug })
}

func (repository *memoryRepository) Create(_ context.Context, item *collection.Collection) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	clone := *item
	repository.collections = append(repository.collections, &clone)
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, userID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for index, item := range repository.collections {
		if item.ID == id && item.UserID == userID {
			repository.collections = slices.Delete(repository.collections, index, index+1)
			return nil
		}
	}
	return apperr.NotFound("Collection")
}

func (repository *memoryRepository) AddVolume(_ context.Context, userID, collectionID, volumeID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if !slices.Contains(repository.volumes[userID], volumeID) {
		return apperr.NotFound("Collection or volume")
	}
	for _, item := range repository.collections {
		if item.ID == collectionID && item.UserID == userID {
			if !slices.Contains(item.VolumeIDs, volumeID) {
				item.VolumeIDs = append(item.VolumeIDs, volumeID)
			}
			return nil
		}
	}
	return apperr.NotFound("Collection or volume")
}

func (repository *memoryRepository) RemoveVolume(_ context.Context, userID, collectionID, volumeID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, item := range repository.collections {
		if item.ID == collectionID && item.UserID == userID {
			index := slices.Index(item.VolumeIDs, volumeID)
			if index < 0 {
				break
			}
			item.VolumeIDs = slices.Delete(item.VolumeIDs, index, index+1)
			return nil
		}
	}
	return apperr.NotFound("Collection member")
}

func newTestService() (*collection.Service, *memoryRepository) {
	repository := newMemoryRepository()
	return collection.NewService(repository, slog.New(slog.NewJSONHandler(io.Discard, nil))), repository
}

func errorCode(err error) string {
	if appError := apperr.As(err); appError != nil {
		return appError.Code
	}
	return ""
}

// # Service

/*
TestService_Create derives the slug and rejects duplicates and blank names.
*/
func TestService_Create(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, testUser, collection.CreateInput{
		Name:        "  Read in Été 2026 ",
		Description: pointer.To("   "),
	})
	require.NoError(t, err)
	assert.True(t, uuid.Valid(created.ID))
	assert.Equal(t, "Read in Été 2026", created.Name)
	assert.Equal(t, "read-in-ete-2026", created.Slug)
	assert.Nil(t, created.Description)
	assert.Empty(t, created.VolumeIDs)

	_, err = service.Create(ctx, testUser, collection.CreateInput{Name: "read in ete 2026"})
	assert.Equal(t, "CONFLICT", errorCode(err))

	_, err = service.Create(ctx, "other-user", collection.CreateInput{Name: "Read in Été 2026"})
	assert.NoError(t, err)

	_, err = service.Create(ctx, testUser, collection.CreateInput{Name: " "})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(err))

	_, err = service.Create(ctx, testUser, collection.CreateInput{Name: "!!!"})
	assert.Equal(t, "VALIDATION_ERROR", errorCode(err))
}

/*
TestService_Membership adds idempotently, resolves by slug and removes.
*/
func TestService_Membership(t *testing.T) {
	service, repository := newTestService()
	ctx := context.Background()

	volumeID := uuid.New()
	repository.volumes[testUser] = []string{volumeID}

	created, err := service.Create(ctx, testUser, collection.CreateInput{Name: "Favourites"})
	require.NoError(t, err)

	require.NoError(t, service.AddVolume(ctx, testUser, created.ID, volumeID))
	require.NoError(t, service.AddVolume(ctx, testUser, created.ID, volumeID))

	members, err := service.Members(ctx, testUser, "favourites")
	require.NoError(t, err)
	assert.Equal(t, []string{volumeID}, members)

	err = service.AddVolume(ctx, testUser, created.ID, uuid.New())
	assert.Equal(t, "NOT_FOUND", errorCode(err))

	err = service.AddVolume(ctx, "other-user", created.ID, volumeID)
	assert.Equal(t, "NOT_FOUND", errorCode(err))

	require.NoError(t, service.RemoveVolume(ctx, testUser, created.ID, volumeID))
	assert.Equal(t, "NOT_FOUND", errorCode(service.RemoveVolume(ctx, testUser, created.ID, volumeID)))

	members, err = service.Members(ctx, testUser, created.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

/*
TestService_MalformedIDs answer NotFound without touching the store.
*/
func TestService_MalformedIDs(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	assert.Equal(t, "NOT_FOUND", errorCode(service.Delete(ctx, testUser, "x")))
	assert.Equal(t, "NOT_FOUND", errorCode(service.AddVolume(ctx, testUser, "x", uuid.New())))
	assert.Equal(t, "NOT_FOUND", errorCode(service.RemoveVolume(ctx, testUser, uuid.New(), "y")))

	_, err := service.Members(ctx, testUser, "no-such-slug")
	assert.Equal(t, "NOT_FOUND", errorCode(err))
}

// # HTTP

/*
TestHandler_Routes exercises the collection endpoints end to end.
*/
func TestHandler_Routes(t *testing.T) {
	service, repository := newTestService()
	volumeID := uuid.New()
	repository.volumes[testUser] = []string{volumeID}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := &sec.AuthClaims{UserID: testUser, Role: string(sec.RoleCollector)}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
		})
	})
	router.Mount("/collections", collection.NewHandler(service).Routes())

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
		return recorder
	}

	created := serve(http.MethodPost, "/collections", `{"name":"To Read"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	assert.Contains(t, created.Body.String(), `"slug":"to-read"`)

	conflict := serve(http.MethodPost, "/collections", `{"name":"to read"}`)
	assert.Equal(t, http.StatusConflict, conflict.Code)

	stored, err := service.Members(context.Background(), testUser, "to-read")
	require.NoError(t, err)
	assert.Empty(t, stored)

	collections, err := service.List(context.Background(), testUser)
	require.NoError(t, err)
	require.Len(t, collections, 1)
	id := collections[0].ID

	assert.Equal(t, http.StatusNoContent, serve(http.MethodPut, "/collections/"+id+"/volumes/"+volumeID, "").Code)

	listed := serve(http.MethodGet, "/collections", "")
	require.Equal(t, http.StatusOK, listed.Code)
	assert.Contains(t, listed.Body.String(), `"volume_count":1`)
	assert.NotContains(t, listed.Body.String(), volumeID)

	bySlug := serve(http.MethodGet, "/collections/to-read", "")
	require.Equal(t, http.StatusOK, bySlug.Code)
	assert.Contains(t, bySlug.Body.String(), volumeID)

	assert.Equal(t, http.StatusNoContent, serve(http.MethodDelete, "/collections/"+id+"/volumes/"+volumeID, "").Code)
	assert.Equal(t, http.StatusNoContent, serve(http.MethodDelete, "/collections/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(http.MethodGet, "/collections/"+id, "").Code)
}
