package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPhotos(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestPhoto(t, "photo-1", "Sunset")
	ts.createTestPhoto(t, "photo-2", "Lake", "album-1")

	resp := ts.api.Get("/api/v1/photos")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body ListPhotosResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Photos, 2)
	assert.Equal(t, "Sunset", body.Photos[0].Name)
	assert.Equal(t, "Lake", body.Photos[1].Name)
}

func TestListPhotos_AlbumFilter(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestPhoto(t, "photo-1", "Sunset")
	ts.createTestPhoto(t, "photo-2", "Lake", "album-1")

	resp := ts.api.Get("/api/v1/photos?album=album-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListPhotosResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Photos, 1)
	assert.Equal(t, "photo-2", body.Photos[0].ID)

	// The reserved album id matches every photo.
	resp = ts.api.Get("/api/v1/photos?album=all")
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Photos, 2)
}

func TestListPhotos_SearchFilter(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestPhoto(t, "photo-1", "Mountain Sunset")
	ts.createTestPhoto(t, "photo-2", "Lake")

	resp := ts.api.Get("/api/v1/photos?search=sunset")
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListPhotosResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Photos, 1)
	assert.Equal(t, "photo-1", body.Photos[0].ID)
}

func TestGetPhoto(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestPhoto(t, "photo-1", "Sunset")

	resp := ts.api.Get("/api/v1/photos/photo-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var body PhotoResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "photo-1", body.ID)
	assert.Equal(t, "Sunset", body.Name)
}

func TestGetPhoto_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/photos/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdatePhoto(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestPhoto(t, "photo-1", "Sunset")

	resp := ts.api.Patch("/api/v1/photos/photo-1", map[string]any{
		"name": "Golden Hour",
		"tags": []string{"evening"},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body PhotoResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Golden Hour", body.Name)
	assert.Equal(t, []string{"evening"}, body.Tags)
}

func TestUpdatePhoto_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Patch("/api/v1/photos/missing", map[string]any{
		"name": "anything",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeletePhoto(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestPhoto(t, "photo-1", "Sunset")

	resp := ts.api.Delete("/api/v1/photos/photo-1")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/photos/photo-1")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeletePhoto_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Delete("/api/v1/photos/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBulkDeletePhotos_PartialFailure(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestPhoto(t, "photo-1", "Sunset")
	ts.createTestPhoto(t, "photo-2", "Lake")

	resp := ts.api.Post("/api/v1/photos/bulk-delete", map[string]any{
		"ids": []string{"photo-1", "missing", "photo-2"},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body BulkDeleteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Deleted)
	require.Len(t, body.Failed, 1)
	assert.Equal(t, "missing", body.Failed[0].ID)

	resp = ts.api.Get("/api/v1/photos")
	require.Equal(t, http.StatusOK, resp.Code)

	var list ListPhotosResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Empty(t, list.Photos)
}

func TestBulkDeletePhotos_EmptyBatch(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/photos/bulk-delete", map[string]any{
		"ids": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPhotoAlbumMembership(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestPhoto(t, "photo-1", "Sunset")
	ts.createTestAlbum(t, "album-1", "Trips")

	resp := ts.api.Post("/api/v1/photos/photo-1/albums/album-1")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body PhotoResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []string{"album-1"}, body.AlbumIDs)

	resp = ts.api.Delete("/api/v1/photos/photo-1/albums/album-1")
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Empty(t, body.AlbumIDs)
}

func TestPhotoAlbumMembership_ReservedAlbum(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestPhoto(t, "photo-1", "Sunset")

	resp := ts.api.Post("/api/v1/photos/photo-1/albums/all")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
