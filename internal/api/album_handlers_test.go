package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAlbum(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/albums", map[string]any{
		"name":        "Summer 2025",
		"description": "Trip photos",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body AlbumResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "Summer 2025", body.Name)
	assert.Equal(t, "Trip photos", body.Description)
	assert.NotEmpty(t, body.AccentColor)
	assert.Zero(t, body.PhotoCount)
}

func TestCreateAlbum_BlankName(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/albums", map[string]any{
		"name": "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListAlbums_Counts(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestAlbum(t, "album-1", "Trips")
	ts.createTestPhoto(t, "photo-1", "Sunset", "album-1")
	ts.createTestPhoto(t, "photo-2", "Lake", "album-1")

	resp := ts.api.Get("/api/v1/albums")
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListAlbumsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Albums, 1)
	assert.Equal(t, 2, body.Albums[0].PhotoCount)
}

func TestGetAlbum(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestAlbum(t, "album-1", "Trips")
	ts.createTestPhoto(t, "photo-1", "Sunset", "album-1")

	resp := ts.api.Get("/api/v1/albums/album-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var body AlbumResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Trips", body.Name)
	assert.Equal(t, 1, body.PhotoCount)
}

func TestGetAlbum_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/albums/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateAlbum(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestAlbum(t, "album-1", "Trips")

	resp := ts.api.Patch("/api/v1/albums/album-1", map[string]any{
		"description": "All our trips",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body AlbumResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Trips", body.Name)
	assert.Equal(t, "All our trips", body.Description)
}

func TestDeleteAlbum_DetachesPhotos(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createTestAlbum(t, "album-1", "Trips")
	ts.createTestPhoto(t, "photo-1", "Sunset", "album-1")

	resp := ts.api.Delete("/api/v1/albums/album-1")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/photos/photo-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var photo PhotoResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &photo))
	assert.Empty(t, photo.AlbumIDs)
}
