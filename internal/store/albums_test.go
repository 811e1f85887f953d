package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/errors"
)

// Helper function to create a test album
func createTestAlbum(id string) *domain.Album {
	return &domain.Album{
		Entity:      domain.Entity{ID: id},
		Name:        "Test Album",
		Description: "A test album",
	}
}

func TestCreateAlbum(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateAlbum(ctx, createTestAlbum("album-1")))

	got, err := store.GetAlbum(ctx, "album-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Album", got.Name)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateAlbum_ReservedID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.CreateAlbum(context.Background(), createTestAlbum(domain.AllPhotos))
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestCreateAlbum_Duplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateAlbum(ctx, createTestAlbum("album-1")))

	err := store.CreateAlbum(ctx, createTestAlbum("album-1"))
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestGetAlbum_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	album, err := store.GetAlbum(context.Background(), "missing")
	assert.Nil(t, album)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestListAlbums_InsertionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	ids := []string{"album-c", "album-a", "album-b"}
	for _, id := range ids {
		require.NoError(t, store.CreateAlbum(ctx, createTestAlbum(id)))
	}

	albums, err := store.ListAlbums(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 3)

	got := make([]string, 0, len(albums))
	for _, a := range albums {
		got = append(got, a.ID)
	}
	assert.Equal(t, ids, got)
}

func TestListAlbumsWithCounts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateAlbum(ctx, createTestAlbum("album-1")))
	require.NoError(t, store.CreateAlbum(ctx, createTestAlbum("album-2")))

	photo := createTestPhoto("photo-1")
	photo.AddToAlbum("album-1")
	require.NoError(t, store.CreatePhoto(ctx, photo))

	albums, err := store.ListAlbumsWithCounts(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, 1, albums[0].PhotoCount)
	assert.Equal(t, 0, albums[1].PhotoCount)
}

func TestUpdateAlbum(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateAlbum(ctx, createTestAlbum("album-1")))

	updated := createTestAlbum("album-1")
	updated.Name = "Renamed Album"
	require.NoError(t, store.UpdateAlbum(ctx, updated))

	got, err := store.GetAlbum(ctx, "album-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Album", got.Name)
}

func TestUpdateAlbum_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.UpdateAlbum(context.Background(), createTestAlbum("missing"))
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDeleteAlbum_DetachesPhotos(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreateAlbum(ctx, createTestAlbum("album-1")))

	photo := createTestPhoto("photo-1")
	photo.AddToAlbum("album-1")
	photo.AddToAlbum("album-2")
	require.NoError(t, store.CreatePhoto(ctx, photo))

	removed, err := store.DeleteAlbum(ctx, "album-1")
	require.NoError(t, err)
	assert.Equal(t, "album-1", removed.ID)

	// The photo survives the album, minus the membership.
	got, err := store.GetPhoto(ctx, "photo-1")
	require.NoError(t, err)
	assert.False(t, got.InAlbum("album-1"))
	assert.True(t, got.InAlbum("album-2"))
}

func TestDeleteAlbum_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	removed, err := store.DeleteAlbum(context.Background(), "missing")
	assert.Nil(t, removed)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
