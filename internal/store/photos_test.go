package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/errors"
)

// setupTestStore creates a temporary store for testing
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "photovault-test-*")
	require.NoError(t, err)

	store, err := New(tmpDir, nil, NewNoopEmitter())
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

// Helper function to create a test photo
func createTestPhoto(id string) *domain.Photo {
	return &domain.Photo{
		Entity:      domain.Entity{ID: id},
		Name:        "Test Photo",
		Filename:    "test-photo.jpg",
		ContentType: "image/jpeg",
		URL:         "/api/v1/photos/" + id + "/file",
		Size:        1024000,
		Width:       1920,
		Height:      1080,
		UploadedAt:  time.Now(),
	}
}

func TestCreatePhoto(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	photo := createTestPhoto("photo-1")

	err := store.CreatePhoto(ctx, photo)
	require.NoError(t, err)

	assert.False(t, photo.CreatedAt.IsZero(), "create should assign timestamps")

	got, err := store.GetPhoto(ctx, "photo-1")
	require.NoError(t, err)
	assert.Equal(t, "Test Photo", got.Name)
	assert.Equal(t, "image/jpeg", got.ContentType)
	assert.Equal(t, 1920, got.Width)
}

func TestCreatePhoto_Duplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreatePhoto(ctx, createTestPhoto("photo-1")))

	err := store.CreatePhoto(ctx, createTestPhoto("photo-1"))
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestCreatePhoto_EmptyID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.CreatePhoto(context.Background(), createTestPhoto(""))
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestGetPhoto_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	photo, err := store.GetPhoto(context.Background(), "missing")
	assert.Nil(t, photo)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestListPhotos_InsertionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	// IDs chosen so byte order disagrees with insertion order.
	ids := []string{"photo-z", "photo-a", "photo-m"}
	for _, id := range ids {
		require.NoError(t, store.CreatePhoto(ctx, createTestPhoto(id)))
	}

	photos, err := store.ListPhotos(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 3)

	got := make([]string, 0, len(photos))
	for _, p := range photos {
		got = append(got, p.ID)
	}
	assert.Equal(t, ids, got, "listing must reflect insertion order, not key order")
}

func TestListPhotosByAlbum(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	inAlbum := createTestPhoto("photo-1")
	inAlbum.AddToAlbum("album-1")
	require.NoError(t, store.CreatePhoto(ctx, inAlbum))
	require.NoError(t, store.CreatePhoto(ctx, createTestPhoto("photo-2")))

	photos, err := store.ListPhotosByAlbum(ctx, "album-1")
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "photo-1", photos[0].ID)

	// The sentinel returns everything.
	all, err := store.ListPhotosByAlbum(ctx, domain.AllPhotos)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearchPhotos(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	sunset := createTestPhoto("photo-1")
	sunset.Name = "Sunset at the Café"
	require.NoError(t, store.CreatePhoto(ctx, sunset))

	mountain := createTestPhoto("photo-2")
	mountain.Name = "Mountain Hike"
	require.NoError(t, store.CreatePhoto(ctx, mountain))

	// Case and diacritic insensitive substring match.
	photos, err := store.SearchPhotos(ctx, "CAFE")
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "photo-1", photos[0].ID)

	// Empty term matches everything.
	photos, err = store.SearchPhotos(ctx, "")
	require.NoError(t, err)
	assert.Len(t, photos, 2)

	photos, err = store.SearchPhotos(ctx, "no such photo")
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestSearchPhotos_MatchesTags(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	tagged := createTestPhoto("photo-1")
	tagged.Name = "IMG_0042"
	tagged.Tags = []string{"Beach", "sunset"}
	require.NoError(t, store.CreatePhoto(ctx, tagged))

	plain := createTestPhoto("photo-2")
	plain.Name = "IMG_0043"
	require.NoError(t, store.CreatePhoto(ctx, plain))

	// Tags match case insensitively even when the name does not.
	photos, err := store.SearchPhotos(ctx, "beach")
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "photo-1", photos[0].ID)

	// Substring of a tag is enough.
	photos, err = store.SearchPhotos(ctx, "sun")
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "photo-1", photos[0].ID)
}

func TestUpdatePhoto(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreatePhoto(ctx, createTestPhoto("photo-1")))

	original, err := store.GetPhoto(ctx, "photo-1")
	require.NoError(t, err)

	updated := createTestPhoto("photo-1")
	updated.Name = "Renamed"
	require.NoError(t, store.UpdatePhoto(ctx, updated))

	got, err := store.GetPhoto(ctx, "photo-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, original.Seq, got.Seq, "updates must not reorder the gallery")
}

func TestUpdatePhoto_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.UpdatePhoto(context.Background(), createTestPhoto("missing"))
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDeletePhoto(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.CreatePhoto(ctx, createTestPhoto("photo-1")))

	removed, err := store.DeletePhoto(ctx, "photo-1")
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, "photo-1", removed.ID)

	_, err = store.GetPhoto(ctx, "photo-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestDeletePhoto_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	removed, err := store.DeletePhoto(context.Background(), "missing")
	assert.Nil(t, removed)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestCountPhotosByAlbum(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	for i := range 3 {
		photo := createTestPhoto(fmt.Sprintf("photo-%d", i))
		if i < 2 {
			photo.AddToAlbum("album-1")
		}
		require.NoError(t, store.CreatePhoto(ctx, photo))
	}

	count, err := store.CountPhotosByAlbum(ctx, "album-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Counts follow deletions immediately.
	_, err = store.DeletePhoto(ctx, "photo-0")
	require.NoError(t, err)

	count, err = store.CountPhotosByAlbum(ctx, "album-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreatePhoto_CancelledContext(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.CreatePhoto(ctx, createTestPhoto("photo-1"))
	assert.ErrorIs(t, err, context.Canceled)
}
