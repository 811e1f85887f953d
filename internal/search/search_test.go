package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photovault/photovault-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) (*SearchIndex, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)

	index, err := NewSearchIndex(Options{
		DataPath: tmpDir,
		Logger:   nil,
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return index, cleanup
}

func testPhoto(id, name string) *domain.Photo {
	return &domain.Photo{
		Entity:     domain.Entity{ID: id, UpdatedAt: time.Now()},
		Name:       name,
		Filename:   name + ".jpg",
		UploadedAt: time.Now(),
	}
}

func TestNewSearchIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_IndexPhoto(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	err := index.IndexPhoto(context.Background(), testPhoto("photo-1", "Sunset Beach"))
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchIndex_IndexPhotos_Batch(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	photos := []*domain.Photo{
		testPhoto("photo-1", "Sunset Beach"),
		testPhoto("photo-2", "Mountain Hike"),
		testPhoto("photo-3", "City Lights"),
	}

	err := index.IndexPhotos(photos)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchIndex_DeletePhoto(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexPhoto(ctx, testPhoto("photo-1", "Sunset Beach")))

	err := index.DeletePhoto(ctx, "photo-1")
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearch_ByName(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexPhoto(ctx, testPhoto("photo-1", "Sunset Beach")))
	require.NoError(t, index.IndexPhoto(ctx, testPhoto("photo-2", "Mountain Hike")))

	params := DefaultSearchParams()
	params.Query = "sunset"

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "photo-1", result.Hits[0].ID)
	assert.Equal(t, "Sunset Beach", result.Hits[0].Name)
}

func TestSearch_FuzzyMatch(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexPhoto(ctx, testPhoto("photo-1", "Sunset Beach")))

	params := DefaultSearchParams()
	params.Query = "sunsett" // one edit away

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "photo-1", result.Hits[0].ID)
}

func TestSearch_AlbumFilter(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()

	inAlbum := testPhoto("photo-1", "Sunset Beach")
	inAlbum.AlbumIDs = []string{"album-1"}
	require.NoError(t, index.IndexPhoto(ctx, inAlbum))
	require.NoError(t, index.IndexPhoto(ctx, testPhoto("photo-2", "Sunset Pier")))

	params := DefaultSearchParams()
	params.Query = "sunset"
	params.AlbumID = "album-1"

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "photo-1", result.Hits[0].ID)
}

func TestSearch_TagFilter(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()

	tagged := testPhoto("photo-1", "Sunset Beach")
	tagged.Tags = []string{"golden-hour"}
	require.NoError(t, index.IndexPhoto(ctx, tagged))
	require.NoError(t, index.IndexPhoto(ctx, testPhoto("photo-2", "Mountain Hike")))

	params := DefaultSearchParams()
	params.Tags = []string{"golden-hour"}

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "photo-1", result.Hits[0].ID)
	assert.Equal(t, []string{"golden-hour"}, result.Hits[0].Tags)
}

func TestSearch_QueryMatchesTags(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()

	tagged := testPhoto("photo-1", "IMG_0042")
	tagged.Tags = []string{"Beach", "sunset"}
	require.NoError(t, index.IndexPhoto(ctx, tagged))
	require.NoError(t, index.IndexPhoto(ctx, testPhoto("photo-2", "IMG_0043")))

	// A free-text query hits tags even when the name gives nothing.
	params := DefaultSearchParams()
	params.Query = "beach"

	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "photo-1", result.Hits[0].ID)
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, index.IndexPhoto(ctx, testPhoto("photo-1", "Sunset Beach")))
	require.NoError(t, index.IndexPhoto(ctx, testPhoto("photo-2", "Mountain Hike")))

	result, err := index.Search(ctx, DefaultSearchParams())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}

func TestSearch_Reindex_UpdatesDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	ctx := context.Background()
	photo := testPhoto("photo-1", "Sunset Beach")
	require.NoError(t, index.IndexPhoto(ctx, photo))

	photo.Name = "Harbor at Dusk"
	require.NoError(t, index.IndexPhoto(ctx, photo))

	params := DefaultSearchParams()
	params.Query = "harbor"
	result, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)

	params.Query = "sunset"
	result, err = index.Search(ctx, params)
	require.NoError(t, err)
	assert.Empty(t, result.Hits)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}
