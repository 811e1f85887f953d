package api

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/media/images"
	"github.com/photovault/photovault-server/internal/ratelimit"
	"github.com/photovault/photovault-server/internal/sse"
	"github.com/photovault/photovault-server/internal/service"
	"github.com/photovault/photovault-server/internal/store"
	"github.com/photovault/photovault-server/internal/uploader"
	"github.com/photovault/photovault-server/internal/validation"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api     humatest.TestAPI
	cleanup func()
}

// setupTestServer creates a fully wired server over a temp store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "photovault-api-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	st, err := store.New(filepath.Join(tmpDir, "test.db"), logger, store.NewNoopEmitter())
	require.NoError(t, err)

	media, err := images.NewStorage(filepath.Join(tmpDir, "media"), logger)
	require.NoError(t, err)

	photoService := service.NewPhotoService(st, logger, 0)
	albumService := service.NewAlbumService(st, logger, 0)
	services := &Services{Photos: photoService, Albums: albumService}

	uploads := uploader.NewOrchestrator(photoService, media, images.NewStaticProbe(), store.NewNoopEmitter(), 0, logger)

	sseManager := sse.NewManager(logger)
	sseHandler := sse.NewHandler(sseManager, logger)

	router := chi.NewRouter()
	humaConfig := huma.DefaultConfig("PhotoVault API Test", "1.0.0")
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:         st,
		services:      services,
		uploads:       uploads,
		media:         media,
		search:        nil, // search handlers not exercised here
		sseHandler:    sseHandler,
		uploadLimiter: ratelimit.New(100, 100),
		validator:     validation.New(),
		router:        router,
		api:           api,
		logger:        logger,
		maxUploadSize: 10 << 20,
	}

	s.setupRoutes()

	cleanup := func() {
		s.Close()
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, api),
		cleanup: cleanup,
	}
}

// createTestPhoto stores a photo record directly.
func (ts *testServer) createTestPhoto(t *testing.T, id, name string, albumIDs ...string) *domain.Photo {
	t.Helper()

	photo := &domain.Photo{
		Entity:     domain.Entity{ID: id},
		Name:       name,
		Filename:   name + ".jpg",
		UploadedAt: time.Now(),
		AlbumIDs:   albumIDs,
	}
	require.NoError(t, ts.store.CreatePhoto(context.Background(), photo))
	return photo
}

// createTestAlbum stores an album record directly.
func (ts *testServer) createTestAlbum(t *testing.T, id, name string) *domain.Album {
	t.Helper()

	album := &domain.Album{
		Entity: domain.Entity{ID: id},
		Name:   name,
	}
	require.NoError(t, ts.store.CreateAlbum(context.Background(), album))
	return album
}
