// Package api provides the HTTP API server and handlers for the PhotoVault application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/photovault/photovault-server/internal/config"
	"github.com/photovault/photovault-server/internal/media/images"
	"github.com/photovault/photovault-server/internal/ratelimit"
	"github.com/photovault/photovault-server/internal/search"
	"github.com/photovault/photovault-server/internal/sse"
	"github.com/photovault/photovault-server/internal/store"
	"github.com/photovault/photovault-server/internal/uploader"
	"github.com/photovault/photovault-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         *store.Store
	services      *Services
	uploads       *uploader.Orchestrator
	media         *images.Storage
	search        *search.SearchIndex
	sseHandler    *sse.Handler
	uploadLimiter *ratelimit.KeyedRateLimiter
	validator     *validation.Validator
	router        *chi.Mux
	api           huma.API
	logger        *slog.Logger

	maxUploadSize int64
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st *store.Store, services *Services, uploads *uploader.Orchestrator, media *images.Storage, searchIndex *search.SearchIndex, sseHandler *sse.Handler, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("PhotoVault API", cfg.App.Version)
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:         st,
		services:      services,
		uploads:       uploads,
		media:         media,
		search:        searchIndex,
		sseHandler:    sseHandler,
		uploadLimiter: ratelimit.New(float64(cfg.Upload.RatePerSecond), cfg.Upload.RateBurst),
		validator:     validation.New(),
		router:        router,
		api:           api,
		logger:        logger,
		maxUploadSize: cfg.Upload.MaxUploadSize,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned resources.
func (s *Server) Close() {
	s.uploadLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Typed JSON endpoints go through huma.
	s.registerHealthRoutes()
	s.registerPhotoRoutes()
	s.registerAlbumRoutes()
	s.registerSearchRoutes()

	// Multipart uploads, raw file serving and the event stream stay on
	// plain chi. Huma doesn't easily support multipart forms or SSE.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.With(s.uploadLimiter.Middleware).Post("/photos/upload", s.handleUploadPhotos)
		r.Get("/uploads/active", s.handleActiveUploads)
		r.Get("/photos/{id}/file", s.handleServePhotoFile)
		r.Get("/photos/{id}/thumbnail", s.handleServePhotoThumbnail)
		r.Get("/events", s.sseHandler.ServeHTTP)
	})
}
