package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/photovault/photovault-server/internal/http/response"
)

// handleServePhotoFile serves a photo's original file.
// GET /api/v1/photos/{id}/file
func (s *Server) handleServePhotoFile(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")
	if photoID == "" {
		response.BadRequest(w, "Photo ID is required", s.logger)
		return
	}

	path, err := s.media.OriginalPath(photoID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			response.NotFound(w, "Photo file not found", s.logger)
			return
		}
		s.logger.Error("Failed to locate photo file", "error", err, "photo_id", photoID)
		response.InternalError(w, "Failed to locate photo file", s.logger)
		return
	}

	http.ServeFile(w, r, path)
}

// handleServePhotoThumbnail serves a photo's thumbnail.
// GET /api/v1/photos/{id}/thumbnail
func (s *Server) handleServePhotoThumbnail(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")
	if photoID == "" {
		response.BadRequest(w, "Photo ID is required", s.logger)
		return
	}

	if !s.media.HasThumbnail(photoID) {
		response.NotFound(w, "Thumbnail not found", s.logger)
		return
	}

	http.ServeFile(w, r, s.media.ThumbnailPath(photoID))
}
