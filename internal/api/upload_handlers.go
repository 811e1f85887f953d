package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/photovault/photovault-server/internal/http/response"
	"github.com/photovault/photovault-server/internal/uploader"
)

// handleUploadPhotos handles multipart photo uploads.
// POST /api/v1/photos/upload
// Content-Type: multipart/form-data with one or more "files" fields.
// This is a chi handler (not Huma) because Huma doesn't easily support multipart forms.
func (s *Server) handleUploadPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Upload too large", s.logger)
			return
		}
		response.BadRequest(w, "Failed to parse form data", s.logger)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		response.BadRequest(w, "No files uploaded. Use 'files' fields in multipart form", s.logger)
		return
	}

	files := make([]uploader.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			s.logger.Error("Failed to open uploaded file", "error", err, "filename", header.Filename)
			response.InternalError(w, "Failed to read uploaded file", s.logger)
			return
		}

		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			s.logger.Error("Failed to read uploaded file", "error", err, "filename", header.Filename)
			response.InternalError(w, "Failed to read uploaded file", s.logger)
			return
		}

		// Sniff the type from the bytes; the multipart header is
		// client-declared and trivially spoofed.
		files = append(files, uploader.File{
			Filename:    header.Filename,
			ContentType: http.DetectContentType(data),
			Data:        data,
		})
	}

	result, err := s.uploads.Upload(ctx, files)
	if err != nil {
		// Per-file failures are reported inside the result. An error here
		// means the whole batch was rejected or aborted.
		if result == nil || len(result.Photos) == 0 {
			response.HandleError(w, err, s.logger)
			return
		}
	}

	response.Created(w, result, s.logger)
}

// handleActiveUploads reports how many uploads are currently in flight.
// GET /api/v1/uploads/active
func (s *Server) handleActiveUploads(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]int{
		"active": s.uploads.ActiveUploads(),
	}, s.logger)
}
