package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/service"
)

func (s *Server) registerPhotoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPhotos",
		Method:      http.MethodGet,
		Path:        "/api/v1/photos",
		Summary:     "List photos",
		Description: "Returns photos in upload order, optionally filtered by album or name",
		Tags:        []string{"Photos"},
	}, s.handleListPhotos)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPhoto",
		Method:      http.MethodGet,
		Path:        "/api/v1/photos/{id}",
		Summary:     "Get photo",
		Description: "Returns a photo by ID",
		Tags:        []string{"Photos"},
	}, s.handleGetPhoto)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePhoto",
		Method:      http.MethodPatch,
		Path:        "/api/v1/photos/{id}",
		Summary:     "Update photo",
		Description: "Applies a partial update to a photo",
		Tags:        []string{"Photos"},
	}, s.handleUpdatePhoto)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePhoto",
		Method:      http.MethodDelete,
		Path:        "/api/v1/photos/{id}",
		Summary:     "Delete photo",
		Description: "Deletes a photo and its stored files",
		Tags:        []string{"Photos"},
	}, s.handleDeletePhoto)

	huma.Register(s.api, huma.Operation{
		OperationID: "bulkDeletePhotos",
		Method:      http.MethodPost,
		Path:        "/api/v1/photos/bulk-delete",
		Summary:     "Bulk delete photos",
		Description: "Deletes a batch of photos, isolating per-photo failures",
		Tags:        []string{"Photos"},
	}, s.handleBulkDeletePhotos)

	huma.Register(s.api, huma.Operation{
		OperationID: "addPhotoToAlbum",
		Method:      http.MethodPost,
		Path:        "/api/v1/photos/{id}/albums/{albumID}",
		Summary:     "Add photo to album",
		Description: "Adds a photo to an album",
		Tags:        []string{"Photos"},
	}, s.handleAddPhotoToAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "removePhotoFromAlbum",
		Method:      http.MethodDelete,
		Path:        "/api/v1/photos/{id}/albums/{albumID}",
		Summary:     "Remove photo from album",
		Description: "Removes a photo from an album",
		Tags:        []string{"Photos"},
	}, s.handleRemovePhotoFromAlbum)
}

// === DTOs ===

// PhotoResponse contains photo data in API responses.
type PhotoResponse struct {
	ID           string     `json:"id" doc:"Photo ID"`
	Name         string     `json:"name" doc:"Display name"`
	Filename     string     `json:"filename,omitempty" doc:"Original filename"`
	URL          string     `json:"url,omitempty" doc:"Original file URL"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty" doc:"Thumbnail URL"`
	BlurHash     string     `json:"blur_hash,omitempty" doc:"BlurHash placeholder"`
	Size         int64      `json:"size" doc:"File size in bytes"`
	Width        int        `json:"width,omitempty" doc:"Pixel width"`
	Height       int        `json:"height,omitempty" doc:"Pixel height"`
	UploadedAt   time.Time  `json:"uploaded_at" doc:"Upload time"`
	TakenAt      *time.Time `json:"taken_at,omitempty" doc:"Capture time"`
	AlbumIDs     []string   `json:"album_ids,omitempty" doc:"Album memberships"`
	Tags         []string   `json:"tags,omitempty" doc:"Tags"`
	CreatedAt    time.Time  `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time  `json:"updated_at" doc:"Last update time"`
}

func photoResponse(p *domain.Photo) PhotoResponse {
	return PhotoResponse{
		ID:           p.ID,
		Name:         p.DisplayName(),
		Filename:     p.Filename,
		URL:          p.URL,
		ThumbnailURL: p.EffectiveThumbnail(),
		BlurHash:     p.BlurHash,
		Size:         p.Size,
		Width:        p.Width,
		Height:       p.Height,
		UploadedAt:   p.UploadedAt,
		TakenAt:      p.TakenAt,
		AlbumIDs:     p.AlbumIDs,
		Tags:         p.Tags,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func photoResponses(photos []*domain.Photo) []PhotoResponse {
	resp := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		resp[i] = photoResponse(p)
	}
	return resp
}

// ListPhotosInput contains parameters for listing photos.
type ListPhotosInput struct {
	Album  string `query:"album" doc:"Restrict to one album, or 'all' for every photo"`
	Search string `query:"search" doc:"Case-insensitive name filter"`
}

// ListPhotosResponse contains a list of photos.
type ListPhotosResponse struct {
	Photos []PhotoResponse `json:"photos" doc:"Photos in upload order"`
}

// ListPhotosOutput wraps the list photos response for Huma.
type ListPhotosOutput struct {
	Body ListPhotosResponse
}

// GetPhotoInput contains parameters for getting a photo.
type GetPhotoInput struct {
	ID string `path:"id" doc:"Photo ID"`
}

// PhotoOutput wraps the photo response for Huma.
type PhotoOutput struct {
	Body PhotoResponse
}

// UpdatePhotoRequest is the request body for updating a photo.
type UpdatePhotoRequest struct {
	Name     *string    `json:"name,omitempty" validate:"omitempty,max=200" doc:"Display name"`
	AlbumIDs *[]string  `json:"album_ids,omitempty" doc:"Album memberships"`
	Tags     *[]string  `json:"tags,omitempty" doc:"Tags"`
	TakenAt  *time.Time `json:"taken_at,omitempty" doc:"Capture time"`
}

// UpdatePhotoInput wraps the update photo request for Huma.
type UpdatePhotoInput struct {
	ID   string `path:"id" doc:"Photo ID"`
	Body UpdatePhotoRequest
}

// DeletePhotoInput contains parameters for deleting a photo.
type DeletePhotoInput struct {
	ID string `path:"id" doc:"Photo ID"`
}

// BulkDeleteRequest is the request body for bulk deletion.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1" doc:"Photo IDs to delete"`
}

// BulkDeleteInput wraps the bulk delete request for Huma.
type BulkDeleteInput struct {
	Body BulkDeleteRequest
}

// BulkDeleteFailure records one photo that could not be deleted.
type BulkDeleteFailure struct {
	ID    string `json:"id" doc:"Photo ID"`
	Error string `json:"error" doc:"Failure reason"`
}

// BulkDeleteResponse reports the outcome of a bulk deletion.
type BulkDeleteResponse struct {
	Deleted int                 `json:"deleted" doc:"Number of photos deleted"`
	Failed  []BulkDeleteFailure `json:"failed,omitempty" doc:"Photos that could not be deleted"`
}

// BulkDeleteOutput wraps the bulk delete response for Huma.
type BulkDeleteOutput struct {
	Body BulkDeleteResponse
}

// PhotoAlbumInput contains parameters for album membership changes.
type PhotoAlbumInput struct {
	ID      string `path:"id" doc:"Photo ID"`
	AlbumID string `path:"albumID" doc:"Album ID"`
}

// === Handlers ===

func (s *Server) handleListPhotos(ctx context.Context, input *ListPhotosInput) (*ListPhotosOutput, error) {
	var (
		photos []*domain.Photo
		err    error
	)

	switch {
	case input.Search != "":
		photos, err = s.services.Photos.Search(ctx, input.Search)
	case input.Album != "":
		photos, err = s.services.Photos.ListByAlbum(ctx, input.Album)
	default:
		photos, err = s.services.Photos.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &ListPhotosOutput{Body: ListPhotosResponse{Photos: photoResponses(photos)}}, nil
}

func (s *Server) handleGetPhoto(ctx context.Context, input *GetPhotoInput) (*PhotoOutput, error) {
	photo, err := s.services.Photos.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, huma.Error404NotFound("Photo not found")
	}

	return &PhotoOutput{Body: photoResponse(photo)}, nil
}

func (s *Server) handleUpdatePhoto(ctx context.Context, input *UpdatePhotoInput) (*PhotoOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	photo, err := s.services.Photos.Update(ctx, input.ID, service.PhotoUpdate{
		Name:     input.Body.Name,
		AlbumIDs: input.Body.AlbumIDs,
		Tags:     input.Body.Tags,
		TakenAt:  input.Body.TakenAt,
	})
	if err != nil {
		return nil, err
	}

	return &PhotoOutput{Body: photoResponse(photo)}, nil
}

func (s *Server) handleDeletePhoto(ctx context.Context, input *DeletePhotoInput) (*PhotoOutput, error) {
	photo, err := s.services.Photos.Delete(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	// Stored files go after the record. A leftover file is harmless,
	// a dangling record is not.
	if err := s.media.Delete(photo.ID); err != nil {
		s.logger.Warn("failed to delete photo files",
			"photo_id", photo.ID, "error", err)
	}

	return &PhotoOutput{Body: photoResponse(photo)}, nil
}

func (s *Server) handleBulkDeletePhotos(ctx context.Context, input *BulkDeleteInput) (*BulkDeleteOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	// One bad id must not sink the rest of the batch.
	deleted, failures, err := s.services.Photos.DeleteBatch(ctx, input.Body.IDs)
	if err != nil {
		return nil, err
	}

	result := BulkDeleteResponse{Deleted: len(deleted)}
	for _, f := range failures {
		result.Failed = append(result.Failed, BulkDeleteFailure{ID: f.PhotoID, Error: f.Err.Error()})
	}
	for _, photo := range deleted {
		if err := s.media.Delete(photo.ID); err != nil {
			s.logger.Warn("failed to delete photo files",
				"photo_id", photo.ID, "error", err)
		}
	}

	return &BulkDeleteOutput{Body: result}, nil
}

func (s *Server) handleAddPhotoToAlbum(ctx context.Context, input *PhotoAlbumInput) (*PhotoOutput, error) {
	photo, err := s.services.Photos.AddToAlbum(ctx, input.ID, input.AlbumID)
	if err != nil {
		return nil, err
	}

	return &PhotoOutput{Body: photoResponse(photo)}, nil
}

func (s *Server) handleRemovePhotoFromAlbum(ctx context.Context, input *PhotoAlbumInput) (*PhotoOutput, error) {
	photo, err := s.services.Photos.RemoveFromAlbum(ctx, input.ID, input.AlbumID)
	if err != nil {
		return nil, err
	}

	return &PhotoOutput{Body: photoResponse(photo)}, nil
}
