package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/photovault/photovault-server/internal/color"
	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/service"
)

func (s *Server) registerAlbumRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAlbums",
		Method:      http.MethodGet,
		Path:        "/api/v1/albums",
		Summary:     "List albums",
		Description: "Returns all albums with live photo counts",
		Tags:        []string{"Albums"},
	}, s.handleListAlbums)

	huma.Register(s.api, huma.Operation{
		OperationID: "createAlbum",
		Method:      http.MethodPost,
		Path:        "/api/v1/albums",
		Summary:     "Create album",
		Description: "Creates a new album",
		Tags:        []string{"Albums"},
	}, s.handleCreateAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAlbum",
		Method:      http.MethodGet,
		Path:        "/api/v1/albums/{id}",
		Summary:     "Get album",
		Description: "Returns an album by ID with its photo count",
		Tags:        []string{"Albums"},
	}, s.handleGetAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAlbum",
		Method:      http.MethodPatch,
		Path:        "/api/v1/albums/{id}",
		Summary:     "Update album",
		Description: "Applies a partial update to an album",
		Tags:        []string{"Albums"},
	}, s.handleUpdateAlbum)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAlbum",
		Method:      http.MethodDelete,
		Path:        "/api/v1/albums/{id}",
		Summary:     "Delete album",
		Description: "Deletes an album, detaching its photos",
		Tags:        []string{"Albums"},
	}, s.handleDeleteAlbum)
}

// === DTOs ===

// AlbumResponse contains album data in API responses.
type AlbumResponse struct {
	ID           string    `json:"id" doc:"Album ID"`
	Name         string    `json:"name" doc:"Display name"`
	Description  string    `json:"description,omitempty" doc:"Description"`
	CoverPhotoID string    `json:"cover_photo_id,omitempty" doc:"Cover photo ID"`
	AccentColor  string    `json:"accent_color" doc:"Deterministic placeholder tint"`
	PhotoCount   int       `json:"photo_count" doc:"Number of member photos"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

func albumResponse(a *domain.Album, count int) AlbumResponse {
	return AlbumResponse{
		ID:           a.ID,
		Name:         a.DisplayName(),
		Description:  a.Description,
		CoverPhotoID: a.CoverPhotoID,
		AccentColor:  color.ForAlbum(a.ID),
		PhotoCount:   count,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ListAlbumsResponse contains a list of albums.
type ListAlbumsResponse struct {
	Albums []AlbumResponse `json:"albums" doc:"Albums in creation order"`
}

// ListAlbumsOutput wraps the list albums response for Huma.
type ListAlbumsOutput struct {
	Body ListAlbumsResponse
}

// CreateAlbumRequest is the request body for creating an album.
type CreateAlbumRequest struct {
	Name        string `json:"name" validate:"required,max=200" doc:"Album name"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000" doc:"Description"`
}

// CreateAlbumInput wraps the create album request for Huma.
type CreateAlbumInput struct {
	Body CreateAlbumRequest
}

// GetAlbumInput contains parameters for getting an album.
type GetAlbumInput struct {
	ID string `path:"id" doc:"Album ID"`
}

// AlbumOutput wraps the album response for Huma.
type AlbumOutput struct {
	Body AlbumResponse
}

// UpdateAlbumRequest is the request body for updating an album.
type UpdateAlbumRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200" doc:"Album name"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000" doc:"Description"`
	CoverPhotoID *string `json:"cover_photo_id,omitempty" doc:"Cover photo ID"`
}

// UpdateAlbumInput wraps the update album request for Huma.
type UpdateAlbumInput struct {
	ID   string `path:"id" doc:"Album ID"`
	Body UpdateAlbumRequest
}

// DeleteAlbumInput contains parameters for deleting an album.
type DeleteAlbumInput struct {
	ID string `path:"id" doc:"Album ID"`
}

// === Handlers ===

func (s *Server) handleListAlbums(ctx context.Context, _ *struct{}) (*ListAlbumsOutput, error) {
	albums, err := s.services.Albums.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]AlbumResponse, len(albums))
	for i, a := range albums {
		resp[i] = albumResponse(&a.Album, a.PhotoCount)
	}

	return &ListAlbumsOutput{Body: ListAlbumsResponse{Albums: resp}}, nil
}

func (s *Server) handleCreateAlbum(ctx context.Context, input *CreateAlbumInput) (*AlbumOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	album, err := s.services.Albums.Create(ctx, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, err
	}

	return &AlbumOutput{Body: albumResponse(album, 0)}, nil
}

func (s *Server) handleGetAlbum(ctx context.Context, input *GetAlbumInput) (*AlbumOutput, error) {
	album, err := s.services.Albums.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, huma.Error404NotFound("Album not found")
	}

	return &AlbumOutput{Body: albumResponse(&album.Album, album.PhotoCount)}, nil
}

func (s *Server) handleUpdateAlbum(ctx context.Context, input *UpdateAlbumInput) (*AlbumOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	album, err := s.services.Albums.Update(ctx, input.ID, service.AlbumUpdate{
		Name:         input.Body.Name,
		Description:  input.Body.Description,
		CoverPhotoID: input.Body.CoverPhotoID,
	})
	if err != nil {
		return nil, err
	}

	count, err := s.store.CountPhotosByAlbum(ctx, album.ID)
	if err != nil {
		return nil, err
	}

	return &AlbumOutput{Body: albumResponse(album, count)}, nil
}

func (s *Server) handleDeleteAlbum(ctx context.Context, input *DeleteAlbumInput) (*AlbumOutput, error) {
	album, err := s.services.Albums.Delete(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &AlbumOutput{Body: albumResponse(album, 0)}, nil
}
