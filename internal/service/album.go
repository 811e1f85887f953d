package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/errors"
	"github.com/photovault/photovault-server/internal/id"
	"github.com/photovault/photovault-server/internal/store"
)

// AlbumService is the data boundary for album operations.
type AlbumService struct {
	store   *store.Store
	logger  *slog.Logger
	latency time.Duration
}

// NewAlbumService creates a new album service.
// A non-zero latency delays every call, simulating a remote backend.
func NewAlbumService(store *store.Store, logger *slog.Logger, latency time.Duration) *AlbumService {
	return &AlbumService{
		store:   store,
		logger:  logger,
		latency: latency,
	}
}

// AlbumUpdate describes a partial album update. Nil fields are left
// untouched; set fields overwrite the stored value.
type AlbumUpdate struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	CoverPhotoID *string `json:"cover_photo_id,omitempty"`
}

// List returns all albums with live photo counts, in creation order.
func (s *AlbumService) List(ctx context.Context) ([]*domain.AlbumWithCount, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	albums, err := s.store.ListAlbumsWithCounts(ctx)
	if err != nil {
		return nil, asTransport(err, "list albums")
	}
	return albums, nil
}

// Get retrieves an album by ID. A missing album is not an error:
// lookups return nil so callers can treat absence as an ordinary
// outcome rather than a failure.
func (s *AlbumService) Get(ctx context.Context, albumID string) (*domain.AlbumWithCount, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	album, err := s.store.GetAlbum(ctx, albumID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, asTransport(err, "get album")
	}

	count, err := s.store.CountPhotosByAlbum(ctx, albumID)
	if err != nil {
		return nil, asTransport(err, "count album photos")
	}

	return &domain.AlbumWithCount{Album: *album, PhotoCount: count}, nil
}

// Create creates a new album with the given name.
func (s *AlbumService) Create(ctx context.Context, name, description string) (*domain.Album, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validation("album name cannot be empty")
	}

	albumID, err := id.Generate("album")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate album id")
	}

	album := &domain.Album{
		Entity:      domain.Entity{ID: albumID},
		Name:        name,
		Description: description,
	}

	if err := s.store.CreateAlbum(ctx, album); err != nil {
		return nil, asTransport(err, "create album")
	}

	s.logger.Info("album created", "album_id", albumID, "name", name)
	return album, nil
}

// Update applies a partial update to an existing album and returns
// the updated entity. Updating a missing album returns NotFound and
// leaves the collection untouched.
func (s *AlbumService) Update(ctx context.Context, albumID string, update AlbumUpdate) (*domain.Album, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	album, err := s.store.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, asTransport(err, "get album for update")
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, errors.Validation("album name cannot be empty")
		}
		album.Name = name
	}
	if update.Description != nil {
		album.Description = *update.Description
	}
	if update.CoverPhotoID != nil {
		// Cover must reference an existing photo, or clear with "".
		if *update.CoverPhotoID != "" {
			if _, err := s.store.GetPhoto(ctx, *update.CoverPhotoID); err != nil {
				return nil, asTransport(err, "get cover photo")
			}
		}
		album.CoverPhotoID = *update.CoverPhotoID
	}

	if err := s.store.UpdateAlbum(ctx, album); err != nil {
		return nil, asTransport(err, "update album")
	}
	return album, nil
}

// Delete removes an album and returns the removed entity. Member
// photos survive; only their membership is detached. Deleting a
// missing album returns NotFound.
func (s *AlbumService) Delete(ctx context.Context, albumID string) (*domain.Album, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	album, err := s.store.DeleteAlbum(ctx, albumID)
	if err != nil {
		return nil, asTransport(err, "delete album")
	}

	s.logger.Info("album deleted", "album_id", albumID, "name", album.Name)
	return album, nil
}
