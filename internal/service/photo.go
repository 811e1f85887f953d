package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/errors"
	"github.com/photovault/photovault-server/internal/id"
	"github.com/photovault/photovault-server/internal/store"
)

// PhotoService is the data boundary for photo operations.
type PhotoService struct {
	store   *store.Store
	logger  *slog.Logger
	latency time.Duration
}

// NewPhotoService creates a new photo service.
// A non-zero latency delays every call, simulating a remote backend.
func NewPhotoService(store *store.Store, logger *slog.Logger, latency time.Duration) *PhotoService {
	return &PhotoService{
		store:   store,
		logger:  logger,
		latency: latency,
	}
}

// PhotoUpdate describes a partial photo update. Nil fields are left
// untouched; set fields overwrite the stored value.
type PhotoUpdate struct {
	Name     *string    `json:"name,omitempty"`
	AlbumIDs *[]string  `json:"album_ids,omitempty"`
	Tags     *[]string  `json:"tags,omitempty"`
	TakenAt  *time.Time `json:"taken_at,omitempty"`
}

// List returns all photos in upload order.
func (s *PhotoService) List(ctx context.Context) ([]*domain.Photo, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	photos, err := s.store.ListPhotos(ctx)
	if err != nil {
		return nil, asTransport(err, "list photos")
	}
	return photos, nil
}

// ListByAlbum returns the photos in an album, in upload order.
// The AllPhotos sentinel returns every photo.
func (s *PhotoService) ListByAlbum(ctx context.Context, albumID string) ([]*domain.Photo, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	photos, err := s.store.ListPhotosByAlbum(ctx, albumID)
	if err != nil {
		return nil, asTransport(err, "list photos by album")
	}
	return photos, nil
}

// Get retrieves a photo by ID. A missing photo is not an error:
// lookups return nil so callers can treat absence as an ordinary
// outcome rather than a failure.
func (s *PhotoService) Get(ctx context.Context, id string) (*domain.Photo, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	photo, err := s.store.GetPhoto(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, asTransport(err, "get photo")
	}
	return photo, nil
}

// Search returns photos whose name or tags contain the term, case
// and diacritic insensitively.
func (s *PhotoService) Search(ctx context.Context, term string) ([]*domain.Photo, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	photos, err := s.store.SearchPhotos(ctx, term)
	if err != nil {
		return nil, asTransport(err, "search photos")
	}
	return photos, nil
}

// Create persists a new photo, assigning a fresh id and upload time
// when the draft omits them. Used by the upload pipeline.
func (s *PhotoService) Create(ctx context.Context, photo *domain.Photo) error {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return err
	}

	if photo.ID == "" {
		photoID, err := id.Generate("photo")
		if err != nil {
			return errors.Wrap(err, errors.CodeInternal, "generate photo id")
		}
		photo.ID = photoID
	}
	if photo.UploadedAt.IsZero() {
		photo.UploadedAt = time.Now()
	}

	if err := s.store.CreatePhoto(ctx, photo); err != nil {
		return asTransport(err, "create photo")
	}
	return nil
}

// Update applies a partial update to an existing photo and returns
// the updated entity. Updating a missing photo returns NotFound and
// leaves the collection untouched.
func (s *PhotoService) Update(ctx context.Context, id string, update PhotoUpdate) (*domain.Photo, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	photo, err := s.store.GetPhoto(ctx, id)
	if err != nil {
		return nil, asTransport(err, "get photo for update")
	}

	if update.Name != nil {
		photo.Name = *update.Name
	}
	if update.AlbumIDs != nil {
		photo.AlbumIDs = dedupe(*update.AlbumIDs)
	}
	if update.Tags != nil {
		photo.Tags = dedupe(*update.Tags)
	}
	if update.TakenAt != nil {
		photo.TakenAt = update.TakenAt
	}

	if err := s.store.UpdatePhoto(ctx, photo); err != nil {
		return nil, asTransport(err, "update photo")
	}
	return photo, nil
}

// Delete removes a photo and returns the removed entity.
// Deleting a missing photo returns NotFound.
func (s *PhotoService) Delete(ctx context.Context, id string) (*domain.Photo, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	photo, err := s.store.DeletePhoto(ctx, id)
	if err != nil {
		return nil, asTransport(err, "delete photo")
	}
	return photo, nil
}

// BatchFailure records one photo that could not be deleted in a
// batch operation.
type BatchFailure struct {
	PhotoID string
	Err     error
}

// DeleteBatch deletes each photo independently: one failure never
// aborts the rest. Returns the photos that actually deleted alongside
// per-photo failures. The error is non-nil only when the context is
// cancelled mid-batch; the partial result is still valid then.
func (s *PhotoService) DeleteBatch(ctx context.Context, ids []string) ([]*domain.Photo, []BatchFailure, error) {
	deleted := make([]*domain.Photo, 0, len(ids))
	var failures []BatchFailure

	for _, photoID := range ids {
		photo, err := s.Delete(ctx, photoID)
		if err != nil {
			if ctx.Err() != nil {
				return deleted, failures, ctx.Err()
			}
			s.logger.Warn("batch delete failed for photo", "photo_id", photoID, "error", err)
			failures = append(failures, BatchFailure{PhotoID: photoID, Err: err})
			continue
		}
		deleted = append(deleted, photo)
	}

	return deleted, failures, nil
}

// AddToAlbum adds a photo to an album. The membership is stored on
// the photo; adding twice is a no-op.
func (s *PhotoService) AddToAlbum(ctx context.Context, photoID, albumID string) (*domain.Photo, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	if albumID == "" || albumID == domain.AllPhotos {
		return nil, errors.Validationf("cannot add photo to album %q", albumID)
	}

	// The album must exist before a photo can join it.
	if _, err := s.store.GetAlbum(ctx, albumID); err != nil {
		return nil, asTransport(err, "get album")
	}

	photo, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, asTransport(err, "get photo")
	}

	if !photo.AddToAlbum(albumID) {
		return photo, nil
	}
	if err := s.store.UpdatePhoto(ctx, photo); err != nil {
		return nil, asTransport(err, "update photo")
	}
	return photo, nil
}

// RemoveFromAlbum removes a photo from an album.
func (s *PhotoService) RemoveFromAlbum(ctx context.Context, photoID, albumID string) (*domain.Photo, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}

	photo, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, asTransport(err, "get photo")
	}

	if !photo.RemoveFromAlbum(albumID) {
		return photo, nil
	}
	if err := s.store.UpdatePhoto(ctx, photo); err != nil {
		return nil, asTransport(err, "update photo")
	}
	return photo, nil
}

// dedupe removes duplicate values while preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
