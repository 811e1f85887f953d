package store

import (
	"context"
	"encoding/json/v2"
	goerrors "errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/errors"
	"github.com/photovault/photovault-server/internal/normalize"
	"github.com/photovault/photovault-server/internal/sse"
)

const photoPrefix = "photo:"

// Photo Operations

// CreatePhoto creates a new photo. The caller assigns the ID; the
// store assigns the insertion-order sequence and timestamps.
func (s *Store) CreatePhoto(ctx context.Context, photo *domain.Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if photo.ID == "" {
		return errors.Validation("photo id cannot be empty")
	}

	key := []byte(photoPrefix + photo.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check photo exists: %w", err)
	}
	if exists {
		return errors.Conflict(fmt.Sprintf("photo %s already exists", photo.ID))
	}

	seq, err := s.nextSeq()
	if err != nil {
		return fmt.Errorf("assign photo sequence: %w", err)
	}
	photo.Seq = seq
	if photo.CreatedAt.IsZero() {
		photo.InitTimestamps()
	}

	if err := s.set(key, photo); err != nil {
		return fmt.Errorf("create photo: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "photo created",
			slog.String("id", photo.ID),
			slog.String("name", photo.Name),
			slog.Int64("size", photo.Size),
		)
	}

	s.eventEmitter.Emit(sse.NewPhotoCreatedEvent(photo))
	s.indexPhotoAsync(photo)
	return nil
}

// GetPhoto retrieves a photo by ID.
func (s *Store) GetPhoto(ctx context.Context, id string) (*domain.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var photo domain.Photo
	err := s.get([]byte(photoPrefix+id), &photo)
	if err != nil {
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil, errors.NotFoundf("photo %s not found", id)
		}
		return nil, fmt.Errorf("get photo: %w", err)
	}
	return &photo, nil
}

// ListPhotos returns all photos in insertion order.
func (s *Store) ListPhotos(ctx context.Context) ([]*domain.Photo, error) {
	photos, err := s.collectPhotos(ctx, nil)
	if err != nil {
		return nil, err
	}
	sortPhotosBySeq(photos)
	return photos, nil
}

// ListPhotosByAlbum returns the photos belonging to an album, in
// insertion order. The AllPhotos sentinel returns every photo.
func (s *Store) ListPhotosByAlbum(ctx context.Context, albumID string) ([]*domain.Photo, error) {
	if albumID == "" || albumID == domain.AllPhotos {
		return s.ListPhotos(ctx)
	}

	photos, err := s.collectPhotos(ctx, func(p *domain.Photo) bool {
		return p.InAlbum(albumID)
	})
	if err != nil {
		return nil, err
	}
	sortPhotosBySeq(photos)
	return photos, nil
}

// SearchPhotos returns photos whose name or any tag contains the
// term, comparing case and diacritic insensitively. An empty term
// matches every photo.
func (s *Store) SearchPhotos(ctx context.Context, term string) ([]*domain.Photo, error) {
	folded := normalize.Fold(term)
	photos, err := s.collectPhotos(ctx, func(p *domain.Photo) bool {
		if strings.Contains(normalize.Fold(p.Name), folded) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(normalize.Fold(tag), folded) {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	sortPhotosBySeq(photos)
	return photos, nil
}

// CountPhotosByAlbum returns the number of photos in an album.
// Counts are always derived from the photo collection so they can
// never drift from actual membership.
func (s *Store) CountPhotosByAlbum(ctx context.Context, albumID string) (int, error) {
	count := 0
	err := s.forEachPhoto(ctx, func(p *domain.Photo) error {
		if p.InAlbum(albumID) {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdatePhoto overwrites an existing photo.
func (s *Store) UpdatePhoto(ctx context.Context, photo *domain.Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(photoPrefix + photo.ID)

	// Preserve the original sequence so updates never reorder the gallery.
	existing, err := s.GetPhoto(ctx, photo.ID)
	if err != nil {
		return err
	}
	photo.Seq = existing.Seq
	photo.CreatedAt = existing.CreatedAt
	photo.Touch()

	if err := s.set(key, photo); err != nil {
		return fmt.Errorf("update photo: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "photo updated",
			slog.String("id", photo.ID),
			slog.String("name", photo.Name),
		)
	}

	s.eventEmitter.Emit(sse.NewPhotoUpdatedEvent(photo))
	s.indexPhotoAsync(photo)
	return nil
}

// DeletePhoto removes a photo and returns the removed entity.
// Deleting a missing photo is an error, not a silent no-op, so
// callers can surface stale references instead of hiding them.
func (s *Store) DeletePhoto(ctx context.Context, id string) (*domain.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	photo, err := s.GetPhoto(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.delete([]byte(photoPrefix + id)); err != nil {
		return nil, fmt.Errorf("delete photo: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "photo deleted",
			slog.String("id", id),
			slog.String("name", photo.Name),
		)
	}

	photo.Touch()
	s.eventEmitter.Emit(sse.NewPhotoDeletedEvent(id, photo.UpdatedAt))
	s.unindexPhotoAsync(id)
	return photo, nil
}

// RemoveAlbumFromPhotos strips an album membership from every photo.
// Used when an album is deleted so photos never reference a dead album.
func (s *Store) RemoveAlbumFromPhotos(ctx context.Context, albumID string) error {
	photos, err := s.collectPhotos(ctx, func(p *domain.Photo) bool {
		return p.InAlbum(albumID)
	})
	if err != nil {
		return err
	}

	for _, photo := range photos {
		photo.RemoveFromAlbum(albumID)
		photo.Touch()
		if err := s.set([]byte(photoPrefix+photo.ID), photo); err != nil {
			return fmt.Errorf("detach photo %s from album %s: %w", photo.ID, albumID, err)
		}
		s.eventEmitter.Emit(sse.NewPhotoUpdatedEvent(photo))
		s.indexPhotoAsync(photo)
	}
	return nil
}

// forEachPhoto iterates all photos, invoking fn per photo.
func (s *Store) forEachPhoto(ctx context.Context, fn func(*domain.Photo) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(photoPrefix)
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(photoPrefix)); it.ValidForPrefix([]byte(photoPrefix)); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var photo domain.Photo
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &photo)
			})
			if err != nil {
				return fmt.Errorf("unmarshal photo: %w", err)
			}

			if err := fn(&photo); err != nil {
				return err
			}
		}
		return nil
	})
}

// collectPhotos gathers all photos matching the filter. A nil filter
// matches everything.
func (s *Store) collectPhotos(ctx context.Context, match func(*domain.Photo) bool) ([]*domain.Photo, error) {
	photos := make([]*domain.Photo, 0)
	err := s.forEachPhoto(ctx, func(p *domain.Photo) error {
		if match == nil || match(p) {
			photo := *p
			photos = append(photos, &photo)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// sortPhotosBySeq orders photos by their store-assigned sequence,
// oldest first.
func sortPhotosBySeq(photos []*domain.Photo) {
	sort.Slice(photos, func(i, j int) bool {
		return photos[i].Seq < photos[j].Seq
	})
}
