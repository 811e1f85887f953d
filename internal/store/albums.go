package store

import (
	"context"
	"encoding/json/v2"
	goerrors "errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/errors"
	"github.com/photovault/photovault-server/internal/sse"
)

const albumPrefix = "album:"

// Album Operations

// CreateAlbum creates a new album. The AllPhotos sentinel is reserved
// and rejected as an id.
func (s *Store) CreateAlbum(ctx context.Context, album *domain.Album) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if album.ID == "" {
		return errors.Validation("album id cannot be empty")
	}
	if album.ID == domain.AllPhotos {
		return errors.Validationf("album id %q is reserved", domain.AllPhotos)
	}

	key := []byte(albumPrefix + album.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check album exists: %w", err)
	}
	if exists {
		return errors.Conflict(fmt.Sprintf("album %s already exists", album.ID))
	}

	seq, err := s.nextSeq()
	if err != nil {
		return fmt.Errorf("assign album sequence: %w", err)
	}
	album.Seq = seq
	if album.CreatedAt.IsZero() {
		album.InitTimestamps()
	}

	if err := s.set(key, album); err != nil {
		return fmt.Errorf("create album: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "album created",
			slog.String("id", album.ID),
			slog.String("name", album.Name),
		)
	}

	s.eventEmitter.Emit(sse.NewAlbumCreatedEvent(album))
	return nil
}

// GetAlbum retrieves an album by ID.
func (s *Store) GetAlbum(ctx context.Context, id string) (*domain.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var album domain.Album
	err := s.get([]byte(albumPrefix+id), &album)
	if err != nil {
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil, errors.NotFoundf("album %s not found", id)
		}
		return nil, fmt.Errorf("get album: %w", err)
	}
	return &album, nil
}

// ListAlbums returns all albums in insertion order.
func (s *Store) ListAlbums(ctx context.Context) ([]*domain.Album, error) {
	albums := make([]*domain.Album, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(albumPrefix)
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(albumPrefix)); it.ValidForPrefix([]byte(albumPrefix)); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var album domain.Album
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &album)
			})
			if err != nil {
				return fmt.Errorf("unmarshal album: %w", err)
			}
			albums = append(albums, &album)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(albums, func(i, j int) bool {
		return albums[i].Seq < albums[j].Seq
	})
	return albums, nil
}

// ListAlbumsWithCounts returns all albums with live photo counts.
func (s *Store) ListAlbumsWithCounts(ctx context.Context) ([]*domain.AlbumWithCount, error) {
	albums, err := s.ListAlbums(ctx)
	if err != nil {
		return nil, err
	}

	// One photo pass covers every album.
	counts := make(map[string]int, len(albums))
	err = s.forEachPhoto(ctx, func(p *domain.Photo) error {
		for _, albumID := range p.AlbumIDs {
			counts[albumID]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]*domain.AlbumWithCount, 0, len(albums))
	for _, album := range albums {
		result = append(result, &domain.AlbumWithCount{
			Album:      *album,
			PhotoCount: counts[album.ID],
		})
	}
	return result, nil
}

// UpdateAlbum overwrites an existing album.
func (s *Store) UpdateAlbum(ctx context.Context, album *domain.Album) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	existing, err := s.GetAlbum(ctx, album.ID)
	if err != nil {
		return err
	}
	album.Seq = existing.Seq
	album.CreatedAt = existing.CreatedAt
	album.Touch()

	if err := s.set([]byte(albumPrefix+album.ID), album); err != nil {
		return fmt.Errorf("update album: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "album updated",
			slog.String("id", album.ID),
			slog.String("name", album.Name),
		)
	}

	s.eventEmitter.Emit(sse.NewAlbumUpdatedEvent(album))
	return nil
}

// DeleteAlbum removes an album, detaches its membership from every
// photo, and returns the removed entity.
func (s *Store) DeleteAlbum(ctx context.Context, id string) (*domain.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	album, err := s.GetAlbum(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.delete([]byte(albumPrefix + id)); err != nil {
		return nil, fmt.Errorf("delete album: %w", err)
	}

	// Photos must never reference a dead album.
	if err := s.RemoveAlbumFromPhotos(ctx, id); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "album deleted",
			slog.String("id", id),
			slog.String("name", album.Name),
		)
	}

	album.Touch()
	s.eventEmitter.Emit(sse.NewAlbumDeletedEvent(id, album.UpdatedAt))
	return album, nil
}
