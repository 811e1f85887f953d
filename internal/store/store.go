// Package store implements the persistence layer on top of Badger.
package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/photovault/photovault-server/internal/domain"
)

// EventEmitter is the interface for emitting SSE events.
// Store uses this to broadcast changes without depending on SSE implementation details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// SearchIndexer is the interface for updating the search index.
// Store uses this to keep search in sync without depending on search implementation.
type SearchIndexer interface {
	IndexPhoto(ctx context.Context, photo *domain.Photo) error
	DeletePhoto(ctx context.Context, photoID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexPhoto is a no-op.
func (NoopSearchIndexer) IndexPhoto(context.Context, *domain.Photo) error { return nil }

// DeletePhoto is a no-op.
func (NoopSearchIndexer) DeletePhoto(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// SSE event emitter for broadcasting changes.
	eventEmitter EventEmitter

	// Search indexer for keeping search in sync with store changes.
	// Set via SetSearchIndexer after store creation to avoid circular dependencies.
	searchIndexer SearchIndexer

	// Monotonic sequence for insertion-order listing. Badger iterates
	// keys in byte order, which is useless for "newest upload last",
	// so every created entity gets the next sequence number.
	seq *badger.Sequence
}

// New creates a new Store instance with the given database path and event emitter.
// The emitter is required and used to broadcast store changes via SSE.
func New(path string, logger *slog.Logger, emitter EventEmitter) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	seq, err := db.GetSequence([]byte("seq:entity"), 64)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open entity sequence: %w", err)
	}

	store := &Store{
		db:           db,
		logger:       logger,
		eventEmitter: emitter,
		seq:          seq,
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	if err := s.seq.Release(); err != nil && s.logger != nil {
		s.logger.Error("failed to release entity sequence", "error", err)
	}
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
// This is set after store creation to avoid circular dependencies
// (store needs to exist before search service can be created).
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.searchIndexer = indexer
}

// nextSeq hands out the next insertion-order sequence number.
// Sequence values may have gaps across restarts; only ordering matters.
func (s *Store) nextSeq() (uint64, error) {
	return s.seq.Next()
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes a key from the database.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// indexPhotoAsync hands a photo to the search indexer without blocking
// the write path. Index failures are logged, never surfaced.
func (s *Store) indexPhotoAsync(photo *domain.Photo) {
	if s.searchIndexer == nil {
		return
	}
	p := *photo
	go func() {
		if err := s.searchIndexer.IndexPhoto(context.Background(), &p); err != nil && s.logger != nil {
			s.logger.Error("failed to index photo", "photo_id", p.ID, "error", err)
		}
	}()
}

// unindexPhotoAsync removes a photo from the search index without
// blocking the write path.
func (s *Store) unindexPhotoAsync(photoID string) {
	if s.searchIndexer == nil {
		return
	}
	go func() {
		if err := s.searchIndexer.DeletePhoto(context.Background(), photoID); err != nil && s.logger != nil {
			s.logger.Error("failed to unindex photo", "photo_id", photoID, "error", err)
		}
	}()
}
