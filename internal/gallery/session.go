package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/service"
)

// ViewMode is how the gallery lays out photos.
type ViewMode string

// Gallery layout modes.
const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// Confirmer asks the user to confirm a destructive action.
// Deletion flows refuse to mutate anything until it answers yes.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// AutoConfirm answers yes to every prompt. Used by the HTTP API,
// where the client's own UI is the confirmation step.
type AutoConfirm struct{}

// Confirm always returns true.
func (AutoConfirm) Confirm(context.Context, string) (bool, error) { return true, nil }

// BulkFailure records one photo that could not be deleted in a bulk
// operation.
type BulkFailure struct {
	PhotoID string `json:"photo_id"`
	Err     error  `json:"-"`
	Message string `json:"error"`
}

// BulkDeleteResult is the outcome of deleting the current selection.
type BulkDeleteResult struct {
	Deleted  []string      `json:"deleted"`
	Failures []BulkFailure `json:"failures,omitempty"`
}

// Session is the gallery view model: it loads photos through the data
// services and coordinates selection, filtering, and deletion flows.
type Session struct {
	photos    *service.PhotoService
	albums    *service.AlbumService
	confirmer Confirmer
	logger    *slog.Logger

	Selection *Selection
	Filter    *Filter

	mu       sync.RWMutex
	items    []*domain.Photo
	viewMode ViewMode
}

// NewSession creates a gallery session.
func NewSession(photos *service.PhotoService, albums *service.AlbumService, confirmer Confirmer, logger *slog.Logger) *Session {
	if confirmer == nil {
		confirmer = AutoConfirm{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		photos:    photos,
		albums:    albums,
		confirmer: confirmer,
		logger:    logger,
		Selection: NewSelection(),
		Filter:    NewFilter(),
		viewMode:  ViewModeGrid,
	}
}

// Load fetches the photo collection through the data service.
func (s *Session) Load(ctx context.Context) error {
	photos, err := s.photos.List(ctx)
	if err != nil {
		return fmt.Errorf("load photos: %w", err)
	}

	s.mu.Lock()
	s.items = photos
	s.mu.Unlock()
	return nil
}

// Photos returns the loaded photos matching the current filter.
func (s *Session) Photos() []*domain.Photo {
	s.mu.RLock()
	items := s.items
	s.mu.RUnlock()
	return s.Filter.Visible(items)
}

// All returns every loaded photo regardless of filter.
func (s *Session) All() []*domain.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Photo(nil), s.items...)
}

// SetViewMode switches the gallery layout.
func (s *Session) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode != ViewModeGrid && mode != ViewModeList {
		return
	}
	s.viewMode = mode
}

// ViewMode returns the current layout mode.
func (s *Session) ViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

// AddUploaded appends freshly uploaded photos to the loaded
// collection without a full reload.
func (s *Session) AddUploaded(photos ...*domain.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, photos...)
}

// DeletePhoto removes one photo after confirmation.
//
// The flow is strictly confirm-then-mutate: a declined confirmation
// returns (nil, nil) and guarantees nothing changed. On success the
// photo leaves both the loaded collection and the selection before
// the call returns, so no observer sees a half-applied state.
func (s *Session) DeletePhoto(ctx context.Context, photoID string) (*domain.Photo, error) {
	photo, err := s.photos.Get(ctx, photoID)
	if err != nil {
		return nil, err
	}
	name := photoID
	if photo != nil {
		name = photo.DisplayName()
	}

	ok, err := s.confirmer.Confirm(ctx, fmt.Sprintf("Delete %q?", name))
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug("delete declined", "photo_id", photoID)
		return nil, nil
	}

	removed, err := s.photos.Delete(ctx, photoID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.removeItem(photoID)
	s.mu.Unlock()
	s.Selection.Remove(photoID)

	return removed, nil
}

// DeleteSelected removes every selected photo after a single
// confirmation.
//
// Each deletion is attempted independently: one failure never aborts
// the rest. Only photos that actually deleted leave the collection
// and the selection; failed ones stay selected so the user can see
// exactly what survived and retry.
func (s *Session) DeleteSelected(ctx context.Context) (*BulkDeleteResult, error) {
	ids := s.Selection.IDs()
	if len(ids) == 0 {
		return &BulkDeleteResult{Deleted: []string{}}, nil
	}

	ok, err := s.confirmer.Confirm(ctx, fmt.Sprintf("Delete %d selected photos?", len(ids)))
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Debug("bulk delete declined", "count", len(ids))
		return nil, nil
	}

	deleted, failures, batchErr := s.photos.DeleteBatch(ctx, ids)

	result := &BulkDeleteResult{Deleted: make([]string, 0, len(deleted))}
	for _, f := range failures {
		result.Failures = append(result.Failures, BulkFailure{
			PhotoID: f.PhotoID,
			Err:     f.Err,
			Message: f.Err.Error(),
		})
	}
	for _, photo := range deleted {
		result.Deleted = append(result.Deleted, photo.ID)
		s.mu.Lock()
		s.removeItem(photo.ID)
		s.mu.Unlock()
		s.Selection.Remove(photo.ID)
	}

	return result, batchErr
}

// removeItem drops a photo from the loaded collection.
// Caller must hold s.mu.
func (s *Session) removeItem(photoID string) {
	for i, p := range s.items {
		if p.ID == photoID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}
