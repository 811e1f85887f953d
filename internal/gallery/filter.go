package gallery

import (
	"sync"

	"github.com/photovault/photovault-server/internal/domain"
	"github.com/photovault/photovault-server/internal/normalize"
)

// Filter holds the gallery's view criteria: a search term and an
// album restriction. Filtering is a pure derivation over the loaded
// photos; the filter never mutates the collection it reads.
type Filter struct {
	mu         sync.RWMutex
	searchTerm string
	albumID    string
}

// NewFilter creates a filter that shows everything.
func NewFilter() *Filter {
	return &Filter{albumID: domain.AllPhotos}
}

// SetSearchTerm updates the search term.
func (f *Filter) SetSearchTerm(term string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchTerm = term
}

// SearchTerm returns the current search term.
func (f *Filter) SearchTerm() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.searchTerm
}

// SetAlbum restricts the view to one album. An empty id falls back to
// the AllPhotos sentinel.
func (f *Filter) SetAlbum(albumID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if albumID == "" {
		albumID = domain.AllPhotos
	}
	f.albumID = albumID
}

// AlbumID returns the current album restriction.
func (f *Filter) AlbumID() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.albumID
}

// Reset clears both criteria.
func (f *Filter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchTerm = ""
	f.albumID = domain.AllPhotos
}

// Visible derives the photos matching both criteria, preserving input
// order. The input slice is never modified.
func (f *Filter) Visible(photos []*domain.Photo) []*domain.Photo {
	f.mu.RLock()
	term := f.searchTerm
	albumID := f.albumID
	f.mu.RUnlock()

	visible := make([]*domain.Photo, 0, len(photos))
	for _, p := range photos {
		if albumID != domain.AllPhotos && !p.InAlbum(albumID) {
			continue
		}
		if term != "" && !normalize.ContainsFold(p.Name, term) {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}
