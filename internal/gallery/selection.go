// Package gallery implements client-facing gallery state: photo
// selection, filtering, and the session that coordinates them with
// the data services.
package gallery

import "sync"

// Selection tracks which photos are selected, preserving the order in
// which they were picked. Safe for concurrent use.
type Selection struct {
	mu    sync.RWMutex
	ids   map[string]struct{}
	order []string
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips the selection state of a photo.
// Returns true if the photo is selected after the call.
func (s *Selection) Toggle(photoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[photoID]; ok {
		delete(s.ids, photoID)
		for i, id := range s.order {
			if id == photoID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return false
	}

	s.ids[photoID] = struct{}{}
	s.order = append(s.order, photoID)
	return true
}

// Has reports whether a photo is selected.
func (s *Selection) Has(photoID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[photoID]
	return ok
}

// IDs returns the selected photo IDs in selection order.
func (s *Selection) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Len returns the number of selected photos.
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Remove deselects a photo if it was selected.
func (s *Selection) Remove(photoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(photoID)
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
	s.order = s.order[:0]
}

func (s *Selection) remove(photoID string) {
	if _, ok := s.ids[photoID]; !ok {
		return
	}
	delete(s.ids, photoID)
	for i, id := range s.order {
		if id == photoID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
