// Package domain contains the core business entities and domain logic for the PhotoVault gallery.
package domain

import "time"

// Photo represents a single image in the gallery.
type Photo struct {
	Entity
	Name         string     `json:"name"`
	Filename     string     `json:"filename"`
	ContentType  string     `json:"content_type"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	BlurHash     string     `json:"blur_hash,omitempty"`
	Size         int64      `json:"size"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	AlbumIDs     []string   `json:"album_ids,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
}

// DisplayName returns the photo name, falling back to a placeholder
// when the name is empty.
func (p *Photo) DisplayName() string {
	if p.Name == "" {
		return "Untitled"
	}
	return p.Name
}

// EffectiveThumbnail returns the thumbnail URL, falling back to the
// full-size URL when no thumbnail has been generated.
func (p *Photo) EffectiveThumbnail() string {
	if p.ThumbnailURL != "" {
		return p.ThumbnailURL
	}
	return p.URL
}

// InAlbum reports whether the photo belongs to the given album.
func (p *Photo) InAlbum(albumID string) bool {
	for _, id := range p.AlbumIDs {
		if id == albumID {
			return true
		}
	}
	return false
}

// AddToAlbum records album membership. Adding an album the photo is
// already in is a no-op, so memberships stay duplicate-free.
// Returns true if the membership was added.
func (p *Photo) AddToAlbum(albumID string) bool {
	if p.InAlbum(albumID) {
		return false
	}
	p.AlbumIDs = append(p.AlbumIDs, albumID)
	return true
}

// RemoveFromAlbum removes album membership.
// Returns true if a membership was removed.
func (p *Photo) RemoveFromAlbum(albumID string) bool {
	for i, id := range p.AlbumIDs {
		if id == albumID {
			p.AlbumIDs = append(p.AlbumIDs[:i], p.AlbumIDs[i+1:]...)
			return true
		}
	}
	return false
}

// HasTag reports whether the photo carries the given tag.
func (p *Photo) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
