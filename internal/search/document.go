// Package search provides full-text photo search using Bleve.
// It powers the ranked search endpoint with fuzzy matching and
// album/tag filtering on top of the store's exact substring search.
package search

import (
	"github.com/photovault/photovault-server/internal/domain"
)

// PhotoDocument is the document structure for the Bleve index.
type PhotoDocument struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Filename string   `json:"filename"`
	Tags     []string `json:"tags,omitempty"`
	AlbumIDs []string `json:"album_ids,omitempty"`

	// Timestamps for sorting, Unix millis.
	UploadedAt int64 `json:"uploaded_at"`
	UpdatedAt  int64 `json:"updated_at"`
}

// NewPhotoDocument builds an index document from a photo.
func NewPhotoDocument(photo *domain.Photo) *PhotoDocument {
	return &PhotoDocument{
		ID:         photo.ID,
		Name:       photo.DisplayName(),
		Filename:   photo.Filename,
		Tags:       photo.Tags,
		AlbumIDs:   photo.AlbumIDs,
		UploadedAt: photo.UploadedAt.UnixMilli(),
		UpdatedAt:  photo.UpdatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *PhotoDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":          d.ID,
		"name":        d.Name,
		"filename":    d.Filename,
		"uploaded_at": d.UploadedAt,
		"updated_at":  d.UpdatedAt,
	}

	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
		m["tags_text"] = d.Tags
	}
	if len(d.AlbumIDs) > 0 {
		m["album_ids"] = d.AlbumIDs
	}

	return m
}
