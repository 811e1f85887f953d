package domain

// AllPhotos is the sentinel album id meaning "no album filter".
// It is never a real album id; the store rejects it on create.
const AllPhotos = "all"

// Album represents a named grouping of photos. Membership lives on
// the photos themselves; counts are derived at read time so they can
// never drift out of sync with the photo collection.
type Album struct {
	Entity
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	CoverPhotoID string `json:"cover_photo_id,omitempty"`
}

// DisplayName returns the album name, falling back to a placeholder
// when the name is empty.
func (a *Album) DisplayName() string {
	if a.Name == "" {
		return "Untitled Album"
	}
	return a.Name
}

// AlbumWithCount pairs an album with its live photo count.
type AlbumWithCount struct {
	Album
	PhotoCount int `json:"photo_count"`
}
