// Package images provides photo file storage, thumbnail generation, and
// metadata probing.
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nfnt/resize"
)

// thumbnailSize is the bounding box for generated thumbnails.
// Thumbnails preserve aspect ratio within this box.
const thumbnailSize = 400

// thumbnailQuality is the JPEG quality for generated thumbnails.
const thumbnailQuality = 80

// Stored describes where a saved photo can be fetched from.
type Stored struct {
	URL          string // API URL for the original file
	ThumbnailURL string // API URL for the thumbnail, empty if generation failed
}

// Storage manages photo files on disk.
// Originals keep their upload extension under {base}/originals/;
// thumbnails are always JPEG under {base}/thumbnails/.
// Thread-safe for concurrent operations.
type Storage struct {
	originalsPath  string
	thumbnailsPath string
	logger         *slog.Logger
	mu             sync.RWMutex // Protects file operations
}

// NewStorage creates a new Storage instance.
// basePath is the library storage root (e.g., ~/PhotoVault).
func NewStorage(basePath string, logger *slog.Logger) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	originalsPath := filepath.Join(basePath, "originals")
	thumbnailsPath := filepath.Join(basePath, "thumbnails")

	for _, dir := range []string{originalsPath, thumbnailsPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Storage{
		originalsPath:  originalsPath,
		thumbnailsPath: thumbnailsPath,
		logger:         logger,
	}, nil
}

// Store saves the original file and generates a thumbnail.
// A file that cannot be decoded still gets stored; it just won't have
// a thumbnail, and callers fall back to the original for display.
func (s *Storage) Store(photoID, filename string, data []byte) (Stored, error) {
	if photoID == "" {
		return Stored{}, fmt.Errorf("photo ID cannot be empty")
	}
	if len(data) == 0 {
		return Stored{}, fmt.Errorf("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	originalPath := filepath.Join(s.originalsPath, photoID+extensionOf(filename))
	if err := os.WriteFile(originalPath, data, 0644); err != nil {
		return Stored{}, fmt.Errorf("failed to write original: %w", err)
	}

	stored := Stored{URL: fileURL(photoID)}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		s.logger.Debug("skipping thumbnail, image not decodable",
			"photo_id", photoID,
			"filename", filename,
			"error", err,
		)
		return stored, nil
	}

	thumb := resize.Thumbnail(thumbnailSize, thumbnailSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		s.logger.Warn("failed to encode thumbnail", "photo_id", photoID, "error", err)
		return stored, nil
	}

	if err := os.WriteFile(s.ThumbnailPath(photoID), buf.Bytes(), 0644); err != nil {
		s.logger.Warn("failed to write thumbnail", "photo_id", photoID, "error", err)
		return stored, nil
	}

	stored.ThumbnailURL = thumbnailURL(photoID)
	return stored, nil
}

// OriginalPath returns the filesystem path of a photo's original file.
// The extension is whatever the upload carried, so path lookup globs.
func (s *Storage) OriginalPath(photoID string) (string, error) {
	if photoID == "" {
		return "", fmt.Errorf("photo ID cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches, err := filepath.Glob(filepath.Join(s.originalsPath, photoID+".*"))
	if err != nil {
		return "", fmt.Errorf("failed to locate original: %w", err)
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	return matches[0], nil
}

// ThumbnailPath returns the filesystem path of a photo's thumbnail.
func (s *Storage) ThumbnailPath(photoID string) string {
	return filepath.Join(s.thumbnailsPath, photoID+".jpg")
}

// HasThumbnail checks whether a thumbnail exists for the photo.
func (s *Storage) HasThumbnail(photoID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.ThumbnailPath(photoID))
	return err == nil
}

// Delete removes a photo's original and thumbnail.
// Missing files are not an error.
func (s *Storage) Delete(photoID string) error {
	if photoID == "" {
		return fmt.Errorf("photo ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(s.originalsPath, photoID+".*"))
	if err != nil {
		return fmt.Errorf("failed to locate original: %w", err)
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete original: %w", err)
		}
	}

	if err := os.Remove(s.ThumbnailPath(photoID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete thumbnail: %w", err)
	}
	return nil
}

// fileURL is the API URL for a photo's original file.
func fileURL(photoID string) string {
	return "/api/v1/photos/" + photoID + "/file"
}

// thumbnailURL is the API URL for a photo's thumbnail.
func thumbnailURL(photoID string) string {
	return "/api/v1/photos/" + photoID + "/thumbnail"
}

// extensionOf returns the lowercased file extension, defaulting to
// ".bin" when the filename has none.
func extensionOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		return ".bin"
	}
	return ext
}
