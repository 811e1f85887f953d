// Package util provides common utility functions.
package util

import (
	"path/filepath"
	"strings"
)

// DisplayName derives a photo display name from an uploaded filename.
// The final extension is stripped and surrounding whitespace trimmed;
// everything else is preserved as typed (display names are not slugs).
//
// Examples:
//
//	"beach.jpg"          → "beach"
//	"IMG_0042.HEIC"      → "IMG_0042"
//	"holiday.2024.png"   → "holiday.2024"
//	".hidden"            → ".hidden"
func DisplayName(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	ext := filepath.Ext(base)

	// A leading dot is a hidden-file marker, not an extension.
	if ext == base {
		return base
	}

	return strings.TrimSuffix(base, ext)
}

// IsImageContentType reports whether a MIME content type describes an image.
// Matches the "image/*" family, ignoring parameters like charset.
func IsImageContentType(contentType string) bool {
	mediaType := contentType
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.HasPrefix(strings.TrimSpace(strings.ToLower(mediaType)), "image/")
}
