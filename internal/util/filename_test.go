package util

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic stripping
		{"jpeg", "beach.jpg", "beach"},
		{"png", "mountain.png", "mountain"},
		{"uppercase extension", "IMG_0042.HEIC", "IMG_0042"},

		// Only the final extension goes
		{"dotted name", "holiday.2024.png", "holiday.2024"},

		// Paths are reduced to the base name
		{"with directory", "photos/summer/beach.jpg", "beach"},

		// Edge cases
		{"no extension", "snapshot", "snapshot"},
		{"hidden file", ".hidden", ".hidden"},
		{"trailing whitespace", "  beach.jpg  ", "beach"},
		{"empty", "", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DisplayName(tt.input)
			if result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsImageContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"jpeg", "image/jpeg", true},
		{"png", "image/png", true},
		{"webp", "image/webp", true},
		{"with parameters", "image/png; charset=binary", true},
		{"uppercase", "IMAGE/JPEG", true},
		{"surrounding whitespace", " image/gif ", true},

		{"pdf", "application/pdf", false},
		{"text", "text/plain", false},
		{"video", "video/mp4", false},
		{"empty", "", false},
		{"bare image", "image", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsImageContentType(tt.input)
			if result != tt.expected {
				t.Errorf("IsImageContentType(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
