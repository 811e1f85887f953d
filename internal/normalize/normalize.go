// Package normalize provides unicode-aware text normalization for matching.
//
// Search and filter comparisons go through Fold so that "Café", "café" and
// "CAFÉ" all land on the same byte sequence before a substring test.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes a string for case-insensitive comparison.
// Combining sequences are composed (NFC) first so visually identical
// strings compare equal regardless of how they were typed.
func Fold(s string) string {
	// Casers are stateful, so a fresh one per call.
	return cases.Fold().String(norm.NFC.String(s))
}

// ContainsFold reports whether substr is contained in s under folding.
// An empty substr matches everything, mirroring strings.Contains.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(substr))
}
