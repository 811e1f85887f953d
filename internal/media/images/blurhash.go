package images

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// blurHashSize is the target size for BlurHash computation.
// BlurHash doesn't need high resolution - a small thumbnail produces nearly identical results.
// Using 64x64 reduces computation time from seconds to milliseconds.
const blurHashSize = 64

// ComputeBlurHash generates a BlurHash string from a decoded image.
// Uses 4x3 components for a good balance of size (~20-30 chars) and detail.
// The image is resized to a small thumbnail first for performance.
func ComputeBlurHash(img image.Image) (string, error) {
	small := resize.Thumbnail(blurHashSize, blurHashSize, img, resize.NearestNeighbor)

	// 4 horizontal, 3 vertical components - sweet spot for photo placeholders
	hash, err := blurhash.Encode(4, 3, small)
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}

	return hash, nil
}
