package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
)

// Metadata describes what a probe learned about an image.
type Metadata struct {
	Width    int
	Height   int
	BlurHash string // Empty when the probe doesn't compute one
}

// DecodeProbe extracts metadata by decoding the image bytes.
// It reads real dimensions and computes a BlurHash placeholder.
type DecodeProbe struct{}

// NewDecodeProbe creates a probe that decodes images for metadata.
func NewDecodeProbe() *DecodeProbe {
	return &DecodeProbe{}
}

// Probe decodes the image and returns its dimensions and BlurHash.
func (p *DecodeProbe) Probe(ctx context.Context, filename string, data []byte) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Metadata{}, fmt.Errorf("decode %s: %w", filename, err)
	}

	meta := Metadata{Width: cfg.Width, Height: cfg.Height}

	// BlurHash needs the full pixel data. Failure here is cosmetic,
	// so the probe still returns dimensions.
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return meta, nil
	}
	if hash, err := ComputeBlurHash(img); err == nil {
		meta.BlurHash = hash
	}

	return meta, nil
}

// StaticProbe reports fixed dimensions without touching the bytes.
// Useful in tests and development profiles where decoding every
// upload is wasted work.
type StaticProbe struct {
	Width  int
	Height int
}

// NewStaticProbe creates a probe that reports 1920x1080 for every image.
func NewStaticProbe() *StaticProbe {
	return &StaticProbe{Width: 1920, Height: 1080}
}

// Probe returns the fixed dimensions.
func (p *StaticProbe) Probe(ctx context.Context, _ string, _ []byte) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}
	return Metadata{Width: p.Width, Height: p.Height}, nil
}
