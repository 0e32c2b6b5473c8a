package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder (first frame only)
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrDecode is wrapped by every error returned from Decode.
var ErrDecode = errors.New("image decode failed")

// MaxPixels is the largest width*height Decode will allocate for.
const MaxPixels = 1 << 26

// ImageInfo contains metadata about a decoded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the decoder, e.g. "png" or "webp".
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded color model carries alpha.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the length of the encoded input.
	SizeBytes int `json:"size_bytes"`
}

// Decode decodes raw image bytes.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. Animated GIFs
// decode to their first frame. Images with an empty bounding box are rejected,
// since nothing downstream can be built from them.
//
// # Errors
//
// Every returned error wraps ErrDecode. Images whose header declares more
// than MaxPixels pixels are rejected before any pixel data is decoded.
func Decode(data []byte) (image.Image, *ImageInfo, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty input", ErrDecode)
	}

	// Check the header first; a small file can declare a huge canvas.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, nil, fmt.Errorf("%w: image %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, MaxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, nil, fmt.Errorf("%w: empty image %dx%d", ErrDecode, bounds.Dx(), bounds.Dy())
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	return img, &ImageInfo{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Format:    format,
		HasAlpha:  hasAlpha,
		SizeBytes: len(data),
	}, nil
}
