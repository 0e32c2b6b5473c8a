package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// MaxPreviewScale bounds the upscale factor accepted by EncodePreview.
const MaxPreviewScale = 16

// PreviewResult contains a PNG preview image encoded as base64.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Scale       int    `json:"scale"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Upscale enlarges img by an integer factor with nearest-neighbor sampling, so
// each source pixel becomes a crisp scale×scale square.
//
// A scale below 1 is treated as 1. Zero-area images are rejected because PNG
// cannot represent them.
func Upscale(img image.Image, scale int) (image.Image, int, error) {
	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, 0, fmt.Errorf("%w: cannot preview %dx%d image", ErrInvalidDimensions, bounds.Dx(), bounds.Dy())
	}
	if scale < 1 {
		scale = 1
	}
	if scale > MaxPreviewScale {
		return nil, 0, fmt.Errorf("preview scale %d exceeds maximum %d", scale, MaxPreviewScale)
	}
	if scale == 1 {
		return img, scale, nil
	}
	return transform.Resize(img, bounds.Dx()*scale, bounds.Dy()*scale, transform.NearestNeighbor), scale, nil
}

// WritePreview writes img upscaled by scale to w as PNG.
func WritePreview(w io.Writer, img image.Image, scale int) error {
	out, _, err := Upscale(img, scale)
	if err != nil {
		return err
	}
	if err := imgio.PNGEncoder()(w, out); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// EncodePreview is WritePreview returning the PNG as base64.
func EncodePreview(img image.Image, scale int) (*PreviewResult, error) {
	out, scale, err := Upscale(img, scale)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Scale:       scale,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
