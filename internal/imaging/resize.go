package imaging

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrInvalidDimensions is returned for empty images or a max edge below 1.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Filter names a resampling filter.
type Filter string

const (
	// FilterNearest picks the nearest source pixel. It keeps palette-friendly
	// hard edges and is the default.
	FilterNearest Filter = "nearest"

	// FilterBox averages the source pixels covered by each output pixel.
	FilterBox Filter = "box"

	// FilterLinear is bilinear interpolation.
	FilterLinear Filter = "linear"

	// FilterCatmullRom is a sharp cubic filter.
	FilterCatmullRom Filter = "catmullrom"

	// FilterLanczos is a high quality windowed sinc.
	FilterLanczos Filter = "lanczos"
)

var filters = map[Filter]imaging.ResampleFilter{
	FilterNearest:    imaging.NearestNeighbor,
	FilterBox:        imaging.Box,
	FilterLinear:     imaging.Linear,
	FilterCatmullRom: imaging.CatmullRom,
	FilterLanczos:    imaging.Lanczos,
}

// ParseFilter parses a filter name. An empty name selects FilterNearest.
func ParseFilter(name string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return FilterNearest, nil
	}
	if _, ok := filters[f]; !ok {
		return "", fmt.Errorf("unknown resample filter %q", name)
	}
	return f, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// TargetDimensions computes the size an image is scaled to so that neither
// edge exceeds maxEdge.
//
// Images that already fit keep their size. Otherwise the longer edge becomes
// maxEdge and the shorter edge is maxEdge*shorter/longer, truncated. A square
// image gets maxEdge on both edges.
//
// Truncation can produce a zero edge for very thin images; that is returned
// as-is, not as an error.
//
// Parameters:
//   - width, height: Source size in pixels. Both must be at least 1.
//   - maxEdge: Largest allowed edge. Must be at least 1.
//
// Returns:
//   - *DimensionsResult: The target size. Either edge may be zero.
//   - error: Wraps ErrInvalidDimensions for an empty source or maxEdge < 1.
func TargetDimensions(width, height, maxEdge int) (*DimensionsResult, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidDimensions, width, height)
	}
	if maxEdge < 1 {
		return nil, fmt.Errorf("%w: max edge %d", ErrInvalidDimensions, maxEdge)
	}

	if width <= maxEdge && height <= maxEdge {
		return &DimensionsResult{Width: width, Height: height}, nil
	}

	// int64 keeps maxEdge*edge from overflowing on 32-bit platforms.
	if width > height {
		h := int(int64(maxEdge) * int64(height) / int64(width))
		return &DimensionsResult{Width: maxEdge, Height: h}, nil
	}
	w := int(int64(maxEdge) * int64(width) / int64(height))
	return &DimensionsResult{Width: w, Height: maxEdge}, nil
}

// Resize scales img to TargetDimensions(img, maxEdge) using filter.
//
// The result is always a new *image.NRGBA with its origin at (0,0); img is
// never modified. Images that already fit are copied unchanged. When one target
// edge truncates to zero the result is an empty image of that size.
//
// Parameters:
//   - img: Source image. Any bounds origin is accepted.
//   - maxEdge: Largest edge of the result in pixels.
//   - filter: One of the Filter constants.
//
// Returns:
//   - *image.NRGBA: The resized copy.
//   - error: Non-nil if TargetDimensions rejects the sizes or filter is
//     unknown.
func Resize(img image.Image, maxEdge int, filter Filter) (*image.NRGBA, error) {
	bounds := img.Bounds()
	dims, err := TargetDimensions(bounds.Dx(), bounds.Dy(), maxEdge)
	if err != nil {
		return nil, err
	}

	rf, ok := filters[filter]
	if !ok {
		return nil, fmt.Errorf("unknown resample filter %q", filter)
	}

	if dims.Width == 0 || dims.Height == 0 {
		// imaging.Resize treats a zero edge as "keep aspect ratio".
		return image.NewNRGBA(image.Rect(0, 0, dims.Width, dims.Height)), nil
	}
	if dims.Width == bounds.Dx() && dims.Height == bounds.Dy() {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, dims.Width, dims.Height, rf), nil
}
