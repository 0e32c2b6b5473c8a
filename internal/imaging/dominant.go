package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/cenkalti/dominantcolor"
)

// MaxDominantColors bounds the count accepted by DominantColors.
const MaxDominantColors = 16

// DominantColor is one color cluster of an image.
type DominantColor struct {
	Color color.RGBA

	// Weight is the cluster's share of the sampled pixels, 0 to 1.
	Weight float64
}

// DominantColors returns up to n dominant colors of img, heaviest first.
func DominantColors(img image.Image, n int) ([]DominantColor, error) {
	if n < 1 || n > MaxDominantColors {
		return nil, fmt.Errorf("dominant color count must be 1-%d, got %d", MaxDominantColors, n)
	}
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy())
	}

	found := dominantcolor.FindWeight(img, n)
	out := make([]DominantColor, 0, len(found))
	for _, c := range found {
		out = append(out, DominantColor{Color: c.RGBA, Weight: c.Weight})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out, nil
}
