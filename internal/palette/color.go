package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGBA color. Alpha is carried through decoding but never
// takes part in distance computation.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB returns an opaque Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// FromColor converts any color.Color to a non-premultiplied 8-bit Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex returns the color as "#RRGGBB" (alpha excluded).
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses a 6-hex-digit color key such as "FF8040" or "#ff8040".
// The resulting color is opaque.
func ParseHex(key string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(key), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("color key %q: want 6 hex digits", key)
	}
	for _, ch := range s {
		if !isHexDigit(ch) {
			return Color{}, fmt.Errorf("color key %q: invalid hex digit %q", key, ch)
		}
	}

	c, err := colorful.Hex("#" + strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("color key %q: %w", key, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// WeightedDistance returns the squared redmean distance between two colors.
//
// All arithmetic is done in int64. The two right shifts are applied to
// non-negative products, so they equal floor division by 256.
func WeightedDistance(c1, c2 Color) int64 {
	r1, r2 := int64(c1.R), int64(c2.R)
	rmean := (r1 + r2) / 2
	dr := r1 - r2
	dg := int64(c1.G) - int64(c2.G)
	db := int64(c1.B) - int64(c2.B)

	return (((512 + rmean) * dr * dr) >> 8) +
		4*dg*dg +
		(((767 - rmean) * db * db) >> 8)
}

// Distance returns the redmean distance between two colors.
func Distance(c1, c2 Color) float64 {
	return math.Sqrt(float64(WeightedDistance(c1, c2)))
}

// DeltaE returns the CIEDE2000 difference between two colors. It is reported
// alongside matches for diagnostics only; matching always uses Distance.
func DeltaE(c1, c2 Color) float64 {
	a := colorful.Color{R: float64(c1.R) / 255, G: float64(c1.G) / 255, B: float64(c1.B) / 255}
	b := colorful.Color{R: float64(c2.R) / 255, G: float64(c2.G) / 255, B: float64(c2.B) / 255}
	return a.DistanceCIEDE2000(b)
}
