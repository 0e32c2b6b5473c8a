package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/ironsheep/image-builder-mcp/internal/imaging"
	"github.com/ironsheep/image-builder-mcp/internal/palette"
)

// ColorReport pairs a dominant source color with the palette entry it maps to.
type ColorReport struct {
	Color  string               `json:"color"`
	Weight float64              `json:"weight"`
	Match  *palette.MatchResult `json:"match"`
}

// Analysis describes how an image would build without building it.
type Analysis struct {
	URL    string                    `json:"url"`
	Source *imaging.ImageInfo        `json:"source"`
	Target *imaging.DimensionsResult `json:"target"`
	Colors []ColorReport             `json:"colors"`
}

// Analyze fetches and decodes url, then reports its n dominant colors and the
// closest palette entry for each. Nothing is placed. A count outside
// 1..imaging.MaxDominantColors fails before anything is fetched.
func (b *Builder) Analyze(ctx context.Context, url string, n int) (*Analysis, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &Error{Kind: KindInvalidInput, Err: ErrUsage}
	}
	if n < 1 || n > imaging.MaxDominantColors {
		return nil, &Error{Kind: KindInvalidInput, URL: url,
			Err: fmt.Errorf("dominant color count must be 1-%d, got %d", imaging.MaxDominantColors, n)}
	}
	p := b.store.Load()
	if p.Len() == 0 {
		return nil, &Error{Kind: KindNoPalette, URL: url, Err: palette.ErrNoPaletteConfigured}
	}

	raw, err := b.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, wrap(url, err)
	}
	img, info, err := imaging.Decode(raw)
	if err != nil {
		return nil, wrap(url, err)
	}

	target, err := imaging.TargetDimensions(info.Width, info.Height, b.opts.MaxEdge)
	if err != nil {
		return nil, wrap(url, err)
	}

	dominant, err := imaging.DominantColors(img, n)
	if err != nil {
		return nil, wrap(url, err)
	}

	a := &Analysis{URL: url, Source: info, Target: target, Colors: make([]ColorReport, 0, len(dominant))}
	for _, d := range dominant {
		c := palette.FromColor(d.Color)
		m, err := p.Match(c)
		if err != nil {
			return nil, wrap(url, err)
		}
		a.Colors = append(a.Colors, ColorReport{Color: c.Hex(), Weight: d.Weight, Match: m})
	}
	return a, nil
}
