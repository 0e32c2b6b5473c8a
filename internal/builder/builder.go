package builder

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"strings"

	"github.com/ironsheep/image-builder-mcp/internal/imaging"
	"github.com/ironsheep/image-builder-mcp/internal/palette"
)

// Usage is the message shown when the build command gets no URL.
const Usage = "Usage: /buildimage <imageURL>"

// ErrUsage is returned when a build is requested without an image URL.
var ErrUsage = errors.New("missing image URL")

// Fetcher supplies raw image bytes for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Sink places a finished grid into the world with cell (x, z) at
// origin + (x, 0, z).
type Sink interface {
	Place(ctx context.Context, origin Location, g *Grid) error
}

// MatchImage maps every pixel of img to its closest palette label.
func MatchImage(img image.Image, p *palette.Palette) (*Grid, error) {
	if p.Len() == 0 {
		return nil, palette.ErrNoPaletteConfigured
	}

	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for x := 0; x < g.width; x++ {
		for z := 0; z < g.height; z++ {
			label, err := p.ClosestLabel(palette.FromColor(img.At(b.Min.X+x, b.Min.Y+z)))
			if err != nil {
				return nil, err
			}
			g.Set(x, z, label)
		}
	}
	return g, nil
}

// BuildGrid decodes raw, scales it down to maxEdge and matches every pixel
// against p. No partial grid is returned on failure.
func BuildGrid(raw []byte, maxEdge int, filter imaging.Filter, p *palette.Palette) (*Grid, error) {
	g, _, err := buildGrid(raw, maxEdge, filter, p)
	return g, err
}

func buildGrid(raw []byte, maxEdge int, filter imaging.Filter, p *palette.Palette) (*Grid, *imaging.ImageInfo, error) {
	if maxEdge < 1 {
		return nil, nil, wrap("", fmt.Errorf("%w: max edge %d", imaging.ErrInvalidDimensions, maxEdge))
	}

	img, info, err := imaging.Decode(raw)
	if err != nil {
		return nil, nil, wrap("", err)
	}

	resized, err := imaging.Resize(img, maxEdge, filter)
	if err != nil {
		return nil, nil, wrap("", err)
	}

	g, err := MatchImage(resized, p)
	if err != nil {
		return nil, nil, wrap("", err)
	}
	return g, info, nil
}

// Options configures a Builder.
type Options struct {
	// MaxEdge is the largest edge of a built grid.
	MaxEdge int

	// Filter is the resampling filter.
	Filter imaging.Filter

	// Sink receives finished grids. nil skips placement.
	Sink Sink

	// Logger receives progress messages. nil means log.Default().
	Logger *log.Logger

	// Debug enables per-step logging.
	Debug bool
}

// Builder runs the fetch, decode, resize and match pipeline against the
// current palette of a Store.
type Builder struct {
	fetcher Fetcher
	store   *palette.Store
	opts    Options
}

// New returns a Builder. A MaxEdge below 1 defaults to 128 and an empty Filter
// to imaging.FilterNearest.
func New(fetcher Fetcher, store *palette.Store, opts Options) *Builder {
	if opts.MaxEdge < 1 {
		opts.MaxEdge = 128
	}
	if opts.Filter == "" {
		opts.Filter = imaging.FilterNearest
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Builder{fetcher: fetcher, store: store, opts: opts}
}

// MaxEdge returns the configured max edge.
func (b *Builder) MaxEdge() int { return b.opts.MaxEdge }

// Palette returns the palette builds currently use.
func (b *Builder) Palette() *palette.Palette { return b.store.Load() }

// Request describes one build.
type Request struct {
	URL    string
	Origin Location

	// MaxEdge overrides the builder's max edge when positive.
	MaxEdge int
}

// Result is a successful build.
type Result struct {
	URL     string                    `json:"url"`
	Origin  Location                  `json:"origin"`
	Source  *imaging.ImageInfo        `json:"source"`
	Target  *imaging.DimensionsResult `json:"target"`
	Grid    *Grid                     `json:"-"`
	Counts  []LabelCount              `json:"counts"`
	Placed  bool                      `json:"placed"`
	Palette *palette.Palette          `json:"-"`
}

// Build runs one build request. The palette is read once at the start, so a
// concurrent reload never affects a build in progress.
//
// Parameters:
//   - ctx: Bounds the fetch and placement.
//   - req: The source URL, origin and optional per-request max edge.
//
// Returns:
//   - *Result: Dimensions, the label grid and per-label counts. Placed is
//     false when the grid has no cells or no Sink is configured.
//   - error: Non-nil on any failure; the Sink is not written to unless every
//     earlier step succeeded.
//
// # Errors
//
// Every error is a *Error; use KindOf to classify it.
func (b *Builder) Build(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, &Error{Kind: KindInvalidInput, Err: ErrUsage}
	}

	p := b.store.Load()
	if p.Len() == 0 {
		return nil, &Error{Kind: KindNoPalette, URL: req.URL, Err: palette.ErrNoPaletteConfigured}
	}

	maxEdge := b.opts.MaxEdge
	if req.MaxEdge > 0 {
		maxEdge = req.MaxEdge
	}

	b.debugf("Fetching %s", req.URL)
	raw, err := b.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, wrap(req.URL, err)
	}

	b.debugf("Fetched %d bytes, matching against %d palette entries", len(raw), p.Len())
	g, info, err := buildGrid(raw, maxEdge, b.opts.Filter, p)
	if err != nil {
		var be *Error
		if errors.As(err, &be) {
			be.URL = req.URL
		}
		return nil, err
	}

	res := &Result{
		URL:     req.URL,
		Origin:  req.Origin,
		Source:  info,
		Target:  &imaging.DimensionsResult{Width: g.Width(), Height: g.Height()},
		Grid:    g,
		Counts:  g.Counts(),
		Palette: p,
	}

	if b.opts.Sink != nil && g.Len() > 0 {
		if err := b.opts.Sink.Place(ctx, req.Origin, g); err != nil {
			return nil, &Error{Kind: KindPlacement, URL: req.URL, Err: err}
		}
		res.Placed = true
	}

	b.opts.Logger.Printf("Built %s: %dx%d from %dx%d %s", req.URL,
		g.Width(), g.Height(), info.Width, info.Height, info.Format)
	return res, nil
}

// Preview renders a result's grid with palette colors as a base64 PNG.
func (r *Result) Preview(scale int) (*imaging.PreviewResult, error) {
	return imaging.EncodePreview(r.Grid.Render(r.Palette), scale)
}

// WritePreview writes the same preview as Preview to w as raw PNG.
func (r *Result) WritePreview(w io.Writer, scale int) error {
	return imaging.WritePreview(w, r.Grid.Render(r.Palette), scale)
}

func (b *Builder) debugf(format string, args ...interface{}) {
	if b.opts.Debug {
		b.opts.Logger.Printf(format, args...)
	}
}
