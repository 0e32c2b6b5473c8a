package builder

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-builder-mcp/internal/fetch"
	"github.com/ironsheep/image-builder-mcp/internal/imaging"
	"github.com/ironsheep/image-builder-mcp/internal/palette"
)

// Kind classifies a build failure.
type Kind int

const (
	// KindUnknown is any failure not covered below.
	KindUnknown Kind = iota

	// KindFetch means the image URL could not be reached or read.
	KindFetch

	// KindDecode means the bytes are not a supported image.
	KindDecode

	// KindNoPalette means the palette was empty at match time.
	KindNoPalette

	// KindInvalidPaletteEntry means a configured color/label pair was rejected.
	KindInvalidPaletteEntry

	// KindInvalidInput covers missing arguments and a max edge below 1.
	KindInvalidInput

	// KindPlacement means the sink rejected a finished grid.
	KindPlacement
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown",
	KindFetch:               "fetch_error",
	KindDecode:              "decode_error",
	KindNoPalette:           "no_palette_configured",
	KindInvalidPaletteEntry: "invalid_palette_entry",
	KindInvalidInput:        "invalid_input",
	KindPlacement:           "placement_error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a failed build.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("build %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("build: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err. Errors that are not a *Error are
// classified by the sentinel they wrap.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, fetch.ErrFetch):
		return KindFetch
	case errors.Is(err, imaging.ErrDecode):
		return KindDecode
	case errors.Is(err, palette.ErrNoPaletteConfigured):
		return KindNoPalette
	case errors.Is(err, palette.ErrInvalidEntry):
		return KindInvalidPaletteEntry
	case errors.Is(err, imaging.ErrInvalidDimensions), errors.Is(err, ErrUsage):
		return KindInvalidInput
	}
	return KindUnknown
}

func wrap(url string, err error) error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return err
	}
	return &Error{Kind: classify(err), URL: url, Err: err}
}
