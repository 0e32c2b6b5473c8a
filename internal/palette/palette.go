package palette

import (
	"errors"
	"sync/atomic"
)

// ErrNoPaletteConfigured is returned when matching against an empty palette.
var ErrNoPaletteConfigured = errors.New("no palette configured")

// Entry pairs a palette color with its label.
type Entry struct {
	Color Color  `json:"color"`
	Label string `json:"label"`
}

// Palette is an immutable, ordered set of entries.
//
// The zero value and the nil *Palette are both valid empty palettes.
type Palette struct {
	entries []Entry
}

// New builds a palette from entries, preserving their order. The slice is
// copied, so later changes by the caller do not affect the palette.
func New(entries []Entry) *Palette {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Palette{entries: cp}
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Entries returns a copy of the entries in palette order.
func (p *Palette) Entries() []Entry {
	if p == nil {
		return nil
	}
	cp := make([]Entry, len(p.entries))
	copy(cp, p.entries)
	return cp
}

// Closest returns the entry nearest to c. Ties go to the earliest entry.
func (p *Palette) Closest(c Color) (Entry, error) {
	if p.Len() == 0 {
		return Entry{}, ErrNoPaletteConfigured
	}

	best := 0
	bestDist := WeightedDistance(c, p.entries[0].Color)
	for i := 1; i < len(p.entries); i++ {
		d := WeightedDistance(c, p.entries[i].Color)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return p.entries[best], nil
}

// ClosestLabel is Closest reduced to the label.
func (p *Palette) ClosestLabel(c Color) (string, error) {
	e, err := p.Closest(c)
	if err != nil {
		return "", err
	}
	return e.Label, nil
}

// ColorOf returns the color of the first entry carrying label.
func (p *Palette) ColorOf(label string) (Color, bool) {
	if p == nil {
		return Color{}, false
	}
	for _, e := range p.entries {
		if e.Label == label {
			return e.Color, true
		}
	}
	return Color{}, false
}

// Store holds the current palette and swaps it atomically on reload.
type Store struct {
	current atomic.Pointer[Palette]
}

// NewStore returns a store holding p.
func NewStore(p *Palette) *Store {
	s := &Store{}
	s.Swap(p)
	return s
}

// Load returns the current palette. It never returns nil.
func (s *Store) Load() *Palette {
	if p := s.current.Load(); p != nil {
		return p
	}
	return &Palette{}
}

// Swap publishes p and returns the palette it replaced.
func (s *Store) Swap(p *Palette) *Palette {
	if p == nil {
		p = &Palette{}
	}
	old := s.current.Swap(p)
	if old == nil {
		old = &Palette{}
	}
	return old
}
