package palette

import (
	"errors"
	"fmt"
)

// ErrInvalidEntry marks a configured color/label pair that could not be
// turned into a palette entry.
var ErrInvalidEntry = errors.New("invalid palette entry")

// Mapping is one raw configuration pair: a hex color key and a label name.
type Mapping struct {
	Key   string
	Label string
}

// InvalidEntryError describes a rejected Mapping.
type InvalidEntryError struct {
	Key    string
	Label  string
	Reason error
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid palette entry %q -> %q: %v", e.Key, e.Label, e.Reason)
}

// Unwrap lets errors.Is match both ErrInvalidEntry and the underlying reason.
func (e *InvalidEntryError) Unwrap() []error {
	return []error{ErrInvalidEntry, e.Reason}
}

// LabelResolver validates a configured label and returns its canonical form.
type LabelResolver interface {
	Resolve(name string) (string, bool)
}

// ResolverFunc adapts a function to LabelResolver.
type ResolverFunc func(name string) (string, bool)

// Resolve calls f(name).
func (f ResolverFunc) Resolve(name string) (string, bool) {
	return f(name)
}

// AnyLabel accepts every non-empty label unchanged.
var AnyLabel = ResolverFunc(func(name string) (string, bool) {
	return name, name != ""
})

// FromMappings builds a palette from raw configuration pairs, in order.
//
// Pairs with a malformed color key or an unresolvable label are skipped; one
// *InvalidEntryError per skipped pair is returned so the caller can warn about
// them. A nil resolver accepts any non-empty label.
//
// Parameters:
//   - mappings: Color/label pairs in priority order. Earlier pairs win ties.
//   - resolver: Validates and canonicalises labels, e.g. Materials().
//
// Returns:
//   - *Palette: The valid entries, never nil. It may be empty.
//   - []error: One *InvalidEntryError per skipped pair, in input order.
func FromMappings(mappings []Mapping, resolver LabelResolver) (*Palette, []error) {
	if resolver == nil {
		resolver = AnyLabel
	}

	entries := make([]Entry, 0, len(mappings))
	var invalid []error
	for _, m := range mappings {
		c, err := ParseHex(m.Key)
		if err != nil {
			invalid = append(invalid, &InvalidEntryError{Key: m.Key, Label: m.Label, Reason: err})
			continue
		}
		label, ok := resolver.Resolve(m.Label)
		if !ok {
			invalid = append(invalid, &InvalidEntryError{
				Key:    m.Key,
				Label:  m.Label,
				Reason: fmt.Errorf("unknown label %q", m.Label),
			})
			continue
		}
		entries = append(entries, Entry{Color: c, Label: label})
	}

	return &Palette{entries: entries}, invalid
}
