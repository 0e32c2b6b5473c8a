package config

import (
	"log"
	"sync"

	"github.com/ironsheep/image-builder-mcp/internal/palette"
)

// ReloadResult reports the outcome of a palette reload.
type ReloadResult struct {
	Path    string   `json:"path"`
	Entries int      `json:"entries"`
	Invalid []string `json:"invalid,omitempty"`
}

// Reloader re-reads the config file and publishes its palette to a store.
// A failed read leaves the current palette in place.
type Reloader struct {
	Path     string
	Resolver palette.LabelResolver
	Store    *palette.Store
	Logger   *log.Logger

	// mu serialises reloads; readers of Store are never blocked.
	mu sync.Mutex
}

// Reload loads Path and swaps the store's palette.
func (r *Reloader) Reload() (*ReloadResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	_, p, invalid, err := LoadPalette(r.Path, r.Resolver, logger)
	if err != nil {
		return nil, err
	}
	r.Store.Swap(p)
	logger.Printf("Reloaded palette from %s: %d entries, %d invalid", r.Path, p.Len(), len(invalid))

	res := &ReloadResult{Path: r.Path, Entries: p.Len()}
	for _, e := range invalid {
		res.Invalid = append(res.Invalid, e.Error())
	}
	return res, nil
}
