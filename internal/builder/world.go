package builder

import (
	"context"
	"sync"
)

// MemoryWorld is an in-memory Sink that records the label placed at each
// location. Later placements overwrite earlier ones. It is safe for concurrent
// use.
type MemoryWorld struct {
	mu     sync.RWMutex
	blocks map[Location]string
	builds int
}

// NewMemoryWorld returns an empty world.
func NewMemoryWorld() *MemoryWorld {
	return &MemoryWorld{blocks: make(map[Location]string)}
}

// Place implements Sink.
func (w *MemoryWorld) Place(ctx context.Context, origin Location, g *Grid) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	placements := g.Placements(origin)

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range placements {
		w.blocks[p.Location] = p.Label
	}
	w.builds++
	return nil
}

// BlockAt returns the label at loc.
func (w *MemoryWorld) BlockAt(loc Location) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	label, ok := w.blocks[loc]
	return label, ok
}

// Len returns the number of occupied locations.
func (w *MemoryWorld) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.blocks)
}

// Builds returns how many grids have been placed.
func (w *MemoryWorld) Builds() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.builds
}
