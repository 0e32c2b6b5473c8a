// Package app wires configuration, palette, fetcher, builder and world
// together for the command-line entry points.
package app

import (
	"log"
	"os"

	"github.com/ironsheep/image-builder-mcp/internal/builder"
	"github.com/ironsheep/image-builder-mcp/internal/config"
	"github.com/ironsheep/image-builder-mcp/internal/fetch"
	"github.com/ironsheep/image-builder-mcp/internal/palette"
)

// Options adjusts how an App is assembled.
type Options struct {
	// AllowFile lets builds read file:// URLs.
	AllowFile bool

	// Logger receives startup warnings and build messages. nil means
	// log.Default().
	Logger *log.Logger
}

// App holds the wired components.
type App struct {
	Config   *config.Config
	Store    *palette.Store
	World    *builder.MemoryWorld
	Builder  *builder.Builder
	Reloader *config.Reloader
}

// Load reads the config file at path, or resolves it from the environment
// when path is empty, and assembles an App from it.
func Load(path string, opts Options) (*App, error) {
	if path == "" {
		cfg, err := config.FromEnv()
		if err != nil {
			return nil, err
		}
		return New(cfg, opts), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return New(cfg, opts), nil
}

// New assembles an App from cfg. Invalid palette entries are logged and
// skipped. An empty palette is not an error here; builds report it.
func New(cfg *config.Config, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	resolver := palette.Materials()
	p, _ := cfg.Palette(resolver, logger)
	if p.Len() == 0 {
		logger.Printf("Warning: palette is empty; builds will fail until it is reloaded")
	}
	store := palette.NewStore(p)

	f := fetch.New()
	f.AllowFile = opts.AllowFile

	world := builder.NewMemoryWorld()
	a := &App{
		Config: cfg,
		Store:  store,
		World:  world,
		Builder: builder.New(f, store, builder.Options{
			MaxEdge: cfg.MaxEdge,
			Filter:  cfg.Filter,
			Sink:    world,
			Logger:  logger,
			Debug:   cfg.Debug,
		}),
	}

	if cfg.Path != "" {
		a.Reloader = &config.Reloader{
			Path:     cfg.Path,
			Resolver: resolver,
			Store:    store,
			Logger:   logger,
		}
	}
	return a
}
