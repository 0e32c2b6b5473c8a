// Package config loads the builder configuration file and applies
// environment overrides.
//
// The file is YAML. The color mapping is read as a node tree rather than a Go
// map so that entries keep the order they were written in; palette matching
// breaks ties by that order. Keys are kept as their literal text, which also
// means keys such as 000000 are not mistaken for integers.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-builder-mcp/internal/imaging"
	"github.com/ironsheep/image-builder-mcp/internal/palette"
)

// Environment variables read by FromEnv.
const (
	EnvConfigPath = "IMAGE_BUILDER_CONFIG"
	EnvMaxEdge    = "IMAGE_BUILDER_MAX_EDGE"
	EnvLogLevel   = "IMAGE_BUILDER_LOG_LEVEL"
)

// DefaultMaxEdge is used when the file does not set maxEdge.
const DefaultMaxEdge = 128

// DefaultPath is the config file used when EnvConfigPath is unset.
const DefaultPath = "config.yml"

//go:embed default_config.yml
var defaultConfig []byte

// Config is the parsed configuration.
type Config struct {
	// Path is the file the configuration was read from, empty for the
	// embedded default.
	Path string

	// MaxEdge is the largest edge of a built image.
	MaxEdge int

	// Filter is the resampling filter.
	Filter imaging.Filter

	// Mappings are the raw color/label pairs in document order.
	Mappings []palette.Mapping

	// Duplicates lists colorBlockMap keys that appeared more than once.
	Duplicates []string

	// Debug enables verbose logging.
	Debug bool
}

type fileConfig struct {
	MaxEdge       *int      `yaml:"maxEdge"`
	Filter        string    `yaml:"filter"`
	ColorBlockMap yaml.Node `yaml:"colorBlockMap"`
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	return Parse(defaultConfig)
}

// DefaultBytes returns a copy of the embedded default configuration file.
func DefaultBytes() []byte {
	return append([]byte(nil), defaultConfig...)
}

// Parse parses configuration file contents.
func Parse(data []byte) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := &Config{MaxEdge: DefaultMaxEdge}
	if fc.MaxEdge != nil {
		if *fc.MaxEdge < 1 {
			return nil, fmt.Errorf("maxEdge must be at least 1, got %d", *fc.MaxEdge)
		}
		cfg.MaxEdge = *fc.MaxEdge
	}

	f, err := imaging.ParseFilter(fc.Filter)
	if err != nil {
		return nil, err
	}
	cfg.Filter = f

	mappings, dups, err := parseColorMap(&fc.ColorBlockMap)
	if err != nil {
		return nil, err
	}
	cfg.Mappings = mappings
	cfg.Duplicates = dups

	return cfg, nil
}

// parseColorMap reads the mapping in document order. A repeated key keeps the
// position of its first occurrence and the value of its last.
func parseColorMap(n *yaml.Node) ([]palette.Mapping, []string, error) {
	switch n.Kind {
	case 0:
		// Section absent.
		return nil, nil, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil, nil
		}
	case yaml.MappingNode:
		mappings := make([]palette.Mapping, 0, len(n.Content)/2)
		seen := make(map[string]int, len(n.Content)/2)
		var dups []string
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return nil, nil, fmt.Errorf("colorBlockMap key %q (line %d): value must be a string", k.Value, k.Line)
			}
			if j, ok := seen[k.Value]; ok {
				mappings[j].Label = v.Value
				dups = append(dups, k.Value)
				continue
			}
			seen[k.Value] = len(mappings)
			mappings = append(mappings, palette.Mapping{Key: k.Value, Label: v.Value})
		}
		return mappings, dups, nil
	}
	return nil, nil, fmt.Errorf("colorBlockMap (line %d): must be a mapping", n.Line)
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// EnsureDefault writes the embedded default configuration to path if no file
// exists there yet. It reports whether a file was written.
func EnsureDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, defaultConfig, 0o644); err != nil {
		return false, fmt.Errorf("failed to write default config: %w", err)
	}
	return true, nil
}

// FromEnv resolves the config path from the environment, writes the default
// file there if it is missing, loads it and applies overrides.
func FromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath
	}

	written, err := EnsureDefault(path)
	if err != nil {
		return nil, err
	}
	if written {
		log.Printf("Wrote default config to %s", path)
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides using getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvMaxEdge); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: want a positive integer, got %q", EnvMaxEdge, v)
		}
		c.MaxEdge = n
	}
	if strings.EqualFold(getenv(EnvLogLevel), "debug") {
		c.Debug = true
	}
	return nil
}

// Palette builds the palette from the configured mappings. Entries that fail
// validation are logged as warnings and skipped; they are also returned.
// Repeated keys are logged as warnings too.
func (c *Config) Palette(resolver palette.LabelResolver, logger *log.Logger) (*palette.Palette, []error) {
	if logger == nil {
		logger = log.Default()
	}
	for _, k := range c.Duplicates {
		logger.Printf("Warning: colorBlockMap key %q appears more than once; using its last value", k)
	}
	p, invalid := palette.FromMappings(c.Mappings, resolver)
	for _, err := range invalid {
		logger.Printf("Warning: %v", err)
	}
	return p, invalid
}

// LoadPalette loads the file at path and builds its palette. Invalid entries
// are logged and returned; they do not make the load fail.
func LoadPalette(path string, resolver palette.LabelResolver, logger *log.Logger) (*Config, *palette.Palette, []error, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	p, invalid := cfg.Palette(resolver, logger)
	return cfg, p, invalid, nil
}
