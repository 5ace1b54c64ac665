// Package config handles kestrel.toml project configuration for the
// front-end pipeline: which rewrite passes run, where the tree cache
// lives, and how debug output is rendered.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents a kestrel.toml file.
type Config struct {
	Rewriter Rewriter `toml:"rewriter"`
	Cache    Cache    `toml:"cache"`
	Debug    Debug    `toml:"debug"`

	// Dir is the directory containing the kestrel.toml file (set at load time).
	Dir string `toml:"-"`
}

// Rewriter configures the desugaring pass driver.
type Rewriter struct {
	// Passes lists enabled pass names. Empty means all registered
	// passes run in their registered order.
	Passes []string `toml:"passes"`
}

// Cache configures the serialized-tree cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Debug configures the printer used by debug tooling.
type Debug struct {
	// Raw selects the structural rendering over the readable one.
	Raw bool `toml:"raw"`
}

// Default returns the configuration used when no kestrel.toml exists.
func Default() *Config {
	return &Config{
		Cache: Cache{Path: filepath.Join(".kestrel", "trees.db")},
	}
}

// CachePath returns the cache database path, resolved against the
// config file's directory when relative.
func (c *Config) CachePath() string {
	if filepath.IsAbs(c.Cache.Path) || c.Dir == "" {
		return c.Cache.Path
	}
	return filepath.Join(c.Dir, c.Cache.Path)
}

// Load parses a kestrel.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, "kestrel.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(".kestrel", "trees.db")
	}

	return c, nil
}

// FindAndLoad walks up from startDir to find a kestrel.toml file,
// then loads and returns the config. Returns the defaults if no file
// is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", startDir, err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "kestrel.toml")); err == nil {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
