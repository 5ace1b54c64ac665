package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "kestrel.toml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[rewriter]
passes = ["prop", "struct"]

[cache]
enabled = true
path = "build/trees.db"

[debug]
raw = true
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if len(cfg.Rewriter.Passes) != 2 || cfg.Rewriter.Passes[0] != "prop" || cfg.Rewriter.Passes[1] != "struct" {
		t.Errorf("passes = %v, want [prop struct]", cfg.Rewriter.Passes)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache not enabled")
	}
	if cfg.Cache.Path != "build/trees.db" {
		t.Errorf("cache path = %q, want %q", cfg.Cache.Path, "build/trees.db")
	}
	if !cfg.Debug.Raw {
		t.Error("debug.raw not set")
	}
	if !filepath.IsAbs(cfg.Dir) {
		t.Errorf("Dir = %q, want absolute", cfg.Dir)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[cache]
enabled = true
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if len(cfg.Rewriter.Passes) != 0 {
		t.Errorf("passes = %v, want empty (all passes)", cfg.Rewriter.Passes)
	}
	if cfg.Cache.Path != filepath.Join(".kestrel", "trees.db") {
		t.Errorf("cache path = %q, want default", cfg.Cache.Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load on empty dir succeeded, want error")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[rewriter\npasses = oops")
	if _, err := Load(dir); err == nil {
		t.Error("Load on malformed file succeeded, want error")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
[debug]
raw = true
`)
	sub := filepath.Join(root, "src", "models")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := FindAndLoad(sub)
	if err != nil {
		t.Fatalf("FindAndLoad = %v", err)
	}
	if !cfg.Debug.Raw {
		t.Error("config found in parent not loaded")
	}
	want, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != want {
		t.Errorf("Dir = %q, want %q", cfg.Dir, want)
	}
}

func TestFindAndLoadDefaults(t *testing.T) {
	cfg, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad = %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("default config enables the cache")
	}
	if cfg.Cache.Path == "" {
		t.Error("default config has no cache path")
	}
}

func TestCachePath(t *testing.T) {
	cfg := Default()
	cfg.Dir = "/proj"
	if got := cfg.CachePath(); got != filepath.Join("/proj", ".kestrel", "trees.db") {
		t.Errorf("CachePath = %q, want it under /proj", got)
	}

	cfg.Cache.Path = "/abs/trees.db"
	if got := cfg.CachePath(); got != "/abs/trees.db" {
		t.Errorf("CachePath with absolute = %q, want %q", got, "/abs/trees.db")
	}

	// Without a config dir the path is used as written.
	cfg = Default()
	if got := cfg.CachePath(); got != filepath.Join(".kestrel", "trees.db") {
		t.Errorf("CachePath without dir = %q", got)
	}
}
