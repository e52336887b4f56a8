package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestCacheBase_XDGSet(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	got := cacheBase()
	want := filepath.Join("/custom/cache", "npmd")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCacheBase_HomeDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	got := cacheBase()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}
	want := filepath.Join(home, ".cache", "npmd")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCacheBase_TmpFallback(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "")
	got := cacheBase()
	// Should use os.TempDir() when HOME is unset
	if !strings.Contains(got, "npmd") {
		t.Errorf("expected npmd in path, got %q", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Concurrency != 4 {
		t.Errorf("concurrency: %d", cfg.Render.Concurrency)
	}
	if cfg.Log.Level != slog.LevelInfo {
		t.Errorf("log level: %v", cfg.Log.Level)
	}
	if cfg.Index.Path == "" {
		t.Error("index path should default to the cache directory")
	}
}

func TestLoad_FromTOMLAndEnv(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	toml := "[render]\nignore_errors = true\npattern = '\\.wiki$'\n\n[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("NPMD_INDEX_PATH", "/tmp/other.idx.zst")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Render.IgnoreErrors {
		t.Error("render.ignore_errors not read from file")
	}
	if cfg.Render.Pattern != `\.wiki$` {
		t.Errorf("pattern: %q", cfg.Render.Pattern)
	}
	if cfg.Log.Level != slog.LevelDebug {
		t.Errorf("log level: %v", cfg.Log.Level)
	}
	if cfg.Index.Path != "/tmp/other.idx.zst" {
		t.Errorf("index path: %q", cfg.Index.Path)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	toml := "[log]\nlevel = \"verbose\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
