package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Kill.MinFame != DefaultMinFame {
		t.Fatalf("MinFame = %d, want %d", cfg.Kill.MinFame, DefaultMinFame)
	}
	if cfg.Render.ItemBaseURL != DefaultItemBaseURL {
		t.Fatalf("ItemBaseURL = %s, want %s", cfg.Render.ItemBaseURL, DefaultItemBaseURL)
	}
	if cfg.Render.Format != "png" {
		t.Fatalf("Format = %s, want png", cfg.Render.Format)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ":9000"
render:
  fetch_timeout: 3s
  rate_per_sec: 5
kill:
  min_fame: 1000
`)
	t.Setenv("KILL_MIN_FAME", "40000")
	t.Setenv("RENDER_MAX_CONCURRENT_FETCHES", "4")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("Addr = %s, want :9000", cfg.Server.Addr)
	}
	if cfg.Render.FetchTimeout != 3*time.Second {
		t.Fatalf("FetchTimeout = %s, want 3s", cfg.Render.FetchTimeout)
	}
	if cfg.Render.RatePerSec != 5 {
		t.Fatalf("RatePerSec = %v, want 5", cfg.Render.RatePerSec)
	}
	if cfg.Kill.MinFame != 40000 {
		t.Fatalf("MinFame = %d, want 40000 (env wins)", cfg.Kill.MinFame)
	}
	if cfg.Render.MaxConcurrentFetches != 4 {
		t.Fatalf("MaxConcurrentFetches = %d, want 4", cfg.Render.MaxConcurrentFetches)
	}
	// untouched keys keep their defaults
	if cfg.Render.IconSheetURL != DefaultIconSheetURL {
		t.Fatalf("IconSheetURL = %s, want default", cfg.Render.IconSheetURL)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "kill:\n  min_fam: 10\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFile(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Kill.MinFame != DefaultMinFame {
		t.Fatalf("MinFame = %d, want default", cfg.Kill.MinFame)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Config)
		errHas string
	}{
		{name: "negative fame", mutate: func(c *Config) { c.Kill.MinFame = -1 }, errHas: "min_fame"},
		{name: "zero timeout", mutate: func(c *Config) { c.Render.FetchTimeout = 0 }, errHas: "fetch_timeout"},
		{name: "bad format", mutate: func(c *Config) { c.Render.Format = "gif" }, errHas: "render.format"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, errHas: "logging.format"},
		{name: "negative concurrency", mutate: func(c *Config) { c.Render.MaxConcurrentFetches = -2 }, errHas: "max_concurrent_fetches"},
		{name: "missing item url", mutate: func(c *Config) { c.Render.ItemBaseURL = " " }, errHas: "item_base_url"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errHas) {
				t.Fatalf("error %q does not mention %q", err, tt.errHas)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
