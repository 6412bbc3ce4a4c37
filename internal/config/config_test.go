package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Fetch.Concurrency != 5 {
		t.Errorf("expected concurrency 5, got %d", cfg.Fetch.Concurrency)
	}
	if cfg.Fetch.NewsLimit != 30 {
		t.Errorf("expected news limit 30, got %d", cfg.Fetch.NewsLimit)
	}
	if cfg.Matching.Threshold != 0.2 || cfg.Matching.MarketsLimit != 6 || cfg.Matching.NewsLimit != 10 {
		t.Errorf("unexpected matching defaults: %+v", cfg.Matching)
	}
	if len(cfg.Feeds) != 5 {
		t.Errorf("expected 5 default feeds, got %d", len(cfg.Feeds))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("POLYPULSE_HOME", tmpDir)

	if dir := Dir(); dir != tmpDir {
		t.Errorf("expected %s, got %s", tmpDir, dir)
	}
	if path := DBPath(); path != filepath.Join(tmpDir, "polypulse.db") {
		t.Errorf("unexpected db path %s", path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("POLYPULSE_HOME", t.TempDir())

	cfg := Default()
	cfg.Fetch.Concurrency = 10
	cfg.Matching.Threshold = 0.3

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Fetch.Concurrency != 10 {
		t.Errorf("expected concurrency 10, got %d", loaded.Fetch.Concurrency)
	}
	if loaded.Matching.Threshold != 0.3 {
		t.Errorf("expected threshold 0.3, got %f", loaded.Matching.Threshold)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("POLYPULSE_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Daemon.IntervalMinutes != 15 {
		t.Errorf("expected default interval, got %d", cfg.Daemon.IntervalMinutes)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POLYPULSE_HOME", dir)

	partial := []byte("matching:\n  markets_limit: 3\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), partial, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Matching.MarketsLimit != 3 {
		t.Errorf("expected markets limit 3, got %d", cfg.Matching.MarketsLimit)
	}
	if cfg.Matching.EntityBonus != 0.25 {
		t.Errorf("expected default entity bonus, got %f", cfg.Matching.EntityBonus)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POLYPULSE_HOME", dir)

	bad := []byte("fetch:\n  concurrency: 0\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), bad, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for zero concurrency")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative bonus": func(c *Config) { c.Matching.TopicBonus = -1 },
		"empty feed url": func(c *Config) { c.Feeds = append(c.Feeds, Feed{Name: "x"}) },
		"bad log format": func(c *Config) { c.Log.Format = "xml" },
		"zero interval":  func(c *Config) { c.Daemon.IntervalMinutes = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
