package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected default base url: %q", cfg.APIBaseURL)
	}
	if cfg.TimeoutSec != 20 || cfg.PageSize != 10 || cfg.Theme != "blue" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SKYDESK_API_BASE_URL", "https://ops.example.com")
	t.Setenv("SKYDESK_PAGE_SIZE", "25")
	t.Setenv("SKYDESK_THEME", "indigo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://ops.example.com" {
		t.Fatalf("env base url not applied: %q", cfg.APIBaseURL)
	}
	if cfg.PageSize != 25 || cfg.Theme != "indigo" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.APIBaseURL = "http://10.0.0.5:8080"
	cfg.PageSize = 50
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "skydesk", "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.APIBaseURL != "http://10.0.0.5:8080" || loaded.PageSize != 50 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestStateDirPrecedence(t *testing.T) {
	t.Setenv("SKYDESK_STATE_DIR", "")
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")

	dir, err := StateDir("/explicit")
	if err != nil || dir != "/explicit" {
		t.Fatalf("override should win: %q %v", dir, err)
	}
	dir, err = StateDir("")
	if err != nil || dir != filepath.Join("/tmp/xdg-state", "skydesk") {
		t.Fatalf("xdg state dir expected, got %q %v", dir, err)
	}
}
