package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string `json:"api_base_url"`
	TimeoutSec     int    `json:"timeout_seconds,omitempty"`
	Retries        int    `json:"retries,omitempty"`
	BackoffMS      int    `json:"backoff_ms,omitempty"`
	PageSize       int    `json:"page_size,omitempty"`
	Theme          string `json:"theme,omitempty"`
	FeedbackTTLSec int    `json:"feedback_ttl_seconds,omitempty"`
}

func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "skydesk"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "skydesk"), nil
}

func StateDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv("SKYDESK_STATE_DIR"); env != "" {
		return env, nil
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "skydesk"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "skydesk"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func Load() (Config, error) {
	// A .env next to the binary is deployment configuration, not contract.
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:     "http://localhost:8080",
		TimeoutSec:     20,
		Retries:        2,
		BackoffMS:      400,
		PageSize:       10,
		Theme:          "blue",
		FeedbackTTLSec: 4,
	}
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(&cfg)
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080"
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = 20
	}
	if cfg.Retries < 0 {
		cfg.Retries = 2
	}
	if cfg.BackoffMS <= 0 {
		cfg.BackoffMS = 400
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.Theme == "" {
		cfg.Theme = "blue"
	}
	if cfg.FeedbackTTLSec <= 0 {
		cfg.FeedbackTTLSec = 4
	}
	return cfg, nil
}

func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, "config.json")
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o600)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SKYDESK_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("SKYDESK_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSec = n
		}
	}
	if v := os.Getenv("SKYDESK_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Retries = n
		}
	}
	if v := os.Getenv("SKYDESK_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BackoffMS = n
		}
	}
	if v := os.Getenv("SKYDESK_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("SKYDESK_THEME"); v != "" {
		cfg.Theme = v
	}
}
