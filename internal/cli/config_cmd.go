package cli

import (
	"fmt"
	"strconv"

	"github.com/agisilaos/skydesk/internal/config"
)

var configKeys = []string{
	"api_base_url", "timeout_seconds", "retries", "backoff_ms",
	"page_size", "theme", "feedback_ttl_seconds",
}

func (a App) cmdConfig(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk config <get|set|path>")
	}
	switch args[0] {
	case "path":
		p, err := config.ConfigPath()
		if err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
		fmt.Println(p)
		return nil
	case "get":
		return a.configGet(g, args[1:])
	case "set":
		return a.configSet(g, args[1:])
	default:
		return newExitError(ExitInvalidUsage, "usage: skydesk config <get|set|path>")
	}
}

func (a App) configGet(g globalFlags, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if len(args) == 0 {
		if g.JSON {
			return writeJSON(cfg)
		}
		writePlainKV(
			"api_base_url", cfg.APIBaseURL,
			"timeout_seconds", strconv.Itoa(cfg.TimeoutSec),
			"retries", strconv.Itoa(cfg.Retries),
			"backoff_ms", strconv.Itoa(cfg.BackoffMS),
			"page_size", strconv.Itoa(cfg.PageSize),
			"theme", cfg.Theme,
			"feedback_ttl_seconds", strconv.Itoa(cfg.FeedbackTTLSec),
		)
		return nil
	}
	if len(args) != 1 {
		return newExitError(ExitInvalidUsage, "usage: skydesk config get [key]")
	}
	value, err := configValue(cfg, args[0])
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func (a App) configSet(g globalFlags, args []string) error {
	if len(args) != 2 {
		return newExitError(ExitInvalidUsage, "usage: skydesk config set <key> <value>")
	}
	cfg, err := config.Load()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if err := applyConfigValue(&cfg, args[0], args[1]); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if !g.Quiet {
		fmt.Printf("%s=%s\n", args[0], args[1])
	}
	return nil
}

func configValue(cfg config.Config, key string) (string, error) {
	switch key {
	case "api_base_url":
		return cfg.APIBaseURL, nil
	case "timeout_seconds":
		return strconv.Itoa(cfg.TimeoutSec), nil
	case "retries":
		return strconv.Itoa(cfg.Retries), nil
	case "backoff_ms":
		return strconv.Itoa(cfg.BackoffMS), nil
	case "page_size":
		return strconv.Itoa(cfg.PageSize), nil
	case "theme":
		return cfg.Theme, nil
	case "feedback_ttl_seconds":
		return strconv.Itoa(cfg.FeedbackTTLSec), nil
	default:
		if s := suggestClosest(key, configKeys); s != "" {
			return "", newExitError(ExitInvalidUsage, "unknown config key %q (did you mean %q?)", key, s)
		}
		return "", newExitError(ExitInvalidUsage, "unknown config key %q", key)
	}
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	positiveInt := func(target *int) error {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return newExitError(ExitInvalidUsage, "%s must be a positive integer, got %q", key, value)
		}
		*target = n
		return nil
	}
	switch key {
	case "api_base_url":
		if value == "" {
			return newExitError(ExitInvalidUsage, "api_base_url cannot be empty")
		}
		cfg.APIBaseURL = value
		return nil
	case "timeout_seconds":
		return positiveInt(&cfg.TimeoutSec)
	case "retries":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return newExitError(ExitInvalidUsage, "retries must be a non-negative integer, got %q", value)
		}
		cfg.Retries = n
		return nil
	case "backoff_ms":
		return positiveInt(&cfg.BackoffMS)
	case "page_size":
		return positiveInt(&cfg.PageSize)
	case "theme":
		cfg.Theme = value
		return nil
	case "feedback_ttl_seconds":
		return positiveInt(&cfg.FeedbackTTLSec)
	default:
		if s := suggestClosest(key, configKeys); s != "" {
			return newExitError(ExitInvalidUsage, "unknown config key %q (did you mean %q?)", key, s)
		}
		return newExitError(ExitInvalidUsage, "unknown config key %q", key)
	}
}
