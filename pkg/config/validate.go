package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate checks the configuration for invalid or inconsistent values.
// The provider API key is deliberately not required here: a missing key is
// a startup warning and a per-request configuration error, not a fatal one.
func Validate(cfg *Config) error {
	if cfg.Server.ListenAddress == "" {
		return fmt.Errorf("server.listen_address must not be empty")
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.StaticDir == "" {
		return fmt.Errorf("server.static_dir must not be empty")
	}

	if cfg.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url must not be empty")
	}
	if cfg.Provider.Model == "" {
		return fmt.Errorf("provider.model must not be empty")
	}
	if cfg.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive, got %s", cfg.Provider.Timeout)
	}
	if cfg.Provider.MaxRetries < 0 {
		return fmt.Errorf("provider.max_retries must not be negative, got %d", cfg.Provider.MaxRetries)
	}

	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive, got %s", cfg.RateLimit.Window)
	}
	if cfg.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate_limit.max_requests must be positive, got %d", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.SweepSchedule != "" {
		if _, err := cron.ParseStandard(cfg.RateLimit.SweepSchedule); err != nil {
			return fmt.Errorf("rate_limit.sweep_schedule is not a valid cron expression: %w", err)
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be one of debug, info, warn, error; got %q", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format must be json or text; got %q", cfg.Telemetry.Logging.Format)
	}

	return nil
}
