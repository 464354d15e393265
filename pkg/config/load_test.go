package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hermes.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("Expected listen address %q, got %q", DefaultListenAddress, cfg.Server.ListenAddress)
	}
	if cfg.Provider.Model != DefaultProviderModel {
		t.Errorf("Expected model %q, got %q", DefaultProviderModel, cfg.Provider.Model)
	}
	if cfg.RateLimit.Window != DefaultRateLimitWindow {
		t.Errorf("Expected window %v, got %v", DefaultRateLimitWindow, cfg.RateLimit.Window)
	}
	if cfg.RateLimit.MaxRequests != DefaultRateLimitMaxRequests {
		t.Errorf("Expected max requests %d, got %d", DefaultRateLimitMaxRequests, cfg.RateLimit.MaxRequests)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("Metrics should be enabled by default")
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen_address: ":9090"
provider:
  model: gemini-1.5-pro
rate_limit:
  max_requests: 25
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.ListenAddress != ":9090" {
		t.Errorf("Expected :9090, got %q", cfg.Server.ListenAddress)
	}
	if cfg.Provider.Model != "gemini-1.5-pro" {
		t.Errorf("Expected gemini-1.5-pro, got %q", cfg.Provider.Model)
	}
	if cfg.RateLimit.MaxRequests != 25 {
		t.Errorf("Expected 25, got %d", cfg.RateLimit.MaxRequests)
	}

	// Omitted fields keep their defaults
	if cfg.RateLimit.Window != DefaultRateLimitWindow {
		t.Errorf("Omitted window should keep default, got %v", cfg.RateLimit.Window)
	}
	if cfg.Provider.BaseURL != DefaultProviderBaseURL {
		t.Errorf("Omitted base URL should keep default, got %q", cfg.Provider.BaseURL)
	}
}

func TestLoadConfig_ExplicitFalseSurvivesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
telemetry:
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("Explicit enabled: false should not be overwritten by defaults")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/hermes.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "negative rate limit",
			content: "rate_limit:\n  max_requests: -1\n",
		},
		{
			name:    "bad sweep schedule",
			content: "rate_limit:\n  sweep_schedule: not-cron\n",
		},
		{
			name:    "bad logging level",
			content: "telemetry:\n  logging:\n    level: loud\n",
		},
		{
			name:    "bad logging format",
			content: "telemetry:\n  logging:\n    format: xml\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfigWithEnvOverrides_OperatorContract(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("GOOGLE_API_KEY", "env-key")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Server.ListenAddress != ":9999" {
		t.Errorf("PORT should map to listen address, got %q", cfg.Server.ListenAddress)
	}
	if cfg.Provider.APIKey != "env-key" {
		t.Errorf("GOOGLE_API_KEY should map to provider API key, got %q", cfg.Provider.APIKey)
	}
}

func TestLoadConfigWithEnvOverrides_GeneralConvention(t *testing.T) {
	t.Setenv("HERMES_SERVER_LISTEN_ADDRESS", "127.0.0.1:8080")
	t.Setenv("HERMES_PROVIDER_MODEL", "gemini-1.5-pro")
	t.Setenv("HERMES_RATE_LIMIT_WINDOW", "2m")
	t.Setenv("HERMES_RATE_LIMIT_MAX_REQUESTS", "50")
	t.Setenv("HERMES_METRICS_ENABLED", "false")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Server.ListenAddress != "127.0.0.1:8080" {
		t.Errorf("Unexpected listen address %q", cfg.Server.ListenAddress)
	}
	if cfg.Provider.Model != "gemini-1.5-pro" {
		t.Errorf("Unexpected model %q", cfg.Provider.Model)
	}
	if cfg.RateLimit.Window != 2*time.Minute {
		t.Errorf("Unexpected window %v", cfg.RateLimit.Window)
	}
	if cfg.RateLimit.MaxRequests != 50 {
		t.Errorf("Unexpected max requests %d", cfg.RateLimit.MaxRequests)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("HERMES_METRICS_ENABLED=false should disable metrics")
	}
}

func TestLoadConfigWithEnvOverrides_EnvBeatsFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  listen_address: \":7000\"\n")
	t.Setenv("PORT", "7001")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}
	if cfg.Server.ListenAddress != ":7001" {
		t.Errorf("Environment should override file, got %q", cfg.Server.ListenAddress)
	}
}

func TestValidate_MissingAPIKeyIsAllowed(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Provider.APIKey = ""
	if err := Validate(cfg); err != nil {
		t.Errorf("Missing API key should not fail validation: %v", err)
	}
}
