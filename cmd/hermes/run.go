package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"lumen-hq/hermes/pkg/config"
	"lumen-hq/hermes/pkg/providers"
	"lumen-hq/hermes/pkg/providers/google"
	"lumen-hq/hermes/pkg/ratelimit"
	"lumen-hq/hermes/pkg/server"
	"lumen-hq/hermes/pkg/telemetry/logging"
	"lumen-hq/hermes/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watch         bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Hermes relay server",
	Long: `Start the Hermes relay server with the specified configuration.

The server exposes POST /api/chat, GET /api/health, a Prometheus metrics
endpoint, and the static frontend.

Examples:
  # Start with defaults
  hermes run

  # Start with a config file
  hermes run --config /etc/hermes/hermes.yaml

  # Override listen address
  hermes run --listen 0.0.0.0:8000

  # Reload the config file on change
  hermes run --config hermes.yaml --watch

  # Validate config without starting the server
  hermes run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
	runCmd.Flags().BoolVar(&runFlags.watch, "watch", false, "reload the config file on change")
}

func runServer(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logging.Setup(cfg.Telemetry.Logging)

	if runFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	slog.Info("starting hermes",
		"version", Version,
		"listen_address", cfg.Server.ListenAddress,
		"model", cfg.Provider.Model,
	)

	if cfg.Provider.APIKey == "" {
		slog.Warn("GOOGLE_API_KEY is not set; chat requests will fail with a configuration error until a key is provided")
	} else {
		slog.Info("backend credential configured",
			"api_key", logging.RedactSecret(cfg.Provider.APIKey),
		)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	provider, err := google.NewProvider(providers.ProviderConfig{
		Name:                cfg.Provider.Name,
		BaseURL:             cfg.Provider.BaseURL,
		APIKey:              cfg.Provider.APIKey,
		Model:               cfg.Provider.Model,
		Timeout:             cfg.Provider.Timeout,
		MaxRetries:          cfg.Provider.MaxRetries,
		MaxIdleConns:        cfg.Provider.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Provider.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Provider.IdleConnTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize provider: %w", err)
	}
	defer provider.Close()

	limiter := ratelimit.New(ratelimit.Config{
		Window:      cfg.RateLimit.Window,
		MaxRequests: cfg.RateLimit.MaxRequests,
	})

	sweeper := ratelimit.NewSweeper(limiter, cfg.RateLimit.SweepSchedule)
	sweeper.OnSweep = func(evicted, tracked int) {
		collector.SetTrackedClients(tracked)
	}
	if err := sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start rate limit sweeper: %w", err)
	}
	defer sweeper.Stop()

	if runFlags.watch && cfgFile != "" {
		watcher, err := config.NewFileWatcher(cfgFile, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		defer watcher.Stop()

		go func() {
			err := watcher.Watch(ctx, func(newCfg *config.Config) {
				limiter.SetLimits(ratelimit.Config{
					Window:      newCfg.RateLimit.Window,
					MaxRequests: newCfg.RateLimit.MaxRequests,
				})
				logging.Setup(newCfg.Telemetry.Logging)
				slog.Info("reloadable settings applied",
					"rate_limit_window", newCfg.RateLimit.Window.String(),
					"rate_limit_max_requests", newCfg.RateLimit.MaxRequests,
					"log_level", newCfg.Telemetry.Logging.Level,
				)
			})
			if err != nil {
				slog.Error("config watcher exited", "error", err)
			}
		}()
	}

	srv := server.NewServer(cfg, provider, limiter, collector)
	return srv.Start(ctx)
}
