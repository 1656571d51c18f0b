package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/industrialdepot/internal/catalog"
	"github.com/JonMunkholm/industrialdepot/internal/config"
	"github.com/JonMunkholm/industrialdepot/internal/core"
	_ "github.com/JonMunkholm/industrialdepot/internal/core/tables" // Register all tables
	"github.com/JonMunkholm/industrialdepot/internal/logging"
	"github.com/JonMunkholm/industrialdepot/internal/metrics"
	"github.com/JonMunkholm/industrialdepot/internal/source"
	"github.com/JonMunkholm/industrialdepot/internal/translate"
	"github.com/JonMunkholm/industrialdepot/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.Source.Kind,
		"refresh_interval", cfg.Source.RefreshInterval.String(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("configuration", "config", cfg.String())

	terms, err := loadTerms(cfg.Catalog)
	if err != nil {
		slog.Error("failed to load term dictionaries", "error", err)
		os.Exit(1)
	}

	equipment, err := loadEquipment(cfg.Catalog)
	if err != nil {
		slog.Error("failed to load equipment catalog", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	bindings, closeSources, err := source.FromConfig(ctx, cfg)
	if err != nil {
		slog.Error("failed to configure sources", "error", err)
		os.Exit(1)
	}
	defer closeSources()

	for _, b := range bindings {
		name := "<none>"
		if b.Source != nil {
			name = b.Source.Name()
		}
		slog.Info("table bound", "table", b.Def.Info.Key, "source", name)
	}
	slog.Info("tables registered", "count", core.TableCount())

	registry := metrics.NewRegistry()
	recorder := metrics.New(registry)

	store := core.NewStore(core.StoreOptions{Logger: logger, Observer: recorder}, bindings...)
	service := core.NewService(store, terms, logger)

	server := web.NewServer(web.Deps{
		Service: service,
		Terms:   terms,
		Catalog: equipment,
		Metrics: recorder,
	}, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	// Load the tables now and keep them in step with their sources
	go service.StartRefreshScheduler(jobCtx, core.RefreshConfig{
		Interval: cfg.Source.RefreshInterval,
		Timeout:  cfg.Source.Timeout,
	})
	if cfg.Catalog.EquipmentFile != "" && cfg.Source.RefreshInterval > 0 {
		go refreshEquipment(jobCtx, equipment, cfg.Source.RefreshInterval)
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for a running refresh to finish (with timeout)
		if active := service.Limiter().ActiveCount(); active > 0 {
			slog.Info("waiting for refresh to complete", "active", active)
			if err := service.Limiter().WaitForDrain(shutdownCtx); err != nil {
				slog.Warn("refresh did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// loadTerms reads the term dictionaries from TERMS_FILE or the bundled set.
func loadTerms(cfg config.CatalogConfig) (*translate.Mapper, error) {
	if cfg.TermsFile != "" {
		slog.Info("loading term dictionaries", "path", cfg.TermsFile)
		return translate.LoadFile(cfg.TermsFile)
	}
	return translate.Default()
}

// loadEquipment reads the robot and cobot list from EQUIPMENT_FILE or the
// bundled list.
func loadEquipment(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.EquipmentFile != "" {
		slog.Info("loading equipment catalog", "path", cfg.EquipmentFile)
		return catalog.LoadFile(cfg.EquipmentFile)
	}
	return catalog.Default()
}

// refreshEquipment re-reads the equipment file every interval. A failed
// read keeps the previous lists.
func refreshEquipment(ctx context.Context, c *catalog.Catalog, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(); err != nil {
				slog.Error("equipment refresh failed", "error", err)
			} else {
				slog.Debug("equipment catalog refreshed",
					"robots", len(c.Robots()),
					"cobots", len(c.Cobots()),
				)
			}
		}
	}
}
