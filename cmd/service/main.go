// Package main runs the quote wall HTTP service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotewall/internal/adapters/http"
	"github.com/jsamuelsen/quotewall/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotewall/internal/app"
	"github.com/jsamuelsen/quotewall/internal/platform/config"
	"github.com/jsamuelsen/quotewall/internal/platform/logging"
	"github.com/jsamuelsen/quotewall/internal/platform/metrics"
	"github.com/jsamuelsen/quotewall/internal/platform/telemetry"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

// Build-time variables, injected via ldflags:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("quote_endpoint", cfg.Services.Quote.BaseURL),
		slog.String("meme_endpoint", cfg.Services.Meme.BaseURL),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		Insecure:     cfg.Telemetry.Insecure,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	metricsManager := metrics.NewDefaultManager(cfg.App.Name)

	upstreams, err := acl.NewUpstreams(cfg, logger)
	if err != nil {
		return err
	}

	healthRegistry := ports.NewHealthRegistry()
	for _, checker := range []ports.HealthChecker{upstreams.Quotes, upstreams.Memes} {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering health check: %w", err)
		}
	}

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		QuoteClient: upstreams.Quotes,
		Metrics:     metricsManager,
		Logger:      logger,
	})
	memeService := app.NewMemeService(app.MemeServiceConfig{
		MemeClient: upstreams.Memes,
		Metrics:    metricsManager,
		Logger:     logger,
	})

	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		ServiceName: cfg.App.Name,
		HealthHandler: handlers.NewHealthHandler(healthRegistry,
			handlers.NewBuildInfo(Version, Commit, BuildTime), metricsManager.Gatherer()),
		PageHandler: handlers.NewPageHandler(handlers.PageHandlerConfig{
			Quotes:        quoteService,
			Memes:         memeService,
			Title:         cfg.Web.Title,
			HTMXSrc:       cfg.Web.HTMXSrc,
			HTMXIntegrity: cfg.Web.ScriptIntegrity(),
		}),
		QuoteHandler: handlers.NewQuoteHandler(quoteService),
		MemeHandler:  handlers.NewMemeHandler(memeService),
		Timeout:      cfg.Server.RequestTimeout,
	})

	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until SIGINT/SIGTERM or a server error, then drains
// in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
