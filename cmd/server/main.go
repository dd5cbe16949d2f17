package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/light-bringer/decant-store/internal/config"
	"github.com/light-bringer/decant-store/internal/pkg/logging"
	"github.com/light-bringer/decant-store/internal/pkg/telemetry"
	"github.com/light-bringer/decant-store/internal/services"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration. Every invalid key is reported before exiting.
	cfg, err := config.Load()
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			for _, problem := range verr.Problems {
				slog.Error("invalid configuration", "problem", problem)
			}
		}
		return err
	}

	logger := logging.New(os.Stdout, cfg.IsProduction(), cfg.SlogLevel())
	slog.SetDefault(logger)

	logger.Info("starting decant store",
		"env", cfg.App.Env,
		"driver", cfg.Database.Driver,
		"addr", cfg.Addr(),
		"brand_cache", cfg.Redis.URL != "",
	)

	// 2. Tracing
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, cfg.App.Env, cfg.Telemetry.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}

	// 3. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           serviceOpts.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// 4. Start HTTP server in background
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down gracefully", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer shutdown error", "error", err)
	}

	return nil
}
