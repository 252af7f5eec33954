// Package main provides the entry point for the OpenAlex MCP server.
// The MCP protocol runs over stdio; logs go to stderr and metrics, when
// enabled, to a separate HTTP listener.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helixir/openalex-mcp/internal/config"
	"github.com/helixir/openalex-mcp/internal/observability"
	"github.com/helixir/openalex-mcp/internal/openalex"
	"github.com/helixir/openalex-mcp/internal/pdf"
	"github.com/helixir/openalex-mcp/internal/tools"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration. A validation failure here is the only fatal
	// error path; once serving, failures become tool results.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger := observability.NewLogger(cfg.Logging)
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Str("version", version).Msg("openalex-mcp server starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics("openalex_mcp")
	}

	// Build the upstream gateway and the download pipeline on top of it.
	client := openalex.New(cfg.OpenAlex, cfg.Download, logger, metrics)
	downloader := pdf.NewDownloader(client, logger, metrics)

	// Register the tool surface.
	s := server.NewMCPServer("openalex-mcp", version,
		server.WithToolCapabilities(false),
	)
	tools.New(client, downloader, cfg, logger, metrics).Register(s)

	// Serve Prometheus metrics on a separate listener if configured.
	var metricsServer *http.Server
	errCh := make(chan error, 1)
	if cfg.Metrics.Enabled {
		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:    cfg.Metrics.Addr,
			Handler: r,
		}
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	// Serve MCP over stdio in the background so shutdown signals and
	// metrics server failures are observed from one place.
	go func() {
		logger.Info().
			Str("base_url", cfg.OpenAlex.BaseURL).
			Bool("polite_pool", cfg.OpenAlex.PolitePool()).
			Msg("serving MCP over stdio")
		errCh <- server.ServeStdio(s)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server error")
			return err
		}
		// stdio stream closed by the client; normal termination.
		logger.Info().Msg("stdio stream closed")
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.OpenAlex.Timeout)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown error")
		}
	}

	logger.Info().Msg("openalex-mcp shutdown complete")
	return nil
}
