package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recipe-finder/backend/internal/api"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and JSON API",
		Long: `Start the web UI and JSON API.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file
  3. Environment variables
  4. Command line flags

Environment variables:
  RECIPE_DATASET           Dataset path (default: recipe_dataset.csv)
  RECIPE_TOP_K             Results per search (default: 10)
  SERVER_ADDR              Listen address (default: :8080)
  SERVER_READ_TIMEOUT      (default: 10s)
  SERVER_WRITE_TIMEOUT     (default: 10s)
  SERVER_SHUTDOWN_TIMEOUT  (default: 5s)
  SERVER_CORS_ORIGINS      Comma-separated origins for /api (default: *)
  UI_DEFAULT_THEME         Light or Dark (default: Light)
  METRICS_ENABLED          Expose /metrics (default: true)
  LOG_LEVEL                debug, info, warn, error (default: info)
  LOG_FORMAT               text, json (default: text)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $SERVER_ADDR)")

	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, addr string) error {
	cfg, logger, eng, err := setup(flags)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	server, err := api.NewServer(cfg, eng, logger)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
