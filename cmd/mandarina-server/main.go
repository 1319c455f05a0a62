package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/mandarina/internal/config"
	"github.com/existflow/mandarina/internal/db"
	"github.com/existflow/mandarina/internal/logger"
	"github.com/existflow/mandarina/server"
	"github.com/spf13/cobra"
)

var addr string

var rootCmd = &cobra.Command{
	Use:   "mandarina-server",
	Short: "Mandarina local calendar API",
	Long: `Serve the calendar and task API over HTTP, with Prometheus
metrics at /metrics. Settings come from the Mandarina config file.`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	store, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Error("Failed to open database", logger.F("error", err))
		return fmt.Errorf("failed to open database: %w", err)
	}

	srv := server.New(cfg, store)
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("Error closing database", logger.F("error", err))
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start(cfg.Server.Addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", logger.F("error", err))
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.F("error", err))
		return err
	}
	logger.Info("Server exited gracefully")
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
