package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-reversi/internal/multiplayer"
	transporthttp "github.com/vovakirdan/tui-reversi/internal/transport/http"
)

const gracefulShutdownTimeout = 5 * time.Second

var (
	flagHTTPAddr  string
	flagRateLimit int
	flagAccessLog bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API",
	Long: `Serve hosted matches over a JSON API.

Endpoints (under /api/v1):
  POST   /matches                 - Create a match
  POST   /matches/import          - Create a match from a save file body
  GET    /matches/:id             - Get a match
  DELETE /matches/:id             - Delete a match
  POST   /matches/:id/moves       - Place a disk
  PUT    /matches/:id/players     - Switch a side between manual and computer
  GET    /matches/:id/wait        - Long-poll until the version changes
  GET    /matches/:id/save        - Export the match as a save file

Computer sides move after computer.delay from the config. Finished
matches are recorded in the results database.

Examples:
  reversi api
  reversi api --http :9090 --access-log`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (default from config)")
	apiCmd.Flags().IntVar(&flagRateLimit, "rate-limit", transporthttp.DefaultConfig().RateLimit, "Requests per second per client IP")
	apiCmd.Flags().BoolVar(&flagAccessLog, "access-log", false, "Log every request to stdout")
}

func runAPI(_ *cobra.Command, _ []string) {
	apiLogger := logger.WithPrefix("api")

	store := openStore()
	defer store.Close()

	coord, err := multiplayer.NewCoordinator(multiplayer.CoordinatorConfig{
		ComputerDelay: appConfig.Computer.Delay,
		Strategy:      appConfig.Computer.Strategy,
		Seed:          flagSeed,
	}, apiLogger)
	if err != nil {
		fatalf("creating coordinator: %v", err)
	}
	defer coord.Close()
	coord.SetResultSaver(store)

	cfg := transporthttp.DefaultConfig()
	cfg.RateLimit = flagRateLimit
	cfg.Logger = apiLogger
	if flagAccessLog {
		cfg.AccessLog = os.Stdout
	}
	app := transporthttp.NewFiberApp(coord, cfg)

	addr := firstNonEmpty(flagHTTPAddr, appConfig.Server.HTTPAddr)
	go func() {
		apiLogger.Info("starting HTTP server", "address", addr, "rate_limit", cfg.RateLimit)
		if err := app.Listen(addr); err != nil {
			apiLogger.Error("listen error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	apiLogger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		apiLogger.Warn("server forced to shutdown", "error", err)
	}
}
