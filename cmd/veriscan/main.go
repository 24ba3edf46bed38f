// Command veriscan starts the Veriscan API server.
// Usage: veriscan [-config path/to/config.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calder-r/veriscan/internal/app"
	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/server"
	"github.com/calder-r/veriscan/internal/webclient"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	logger := logging.NewStdoutLogger("Veriscan")

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		logger.Error("loading config", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}

	webclient.RegisterDefaultBackends()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("starting application", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
	defer application.Close()

	srv := server.NewServer(server.Config{ListenAddr: cfg.ListenAddr, Logger: logger}, application)
	httpServer := srv.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", logging.Field{Key: "addr", Value: cfg.ListenAddr})
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", logging.Field{Key: "error", Value: err.Error()})
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", logging.Field{Key: "error", Value: err.Error()})
			os.Exit(1)
		}
	}
}
