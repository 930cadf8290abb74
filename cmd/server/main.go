package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/metro-go/api/handlers"
	"github.com/jusunglee/metro-go/internal/config"
	"github.com/jusunglee/metro-go/pkg/metro"
)

func main() {
	var (
		configFile = flag.String("config", "", "YAML config file")
		host       = flag.String("host", "", "Listen host (overrides config)")
		port       = flag.Int("port", 0, "Server port (overrides config)")
		networks   = flag.String("network", "", "Comma-separated network files or URLs (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *networks != "" {
		cfg.Network.Sources = strings.Split(*networks, ",")
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The network is loaded once here; a bad network aborts startup
	client, err := metro.NewLocal(ctx, metro.Config{
		Sources:      cfg.Network.Sources,
		FetchTimeout: cfg.Network.FetchTimeout,
	}, logger)
	if err != nil {
		logger.Error("Failed to load network", "error", err)
		os.Exit(1)
	}

	r := mux.NewRouter()
	h := handlers.NewHandler(client, logger)
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handlers.Wrap(r, logger, cfg.Server.CORSMaxAge),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
