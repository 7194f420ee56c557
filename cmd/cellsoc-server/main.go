// Command cellsoc-server steps a simulation in the background and streams
// every generation to WebSocket clients.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cell-society/internal/config"
	"cell-society/internal/factory"
	"cell-society/internal/logging"
	"cell-society/internal/stream"
)

func main() {
	var (
		addr, configPath, variant, logLevel string
		sps, limit                          int
	)
	fs := flag.NewFlagSet("cellsoc-server", flag.ExitOnError)
	err := config.Resolve(fs, os.Args[1:], []config.Option{
		{Flag: "addr", Env: "CELLSOC_ADDR", Default: ":8080", Usage: "listen address", Set: config.String(&addr)},
		{Flag: "config", Env: "CELLSOC_CONFIG", Usage: "simulation description (JSON)", Set: config.String(&configPath)},
		{Flag: "variant", Env: "CELLSOC_VARIANT", Usage: "variant overriding the description", Set: config.String(&variant)},
		{Flag: "sps", Env: "CELLSOC_SPS", Default: "10", Usage: "steps per second", Set: config.Int(&sps)},
		{Flag: "limit", Env: "CELLSOC_LIMIT", Default: "0", Usage: "stop stepping at this generation (0 = never)", Set: config.Int(&limit)},
		{Flag: "log-level", Env: "CELLSOC_LOG_LEVEL", Default: "info", Usage: "debug, info, warn or error", Set: config.String(&logLevel)},
	})
	if err != nil {
		slog.Error("parse flags", "error", err)
		os.Exit(2)
	}
	logger := logging.Setup(os.Stderr, logLevel)

	cfg := config.DefaultConfig()
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			logger.Error("load config", "error", err)
			os.Exit(1)
		}
	}
	if variant != "" {
		cfg.Variant = variant
	}
	g, err := factory.Build(cfg, factory.WithLogger(logger))
	if err != nil {
		logger.Error("build grid", "error", err)
		os.Exit(1)
	}

	srv := stream.NewServer(g, sps, limit)
	defer srv.Close()
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("simulation stopped", "generation", g.Generation(), "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("cellsoc-server listening", "addr", addr, "variant", cfg.Variant, "sps", sps)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
}
