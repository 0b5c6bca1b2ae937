package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/tuannm99/novarel"
	"github.com/tuannm99/novarel/internal"
	"github.com/tuannm99/novarel/server/httpapi"
	"github.com/tuannm99/novarel/server/relwire"
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	cfgPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// nil means one store per TCP connection
	var shared *novarel.Database
	if cfg.Session.Shared {
		shared = novarel.NewDatabase()
	}

	errCh := make(chan error, 2)
	running := 1

	go func() {
		errCh <- relwire.Run(ctx, relwire.ServerConfig{Addr: cfg.Server.Addr, Shared: shared})
	}()

	if cfg.Server.HTTPAddr != "" {
		httpDB := shared
		if httpDB == nil {
			httpDB = novarel.NewDatabase()
		}
		running++
		go func() {
			errCh <- httpapi.Run(ctx, httpDB, httpapi.Config{
				Addr:    cfg.Server.HTTPAddr,
				AppName: cfg.AppName,
			})
		}()
	}

	slog.Info("novarel started",
		"app", cfg.AppName,
		"addr", cfg.Server.Addr,
		"http_addr", cfg.Server.HTTPAddr,
		"shared", cfg.Session.Shared,
	)

	var firstErr error
	for i := 0; i < running; i++ {
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) && firstErr == nil {
			firstErr = err
			// bring the other listener down too
			stop()
		}
	}
	if firstErr != nil {
		slog.Error("server stopped", "err", firstErr)
		os.Exit(1)
	}
	slog.Info("shutting down")
}
