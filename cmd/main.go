package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fecworks/fecreport/internal/config"
	"github.com/fecworks/fecreport/internal/httpapi"
	"github.com/fecworks/fecreport/internal/mapping"
	"github.com/fecworks/fecreport/internal/report"
	"github.com/fecworks/fecreport/internal/service/session"
	"github.com/fecworks/fecreport/internal/storage/memory"
	pgstore "github.com/fecworks/fecreport/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	engine := report.NewEngine(mapping.NewResolver(mapping.Default()))

	var svc session.Service
	var opts []httpapi.Option
	var closeFn func()

	opts = append(opts, httpapi.WithMaxUploadBytes(cfg.MaxUploadBytes))
	if cfg.DatabaseURL != "" {
		// Use Postgres session store when DATABASE_URL is provided
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = func() { pg.Close() }
		svc = session.New(pg, pg, engine)
		opts = append(opts, httpapi.WithReadyChecker(pg))
		logger.Info("storage backend: postgres")
	} else {
		// Default to in-memory session store
		store := memory.New()
		svc = session.New(store, store, engine)
		logger.Info("storage backend: memory")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.New(svc, logger, opts...).Handler(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fec report service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)
	if strings.ToLower(strings.TrimSpace(cfg.LogFormat)) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
