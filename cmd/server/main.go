package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"sheetfeed/internal/config"
	"sheetfeed/internal/ingest"
	"sheetfeed/internal/logging"
	"sheetfeed/internal/schema"
	"sheetfeed/internal/sheet"
	"sheetfeed/internal/store"
	"sheetfeed/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"sheet_url", cfg.Sheet.URL,
		"refresh_interval", cfg.Sheet.RefreshInterval,
		"strict_mode", cfg.Sheet.StrictMode,
	)

	ctx := context.Background()

	// The database is optional: without it the service serves the cached
	// in-memory result only.
	var st *store.Store
	if cfg.Database.URL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		st = store.New(pool)
		if err := st.EnsureSchema(ctx); err != nil {
			slog.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		slog.Info("connected to database")
	} else {
		slog.Info("no database configured, serving from memory")
	}

	processor := sheet.NewProcessor(sheet.Config{
		SheetURL: cfg.Sheet.URL,
		Fields:   schema.TimelineFields(),
		Validation: sheet.ValidationOptions{
			StrictMode:         cfg.Sheet.StrictMode,
			LogMissingOptional: cfg.Sheet.LogMissingOptional,
			ValidateURLs:       cfg.Sheet.ValidateURLs,
			ValidateYears:      cfg.Sheet.ValidateYears,
		},
		Debug: cfg.Sheet.Debug,
	}, sheet.NewHTTPFetcher(cfg.Sheet.FetchTimeout))

	// nil interface juggling: a typed nil *store.Store must not end up in
	// the service's interface field.
	var service *ingest.Service
	var reader web.EntryReader
	if st != nil {
		service = ingest.NewService(processor, st)
		reader = st
	} else {
		service = ingest.NewService(processor, nil)
	}

	server := web.NewServer(service, reader)

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go service.StartRefreshScheduler(jobCtx, cfg.Sheet.RefreshInterval)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr(), cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
