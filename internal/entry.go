// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/jsoler/apunte/internal/api"
	"github.com/jsoler/apunte/internal/bot"
	"github.com/jsoler/apunte/internal/gateway"
	"github.com/jsoler/apunte/internal/index"
	"github.com/jsoler/apunte/internal/mcpserver"
	"github.com/jsoler/apunte/internal/notes"
	"github.com/jsoler/apunte/internal/prompt"
	"github.com/jsoler/apunte/internal/store"
)

// entityDirs are reserved per-entity subdirectories for future per-record
// artifacts (e.g. per-note analysis files).
var entityDirs = []string{"notes", "ideas", "journal", "refined", "projects", prompt.Dir}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	// Ensure the data directory and per-entity subdirectories exist.
	if err := os.MkdirAll(cfg.Data.Path, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	fs, err := store.NewFS(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	for _, d := range entityDirs {
		if err := fs.EnsureDir(d); err != nil {
			return fmt.Errorf("create entity dir: %w", err)
		}
	}

	manager := notes.NewManager(fs)

	// Open the SQLite search index; the bot degrades gracefully without it.
	var idx *index.DB
	if err := os.MkdirAll(filepath.Dir(cfg.Index.Path), 0o755); err == nil {
		idx, err = index.Open(cfg.Index.Path)
		if err != nil {
			logger.Warn("search index unavailable", slog.String("error", err.Error()))
		}
	}
	if idx != nil {
		defer idx.Close()
		if err := index.Sync(idx, manager, logger); err != nil {
			logger.Warn("initial index sync failed", slog.String("error", err.Error()))
		}
	}

	if app.mcpMode {
		logger.Info("Starting MCP server on stdio")
		srv := mcpserver.New(manager, indexOrNil(idx))
		return srv.ServeStdio()
	}

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_path", cfg.Data.Path),
		slog.String("index_path", cfg.Index.Path),
		slog.String("ollama_host", cfg.Ollama.Host),
		slog.String("ollama_model", cfg.Ollama.Model),
		slog.String("log_level", cfg.App.LogLevel.String()))

	prompts, err := prompt.NewProvider(fs)
	if err != nil {
		return fmt.Errorf("init prompts: %w", err)
	}

	gw, err := gateway.New(cfg.Ollama.Host, cfg.Ollama.Model, prompts, cfg.Ollama.RequestTimeout(), logger)
	if err != nil {
		return fmt.Errorf("init gateway: %w", err)
	}

	sessions := bot.NewSessions(cfg.Sessions.IdleTTL())
	router := bot.NewRouter(cfg.Telegram.AuthorizedUserID, sessions, manager, prompts, gw, indexOrNil(idx), logger)

	tg, err := bot.New(cfg.Telegram.Token, router, cfg.Telegram.PollTimeout, logger)
	if err != nil {
		return fmt.Errorf("init bot: %w", err)
	}

	// Build chi router for the ops API and health checks.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount the read-only API under /api.
	r.Mount("/api", api.NewRouter(manager, indexOrNil(idx), cfg.Auth.AuthEnabled(), cfg.Auth.Token))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)

	// Telegram long-poll loop.
	g.Go(func() error {
		return tg.Run(gCtx)
	})

	// Prompt-file watcher.
	g.Go(func() error {
		if err := prompt.Watch(gCtx, prompts, fs.Root(), logger); err != nil {
			logger.Warn("prompt watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Idle session eviction.
	g.Go(func() error {
		sessions.RunEviction(gCtx, cfg.Sessions.EvictionInterval(), logger)
		return nil
	})

	// Ops HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down...")
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Stopped successfully")
	return nil
}

// indexOrNil converts a possibly-nil *index.DB into the Index interface
// without producing a non-nil interface around a nil pointer.
func indexOrNil(db *index.DB) index.Index {
	if db == nil {
		return nil
	}
	return db
}
