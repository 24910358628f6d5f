// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
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

	"github.com/starford/eotext/internal/api"
	"github.com/starford/eotext/internal/mcpserver"
	"github.com/starford/eotext/internal/sse"
	"github.com/starford/eotext/internal/translator"
	"github.com/starford/eotext/internal/vocabstore"
	"github.com/starford/eotext/internal/watcher"
)

func newApplication(opts []Option, defaultLog io.Writer) (*application, error) {
	app := &application{version: "dev", logOutput: defaultLog}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func (a *application) newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// openService opens the user vocabulary store and builds the translator
// service on top of it. The returned store must be closed by the caller.
func (a *application) openService(ctx context.Context, logger *slog.Logger, onEvent translator.EventCallback) (*translator.Service, *vocabstore.DB, error) {
	cfg := a.config

	if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create database dir: %w", err)
	}
	db, err := vocabstore.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init vocabulary store: %w", err)
	}

	opts := []translator.Option{
		translator.WithStore(db),
		translator.WithMatchMode(cfg.Conversion.Mode()),
		translator.WithCapsAwareSuffix(cfg.Conversion.CapsAwareSuffix),
		translator.WithComposeMarks(cfg.Conversion.ComposeMarks),
		translator.WithLogger(logger),
	}
	if cfg.Vocabulary.Path != "" {
		opts = append(opts, translator.WithVocabularyFile(cfg.Vocabulary.Path))
	}
	if onEvent != nil {
		opts = append(opts, translator.WithEventCallback(onEvent))
	}

	svc, err := translator.NewService(ctx, opts...)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init translator: %w", err)
	}
	return svc, db, nil
}

// watchVocabulary reloads svc whenever the vocabulary file changes. It
// returns when ctx is cancelled.
func (a *application) watchVocabulary(ctx context.Context, svc *translator.Service, logger *slog.Logger) error {
	cfg := a.config.Vocabulary
	return watcher.Watch(ctx, cfg.Path, cfg.Debounce, logger, func(path string) {
		if err := svc.Reload(ctx); err != nil {
			logger.Warn("vocabulary reload failed",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	})
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts, os.Stdout)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := app.newLogger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("vocabulary_path", cfg.Vocabulary.Path),
		slog.String("match_mode", cfg.Conversion.MatchMode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	broker := sse.NewBroker(2*time.Second, sse.WithHeartbeat(30*time.Second))
	defer broker.Close()

	svc, db, err := app.openService(ctx, logger, broker.PublishVocabularyEvent)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("Vocabulary loaded",
		slog.Int("entries", len(svc.Words(ctx))),
		slog.String("version", svc.Version()))

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
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
	r.Get("/health/ready", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := db.Count(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Reload the vocabulary when its file changes.
	if cfg.Vocabulary.Watch {
		g.Go(func() error {
			if err := app.watchVocabulary(gCtx, svc, logger); err != nil {
				logger.Error("vocabulary watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
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
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// SSE streams end when the broker closes their channels.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group context so that background workers stop
// together with the HTTP server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools on stdin/stdout until stdin is closed. Logs go
// to stderr unless WithLogOutput says otherwise, since stdout carries the
// protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts, os.Stderr)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.newLogger()

	svc, db, err := app.openService(ctx, logger, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Vocabulary.Watch {
		go func() {
			if err := app.watchVocabulary(ctx, svc, logger); err != nil {
				logger.Error("vocabulary watcher stopped", slog.String("error", err.Error()))
			}
		}()
	}

	logger.Info("MCP server starting", slog.String("version", app.version))
	if err := mcpserver.New(svc, app.version).ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
