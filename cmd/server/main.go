package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"games-api/internal/config"
	"games-api/internal/logging"
	"games-api/internal/model"
	"games-api/internal/storage"
	"games-api/pkg/fsutils"

	"github.com/spf13/pflag"
)

const (
	writeTimeout = 15 * time.Second
	// handlerTimeout must stay below writeTimeout so the 504 can still be written.
	handlerTimeout = writeTimeout - 5*time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "games-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Get working directory to construct absolute paths
	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	fs := config.NewFlagSet("games-api")
	cfg, err := config.Load(fs, os.Args[1:], projectRoot)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, closer := logging.New(cfg.Log)
	defer closer.Close()
	slog.SetDefault(logger)

	seed, err := loadSeed(cfg, logger)
	if err != nil {
		return err
	}
	store := storage.NewMemoryStore(seed)
	logger.Info("Game store seeded", "games", store.Len(), "seed_file", cfg.SeedFile)

	if !fsutils.DirExists(cfg.StaticDir) {
		logger.Warn("Static directory not found, docs page will return 404", "path", cfg.StaticDir)
	}

	app := &application{
		logger:      logger,
		store:       store,
		staticDir:   cfg.StaticDir,
		corsOrigins: cfg.CORS.AllowOrigins,
	}

	srv := newServer(cfg.Addr(), app.routes())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// loadSeed returns the configured seed file's games, or the built-in library
// when no file is set.
func loadSeed(cfg *config.Config, logger *slog.Logger) ([]model.Game, error) {
	if cfg.SeedFile == "" {
		return storage.DefaultSeed(), nil
	}
	games, err := storage.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		logger.Error("Failed to load seed file", "path", cfg.SeedFile, "error", err)
		return nil, err
	}
	return games, nil
}
