package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/farellandr/planner/config"
	"github.com/farellandr/planner/internal/planner"
	"github.com/farellandr/planner/internal/store"
)

// App owns the store handle and the services built on it.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   *store.Store
	Planner *planner.Service
}

func Start(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = NewLogger(cfg, os.Stderr)
	}

	st, err := store.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Debug("store opened", "driver", cfg.DBDriver)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   st,
		Planner: planner.NewService(st, logger),
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}

// Run starts the app, hands it to fn and always closes the store afterwards.
func Run(cfg *config.Config, logger *slog.Logger, fn func(*App) error) (err error) {
	a, err := Start(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()
	return fn(a)
}

// NewLogger uses JSON output in production and text otherwise.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
