// Package app runs the review gateway process.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/review-bridge/internal/config"
)

// Runner is the HTTP server lifecycle the app drives.
type Runner interface {
	Start() error
	Stop(ctx context.Context) error
}

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server Runner
	logger *slog.Logger
}

// NewApp assembles the application from its wired components.
func NewApp(cfg *config.Config, server Runner, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		server: server,
		logger: logger,
	}
}

// Run serves until ctx is cancelled or the server fails, then shuts down
// gracefully. In-flight reviews are allowed to finish.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting review gateway",
		"port", a.cfg.Server.Port,
		"provider", a.cfg.AI.Provider,
		"model", a.cfg.AI.GeneratorModel,
		"cors_origin", a.cfg.Server.CORSOrigin,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.Start)
	g.Go(func() error {
		<-gctx.Done()
		if err := a.server.Stop(context.WithoutCancel(ctx)); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("review gateway stopped")
	return nil
}
