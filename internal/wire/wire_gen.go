// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sevigo/review-bridge/internal/app"
	"github.com/sevigo/review-bridge/internal/config"
	"github.com/sevigo/review-bridge/internal/llm"
	"github.com/sevigo/review-bridge/internal/logger"
	"github.com/sevigo/review-bridge/internal/review"
	"github.com/sevigo/review-bridge/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerConfig := provideLoggerConfig(cfg)
	writer, cleanup := provideLogWriter(cfg)
	slogLogger := provideSlogLogger(loggerConfig, writer)

	promptManager, err := llm.NewPromptManager()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg, promptManager, slogLogger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create review provider: %w", err)
	}

	service := review.NewService(provider, slogLogger)
	srv := server.NewServer(cfg, service, slogLogger)
	application := app.NewApp(cfg, srv, slogLogger)

	return application, cleanup, nil
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) (io.Writer, func()) {
	w := logger.Writer(cfg.Logging.Output)
	return w, func() {
		if f, ok := w.(*os.File); ok && f != os.Stdout && f != os.Stderr {
			_ = f.Close()
		}
	}
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}
