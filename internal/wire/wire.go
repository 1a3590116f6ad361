//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/wire"

	"github.com/sevigo/review-bridge/internal/app"
	"github.com/sevigo/review-bridge/internal/config"
	"github.com/sevigo/review-bridge/internal/core"
	"github.com/sevigo/review-bridge/internal/llm"
	"github.com/sevigo/review-bridge/internal/logger"
	"github.com/sevigo/review-bridge/internal/review"
	"github.com/sevigo/review-bridge/internal/server"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		server.NewServer,
		config.LoadConfig,
		llm.NewPromptManager,
		llm.NewProvider,
		review.NewService,
		wire.Bind(new(core.ReviewGateway), new(*review.Service)),
		wire.Bind(new(app.Runner), new(*server.Server)),
		provideLoggerConfig,
		provideLogWriter,
		provideSlogLogger,
	)
	return &app.App{}, nil, nil
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
