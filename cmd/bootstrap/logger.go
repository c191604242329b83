package bootstrap

import (
	"log/slog"

	"ticket-allocator/internal/handler/middleware"
	"ticket-allocator/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		provideLogConfig,
		middleware.NewLogger,
		NewSlogLogger,
	),
)

func provideLogConfig(cfg config.Config) config.LogConfig {
	return cfg.Log
}

func NewSlogLogger(l *middleware.Logger) *slog.Logger {
	return l.GetSlogLogger()
}
