package logger

import (
	"context"
	"log/slog"

	"wallet_networks/internal/app/port"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// slogAdapter implements port.Logger on top of a slog.Logger backed by zap.
type slogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter bridges a zap logger into the key-value port.Logger interface.
func NewSlogAdapter(zl *zap.Logger) port.Logger {
	return &slogAdapter{logger: slog.New(zapslog.NewHandler(zl.Core()))}
}

// SetDefault routes the process-wide slog default through zl.
func SetDefault(zl *zap.Logger) {
	slog.SetDefault(slog.New(zapslog.NewHandler(zl.Core())))
}

func (a *slogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	if a.logger.Enabled(context.Background(), slog.LevelDebug) {
		a.logger.Debug(msg, args...)
	}
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}
