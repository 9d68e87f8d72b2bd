package logger

import (
	"fmt"
	"os"
	"strings"

	"wallet_networks/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates and configures a zap logger based on the provided configuration.
// An unparsable level falls back to info and is reported on the returned logger.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	logLevel := zap.NewAtomicLevel()
	levelErr := logLevel.UnmarshalText([]byte(strings.ToLower(cfg.Level)))
	if levelErr != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	case "", "json":
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	default:
		return nil, fmt.Errorf("unsupported log encoding %q", cfg.Encoding)
	}

	var sink zapcore.WriteSyncer
	switch cfg.Output {
	case "", "stdout":
		sink = os.Stdout
	case "stderr":
		sink = os.Stderr
	default:
		return nil, fmt.Errorf("unsupported log output %q", cfg.Output)
	}

	logger := zap.New(zapcore.NewCore(
		encoder,
		zapcore.Lock(sink),
		logLevel,
	), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	if levelErr != nil {
		logger.Warn("Failed to parse log level, defaulting to info",
			zap.String("level", cfg.Level), zap.Error(levelErr))
	}
	return logger, nil
}
