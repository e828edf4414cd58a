package logger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New initializes a zap logger for the given environment.
// "local" gets a colored console logger, anything else JSON to stdout.
func New(env, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if env == "local" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.With(zap.String("env", env)), nil
}

// NewPgxTracer bridges pgx query tracing onto the given zap logger.
// Returns nil unless the logger has debug enabled, so production pools
// don't pay for per-query logging.
func NewPgxTracer(log *zap.Logger) *tracelog.TraceLog {
	if !log.Core().Enabled(zapcore.DebugLevel) {
		return nil
	}

	pgxLog := log.Named("pgx").WithOptions(zap.AddCallerSkip(1))
	return &tracelog.TraceLog{
		Logger: tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
			fields := make([]zap.Field, 0, len(data))
			for k, v := range data {
				fields = append(fields, zap.Any(k, v))
			}
			pgxLog.Log(pgxLevel(level), msg, fields...)
		}),
		LogLevel: tracelog.LogLevelDebug,
	}
}

func pgxLevel(level tracelog.LogLevel) zapcore.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return zapcore.DebugLevel
	case tracelog.LogLevelInfo:
		return zapcore.InfoLevel
	case tracelog.LogLevelWarn:
		return zapcore.WarnLevel
	case tracelog.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.ErrorLevel
	}
}
