// Package logger provides structured logging built on zap. Loggers travel
// through context.Context so request-scoped fields (request id, actor id)
// follow every log line emitted while handling that request.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment configures a verbose, human-readable logger.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment configures a JSON logger at info level.
	ProductionEnvironment = "production"
)

// defaultLogger is the package-level logger instance used when no logger is found in context.
var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Setup initializes the default logger for the given environment.
func Setup(environment string) {
	if environment == ProductionEnvironment {
		defaultLogger, _ = zap.NewProduction()

		return
	}

	defaultLogger, _ = zap.NewDevelopment()
}

// key is a custom type used as a context key for storing and retrieving logger instances.
type key struct{}

// Get retrieves the logger carried by ctx, falling back to the default logger.
func Get(ctx context.Context) *zap.Logger {
	if logger, _ := ctx.Value(key{}).(*zap.Logger); logger != nil {
		return logger
	}

	return defaultLogger
}

// WithLogger returns a context carrying the provided logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// WithFields returns a context whose logger includes the given fields on
// every subsequent log line.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// Debug logs a message at debug level with the given fields.
func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

// Info logs a message at info level with the given fields.
func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

// Warn logs a message at warn level with the given fields.
func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

// Error logs a message at error level with the given fields.
func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

// Fatal logs a message at fatal level with the given fields.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
