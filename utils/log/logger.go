package log

import (
	"context"
	"os"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

var logger *zap.Logger

func init() {
	Init(os.Getenv("DEBUG") == "true")
}

// Init swaps the process logger. Called once from main after config is loaded.
func Init(debug bool) {
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		logger = zap.NewNop()
	}
}

// Set replaces the process logger, mostly for tests using zaptest/observer.
func Set(l *zap.Logger) {
	logger = l
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func WithCtx(ctx context.Context) *zap.Logger {
	fields := []zap.Field{}

	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		fields = append(fields, zap.String("request_id", v))
	}

	return logger.With(fields...)
}

func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}

func Sync() {
	_ = logger.Sync()
}
