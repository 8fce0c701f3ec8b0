package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NewRunID returns a fresh run identifier
func NewRunID() string {
	return uuid.NewString()
}

// EnsureTraceID returns ctx carrying a run ID, adding a new one if absent.
// Every log line of a run shares this ID.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, NewRunID())
}

// WithComponent tags logger output with the tool or package name
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With(slog.String("component", component))
}
