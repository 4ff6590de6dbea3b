// Package logging builds the CLI's structured logger and carries it through
// context.Context from the dispatcher down to the gateway.
package logging

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation  = "operation"
	KeyCollection = "collection"
	KeyToken      = "token"
	KeyID         = "id"
	KeyDuration   = "duration"
	KeyError      = "error"
)

type contextKey struct{}

// New returns a text logger writing to w. Debug enables debug records;
// otherwise only warnings and errors are emitted.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return Discard()
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Collection returns a slog attribute for the collection name.
func Collection(name string) slog.Attr {
	return slog.String(KeyCollection, name)
}

// Token returns a slog attribute for a user-supplied resolution token.
func Token(token string) slog.Attr {
	return slog.String(KeyToken, token)
}

// ID returns a slog attribute for a server identifier.
func ID(id string) slog.Attr {
	return slog.String(KeyID, id)
}

// Since returns a slog attribute with the time elapsed since start.
func Since(start time.Time) slog.Attr {
	return slog.Duration(KeyDuration, time.Since(start))
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
