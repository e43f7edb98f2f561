// Package context carries per-request state between the HTTP layer and the usecases:
// the request id, a logger tagged with it and, once authenticated, the session.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// ContextKey is the type of every key this package stores.
type ContextKey string

const (
	keyRequest ContextKey = "request"

	// HeaderXRequestID is read from clients and echoed on every response.
	HeaderXRequestID = "X-Request-Id"
)

type requestScope struct {
	id     string
	logger *slog.Logger
}

// WithRequest binds a request id and its logger to ctx.
func WithRequest(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyRequest, &requestScope{id: requestID, logger: logger})
}

// WithLogger replaces the request logger, keeping the request id.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return WithRequest(ctx, RequestIDFrom(ctx), logger)
}

func scopeOf(ctx context.Context) *requestScope {
	scope, _ := ctx.Value(keyRequest).(*requestScope)

	return scope
}

// RequestIDFrom returns the request id bound to ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	if scope := scopeOf(ctx); scope != nil {
		return scope.id
	}

	return ""
}

// RequestID returns the id of the request being served by c.
func RequestID(c echo.Context) string {
	return RequestIDFrom(c.Request().Context())
}

// LoggerFrom returns the request logger bound to ctx, or nil.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if scope := scopeOf(ctx); scope != nil {
		return scope.logger
	}

	return nil
}

// GetLoggerOrDefault is LoggerFrom with a fallback for code running outside a request.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := LoggerFrom(ctx); logger != nil {
		return logger
	}

	return fallback
}
