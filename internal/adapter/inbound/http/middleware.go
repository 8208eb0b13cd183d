package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stratuspay/payroll-mcp/internal/ctxkey"
	"github.com/stratuspay/payroll-mcp/internal/domain/tenant"
)

// requestIDContextKey is the type for the request ID context key.
type requestIDContextKey struct{}

// RequestIDKey is the context key for the request ID.
var RequestIDKey = requestIDContextKey{}

// LoggerKey is the context key for the enriched logger.
// Uses shared key type from ctxkey package to allow cross-package access
// without import cycles.
var LoggerKey = ctxkey.LoggerKey{}

// RequestIDMiddleware extracts or generates a request ID and enriches the
// logger. The request ID is stored in context using RequestIDKey; an enriched
// logger with a request_id field is stored using LoggerKey.
func RequestIDMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			enrichedLogger := logger.With("request_id", requestID)

			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			ctx = context.WithValue(ctx, LoggerKey, enrichedLogger)

			// Set response header for correlation
			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggerFromContext retrieves the enriched logger from context.
// Returns slog.Default() if no logger is in context.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// CredentialsMiddleware extracts tenant credentials from the request headers
// into the context. A request without credentials continues: only tools/call
// requires them, and the handler rejects those with 401 before dispatch.
// The logger is enriched with the tenant fingerprint, never the raw token.
func CredentialsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds, err := tenant.FromHeader(r.Header)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := tenant.NewContext(r.Context(), creds)
		if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
			ctx = context.WithValue(ctx, LoggerKey, logger.With("tenant", creds.Fingerprint()))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DNSRebindingProtection validates the Origin header against an allowlist.
// If allowedOrigins is empty, all requests with an Origin header are blocked
// (local-only mode). Requests without an Origin header are allowed
// (same-origin or non-browser).
func DNSRebindingProtection(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := allowed[origin]; !ok {
				http.Error(w, "Forbidden: origin not allowed", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
