package http

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stratuspay/payroll-mcp/internal/port/inbound"
	"github.com/stratuspay/payroll-mcp/internal/service"
)

// Transport is the inbound adapter serving MCP over Streamable HTTP.
type Transport struct {
	svc            *service.MCPService
	server         *http.Server
	addr           string
	allowedOrigins []string
	certFile       string
	keyFile        string
	logger         *slog.Logger
	metrics        *Metrics
	promRegistry   *prometheus.Registry
	healthChecker  *HealthChecker
}

// Option is a functional option for configuring the Transport.
type Option func(*Transport)

// WithAddr sets the listen address for the HTTP server.
// Default is "127.0.0.1:8080" (localhost only).
func WithAddr(addr string) Option {
	return func(t *Transport) {
		t.addr = addr
	}
}

// WithTLS enables TLS with the provided certificate and key files.
// If not set, the server runs without TLS (plain HTTP).
func WithTLS(certFile, keyFile string) Option {
	return func(t *Transport) {
		t.certFile = certFile
		t.keyFile = keyFile
	}
}

// WithAllowedOrigins sets the allowed origins for DNS rebinding protection.
// If empty, all requests with an Origin header are blocked (local-only mode).
func WithAllowedOrigins(origins []string) Option {
	return func(t *Transport) {
		t.allowedOrigins = origins
	}
}

// WithLogger sets the logger for the HTTP transport.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// WithMetrics supplies an externally built metrics set and registry, letting
// the caller share counters with other components (the upstream gateway
// records on the same set). Without it the transport builds its own.
func WithMetrics(reg *prometheus.Registry, m *Metrics) Option {
	return func(t *Transport) {
		t.promRegistry = reg
		t.metrics = m
	}
}

// WithHealthChecker sets the health checker for the /health endpoint.
func WithHealthChecker(hc *HealthChecker) Option {
	return func(t *Transport) {
		t.healthChecker = hc
	}
}

// NewTransport creates an HTTP transport adapter wrapping the given MCP service.
func NewTransport(svc *service.MCPService, opts ...Option) *Transport {
	t := &Transport{
		svc:            svc,
		addr:           "127.0.0.1:8080",
		allowedOrigins: []string{},
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Start begins accepting HTTP connections and processing MCP messages.
// It blocks until the context is cancelled or an error occurs.
func (t *Transport) Start(ctx context.Context) error {
	if t.metrics == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		t.promRegistry = reg
		t.metrics = NewMetrics(reg)
	}

	// Middleware chain, outermost first:
	// 1. MetricsMiddleware - records duration and status for the full request
	// 2. RequestIDMiddleware - request ID and enriched logger
	// 3. DNSRebindingProtection - Origin allowlist
	// 4. CredentialsMiddleware - tenant credentials into context
	// 5. mcpHandler - JSON-RPC handling
	handler := CredentialsMiddleware(mcpHandler(t.svc))
	handler = DNSRebindingProtection(t.allowedOrigins)(handler)
	handler = RequestIDMiddleware(t.logger)(handler)
	handler = MetricsMiddleware(t.metrics)(handler)

	mux := http.NewServeMux()
	if t.healthChecker != nil {
		mux.Handle("/health", t.healthChecker.Handler())
	} else {
		mux.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
	}
	mux.Handle("/metrics", promhttp.HandlerFor(t.promRegistry, promhttp.HandlerOpts{
		Registry: t.promRegistry,
	}))
	// Favicon handler to prevent browser 500 errors
	mux.Handle("/favicon.ico", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.Handle("/mcp", handler)
	mux.Handle("/mcp/", handler)

	t.server = &http.Server{
		Addr:    t.addr,
		Handler: mux,
	}

	if t.certFile != "" && t.keyFile != "" {
		t.server.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	errCh := make(chan error, 1)

	go func() {
		var err error
		if t.certFile != "" && t.keyFile != "" {
			t.logger.Info("starting HTTPS server", "addr", t.addr)
			err = t.server.ListenAndServeTLS(t.certFile, t.keyFile)
		} else {
			t.logger.Info("starting HTTP server", "addr", t.addr)
			err = t.server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		t.logger.Info("context cancelled, shutting down HTTP server")
		return t.shutdown()
	case err := <-errCh:
		return err
	}
}

// shutdown performs graceful shutdown of the HTTP server.
func (t *Transport) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := t.server.Shutdown(ctx); err != nil {
		t.logger.Error("error during server shutdown", "error", err)
		return err
	}

	t.logger.Info("HTTP server shutdown complete")
	return nil
}

// Close gracefully shuts down the transport.
func (t *Transport) Close() error {
	if t.server == nil {
		return nil
	}
	return t.shutdown()
}

// Compile-time check that Transport implements the inbound port.
var _ inbound.Transport = (*Transport)(nil)
