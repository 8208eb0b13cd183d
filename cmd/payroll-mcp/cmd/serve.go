package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/stratuspay/payroll-mcp/internal/adapter/inbound/http"
	"github.com/stratuspay/payroll-mcp/internal/adapter/inbound/stdio"
	"github.com/stratuspay/payroll-mcp/internal/adapter/outbound/stratuspay"
	"github.com/stratuspay/payroll-mcp/internal/config"
	"github.com/stratuspay/payroll-mcp/internal/domain/render"
	"github.com/stratuspay/payroll-mcp/internal/domain/tenant"
	"github.com/stratuspay/payroll-mcp/internal/port/outbound"
	"github.com/stratuspay/payroll-mcp/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the payroll MCP server.

The server can operate in two modes:

1. HTTP mode (default): Streamable HTTP on server.http_addr.
   Each request must carry the tenant's access token in the
   X-StratusPay-Access-Token header.

2. Stdio mode (--stdio): newline-delimited JSON-RPC on stdin/stdout.
   The single tenant's token comes from STRATUSPAY_ACCESS_TOKEN.

Examples:
  # Start the HTTP server with config file settings
  payroll-mcp serve

  # Serve a single tenant over stdio (for local MCP clients)
  STRATUSPAY_ACCESS_TOKEN=... payroll-mcp serve --stdio

  # Start with a specific config file
  payroll-mcp --config /path/to/config.yaml serve`,
	RunE: runServe,
}

var (
	stdioMode bool
	tlsCert   string
	tlsKey    string
)

func init() {
	serveCmd.Flags().BoolVar(&stdioMode, "stdio", false, "Serve MCP over stdin/stdout instead of HTTP")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "TLS certificate file (HTTP mode)")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "TLS key file (HTTP mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// A local .env is a convenience for stdio mode; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Logger goes to stderr: stdout is reserved for the MCP stream in stdio mode.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Info("loaded config", "file", configFile)
	}

	// stop() restores default signal handling so a second Ctrl+C does a hard kill.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()

	return run(ctx, cfg, logger)
}

// run wires all components together and starts the selected transport.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	registry := service.NewRegistry()
	renderer := render.New(render.Format(cfg.Response.Format), cfg.Response.MaxSize)

	// One shared metrics set: the transport records request totals, the
	// service records tool call outcomes, and every per-request gateway
	// records upstream calls.
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := http.NewMetrics(promRegistry)

	baseURL := cfg.API.BaseURL
	if baseURL == "" {
		baseURL = stratuspay.DefaultBaseURL
	}
	gatewayCfg := stratuspay.Config{
		BaseURL:    baseURL,
		APIVersion: cfg.API.Version,
		Timeout:    cfg.HTTPTimeout(),
	}
	factory := func(creds tenant.Credentials) outbound.Gateway {
		return stratuspay.New(gatewayCfg, creds,
			stratuspay.WithLogger(logger),
			stratuspay.WithRequestCounter(metrics.UpstreamRequests),
		)
	}

	svc := service.NewMCPService(registry, factory, renderer,
		service.WithLogger(logger),
		service.WithServerInfo("payroll-mcp", Version),
		service.WithPaging(cfg.Paging.DefaultPer, cfg.Paging.MaxPer),
		service.WithToolCallCounter(metrics.ToolCalls),
	)

	logger.Info("payroll-mcp starting",
		"version", Version,
		"tools", registry.Len(),
		"api_base_url", baseURL,
		"response_format", cfg.Response.Format,
	)

	if stdioMode {
		transport := stdio.NewTransport(svc, stdio.WithLogger(logger))
		logger.Info("transport mode: stdio")
		return transport.Start(ctx)
	}

	opts := []http.Option{
		http.WithAddr(cfg.Server.HTTPAddr),
		http.WithLogger(logger),
		http.WithAllowedOrigins(cfg.Server.AllowedOrigins),
		http.WithMetrics(promRegistry, metrics),
		http.WithHealthChecker(http.NewHealthChecker(registry.Len(), Version)),
	}
	if tlsCert != "" && tlsKey != "" {
		opts = append(opts, http.WithTLS(tlsCert, tlsKey))
	}

	transport := http.NewTransport(svc, opts...)
	logger.Info("transport mode: HTTP", "addr", cfg.Server.HTTPAddr)
	return transport.Start(ctx)
}

// parseLogLevel converts a string log level to slog.Level.
// Returns slog.LevelInfo for unrecognized values.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
