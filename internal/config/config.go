// Package config provides the configuration schema for the payroll MCP server.
//
// Configuration is deliberately small: the server is stateless and holds no
// tenant credentials, so there is nothing to configure beyond the listener,
// the upstream API endpoint, response rendering, and paging limits. Access
// tokens arrive per-request (HTTP headers) or from the environment (stdio)
// and never appear here.
package config

import (
	"time"

	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
	"github.com/stratuspay/payroll-mcp/internal/domain/render"
)

// Config is the top-level configuration for the payroll MCP server.
type Config struct {
	// Server configures the HTTP server listener.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// API configures the upstream StratusPay REST API.
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Response configures tool result rendering.
	Response ResponseConfig `yaml:"response" mapstructure:"response"`

	// Paging configures list tool pagination limits.
	Paging PagingConfig `yaml:"paging" mapstructure:"paging"`
}

// ServerConfig configures the HTTP server.
// TLS can be terminated by a reverse proxy or enabled via the serve flags.
type ServerConfig struct {
	// HTTPAddr is the address to listen on (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Defaults to "127.0.0.1:8080" (localhost only) if empty.
	HTTPAddr string `yaml:"http_addr" mapstructure:"http_addr" validate:"omitempty,hostname_port"`

	// LogLevel sets the minimum log level.
	// Valid values: "debug", "info", "warn", "error".
	// Defaults to "info" if empty.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// AllowedOrigins lists Origin header values permitted on browser requests.
	// Requests with an Origin not in this list are rejected (DNS rebinding
	// protection). Empty means non-browser clients only.
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// APIConfig configures the upstream StratusPay REST API.
type APIConfig struct {
	// BaseURL is the API root (e.g., "https://api.stratuspay.com/v1").
	// Defaults to the production endpoint if empty.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Version is the default X-StratusPay-API-Version header value.
	// Per-request header values override it.
	Version string `yaml:"version" mapstructure:"version"`

	// HTTPTimeout bounds each upstream call (e.g., "30s", "1m").
	// Defaults to "30s" if not specified.
	HTTPTimeout string `yaml:"http_timeout" mapstructure:"http_timeout" validate:"omitempty"`
}

// ResponseConfig configures how tool results are rendered.
type ResponseConfig struct {
	// Format selects the rendering mode: "json" or "markdown".
	// Defaults to "json" if empty.
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=json markdown"`

	// MaxSize truncates rendered output beyond this many bytes.
	// Defaults to 50000 if not specified or 0.
	MaxSize int `yaml:"max_size" mapstructure:"max_size" validate:"omitempty,min=1"`
}

// PagingConfig configures list tool pagination.
type PagingConfig struct {
	// DefaultPer is the page size applied when a caller omits "per".
	// Defaults to 25.
	DefaultPer int `yaml:"default_per" mapstructure:"default_per" validate:"omitempty,min=1"`

	// MaxPer caps the page size regardless of caller input.
	// Defaults to 100.
	MaxPer int `yaml:"max_per" mapstructure:"max_per" validate:"omitempty,min=1"`
}

// SetDefaults applies sensible default values to the configuration.
func (c *Config) SetDefaults() {
	// Bind to localhost only unless the operator opts in to network exposure.
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = "127.0.0.1:8080"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	if c.API.HTTPTimeout == "" {
		c.API.HTTPTimeout = "30s"
	}

	if c.Response.Format == "" {
		c.Response.Format = string(render.FormatJSON)
	}
	if c.Response.MaxSize == 0 {
		c.Response.MaxSize = render.DefaultMaxSize
	}

	if c.Paging.DefaultPer == 0 {
		c.Paging.DefaultPer = paging.DefaultPer
	}
	if c.Paging.MaxPer == 0 {
		c.Paging.MaxPer = paging.DefaultMaxPer
	}
}

// HTTPTimeout parses the configured upstream timeout.
// Call after Validate; an unparseable value falls back to 30 seconds.
func (c *Config) HTTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.HTTPTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
