// Package inbound defines the inbound port interfaces of the adapter core.
// Inbound adapters (stdio, HTTP) implement Transport and call the MCP service.
package inbound

import (
	"context"
)

// Transport is an inbound MCP transport.
type Transport interface {
	// Start begins serving MCP traffic. Blocks until the context is
	// cancelled or an error occurs. Returns nil on graceful shutdown.
	Start(ctx context.Context) error

	// Close gracefully shuts down the transport and cleans up resources.
	Close() error
}
