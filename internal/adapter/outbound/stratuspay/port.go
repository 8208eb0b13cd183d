package stratuspay

import "github.com/stratuspay/payroll-mcp/internal/port/outbound"

// Client satisfies the gateway port.
var _ outbound.Gateway = (*Client)(nil)
