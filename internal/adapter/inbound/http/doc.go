// Package http provides the Streamable HTTP transport for the payroll MCP
// server.
//
// Each POST to /mcp carries one JSON-RPC message plus the tenant's
// credentials in request headers; the transport builds a request-scoped
// context from them and hands the message to the MCP service. The server is
// stateless: the Mcp-Session-Id header is issued on initialize and echoed
// back, but no server-side session state exists.
//
// # Endpoints
//
//	POST /mcp     - Send a JSON-RPC request, receive a JSON-RPC response
//	OPTIONS /mcp  - CORS preflight handling
//	GET /health   - Liveness endpoint
//	GET /metrics  - Prometheus metrics
//
// # Request Headers
//
//	X-StratusPay-Access-Token: <token>  - Tenant API token, required for tools/call
//	X-StratusPay-API-Version: <date>    - Optional upstream API version override
//	Content-Type: application/json      - Required for POST requests
//
// A tools/call request without the access token header is rejected with
// HTTP 401 before any dispatch happens. Other methods (initialize, ping,
// tools/list) need no credentials.
//
// # Response Headers
//
//	MCP-Protocol-Version: 2025-06-18    - MCP protocol version
//	Mcp-Session-Id: <session-id>        - Issued on initialize, echoed back otherwise
package http
