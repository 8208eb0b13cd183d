package mcp

import "encoding/json"

// ProtocolVersion is the MCP protocol revision this server implements.
const ProtocolVersion = "2025-06-18"

// MCP request methods handled by the server.
const (
	MethodInitialize = "initialize"
	MethodPing       = "ping"
	MethodToolsList  = "tools/list"
	MethodToolsCall  = "tools/call"
)

// HTTP headers defined by the MCP streamable HTTP transport.
const (
	SessionIDHeader       = "Mcp-Session-Id"
	ProtocolVersionHeader = "MCP-Protocol-Version"
)

// Implementation identifies an MCP server or client.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability advertises tool support.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ServerCapabilities lists the capabilities the server advertises during
// initialization. This server only exposes tools.
type ServerCapabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

// InitializeResult is the server's reply to an initialize request.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`
}

// Tool describes one callable tool in a tools/list result.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ListToolsResult is the server's reply to a tools/list request.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolParams are the params of a tools/call request. Arguments is kept
// raw so each tool can decode into its own input struct.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// TextContent is a text block in a tool result.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextContent builds a text content block.
func NewTextContent(text string) TextContent {
	return TextContent{Type: "text", Text: text}
}

// CallToolResult is the server's reply to a tools/call request. Tool
// execution failures are reported in-band with IsError=true rather than as
// JSON-RPC protocol errors.
type CallToolResult struct {
	Content []TextContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}
