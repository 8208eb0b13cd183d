// Package mcp provides the MCP protocol types and JSON-RPC codec utilities
// used by the payroll-mcp server transports.
package mcp

import (
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
)

// Message wraps a decoded JSON-RPC message with transport metadata.
// It stores both the raw bytes (for ID extraction on error paths) and the
// decoded message (for dispatch).
type Message struct {
	// Raw contains the original bytes of the message.
	Raw []byte

	// Decoded contains the parsed JSON-RPC message.
	// The concrete type is either *jsonrpc.Request or *jsonrpc.Response.
	Decoded jsonrpc.Message

	// Timestamp records when the message was received by the transport.
	Timestamp time.Time
}

// IsRequest returns true if the message is a JSON-RPC request.
func (m *Message) IsRequest() bool {
	if m.Decoded == nil {
		return false
	}
	_, ok := m.Decoded.(*jsonrpc.Request)
	return ok
}

// IsResponse returns true if the message is a JSON-RPC response.
func (m *Message) IsResponse() bool {
	if m.Decoded == nil {
		return false
	}
	_, ok := m.Decoded.(*jsonrpc.Response)
	return ok
}

// IsNotification returns true if the message is a request without an ID.
// Notifications never receive a response.
func (m *Message) IsNotification() bool {
	req := m.Request()
	return req != nil && !req.ID.IsValid()
}

// Method returns the method name if this is a request, empty string otherwise.
func (m *Message) Method() string {
	req := m.Request()
	if req == nil {
		return ""
	}
	return req.Method
}

// IsToolCall returns true if this is a tools/call request. Tool calls are
// the only method that reaches the upstream API and therefore the only one
// that requires tenant credentials.
func (m *Message) IsToolCall() bool {
	return m.Method() == MethodToolsCall
}

// Request returns the underlying Request if this is a request message.
// Returns nil if this is not a request.
func (m *Message) Request() *jsonrpc.Request {
	if m.Decoded == nil {
		return nil
	}
	req, _ := m.Decoded.(*jsonrpc.Request)
	return req
}

// Response returns the underlying Response if this is a response message.
// Returns nil if this is not a response.
func (m *Message) Response() *jsonrpc.Response {
	if m.Decoded == nil {
		return nil
	}
	resp, _ := m.Decoded.(*jsonrpc.Response)
	return resp
}

// RawID extracts the request ID from the raw message bytes as json.RawMessage.
// The ID is pulled directly from the raw JSON so the original format (number,
// string, or null) is preserved in error responses even when decoding failed.
// Returns nil if no ID is present.
func (m *Message) RawID() json.RawMessage {
	if m.Raw == nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(m.Raw, &raw); err != nil {
		return nil
	}
	return raw["id"]
}
