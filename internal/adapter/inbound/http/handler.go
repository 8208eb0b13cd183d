package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/stratuspay/payroll-mcp/internal/domain/tenant"
	"github.com/stratuspay/payroll-mcp/internal/service"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

// maxRequestBodySize is the maximum allowed request body size (1 MB).
const maxRequestBodySize = 1 << 20

// mcpHandler creates the main HTTP handler for the MCP Streamable HTTP
// transport. The server is stateless and never initiates messages, so only
// POST carries traffic; GET (SSE) is not offered.
func mcpHandler(svc *service.MCPService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handlePost(w, r, svc)
		case http.MethodOptions:
			handleOptions(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}

// handlePost processes one JSON-RPC message from the client.
func handlePost(w http.ResponseWriter, r *http.Request, svc *service.MCPService) {
	// Validate content type (before reading body to fail fast)
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/json" {
		writeJSONRPCError(w, http.StatusOK, nil, -32700, "Parse error: content type must be application/json")
		return
	}

	// Apply payload size limit before reading body
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer func() { _ = r.Body.Close() }()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSONRPCError(w, http.StatusOK, nil, -32700, "Parse error: request body too large (max 1MB)")
			return
		}
		writeJSONRPCError(w, http.StatusOK, nil, -32700, "Parse error: failed to read request body")
		return
	}

	if len(body) == 0 {
		writeJSONRPCError(w, http.StatusOK, nil, -32700, "Parse error: empty request body")
		return
	}

	if !json.Valid(body) {
		writeJSONRPCError(w, http.StatusOK, nil, -32700, "Parse error: invalid JSON")
		return
	}

	// Validate JSON-RPC required fields
	var rpcRequest struct {
		JSONRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		ID      json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(body, &rpcRequest); err != nil {
		// JSON is valid (passed json.Valid above) but not an object -
		// e.g., array, string, number, boolean
		writeJSONRPCError(w, http.StatusOK, nil, -32600, "Invalid Request: request must be a JSON object")
		return
	}
	if rpcRequest.JSONRPC != "2.0" {
		writeJSONRPCError(w, http.StatusOK, nil, -32600, "Invalid Request: missing or invalid jsonrpc version (must be \"2.0\")")
		return
	}
	if rpcRequest.Method == "" {
		writeJSONRPCError(w, http.StatusOK, nil, -32600, "Invalid Request: missing method field")
		return
	}

	// tools/call carries tenant credentials or does not run. Rejecting here,
	// before decode and dispatch, guarantees zero upstream traffic for
	// unauthenticated calls.
	ctx := r.Context()
	if rpcRequest.Method == mcp.MethodToolsCall {
		if _, ok := tenant.FromContext(ctx); !ok {
			LoggerFromContext(ctx).Warn("tools/call without credentials rejected")
			writeJSONRPCError(w, http.StatusUnauthorized, rpcRequest.ID, -32600,
				(&tenant.MissingCredentialsError{Source: tenant.AccessTokenHeader + " header"}).Error())
			return
		}
	}

	msg, err := mcp.WrapMessage(body)
	if err != nil {
		writeJSONRPCError(w, http.StatusOK, rpcRequest.ID, -32600, "Invalid Request: "+err.Error())
		return
	}

	resp := svc.Handle(ctx, msg)
	if ctx.Err() != nil {
		return // client disconnected, don't write a response
	}

	w.Header().Set(mcp.ProtocolVersionHeader, mcp.ProtocolVersion)

	// Echo session ID if client sent one
	if sessionID := r.Header.Get(mcp.SessionIDHeader); sessionID != "" {
		w.Header().Set(mcp.SessionIDHeader, sessionID)
	}

	// Notifications expect no response; Streamable HTTP requires 202 Accepted.
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	// Issue a session ID on initialize. The server keeps no session state;
	// the ID exists for client-side correlation only.
	if rpcRequest.Method == mcp.MethodInitialize {
		w.Header().Set(mcp.SessionIDHeader, uuid.New().String())
	}

	raw, err := mcp.EncodeMessage(resp)
	if err != nil {
		writeJSONRPCError(w, http.StatusOK, rpcRequest.ID, -32603, "Internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// handleOptions handles CORS preflight requests.
func handleOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers",
		"Content-Type, Mcp-Session-Id, MCP-Protocol-Version, "+tenant.AccessTokenHeader+", "+tenant.APIVersionHeader)
	w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours
	w.WriteHeader(http.StatusNoContent)
}

// jsonRPCError represents a JSON-RPC 2.0 error response.
type jsonRPCError struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Error   jsonRPCErrorField `json:"error"`
}

type jsonRPCErrorField struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeJSONRPCError writes a JSON-RPC error response. Protocol-level errors
// use HTTP 200 per JSON-RPC-over-HTTP convention; credential rejections use
// 401 so clients can distinguish them without parsing the body.
func writeJSONRPCError(w http.ResponseWriter, status int, id json.RawMessage, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if id == nil {
		id = json.RawMessage("null")
	}
	errResp := jsonRPCError{
		JSONRPC: "2.0",
		ID:      id,
		Error: jsonRPCErrorField{
			Code:    code,
			Message: message,
		},
	}

	_ = json.NewEncoder(w).Encode(errResp)
}
