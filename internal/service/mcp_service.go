package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stratuspay/payroll-mcp/internal/domain/apierror"
	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
	"github.com/stratuspay/payroll-mcp/internal/domain/render"
	"github.com/stratuspay/payroll-mcp/internal/domain/tenant"
	"github.com/stratuspay/payroll-mcp/internal/port/outbound"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

// JSON-RPC error codes used by the dispatch layer. Tool execution failures
// never use these; they surface in-band as CallToolResult.IsError.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeInternalError  = -32603
)

// MCPService dispatches decoded JSON-RPC requests to MCP method handlers.
// It is transport-agnostic: the stdio and HTTP adapters both feed it.
type MCPService struct {
	registry   *Registry
	factory    outbound.GatewayFactory
	renderer   *render.Renderer
	logger     *slog.Logger
	info       mcp.Implementation
	defaultPer int
	maxPer     int
	toolCalls  *prometheus.CounterVec // optional {tool, outcome}
}

// MCPOption is a functional option for configuring an MCPService.
type MCPOption func(*MCPService)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) MCPOption {
	return func(s *MCPService) {
		s.logger = logger
	}
}

// WithServerInfo sets the name and version advertised during initialization.
func WithServerInfo(name, version string) MCPOption {
	return func(s *MCPService) {
		s.info = mcp.Implementation{Name: name, Version: version}
	}
}

// WithPaging sets the default and maximum page sizes applied to list tools.
func WithPaging(defaultPer, maxPer int) MCPOption {
	return func(s *MCPService) {
		if defaultPer > 0 {
			s.defaultPer = defaultPer
		}
		if maxPer > 0 {
			s.maxPer = maxPer
		}
	}
}

// WithToolCallCounter records tool executions on the given counter with
// {tool, outcome} labels.
func WithToolCallCounter(cv *prometheus.CounterVec) MCPOption {
	return func(s *MCPService) {
		s.toolCalls = cv
	}
}

// NewMCPService creates the dispatch service.
func NewMCPService(registry *Registry, factory outbound.GatewayFactory, renderer *render.Renderer, opts ...MCPOption) *MCPService {
	s := &MCPService{
		registry:   registry,
		factory:    factory,
		renderer:   renderer,
		logger:     slog.Default(),
		info:       mcp.Implementation{Name: "payroll-mcp", Version: "dev"},
		defaultPer: paging.DefaultPer,
		maxPer:     paging.DefaultMaxPer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle processes one decoded message and returns the response to send, or
// nil when no response is due (notifications, inbound responses).
func (s *MCPService) Handle(ctx context.Context, msg *mcp.Message) *jsonrpc.Response {
	req := msg.Request()
	if req == nil || msg.IsNotification() {
		return nil
	}

	switch req.Method {
	case mcp.MethodInitialize:
		return resultResponse(req.ID, mcp.InitializeResult{
			ProtocolVersion: mcp.ProtocolVersion,
			Capabilities:    mcp.ServerCapabilities{Tools: &mcp.ToolsCapability{}},
			ServerInfo:      s.info,
		})
	case mcp.MethodPing:
		return resultResponse(req.ID, struct{}{})
	case mcp.MethodToolsList:
		return resultResponse(req.ID, mcp.ListToolsResult{Tools: s.registry.List()})
	case mcp.MethodToolsCall:
		return s.handleToolCall(ctx, req)
	default:
		return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *MCPService) handleToolCall(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	var params mcp.CallToolParams
	if len(req.Params) == 0 {
		return errorResponse(req.ID, codeInvalidParams, "tools/call requires params")
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "invalid tools/call params")
	}
	if params.Name == "" {
		return errorResponse(req.ID, codeInvalidParams, "tool name is required")
	}

	tool, ok := s.registry.Lookup(params.Name)
	if !ok {
		return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("unknown tool: %s", params.Name))
	}

	// Credential check happens before the gateway factory runs: a call with
	// no token must produce zero upstream requests.
	creds, ok := tenant.FromContext(ctx)
	if !ok || creds.AccessToken == "" {
		s.count(params.Name, "missing_credentials")
		err := &tenant.MissingCredentialsError{Source: "request credentials"}
		return toolErrorResponse(req.ID, "Error: "+err.Error())
	}

	env := Env{
		Gateway:    s.factory(creds),
		DefaultPer: s.defaultPer,
		MaxPer:     s.maxPer,
	}

	data, kind, err := s.invoke(ctx, tool, env, params.Arguments)
	if err != nil {
		s.count(params.Name, "error")
		var cerr *apierror.ClassifiedError
		if errors.As(err, &cerr) {
			s.logger.Warn("tool call failed",
				"tool", params.Name,
				"kind", string(cerr.Kind),
				"retryable", cerr.Retryable,
			)
			return toolErrorResponse(req.ID, s.renderer.Error(cerr))
		}
		// Argument validation and similar pre-gateway failures.
		return toolErrorResponse(req.ID, "Error: "+err.Error())
	}

	s.count(params.Name, "ok")
	return callResponse(req.ID, s.renderer.Result(data, kind), false)
}

// invoke runs a tool handler with panic containment. A panicking handler
// must not take down the transport serving other tenants.
func (s *MCPService) invoke(ctx context.Context, tool Tool, env Env, args json.RawMessage) (data any, kind render.Kind, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool handler panic", "tool", tool.Def.Name, "panic", r)
			data, kind = nil, render.KindGeneric
			err = apierror.Unknown(fmt.Errorf("internal error executing %s", tool.Def.Name))
		}
	}()
	return tool.Handler(ctx, env, args)
}

func (s *MCPService) count(tool, outcome string) {
	if s.toolCalls != nil {
		s.toolCalls.WithLabelValues(tool, outcome).Inc()
	}
}

func callResponse(id jsonrpc.ID, text string, isError bool) *jsonrpc.Response {
	return resultResponse(id, mcp.CallToolResult{
		Content: []mcp.TextContent{mcp.NewTextContent(text)},
		IsError: isError,
	})
}

func toolErrorResponse(id jsonrpc.ID, text string) *jsonrpc.Response {
	return callResponse(id, text, true)
}

func resultResponse(id jsonrpc.ID, v any) *jsonrpc.Response {
	raw, err := json.Marshal(v)
	if err != nil {
		return errorResponse(id, codeInternalError, "encoding result failed")
	}
	return &jsonrpc.Response{ID: id, Result: raw}
}

func errorResponse(id jsonrpc.ID, code int64, message string) *jsonrpc.Response {
	return &jsonrpc.Response{
		ID:    id,
		Error: &jsonrpc.Error{Code: code, Message: message},
	}
}
