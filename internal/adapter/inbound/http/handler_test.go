package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/render"
	"github.com/stratuspay/payroll-mcp/internal/domain/tenant"
	"github.com/stratuspay/payroll-mcp/internal/port/outbound"
	"github.com/stratuspay/payroll-mcp/internal/service"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

// stubGateway answers GetCompany and counts invocations; everything else
// panics through the embedded nil interface.
type stubGateway struct {
	outbound.Gateway
	calls int
}

func (s *stubGateway) GetCompany(ctx context.Context, companyUUID string) (entity.Entity, error) {
	s.calls++
	return entity.Entity{"uuid": companyUUID, "name": "Acme"}, nil
}

type handlerFixture struct {
	handler      http.Handler
	gateway      *stubGateway
	factoryCalls int
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	f := &handlerFixture{gateway: &stubGateway{}}
	factory := func(creds tenant.Credentials) outbound.Gateway {
		f.factoryCalls++
		return f.gateway
	}
	svc := service.NewMCPService(service.NewRegistry(), factory, render.New(render.FormatJSON, 0))
	f.handler = RequestIDMiddleware(slog.Default())(CredentialsMiddleware(mcpHandler(svc)))
	return f
}

func postMCP(t *testing.T, h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestInitializeIssuesSessionID(t *testing.T) {
	f := newHandlerFixture(t)
	rec := postMCP(t, f.handler,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18"}}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if got := rec.Header().Get(mcp.ProtocolVersionHeader); got != mcp.ProtocolVersion {
		t.Errorf("protocol version header: got %q", got)
	}
	if rec.Header().Get(mcp.SessionIDHeader) == "" {
		t.Error("initialize should issue a session ID")
	}
	if !strings.Contains(rec.Body.String(), mcp.ProtocolVersion) {
		t.Errorf("body missing protocol version: %s", rec.Body.String())
	}
}

func TestNotificationReturns202(t *testing.T) {
	f := newHandlerFixture(t)
	rec := postMCP(t, f.handler, `{"jsonrpc":"2.0","method":"notifications/initialized"}`, nil)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status: got %d, want 202", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("notification response should have no body, got %q", rec.Body.String())
	}
}

func TestToolCallWithoutTokenRejectedWith401(t *testing.T) {
	f := newHandlerFixture(t)
	rec := postMCP(t, f.handler,
		`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"get_company","arguments":{"company_uuid":"co-1"}}}`, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	if f.factoryCalls != 0 || f.gateway.calls != 0 {
		t.Errorf("unauthenticated tools/call reached the gateway: factory=%d calls=%d",
			f.factoryCalls, f.gateway.calls)
	}

	var resp struct {
		ID    json.RawMessage `json:"id"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if string(resp.ID) != "7" {
		t.Errorf("error response must echo the request id, got %s", resp.ID)
	}
	if !strings.Contains(resp.Error.Message, "missing StratusPay access token") {
		t.Errorf("unexpected error message: %s", resp.Error.Message)
	}
}

func TestToolCallWithToken(t *testing.T) {
	f := newHandlerFixture(t)
	rec := postMCP(t, f.handler,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_company","arguments":{"company_uuid":"co-1"}}}`,
		map[string]string{tenant.AccessTokenHeader: "tok-1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if f.gateway.calls != 1 {
		t.Errorf("gateway calls: got %d, want 1", f.gateway.calls)
	}
	if !strings.Contains(rec.Body.String(), "Acme") {
		t.Errorf("body missing company data: %s", rec.Body.String())
	}
}

func TestToolsListNeedsNoToken(t *testing.T) {
	f := newHandlerFixture(t)
	rec := postMCP(t, f.handler, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "get_company") {
		t.Errorf("tools/list body missing tools: %s", rec.Body.String())
	}
}

func TestMalformedRequests(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantCode    int // JSON-RPC error code
	}{
		{"invalid json", `{not json`, "application/json", -32700},
		{"empty body", ``, "application/json", -32700},
		{"wrong content type", `{"jsonrpc":"2.0","id":1,"method":"ping"}`, "text/plain", -32700},
		{"not an object", `[1,2,3]`, "application/json", -32600},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"ping"}`, "application/json", -32600},
		{"missing method", `{"jsonrpc":"2.0","id":1}`, "application/json", -32600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			f.handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200 (JSON-RPC errors ride 200)", rec.Code)
			}
			var resp struct {
				Error struct {
					Code int `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error code: got %d, want %d", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	f := newHandlerFixture(t)
	big := `{"jsonrpc":"2.0","id":1,"method":"ping","params":{"pad":"` +
		strings.Repeat("x", maxRequestBodySize) + `"}}`
	rec := postMCP(t, f.handler, big, nil)

	if !strings.Contains(rec.Body.String(), "too large") {
		t.Errorf("expected size limit error, got: %s", rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	f := newHandlerFixture(t)
	for _, method := range []string{http.MethodGet, http.MethodDelete, http.MethodPut} {
		req := httptest.NewRequest(method, "/mcp", nil)
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s /mcp: got %d, want 405", method, rec.Code)
		}
	}
}

func TestOptionsPreflights(t *testing.T) {
	f := newHandlerFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), tenant.AccessTokenHeader) {
		t.Error("preflight must allow the access token header")
	}
}

func TestSessionIDEchoed(t *testing.T) {
	f := newHandlerFixture(t)
	rec := postMCP(t, f.handler, `{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		map[string]string{mcp.SessionIDHeader: "sess-42"})

	if got := rec.Header().Get(mcp.SessionIDHeader); got != "sess-42" {
		t.Errorf("session header: got %q, want sess-42", got)
	}
}
