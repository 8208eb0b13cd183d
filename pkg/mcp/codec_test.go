package mcp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
)

func TestEncodeDecodeRequest(t *testing.T) {
	id, err := jsonrpc.MakeID(float64(1))
	if err != nil {
		t.Fatalf("MakeID failed: %v", err)
	}

	params := json.RawMessage(`{"name":"get_employee","arguments":{"employee_uuid":"emp-1"}}`)
	req := &jsonrpc.Request{
		ID:     id,
		Method: "tools/call",
		Params: params,
	}

	encoded, err := EncodeMessage(req)
	if err != nil {
		t.Fatalf("EncodeMessage failed: %v", err)
	}

	decoded, err := DecodeMessage(encoded)
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}

	decodedReq, ok := decoded.(*jsonrpc.Request)
	if !ok {
		t.Fatalf("expected *jsonrpc.Request, got %T", decoded)
	}

	if decodedReq.Method != "tools/call" {
		t.Errorf("expected method 'tools/call', got %q", decodedReq.Method)
	}
}

func TestEncodeDecodeResponse(t *testing.T) {
	id, err := jsonrpc.MakeID(float64(1))
	if err != nil {
		t.Fatalf("MakeID failed: %v", err)
	}

	result := json.RawMessage(`{"content":[{"type":"text","text":"ok"}]}`)
	resp := &jsonrpc.Response{
		ID:     id,
		Result: result,
	}

	encoded, err := EncodeMessage(resp)
	if err != nil {
		t.Fatalf("EncodeMessage failed: %v", err)
	}

	decoded, err := DecodeMessage(encoded)
	if err != nil {
		t.Fatalf("DecodeMessage failed: %v", err)
	}

	decodedResp, ok := decoded.(*jsonrpc.Response)
	if !ok {
		t.Fatalf("expected *jsonrpc.Response, got %T", decoded)
	}

	if decodedResp.Result == nil {
		t.Error("expected result to be set")
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "not valid json",
			data: []byte(`{not valid`),
		},
		{
			name: "empty object",
			data: []byte(`{}`),
		},
		{
			name: "missing jsonrpc version",
			data: []byte(`{"id":1,"method":"test"}`),
		},
		{
			name: "wrong jsonrpc version",
			data: []byte(`{"jsonrpc":"1.0","id":1,"method":"test"}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMessage(tt.data)
			if err == nil {
				t.Errorf("expected error for malformed JSON %q, got nil", tt.name)
			}
		})
	}
}

func TestWrapMessage(t *testing.T) {
	tests := []struct {
		name             string
		raw              []byte
		wantMethod       string
		wantRequest      bool
		wantToolCall     bool
		wantNotification bool
		wantErr          bool
	}{
		{
			name:         "tools/call request",
			raw:          []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_company"}}`),
			wantMethod:   "tools/call",
			wantRequest:  true,
			wantToolCall: true,
		},
		{
			name:        "tools/list request",
			raw:         []byte(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`),
			wantMethod:  "tools/list",
			wantRequest: true,
		},
		{
			name:             "initialized notification",
			raw:              []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`),
			wantMethod:       "notifications/initialized",
			wantRequest:      true,
			wantNotification: true,
		},
		{
			name: "response",
			raw:  []byte(`{"jsonrpc":"2.0","id":1,"result":{"content":"data"}}`),
		},
		{
			name:    "invalid json returns error",
			raw:     []byte(`{invalid`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := WrapMessage(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if string(msg.Raw) != string(tt.raw) {
				t.Errorf("raw bytes not preserved: got %q, want %q", msg.Raw, tt.raw)
			}
			if msg.Timestamp.IsZero() {
				t.Error("timestamp should be set")
			}
			if msg.Method() != tt.wantMethod {
				t.Errorf("Method(): got %q, want %q", msg.Method(), tt.wantMethod)
			}
			if msg.IsRequest() != tt.wantRequest {
				t.Errorf("IsRequest(): got %v, want %v", msg.IsRequest(), tt.wantRequest)
			}
			if msg.IsResponse() == tt.wantRequest {
				t.Errorf("IsResponse(): got %v, want %v", msg.IsResponse(), !tt.wantRequest)
			}
			if msg.IsToolCall() != tt.wantToolCall {
				t.Errorf("IsToolCall(): got %v, want %v", msg.IsToolCall(), tt.wantToolCall)
			}
			if msg.IsNotification() != tt.wantNotification {
				t.Errorf("IsNotification(): got %v, want %v", msg.IsNotification(), tt.wantNotification)
			}
		})
	}
}

func TestMessageAccessors(t *testing.T) {
	reqRaw := []byte(`{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	reqMsg, err := WrapMessage(reqRaw)
	if err != nil {
		t.Fatalf("WrapMessage failed: %v", err)
	}

	if reqMsg.Request() == nil {
		t.Error("Request() should return non-nil for request message")
	}
	if reqMsg.Response() != nil {
		t.Error("Response() should return nil for request message")
	}

	respRaw := []byte(`{"jsonrpc":"2.0","id":1,"result":{}}`)
	respMsg, err := WrapMessage(respRaw)
	if err != nil {
		t.Fatalf("WrapMessage failed: %v", err)
	}

	if respMsg.Response() == nil {
		t.Error("Response() should return non-nil for response message")
	}
	if respMsg.Request() != nil {
		t.Error("Request() should return nil for response message")
	}
}

func TestRawIDPreservesFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{
			name: "numeric id",
			raw:  []byte(`{"jsonrpc":"2.0","id":42,"method":"ping"}`),
			want: `42`,
		},
		{
			name: "string id",
			raw:  []byte(`{"jsonrpc":"2.0","id":"abc-123","method":"ping"}`),
			want: `"abc-123"`,
		},
		{
			name: "no id",
			raw:  []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`),
			want: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &Message{Raw: tt.raw, Timestamp: time.Now()}
			got := string(msg.RawID())
			if got != tt.want {
				t.Errorf("RawID(): got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageWithNilDecoded(t *testing.T) {
	msg := &Message{
		Raw:       []byte(`invalid`),
		Decoded:   nil,
		Timestamp: time.Now(),
	}

	if msg.IsRequest() {
		t.Error("IsRequest() should return false for nil Decoded")
	}
	if msg.IsResponse() {
		t.Error("IsResponse() should return false for nil Decoded")
	}
	if msg.Method() != "" {
		t.Error("Method() should return empty string for nil Decoded")
	}
	if msg.IsToolCall() {
		t.Error("IsToolCall() should return false for nil Decoded")
	}
	if msg.Request() != nil {
		t.Error("Request() should return nil for nil Decoded")
	}
	if msg.Response() != nil {
		t.Error("Response() should return nil for nil Decoded")
	}
}
