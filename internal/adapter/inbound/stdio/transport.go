// Package stdio provides the stdio transport adapter. Stdio mode serves a
// single tenant: credentials come from the process environment instead of
// per-request headers, and messages are newline-delimited JSON-RPC on
// stdin/stdout. All logging goes to stderr; stdout carries only protocol.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/stratuspay/payroll-mcp/internal/domain/tenant"
	"github.com/stratuspay/payroll-mcp/internal/port/inbound"
	"github.com/stratuspay/payroll-mcp/internal/service"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

// maxLineSize caps one inbound message (1 MB), matching the HTTP transport's
// body limit.
const maxLineSize = 1 << 20

// Transport is the inbound adapter serving MCP over stdin/stdout.
type Transport struct {
	svc    *service.MCPService
	logger *slog.Logger
	in     io.Reader
	out    io.Writer
}

// Option is a functional option for configuring the Transport.
type Option func(*Transport)

// WithLogger sets the logger for the stdio transport.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// WithStreams overrides stdin/stdout (testing).
func WithStreams(in io.Reader, out io.Writer) Option {
	return func(t *Transport) {
		t.in = in
		t.out = out
	}
}

// NewTransport creates a stdio transport adapter wrapping the given MCP service.
func NewTransport(svc *service.MCPService, opts ...Option) *Transport {
	t := &Transport{
		svc:    svc,
		logger: slog.Default(),
		in:     os.Stdin,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start reads newline-delimited JSON-RPC messages until EOF or context
// cancellation. Stdio serves exactly one tenant, so missing credentials are
// a startup error rather than a per-request one.
func (t *Transport) Start(ctx context.Context) error {
	creds, err := tenant.FromEnv()
	if err != nil {
		return err
	}
	ctx = tenant.NewContext(ctx, creds)
	t.logger.Info("stdio transport ready", "tenant", creds.Fingerprint())

	scanner := bufio.NewScanner(t.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			scanErr <- err
		}
	}()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("context cancelled, stdio transport stopping")
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return fmt.Errorf("reading stdin: %w", err)
				default:
					// EOF: the client closed the pipe.
					return nil
				}
			}
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			t.handleLine(ctx, line)
		}
	}
}

func (t *Transport) handleLine(ctx context.Context, line []byte) {
	msg, err := mcp.WrapMessage(line)
	if err != nil {
		t.logger.Warn("undecodable message", "error", err)
		t.writeParseError(line)
		return
	}

	resp := t.svc.Handle(ctx, msg)
	if resp == nil {
		return
	}

	raw, err := mcp.EncodeMessage(resp)
	if err != nil {
		t.logger.Error("encoding response failed", "error", err)
		return
	}
	t.writeLine(raw)
}

// writeParseError answers an undecodable line with a JSON-RPC parse error,
// preserving the original id when one can be extracted from the raw bytes.
func (t *Transport) writeParseError(line []byte) {
	id := (&mcp.Message{Raw: line}).RawID()
	if id == nil {
		id = json.RawMessage("null")
	}
	raw, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]any{
			"code":    -32700,
			"message": "Parse error",
		},
	})
	t.writeLine(raw)
}

func (t *Transport) writeLine(raw []byte) {
	if _, err := fmt.Fprintf(t.out, "%s\n", raw); err != nil {
		t.logger.Error("writing response failed", "error", err)
	}
}

// Close gracefully shuts down the transport.
// For stdio, there are no resources to clean up.
func (t *Transport) Close() error {
	return nil
}

// Compile-time check that Transport implements the inbound port.
var _ inbound.Transport = (*Transport)(nil)
