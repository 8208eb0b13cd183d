// Package service implements the MCP server core: the tool registry and the
// dispatch service that routes JSON-RPC requests to the upstream gateway.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/stratuspay/payroll-mcp/internal/domain/entity"
	"github.com/stratuspay/payroll-mcp/internal/domain/paging"
	"github.com/stratuspay/payroll-mcp/internal/domain/render"
	"github.com/stratuspay/payroll-mcp/internal/port/outbound"
	"github.com/stratuspay/payroll-mcp/pkg/mcp"
)

// Env carries the per-call dependencies of a tool handler. The gateway is
// request-scoped: it was built from the calling tenant's credentials and is
// discarded after the call.
type Env struct {
	Gateway    outbound.Gateway
	DefaultPer int
	MaxPer     int
}

// pageParams normalizes caller pagination inputs against the configured
// limits.
func (e Env) pageParams(page, per int) paging.Params {
	if per <= 0 {
		per = e.DefaultPer
	}
	return paging.Normalize(page, per, e.MaxPer)
}

// Handler executes one tool call. The returned value is rendered with the
// returned layout kind; errors surface as in-band tool errors.
type Handler func(ctx context.Context, env Env, args json.RawMessage) (any, render.Kind, error)

// Tool pairs an MCP tool definition with its handler.
type Tool struct {
	Def     mcp.Tool
	Handler Handler
}

// Registry is the immutable set of tools the server exposes. Built once at
// startup; safe for concurrent reads.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

// NewRegistry assembles the full tool surface.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Tool)}
	r.add(companyTools())
	r.add(employeeTools())
	r.add(contractorTools())
	r.add(payrollTools())
	r.add(holidayPayTools())
	return r
}

func (r *Registry) add(tools []Tool) {
	for _, t := range tools {
		if _, dup := r.byName[t.Def.Name]; dup {
			panic(fmt.Sprintf("duplicate tool %q", t.Def.Name))
		}
		r.tools = append(r.tools, t)
		r.byName[t.Def.Name] = t
	}
}

// List returns the tool definitions in registration order.
func (r *Registry) List() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Def)
	}
	return out
}

// Lookup finds a tool by name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeArgs unmarshals tool arguments into dst and validates them. A nil or
// empty raw payload still runs validation so required fields are reported.
func decodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// mutated wraps a mutation result so the caller can tell success from the
// echoed entity state: {"success": true, "<name>": {...}}.
func mutated(name string, ent entity.Entity) entity.Entity {
	out := entity.Entity{"success": true}
	if ent != nil {
		out[name] = ent
	}
	return out
}

// acknowledged is the result of a mutation whose upstream reply has no body.
func acknowledged() entity.Entity {
	return entity.Entity{"success": true}
}

// putStr sets a string attribute when non-empty. Empty means "not provided";
// partial updates must omit untouched fields entirely.
func putStr(attrs entity.Entity, key, v string) {
	if v != "" {
		attrs[key] = v
	}
}

// putBool sets a bool attribute when provided.
func putBool(attrs entity.Entity, key string, v *bool) {
	if v != nil {
		attrs[key] = *v
	}
}

// putObj sets an object attribute when provided.
func putObj(attrs entity.Entity, key string, v map[string]any) {
	if v != nil {
		attrs[key] = v
	}
}
