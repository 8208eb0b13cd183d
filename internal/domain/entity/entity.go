// Package entity implements the bidirectional mapping between the StratusPay
// wire schema (snake_case JSON) and the adapter's domain schema (camelCase).
//
// Each entity type is described by a declarative Mapping table of
// (wire name, domain name, optional nested mapping) rows; one generic apply
// function handles every entity. Two properties are load-bearing:
//
//   - FromWire is tolerant: missing optional fields map to absence, unknown
//     wire fields are silently dropped (forward compatibility), and nothing
//     ever panics on a well-formed JSON object.
//   - ToWire is strict about absence: fields not present in the domain object
//     are omitted entirely, never serialized as null. On partial updates the
//     upstream treats an absent field as "leave unchanged" and null as
//     "clear", so emitting null would silently wipe tenant data.
package entity

import "strings"

// Entity is a domain object: camelCase field names mapped to values.
// Entities are immutable by convention; each gateway read produces a fresh map.
type Entity = map[string]any

// Field is one row of a mapping table.
type Field struct {
	// Wire is the snake_case field name on the upstream API.
	Wire string
	// Domain is the camelCase field name exposed to callers.
	Domain string
	// Nested, when non-nil, is applied to object values and to each element
	// of array-of-object values.
	Nested *Mapping
}

// Mapping describes one entity type's supported field set.
type Mapping struct {
	// Name is the singular domain name of the entity (used by result wrappers).
	Name string
	// Fields enumerates the supported wire fields. The mapping is total for
	// this set; wire fields outside it are dropped by FromWire.
	Fields []Field
}

// f builds a Field whose domain name is derived from the wire name.
func f(wire string) Field {
	return Field{Wire: wire, Domain: CamelCase(wire)}
}

// fn builds a Field with a nested mapping applied to its object value(s).
func fn(wire string, nested *Mapping) Field {
	return Field{Wire: wire, Domain: CamelCase(wire), Nested: nested}
}

// CamelCase converts a snake_case wire name to its camelCase domain
// equivalent. The conversion is deterministic: the same wire name always
// yields the same domain name ("pay_period" -> "payPeriod", "uuid" -> "uuid").
func CamelCase(wire string) string {
	parts := strings.Split(wire, "_")
	if len(parts) == 1 {
		return wire
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// FromWire converts a raw upstream object into a domain entity. Missing
// fields are absent from the result; unknown wire fields are dropped; null
// values are treated as absent. Nested objects and arrays of objects are
// normalized recursively.
func (m *Mapping) FromWire(wire map[string]any) Entity {
	if wire == nil {
		return nil
	}
	out := make(Entity, len(m.Fields))
	for _, field := range m.Fields {
		v, ok := wire[field.Wire]
		if !ok || v == nil {
			continue
		}
		out[field.Domain] = convertValue(v, field.Nested, (*Mapping).FromWire)
	}
	return out
}

// FromWireSlice converts an upstream array of objects. Elements that are not
// objects are passed through unchanged.
func (m *Mapping) FromWireSlice(wire []any) []Entity {
	out := make([]Entity, 0, len(wire))
	for _, elem := range wire {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, m.FromWire(obj))
	}
	return out
}

// ToWire converts a domain entity into the upstream wire shape. Absent and
// nil domain fields are omitted entirely (never emitted as null).
func (m *Mapping) ToWire(domain Entity) map[string]any {
	if domain == nil {
		return nil
	}
	out := make(map[string]any, len(domain))
	for _, field := range m.Fields {
		v, ok := domain[field.Domain]
		if !ok || v == nil {
			continue
		}
		out[field.Wire] = convertValue(v, field.Nested, (*Mapping).ToWire)
	}
	return out
}

// convertValue applies the nested mapping (in the given direction) to object
// and array-of-object values; scalar values pass through untouched. Monetary
// amounts arrive as decimal strings and stay strings.
func convertValue(v any, nested *Mapping, apply func(*Mapping, map[string]any) map[string]any) any {
	if nested == nil {
		return v
	}
	switch val := v.(type) {
	case map[string]any:
		return apply(nested, val)
	case []any:
		out := make([]any, 0, len(val))
		for _, elem := range val {
			if obj, ok := elem.(map[string]any); ok {
				out = append(out, apply(nested, obj))
			} else {
				out = append(out, elem)
			}
		}
		return out
	case []Entity:
		// Domain-side construction may hold typed slices.
		out := make([]any, 0, len(val))
		for _, obj := range val {
			out = append(out, apply(nested, obj))
		}
		return out
	default:
		return v
	}
}
