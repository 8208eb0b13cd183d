package service

// JSON Schema builders for tool input schemas. Tool argument names are
// snake_case per MCP convention; the gateway maps them to the domain's
// camelCase field names.

func objectSchema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func enumProp(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}

func intProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func boolProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func objectProp(desc string) map[string]any {
	return map[string]any{"type": "object", "description": desc}
}

func stringArrayProp(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": desc,
		"items":       map[string]any{"type": "string"},
	}
}

// pagingProps are the shared page/per argument schemas of list tools.
func pagingProps(props map[string]any) map[string]any {
	props["page"] = intProp("1-based page number (default 1)")
	props["per"] = intProp("Page size (default 25, capped by server config)")
	return props
}
