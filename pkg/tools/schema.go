package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"
)

// JSONSchema returns the JSON schema of the tool's input object. The same
// schema is published to the agent and enforced by the Validator.
func (s ToolSpec) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = f.schema()
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if req := s.Required(); len(req) > 0 {
		schema["required"] = req
	}
	return schema
}

func (f Field) schema() map[string]any {
	p := map[string]any{"type": f.Type.String()}
	if f.Description != "" {
		p["description"] = f.Description
	}
	if f.Min != nil {
		p["minimum"] = *f.Min
	}
	if f.Max != nil {
		p["maximum"] = *f.Max
	}
	if f.MinLength > 0 {
		p["minLength"] = f.MinLength
	}
	if len(f.Enum) > 0 {
		enum := make([]any, len(f.Enum))
		for i, e := range f.Enum {
			enum[i] = e
		}
		p["enum"] = enum
	}
	return p
}

// MCPTool converts spec into an MCP tool definition.
func MCPTool(spec ToolSpec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(spec.Description)}
	for _, f := range spec.Fields {
		var props []mcp.PropertyOption
		if f.Required {
			props = append(props, mcp.Required())
		}
		if f.Description != "" {
			props = append(props, mcp.Description(f.Description))
		}
		if f.Min != nil {
			props = append(props, mcp.Min(*f.Min))
		}
		if f.Max != nil {
			props = append(props, mcp.Max(*f.Max))
		}
		if f.MinLength > 0 {
			props = append(props, mcp.MinLength(f.MinLength))
		}
		if len(f.Enum) > 0 {
			props = append(props, mcp.Enum(f.Enum...))
		}

		switch f.Type {
		case TypeString:
			if f.Default != nil {
				props = append(props, mcp.DefaultString(cast.ToString(f.Default)))
			}
			opts = append(opts, mcp.WithString(f.Name, props...))
		default:
			if f.Default != nil {
				props = append(props, mcp.DefaultNumber(cast.ToFloat64(f.Default)))
			}
			opts = append(opts, mcp.WithNumber(f.Name, props...))
		}
	}
	return mcp.NewTool(spec.Name, opts...)
}

// ErrorResponse is used for consistent error reporting
func ErrorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}
