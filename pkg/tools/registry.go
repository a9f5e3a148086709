package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registry holds the Kakao map tool adapters.
type Registry struct {
	logger   *slog.Logger
	adapters []*Adapter
	byName   map[string]*Adapter
}

// NewRegistry builds an adapter for every catalog definition, all sharing fetcher.
func NewRegistry(logger *slog.Logger, fetcher Fetcher, opts CatalogOptions) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		logger: logger,
		byName: make(map[string]*Adapter),
	}
	for _, def := range Definitions(opts) {
		a, err := NewAdapter(def, fetcher, logger)
		if err != nil {
			return nil, err
		}
		if _, dup := r.byName[a.Name()]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", a.Name())
		}
		r.adapters = append(r.adapters, a)
		r.byName[a.Name()] = a
	}
	return r, nil
}

// Adapters returns the adapters in catalog order.
func (r *Registry) Adapters() []*Adapter {
	return r.adapters
}

// Lookup returns the adapter for the named tool.
func (r *Registry) Lookup(name string) (*Adapter, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// ToolDefinition represents a Kakao map MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// GetToolDefinitions returns the MCP definition of every tool.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.adapters))
	for _, a := range r.adapters {
		defs = append(defs, ToolDefinition{
			Name:        a.Name(),
			Description: a.Description(),
			Tool:        MCPTool(a.Spec()),
			Handler:     Handler(a),
		})
	}
	return defs
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, def.Handler)
	}
}

// Handler serves a as an MCP tool. Failures carry the same text Invoke
// would return, flagged as an error result.
func Handler(a *Adapter) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := a.Call(ctx, req.Params.Arguments)
		if err != nil {
			return ErrorResponse(Describe(err)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}
