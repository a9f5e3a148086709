// Package server provides the MCP server exposing the Kakao map tools.
package server

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/kmapmcp/pkg/config"
	"github.com/NERVsystems/kmapmcp/pkg/kakao"
	"github.com/NERVsystems/kmapmcp/pkg/tools"
	"github.com/NERVsystems/kmapmcp/pkg/tools/prompts"
	"github.com/NERVsystems/kmapmcp/pkg/version"
)

// ServerName is the name of the MCP server
const ServerName = "kakao-map-mcp-server"

// Server encapsulates the MCP server with the Kakao map tools.
type Server struct {
	srv      *server.MCPServer
	registry *tools.Registry
	logger   *slog.Logger
}

// BuildRegistry creates the upstream client described by cfg and an
// adapter for every tool on top of it.
func BuildRegistry(cfg *config.Config, logger *slog.Logger) (*tools.Registry, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := cfg.ClientOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = version.UserAgent()
	}
	client, err := kakao.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("create upstream client: %w", err)
	}
	client.SetLogger(logger)

	return tools.NewRegistry(logger, client, cfg.CatalogOptions())
}

// NewServer creates a new Kakao map MCP server with all tools and prompts registered.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initializing Kakao map MCP server",
		"name", ServerName,
		"version", version.BuildVersion)

	registry, err := BuildRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}

	srv := server.NewMCPServer(
		ServerName,
		version.BuildVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)
	registry.RegisterTools(srv)
	prompts.RegisterGeocodingPrompts(srv)

	logger.Info("upstream configured", "base_url", cfg.Upstream.BaseURL, "tools", len(registry.Adapters()))
	return &Server{srv: srv, registry: registry, logger: logger}, nil
}

// Registry returns the tool adapters served.
func (s *Server) Registry() *tools.Registry {
	return s.registry
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.srv
}

// Run starts the MCP server using stdin/stdout for communication.
func (s *Server) Run() error {
	return server.ServeStdio(s.srv)
}
