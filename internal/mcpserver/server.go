// Package mcpserver exposes reference generation as MCP tools over stdio.
package mcpserver

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/agentflare-ai/dokuref/internal/refgen"
)

// Server is the dokuref MCP server.
type Server struct {
	mcpServer *server.MCPServer
	log       *slog.Logger
}

// New creates a server with every tool registered. opts are the defaults
// each call starts from.
func New(name, version string, opts refgen.Options, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		mcpServer: server.NewMCPServer(name, version),
		log:       log,
	}

	generate := NewGenerateTool(opts)
	s.mcpServer.AddTool(generate.GetTool(), generate.Handle)

	list := NewListSymbolsTool(opts)
	s.mcpServer.AddTool(list.GetTool(), list.Handle)
	return s
}

// Serve blocks serving MCP requests on stdin and stdout.
func (s *Server) Serve() error {
	s.log.Info("serving MCP over stdio")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}
	return nil
}
