// Package mcpserver exposes the tone and clarity analyzers as MCP tools.
//
// Each tool follows the same shape:
// - A struct holding the shared analyzer, injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/pthm/tonelint/internal/analyzer"
)

const instructions = `tonelint checks the tone and clarity of outgoing messages.

Use analyze_message before sending an email or support reply. When the tone
verdict says a rewrite is needed, revise the message and analyze it again.`

// New builds the MCP server with every tool registered
func New(a *analyzer.Analyzer, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"tonelint",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	toneTool := NewToneTool(a)
	s.AddTool(toneTool.Definition(), toneTool.Handle)

	clarityTool := NewClarityTool(a)
	s.AddTool(clarityTool.Definition(), clarityTool.Handle)

	messageTool := NewMessageTool(a)
	s.AddTool(messageTool.Definition(), messageTool.Handle)

	return s
}

// Serve runs the server over stdio until the client disconnects
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
