// Package server hosts the capabilities of a tools.Registry as an MCP
// server speaking JSON-RPC over stdio.
package server

import (
	"context"
	"fmt"
	"io"
	stdlog "log"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	logcontext "github.com/va6996/mcpchat/context"
	"github.com/va6996/mcpchat/log"
	"github.com/va6996/mcpchat/tools"
)

// Server is an MCP tool server backed by a registry
type Server struct {
	name     string
	mcp      *mcpserver.MCPServer
	registry *tools.Registry
}

// New builds an MCP server exposing every capability in registry.
func New(name, version string, registry *tools.Registry) *Server {
	s := &Server{
		name:     name,
		mcp:      mcpserver.NewMCPServer(name, version, mcpserver.WithToolCapabilities(false)),
		registry: registry,
	}

	for _, c := range registry.List() {
		s.mcp.AddTool(toMCPTool(c), s.handler(c))
	}
	return s
}

// MCPServer returns the underlying protocol server
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// ServeStdio serves on the process stdin/stdout until stdin closes or the
// process is signalled.
func (s *Server) ServeStdio() error {
	errLog := log.Writer(logrus.ErrorLevel)
	defer errLog.Close()

	log.Infof(s.context(context.Background()), "Serving %d tools over stdio", s.registry.Len())
	return mcpserver.ServeStdio(s.mcp, mcpserver.WithErrorLogger(stdlog.New(errLog, "", 0)))
}

// Listen serves on the given streams until ctx is done or in closes.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	return stdio.Listen(s.context(ctx), in, out)
}

func (s *Server) context(ctx context.Context) context.Context {
	return logcontext.WithProvider(ctx, s.name)
}

func (s *Server) handler(c tools.Capability) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = s.context(ctx)
		log.Debugf(ctx, "Tool call %s args=%v", c.Name, request.GetArguments())

		text, err := c.Invoke(ctx, request.GetArguments())
		if err != nil {
			log.Errorf(ctx, "Tool %s failed: %v", c.Name, err)
			return mcp.NewToolResultError(fmt.Sprintf("Error calling %s: %v", c.Name, err)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func toMCPTool(c tools.Capability) mcp.Tool {
	tool := mcp.NewTool(c.Name, mcp.WithDescription(c.Description))
	tool.InputSchema.Properties, tool.InputSchema.Required = tools.SchemaProperties(c.Params)
	return tool
}
