// Package mcp exposes place extraction as a Model Context Protocol tool
// using github.com/mark3labs/mcp-go.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/placelist"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is reported to clients during initialization.
const ServerName = "Maps Extractor MCP"

// ServerVersion is reported to clients during initialization.
const ServerVersion = "0.1.0"

// FetchListTool is the name of the single tool the server exposes.
const FetchListTool = "fetch_list"

// Server serves the fetch_list tool over MCP.
type Server struct {
	mcp     *server.MCPServer
	scraper placelist.Scraper
}

// NewServer returns a Server that answers fetch_list with scraper.
func NewServer(scraper placelist.Scraper) *Server {
	s := &Server{
		mcp:     server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false)),
		scraper: scraper,
	}

	s.mcp.AddTool(mcp.NewTool(FetchListTool,
		mcp.WithDescription("Fetch a map list page and return parsed places as "+
			`{"list_description": string|null, "items": [{"name", "rating", "description", "price"}]}.`),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The map list URL to scrape."),
		),
	), s.FetchList)

	return s
}

// FetchList handles a fetch_list call. A blank URL or a failed scrape is
// reported as a tool error; the result is the PlaceList JSON.
func (s *Server) FetchList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := strings.TrimSpace(req.GetString("url", ""))
	if url == "" {
		return mcp.NewToolResultError("url must be a non-empty string"), nil
	}

	list, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		if placelist.ErrorCode(err) == placelist.EINVALID {
			return mcp.NewToolResultError(placelist.ErrorMessage(err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load URL: %v", err)), nil
	}

	b, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

// HandleMessage processes a single JSON-RPC message.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcp.HandleMessage(ctx, message)
}

// ServeStdio serves MCP over newline-delimited JSON-RPC on stdin and
// stdout until ctx is done or stdin is closed.
func (s *Server) ServeStdio(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, stdin, stdout)
}
