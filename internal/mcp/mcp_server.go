// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the docdiff MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"API Doc Diff Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: diff_corpora ---
	s.AddTool(mcp.NewTool("diff_corpora",
		mcp.WithDescription("Compare two API documentation corpora and return the full change report as JSON."),
		mcp.WithString("old_path", mcp.Description("Path to the older corpus document."), mcp.Required()),
		mcp.WithString("new_path", mcp.Description("Path to the newer corpus document."), mcp.Required()),
		mcp.WithString("old_version", mcp.Description("Version label of the older corpus (defaults to the file name).")),
		mcp.WithString("new_version", mcp.Description("Version label of the newer corpus (defaults to the file name).")),
		mcp.WithString("exclude_buckets", mcp.Description("Comma-separated buckets to hide from the report (e.g. 'private,deprecated').")),
	), h.handleDiffCorpora)

	// --- 2. Tool: diff_summary ---
	s.AddTool(mcp.NewTool("diff_summary",
		mcp.WithDescription("Compare two API documentation corpora and return visible change counts per category."),
		mcp.WithString("old_path", mcp.Description("Path to the older corpus document."), mcp.Required()),
		mcp.WithString("new_path", mcp.Description("Path to the newer corpus document."), mcp.Required()),
		mcp.WithString("old_version", mcp.Description("Version label of the older corpus.")),
		mcp.WithString("new_version", mcp.Description("Version label of the newer corpus.")),
		mcp.WithString("exclude_buckets", mcp.Description("Comma-separated buckets to subtract from the counts.")),
	), h.handleDiffSummary)

	return s
}

// StartMCPServer starts the docdiff MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
