// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/fmtgauge/internal/contract"
)

// NewMCPServer initializes and configures the fmtgauge MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, cache contract.AnalysisCache) *server.MCPServer {
	s := server.NewMCPServer(
		"Fmtgauge Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		cache:   cache,
	}

	// --- 1. Tool: show_analysis ---
	s.AddTool(mcp.NewTool("show_analysis",
		mcp.WithDescription("Inspect a saved formatter analysis: the whole-run summary, one project, or one file's outcome."),
		mcp.WithString("path", mcp.Description("Path to the analysis file (.json or .zip)."), mcp.Required()),
		mcp.WithString("project", mcp.Description("Drill into this project's per-file results.")),
		mcp.WithString("file", mcp.Description("Drill into this file's outcome (requires project).")),
	), h.handleShowAnalysis)

	// --- 2. Tool: compare_analyses ---
	s.AddTool(mcp.NewTool("compare_analyses",
		mcp.WithDescription("Compare two saved analyses and report which projects and files produce different formatting."),
		mcp.WithString("first_path", mcp.Description("Path to the first analysis file."), mcp.Required()),
		mcp.WithString("second_path", mcp.Description("Path to the second analysis file."), mcp.Required()),
	), h.handleCompareAnalyses)

	// --- 3. Tool: list_failures ---
	s.AddTool(mcp.NewTool("list_failures",
		mcp.WithDescription("List every file the formatter failed on in a saved analysis, grouped by project."),
		mcp.WithString("path", mcp.Description("Path to the analysis file."), mcp.Required()),
	), h.handleListFailures)

	// --- 4. Tool: list_projects ---
	s.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List the built-in project registry used when no projects file is given."),
	), h.handleListProjects)

	return s
}

// StartMCPServer starts the fmtgauge MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, cache contract.AnalysisCache) error {
	s := NewMCPServer(baseCfg, cache)
	return server.ServeStdio(s)
}
