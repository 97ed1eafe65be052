// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/keydevs/keygraph/internal/contract"
)

// NewMCPServer initializes and configures the Keygraph MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.SnapshotManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Keygraph Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_key_developers ---
	s.AddTool(mcp.NewTool("get_key_developers",
		mcp.WithDescription("Rank the key developers of a project per sliding window, based on the developer collaboration graph."),
		mcp.WithString("dataset", mcp.Description("Path to the artifact event dataset (.json or .parquet).")),
		mcp.WithString("ranking", mcp.Description("Centrality strategy (degree, eigenvector). Defaults to 'eigenvector'."), mcp.Enum("degree", "eigenvector")),
		mcp.WithNumber("window", mcp.Description("Window index to analyze. Defaults to the latest window.")),
		mcp.WithBoolean("all_windows", mcp.Description("Return every window instead of a single one.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of developers returned per window.")),
	), h.handleGetKeyDevelopers)

	// --- 2. Tool: get_replacement ---
	s.AddTool(mcp.NewTool("get_replacement",
		mcp.WithDescription("Recommend replacement candidates for a departing developer, ranked by collaboration similarity."),
		mcp.WithString("developer", mcp.Description("The departing developer's id."), mcp.Required()),
		mcp.WithString("dataset", mcp.Description("Path to the artifact event dataset (.json or .parquet).")),
		mcp.WithNumber("window", mcp.Description("Window index to analyze. Defaults to the latest window.")),
	), h.handleGetReplacement)

	// --- 3. Tool: get_knowledge_distribution ---
	s.AddTool(mcp.NewTool("get_knowledge_distribution",
		mcp.WithDescription("Classify each window's contribution distribution as balanced or hero-dominated."),
		mcp.WithString("dataset", mcp.Description("Path to the artifact event dataset (.json or .parquet).")),
		mcp.WithString("classifier", mcp.Description("Shape test to apply (skewness, ks-uniform)."), mcp.Enum("skewness", "ks-uniform")),
		mcp.WithBoolean("all_windows", mcp.Description("Classify every window instead of just the latest.")),
	), h.handleGetKnowledgeDistribution)

	return s
}

// StartMCPServer starts the Keygraph MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.SnapshotManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
