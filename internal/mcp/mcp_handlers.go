package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/keydevs/keygraph/core"
	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.SnapshotManager
}

func (h *toolHandler) handleGetKeyDevelopers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("dataset", ""); d != "" {
		cfg.DatasetPath = d
	}
	if r := request.GetString("ranking", ""); r != "" {
		cfg.Ranking = schema.RankingStrategy(r)
	}
	if w := request.GetInt("window", -1); w >= 0 {
		cfg.WindowIndex = w
	}
	cfg.AllWindows = request.GetBool("all_windows", cfg.AllWindows)
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	results, err := core.GetKeyDeveloperResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	for i := range results {
		if cfg.ResultLimit > 0 && len(results[i].KeyDevelopers.Ranking) > cfg.ResultLimit {
			results[i].KeyDevelopers.Ranking = results[i].KeyDevelopers.Ranking[:cfg.ResultLimit]
		}
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetReplacement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Developer = request.GetString("developer", "")
	if d := request.GetString("dataset", ""); d != "" {
		cfg.DatasetPath = d
	}
	if w := request.GetInt("window", -1); w >= 0 {
		cfg.WindowIndex = w
	}

	rec, err := core.GetReplacementResult(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("replacement analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetKnowledgeDistribution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("dataset", ""); d != "" {
		cfg.DatasetPath = d
	}
	if c := request.GetString("classifier", ""); c != "" {
		cfg.Classifier = schema.ClassifierName(c)
	}
	cfg.AllWindows = request.GetBool("all_windows", cfg.AllWindows)

	results, err := core.GetDistributionResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("distribution analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
