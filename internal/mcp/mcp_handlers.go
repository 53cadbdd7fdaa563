package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/fmtgauge/core"
	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/internal/iocache"
	"github.com/huangsam/fmtgauge/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	cache   contract.AnalysisCache
}

func (h *toolHandler) loadAnalysis(path string) (*schema.Analysis, error) {
	analysis, _, err := iocache.LoadAnalysis(path, h.cache)
	return analysis, err
}

func (h *toolHandler) handleShowAnalysis(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	analysis, err := h.loadAnalysis(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load analysis: %v", err)), nil
	}

	project := request.GetString("project", "")
	if project == "" {
		return jsonResult(analysisSummary(analysis))
	}
	results, ok := analysis.Results[project]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown project %q; analysis has: %v", project, analysis.ProjectNames())), nil
	}

	file := request.GetString("file", "")
	if file == "" {
		return jsonResult(results)
	}
	result, ok := results[file]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("project %q has no result for file %q", project, file)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleCompareAnalyses(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	firstPath := request.GetString("first_path", "")
	secondPath := request.GetString("second_path", "")
	if firstPath == "" || secondPath == "" {
		return mcp.NewToolResultError("first_path and second_path are required"), nil
	}

	first, err := h.loadAnalysis(firstPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load first analysis: %v", err)), nil
	}
	second, err := h.loadAnalysis(secondPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load second analysis: %v", err)), nil
	}

	comparison, err := core.CompareAnalyses(first, second)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(comparison)
}

func (h *toolHandler) handleListFailures(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	analysis, err := h.loadAnalysis(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load analysis: %v", err)), nil
	}

	type failure struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	failures := make(map[string]map[string]failure)
	for _, project := range analysis.ProjectNames() {
		failed := schema.FilterResults(analysis.Results[project], schema.FailedResult)
		if len(failed) == 0 {
			continue
		}
		entries := make(map[string]failure, len(failed))
		for file, result := range failed {
			r := result.(schema.Failed)
			entries[file] = failure{Error: r.Error, Message: r.Message}
		}
		failures[project] = entries
	}
	return jsonResult(failures)
}

func (h *toolHandler) handleListProjects(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(schema.DefaultProjects)
}

// analysisSummary rolls an analysis up into the per-project overview shape.
func analysisSummary(analysis *schema.Analysis) map[string]any {
	projects := make(map[string]any, len(analysis.Projects))
	for _, name := range analysis.ProjectNames() {
		results := analysis.Results[name]
		overall, err := results.Overall()
		if err != nil {
			overall = schema.ResultType("invalid")
		}
		additions, deletions := results.LineChanges()
		projects[name] = map[string]any{
			"overall":   string(overall),
			"files":     len(results),
			"lines":     results.LineCount(),
			"additions": additions,
			"deletions": deletions,
		}
	}
	return map[string]any{
		"projects":          projects,
		"formatter-version": analysis.FormatterVersion(),
		"created-at":        analysis.CreatedAt().Format(contract.DateTimeFormat),
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
