package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/branflake2267/docs-sub001/core"
	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// CategorySummary is one row of the diff_summary result.
type CategorySummary struct {
	Category string `json:"category"`
	schema.Counts
}

// SummaryResult is the diff_summary result.
type SummaryResult struct {
	OldVersion string            `json:"old_version"`
	NewVersion string            `json:"new_version"`
	Excluded   []schema.Bucket   `json:"excluded_buckets"`
	Categories []CategorySummary `json:"categories"`
	Warnings   int               `json:"warnings"`
}

// requestConfig derives a run config from the base config and the tool arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateCorpora(cfg,
		request.GetString("old_path", ""),
		request.GetString("new_path", ""),
		request.GetString("old_version", ""),
		request.GetString("new_version", ""))
	if err != nil {
		return nil, err
	}
	if b := request.GetString("exclude_buckets", ""); b != "" {
		if err := contract.RevalidateExcludeBuckets(cfg, b); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (h *toolHandler) handleDiffCorpora(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid diff parameters: %v", err)), nil
	}

	report, err := core.GetDiffReport(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diff failed: %v", err)), nil
	}

	visible := core.VisibleReport(report, cfg.ExcludeBuckets)
	jsonData, _ := json.MarshalIndent(visible, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDiffSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid diff parameters: %v", err)), nil
	}

	report, err := core.GetDiffReport(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("diff failed: %v", err)), nil
	}

	result := SummaryResult{
		OldVersion: report.OldVersion,
		NewVersion: report.NewVersion,
		Excluded:   cfg.ExcludeBuckets,
		Warnings:   len(report.Warnings),
	}
	for _, category := range report.Summary.Categories {
		result.Categories = append(result.Categories, CategorySummary{
			Category: category,
			Counts:   report.Summary.Visible(category, cfg.ExcludeBuckets),
		})
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
