package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/homebase/core"
	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/internal/outwriter"
	"github.com/huangsam/homebase/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.ReportManager
}

// configFor applies the trace and fence arguments of a request to a copy of
// the base config.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("trace_path", ""); p != "" {
		if err := contract.RevalidateTrace(cfg, p); err != nil {
			return nil, err
		}
	}
	if cfg.TracePath == "" {
		return nil, fmt.Errorf("trace_path is required")
	}
	err := contract.RevalidateFences(cfg,
		request.GetString("primary", ""),
		request.GetString("secondary", ""),
		request.GetFloat("radius", 0))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (h *toolHandler) handleAnalyzeTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.AnalyzeTraceQuiet(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if request.GetBool("save", false) {
		core.RecordReport(report, h.mgr)
	}

	jsonData, _ := json.MarshalIndent(outwriter.BuildJSONReport(report), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBaselines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.AnalyzeTraceQuiet(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(outwriter.BuildJSONBaselines(report.Baselines), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyLocation(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateFences(cfg,
		request.GetString("primary", ""),
		request.GetString("secondary", ""),
		request.GetFloat("radius", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	lat, err := request.RequireFloat("lat")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lon, err := request.RequireFloat("lon")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	point := schema.GeoPoint{Lat: lat, Lon: lon}
	if err := contract.ValidateGeoPoint(point); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid coordinate: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(core.ClassifyLocation(cfg.Fences, point), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
