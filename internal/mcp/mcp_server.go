// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/homebase/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the homebase MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.ReportManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Homebase Trace Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	fenceOptions := []mcp.ToolOption{
		mcp.WithString("primary", mcp.Description("Home geofence center as 'lat,lon'. Defaults to the configured value.")),
		mcp.WithString("secondary", mcp.Description("Work geofence center as 'lat,lon'. Defaults to the configured value.")),
		mcp.WithNumber("radius", mcp.Description("Geofence radius in meters. Defaults to the configured value.")),
	}

	// --- 1. Tool: analyze_trace ---
	s.AddTool(mcp.NewTool("analyze_trace", append([]mcp.ToolOption{
		mcp.WithDescription("Compute daily mobility metrics for a location trace and flag anomalous days."),
		mcp.WithString("trace_path", mcp.Description("Path to the storyline JSON trace (defaults to the configured trace).")),
		mcp.WithBoolean("save", mcp.Description("Save the report to the configured report store.")),
	}, fenceOptions...)...), h.handleAnalyzeTrace)

	// --- 2. Tool: get_baselines ---
	s.AddTool(mcp.NewTool("get_baselines", append([]mcp.ToolOption{
		mcp.WithDescription("Compute the Overall, Weekday and Weekend baselines of a location trace."),
		mcp.WithString("trace_path", mcp.Description("Path to the storyline JSON trace (defaults to the configured trace).")),
	}, fenceOptions...)...), h.handleGetBaselines)

	// --- 3. Tool: classify_location ---
	s.AddTool(mcp.NewTool("classify_location", append([]mcp.ToolOption{
		mcp.WithDescription("Classify a coordinate as Home, Work or Other and report its distance to both centers."),
		mcp.WithNumber("lat", mcp.Description("Latitude in decimal degrees."), mcp.Required()),
		mcp.WithNumber("lon", mcp.Description("Longitude in decimal degrees."), mcp.Required()),
	}, fenceOptions...)...), h.handleClassifyLocation)

	return s
}

// StartMCPServer starts the homebase MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.ReportManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
