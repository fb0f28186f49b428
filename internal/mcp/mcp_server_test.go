package mcp_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/huangsam/homebase/internal/contract"
	mcp_internal "github.com/huangsam/homebase/internal/mcp"
	"github.com/huangsam/homebase/internal/reportdb"
	"github.com/huangsam/homebase/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTrace = filepath.Join("..", "trace", "testdata", "storyline.json")

func baseConfig() *contract.Config {
	return &contract.Config{
		Fences: schema.Fences{
			Primary:   schema.Geofence{Center: schema.GeoPoint{Lat: 40.72539, Lon: -74.07099}, RadiusMeters: 500},
			Secondary: schema.Geofence{Center: schema.GeoPoint{Lat: 40.74096, Lon: -74.00212}, RadiusMeters: 500},
		},
		Workers:   2,
		Precision: 1,
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)

	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"analyze_trace without trace", "analyze_trace", map[string]any{}, "trace_path is required"},
		{"analyze_trace missing file", "analyze_trace", map[string]any{"trace_path": "does/not/exist.json"}, "trace file not found"},
		{"get_baselines bad primary", "get_baselines", map[string]any{"trace_path": testTrace, "primary": "north"}, "invalid --primary"},
		{"get_baselines bad radius", "get_baselines", map[string]any{"trace_path": testTrace, "radius": -1.0}, "radius must be greater than 0"},
		{"classify_location missing lat", "classify_location", map[string]any{"lon": -74.0}, "lat"},
		{"classify_location out of range", "classify_location", map[string]any{"lat": 123.0, "lon": -74.0}, "latitude must be within"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestMCPServerHandlers_AnalyzeTrace(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)

	res := callTool(t, s, "analyze_trace", map[string]any{"trace_path": testTrace})
	require.False(t, res.IsError, resultText(t, res))

	var report struct {
		Days []struct {
			Date          string `json:"date"`
			AnomalyReason string `json:"anomaly_reason"`
		} `json:"days"`
		Baselines []json.RawMessage `json:"baselines"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	require.Len(t, report.Days, 3)
	assert.Equal(t, "20130315", report.Days[0].Date)
	assert.Equal(t, "No trace", report.Days[1].AnomalyReason)
	assert.Len(t, report.Baselines, len(schema.AllCohorts))
}

func TestMCPServerHandlers_AnalyzeTraceSaves(t *testing.T) {
	store := &reportdb.MockReportStore{}
	store.On("SaveReport", mock.AnythingOfType("*schema.Report")).Return("run-1", nil).Once()
	mgr := &reportdb.MockReportManager{}
	mgr.On("GetReportStore").Return(store)

	s := mcp_internal.NewMCPServer(baseConfig(), mgr)
	res := callTool(t, s, "analyze_trace", map[string]any{"trace_path": testTrace, "save": true})
	require.False(t, res.IsError, resultText(t, res))
	store.AssertExpectations(t)
}

func TestMCPServerHandlers_GetBaselines(t *testing.T) {
	cfg := baseConfig()
	require.NoError(t, contract.RevalidateTrace(cfg, testTrace))
	s := mcp_internal.NewMCPServer(cfg, nil)

	res := callTool(t, s, "get_baselines", map[string]any{})
	require.False(t, res.IsError, resultText(t, res))

	var baselines []struct {
		Cohort string `json:"cohort"`
		Days   int    `json:"days"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &baselines))
	require.Len(t, baselines, 3)
	assert.Equal(t, 1, baselines[0].Days)
}

func TestMCPServerHandlers_ClassifyLocation(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)

	tests := []struct {
		name string
		args map[string]any
		want schema.Classification
	}{
		{"home", map[string]any{"lat": 40.72539, "lon": -74.07099}, schema.Home},
		{"work", map[string]any{"lat": 40.74096, "lon": -74.00212}, schema.Work},
		{"other", map[string]any{"lat": 40.78, "lon": -73.96}, schema.Other},
		{"moved fence", map[string]any{"lat": 40.78, "lon": -73.96, "secondary": "40.78,-73.96"}, schema.Work},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, "classify_location", tt.args)
			require.False(t, res.IsError, resultText(t, res))

			var got schema.PointClassification
			require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
			assert.Equal(t, tt.want, got.Classification)
		})
	}
}
