// Package core has the trace analysis pipeline and its command entry points.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/homebase/core/daily"
	"github.com/huangsam/homebase/core/geo"
	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/internal/outwriter"
	"github.com/huangsam/homebase/internal/trace"
	"github.com/huangsam/homebase/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.ReportManager) error

// ExecuteAnalyze runs the full pipeline, saves the report and prints it.
// It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.ReportManager) error {
	start := time.Now()
	report, err := AnalyzeTrace(ctx, cfg)
	if err != nil {
		return err
	}
	RecordReport(report, mgr)
	return outwriter.NewOutWriter().WriteReport(report, cfg, time.Since(start))
}

// ExecuteBaseline runs the full pipeline and prints only the cohort baselines.
func ExecuteBaseline(ctx context.Context, cfg *contract.Config, _ contract.ReportManager) error {
	report, err := AnalyzeTrace(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteBaselines(report, cfg)
}

// ExecuteClassify classifies a single coordinate against the configured geofences.
func ExecuteClassify(cfg *contract.Config, point schema.GeoPoint) error {
	return outwriter.NewOutWriter().WriteClassification(ClassifyLocation(cfg.Fences, point), cfg)
}

// AnalyzeTrace loads the trace named by cfg and analyzes it.
func AnalyzeTrace(ctx context.Context, cfg *contract.Config) (*schema.Report, error) {
	if cfg.TracePath == "" {
		return nil, errors.New("a trace file is required")
	}
	days, err := trace.Load(cfg.TracePath)
	if err != nil {
		return nil, err
	}
	return Analyze(ctx, cfg, days)
}

// AnalyzeTraceQuiet is AnalyzeTrace without the analysis header.
func AnalyzeTraceQuiet(ctx context.Context, cfg *contract.Config) (*schema.Report, error) {
	return AnalyzeTrace(withSuppressHeader(ctx), cfg)
}

// ClassifyLocation labels a coordinate and measures its distance to both centers.
func ClassifyLocation(fences schema.Fences, point schema.GeoPoint) schema.PointClassification {
	return schema.PointClassification{
		Point:             point,
		Classification:    daily.ClassifyPoint(point, fences),
		DistancePrimary:   geo.Distance(point, fences.Primary.Center),
		DistanceSecondary: geo.Distance(point, fences.Secondary.Center),
	}
}
