package core

import (
	"context"
	"sync"

	"github.com/huangsam/homebase/core/anomaly"
	"github.com/huangsam/homebase/core/cohort"
	"github.com/huangsam/homebase/core/daily"
	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/schema"
	"github.com/sirupsen/logrus"
)

var log = contract.Logger("core")

// Analyze runs the metrics engine over every day, builds the cohort
// baselines, then scores each day against them. Days keep their input order.
// Identical input yields an identical report.
func Analyze(ctx context.Context, cfg *contract.Config, days []schema.Day) (*schema.Report, error) {
	if !shouldSuppressHeader(ctx) {
		log.WithFields(logrus.Fields{
			"trace":   cfg.TracePath,
			"days":    len(days),
			"workers": cfg.Workers,
		}).Info("Analyzing trace")
	}

	// --- 1. Daily metrics ---
	results, err := computeDays(ctx, cfg, days)
	if err != nil {
		return nil, err
	}

	// --- 2. Cohort baselines ---
	baselines := cohort.Aggregate(results)

	// --- 3. Anomaly verdicts ---
	anomaly.EvaluateAll(results, baselines)

	return &schema.Report{
		Source:    cfg.TracePath,
		Days:      results,
		Baselines: baselines,
	}, nil
}

// computeDays processes all days in parallel using a worker pool.
// It spawns cfg.Workers goroutines and each writes into the slot of its day.
func computeDays(ctx context.Context, cfg *contract.Config, days []schema.Day) ([]schema.DayResult, error) {
	results := make([]schema.DayResult, len(days))
	indexCh := make(chan int, len(days))
	var wg sync.WaitGroup

	for range max(cfg.Workers, 1) {
		wg.Go(func() {
			for i := range indexCh {
				if ctx.Err() != nil {
					continue
				}
				results[i] = computeDay(cfg, days[i])
			}
		})
	}

	for i := range days {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// computeDay derives the day type and metrics of one day. Failures are kept
// on the result so the day still appears in the report.
func computeDay(cfg *contract.Config, day schema.Day) schema.DayResult {
	result := schema.DayResult{Date: day.Date}
	entry := log.WithField("date", day.Date)

	date, err := schema.ParseDate(day.Date)
	if err != nil {
		result.Err = err
		entry.WithError(err).Warn("Skipping day with malformed date")
		return result
	}
	result.DayType = schema.DayTypeOf(date)

	if !day.HasTrace() {
		entry.Debug("No trace recorded")
		return result
	}

	metrics, err := daily.Compute(day, cfg.Fences)
	if err != nil {
		result.Err = err
		entry.WithError(err).Warn("Skipping day with invalid trace")
		return result
	}
	result.Metrics = &metrics
	return result
}

// RecordReport saves the report when a report store is configured.
// Storage failures are logged and do not fail the run.
func RecordReport(report *schema.Report, mgr contract.ReportManager) {
	if mgr == nil {
		return
	}
	store := mgr.GetReportStore()
	if store == nil {
		return
	}
	runID, err := store.SaveReport(report)
	if err != nil {
		contract.LogWarn("Failed to save report", err)
		return
	}
	log.WithField("run_id", runID).Debug("Saved report")
}
