// Package parquet provides data structures and functions for exporting trace
// reports to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/homebase/schema"
	"github.com/parquet-go/parquet-go"
)

// File names written by WriteReportDir.
const (
	DaysFile      = "days.parquet"
	BaselinesFile = "baselines.parquet"
	RunsFile      = "runs.parquet"
)

// ReportRun represents the metadata of a stored report.
// This struct maps to the homebase_report_runs database table.
type ReportRun struct {
	RunID       string    `parquet:"run_id,snappy"`
	Source      string    `parquet:"source,snappy"`
	GeneratedAt time.Time `parquet:"generated_at,snappy"`
	TotalDays   int32     `parquet:"total_days,snappy"`
	Anomalies   int32     `parquet:"anomalies,snappy"`
}

// DayRow represents the metrics and verdict of one day.
// This struct maps to the homebase_day_rows database table.
type DayRow struct {
	RunID    string `parquet:"run_id,snappy"`
	Position int32  `parquet:"position,snappy"`
	Date     string `parquet:"date,snappy"`
	DayType  string `parquet:"day_type,snappy"`

	// Durations are whole minutes; nil when the day was not evaluated
	TimeAtHome *int32 `parquet:"time_at_home,optional,snappy"`
	TimeAtWork *int32 `parquet:"time_at_work,optional,snappy"`
	TimeOther  *int32 `parquet:"time_other,optional,snappy"`

	// Clock times in HH:MM:SS of the recorded offset
	TimeLeftHome *string `parquet:"time_left_home,optional,snappy"`
	TimeBackHome *string `parquet:"time_back_home,optional,snappy"`

	// Diameters in meters
	GeoDiameterStationary *float64 `parquet:"geo_diameter_stationary,optional,snappy"`
	GeoDiameterAll        *float64 `parquet:"geo_diameter_all,optional,snappy"`

	IsAnomaly     string `parquet:"is_anomaly,snappy"`
	AnomalyReason string `parquet:"anomaly_reason,snappy"`
}

// BaselineRow represents one cohort statistic of one field.
// This struct maps to the homebase_baseline_rows database table.
type BaselineRow struct {
	RunID    string  `parquet:"run_id,snappy"`
	Cohort   string  `parquet:"cohort,snappy"`
	Field    string  `parquet:"field,snappy"`
	Count    int32   `parquet:"count,snappy"`
	Mean     float64 `parquet:"mean,snappy"`
	StdDev   float64 `parquet:"std_dev,snappy"`
	Variance float64 `parquet:"variance,snappy"`
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDayRowsParquet writes a slice of DayRow structs to a Parquet file.
func WriteDayRowsParquet(data []DayRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteBaselineRowsParquet writes a slice of BaselineRow structs to a Parquet file.
func WriteBaselineRowsParquet(data []BaselineRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteReportDir writes the day and baseline tables of a report into dir,
// creating it if needed.
func WriteReportDir(report *schema.Report, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := WriteDayRowsParquet(FromDayRecords(report.DayRows("")), filepath.Join(dir, DaysFile)); err != nil {
		return err
	}
	return WriteBaselineRowsParquet(FromBaselineRecords(report.BaselineRows("")), filepath.Join(dir, BaselinesFile))
}

// FromDayRecords converts stored day records to Parquet rows.
func FromDayRecords(records []schema.DayRowRecord) []DayRow {
	rows := make([]DayRow, len(records))
	for i, r := range records {
		rows[i] = DayRow{
			RunID:                 r.RunID,
			Position:              r.Position,
			Date:                  r.Date,
			DayType:               r.DayType,
			TimeAtHome:            r.TimeAtHome,
			TimeAtWork:            r.TimeAtWork,
			TimeOther:             r.TimeOther,
			TimeLeftHome:          r.TimeLeftHome,
			TimeBackHome:          r.TimeBackHome,
			GeoDiameterStationary: r.GeoDiameterStationary,
			GeoDiameterAll:        r.GeoDiameterAll,
			IsAnomaly:             r.IsAnomaly,
			AnomalyReason:         r.AnomalyReason,
		}
	}
	return rows
}

// FromBaselineRecords converts stored baseline records to Parquet rows.
func FromBaselineRecords(records []schema.BaselineRowRecord) []BaselineRow {
	rows := make([]BaselineRow, len(records))
	for i, r := range records {
		rows[i] = BaselineRow(r)
	}
	return rows
}

// FromStatus returns the run row of a store status, or nothing when the
// store holds no report.
func FromStatus(status schema.ReportStatus) []ReportRun {
	if !status.HasReport {
		return []ReportRun{}
	}
	return []ReportRun{{
		RunID:       status.RunID,
		Source:      status.Source,
		GeneratedAt: status.GeneratedAt,
		TotalDays:   int32(status.TotalDays),
		Anomalies:   int32(status.Anomalies),
	}}
}

func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
