// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/internal/parquet"
	"github.com/huangsam/homebase/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints the per-day report followed by the cohort summary rows.
func (ow *OutWriter) WriteReport(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, BuildJSONReport(report))
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, newCellFormatter(cfg.Precision))
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteReportDir(report, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, report, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// WriteBaselines prints only the cohort baselines.
func (ow *OutWriter) WriteBaselines(report *schema.Report, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, BuildJSONBaselines(report.Baselines))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBaselineCSV(w, report.Baselines, newCellFormatter(cfg.Precision))
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := os.MkdirAll(cfg.OutputFile, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		path := filepath.Join(cfg.OutputFile, parquet.BaselinesFile)
		if err := parquet.WriteBaselineRowsParquet(parquet.FromBaselineRecords(report.BaselineRows("")), path); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", path)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBaselineTable(w, report.Baselines, newCellFormatter(cfg.Precision))
		}, "Wrote table")
	}
}

// WriteClassification prints the label of a single coordinate.
func (ow *OutWriter) WriteClassification(c schema.PointClassification, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, c)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassificationCSV(w, c, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for classify")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%v,%v is %s (%s m from primary, %s m from secondary)\n",
				c.Point.Lat, c.Point.Lon, c.Classification,
				fmtFloat(c.DistancePrimary), fmtFloat(c.DistanceSecondary))
			return err
		}, "Wrote text")
	}
}

// reportHeader lists the report columns in output order.
var reportHeader = func() []string {
	h := []string{"Date"}
	for _, f := range schema.MetricFields {
		h = append(h, f.String())
	}
	return append(h, "DayType", "IsAnomaly", "AnomalyReason")
}()

// dayRow renders one day; label renders the IsAnomaly column.
func dayRow(d schema.DayResult, cells cellFormatter, label func(schema.DayResult) string, reason string) []string {
	row := make([]string, 0, len(reportHeader))
	row = append(row, d.Date)
	row = append(row, cells.metricCells(d.Metrics)...)
	return append(row, string(d.DayType), label(d), reason)
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(w io.Writer, report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	cells := newCellFormatter(cfg.Precision)
	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}
	reasonWidth := getMaxReasonWidth(cfg)

	table := tablewriter.NewWriter(w)
	table.Header(reportHeader)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(report.Days)+len(schema.AllCohorts)*len(statKinds))
	evaluated := 0
	for _, d := range report.Days {
		if d.Evaluated() {
			evaluated++
		}
		data = append(data, dayRow(d, cells, label, contract.TruncateText(d.Reason(), reasonWidth)))
	}
	data = append(data, cells.summaryRows(report.Baselines, len(reportHeader))...)

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d days (%d evaluated, %d anomalies)\n", len(report.Days), evaluated, report.Anomalies()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Report backend: %s\n", duration, cfg.Workers, cfg.ReportBackend); err != nil {
		return err
	}
	return nil
}
