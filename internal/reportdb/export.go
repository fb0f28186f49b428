package reportdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/internal/parquet"
)

// ExecuteReportExport exports the report held by the global manager.
func ExecuteReportExport(outputDir string) error {
	return ExportReport(Manager.GetReportStore(), outputDir)
}

// ExportReport writes the stored run, days and baselines of a report as
// Parquet files inside outputDir.
func ExportReport(store contract.ReportStore, outputDir string) error {
	if outputDir == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("report store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get report status: %w", err)
	}
	if !status.HasReport {
		return errors.New("no report data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Report run: %s (%d days, %d anomalies)\n", status.RunID, status.TotalDays, status.Anomalies)

	days, err := store.LoadDayRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve day rows: %w", err)
	}
	baselines, err := store.LoadBaselineRows()
	if err != nil {
		return fmt.Errorf("failed to retrieve baseline rows: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	runs := parquet.FromStatus(status)
	runsFile := filepath.Join(outputDir, parquet.RunsFile)
	if err := parquet.WriteReportRunsParquet(runs, runsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	fmt.Printf("Exported %d report runs to: %s\n", len(runs), runsFile)

	dayRows := parquet.FromDayRecords(days)
	daysFile := filepath.Join(outputDir, parquet.DaysFile)
	if err := parquet.WriteDayRowsParquet(dayRows, daysFile); err != nil {
		return fmt.Errorf("failed to write day rows: %w", err)
	}
	fmt.Printf("Exported %d days to: %s\n", len(dayRows), daysFile)

	baselineRows := parquet.FromBaselineRecords(baselines)
	baselinesFile := filepath.Join(outputDir, parquet.BaselinesFile)
	if err := parquet.WriteBaselineRowsParquet(baselineRows, baselinesFile); err != nil {
		return fmt.Errorf("failed to write baseline rows: %w", err)
	}
	fmt.Printf("Exported %d baseline statistics to: %s\n", len(baselineRows), baselinesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
