package cmd

import (
	"github.com/huangsam/homebase/core"
	"github.com/huangsam/homebase/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd computes daily metrics and flags anomalous days.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <trace-file>",
	Short: "Compute daily mobility metrics and flag anomalous days.",
	Long: `Read a storyline trace and produce one row per day.

Each row holds the time spent at home, at work and elsewhere, the departure
and return clock times, and the geographic diameter of the day. Days whose
metrics fall outside two standard deviations of the overall baseline are
flagged, and the weekday or weekend baseline is consulted to see whether it
explains the deviation.

The report is saved to the configured report store unless the backend is none.

Examples:
  # Analyze a trace with the default home and work locations
  homebase analyze storyline.json

  # Use custom geofences
  homebase analyze storyline.json --primary 51.5007,-0.1246 --secondary 51.5138,-0.0984 --radius 300

  # Export the report for a spreadsheet
  homebase analyze storyline.json --output csv --output-file report.csv

  # Write Parquet files for DuckDB
  homebase analyze storyline.json --output parquet --output-file report/`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, reportManager); err != nil {
			contract.LogFatal("Cannot run trace analysis", err)
		}
	},
}
