package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/internal/reportdb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadReportConfig reads the report store settings into cfg.
func loadReportConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseBackend(viper.GetString("report-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("report-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.ReportBackend = backend
	cfg.ReportDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// reportSetup loads minimal configuration and opens the report store.
// Report commands do not need a trace or geofences.
func reportSetup(_ *cobra.Command, _ []string) error {
	if err := loadReportConfig(); err != nil {
		return err
	}
	if err := reportdb.InitStores(cfg.ReportBackend, cfg.ReportDBConnect); err != nil {
		return fmt.Errorf("failed to initialize report store: %w", err)
	}
	return nil
}

// reportMigrateSetup loads configuration without opening the store, so
// migrations run against a database that has no tables yet.
func reportMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadReportConfig(); err != nil {
		return err
	}
	if cfg.ReportDBConnect == "" {
		cfg.ReportDBConnect = reportdb.GetDBFilePath()
	}
	return nil
}

// reportCmd manages the persisted report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage the saved analysis report",
	Long: `Manage the report saved by the most recent analyze run.

The store keeps exactly one report. Every analyze run replaces it with:
- Run metadata (run id, trace path, timestamp, day and anomaly counts)
- One row per day with its metrics and anomaly verdict
- The Overall, Weekday and Weekend baseline statistics

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show the saved report and table sizes
  export  - Export the saved report to Parquet
  clear   - Remove the saved report
  migrate - Run database schema migrations

Examples:
  # Check what is stored
  homebase report status

  # Export for analysis in pandas/DuckDB
  homebase report export --output-file report-data`,
}

// reportStatusCmd shows report store status.
var reportStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the saved report and connection details",
	Long: `Show the backend, connection health, the saved run and the size of every
report table.

Examples:
  homebase report status
  homebase report status --report-backend postgresql --report-db-connect "host=localhost dbname=homebase"`,
	PreRunE: reportSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := reportdb.Manager.GetReportStore()
		if store == nil {
			contract.LogFatal("Failed to get report status", errors.New("report store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get report status", err)
		}
		reportdb.PrintReportStatus(os.Stdout, status)
	},
}

// reportClearCmd clears the saved report.
var reportClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved report",
	Long: `Delete the saved report. For SQLite the database file is removed. For
MySQL and PostgreSQL the report tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  homebase report export --output-file backup
  homebase report clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadReportConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbPath := cfg.ReportDBConnect
		if dbPath == "" {
			dbPath = reportdb.GetDBFilePath()
		}
		if err := reportdb.ClearReport(cfg.ReportBackend, dbPath, cfg.ReportDBConnect); err != nil {
			contract.LogFatal("Failed to clear report data", err)
		}
		fmt.Println("Report data cleared successfully.")
	},
}

// reportExportCmd exports the saved report to Parquet files.
var reportExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved report to Parquet",
	Long: `Export the saved report to Parquet files inside the --output-file directory:
- runs.parquet - run metadata
- days.parquet - one row per day
- baselines.parquet - one row per cohort and metric

Requires: --output-file parameter

Examples:
  homebase report export --output-file report-data
  duckdb -c "SELECT * FROM read_parquet('report-data/days.parquet') WHERE is_anomaly = 'Yes'"`,
	PreRunE: reportSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := reportdb.ExecuteReportExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export report data", err)
		}
	},
}

// reportMigrateCmd runs database migrations for the report store.
var reportMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the report store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  homebase report migrate

  # Migrate to specific version
  homebase report migrate --target-version 2

  # Roll back every migration
  homebase report migrate --target-version 0`,
	PreRunE: reportMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := reportdb.MigrateReport(cfg.ReportBackend, cfg.ReportDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
