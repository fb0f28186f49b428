// Package cmd defines the command-line interface for homebase.
package cmd

import (
	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the report subcommands to the parent report command
	reportCmd.AddCommand(reportStatusCmd)
	reportCmd.AddCommand(reportClearCmd)
	reportCmd.AddCommand(reportExportCmd)
	reportCmd.AddCommand(reportMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("primary", contract.DefaultPrimary, "Home geofence center as lat,lon")
	rootCmd.PersistentFlags().String("secondary", contract.DefaultSecondary, "Work geofence center as lat,lon")
	rootCmd.PersistentFlags().Float64("radius", contract.DefaultRadiusMeters, "Geofence radius in meters")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to (a directory for parquet)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("report-backend", string(schema.SQLiteBackend), "Report store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("report-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportMigrateCmd to Viper
	reportMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 = latest, 0 = roll back all)")
	if err := viper.BindPFlags(reportMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
