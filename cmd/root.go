package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/internal/reportdb"
	"github.com/huangsam/homebase/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profile holds profiling configuration.
var profile = &contract.ProfileConfig{}

// reportManager is the global report store manager instance.
var reportManager contract.ReportManager

// profilePaths names the CPU and heap profile files for the configured prefix.
func profilePaths() (cpuPath, memPath string) {
	return profile.Prefix + ".cpu.prof", profile.Prefix + ".mem.prof"
}

// startProfiling begins CPU profiling when --profile is set.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}
	cpuPath, memPath := profilePaths()
	cpuFile, err := os.Create(cpuPath)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		_ = cpuFile.Close()
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}
	contract.Logger("profile").Infof("Writing CPU profile to %s and heap profile to %s", cpuPath, memPath)
	return nil
}

// stopProfiling flushes the CPU profile and snapshots the heap.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}
	pprof.StopCPUProfile()

	cpuPath, memPath := profilePaths()
	memFile, err := os.Create(memPath)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	contract.Logger("profile").Infof("Profiles written; inspect with 'go tool pprof %s'", cpuPath)
	return nil
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "homebase",
	Short:              "Find the days your movements broke from routine.",
	Long:               `Homebase reads a daily location trace, measures time at home and work, and flags days that stray from your weekday or weekend baseline.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigFile()

	viper.SetEnvPrefix("HOMEBASE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("primary", contract.DefaultPrimary)
	viper.SetDefault("secondary", contract.DefaultSecondary)
	viper.SetDefault("radius", contract.DefaultRadiusMeters)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("report-backend", schema.SQLiteBackend)
	viper.SetDefault("report-db-connect", "")
}

// setConfigFile points viper at --config or the default .homebase.yaml search path.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".homebase")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// loadConfigFile reads the config file if one is present.
func loadConfigFile() error {
	setConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup resolves configuration for a trace command and opens the report store.
func sharedSetup(_ *cobra.Command, args []string) error {
	contract.ProcessProfilingConfig(profile, viper.GetString("profile"))
	if err := startProfiling(); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}

	// Defaults, file, env and flags in increasing precedence.
	if err := loadConfigFile(); err != nil {
		return err
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// The trace path is positional, so viper never sees it.
	input.TracePathStr = ""
	if len(args) == 1 {
		input.TracePathStr = args[0]
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	contract.InitLogging(cfg.LogLevel)

	if err := reportdb.InitStores(cfg.ReportBackend, cfg.ReportDBConnect); err != nil {
		return fmt.Errorf("failed to initialize report store: %w", err)
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetReportManager sets the global report store manager.
func SetReportManager(mgr contract.ReportManager) {
	reportManager = mgr
}

// StopProfiling stops profiling if enabled.
func StopProfiling() error {
	return stopProfiling()
}
