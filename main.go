// Package main is the entry point for the homebase CLI.
package main

import (
	"github.com/huangsam/homebase/cmd"
	"github.com/huangsam/homebase/internal/contract"
	"github.com/huangsam/homebase/internal/reportdb"
)

func main() {
	defer reportdb.CloseStores()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	cmd.SetReportManager(reportdb.Manager)
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
