package cmd

import (
	"github.com/huangsam/homebase/core"
	"github.com/huangsam/homebase/internal/contract"
	"github.com/spf13/cobra"
)

// baselineCmd prints the cohort baselines of a trace.
var baselineCmd = &cobra.Command{
	Use:   "baseline <trace-file>",
	Short: "Show the Overall, Weekday and Weekend baselines of a trace.",
	Long: `Compute the mean, standard deviation and variance of every daily metric
for all days, weekdays only and weekend days only.

Clock fields are reported as H:MM:SS. Their variance is in seconds squared.

Examples:
  # Show the baselines as a table
  homebase baseline storyline.json

  # Export them as JSON
  homebase baseline storyline.json --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBaseline(rootCtx, cfg, reportManager); err != nil {
			contract.LogFatal("Cannot compute baselines", err)
		}
	},
}
