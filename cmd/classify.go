package cmd

import (
	"fmt"

	"github.com/huangsam/homebase/core"
	"github.com/huangsam/homebase/internal/contract"
	"github.com/spf13/cobra"
)

// classifyCmd labels a single coordinate.
var classifyCmd = &cobra.Command{
	Use:   "classify <lat,lon>",
	Short: "Classify a coordinate as Home, Work or Other.",
	Long: `Check a coordinate against the home and work geofences and print the
distance to each center in meters.

Home is checked before Work, so a point inside both fences is Home.

Examples:
  # Classify a point with the default geofences
  homebase classify 40.7255,-74.0710

  # Negative latitudes need -- to stop flag parsing
  homebase classify -- -33.8568,151.2153`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The argument is a coordinate, not a trace path.
		return sharedSetup(cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		point, err := contract.ParseGeoPoint(args[0])
		if err != nil {
			contract.LogFatal("Invalid coordinate", fmt.Errorf("classify: %w", err))
		}
		if err := core.ExecuteClassify(cfg, point); err != nil {
			contract.LogFatal("Cannot classify coordinate", err)
		}
	},
}
