package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keydevs/keygraph/core"
	"github.com/keydevs/keygraph/internal/contract"
)

// windowsCmd shows the window plan without running graph analysis.
var windowsCmd = &cobra.Command{
	Use:   "windows [dataset]",
	Short: "Show the window plan for a dataset.",
	Long: `Print the sliding windows that the configured width and step produce
over a dataset, with per-window event counts.

Useful for checking window parameters before a long analysis run:
overlapping windows (step smaller than width) smooth rankings across
time, while disjoint windows keep periods independent.

Examples:
  # Show the default plan (365d windows, 30d step)
  keygraph windows events.json

  # Check a weekly cadence
  keygraph windows events.json --window-width 90d --window-step 7d`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWindows(rootCtx, cfg, snapshotManager); err != nil {
			contract.LogFatal("Cannot plan windows", err)
		}
	},
}
