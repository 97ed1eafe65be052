package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keydevs/keygraph/core"
	"github.com/keydevs/keygraph/internal/contract"
)

// analyzeCmd runs the full sliding-window analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [dataset]",
	Short: "Rank key developers per sliding window.",
	Long: `Run the full sliding-window pipeline over an artifact event dataset.

Each window's artifact graph is folded into a developer collaboration
graph, developers are ranked by centrality, and the window's knowledge
distribution is classified as balanced or hero-dominated.

Examples:
  # Analyze the latest window with defaults (365d windows, 30d step)
  keygraph analyze events.json

  # Report every window with quarterly steps
  keygraph analyze events.json --all-windows --window-step 90d

  # Rank by weighted degree instead of eigenvector centrality
  keygraph analyze events.json --ranking degree

  # Export findings to CSV for tracking
  keygraph analyze events.json --all-windows --output csv --output-file rankings.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, snapshotManager); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}
