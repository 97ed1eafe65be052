package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keydevs/keygraph/core"
	"github.com/keydevs/keygraph/internal/contract"
)

// distributionCmd classifies knowledge distribution per window.
var distributionCmd = &cobra.Command{
	Use:   "distribution [dataset]",
	Short: "Classify knowledge distribution per window.",
	Long: `Label each window's contribution-weight distribution as balanced or
hero-dominated.

A hero window means a small set of developers holds a disproportionate
share of the collaboration weight, which is a bus-factor risk signal.
Windows with too few developers are labeled insufficient_data rather
than guessed at.

Examples:
  # Classify the latest window with the skewness test
  keygraph distribution events.json

  # Classify every window with the KS uniformity test
  keygraph distribution events.json --all-windows --classifier ks-uniform`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDistribution(rootCtx, cfg, snapshotManager); err != nil {
			contract.LogFatal("Cannot run distribution analysis", err)
		}
	},
}
