package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keydevs/keygraph/core"
	"github.com/keydevs/keygraph/internal/contract"
)

// replaceCmd recommends substitutes for a departing developer.
var replaceCmd = &cobra.Command{
	Use:   "replace [dataset]",
	Short: "Recommend replacements for a departing developer.",
	Long: `Rank the remaining developers as substitutes for a departing developer
in the selected window.

The similarity score combines direct collaboration weight with the
overlap of the two developers' collaboration neighborhoods, so the top
candidates are the ones already closest to the departing developer's
work.

Examples:
  # Replacement candidates in the latest window
  keygraph replace events.json --developer alice

  # The same question asked of an earlier window
  keygraph replace events.json --developer alice --window 3`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReplace(rootCtx, cfg, snapshotManager); err != nil {
			contract.LogFatal("Cannot run replacement analysis", err)
		}
	},
}
