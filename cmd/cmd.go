// Package cmd defines the command-line interface for keygraph.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(distributionCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the snapshot subcommands to the parent snapshot command
	snapshotCmd.AddCommand(snapshotStatusCmd)
	snapshotCmd.AddCommand(snapshotClearCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("window-width", contract.DefaultWindowWidth, "Window width as a duration (e.g. 365d, 26w, 6m)")
	rootCmd.PersistentFlags().String("window-step", contract.DefaultWindowStep, "Window step as a duration (e.g. 30d, 1w)")
	rootCmd.PersistentFlags().String("selection", string(schema.TopKSelection), "Key developer selection policy: topk or threshold")
	rootCmd.PersistentFlags().IntP("top-k", "k", contract.DefaultTopK, "Number of key developers to select (0 = all)")
	rootCmd.PersistentFlags().Float64("threshold", contract.DefaultThreshold, "Selection threshold as a fraction of the max score")
	rootCmd.PersistentFlags().String("ranking", string(schema.EigenvectorRanking), "Centrality strategy: degree or eigenvector")
	rootCmd.PersistentFlags().Float64("decay-floor", contract.DefaultDecayFloor, "Recency decay floor in (0, 1]; 1 disables decay")
	rootCmd.PersistentFlags().Int("max-links", contract.DefaultMaxLinks, "Skip events linking more artifacts than this")
	rootCmd.PersistentFlags().String("classifier", string(schema.SkewnessClassifier), "Distribution shape test: skewness or ks-uniform")
	rootCmd.PersistentFlags().Float64("alpha", contract.DefaultAlpha, "Significance level for the shape test")
	rootCmd.PersistentFlags().Int("min-sample", contract.DefaultMinSample, "Minimum developers per window to classify")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("all-windows", false, "Report every window instead of just the latest")
	rootCmd.PersistentFlags().IntP("window", "w", -1, "Window index to report (-1 = latest)")
	rootCmd.PersistentFlags().String("snapshot-backend", string(schema.SQLiteBackend), "Snapshot backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("snapshot-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("table-width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of replaceCmd to Viper
	replaceCmd.Flags().StringP("developer", "d", "", "The departing developer's id")
	if err := viper.BindPFlags(replaceCmd.Flags()); err != nil {
		contract.LogFatal("Error binding replace flags", err)
	}

	// Bind all flags of snapshotMigrateCmd to Viper
	snapshotMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(snapshotMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshot migrate flags", err)
	}
}
