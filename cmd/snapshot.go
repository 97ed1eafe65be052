package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/internal/snapshot"
	"github.com/keydevs/keygraph/schema"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need store access without full shared setup,
// which would demand a dataset argument.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.StoreBackend(viper.GetString("snapshot-backend"))
	if !schema.ValidStoreBackend(backend) {
		return contract.NewConfigurationError("snapshot-backend", "must be sqlite, mysql, postgresql or none")
	}
	connStr := viper.GetString("snapshot-db-connect")

	if err := snapshot.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr
	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotCmd groups snapshot store management commands.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage stored per-window analysis results",
	Long: `Manage the snapshot store that persists per-window analysis results.

Every analysis run records its window results as serialized blobs keyed
by run and window id, so past runs can be inspected and exported without
re-running the pipeline.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored run data
  export  - Export stored runs to Parquet files
  migrate - Run schema migrations

Examples:
  # Check store status
  keygraph snapshot status

  # Export all runs for warehouse analysis
  keygraph snapshot export --output-file keygraph_data`,
}

// snapshotStatusCmd shows snapshot store status.
var snapshotStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display snapshot store statistics and connection details",
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := snapshot.Manager.GetSnapshotStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		snapshot.PrintStatus(status)
	},
}

// snapshotClearCmd clears the snapshot store.
var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored run data",
	Long: `Delete all stored runs and window results from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Deletes the stored rows

Examples:
  # Clear the default SQLite store
  keygraph snapshot clear

  # Clear a MySQL store (set connection string via env variable)
  KEYGRAPH_SNAPSHOT_BACKEND=mysql KEYGRAPH_SNAPSHOT_DB_CONNECT="..." keygraph snapshot clear`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapshot.ClearStore(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshot store", err)
		}
		fmt.Println("Snapshot store cleared successfully.")
	},
}

// snapshotExportCmd exports stored runs to Parquet.
var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored run data to Parquet files",
	Long: `Export all stored runs to Parquet files: one file of run metadata and
one of flattened per-developer window scores.

The Parquet files can be used with Apache Spark, Pandas (via pyarrow),
DuckDB, or any other Parquet-compatible tool.

Examples:
  # Export to keygraph_data.runs.parquet and keygraph_data.developer_scores.parquet
  keygraph snapshot export --output-file keygraph_data`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapshot.ExecuteExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export snapshot data", err)
		}
	},
}

// snapshotMigrateCmd runs schema migrations for the snapshot store.
var snapshotMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations for the snapshot store",
	Long: `Apply or roll back schema migrations on the snapshot database.

Examples:
  # Migrate to the latest version
  keygraph snapshot migrate

  # Roll back everything
  keygraph snapshot migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations open their own connection; skip store initialization.
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.StoreBackend(viper.GetString("snapshot-backend"))
		connStr := viper.GetString("snapshot-db-connect")
		targetVersion := viper.GetInt("target-version")
		if err := snapshot.Migrate(backend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
