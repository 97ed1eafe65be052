// Package parquet provides data structures and functions for exporting
// keygraph run data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/keydevs/keygraph/schema"
)

// RunExport represents one analysis run with metadata. This struct maps to
// the keygraph_runs database table.
type RunExport struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// TotalWindows is the number of windows the run produced
	TotalWindows int32 `parquet:"total_windows,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// DeveloperScoreExport is one ranked developer in one window, flattened for
// warehouse-friendly analysis across runs.
type DeveloperScoreExport struct {
	// RunID references the parent analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// WindowID is the window index within the run
	WindowID int32 `parquet:"window_id,snappy"`

	// WindowStart and WindowEnd bound the half-open window interval
	WindowStart time.Time `parquet:"window_start,snappy"`
	WindowEnd   time.Time `parquet:"window_end,snappy"`

	// DeveloperID identifies the developer
	DeveloperID string `parquet:"developer_id,snappy"`

	// Score is the developer's centrality score in this window
	Score float64 `parquet:"score,snappy"`

	// Rank is the developer's 1-based position in the window ranking
	Rank int32 `parquet:"rank,snappy"`

	// DistributionLabel is the window's knowledge distribution label
	DistributionLabel string `parquet:"distribution_label,snappy"`
}

// WriteRunsParquet writes a slice of RunExport structs to a Parquet file.
func WriteRunsParquet(data []RunExport, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the RunExport struct tags
	writer := parquet.NewGenericWriter[RunExport](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteDeveloperScoresParquet writes a slice of DeveloperScoreExport structs
// to a Parquet file.
func WriteDeveloperScoresParquet(data []DeveloperScoreExport, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the DeveloperScoreExport struct tags
	writer := parquet.NewGenericWriter[DeveloperScoreExport](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to RunExport for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RunExport {
	result := make([]RunExport, len(records))
	for i, record := range records {
		var params *string
		if record.ConfigParams != "" {
			p := record.ConfigParams
			params = &p
		}
		result[i] = RunExport{
			RunID:        record.RunID,
			StartTime:    record.StartTime,
			EndTime:      record.EndTime,
			TotalWindows: int32(record.TotalWindows),
			ConfigParams: params,
		}
	}
	return result
}

// FlattenWindowResults explodes per-window rankings into one row per ranked
// developer.
func FlattenWindowResults(runID int64, results []schema.WindowResult) []DeveloperScoreExport {
	var rows []DeveloperScoreExport
	for _, wr := range results {
		for rank, ds := range wr.KeyDevelopers.Ranking {
			rows = append(rows, DeveloperScoreExport{
				RunID:             runID,
				WindowID:          int32(wr.Window.Index),
				WindowStart:       wr.Window.Start,
				WindowEnd:         wr.Window.End,
				DeveloperID:       ds.DeveloperID,
				Score:             ds.Score,
				Rank:              int32(rank + 1),
				DistributionLabel: string(wr.Distribution.Label),
			})
		}
	}
	return rows
}
