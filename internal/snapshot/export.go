package snapshot

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/keydevs/keygraph/internal/parquet"
	"github.com/keydevs/keygraph/schema"
)

// ExecuteExport writes all stored run data to Parquet files: one file of
// run metadata and one of flattened per-developer window scores.
func ExecuteExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetSnapshotStore()
	if store == nil {
		return errors.New("snapshot store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get snapshot status: %w", err)
	}
	if status.RunCount == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.RunCount)
	fmt.Printf("Total window results: %d\n", status.WindowCount)

	runs, err := store.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	var scoreRows []parquet.DeveloperScoreExport
	for _, run := range runs {
		results, err := collectWindowResults(store.GetWindow, run)
		if err != nil {
			return err
		}
		scoreRows = append(scoreRows, parquet.FlattenWindowResults(run.RunID, results)...)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	scoresFile := outputFile + ".developer_scores.parquet"
	if err := parquet.WriteDeveloperScoresParquet(scoreRows, scoresFile); err != nil {
		return fmt.Errorf("failed to write developer scores: %w", err)
	}
	fmt.Printf("Exported %d developer score rows to: %s\n", len(scoreRows), scoresFile)

	return nil
}

// collectWindowResults fetches and deserializes every stored window blob for
// one run. Windows that failed during the run were never recorded, so gaps
// are expected and skipped.
func collectWindowResults(getWindow func(int64, int) ([]byte, error), run schema.RunRecord) ([]schema.WindowResult, error) {
	results := make([]schema.WindowResult, 0, run.TotalWindows)
	for windowID := range run.TotalWindows {
		blob, err := getWindow(run.RunID, windowID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read window %d of run %d: %w", windowID, run.RunID, err)
		}

		var wr schema.WindowResult
		if err := json.Unmarshal(blob, &wr); err != nil {
			return nil, fmt.Errorf("failed to decode window %d of run %d: %w", windowID, run.RunID, err)
		}
		results = append(results, wr)
	}
	return results, nil
}
