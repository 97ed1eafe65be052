package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// PrintRunResults outputs per-window key-developer rankings, dispatching
// based on the configured output format.
func PrintRunResults(results []schema.WindowResult, failures []schema.WindowFailure, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunJSON(w, results, failures)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunCSV(w, results, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(w, results, failures, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeRunTable generates and writes the human-readable tables, one per window.
func writeRunTable(w io.Writer, results []schema.WindowResult, failures []schema.WindowFailure, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	for _, wr := range results {
		if _, err := fmt.Fprintf(w, "Window %s: %d developers, distribution %s\n",
			wr.Window, len(wr.Developers), wr.Distribution.Label); err != nil {
			return err
		}

		ranking := wr.KeyDevelopers.Ranking
		if cfg.ResultLimit > 0 && len(ranking) > cfg.ResultLimit {
			ranking = ranking[:cfg.ResultLimit]
		}
		if err := writeRankingTable(w, ranking, cfg, fmtFloat); err != nil {
			return err
		}

		if wr.DanglingRefs > 0 || wr.SkippedEvents > 0 {
			if _, err := fmt.Fprintf(w, "Skipped %d oversized events, %d dangling references\n",
				wr.SkippedEvents, wr.DanglingRefs); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	for _, f := range failures {
		if _, err := fmt.Fprintf(w, "Window %d failed: %s\n", f.WindowID, f.Cause); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Snapshot backend: %s\n",
		duration, cfg.Workers, cfg.SnapshotBackend)
	return err
}

// writeRankingTable renders one window's ranking as a table.
func writeRankingTable(w io.Writer, ranking []schema.DeveloperScore, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(ranking) == 0 {
		_, err := fmt.Fprintln(w, "No developers in this window")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Developer", "Score", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxScore := ranking[0].Score
	idWidth := getMaxTableIDWidth(cfg)

	var data [][]string
	for i, ds := range ranking {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateID(ds.DeveloperID, idWidth),
			fmtFloat(ds.Score),
			scoreLabel(ds.Score, maxScore, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeRunCSV writes the per-window rankings in CSV format.
func writeRunCSV(w io.Writer, results []schema.WindowResult, fmtFloat func(float64) string) error {
	header := []string{"window_id", "window_start", "window_end", "rank", "developer", "score", "label", "distribution"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, wr := range results {
			var maxScore float64
			if len(wr.KeyDevelopers.Ranking) > 0 {
				maxScore = wr.KeyDevelopers.Ranking[0].Score
			}
			for i, ds := range wr.KeyDevelopers.Ranking {
				rec := []string{
					strconv.Itoa(wr.Window.Index),
					wr.Window.Start.Format(time.RFC3339),
					wr.Window.End.Format(time.RFC3339),
					strconv.Itoa(i + 1),
					ds.DeveloperID,
					fmtFloat(ds.Score),
					scoreLabel(ds.Score, maxScore, false),
					string(wr.Distribution.Label),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeRunJSON writes the full run output in JSON format.
func writeRunJSON(w io.Writer, results []schema.WindowResult, failures []schema.WindowFailure) error {
	output := struct {
		Results  []schema.WindowResult  `json:"results"`
		Failures []schema.WindowFailure `json:"failures,omitempty"`
	}{Results: results, Failures: failures}
	return writeJSON(w, output)
}
