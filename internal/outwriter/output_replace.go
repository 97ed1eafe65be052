package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// PrintReplacement outputs replacement candidates for a departing developer,
// dispatching based on the configured output format.
func PrintReplacement(rec schema.ReplacementResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rec)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReplacementCSV(w, rec, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReplacementTable(w, rec, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeReplacementTable generates and writes the human-readable table.
func writeReplacementTable(w io.Writer, rec schema.ReplacementResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Replacement candidates for %s in window %d\n", rec.DepartingID, rec.WindowID); err != nil {
		return err
	}
	if rec.LowConfidence {
		if _, err := fmt.Fprintln(w, "Low confidence: the developer has no collaboration edges, falling back to the window ranking"); err != nil {
			return err
		}
	}

	limit := cfg.ResultLimit
	candidates := rec.Candidates
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if err := writeRankingTable(w, candidates, cfg, fmtFloat); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Evaluated %d candidates in %v\n", len(rec.Candidates), duration)
	return err
}

// writeReplacementCSV writes the candidate ranking in CSV format.
func writeReplacementCSV(w io.Writer, rec schema.ReplacementResult, fmtFloat func(float64) string) error {
	header := []string{"window_id", "departing_developer", "rank", "candidate", "score", "low_confidence"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, ds := range rec.Candidates {
			row := []string{
				strconv.Itoa(rec.WindowID),
				rec.DepartingID,
				strconv.Itoa(i + 1),
				ds.DeveloperID,
				fmtFloat(ds.Score),
				strconv.FormatBool(rec.LowConfidence),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
