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

// PrintDistributions outputs per-window knowledge distribution labels,
// dispatching based on the configured output format.
func PrintDistributions(results []schema.DistributionResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDistributionCSV(w, results, fmtFloat)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDistributionTable(w, results, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeDistributionTable generates and writes the human-readable table.
func writeDistributionTable(w io.Writer, results []schema.DistributionResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No windows to classify")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Window", "Label", "Statistic", "P-Value", "Developers"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, dr := range results {
		data = append(data, []string{
			strconv.Itoa(dr.WindowID),
			string(dr.Label),
			fmtFloat(dr.Statistic),
			fmtFloat(dr.PValue),
			strconv.Itoa(dr.SampleSize),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Classified %d windows with %s test (alpha %v) in %v\n",
		len(results), cfg.Classifier, cfg.Alpha, duration)
	return err
}

// writeDistributionCSV writes the classification results in CSV format.
func writeDistributionCSV(w io.Writer, results []schema.DistributionResult, fmtFloat func(float64) string) error {
	header := []string{"window_id", "label", "statistic", "p_value", "sample_size"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, dr := range results {
			row := []string{
				strconv.Itoa(dr.WindowID),
				string(dr.Label),
				fmtFloat(dr.Statistic),
				fmtFloat(dr.PValue),
				strconv.Itoa(dr.SampleSize),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
