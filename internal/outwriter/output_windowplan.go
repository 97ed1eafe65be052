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

// PrintWindowPlan outputs the window plan, dispatching based on the
// configured output format.
func PrintWindowPlan(rows []schema.WindowPlanRow, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWindowPlanCSV(w, rows)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWindowPlanTable(w, rows, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeWindowPlanTable generates and writes the human-readable plan table.
func writeWindowPlanTable(w io.Writer, rows []schema.WindowPlanRow, cfg *contract.Config, duration time.Duration) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "Dataset produced no windows")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Window", "Start", "End", "Events"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	totalEvents := 0
	for _, row := range rows {
		data = append(data, []string{
			strconv.Itoa(row.Window.Index),
			row.Window.Start.Format(time.RFC3339),
			row.Window.End.Format(time.RFC3339),
			strconv.Itoa(row.EventCount),
		})
		totalEvents += row.EventCount
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Planned %d windows (width %v, step %v) in %v\n",
		len(rows), cfg.WindowWidth, cfg.WindowStep, duration)
	return err
}

// writeWindowPlanCSV writes the window plan in CSV format.
func writeWindowPlanCSV(w io.Writer, rows []schema.WindowPlanRow) error {
	header := []string{"window_id", "start", "end", "events"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range rows {
			rec := []string{
				strconv.Itoa(row.Window.Index),
				row.Window.Start.Format(time.RFC3339),
				row.Window.End.Format(time.RFC3339),
				strconv.Itoa(row.EventCount),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
