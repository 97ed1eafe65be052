package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keydevs/keygraph/schema"
)

func samplePlanRows() []schema.WindowPlanRow {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []schema.WindowPlanRow{
		{Window: schema.Window{Index: 0, Start: start, End: start.AddDate(0, 1, 0)}, EventCount: 12},
		{Window: schema.Window{Index: 1, Start: start.AddDate(0, 0, 15), End: start.AddDate(0, 1, 15)}, EventCount: 7},
	}
}

func TestWriteWindowPlanCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeWindowPlanCSV(&buf, samplePlanRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"window_id", "start", "end", "events"}, records[0])
	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "2024-01-01T00:00:00Z", records[1][1])
	assert.Equal(t, "12", records[1][3])
	assert.Equal(t, "1", records[2][0])
	assert.Equal(t, "7", records[2][3])
}

func TestWriteWindowPlanTable(t *testing.T) {
	cfg := tableConfig()
	cfg.WindowWidth = 30 * 24 * time.Hour
	cfg.WindowStep = 15 * 24 * time.Hour

	t.Run("renders rows and footer", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeWindowPlanTable(&buf, samplePlanRows(), cfg, 50*time.Millisecond)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "2024-01-01T00:00:00Z")
		assert.Contains(t, out, "Planned 2 windows (width 720h0m0s, step 360h0m0s) in 50ms")
	})

	t.Run("empty plan", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeWindowPlanTable(&buf, nil, cfg, time.Millisecond)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Dataset produced no windows")
	})
}
