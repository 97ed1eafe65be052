package eventsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// writeDataset writes content to a temp file with the given name and
// returns its path.
func writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestNew tests event source dispatch by file extension.
func TestNew(t *testing.T) {
	t.Run("json dataset", func(t *testing.T) {
		source, err := New(&contract.Config{DatasetPath: "events.json"})
		require.NoError(t, err)
		assert.IsType(t, &JSONSource{}, source)
		assert.Equal(t, "events", source.Project())
	})

	t.Run("parquet dataset", func(t *testing.T) {
		source, err := New(&contract.Config{DatasetPath: "warehouse/events.parquet"})
		require.NoError(t, err)
		assert.IsType(t, &ParquetSource{}, source)
		assert.Equal(t, "events", source.Project())
	})

	t.Run("extension is case insensitive", func(t *testing.T) {
		source, err := New(&contract.Config{DatasetPath: "events.JSON"})
		require.NoError(t, err)
		assert.IsType(t, &JSONSource{}, source)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := New(&contract.Config{})
		var cfgErr *contract.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "dataset", cfgErr.Field)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := New(&contract.Config{DatasetPath: "events.csv"})
		var cfgErr *contract.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Reason, "unsupported dataset format")
	})
}

// TestJSONSourceLoad tests JSON loading, validation and ordering.
func TestJSONSourceLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads and sorts by timestamp", func(t *testing.T) {
		path := writeDataset(t, "events.json", `[
			{"timestamp": "2024-02-01T00:00:00Z", "artifact_id": "c2", "artifact_type": "commit", "author_id": "bob"},
			{"timestamp": "2024-01-01T00:00:00Z", "artifact_id": "c1", "artifact_type": "commit", "author_id": "alice", "links": ["c2"]}
		]`)

		source, err := New(&contract.Config{DatasetPath: path})
		require.NoError(t, err)
		events, err := source.Load(ctx)
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, "c1", events[0].ArtifactID)
		assert.Equal(t, "c2", events[1].ArtifactID)
		assert.Equal(t, schema.CommitArtifact, events[0].Type)
		assert.Equal(t, []string{"c2"}, events[0].Links)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), events[0].Timestamp)
	})

	t.Run("missing file", func(t *testing.T) {
		source := &JSONSource{path: filepath.Join(t.TempDir(), "absent.json")}
		_, err := source.Load(ctx)
		assert.ErrorContains(t, err, "failed to read dataset")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeDataset(t, "bad.json", `{not json`)
		source := &JSONSource{path: path}
		_, err := source.Load(ctx)
		assert.ErrorContains(t, err, "failed to parse dataset")
	})

	t.Run("missing artifact id", func(t *testing.T) {
		path := writeDataset(t, "events.json", `[
			{"timestamp": "2024-01-01T00:00:00Z", "artifact_type": "commit", "author_id": "alice"}
		]`)
		source := &JSONSource{path: path}
		_, err := source.Load(ctx)
		assert.ErrorContains(t, err, "has no artifact id")
	})

	t.Run("unknown artifact type", func(t *testing.T) {
		path := writeDataset(t, "events.json", `[
			{"timestamp": "2024-01-01T00:00:00Z", "artifact_id": "c1", "artifact_type": "widget"}
		]`)
		source := &JSONSource{path: path}
		_, err := source.Load(ctx)
		assert.ErrorContains(t, err, "unknown artifact type")
	})

	t.Run("missing timestamp", func(t *testing.T) {
		path := writeDataset(t, "events.json", `[
			{"artifact_id": "c1", "artifact_type": "commit", "author_id": "alice"}
		]`)
		source := &JSONSource{path: path}
		_, err := source.Load(ctx)
		assert.ErrorContains(t, err, "has no timestamp")
	})

	t.Run("empty log is valid", func(t *testing.T) {
		path := writeDataset(t, "events.json", `[]`)
		source := &JSONSource{path: path}
		events, err := source.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

// TestSplitLinks tests comma-separated link parsing for Parquet rows.
func TestSplitLinks(t *testing.T) {
	assert.Nil(t, splitLinks(""))
	assert.Equal(t, []string{"c1"}, splitLinks("c1"))
	assert.Equal(t, []string{"c1", "c2"}, splitLinks("c1,c2"))
	assert.Equal(t, []string{"c1", "c2"}, splitLinks(" c1 , c2 "))
	assert.Empty(t, splitLinks(" , "))
}
