package snapshot

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keydevs/keygraph/schema"
)

func TestCollectWindowResults(t *testing.T) {
	run := schema.RunRecord{RunID: 7, TotalWindows: 3}

	blobFor := func(index int) []byte {
		blob, _ := json.Marshal(schema.WindowResult{
			Window:     schema.Window{Index: index},
			Developers: []string{"alice"},
		})
		return blob
	}

	t.Run("skips gaps from failed windows", func(t *testing.T) {
		getWindow := func(_ int64, windowID int) ([]byte, error) {
			if windowID == 1 {
				return nil, sql.ErrNoRows
			}
			return blobFor(windowID), nil
		}

		results, err := collectWindowResults(getWindow, run)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 0, results[0].Window.Index)
		assert.Equal(t, 2, results[1].Window.Index)
	})

	t.Run("store errors are fatal", func(t *testing.T) {
		getWindow := func(_ int64, _ int) ([]byte, error) {
			return nil, assert.AnError
		}
		_, err := collectWindowResults(getWindow, run)
		assert.ErrorContains(t, err, "failed to read window")
	})

	t.Run("corrupt blobs are fatal", func(t *testing.T) {
		getWindow := func(_ int64, _ int) ([]byte, error) {
			return []byte("not json"), nil
		}
		_, err := collectWindowResults(getWindow, run)
		assert.ErrorContains(t, err, "failed to decode window")
	})
}

func TestExecuteExport_Validation(t *testing.T) {
	err := ExecuteExport("")
	assert.ErrorContains(t, err, "--output-file is required")
}

func TestClearStore(t *testing.T) {
	t.Run("sqlite removes the database file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "snapshot.db")
		require.NoError(t, os.WriteFile(dbPath, []byte("data"), 0o644))

		require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath))
		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite tolerates a missing file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "absent.db")
		assert.NoError(t, ClearStore(schema.SQLiteBackend, dbPath))
	})

	t.Run("none backend is a no-op", func(t *testing.T) {
		assert.NoError(t, ClearStore(schema.NoneBackend, ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		err := ClearStore("oracle", "")
		assert.ErrorContains(t, err, "unsupported snapshot backend")
	})
}
