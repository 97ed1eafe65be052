// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/keydevs/keygraph/schema"
)

// EventSource supplies the time-ordered artifact events for one project.
// Implementations must return events sorted by timestamp ascending so the
// window controller can slice them without re-sorting.
type EventSource interface {
	// Load reads the full event log. The returned slice is treated as
	// read-only and may be shared across worker goroutines.
	Load(ctx context.Context) ([]schema.ArtifactEvent, error)

	// Project returns the project identifier the source belongs to.
	Project() string
}

// SnapshotStore persists per-window results as opaque serialized blobs
// keyed by run and window id. Consumers deserialize by window id without
// coupling to internal graph representations.
type SnapshotStore interface {
	// BeginRun creates a new run record and returns its unique id.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun finalizes the run record with completion data.
	EndRun(runID int64, endTime time.Time, totalWindows int) error

	// RecordWindow stores one window's serialized result blob.
	RecordWindow(runID int64, windowID int, blob []byte) error

	// GetWindow retrieves a previously stored window blob.
	GetWindow(runID int64, windowID int) ([]byte, error)

	// ListRuns returns stored run metadata, newest first.
	ListRuns() ([]schema.RunRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.SnapshotStatus, error)

	// Clear removes all stored runs and window blobs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// SnapshotManager hands out the snapshot store. It exists so the
// persistence layer can be mocked for testing.
type SnapshotManager interface {
	GetSnapshotStore() SnapshotStore
}
