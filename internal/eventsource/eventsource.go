// Package eventsource loads artifact event logs from disk. Two formats are
// supported, selected by file extension: JSON for small datasets and
// fixtures, Parquet for exports from warehouse pipelines.
package eventsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// New returns the event source matching the dataset path's extension.
func New(cfg *contract.Config) (contract.EventSource, error) {
	if cfg.DatasetPath == "" {
		return nil, contract.NewConfigurationError("dataset", "a dataset path is required")
	}

	switch strings.ToLower(filepath.Ext(cfg.DatasetPath)) {
	case ".json":
		return &JSONSource{path: cfg.DatasetPath}, nil
	case ".parquet":
		return &ParquetSource{path: cfg.DatasetPath}, nil
	default:
		return nil, contract.NewConfigurationError("dataset", fmt.Sprintf("unsupported dataset format %q, expected .json or .parquet", filepath.Ext(cfg.DatasetPath)))
	}
}

// JSONSource reads an event log stored as a JSON array of events.
type JSONSource struct {
	path string
}

// Load implements contract.EventSource.
func (s *JSONSource) Load(_ context.Context) ([]schema.ArtifactEvent, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var events []schema.ArtifactEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", s.path, err)
	}

	return finalize(events)
}

// Project implements contract.EventSource.
func (s *JSONSource) Project() string {
	return projectFromPath(s.path)
}

// finalize validates event fields and sorts the log by timestamp so the
// window controller can slice it directly.
func finalize(events []schema.ArtifactEvent) ([]schema.ArtifactEvent, error) {
	for i, ev := range events {
		if ev.ArtifactID == "" {
			return nil, fmt.Errorf("event %d has no artifact id", i)
		}
		if _, err := schema.ParseArtifactType(string(ev.Type)); err != nil {
			return nil, fmt.Errorf("event %d (%s): %w", i, ev.ArtifactID, err)
		}
		if ev.Timestamp.IsZero() {
			return nil, fmt.Errorf("event %d (%s) has no timestamp", i, ev.ArtifactID)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

// projectFromPath derives a project identifier from the dataset filename.
func projectFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
