package eventsource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/keydevs/keygraph/schema"
)

// eventRow is the flat Parquet row layout for one artifact event. Links are
// stored as a comma-separated list rather than a repeated group so the file
// stays readable by flat-schema tooling.
type eventRow struct {
	Timestamp  time.Time `parquet:"timestamp,snappy"`
	ArtifactID string    `parquet:"artifact_id,snappy"`
	Type       string    `parquet:"artifact_type,snappy"`
	AuthorID   string    `parquet:"author_id,optional,snappy"`
	Links      string    `parquet:"links,optional,snappy"`
}

// ParquetSource reads an event log from a Parquet file.
type ParquetSource struct {
	path string
}

// Load implements contract.EventSource.
func (s *ParquetSource) Load(_ context.Context) ([]schema.ArtifactEvent, error) {
	rows, err := parquet.ReadFile[eventRow](s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", s.path, err)
	}

	events := make([]schema.ArtifactEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, schema.ArtifactEvent{
			Timestamp:  row.Timestamp,
			ArtifactID: row.ArtifactID,
			Type:       schema.ArtifactType(row.Type),
			AuthorID:   row.AuthorID,
			Links:      splitLinks(row.Links),
		})
	}

	return finalize(events)
}

// Project implements contract.EventSource.
func (s *ParquetSource) Project() string {
	return projectFromPath(s.path)
}

func splitLinks(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	links := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			links = append(links, p)
		}
	}
	return links
}
