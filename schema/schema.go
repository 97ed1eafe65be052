// Package schema has shared data structures for keygraph analysis.
package schema

import (
	"fmt"
	"time"
)

// ArtifactType classifies a tracked unit of project activity.
type ArtifactType string

// Supported artifact types.
const (
	CommitArtifact  ArtifactType = "commit"
	IssueArtifact   ArtifactType = "issue"
	CommentArtifact ArtifactType = "comment"
	FileArtifact    ArtifactType = "file"
)

// ParseArtifactType converts a string into an ArtifactType.
func ParseArtifactType(s string) (ArtifactType, error) {
	switch ArtifactType(s) {
	case CommitArtifact, IssueArtifact, CommentArtifact, FileArtifact:
		return ArtifactType(s), nil
	default:
		return "", fmt.Errorf("unknown artifact type: %q", s)
	}
}

// Authored reports whether events of this type establish a developer node
// for their author. Commits and file touches represent direct contribution;
// issues and comments are discussion artifacts that only join the graph as
// reference targets.
func (t ArtifactType) Authored() bool {
	return t == CommitArtifact || t == FileArtifact
}

// ArtifactEvent is one immutable record of project activity. Events are
// created once during ingestion and never mutated afterwards.
type ArtifactEvent struct {
	Timestamp  time.Time    `json:"timestamp"`
	ArtifactID string       `json:"artifact_id"`
	Type       ArtifactType `json:"artifact_type"`
	AuthorID   string       `json:"author_id"`
	Links      []string     `json:"links,omitempty"`
}

// Window is a half-open time interval [Start, End) over the artifact history.
type Window struct {
	Index int       `json:"index"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether ts falls inside the window interval.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}

// Width returns the window duration.
func (w Window) Width() time.Duration {
	return w.End.Sub(w.Start)
}

// String renders the window for logs and headers.
func (w Window) String() string {
	return fmt.Sprintf("#%d [%s, %s)", w.Index, w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}
