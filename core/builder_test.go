package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// testConfig returns a validated-equivalent config with sane defaults for
// unit tests in this package.
func testConfig() *contract.Config {
	return &contract.Config{
		WindowWidth: 30 * 24 * time.Hour,
		WindowStep:  15 * 24 * time.Hour,
		Selection:   schema.TopKSelection,
		TopK:        10,
		Threshold:   0.5,
		Ranking:     schema.EigenvectorRanking,
		DecayFloor:  1.0, // decay off unless a test opts in
		MaxLinks:    50,
		Classifier:  schema.SkewnessClassifier,
		Alpha:       0.05,
		MinSample:   3,
		Workers:     1,
		ResultLimit: 25,
		Precision:   3,
		Output:      schema.TextOut,
		WindowIndex: -1,
	}
}

// planFor builds the full window plan for the given events, failing the test
// on planning errors.
func planFor(t *testing.T, events []schema.ArtifactEvent, cfg *contract.Config) []WindowEvents {
	t.Helper()
	plan, err := PlanWindows(events, cfg.WindowWidth, cfg.WindowStep)
	require.NoError(t, err)
	return plan
}

// TestBuildArtifactGraph tests graph construction for a single window.
func TestBuildArtifactGraph(t *testing.T) {
	cfg := testConfig()

	t.Run("authorship edges for authored types only", func(t *testing.T) {
		events := []schema.ArtifactEvent{
			dayEvent(0, "c1", "alice"),
			{Timestamp: testEpoch.Add(24 * time.Hour), ArtifactID: "f1", Type: schema.FileArtifact, AuthorID: "bob"},
			{Timestamp: testEpoch.Add(48 * time.Hour), ArtifactID: "i1", Type: schema.IssueArtifact, AuthorID: "carol"},
			{Timestamp: testEpoch.Add(72 * time.Hour), ArtifactID: "m1", Type: schema.CommentArtifact, AuthorID: "dave"},
		}
		plan := planFor(t, events, cfg)
		g := BuildArtifactGraph(plan[0], cfg, CorpusIDs(events))

		assert.Len(t, g.Artifacts, 4)
		assert.Contains(t, g.Developers, "alice")
		assert.Contains(t, g.Developers, "bob")
		assert.NotContains(t, g.Developers, "carol")
		assert.NotContains(t, g.Developers, "dave")
	})

	t.Run("anonymous authorship is skipped", func(t *testing.T) {
		events := []schema.ArtifactEvent{
			dayEvent(0, "c1", ""),
			dayEvent(1, "c2", "alice"),
		}
		plan := planFor(t, events, cfg)
		g := BuildArtifactGraph(plan[0], cfg, CorpusIDs(events))

		assert.Len(t, g.Developers, 1)
		assert.Empty(t, g.Artifacts["c1"].Authors)
	})

	t.Run("reference edges only between active artifacts", func(t *testing.T) {
		events := []schema.ArtifactEvent{
			dayEvent(0, "old", "alice"),
			dayEvent(40, "c1", "bob", "old", "c2"),
			dayEvent(41, "c2", "carol"),
		}
		plan := planFor(t, events, cfg)
		corpus := CorpusIDs(events)

		// Window 2 covers days [30, 60): "old" is known but inactive.
		g := BuildArtifactGraph(plan[2], cfg, corpus)
		require.Contains(t, g.Artifacts, "c1")
		assert.Equal(t, map[string]int{"c2": 1}, g.Artifacts["c1"].Refs)
		assert.Zero(t, g.DanglingRefs)
	})

	t.Run("dangling references counted, not fatal", func(t *testing.T) {
		events := []schema.ArtifactEvent{
			dayEvent(0, "c1", "alice", "ghost-1", "ghost-2"),
		}
		plan := planFor(t, events, cfg)
		g := BuildArtifactGraph(plan[0], cfg, CorpusIDs(events))

		assert.Equal(t, 2, g.DanglingRefs)
		assert.Empty(t, g.Artifacts["c1"].Refs)
	})

	t.Run("self references carry no edge", func(t *testing.T) {
		events := []schema.ArtifactEvent{
			dayEvent(0, "c1", "alice", "c1"),
		}
		plan := planFor(t, events, cfg)
		g := BuildArtifactGraph(plan[0], cfg, CorpusIDs(events))

		assert.Empty(t, g.Artifacts["c1"].Refs)
		assert.Zero(t, g.DanglingRefs)
	})

	t.Run("multi-edges collapse into counts", func(t *testing.T) {
		events := []schema.ArtifactEvent{
			dayEvent(0, "c1", "alice", "c2"),
			dayEvent(1, "c1", "alice", "c2"),
			dayEvent(2, "c2", "bob"),
		}
		plan := planFor(t, events, cfg)
		g := BuildArtifactGraph(plan[0], cfg, CorpusIDs(events))

		assert.Equal(t, 2, g.Artifacts["c1"].Refs["c2"])
		assert.Equal(t, 2, g.Artifacts["c1"].Authors["alice"])
	})

	t.Run("cyclic links collapse into directed counts", func(t *testing.T) {
		events := []schema.ArtifactEvent{
			dayEvent(0, "c1", "alice", "c2"),
			dayEvent(1, "c2", "bob", "c1"),
		}
		plan := planFor(t, events, cfg)
		g := BuildArtifactGraph(plan[0], cfg, CorpusIDs(events))

		assert.Equal(t, 1, g.Artifacts["c1"].Refs["c2"])
		assert.Equal(t, 1, g.Artifacts["c2"].Refs["c1"])
	})

	t.Run("oversized links guard skips whole event", func(t *testing.T) {
		small := testConfig()
		small.MaxLinks = 2
		events := []schema.ArtifactEvent{
			dayEvent(0, "bulk", "alice", "c1", "c2", "c3"),
			dayEvent(1, "c1", "bob"),
		}
		plan := planFor(t, events, small)
		g := BuildArtifactGraph(plan[0], small, CorpusIDs(events))

		assert.Equal(t, 1, g.SkippedEvents)
		assert.NotContains(t, g.Artifacts, "bulk")
		assert.NotContains(t, g.Developers, "alice")
	})

	t.Run("last seen tracks latest event", func(t *testing.T) {
		events := []schema.ArtifactEvent{
			dayEvent(0, "c1", "alice"),
			dayEvent(5, "c1", "bob"),
		}
		plan := planFor(t, events, cfg)
		g := BuildArtifactGraph(plan[0], cfg, CorpusIDs(events))

		assert.Equal(t, testEpoch.Add(5*24*time.Hour), g.Artifacts["c1"].LastSeen)
	})
}

// TestCorpusIDs tests corpus-wide id collection.
func TestCorpusIDs(t *testing.T) {
	events := []schema.ArtifactEvent{
		dayEvent(0, "c1", "alice", "linked-only"),
		dayEvent(1, "c2", "bob"),
		dayEvent(2, "c1", "alice"),
	}
	corpus := CorpusIDs(events)
	assert.Len(t, corpus, 2)
	assert.True(t, corpus["c1"])
	assert.True(t, corpus["c2"])
	assert.False(t, corpus["ghost"])

	// Only event subjects belong to the corpus. An id that appears solely as
	// a link target has no event of its own, so references to it stay
	// dangling.
	assert.False(t, corpus["linked-only"])
}
