package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// dayEvent builds a commit event at testEpoch plus the given number of days.
func dayEvent(day int, artifactID, authorID string, links ...string) schema.ArtifactEvent {
	return schema.ArtifactEvent{
		Timestamp:  testEpoch.Add(time.Duration(day) * 24 * time.Hour),
		ArtifactID: artifactID,
		Type:       schema.CommitArtifact,
		AuthorID:   authorID,
		Links:      links,
	}
}

// TestWindowIterator tests window planning over an ordered event log.
func TestWindowIterator(t *testing.T) {
	day := 24 * time.Hour
	events := []schema.ArtifactEvent{
		dayEvent(0, "c1", "alice"),
		dayEvent(10, "c2", "bob"),
		dayEvent(20, "c3", "alice"),
		dayEvent(45, "c4", "carol"),
	}

	t.Run("plan covers every event", func(t *testing.T) {
		plan, err := PlanWindows(events, 30*day, 15*day)
		require.NoError(t, err)
		require.Len(t, plan, 4)

		covered := make(map[string]bool)
		for _, we := range plan {
			for _, ev := range we.Events {
				covered[ev.ArtifactID] = true
			}
		}
		assert.Len(t, covered, 4)
	})

	t.Run("overlapping windows share events", func(t *testing.T) {
		plan, err := PlanWindows(events, 30*day, 15*day)
		require.NoError(t, err)

		// Day 20 falls in both [0, 30) and [15, 45).
		assert.Equal(t, "c3", plan[0].Events[2].ArtifactID)
		assert.Equal(t, "c3", plan[1].Events[0].ArtifactID)
	})

	t.Run("window interval is half-open", func(t *testing.T) {
		boundary := []schema.ArtifactEvent{
			dayEvent(0, "c1", "alice"),
			dayEvent(10, "c2", "bob"),
		}
		plan, err := PlanWindows(boundary, 10*day, 10*day)
		require.NoError(t, err)
		require.Len(t, plan, 2)

		// c2 sits exactly at window 0's end and belongs to window 1 only.
		require.Len(t, plan[0].Events, 1)
		assert.Equal(t, "c1", plan[0].Events[0].ArtifactID)
		require.Len(t, plan[1].Events, 1)
		assert.Equal(t, "c2", plan[1].Events[0].ArtifactID)
	})

	t.Run("window metadata", func(t *testing.T) {
		plan, err := PlanWindows(events, 30*day, 15*day)
		require.NoError(t, err)

		assert.Equal(t, 0, plan[0].Window.Index)
		assert.Equal(t, testEpoch, plan[0].Window.Start)
		assert.Equal(t, testEpoch.Add(30*day), plan[0].Window.End)
		assert.Equal(t, testEpoch.Add(15*day), plan[1].Window.Start)
	})

	t.Run("reset restarts iteration", func(t *testing.T) {
		it, err := NewWindowIterator(events, 30*day, 15*day)
		require.NoError(t, err)

		first, ok := it.Next()
		require.True(t, ok)
		it.Reset()
		again, ok := it.Next()
		require.True(t, ok)
		assert.Equal(t, first.Window, again.Window)
		assert.Equal(t, len(first.Events), len(again.Events))
	})

	t.Run("identical inputs reproduce identical plans", func(t *testing.T) {
		plan1, err := PlanWindows(events, 30*day, 15*day)
		require.NoError(t, err)
		plan2, err := PlanWindows(events, 30*day, 15*day)
		require.NoError(t, err)
		assert.Equal(t, plan1, plan2)
	})

	t.Run("empty log yields empty plan", func(t *testing.T) {
		plan, err := PlanWindows(nil, 30*day, 15*day)
		require.NoError(t, err)
		assert.Empty(t, plan)
	})

	t.Run("single event yields one window", func(t *testing.T) {
		plan, err := PlanWindows(events[:1], 30*day, 15*day)
		require.NoError(t, err)
		require.Len(t, plan, 1)
		assert.Len(t, plan[0].Events, 1)
	})
}

// TestWindowIteratorValidation tests parameter and ordering checks.
func TestWindowIteratorValidation(t *testing.T) {
	day := 24 * time.Hour
	events := []schema.ArtifactEvent{dayEvent(0, "c1", "alice")}

	t.Run("non-positive width", func(t *testing.T) {
		_, err := NewWindowIterator(events, 0, day)
		var cfgErr *contract.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "window-width", cfgErr.Field)
	})

	t.Run("non-positive step", func(t *testing.T) {
		_, err := NewWindowIterator(events, day, -day)
		var cfgErr *contract.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "window-step", cfgErr.Field)
	})

	t.Run("unordered events", func(t *testing.T) {
		unordered := []schema.ArtifactEvent{
			dayEvent(10, "c2", "bob"),
			dayEvent(0, "c1", "alice"),
		}
		_, err := NewWindowIterator(unordered, day, day)
		var cfgErr *contract.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "dataset", cfgErr.Field)
	})
}
