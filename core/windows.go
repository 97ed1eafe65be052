// Package core has the sliding-window graph engine: window planning,
// artifact graph construction, developer graph projection, ranking,
// replacement recommendation and distribution classification.
package core

import (
	"sort"
	"time"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// WindowEvents pairs a window with its active events. Events is a subslice
// of the shared, immutable event log: no copying, read-only across workers.
type WindowEvents struct {
	Window schema.Window
	Events []schema.ArtifactEvent
}

// WindowIterator walks the window plan lazily. It is a pure function of its
// inputs: identical events, width and step always reproduce identical
// windows, which keeps experiments reproducible. Reset restarts it.
type WindowIterator struct {
	events []schema.ArtifactEvent
	width  time.Duration
	step   time.Duration
	minTs  time.Time
	maxTs  time.Time
	next   int
}

// NewWindowIterator validates parameters and prepares a window plan over the
// ordered event log. Returns a ConfigurationError when width or step is not
// positive, or when the events are not sorted by timestamp.
func NewWindowIterator(events []schema.ArtifactEvent, width, step time.Duration) (*WindowIterator, error) {
	if width <= 0 {
		return nil, contract.NewConfigurationError("window-width", "must be a positive duration")
	}
	if step <= 0 {
		return nil, contract.NewConfigurationError("window-step", "must be a positive duration")
	}
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			return nil, contract.NewConfigurationError("dataset", "events are not ordered by timestamp")
		}
	}

	it := &WindowIterator{events: events, width: width, step: step}
	if len(events) > 0 {
		it.minTs = events[0].Timestamp
		it.maxTs = events[len(events)-1].Timestamp
	}
	return it, nil
}

// Len returns the total number of windows in the plan.
func (it *WindowIterator) Len() int {
	if len(it.events) == 0 {
		return 0
	}
	span := it.maxTs.Sub(it.minTs)
	return int(span/it.step) + 1
}

// Reset restarts the iterator from the first window.
func (it *WindowIterator) Reset() {
	it.next = 0
}

// Next returns the next window and its active events. The second return is
// false once the plan is exhausted. Windows start at the earliest event
// timestamp and advance by step until the latest timestamp is covered; the
// interval is half-open, so an event exactly at a window's end is excluded.
func (it *WindowIterator) Next() (WindowEvents, bool) {
	if it.next >= it.Len() {
		return WindowEvents{}, false
	}

	idx := it.next
	it.next++

	start := it.minTs.Add(time.Duration(idx) * it.step)
	end := start.Add(it.width)
	w := schema.Window{Index: idx, Start: start, End: end}

	lo := sort.Search(len(it.events), func(i int) bool {
		return !it.events[i].Timestamp.Before(start)
	})
	hi := sort.Search(len(it.events), func(i int) bool {
		return !it.events[i].Timestamp.Before(end)
	})

	return WindowEvents{Window: w, Events: it.events[lo:hi]}, true
}

// PlanWindows materializes the full window plan. Most callers want the
// whole plan up front so windows can be fanned out to workers.
func PlanWindows(events []schema.ArtifactEvent, width, step time.Duration) ([]WindowEvents, error) {
	it, err := NewWindowIterator(events, width, step)
	if err != nil {
		return nil, err
	}

	plan := make([]WindowEvents, 0, it.Len())
	for {
		we, ok := it.Next()
		if !ok {
			break
		}
		plan = append(plan, we)
	}
	return plan, nil
}
