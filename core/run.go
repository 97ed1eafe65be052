package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/keydevs/keygraph/core/stats"
	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// ExecuteRun loads the event log, plans the windows and runs the full
// per-window pipeline (build, project, rank, classify, recommend) across a
// worker pool. Results come back ordered by window index. A failing window
// is recorded as a WindowFailure and never aborts its siblings; only
// loading and planning errors are fatal.
func ExecuteRun(ctx context.Context, cfg *contract.Config, source contract.EventSource, mgr contract.SnapshotManager) (*schema.RunResult, error) {
	events, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := PlanWindows(events, cfg.WindowWidth, cfg.WindowStep)
	if err != nil {
		return nil, err
	}

	corpus := CorpusIDs(events)
	departures := planDepartures(plan, cfg)

	// --- Begin run tracking (if configured) ---
	var runID int64
	var store contract.SnapshotStore
	if mgr != nil {
		store = mgr.GetSnapshotStore()
	}
	if store != nil {
		configParams := map[string]any{
			"dataset":      cfg.DatasetPath,
			"window_width": cfg.WindowWidth.String(),
			"window_step":  cfg.WindowStep.String(),
			"ranking":      string(cfg.Ranking),
			"classifier":   string(cfg.Classifier),
			"workers":      cfg.Workers,
		}
		runID, err = store.BeginRun(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			store = nil
		}
	}

	result := runWindowPool(ctx, cfg, plan, corpus, departures, store, runID)

	// --- End run tracking ---
	if store != nil && runID > 0 {
		// Total planned windows, not just successes, so stored window ids
		// stay within [0, totalWindows).
		if err := store.EndRun(runID, time.Now(), len(plan)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return result, nil
}

// runWindowPool fans the window plan out to cfg.Workers goroutines and
// collects the per-window results back in window order.
func runWindowPool(ctx context.Context, cfg *contract.Config, plan []WindowEvents, corpus map[string]bool, departures [][]string, store contract.SnapshotStore, runID int64) *schema.RunResult {
	type windowOutcome struct {
		index   int
		result  schema.WindowResult
		failure *schema.WindowFailure
	}

	indexCh := make(chan int, len(plan))
	outcomeCh := make(chan windowOutcome, len(plan))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for idx := range indexCh {
				if ctx.Err() != nil {
					outcomeCh <- windowOutcome{index: idx, failure: &schema.WindowFailure{
						WindowID: idx,
						Cause:    ctx.Err().Error(),
					}}
					continue
				}
				wr, err := runWindow(plan[idx], cfg, corpus, departures[idx])
				if err != nil {
					outcomeCh <- windowOutcome{index: idx, failure: &schema.WindowFailure{
						WindowID: idx,
						Cause:    err.Error(),
					}}
					continue
				}
				outcomeCh <- windowOutcome{index: idx, result: wr}
			}
		})
	}

	for idx := range plan {
		indexCh <- idx
	}
	close(indexCh)

	wg.Wait()
	close(outcomeCh)

	ordered := make([]*windowOutcome, len(plan))
	for o := range outcomeCh {
		oc := o
		ordered[o.index] = &oc
	}

	result := &schema.RunResult{}
	for _, o := range ordered {
		if o == nil {
			continue
		}
		if o.failure != nil {
			result.Failures = append(result.Failures, *o.failure)
			continue
		}
		result.Results = append(result.Results, o.result)

		if store != nil && runID > 0 {
			if blob, err := json.Marshal(o.result); err != nil {
				contract.LogWarn(fmt.Sprintf("Failed to serialize window %d", o.index), err)
			} else if err := store.RecordWindow(runID, o.index, blob); err != nil {
				contract.LogWarn(fmt.Sprintf("Failed to record window %d", o.index), err)
			}
		}
	}
	return result
}

// runWindow executes the pipeline for a single window: artifact graph,
// developer projection, key-developer ranking, distribution classification
// and replacement recommendations for the window's departing developers.
func runWindow(we WindowEvents, cfg *contract.Config, corpus map[string]bool, departing []string) (schema.WindowResult, error) {
	ag := BuildArtifactGraph(we, cfg, corpus)
	dg := ProjectDeveloperGraph(ag, cfg)

	wr := schema.WindowResult{
		Window:        we.Window,
		Developers:    dg.Nodes,
		KeyDevelopers: RankKeyDevelopers(dg, cfg),
		Distribution:  classifyWindow(dg, cfg),
		DanglingRefs:  ag.DanglingRefs,
		SkippedEvents: ag.SkippedEvents,
	}

	for _, dev := range departing {
		rec, err := RecommendReplacement(dg, dev, cfg)
		if err != nil {
			return schema.WindowResult{}, err
		}
		wr.Replacements = append(wr.Replacements, rec)
	}

	return wr, nil
}

// classifyWindow runs the configured shape test over the window's
// contribution weights. Isolated developers contribute zero weight, so a
// team where one person holds all edges still registers as skewed.
func classifyWindow(dg *schema.DeveloperGraph, cfg *contract.Config) schema.DistributionResult {
	degrees := dg.WeightedDegrees()
	weights := make([]float64, 0, len(dg.Nodes))
	for _, dev := range dg.Nodes {
		weights = append(weights, degrees[dev])
	}

	result := stats.Classify(stats.ForName(cfg.Classifier), weights, cfg.Alpha, cfg.MinSample)
	result.WindowID = dg.Window.Index
	return result
}

// planDepartures computes, for every window, the developers active in it but
// absent from the following window. Replacements are recommended in the last
// window the developer was still active, where their collaboration edges are
// freshest. The final window has no successor and therefore no departures.
func planDepartures(plan []WindowEvents, cfg *contract.Config) [][]string {
	sets := make([]map[string]bool, len(plan))
	for i, we := range plan {
		sets[i] = activeDevelopers(we, cfg)
	}

	departures := make([][]string, len(plan))
	for i := 0; i+1 < len(plan); i++ {
		for dev := range sets[i] {
			if !sets[i+1][dev] {
				departures[i] = append(departures[i], dev)
			}
		}
		sort.Strings(departures[i])
	}
	return departures
}

// activeDevelopers applies the builder's authorship rules without building
// the full graph, which keeps the departure prepass cheap.
func activeDevelopers(we WindowEvents, cfg *contract.Config) map[string]bool {
	devs := make(map[string]bool)
	for _, ev := range we.Events {
		if !eventIncluded(ev, cfg) {
			continue
		}
		if ev.Type.Authored() && ev.AuthorID != "" {
			devs[ev.AuthorID] = true
		}
	}
	return devs
}
