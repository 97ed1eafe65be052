package core

import (
	"context"
	"fmt"
	"time"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/internal/eventsource"
	"github.com/keydevs/keygraph/internal/outwriter"
	"github.com/keydevs/keygraph/schema"
)

// ExecutorFunc defines the function signature for executing analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error

// ExecuteAnalyze runs the full sliding-window pipeline and prints the
// key-developer ranking per window. It serves as the main entry point for
// the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error {
	start := time.Now()
	run, err := loadAndRun(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	results := selectWindowResults(run, cfg)
	duration := time.Since(start)
	return outwriter.PrintRunResults(results, run.Failures, cfg, duration)
}

// ExecuteWindows prints the window plan without running any graph analysis.
// Useful for checking width and step against a dataset before a long run.
func ExecuteWindows(ctx context.Context, cfg *contract.Config, _ contract.SnapshotManager) error {
	start := time.Now()
	source, err := eventsource.New(cfg)
	if err != nil {
		return err
	}
	events, err := source.Load(ctx)
	if err != nil {
		return err
	}

	plan, err := PlanWindows(events, cfg.WindowWidth, cfg.WindowStep)
	if err != nil {
		return err
	}

	rows := make([]schema.WindowPlanRow, 0, len(plan))
	for _, we := range plan {
		rows = append(rows, schema.WindowPlanRow{Window: we.Window, EventCount: len(we.Events)})
	}
	duration := time.Since(start)
	return outwriter.PrintWindowPlan(rows, cfg, duration)
}

// ExecuteReplace runs the pipeline and prints replacement candidates for
// the configured developer in the selected window.
func ExecuteReplace(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error {
	start := time.Now()
	rec, err := GetReplacementResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintReplacement(rec, cfg, duration)
}

// ExecuteDistribution runs the pipeline and prints the knowledge
// distribution label for each selected window.
func ExecuteDistribution(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) error {
	start := time.Now()
	results, err := GetDistributionResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintDistributions(results, cfg, duration)
}

// GetKeyDeveloperResults runs the pipeline and returns the key-developer
// rankings for the selected windows. Shared by the CLI and the MCP server.
func GetKeyDeveloperResults(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) ([]schema.WindowResult, error) {
	run, err := loadAndRun(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	return selectWindowResults(run, cfg), nil
}

// GetReplacementResult runs the pipeline and returns the replacement
// recommendation for cfg.Developer in the selected window.
func GetReplacementResult(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) (schema.ReplacementResult, error) {
	if cfg.Developer == "" {
		return schema.ReplacementResult{}, contract.NewConfigurationError("developer", "a departing developer id is required")
	}

	source, err := eventsource.New(cfg)
	if err != nil {
		return schema.ReplacementResult{}, err
	}
	events, err := source.Load(ctx)
	if err != nil {
		return schema.ReplacementResult{}, err
	}
	plan, err := PlanWindows(events, cfg.WindowWidth, cfg.WindowStep)
	if err != nil {
		return schema.ReplacementResult{}, err
	}

	we, err := selectPlannedWindow(plan, cfg)
	if err != nil {
		return schema.ReplacementResult{}, err
	}

	corpus := CorpusIDs(events)
	ag := BuildArtifactGraph(we, cfg, corpus)
	dg := ProjectDeveloperGraph(ag, cfg)
	return RecommendReplacement(dg, cfg.Developer, cfg)
}

// GetDistributionResults runs the pipeline and returns the distribution
// classification for the selected windows.
func GetDistributionResults(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) ([]schema.DistributionResult, error) {
	results, err := GetKeyDeveloperResults(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	distributions := make([]schema.DistributionResult, 0, len(results))
	for _, wr := range results {
		distributions = append(distributions, wr.Distribution)
	}
	return distributions, nil
}

// loadAndRun wires the event source into a full pipeline run.
func loadAndRun(ctx context.Context, cfg *contract.Config, mgr contract.SnapshotManager) (*schema.RunResult, error) {
	source, err := eventsource.New(cfg)
	if err != nil {
		return nil, err
	}
	return ExecuteRun(ctx, cfg, source, mgr)
}

// selectWindowResults narrows a run to the windows the user asked for:
// everything, one index, or just the latest.
func selectWindowResults(run *schema.RunResult, cfg *contract.Config) []schema.WindowResult {
	if cfg.AllWindows {
		return run.Results
	}
	if cfg.WindowIndex >= 0 {
		for _, wr := range run.Results {
			if wr.Window.Index == cfg.WindowIndex {
				return []schema.WindowResult{wr}
			}
		}
		return nil
	}
	if latest := run.LatestWindow(); latest != nil {
		return []schema.WindowResult{*latest}
	}
	return nil
}

// selectPlannedWindow picks one window from the plan by index, defaulting to
// the latest.
func selectPlannedWindow(plan []WindowEvents, cfg *contract.Config) (WindowEvents, error) {
	if len(plan) == 0 {
		return WindowEvents{}, fmt.Errorf("dataset produced no windows")
	}
	if cfg.WindowIndex < 0 {
		return plan[len(plan)-1], nil
	}
	if cfg.WindowIndex >= len(plan) {
		return WindowEvents{}, fmt.Errorf("window %d out of range, plan has %d windows", cfg.WindowIndex, len(plan))
	}
	return plan[cfg.WindowIndex], nil
}
