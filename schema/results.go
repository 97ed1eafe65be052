package schema

import (
	"encoding/json"
	"math"
	"time"
)

// DeveloperScore pairs a developer with a computed score.
type DeveloperScore struct {
	DeveloperID string  `json:"developer_id"`
	Score       float64 `json:"score"`
}

// KeyDeveloperResult is the ordered key-developer selection for one window.
// Ranking is sorted by score descending, ties broken by developer id
// ascending for determinism.
type KeyDeveloperResult struct {
	WindowID int              `json:"window_id"`
	Ranking  []DeveloperScore `json:"ranking"`
}

// ReplacementResult ranks the remaining developers as substitutes for a
// departing developer. LowConfidence marks the fallback used when the
// departing developer had no collaboration edges.
type ReplacementResult struct {
	WindowID      int              `json:"window_id"`
	DepartingID   string           `json:"departing_developer_id"`
	Candidates    []DeveloperScore `json:"candidates"`
	LowConfidence bool             `json:"low_confidence,omitempty"`
}

// DistributionResult labels the shape of one window's contribution-weight
// distribution. Statistic and PValue come from the configured shape test;
// PValue is NaN when the test could not produce one.
type DistributionResult struct {
	WindowID   int               `json:"window_id"`
	Label      DistributionLabel `json:"label"`
	Statistic  float64           `json:"test_statistic"`
	PValue     float64           `json:"p_value"`
	SampleSize int               `json:"sample_size"`
}

// distributionResultJSON mirrors DistributionResult with nullable floats.
// Statistic and PValue may be NaN, which encoding/json refuses to encode, so
// they travel as null instead.
type distributionResultJSON struct {
	WindowID   int               `json:"window_id"`
	Label      DistributionLabel `json:"label"`
	Statistic  *float64          `json:"test_statistic"`
	PValue     *float64          `json:"p_value"`
	SampleSize int               `json:"sample_size"`
}

// MarshalJSON implements json.Marshaler.
func (r DistributionResult) MarshalJSON() ([]byte, error) {
	out := distributionResultJSON{
		WindowID:   r.WindowID,
		Label:      r.Label,
		SampleSize: r.SampleSize,
	}
	if !math.IsNaN(r.Statistic) {
		out.Statistic = &r.Statistic
	}
	if !math.IsNaN(r.PValue) {
		out.PValue = &r.PValue
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *DistributionResult) UnmarshalJSON(data []byte) error {
	var in distributionResultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.WindowID = in.WindowID
	r.Label = in.Label
	r.SampleSize = in.SampleSize
	r.Statistic = math.NaN()
	r.PValue = math.NaN()
	if in.Statistic != nil {
		r.Statistic = *in.Statistic
	}
	if in.PValue != nil {
		r.PValue = *in.PValue
	}
	return nil
}

// WindowResult bundles everything computed for a single window. It is the
// unit persisted to the snapshot store, keyed by window id.
type WindowResult struct {
	Window        Window              `json:"window"`
	Developers    []string            `json:"developers"`
	KeyDevelopers KeyDeveloperResult  `json:"key_developers"`
	Replacements  []ReplacementResult `json:"replacements,omitempty"`
	Distribution  DistributionResult  `json:"distribution"`
	DanglingRefs  int                 `json:"dangling_refs,omitempty"`
	SkippedEvents int                 `json:"skipped_events,omitempty"`
}

// WindowPlanRow pairs a planned window with its active event count, for
// inspecting a window plan before running the full pipeline.
type WindowPlanRow struct {
	Window     Window `json:"window"`
	EventCount int    `json:"event_count"`
}

// WindowFailure records a window whose pipeline failed. Failures are
// isolated: other windows still produce results.
type WindowFailure struct {
	WindowID int    `json:"window_id"`
	Cause    string `json:"cause"`
}

// RunResult is the chronological output of a full analysis run.
type RunResult struct {
	Results  []WindowResult  `json:"results"`
	Failures []WindowFailure `json:"failures,omitempty"`
}

// LatestWindow returns the last computed window result, or nil when the run
// produced none.
func (r *RunResult) LatestWindow() *WindowResult {
	if len(r.Results) == 0 {
		return nil
	}
	return &r.Results[len(r.Results)-1]
}

// RunRecord is the stored metadata for one persisted analysis run.
type RunRecord struct {
	RunID        int64      `json:"run_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	TotalWindows int        `json:"total_windows"`
	ConfigParams string     `json:"config_params,omitempty"`
}

// SnapshotStatus summarizes the snapshot store contents.
type SnapshotStatus struct {
	Backend      StoreBackend `json:"backend"`
	Location     string       `json:"location,omitempty"`
	RunCount     int          `json:"run_count"`
	WindowCount  int          `json:"window_count"`
	SizeBytes    int64        `json:"size_bytes,omitempty"`
	LastRunStart *time.Time   `json:"last_run_start,omitempty"`
}
