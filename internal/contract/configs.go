package contract

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/keydevs/keygraph/schema"
)

// Default values for configuration.
const (
	DefaultWindowWidth = "365d"
	DefaultWindowStep  = "30d"
	DefaultTopK        = 10
	DefaultThreshold   = 0.5
	DefaultDecayFloor  = 0.1
	DefaultMaxLinks    = 50
	DefaultAlpha       = 0.05
	DefaultMinSample   = 3
	DefaultResultLimit = 25
	DefaultPrecision   = 3
	MaxResultLimit     = 1000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for an analysis run.
// This struct is the final, validated config. It is immutable by
// convention: components receive it read-only and never mutate it, which
// keeps parallel per-window execution safe.
type Config struct {
	DatasetPath string
	WindowWidth time.Duration
	WindowStep  time.Duration

	Selection schema.SelectionPolicy
	TopK      int
	Threshold float64 // tau, as a fraction of the max score

	Ranking    schema.RankingStrategy
	DecayFloor float64 // 1.0 disables recency decay
	MaxLinks   int     // events linking more artifacts are skipped

	Classifier schema.ClassifierName
	Alpha      float64
	MinSample  int

	Workers     int
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string

	AllWindows  bool
	WindowIndex int // -1 selects the latest window

	Developer string // departing developer for replacement requests

	SnapshotBackend   schema.StoreBackend
	SnapshotDBConnect string // Please use env var as this is plaintext

	UseColors  bool
	TableWidth int // terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct before validation.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DatasetPathStr string

	WindowWidth string `mapstructure:"window-width"`
	WindowStep  string `mapstructure:"window-step"`

	Selection string  `mapstructure:"selection"`
	TopK      int     `mapstructure:"top-k"`
	Threshold float64 `mapstructure:"threshold"`

	Ranking    string  `mapstructure:"ranking"`
	DecayFloor float64 `mapstructure:"decay-floor"`
	MaxLinks   int     `mapstructure:"max-links"`

	Classifier string  `mapstructure:"classifier"`
	Alpha      float64 `mapstructure:"alpha"`
	MinSample  int     `mapstructure:"min-sample"`

	Workers    int    `mapstructure:"workers"`
	Limit      int    `mapstructure:"limit"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`

	AllWindows  bool `mapstructure:"all-windows"`
	WindowIndex int  `mapstructure:"window"`

	Developer string `mapstructure:"developer"`

	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`

	Color      string `mapstructure:"color"`
	TableWidth int    `mapstructure:"table-width"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate converts raw input into the final Config, returning a
// ConfigurationError on the first violation. It runs once before any window
// is processed; all window- and threshold-level failures surface here.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	width, err := ParseHumanDuration(input.WindowWidth)
	if err != nil {
		return NewConfigurationError("window-width", err.Error())
	}
	if width <= 0 {
		return NewConfigurationError("window-width", "must be a positive duration")
	}
	step, err := ParseHumanDuration(input.WindowStep)
	if err != nil {
		return NewConfigurationError("window-step", err.Error())
	}
	if step <= 0 {
		return NewConfigurationError("window-step", "must be a positive duration")
	}

	selection := schema.SelectionPolicy(input.Selection)
	if !schema.ValidSelectionPolicy(selection) {
		return NewConfigurationError("selection", fmt.Sprintf("must be %s or %s", schema.TopKSelection, schema.ThresholdSelection))
	}
	if input.TopK < 0 {
		return NewConfigurationError("top-k", "must be zero (all) or positive")
	}
	if input.Threshold < 0 || input.Threshold > 1 {
		return NewConfigurationError("threshold", "must be within [0, 1]")
	}

	ranking := schema.RankingStrategy(input.Ranking)
	if !schema.ValidRankingStrategy(ranking) {
		return NewConfigurationError("ranking", fmt.Sprintf("must be %s or %s", schema.DegreeRanking, schema.EigenvectorRanking))
	}
	if input.DecayFloor <= 0 || input.DecayFloor > 1 {
		return NewConfigurationError("decay-floor", "must be within (0, 1]; 1 disables decay")
	}
	if input.MaxLinks < 1 {
		return NewConfigurationError("max-links", "must be at least 1")
	}

	classifier := schema.ClassifierName(input.Classifier)
	if !schema.ValidClassifierName(classifier) {
		return NewConfigurationError("classifier", fmt.Sprintf("must be %s or %s", schema.SkewnessClassifier, schema.KSUniformClassifier))
	}
	if input.Alpha <= 0 || input.Alpha >= 1 {
		return NewConfigurationError("alpha", "must be within (0, 1)")
	}
	if input.MinSample < 3 {
		return NewConfigurationError("min-sample", "must be at least 3")
	}

	if input.Workers < 1 {
		return NewConfigurationError("workers", "must be at least 1")
	}
	if input.Limit < 1 || input.Limit > MaxResultLimit {
		return NewConfigurationError("limit", fmt.Sprintf("must be within [1, %d]", MaxResultLimit))
	}
	if input.Precision < 0 {
		return NewConfigurationError("precision", "must be non-negative")
	}

	output := schema.OutputMode(input.Output)
	if !schema.ValidOutputMode(output) {
		return NewConfigurationError("output", fmt.Sprintf("must be %s, %s or %s", schema.TextOut, schema.CSVOut, schema.JSONOut))
	}

	backend := schema.StoreBackend(input.SnapshotBackend)
	if !schema.ValidStoreBackend(backend) {
		return NewConfigurationError("snapshot-backend", "must be sqlite, mysql, postgresql or none")
	}

	if input.WindowIndex < -1 {
		return NewConfigurationError("window", "must be -1 (latest) or a window index")
	}

	cfg.DatasetPath = input.DatasetPathStr
	cfg.WindowWidth = width
	cfg.WindowStep = step
	cfg.Selection = selection
	cfg.TopK = input.TopK
	cfg.Threshold = input.Threshold
	cfg.Ranking = ranking
	cfg.DecayFloor = input.DecayFloor
	cfg.MaxLinks = input.MaxLinks
	cfg.Classifier = classifier
	cfg.Alpha = input.Alpha
	cfg.MinSample = input.MinSample
	cfg.Workers = input.Workers
	cfg.ResultLimit = input.Limit
	cfg.Precision = input.Precision
	cfg.Output = output
	cfg.OutputFile = input.OutputFile
	cfg.AllWindows = input.AllWindows
	cfg.WindowIndex = input.WindowIndex
	cfg.Developer = input.Developer
	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	cfg.UseColors = parseBoolish(input.Color, true)
	cfg.TableWidth = input.TableWidth

	return nil
}

// parseBoolish interprets yes/no style flag values.
func parseBoolish(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}

// ParseHumanDuration parses durations like "365d", "26w", "6m", "1y" in
// addition to standard Go duration strings such as "720h".
func ParseHumanDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	unit := s[len(s)-1]
	multiplier := time.Duration(0)
	switch unit {
	case 'd':
		multiplier = 24 * time.Hour
	case 'w':
		multiplier = 7 * 24 * time.Hour
	case 'm':
		multiplier = 30 * 24 * time.Hour
	case 'y':
		multiplier = 365 * 24 * time.Hour
	}

	if multiplier > 0 {
		n, err := strconv.Atoi(s[:len(s)-1])
		if err == nil {
			return time.Duration(n) * multiplier, nil
		}
		// Fall through for inputs like "1h30m" where the suffix is a
		// standard Go unit.
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("cannot parse duration %q", s)
	}
	return d, nil
}
