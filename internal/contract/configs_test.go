package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keydevs/keygraph/schema"
)

// validRawInput mirrors the viper defaults wired in the CLI.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		DatasetPathStr: "events.json",
		WindowWidth:    "365d",
		WindowStep:     "30d",
		Selection:      "topk",
		TopK:           10,
		Threshold:      0.5,
		Ranking:        "eigenvector",
		DecayFloor:     0.1,
		MaxLinks:       50,
		Classifier:     "skewness",
		Alpha:          0.05,
		MinSample:      3,
		Workers:        4,
		Limit:          25,
		Precision:      3,
		Output:         "text",
		WindowIndex:    -1,
		SnapshotBackend: "sqlite",
		Color:          "yes",
	}
}

// TestProcessAndValidate tests raw input conversion and validation.
func TestProcessAndValidate(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

		assert.Equal(t, "events.json", cfg.DatasetPath)
		assert.Equal(t, 365*24*time.Hour, cfg.WindowWidth)
		assert.Equal(t, 30*24*time.Hour, cfg.WindowStep)
		assert.Equal(t, schema.TopKSelection, cfg.Selection)
		assert.Equal(t, schema.EigenvectorRanking, cfg.Ranking)
		assert.Equal(t, schema.SkewnessClassifier, cfg.Classifier)
		assert.Equal(t, schema.SQLiteBackend, cfg.SnapshotBackend)
		assert.Equal(t, -1, cfg.WindowIndex)
		assert.True(t, cfg.UseColors)
	})

	invalidCases := []struct {
		name   string
		mutate func(*ConfigRawInput)
		field  string
	}{
		{"bad width", func(in *ConfigRawInput) { in.WindowWidth = "soon" }, "window-width"},
		{"zero width", func(in *ConfigRawInput) { in.WindowWidth = "0d" }, "window-width"},
		{"zero step", func(in *ConfigRawInput) { in.WindowStep = "0d" }, "window-step"},
		{"bad selection", func(in *ConfigRawInput) { in.Selection = "best" }, "selection"},
		{"negative top-k", func(in *ConfigRawInput) { in.TopK = -1 }, "top-k"},
		{"threshold above one", func(in *ConfigRawInput) { in.Threshold = 1.5 }, "threshold"},
		{"bad ranking", func(in *ConfigRawInput) { in.Ranking = "pagerank" }, "ranking"},
		{"zero decay floor", func(in *ConfigRawInput) { in.DecayFloor = 0 }, "decay-floor"},
		{"zero max links", func(in *ConfigRawInput) { in.MaxLinks = 0 }, "max-links"},
		{"bad classifier", func(in *ConfigRawInput) { in.Classifier = "chi2" }, "classifier"},
		{"alpha of one", func(in *ConfigRawInput) { in.Alpha = 1 }, "alpha"},
		{"min sample too small", func(in *ConfigRawInput) { in.MinSample = 2 }, "min-sample"},
		{"zero workers", func(in *ConfigRawInput) { in.Workers = 0 }, "workers"},
		{"limit too large", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, "limit"},
		{"negative precision", func(in *ConfigRawInput) { in.Precision = -1 }, "precision"},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }, "output"},
		{"bad backend", func(in *ConfigRawInput) { in.SnapshotBackend = "oracle" }, "snapshot-backend"},
		{"window below latest", func(in *ConfigRawInput) { in.WindowIndex = -2 }, "window"},
	}

	for _, tc := range invalidCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRawInput()
			tc.mutate(input)

			err := ProcessAndValidate(&Config{}, input)
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

// TestParseHumanDuration tests extended duration parsing.
func TestParseHumanDuration(t *testing.T) {
	cases := []struct {
		input    string
		expected time.Duration
	}{
		{"365d", 365 * 24 * time.Hour},
		{"26w", 26 * 7 * 24 * time.Hour},
		{"6m", 6 * 30 * 24 * time.Hour},
		{"1y", 365 * 24 * time.Hour},
		{"720h", 720 * time.Hour},
		{"1h30m", 90 * time.Minute},
		{" 30d ", 30 * 24 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			d, err := ParseHumanDuration(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, d)
		})
	}

	t.Run("invalid inputs", func(t *testing.T) {
		for _, input := range []string{"", "soon", "d", "one year"} {
			_, err := ParseHumanDuration(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

// TestParseBoolish tests yes/no flag parsing.
func TestParseBoolish(t *testing.T) {
	assert.True(t, parseBoolish("yes", false))
	assert.True(t, parseBoolish("TRUE", false))
	assert.True(t, parseBoolish(" on ", false))
	assert.False(t, parseBoolish("no", true))
	assert.False(t, parseBoolish("0", true))
	assert.True(t, parseBoolish("maybe", true))
	assert.False(t, parseBoolish("", false))
}

// TestConfigClone tests that clones do not alias the original.
func TestConfigClone(t *testing.T) {
	cfg := &Config{DatasetPath: "events.json", TopK: 10}
	clone := cfg.Clone()
	clone.TopK = 3

	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, "events.json", clone.DatasetPath)
}
