package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Centrality label constants.
const (
	CoreValue       = "Core"       // top of the collaboration graph
	StrongValue     = "Strong"     // well connected
	ModerateValue   = "Moderate"   // average connectivity
	PeripheralValue = "Peripheral" // weakly connected
)

// Color variables for console output.
var (
	CoreColor       = color.New(color.FgRed, color.Bold)
	StrongColor     = color.New(color.FgMagenta, color.Bold)
	ModerateColor   = color.New(color.FgYellow)
	PeripheralColor = color.New(color.FgCyan)
)

// GetPlainLabel returns a plain text label for a developer's score expressed
// as a percentage of the window's maximum score. This is the core logic used
// for CSV, JSON, and table printing.
func GetPlainLabel(pctOfMax float64) string {
	switch {
	case pctOfMax >= 80:
		return CoreValue
	case pctOfMax >= 50:
		return StrongValue
	case pctOfMax >= 20:
		return ModerateValue
	default:
		return PeripheralValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(pctOfMax float64) string {
	text := GetPlainLabel(pctOfMax)

	switch text {
	case CoreValue:
		return CoreColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Peripheral"
		return PeripheralColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for the
// snapshot store.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".keygraph_snapshots.db"
	}
	return filepath.Join(homeDir, ".keygraph_snapshots.db")
}

// TruncateID shortens long developer or artifact ids for table display.
func TruncateID(id string, maxLen int) string {
	if maxLen <= 3 || len(id) <= maxLen {
		return id
	}
	return id[:maxLen-3] + "..."
}
