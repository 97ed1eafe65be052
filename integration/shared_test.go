//go:build basic || database

package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

var (
	// sharedKeygraphPath holds the path to a shared keygraph binary built once for all tests.
	sharedKeygraphPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getKeygraphBinary returns the path to the keygraph binary, building it once if needed.
func getKeygraphBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "keygraph-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		keygraphPath := filepath.Join(tempDir, "keygraph")
		buildCmd := exec.Command("go", "build", "-o", keygraphPath, "./cmd/keygraph")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build keygraph: %v", err))
		}

		sharedKeygraphPath = keygraphPath
	})

	return sharedKeygraphPath
}

// sampleEvent mirrors the JSON dataset layout.
type sampleEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	ArtifactID string    `json:"artifact_id"`
	Type       string    `json:"artifact_type"`
	AuthorID   string    `json:"author_id,omitempty"`
	Links      []string  `json:"links,omitempty"`
}

// writeSampleDataset writes a small multi-window dataset and returns its path.
func writeSampleDataset(t *testing.T) string {
	t.Helper()
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	events := []sampleEvent{
		{Timestamp: epoch, ArtifactID: "c1", Type: "commit", AuthorID: "alice", Links: []string{"c2", "i1"}},
		{Timestamp: epoch.Add(1 * day), ArtifactID: "c2", Type: "commit", AuthorID: "bob"},
		{Timestamp: epoch.Add(2 * day), ArtifactID: "i1", Type: "issue"},
		{Timestamp: epoch.Add(3 * day), ArtifactID: "c3", Type: "commit", AuthorID: "carol", Links: []string{"c1"}},
		{Timestamp: epoch.Add(20 * day), ArtifactID: "c4", Type: "commit", AuthorID: "alice", Links: []string{"c5"}},
		{Timestamp: epoch.Add(21 * day), ArtifactID: "c5", Type: "commit", AuthorID: "carol"},
		{Timestamp: epoch.Add(40 * day), ArtifactID: "c6", Type: "commit", AuthorID: "alice"},
	}

	data, err := json.Marshal(events)
	if err != nil {
		t.Fatalf("failed to marshal sample dataset: %v", err)
	}

	path := filepath.Join(t.TempDir(), "sample.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write sample dataset: %v", err)
	}
	return path
}

// runKeygraphCommand runs the shared binary with the given arguments.
func runKeygraphCommand(t *testing.T, args ...string) error {
	keygraphPath := getKeygraphBinary()
	cmd := exec.Command(keygraphPath, args...)
	cmd.Dir = ".." // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
