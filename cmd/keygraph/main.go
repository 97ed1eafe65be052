// main is the entry point for the keygraph CLI.
package main

import (
	"github.com/keydevs/keygraph/cmd"
	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/internal/snapshot"
)

func main() {
	cmd.SetSnapshotManager(snapshot.Manager)

	err := cmd.Execute()

	// Flush profiles and close the store before any fatal exit.
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	snapshot.CloseStore()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
