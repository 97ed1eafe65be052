package snapshot

import (
	"fmt"

	"github.com/keydevs/keygraph/schema"
)

// PrintStatus prints snapshot store status information to stdout.
func PrintStatus(status schema.SnapshotStatus) {
	fmt.Println("Snapshot store status:")
	fmt.Printf("  Backend:        %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("  Location:       %s\n", status.Location)
	}
	fmt.Printf("  Runs:           %d\n", status.RunCount)
	fmt.Printf("  Window results: %d\n", status.WindowCount)
	if status.SizeBytes > 0 {
		fmt.Printf("  Size:           %.1f KB\n", float64(status.SizeBytes)/1024.0)
	}
	if status.LastRunStart != nil {
		fmt.Printf("  Last run:       %s\n", status.LastRunStart.Format("2006-01-02 15:04:05"))
	}
}
