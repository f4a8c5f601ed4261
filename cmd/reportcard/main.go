// Command reportcard turns exam score sheets into per-student report
// documents.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
