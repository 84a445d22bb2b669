package main

import (
	"fmt"
	"os"

	"github.com/wesleyorama2/benchfio/internal/cli"
	"github.com/wesleyorama2/benchfio/internal/preflight"
)

// Main is the entry point for the application
// It's exported to make it testable
func Main() int {
	err := cli.Execute()
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return preflight.ExitCode(err)
}

func main() {
	os.Exit(Main())
}
