// Command forkjoin runs the fork-join parallel primitives on synthetic
// workloads.
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/exascience/forkjoin/internal/cli"
)

func run() error {
	// Align GOMAXPROCS, and with it the worker hint, with the CPU quota of
	// the container, if any.
	undo, err := maxprocs.Set()
	defer undo()
	if err != nil {
		return fmt.Errorf("failed to set GOMAXPROCS: %w", err)
	}
	return cli.NewRootCommand().Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
