// Package main provides the CLI for the leaptrain run configuration toolkit.
package main

import (
	"os"

	"github.com/leapstack-labs/leaptrain/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
