// Package main provides the CookBook command-line entry point.
package main

import (
	"os"

	"github.com/leapstack-labs/cookbook/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
