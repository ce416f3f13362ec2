// Package main is the entry point for the census-report CLI.
package main

import (
	"os"

	"census-report/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
