// Package main is the entry point for the recents CLI.
package main

import (
	"os"

	"github.com/runger/recents/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
