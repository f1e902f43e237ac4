// Package main is the entry point for the curator CLI.
package main

import (
	"os"

	"github.com/studyloop/curator/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
