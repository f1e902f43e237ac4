// Package cmd implements the curator command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "curator",
	Short: "resource curation engine for learning plans",
	Long: `curator - score, select and cache learning resources
  - rank candidate videos and docs for a study query
  - inspect and prune the persistent curation cache`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.studyloop/curator.yaml)")
}
