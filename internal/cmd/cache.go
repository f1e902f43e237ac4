package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyloop/curator/internal/config"
	"github.com/studyloop/curator/internal/curation"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the persistent curation cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts and hit totals",
	RunE:  runCacheStats,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired cache entries",
	RunE:  runCachePrune,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openStore(cmd *cobra.Command) (*curation.SQLiteStore, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return curation.OpenSQLiteStore(cmd.Context(), cfg.DBPath)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "entries: %d\n", stats.TotalEntries)
	fmt.Fprintf(cmd.OutOrStdout(), "expired: %d\n", stats.ExpiredEntries)
	fmt.Fprintf(cmd.OutOrStdout(), "hits:    %d\n", stats.TotalHits)
	return nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d expired entries\n", removed)
	return nil
}
