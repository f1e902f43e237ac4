package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args and returns stdout.
// Flag state is reset afterwards so tests stay independent.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	oldRank := rankFlags
	oldConfig := configPath
	t.Cleanup(func() {
		rankFlags = oldRank
		configPath = oldConfig
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}
