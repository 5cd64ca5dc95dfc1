package main

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/config"
)

// resetFlags restores every flag in the command tree to its default so
// package-level flag variables do not leak between in-process runs
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI in process against dataDir and returns its stdout
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvStore, "")
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvDatabaseURL, "")

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

// mustRun is run that fails the test on error
func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := run(t, dataDir, args...)
	require.NoError(t, err, "jobtracker %v", args)
	return out
}

var createdID = regexp.MustCompile(`Created (\S+) `)

// addApp creates an application and returns its id
func addApp(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out := mustRun(t, dataDir, append([]string{"add"}, args...)...)
	m := createdID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}
