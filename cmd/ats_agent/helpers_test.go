package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	resumesDir = "../../testdata/resumes"
	jobsDir    = "../../testdata/jobs"
)

// getBinaryPath returns the path to the ats_agent binary for exit-code tests
func getBinaryPath(t *testing.T) string {
	binaryName := "ats_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/ats_agent ./cmd/ats_agent'", binaryPath)
	}

	return binaryPath
}

// execute runs the root command in-process and returns stdout and stderr.
// Flags are reset first since cobra keeps their values in package variables.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("ATS_CONFIG", "")
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
