// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.0ms", formatDuration(2*time.Millisecond))
	assert.Equal(t, "12ns", formatDuration(12))
}

func TestJoinFlags(t *testing.T) {
	assert.Equal(t, "--go", joinFlags([]string{"go"}))
	assert.Equal(t, "--go, --python or --quark", joinFlags([]string{"go", "python", "quark"}))
}

func compileCommand(t *testing.T, args ...string) *cmdCompile {
	cmd := newCompileCommand(&globals{}, "server")
	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	cmd.flags(flags)
	require.NoError(t, flags.Parse(args))
	return cmd
}

func TestCompileOptions(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := compileCommand(t).options()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --go, --python or --quark")

	opts, err := compileCommand(t, "--python", "out", "--require-service").options()
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestCompileOptionsFromConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "adaptive.hujson"),
		[]byte(`{"targets": {"quark": "gen"}, /* keep */}`), 0o644))

	_, err := compileCommand(t).options()
	require.NoError(t, err)

	cmd := compileCommand(t)
	cmd.configPath = filepath.Join(dir, "missing.hujson")
	_, err = cmd.options()
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
