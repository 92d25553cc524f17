// Package testutil holds assertions shared by the package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// ExpectNoDiff reports a unified diff when want and got differ.
func ExpectNoDiff(t *testing.T, want, got string) {
	t.Helper()
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  5,
	})
	if diff != "" {
		t.Error(diff)
	}
}

// ReadExample returns the trimmed text of an SDL file from the repository's
// examples directory. dir is the path from the calling package to the
// repository root.
func ReadExample(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "examples", name))
	if err != nil {
		t.Fatalf("reading example: %v", err)
	}
	return strings.TrimSpace(string(data))
}
