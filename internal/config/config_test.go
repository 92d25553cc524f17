package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/adaptive/internal/errors"
	"github.com/datawire/adaptive/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse("adaptive.hujson", []byte(`{
    // generate the service side
    "mode": "server",
    "targets": {
        "python": "gen/py",
        "go": "gen/go", /* trailing comma */
    },
    "reference": false,
    "implicitService": false,
    "verbosity": 2,
}`))
	require.NoError(t, err)

	assert.Equal(t, transform.Server, cfg.ParsedMode())
	assert.Equal(t, []string{"go", "python"}, cfg.TargetNames())
	assert.Equal(t, "gen/py", cfg.Targets["python"])
	assert.Equal(t, "    ", cfg.Indent)
	assert.False(t, cfg.ReferenceEnabled())
	assert.False(t, cfg.ImplicitService)
	assert.Equal(t, 2, cfg.Verbosity)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, transform.Client, cfg.ParsedMode())
	assert.True(t, cfg.ReferenceEnabled())
	assert.True(t, cfg.ImplicitService)
	assert.Empty(t, cfg.TargetNames())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   string
	}{
		{"syntax", `{"mode": `, errors.ErrorIO},
		{"type", `{"verbosity": "loud"}`, errors.ErrorIO},
		{"mode", `{"mode": "proxy"}`, errors.ErrorUnknownMode},
		{"target", `{"targets": {"cobol": "out"}}`, errors.ErrorUnknownTarget},
		{"directory", `{"targets": {"go": ""}}`, errors.ErrorUnknownTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("adaptive.hujson", []byte(tt.source))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.Code(err))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"targets": {"quark": "out"}}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)

	cfg.Resolve()
	assert.Equal(t, filepath.Join(dir, "out"), cfg.Targets["quark"])

	_, err = Load(filepath.Join(dir, "missing.hujson"))
	assert.Equal(t, errors.ErrorIO, errors.Code(err))
}

func TestLoadWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
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
