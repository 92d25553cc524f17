// Package config loads the optional project file that sets compiler
// defaults. The file is JSON with comments and trailing commas allowed:
//
//	{
//	    // generate the service side
//	    "mode": "server",
//	    "targets": {"python": "gen/py", "go": "gen/go"},
//	    "indent": "    ",
//	    "reference": true,
//	    "implicitService": true,
//	    "verbosity": 0,
//	}
//
// Command line flags override every value.
package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/backend"
	"github.com/datawire/adaptive/internal/errors"
	"github.com/datawire/adaptive/internal/transform"
	"github.com/tailscale/hujson"
)

// FileName is looked up in the working directory when no path is given.
const FileName = "adaptive.hujson"

type Config struct {
	Mode string `json:"mode"`

	// Targets maps a target language to its output directory.
	Targets map[string]string `json:"targets"`

	Indent string `json:"indent"`

	// Reference turns the schema echo in generated files on or off. Nil
	// means on.
	Reference *bool `json:"reference"`

	ImplicitService bool `json:"implicitService"`
	Verbosity       int  `json:"verbosity"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `json:"-"`
}

// Default is the configuration used when there is no file.
func Default() *Config {
	return &Config{
		Mode:            transform.Client.String(),
		Targets:         map[string]string{},
		Indent:          "    ",
		ImplicitService: true,
	}
}

// Load reads path. An empty path reads FileName from the working directory
// if it exists and otherwise returns Default.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, &errors.IOError{Op: "read config", Path: path, Err: err}
	}
	cfg, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration text. Unset values keep their defaults.
func Parse(path string, data []byte) (*Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, &errors.IOError{Op: "parse config", Path: path, Err: err}
	}
	cfg := Default()
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, &errors.IOError{Op: "parse config", Path: path, Err: err}
	}
	cfg.Path = path
	if cfg.Targets == nil {
		cfg.Targets = map[string]string{}
	}
	return cfg, cfg.Validate()
}

// Validate checks the mode and target names.
func (c *Config) Validate() error {
	if _, err := transform.ParseMode(c.Mode); err != nil {
		return err
	}
	for _, name := range c.TargetNames() {
		if _, err := backend.Lookup(name); err != nil {
			return err
		}
		if c.Targets[name] == "" {
			return errors.Compile(errors.ErrUnknownTarget, "", ast.Position{Filename: c.Path},
				"target %s has no output directory", name)
		}
	}
	return nil
}

// ParsedMode returns the mode of a validated configuration.
func (c *Config) ParsedMode() transform.Mode {
	m, _ := transform.ParseMode(c.Mode)
	return m
}

// TargetNames returns the configured targets in sorted order.
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReferenceEnabled reports whether generated files echo the schema.
func (c *Config) ReferenceEnabled() bool {
	return c.Reference == nil || *c.Reference
}

// Resolve makes relative output directories relative to the directory of
// the configuration file.
func (c *Config) Resolve() {
	if c.Path == "" {
		return
	}
	base := filepath.Dir(c.Path)
	for name, dir := range c.Targets {
		if !filepath.IsAbs(dir) {
			c.Targets[name] = filepath.Join(base, dir)
		}
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("mode=%s targets=%v indent=%q reference=%t implicitService=%t",
		c.Mode, c.Targets, c.Indent, c.ReferenceEnabled(), c.ImplicitService)
}
