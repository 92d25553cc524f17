// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/datawire/adaptive/internal/backend"
	"github.com/datawire/adaptive/internal/compiler"
	"github.com/datawire/adaptive/internal/config"
	"github.com/datawire/adaptive/internal/errors"
	"github.com/datawire/adaptive/internal/transform"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

// cmdCompile generates one side of a service for every schema given.
type cmdCompile struct {
	*globals
	mode transform.Mode

	dirs           map[string]*string
	indent         string
	noReference    bool
	requireService bool
	watch          bool
}

func newCompileCommand(g *globals, mode string) *cmdCompile {
	m, _ := transform.ParseMode(mode)
	return &cmdCompile{globals: g, mode: m, dirs: map[string]*string{}}
}

func (cmd *cmdCompile) help() *commandHelp {
	return &commandHelp{
		usage:   fmt.Sprintf("%s [options] FILE.sdl...", cmd.mode),
		summary: fmt.Sprintf("Generate %s code", cmd.mode),
	}
}

func (cmd *cmdCompile) flags(flags *pflag.FlagSet) {
	for _, name := range backend.Names() {
		cmd.dirs[name] = flags.String(name, "", fmt.Sprintf("write %s output to this directory", name))
	}
	flags.StringVar(&cmd.indent, "indent", "", "indentation unit of generated code")
	flags.BoolVar(&cmd.noReference, "no-reference", false, "omit the schema echo from generated files")
	flags.BoolVar(&cmd.requireService, "require-service", false, "reject modules with operations but no @service")
	flags.BoolVarP(&cmd.watch, "watch", "w", false, "recompile whenever a schema changes")
}

func (cmd *cmdCompile) run(ctx context.Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintf(os.Stderr, "usage: sdlc %s\n", cmd.help().usage)
		return 1
	}

	opts, err := cmd.options()
	if err != nil {
		fmt.Fprint(os.Stderr, errors.NewErrorReporter("", "").Report(err))
		return 1
	}

	if cmd.watch {
		return watch(ctx, argv, func() { build(ctx, argv, opts) })
	}
	if !build(ctx, argv, opts) {
		return 1
	}
	return 0
}

// options merges the project file with the command line, which wins.
func (cmd *cmdCompile) options() ([]compiler.Option, error) {
	cfg, err := config.Load(cmd.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Resolve()
	configureLogging(cmd.verbosity + cfg.Verbosity)

	cfg.Mode = cmd.mode.String()
	for name, dir := range cmd.dirs {
		if *dir != "" {
			cfg.Targets[name] = *dir
		}
	}
	if cmd.indent != "" {
		cfg.Indent = cmd.indent
	}
	if cmd.noReference {
		off := false
		cfg.Reference = &off
	}
	if cmd.requireService {
		cfg.ImplicitService = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no target selected: use %s", joinFlags(backend.Names()))
	}
	return []compiler.Option{compiler.FromConfig(cfg)}, nil
}

// build compiles and writes every schema, reporting the outcome. It writes
// nothing unless every schema compiles.
func build(ctx context.Context, files []string, opts []compiler.Option) bool {
	start := time.Now()
	c := compiler.New(opts...)
	for _, path := range files {
		if err := c.AddFile(path); err != nil {
			fmt.Fprint(os.Stderr, errors.NewErrorReporter(path, "").Report(err))
			color.Red("Compilation failed after %s", formatDuration(time.Since(start)))
			return false
		}
	}

	outputs, err := c.Compile(ctx)
	if err == nil {
		err = compiler.WriteOutputs(outputs)
	}
	if err != nil {
		report(c, err)
		color.Red("Compilation failed after %s", formatDuration(time.Since(start)))
		return false
	}

	for _, o := range outputs {
		fmt.Printf("  %s %s\n", color.CyanString(o.Target), o.Path)
	}
	color.Green("Generated %d files from %d schemas in %s", len(outputs), len(files), formatDuration(time.Since(start)))
	return true
}

// report renders err against the source it points into.
func report(c *compiler.Compiler, err error) {
	filename := ""
	if d, ok := errors.Diagnose(err); ok {
		filename = d.Position.Filename
	}
	source, _ := c.Source(filename)
	fmt.Fprint(os.Stderr, errors.NewErrorReporter(filename, source).Report(err))
}
