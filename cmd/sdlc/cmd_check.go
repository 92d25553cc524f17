// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/datawire/adaptive/internal/compiler"
	"github.com/datawire/adaptive/internal/config"
	"github.com/datawire/adaptive/internal/errors"
	"github.com/datawire/adaptive/internal/transform"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

// cmdCheck validates schemas for both sides of a service without writing
// anything.
type cmdCheck struct {
	*globals
	requireService bool
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check [options] FILE.sdl...",
		summary: "Validate schemas without generating code",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	flags.BoolVar(&cmd.requireService, "require-service", false, "reject modules with operations but no @service")
}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintf(os.Stderr, "usage: sdlc %s\n", cmd.help().usage)
		return 1
	}
	cfg, err := config.Load(cmd.configPath)
	if err != nil {
		fmt.Fprint(os.Stderr, errors.NewErrorReporter("", "").Report(err))
		return 1
	}
	configureLogging(cmd.verbosity + cfg.Verbosity)

	start := time.Now()
	for _, mode := range []transform.Mode{transform.Client, transform.Server} {
		opts := []compiler.Option{compiler.WithMode(mode)}
		if cfg.ImplicitService && !cmd.requireService {
			opts = append(opts, compiler.WithImplicitService())
		}
		// Every target enforces the same rules, so one suffices.
		opts = append(opts, compiler.WithTarget("python", ""))

		c := compiler.New(opts...)
		for _, path := range argv {
			if err := c.AddFile(path); err != nil {
				fmt.Fprint(os.Stderr, errors.NewErrorReporter(path, "").Report(err))
				return 1
			}
		}
		if _, err := c.Compile(ctx); err != nil {
			report(c, err)
			color.Red("Check failed after %s", formatDuration(time.Since(start)))
			return 1
		}
	}
	color.Green("Checked %d schemas in %s", len(argv), formatDuration(time.Since(start)))
	return 0
}
