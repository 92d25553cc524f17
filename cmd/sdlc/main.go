// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var version = "0.1.0"

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

// globals are the flags shared by every subcommand.
type globals struct {
	configPath string
	verbosity  int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := &globals{}
	sdlcCmd := &cobra.Command{
		Use:     "sdlc [options] COMMAND",
		Short:   "Generate clients and servers from SDL schemas",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	sdlcCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, sdlcCmd.UsageString())
		os.Exit(1)
		return nil
	}
	sdlcCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "project file (default ./adaptive.hujson if present)")
	sdlcCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "increase log verbosity")

	commands := []command{
		newCompileCommand(g, "client"),
		newCompileCommand(g, "server"),
		&cmdCheck{globals: g},
		&cmdGrammar{},
	}
	for _, cmd := range commands {
		cmd := cmd
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				os.Exit(cmd.run(ctx, args))
				return nil
			},
		}
		sdlcCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	if _, err := sdlcCmd.ExecuteContextC(ctx); err != nil {
		os.Exit(1)
	}
}

// configureLogging routes the compiler's log to stderr at verbosity.
func configureLogging(verbosity int) {
	commonlog.Configure(verbosity, nil)
}
