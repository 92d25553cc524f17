// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"

	"github.com/datawire/adaptive/grammar"
	"github.com/spf13/pflag"
)

type cmdGrammar struct{}

func (*cmdGrammar) help() *commandHelp {
	return &commandHelp{
		usage:   "grammar",
		summary: "Print the SDL grammar in EBNF",
	}
}

func (*cmdGrammar) flags(*pflag.FlagSet) {}

func (*cmdGrammar) run(_ context.Context, _ []string) int {
	fmt.Println(grammar.EBNF())
	return 0
}
