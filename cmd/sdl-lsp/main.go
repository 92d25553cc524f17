// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/datawire/adaptive/internal/lsp"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "sdl" // Name identifier for the language server

var (
	version = "0.1.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	verbose := pflag.CountP("verbose", "v", "increase log verbosity")
	logFile := pflag.String("log", "", "log to this file instead of stderr")
	pflag.Parse()

	var path *string
	if *logFile != "" {
		path = logFile
	}
	commonlog.Configure(*verbose, path)
	log := commonlog.GetLogger("adaptive.lsp")

	sdlHandler := lsp.NewSDLHandler()

	handler = protocol.Handler{
		Initialize:                     sdlHandler.Initialize,
		Initialized:                    sdlHandler.Initialized,
		Shutdown:                       sdlHandler.Shutdown,
		SetTrace:                       sdlHandler.SetTrace,
		TextDocumentDidOpen:            sdlHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           sdlHandler.TextDocumentDidClose,
		TextDocumentDidChange:          sdlHandler.TextDocumentDidChange,
		TextDocumentCompletion:         sdlHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: sdlHandler.TextDocumentSemanticTokensFull,
	}

	// - debug: whether to enable internal GLSP debug logs
	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting SDL language server %s", version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
