package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/backend"
	"github.com/datawire/adaptive/internal/config"
	"github.com/datawire/adaptive/internal/parser"
	"github.com/datawire/adaptive/internal/transform"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("adaptive.lsp")

// Define the set of supported semantic token types (as required by the LSP spec)
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"parameter",
	"property",
	"keyword",
	"number",
	"string",
	"comment",
	"modifier",
}

// Define the set of supported semantic token modifiers (for extra tagging like declaration, readonly, etc.)
var SemanticTokenModifiers = []string{
	"declaration",
	"defaultLibrary",
}

// SDLHandler implements the LSP server handlers for SDL schemas
type SDLHandler struct {
	mu      sync.RWMutex
	content map[string]string
	modules map[string]*ast.Module
}

// NewSDLHandler creates and returns a new SDLHandler instance
func NewSDLHandler() *SDLHandler {
	return &SDLHandler{
		content: make(map[string]string),
		modules: make(map[string]*ast.Module),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *SDLHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider:   ptrBool(false),
				TriggerCharacters: []string{"@"},
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *SDLHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *SDLHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	return nil
}

func (h *SDLHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *SDLHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Debugf("opened %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidClose handles file close notifications from the editor
func (h *SDLHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.modules, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor.
// The server asks for full document sync, so the last change carries the
// whole text.
func (h *SDLHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	for i := len(params.ContentChanges) - 1; i >= 0; i-- {
		switch change := params.ContentChanges[i].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return h.update(ctx, params.TextDocument.URI, change.Text)
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				return h.update(ctx, params.TextDocument.URI, change.Text)
			}
		}
	}
	return nil
}

// TextDocumentCompletion offers keywords, primitive types, annotation names
// and the structs declared in the document.
func (h *SDLHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	m := h.modules[path]
	h.mu.RUnlock()

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completions(m),
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *SDLHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	source, err := h.source(ctx, path, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens := collectSemanticTokens(path, source)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

// source returns the editor's copy of a document, reading it from disk when
// the editor never opened it.
func (h *SDLHandler) source(ctx *glsp.Context, path string, uri protocol.DocumentUri) (string, error) {
	h.mu.RLock()
	text, ok := h.content[path]
	h.mu.RUnlock()
	if ok {
		return text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := h.update(ctx, uri, string(data)); err != nil {
		return "", err
	}
	return string(data), nil
}

// update stores text, checks it and publishes the resulting diagnostics. An
// empty list clears earlier ones.
func (h *SDLHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	m, diagnostics := check(path, text)

	h.mu.Lock()
	h.content[path] = text
	if m != nil {
		h.modules[path] = m
	}
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

// check parses and transforms a document the way the compiler would, using
// the project file next to it when there is one.
func check(path, text string) (*ast.Module, []protocol.Diagnostic) {
	m, err := parser.Parse(path, text)
	if err != nil {
		return nil, ConvertError(err)
	}

	cfg, err := config.Load(filepath.Join(filepath.Dir(path), config.FileName))
	if err != nil {
		cfg = config.Default()
	}
	out, err := transform.Run(m, transform.Options{
		Mode:            cfg.ParsedMode(),
		ImplicitService: cfg.ImplicitService,
	})
	if err != nil {
		return m, ConvertError(err)
	}

	// Rendering catches the ordering rules the transforms leave alone.
	tgt, err := backend.Lookup("python")
	if err == nil {
		_, err = backend.Generate(out, tgt, cfg.ParsedMode())
	}
	if err != nil {
		return m, ConvertError(err)
	}
	return m, []protocol.Diagnostic{}
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	log.Debugf("sending %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
