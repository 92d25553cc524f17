package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/datawire/adaptive/internal/lsp"
)

func fileURI(t *testing.T, path string) string {
	absPath, err := filepath.Abs(path)
	require.NoError(t, err, "Failed to get absolute path")
	return "file://" + filepath.ToSlash(absPath)
}

// recorder is a glsp context that keeps every published diagnostic.
func recorder() (*glsp.Context, *[]*protocol.PublishDiagnosticsParams) {
	var published []*protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{Notify: func(method string, params any) {
		if method == protocol.ServerTextDocumentPublishDiagnostics {
			published = append(published, params.(*protocol.PublishDiagnosticsParams))
		}
	}}
	return ctx, &published
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewSDLHandler()

	uri := fileURI(t, filepath.Join("../../examples", "inventory.sdl"))
	ctx, published := recorder()
	params := &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{
			URI: uri,
		},
	}

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, params)
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Greater(t, len(decoded), 15)

	assertToken(t, &decoded[0], 1, 1, 8, "modifier", nil)
	assertToken(t, &decoded[1], 2, 1, 6, "keyword", nil)
	assertToken(t, &decoded[2], 2, 8, 9, "namespace", []string{"declaration"})
	assertToken(t, &decoded[3], 3, 5, 6, "keyword", nil)
	assertToken(t, &decoded[4], 3, 12, 4, "type", []string{"declaration"})
	assertToken(t, &decoded[5], 4, 9, 6, "type", []string{"defaultLibrary"})
	assertToken(t, &decoded[6], 4, 16, 3, "property", []string{"declaration"})
	assertToken(t, &decoded[7], 5, 9, 5, "type", []string{"defaultLibrary"})
	assertToken(t, &decoded[8], 5, 15, 5, "property", []string{"declaration"})
	assertToken(t, &decoded[9], 7, 5, 6, "modifier", nil)
	assertToken(t, &decoded[10], 7, 12, 4, "string", nil)
	assertToken(t, &decoded[11], 8, 5, 4, "type", nil)
	assertToken(t, &decoded[12], 8, 10, 6, "function", []string{"declaration"})
	assertToken(t, &decoded[13], 8, 17, 6, "type", []string{"defaultLibrary"})
	assertToken(t, &decoded[14], 8, 24, 3, "parameter", []string{"declaration"})

	// The file was never opened, so it was checked on first use.
	require.Len(t, *published, 1)
	assert.Empty(t, (*published)[0].Diagnostics)
}

func TestSemanticTokensSkipOpaqueBodies(t *testing.T) {
	handler := lsp.NewSDLHandler()
	uri := fileURI(t, filepath.Join(t.TempDir(), "m.sdl"))
	ctx, _ := recorder()

	require.NoError(t, handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: `// doc
module M {
    defaults { base "x"; };
};`},
	}))
	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 5)
	assertToken(t, &decoded[0], 1, 1, 6, "comment", nil)
	assertToken(t, &decoded[1], 2, 1, 6, "keyword", nil)
	assertToken(t, &decoded[2], 2, 8, 1, "namespace", []string{"declaration"})
	assertToken(t, &decoded[3], 3, 5, 8, "keyword", nil)
	assertToken(t, &decoded[4], 3, 21, 3, "string", nil)
}

func TestDiagnostics(t *testing.T) {
	handler := lsp.NewSDLHandler()
	dir := t.TempDir()
	uri := fileURI(t, filepath.Join(dir, "m.sdl"))
	ctx, published := recorder()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "adaptive.hujson"), []byte(`{"implicitService": false}`), 0o644))

	require.NoError(t, handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "module M {\n    struct S { int32 x }\n};"},
	}))
	require.Len(t, *published, 1)
	diags := (*published)[0].Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, uint32(1), diags[0].Range.Start.Line)
	assert.Equal(t, "E0100", diags[0].Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)

	require.NoError(t, handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "module M {\n    void ping();\n};"}},
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
	}))
	require.Len(t, *published, 2)
	diags = (*published)[1].Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, "E0202", diags[0].Code.Value)
	assert.Contains(t, diags[0].Message, "help: annotate the module with @service")

	// The project file next to the schema sets the rules.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "adaptive.hujson"), []byte(`{"implicitService": true}`), 0o644))
	require.NoError(t, handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "module M {\n    void ping();\n    struct S { int32 x; };\n};"}},
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
	}))
	require.Len(t, *published, 3)
	diags = (*published)[2].Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, "E0206", diags[0].Code.Value)
}

func TestCompletion(t *testing.T) {
	handler := lsp.NewSDLHandler()
	uri := fileURI(t, filepath.Join(t.TempDir(), "m.sdl"))
	ctx, _ := recorder()

	require.NoError(t, handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "module Geo { struct Point { int32 x; }; };"},
	}))

	result, err := handler.TextDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)

	labels := map[string]protocol.CompletionItemKind{}
	for _, item := range result.(*protocol.CompletionList).Items {
		labels[item.Label] = *item.Kind
	}
	assert.Equal(t, protocol.CompletionItemKindKeyword, labels["module"])
	assert.Equal(t, protocol.CompletionItemKindProperty, labels["@cache"])
	assert.Equal(t, protocol.CompletionItemKindTypeParameter, labels["int64"])
	assert.Equal(t, protocol.CompletionItemKindStruct, labels["Point"])

	require.NoError(t, handler.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	result, err = handler.TextDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)
	for _, item := range result.(*protocol.CompletionList).Items {
		assert.NotEqual(t, "Point", item.Label)
	}
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
