package lsp

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/datawire/adaptive/grammar"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the semanticTokenTypes array
// TokenModifiers is a bitmask based on semanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into semanticTokenTypes
	TokenModifiers int // bitmask
}

var keywords = map[string]bool{
	"module":   true,
	"struct":   true,
	"desc":     true,
	"defaults": true,
	"null":     true,
}

var builtinTypes = map[string]bool{
	"void":    true,
	"bool":    true,
	"boolean": true,
	"byte":    true,
	"int":     true,
	"int32":   true,
	"int64":   true,
	"float":   true,
	"double":  true,
	"string":  true,
	"List":    true,
}

var symbols = grammar.SDLLexer.Symbols()

// scope is what the enclosing brace or parenthesis holds.
type scope int

const (
	scopeModule scope = iota
	scopeStruct
	scopeParams
	scopeOpaque
)

// collectSemanticTokens classifies the tokens of a document. It works on
// the raw token stream rather than the syntax tree, so a document with a
// syntax error is still highlighted up to the error.
func collectSemanticTokens(filename, source string) []SemanticToken {
	toks := significant(filename, source)

	var out []SemanticToken
	var scopes []scope
	top := func() scope {
		if len(scopes) == 0 {
			return scopeModule
		}
		return scopes[len(scopes)-1]
	}
	pop := func() {
		if len(scopes) > 0 {
			scopes = scopes[:len(scopes)-1]
		}
	}
	value := func(i int) string {
		if i < 0 || i >= len(toks) {
			return ""
		}
		return toks[i].Value
	}

	for i, tok := range toks {
		switch tok.Type {
		case symbols["Comment"]:
			out = append(out, makeToken(tok, "comment", 0)...)
		case symbols["String"]:
			out = append(out, makeToken(tok, "string", 0)...)
		case symbols["Number"]:
			if top() != scopeOpaque {
				out = append(out, makeToken(tok, "number", 0)...)
			}
		case symbols["Punct"]:
			switch tok.Value {
			case "{":
				switch {
				case value(i-2) == "struct":
					scopes = append(scopes, scopeStruct)
				case value(i-1) == "defaults" || value(i-1) == ")":
					scopes = append(scopes, scopeOpaque)
				default:
					scopes = append(scopes, scopeModule)
				}
			case "(":
				scopes = append(scopes, scopeParams)
			case "}", ")":
				pop()
			}
		case symbols["Ident"]:
			if top() == scopeOpaque {
				if tok.Value == "desc" {
					out = append(out, makeToken(tok, "keyword", 0)...)
				}
				continue
			}
			out = append(out, classify(tok, value(i-1), value(i+1), top(), isIdent(toks, i-1))...)
		}
	}
	return out
}

func classify(tok lexer.Token, prev, next string, sc scope, prevIdent bool) []SemanticToken {
	switch {
	case prev == "@":
		return makeAt(tok)
	case keywords[tok.Value]:
		return makeToken(tok, "keyword", 0)
	case prev == "module":
		return makeToken(tok, "namespace", declaration)
	case prev == "struct":
		return makeToken(tok, "type", declaration)
	}

	// A declared name follows its type and ends the declaration.
	if (prevIdent || prev == ">") && strings.Contains(";=(,)", next) && next != "" {
		switch {
		case next == "(":
			return makeToken(tok, "function", declaration)
		case sc == scopeParams:
			return makeToken(tok, "parameter", declaration)
		default:
			return makeToken(tok, "property", declaration)
		}
	}

	if builtinTypes[tok.Value] {
		return makeToken(tok, "type", defaultLibrary)
	}
	return makeToken(tok, "type", 0)
}

func isIdent(toks []lexer.Token, i int) bool {
	return i >= 0 && toks[i].Type == symbols["Ident"] && !keywords[toks[i].Value]
}

// significant lexes source, dropping whitespace. Lexing stops at the first
// error.
func significant(filename, source string) []lexer.Token {
	lex, err := grammar.SDLLexer.LexString(filename, source)
	if err != nil {
		return nil
	}
	var toks []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			return toks
		}
		if tok.Type != symbols["Whitespace"] {
			toks = append(toks, tok)
		}
	}
}

const (
	declaration    = 1 << 0
	defaultLibrary = 1 << 1
)

// makeAt highlights an annotation name together with its "@".
func makeAt(tok lexer.Token) []SemanticToken {
	tok.Pos.Column--
	tok.Value = "@" + tok.Value
	return makeToken(tok, "modifier", 0)
}

func makeToken(tok lexer.Token, tokenType string, modifiers int) []SemanticToken {
	// Tokens may not span lines
	if strings.Contains(tok.Value, "\n") || tok.Pos.Line == 0 {
		return nil
	}
	return []SemanticToken{{
		Line:           uint32(tok.Pos.Line - 1),
		StartChar:      uint32(tok.Pos.Column - 1),
		Length:         uint32(len(tok.Value)),
		TokenType:      tokenTypeIndex(tokenType),
		TokenModifiers: modifiers,
	}}
}

func tokenTypeIndex(name string) int {
	for i, t := range SemanticTokenTypes {
		if t == name {
			return i
		}
	}
	return 0
}
