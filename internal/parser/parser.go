package parser

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/datawire/adaptive/grammar"
	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/errors"
)

// Parse parses one SDL module. On failure it returns a *errors.ParseError
// and no module.
func Parse(filename, source string) (*ast.Module, error) {
	file, err := grammar.ParseString(filename, source)
	if err != nil {
		return nil, toParseError(filename, source, err)
	}
	return reduceFile(file)
}

// ParseFile reads and parses path. Read failures are *errors.IOError.
func ParseFile(path string) (*ast.Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.IOError{Op: "read", Path: path, Err: err}
	}
	return Parse(path, string(source))
}

func toParseError(filename, source string, err error) *errors.ParseError {
	var perr participle.Error
	if !stderrors.As(err, &perr) {
		return &errors.ParseError{
			Code:    errors.ErrorSyntax,
			Pos:     ast.Position{Filename: filename},
			Message: err.Error(),
		}
	}
	pos := perr.Position()
	return &errors.ParseError{
		Code: errors.ErrorSyntax,
		Pos: ast.Position{
			Filename: filename,
			Offset:   pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		},
		Token:   tokenAt(source, pos.Offset),
		Message: perr.Message(),
	}
}

// tokenAt returns the text of the token starting at offset, or "" at end of
// input.
func tokenAt(source string, offset int) string {
	if offset < 0 || offset >= len(source) {
		return ""
	}
	lex, err := grammar.SDLLexer.Lex("", strings.NewReader(source[offset:]))
	if err != nil {
		return ""
	}
	tok, err := lex.Next()
	if err != nil || tok.EOF() {
		return ""
	}
	return tok.Value
}
