package errors

import (
	"errors"
	"fmt"

	"github.com/datawire/adaptive/internal/ast"
)

// Sentinels carried by CompileError. Match them with errors.Is.
var (
	ErrUnknownAnnotation    = errors.New("unknown annotation")
	ErrAnnotationArity      = errors.New("wrong number of annotation arguments")
	ErrMissingService       = errors.New("module is not annotated @service")
	ErrUnknownIndexKey      = errors.New("index key is not a parameter")
	ErrInvalidCacheAge      = errors.New("cache age is not a number of seconds")
	ErrUnsupportedType      = errors.New("unsupported generic type")
	ErrStructAfterOperation = errors.New("struct declared after an operation")
	ErrUnknownTarget        = errors.New("unknown target language")
	ErrUnknownMode          = errors.New("unknown compile mode")
)

var codes = map[error]string{
	ErrUnknownAnnotation:    ErrorUnknownAnnotation,
	ErrAnnotationArity:      ErrorAnnotationArity,
	ErrMissingService:       ErrorMissingService,
	ErrUnknownIndexKey:      ErrorUnknownIndexKey,
	ErrInvalidCacheAge:      ErrorInvalidCacheAge,
	ErrUnsupportedType:      ErrorUnsupportedType,
	ErrStructAfterOperation: ErrorStructAfterOperation,
	ErrUnknownTarget:        ErrorUnknownTarget,
	ErrUnknownMode:          ErrorUnknownMode,
}

// ParseError reports source text that does not match the grammar.
type ParseError struct {
	Code    string
	Pos     ast.Position
	Token   string // offending text, empty at end of input
	Message string
}

func (e *ParseError) Error() string {
	near := "end of input"
	if e.Token != "" {
		near = fmt.Sprintf("%q", e.Token)
	}
	return fmt.Sprintf("%s:%d:%d: syntax error near %s: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, near, e.Message)
}

// CompileError reports a well formed module that cannot be generated.
// Definition names the offending module, struct or operation.
type CompileError struct {
	Code       string
	Definition string
	Pos        ast.Position
	Message    string
	Err        error
}

// Compile builds a CompileError around one of the package sentinels.
func Compile(sentinel error, definition string, pos ast.Position, format string, args ...any) *CompileError {
	return &CompileError{
		Code:       codes[sentinel],
		Definition: definition,
		Pos:        pos,
		Message:    fmt.Sprintf(format, args...),
		Err:        sentinel,
	}
}

func (e *CompileError) Error() string {
	loc := ""
	if e.Pos.Filename != "" {
		loc = fmt.Sprintf("%s:%d:%d: ", e.Pos.Filename, e.Pos.Line, e.Pos.Column)
	}
	if e.Definition != "" {
		return fmt.Sprintf("%sin %s: %v: %s", loc, e.Definition, e.Err, e.Message)
	}
	return fmt.Sprintf("%s%v: %s", loc, e.Err, e.Message)
}

func (e *CompileError) Unwrap() error { return e.Err }

// IOError wraps a failure to read a source or write an output.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Code returns the diagnostic code of err, or "" if err is not one of the
// package error kinds.
func Code(err error) string {
	var pe *ParseError
	var ce *CompileError
	var ie *IOError
	switch {
	case errors.As(err, &pe):
		return pe.Code
	case errors.As(err, &ce):
		return ce.Code
	case errors.As(err, &ie):
		return ErrorIO
	}
	return ""
}
