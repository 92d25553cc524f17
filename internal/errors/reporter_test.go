package errors

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestErrorReporter(t *testing.T) {
	source := `module M {
    struct S { int32; };
};`

	reporter := NewErrorReporter("test.sdl", source)

	err := &ParseError{
		Code:    ErrorSyntax,
		Pos:     ast.Position{Filename: "test.sdl", Line: 2, Column: 21},
		Token:   ";",
		Message: `unexpected token ";" (expected <ident>)`,
	}
	formatted := reporter.Report(err)

	assert.Contains(t, formatted, "error["+ErrorSyntax+"]")
	assert.Contains(t, formatted, "test.sdl:2:21")
	assert.Contains(t, formatted, "struct S { int32; };")
	assert.Contains(t, formatted, "                    ^")
	assert.Contains(t, formatted, `note: unexpected ";"`)
}

func TestCompileErrorIs(t *testing.T) {
	err := Compile(ErrStructAfterOperation, "Pet", ast.Position{}, "struct Pet follows operation %s", "findPets")

	assert.ErrorIs(t, err, ErrStructAfterOperation)
	assert.Equal(t, ErrorStructAfterOperation, err.Code)
	assert.Equal(t, ErrorStructAfterOperation, Code(err))
	assert.Contains(t, err.Error(), "in Pet")
	assert.Contains(t, err.Error(), "findPets")

	var ce *CompileError
	assert.True(t, errors.As(error(err), &ce))
}

func TestCompileErrorHelp(t *testing.T) {
	err := Compile(ErrMissingService, "Inventory", ast.Position{Filename: "inv.sdl", Line: 1, Column: 1}, "@cache needs a service module")
	reporter := NewErrorReporter("inv.sdl", "module Inventory {};")

	formatted := reporter.Report(err)
	assert.Contains(t, formatted, "error["+ErrorMissingService+"]")
	assert.Contains(t, formatted, "help: annotate the module with @service")
	assert.Contains(t, formatted, "note: in definition Inventory")
}

func TestReportWithoutPosition(t *testing.T) {
	err := &IOError{Op: "read", Path: "missing.sdl", Err: fs.ErrNotExist}
	reporter := NewErrorReporter("missing.sdl", "")

	assert.Equal(t, "error: read missing.sdl: file does not exist\n", reporter.Report(err))
	assert.Equal(t, ErrorIO, Code(err))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, "", Code(errors.New("boom")))
}
