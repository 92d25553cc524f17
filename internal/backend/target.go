// Package backend renders a transformed module as source text in one of
// several target languages.
//
// The transforms produce a language neutral tree of functions, interfaces
// and classes. A Target knows how to spell that tree in its own syntax;
// Generate walks the module and drives the Target, echoing the schema on a
// reference channel alongside the generated code.
package backend

import (
	"sort"
	"strconv"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/emit"
	"github.com/datawire/adaptive/internal/errors"
	"github.com/datawire/adaptive/internal/transform"
)

// Target is one output language.
//
// Generate calls Prologue once, then Record for every struct followed by
// Function for each of its helpers, then the interface and class hooks in
// definition order, and finally Epilogue. Format post-processes the whole
// file.
type Target interface {
	Name() string
	Extension() string

	// RefPrefix starts every line of the schema echo, e.g. "// ".
	RefPrefix() string

	Type(t *ast.TypeRef) string
	Ident(name string) string
	Expr(x ast.Expr) string
	Stmt(e *emit.Emitter, s ast.Stmt)

	Prologue(e *emit.Emitter, m *ast.Module, mode transform.Mode)
	Record(e *emit.Emitter, s *ast.Struct)
	Function(e *emit.Emitter, f *ast.Function)
	OpenInterface(e *emit.Emitter, i *ast.Interface)
	MethodSig(e *emit.Emitter, i *ast.Interface, m *ast.MethodSig)
	CloseInterface(e *emit.Emitter, i *ast.Interface)
	OpenClass(e *emit.Emitter, c *ast.Class)
	Method(e *emit.Emitter, c *ast.Class, m *ast.Method)
	CloseClass(e *emit.Emitter, c *ast.Class)
	Epilogue(e *emit.Emitter, m *ast.Module)

	Format(src []byte) ([]byte, error)
}

// Targets are stateful while generating one file, so the registry holds
// constructors.
var targets = map[string]func() Target{
	"go":     func() Target { return newGoTarget() },
	"python": func() Target { return newPythonTarget() },
	"quark":  func() Target { return newQuarkTarget() },
}

// Lookup returns a fresh Target for a language name.
func Lookup(name string) (Target, error) {
	ctor, ok := targets[name]
	if !ok {
		return nil, errors.Compile(errors.ErrUnknownTarget, "", ast.Position{}, "%q is not one of %v", name, Names())
	}
	return ctor(), nil
}

// Names lists the registered targets in sorted order.
func Names() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// body renders a statement list through t.
func body(e *emit.Emitter, t Target, stmts []ast.Stmt) {
	for _, s := range stmts {
		t.Stmt(e, s)
	}
}

func exprs(t Target, args []ast.Expr) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = t.Expr(a)
	}
	return out
}

// quote spells an SDL string literal as a double quoted literal with C
// style escapes, which every target accepts.
func quote(s *ast.StringLiteral) string {
	return strconv.Quote(s.Value())
}
