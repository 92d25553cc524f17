package backend

import (
	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/emit"
	"github.com/datawire/adaptive/internal/errors"
	"github.com/datawire/adaptive/internal/transform"
)

// Options tune Generate. The zero value indents with four spaces and
// echoes the schema.
type Options struct {
	Indent string
	NoRef  bool
}

// Generate renders mod, which must already have been through
// transform.Run, as a source file for target.
func Generate(mod *ast.Module, target Target, mode transform.Mode) ([]byte, error) {
	return GenerateWith(mod, target, mode, Options{})
}

func GenerateWith(mod *ast.Module, target Target, mode transform.Mode, opts Options) ([]byte, error) {
	out := emit.New(opts.Indent)
	g := &generator{
		target: target,
		mode:   mode,
		out:    out,
		ref:    out.Ref(target.RefPrefix()),
		noRef:  opts.NoRef,
		module: mod,
	}
	if err := ast.Walk(mod, g); err != nil {
		return nil, err
	}
	return target.Format([]byte(out.String()))
}

type generator struct {
	ast.NopVisitor

	target Target
	mode   transform.Mode
	out    *emit.Emitter
	ref    *emit.Emitter
	noRef  bool
	module *ast.Module

	sawOperation bool
	iface        *ast.Interface
	class        *ast.Class
}

func (g *generator) echo(def ast.Definition) {
	if !g.noRef {
		g.ref.Echo(def)
	}
}

func (g *generator) VisitModule(m *ast.Module) error {
	g.target.Prologue(g.out, m, g.mode)
	if !g.noRef {
		g.ref.ModuleHead(m)
	}
	return nil
}

func (g *generator) LeaveModule(m *ast.Module) error {
	if !g.noRef {
		g.ref.ModuleTail(m)
	}
	g.target.Epilogue(g.out, m)
	return nil
}

func (g *generator) VisitDescription(d *ast.Description) error {
	g.echo(d)
	return ast.SkipChildren
}

func (g *generator) VisitDefaults(d *ast.Defaults) error {
	g.echo(d)
	return nil
}

// VisitStruct renders the record. Its helpers follow as Function children.
func (g *generator) VisitStruct(s *ast.Struct) error {
	if g.sawOperation {
		return errors.Compile(errors.ErrStructAfterOperation, s.Name, s.Pos,
			"move struct %s above the first operation of module %s", s.Name, g.module.Name)
	}
	g.echo(s)
	g.target.Record(g.out, s)
	return nil
}

func (g *generator) VisitField(*ast.Field) error {
	return ast.SkipChildren
}

func (g *generator) VisitOperation(*ast.Operation) error {
	g.sawOperation = true
	return ast.SkipChildren
}

func (g *generator) VisitFunction(f *ast.Function) error {
	g.target.Function(g.out, f)
	return ast.SkipChildren
}

func (g *generator) VisitInterface(i *ast.Interface) error {
	g.iface = i
	g.target.OpenInterface(g.out, i)
	return nil
}

func (g *generator) LeaveInterface(i *ast.Interface) error {
	g.target.CloseInterface(g.out, i)
	g.iface = nil
	return nil
}

func (g *generator) VisitMethodSig(m *ast.MethodSig) error {
	if m.Origin != nil {
		g.echo(m.Origin)
	}
	g.target.MethodSig(g.out, g.iface, m)
	return ast.SkipChildren
}

func (g *generator) VisitClass(c *ast.Class) error {
	g.class = c
	g.target.OpenClass(g.out, c)
	return nil
}

func (g *generator) LeaveClass(c *ast.Class) error {
	g.target.CloseClass(g.out, c)
	g.class = nil
	return nil
}

// VisitMethod skips the constructor, which OpenClass renders with the
// class fields.
func (g *generator) VisitMethod(m *ast.Method) error {
	if m == g.class.Constructor {
		return ast.SkipChildren
	}
	if m.Origin != nil {
		g.echo(m.Origin)
	}
	g.target.Method(g.out, g.class, m)
	return ast.SkipChildren
}
