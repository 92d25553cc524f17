package backend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/emit"
	"github.com/datawire/adaptive/internal/transform"
)

var pyReserved = setOf(
	"False", "None", "True", "and", "as", "assert", "async", "await", "break",
	"class", "continue", "def", "del", "elif", "else", "except", "finally",
	"for", "from", "global", "if", "import", "in", "is", "lambda", "nonlocal",
	"not", "or", "pass", "raise", "return", "try", "while", "with", "yield",
	"id", "type", "list", "dict", "str", "int", "float", "object", "self",
)

var pyTypes = map[string]string{
	"bool":    "bool",
	"boolean": "bool",
	"byte":    "int",
	"int":     "int",
	"int32":   "int",
	"int64":   "int",
	"float":   "float",
	"double":  "float",
	"string":  "str",
}

// pythonTarget renders plain classes and functions. Reference lines start
// with "## " and operation descriptions become docstrings.
type pythonTarget struct{}

func newPythonTarget() *pythonTarget { return &pythonTarget{} }

func (*pythonTarget) Name() string      { return "python" }
func (*pythonTarget) Extension() string { return "py" }
func (*pythonTarget) RefPrefix() string { return "## " }

func (p *pythonTarget) Type(t *ast.TypeRef) string {
	switch {
	case t.IsVoid():
		return "None"
	case t.IsWireMap():
		return "dict"
	case t.IsWireList(), t.IsList():
		return "list"
	case t.IsAny():
		return "object"
	}
	if name, ok := pyTypes[t.Name]; ok {
		return name
	}
	return t.Name
}

func (*pythonTarget) Ident(name string) string {
	if pyReserved[name] {
		return name + "_"
	}
	return name
}

func (p *pythonTarget) Expr(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return p.Ident(x.Name)
	case *ast.Self:
		return "self"
	case *ast.FieldOf:
		if _, ok := x.X.(*ast.Self); ok {
			return "self." + classField(x.Name)
		}
		return p.Expr(x.X) + "." + p.Ident(x.Name)
	case *ast.Get:
		return fmt.Sprintf("%s.get(%s)", p.Expr(x.Map), strconv.Quote(x.Key))
	case *ast.Has:
		return fmt.Sprintf("%s in %s", strconv.Quote(x.Key), p.Expr(x.Map))
	case *ast.Call:
		return fmt.Sprintf("%s(%s)", x.Func, strings.Join(exprs(p, x.Args), ", "))
	case *ast.MethodCall:
		return fmt.Sprintf("%s.%s(%s)", p.Expr(x.Recv), p.Ident(x.Method), strings.Join(exprs(p, x.Args), ", "))
	case *ast.NewMap:
		return "{}"
	case *ast.NewList:
		return "[]"
	case *ast.NewStruct:
		return x.Type.Name + "()"
	case *ast.MapLit:
		entries := make([]string, len(x.Entries))
		for i, e := range x.Entries {
			entries[i] = strconv.Quote(e.Key) + ": " + p.Expr(e.Value)
		}
		return "{" + strings.Join(entries, ", ") + "}"
	case *ast.IntLit:
		return strconv.FormatInt(x.Value, 10)
	case *ast.Equals:
		return p.Expr(x.X) + " == " + p.Expr(x.Y)
	case *ast.IsNull:
		return p.Expr(x.X) + " is None"
	case *ast.NotNull:
		return p.Expr(x.X) + " is not None"
	case *ast.StringLiteral:
		return quote(x)
	case *ast.NullLiteral:
		return "None"
	}
	panic(fmt.Sprintf("python: unhandled expression %T", x))
}

// suite writes an indented block, or pass when it is empty.
func (p *pythonTarget) suite(e *emit.Emitter, header string, stmts []ast.Stmt) {
	e.BlockWith(header, "", func() {
		if len(stmts) == 0 {
			e.Line("pass")
			return
		}
		body(e, p, stmts)
	})
}

func (p *pythonTarget) Stmt(e *emit.Emitter, s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Declare:
		value := "None"
		if s.Value != nil {
			value = p.Expr(s.Value)
		}
		e.Line("%s = %s", p.Ident(s.Name), value)
	case *ast.Assign:
		e.Line("%s = %s", p.Expr(s.Target), p.Expr(s.Value))
	case *ast.Put:
		e.Line("%s[%s] = %s", p.Expr(s.Map), strconv.Quote(s.Key), p.Expr(s.Value))
	case *ast.Append:
		e.Line("%s.append(%s)", p.Expr(s.List), p.Expr(s.Value))
	case *ast.If:
		p.suite(e, fmt.Sprintf("if %s:", p.Expr(s.Cond)), s.Then)
		if len(s.Else) > 0 {
			p.suite(e, "else:", s.Else)
		}
	case *ast.ForEach:
		p.suite(e, fmt.Sprintf("for %s in %s:", p.Ident(s.Var), p.Expr(s.List)), s.Body)
	case *ast.Return:
		if s.Value == nil {
			e.Line("return")
		} else {
			e.Line("return %s", p.Expr(s.Value))
		}
	case *ast.ExprStmt:
		e.Line(p.Expr(s.X))
	default:
		panic(fmt.Sprintf("python: unhandled statement %T", s))
	}
}

// params renders a parameter list. Defaults are kept only on a trailing run
// of defaulted parameters.
func (p *pythonTarget) params(self bool, ps []*ast.Parameter) string {
	first := len(ps)
	for first > 0 && ps[first-1].Default != nil {
		first--
	}
	var out []string
	if self {
		out = append(out, "self")
	}
	for i, param := range ps {
		name := p.Ident(param.Name)
		if i >= first {
			name += "=" + p.Expr(param.Default)
		}
		out = append(out, name)
	}
	return "(" + strings.Join(out, ", ") + ")"
}

func (p *pythonTarget) docstring(e *emit.Emitter, op *ast.Operation) {
	if op != nil && op.Description != nil && op.Description.Content != nil {
		e.Line(quote(op.Description.Content))
	}
}

func (p *pythonTarget) Prologue(e *emit.Emitter, m *ast.Module, mode transform.Mode) {
	e.Line("# Generated by sdlc from module %s (%s). Do not edit.", m.Name, mode)
	e.Blank()
}

// Record writes a slotted class whose constructor takes every field as a
// keyword argument.
func (p *pythonTarget) Record(e *emit.Emitter, s *ast.Struct) {
	slots := make([]string, len(s.Fields))
	args := []string{"self"}
	for i, f := range s.Fields {
		name := p.Ident(f.Name)
		slots[i] = strconv.Quote(name)
		def := "None"
		if f.Default != nil {
			def = p.Expr(f.Default)
		}
		args = append(args, name+"="+def)
	}
	tuple := "(" + strings.Join(slots, ", ") + ")"
	if len(slots) == 1 {
		tuple = "(" + slots[0] + ",)"
	}

	e.BlockWith(fmt.Sprintf("class %s(object):", s.Name), "", func() {
		e.Line("__slots__ = %s", tuple)
		e.Blank()
		e.BlockWith(fmt.Sprintf("def __init__(%s):", strings.Join(args, ", ")), "", func() {
			if len(s.Fields) == 0 {
				e.Line("pass")
			}
			for _, f := range s.Fields {
				name := p.Ident(f.Name)
				e.Line("self.%s = %s", name, name)
			}
		})
		e.Blank()
		e.BlockWith("def __eq__(self, other):", "", func() {
			e.BlockWith("if other.__class__ is not self.__class__:", "", func() {
				e.Line("return False")
			})
			e.Line("return all(getattr(self, s) == getattr(other, s) for s in self.__slots__)")
		})
		e.Blank()
		e.BlockWith("def __ne__(self, other):", "", func() {
			e.Line("return not self == other")
		})
	})
	e.Blank()
	e.Blank()
}

func (p *pythonTarget) Function(e *emit.Emitter, f *ast.Function) {
	p.suite(e, fmt.Sprintf("def %s%s:", f.Name, p.params(false, f.Params)), f.Body)
	e.Blank()
	e.Blank()
}

func (p *pythonTarget) OpenInterface(e *emit.Emitter, i *ast.Interface) {
	e.Line("class %s(object):", i.Name)
	e.Indent()
	if len(i.Methods) == 0 {
		e.Line("pass")
	}
}

func (p *pythonTarget) MethodSig(e *emit.Emitter, _ *ast.Interface, m *ast.MethodSig) {
	e.Blank()
	e.BlockWith(fmt.Sprintf("def %s%s:", p.Ident(m.Name), p.params(true, m.Params)), "", func() {
		p.docstring(e, m.Origin)
		e.Line("raise NotImplementedError()")
	})
}

func (p *pythonTarget) CloseInterface(e *emit.Emitter, _ *ast.Interface) {
	e.Dedent()
	e.Blank()
	e.Blank()
}

// classField names the attribute that holds a class field. Methods share
// the attribute namespace, so fields take a leading underscore that no
// operation name can have.
func classField(name string) string {
	return "_" + name
}

// OpenClass writes the class header, its constructor and a set_<field>
// method for every field that starts out null.
func (p *pythonTarget) OpenClass(e *emit.Emitter, c *ast.Class) {
	e.Line("class %s(object):", c.Name)
	e.Indent()
	e.Blank()

	var params []*ast.Parameter
	var stmts []ast.Stmt
	if c.Constructor != nil {
		params = c.Constructor.Params
		stmts = c.Constructor.Body
	}
	e.BlockWith(fmt.Sprintf("def __init__%s:", p.params(true, params)), "", func() {
		for _, f := range c.Fields {
			value := "None"
			if f.Default != nil {
				value = p.Expr(f.Default)
			}
			e.Line("self.%s = %s", classField(f.Name), value)
		}
		body(e, p, stmts)
		if len(c.Fields) == 0 && len(stmts) == 0 {
			e.Line("pass")
		}
	})

	for _, f := range c.Fields {
		if _, ok := f.Default.(*ast.NullLiteral); !ok {
			continue
		}
		name := p.Ident(f.Name)
		e.Blank()
		e.BlockWith(fmt.Sprintf("def set_%s(self, %s):", f.Name, name), "", func() {
			e.Line("self.%s = %s", classField(f.Name), name)
		})
	}
}

func (p *pythonTarget) Method(e *emit.Emitter, _ *ast.Class, m *ast.Method) {
	e.Blank()
	e.BlockWith(fmt.Sprintf("def %s%s:", p.Ident(m.Name), p.params(true, m.Params)), "", func() {
		p.docstring(e, m.Origin)
		if m.Fallback == nil {
			if len(m.Body) == 0 {
				e.Line("pass")
			}
			body(e, p, m.Body)
			return
		}
		p.suite(e, "try:", m.Body)
		e.BlockWith("except Exception:", "", func() {
			e.Line("return %s", p.Expr(m.Fallback))
		})
	})
}

func (p *pythonTarget) CloseClass(e *emit.Emitter, _ *ast.Class) {
	e.Dedent()
	e.Blank()
	e.Blank()
}

func (*pythonTarget) Epilogue(*emit.Emitter, *ast.Module) {}

func (*pythonTarget) Format(src []byte) ([]byte, error) { return src, nil }
