package backend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/emit"
	"github.com/datawire/adaptive/internal/transform"
)

var quarkReserved = setOf(
	"class", "interface", "primitive", "extends", "package", "import", "macro",
	"new", "return", "if", "else", "while", "break", "continue", "null",
	"true", "false", "self", "super", "static", "void",
	"int", "long", "float", "bool", "byte", "String", "List", "Map", "Object",
)

var quarkTypes = map[string]string{
	"bool":    "bool",
	"boolean": "bool",
	"byte":    "byte",
	"int":     "int",
	"int32":   "int",
	"int64":   "long",
	"float":   "float",
	"double":  "float",
	"string":  "String",
	"void":    "void",
}

// quarkTarget renders the Java-like language the first generators were
// written for. It has no exceptions, so method fallbacks are not rendered.
type quarkTarget struct{}

func newQuarkTarget() *quarkTarget { return &quarkTarget{} }

func (*quarkTarget) Name() string      { return "quark" }
func (*quarkTarget) Extension() string { return "q" }
func (*quarkTarget) RefPrefix() string { return "// " }

func (q *quarkTarget) Type(t *ast.TypeRef) string {
	switch {
	case t.IsVoid():
		return "void"
	case t.IsWireMap():
		return "Map<String,Object>"
	case t.IsWireList():
		return "List<Object>"
	case t.IsAny():
		return "Object"
	case t.IsList():
		return "List<" + q.Type(t.Elem()) + ">"
	}
	if name, ok := quarkTypes[t.Name]; ok {
		return name
	}
	return t.Name
}

func (*quarkTarget) Ident(name string) string {
	if quarkReserved[name] {
		return name + "_"
	}
	return name
}

func (q *quarkTarget) Expr(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return q.Ident(x.Name)
	case *ast.Self:
		return "self"
	case *ast.FieldOf:
		return q.Expr(x.X) + "." + q.Ident(x.Name)
	case *ast.Get:
		return fmt.Sprintf("%s.get(%s)", q.Expr(x.Map), strconv.Quote(x.Key))
	case *ast.Has:
		return fmt.Sprintf("%s.contains(%s)", q.Expr(x.Map), strconv.Quote(x.Key))
	case *ast.Call:
		return fmt.Sprintf("%s(%s)", x.Func, strings.Join(exprs(q, x.Args), ", "))
	case *ast.MethodCall:
		return fmt.Sprintf("%s.%s(%s)", q.Expr(x.Recv), q.Ident(x.Method), strings.Join(exprs(q, x.Args), ", "))
	case *ast.NewMap:
		return "new Map<String,Object>()"
	case *ast.NewList:
		return "new " + q.Type(ast.Type("List", x.Elem)) + "()"
	case *ast.NewStruct:
		return "new " + x.Type.Name + "()"
	case *ast.MapLit:
		entries := make([]string, len(x.Entries))
		for i, e := range x.Entries {
			entries[i] = strconv.Quote(e.Key) + ": " + q.Expr(e.Value)
		}
		return "{" + strings.Join(entries, ", ") + "}"
	case *ast.IntLit:
		return strconv.FormatInt(x.Value, 10)
	case *ast.Equals:
		return q.Expr(x.X) + " == " + q.Expr(x.Y)
	case *ast.IsNull:
		return q.Expr(x.X) + " == null"
	case *ast.NotNull:
		return q.Expr(x.X) + " != null"
	case *ast.StringLiteral:
		return quote(x)
	case *ast.NullLiteral:
		return "null"
	}
	panic(fmt.Sprintf("quark: unhandled expression %T", x))
}

func (q *quarkTarget) Stmt(e *emit.Emitter, s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Declare:
		value := "null"
		if s.Value != nil {
			value = q.Expr(s.Value)
		}
		e.Line("%s %s = %s;", q.Type(s.Type), q.Ident(s.Name), value)
	case *ast.Assign:
		e.Line("%s = %s;", q.Expr(s.Target), q.Expr(s.Value))
	case *ast.Put:
		e.Line("%s.put(%s, %s);", q.Expr(s.Map), strconv.Quote(s.Key), q.Expr(s.Value))
	case *ast.Append:
		e.Line("%s.add(%s);", q.Expr(s.List), q.Expr(s.Value))
	case *ast.If:
		closing := "}"
		if len(s.Else) > 0 {
			closing = ""
		}
		e.BlockWith(fmt.Sprintf("if (%s) {", q.Expr(s.Cond)), closing, func() { body(e, q, s.Then) })
		if len(s.Else) > 0 {
			e.BlockWith("} else {", "}", func() { body(e, q, s.Else) })
		}
	case *ast.ForEach:
		idx := q.Ident(s.Var) + "_idx"
		list := q.Expr(s.List)
		e.Line("int %s = 0;", idx)
		e.Block(fmt.Sprintf("while (%s < %s.size())", idx, list), func() {
			e.Line("%s %s = %s.get(%s);", q.Type(s.Elem), q.Ident(s.Var), list, idx)
			body(e, q, s.Body)
			e.Line("%s = %s + 1;", idx, idx)
		})
	case *ast.Return:
		if s.Value == nil {
			e.Line("return;")
		} else {
			e.Line("return %s;", q.Expr(s.Value))
		}
	case *ast.ExprStmt:
		e.Line(q.Expr(s.X) + ";")
	default:
		panic(fmt.Sprintf("quark: unhandled statement %T", s))
	}
}

func (q *quarkTarget) params(ps []*ast.Parameter) string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = q.Type(p.Type) + " " + q.Ident(p.Name)
	}
	return "(" + strings.Join(out, ", ") + ")"
}

func (q *quarkTarget) fields(e *emit.Emitter, fields []*ast.Field) {
	for _, f := range fields {
		if f.Default != nil {
			e.Line("%s %s = %s;", q.Type(f.Type), q.Ident(f.Name), q.Expr(f.Default))
		} else {
			e.Line("%s %s;", q.Type(f.Type), q.Ident(f.Name))
		}
	}
}

func (q *quarkTarget) Prologue(e *emit.Emitter, m *ast.Module, mode transform.Mode) {
	e.Line("// Generated by sdlc from module %s (%s). Do not edit.", m.Name, mode)
	e.Blank()
}

func (q *quarkTarget) Record(e *emit.Emitter, s *ast.Struct) {
	e.Block("class "+s.Name, func() {
		q.fields(e, s.Fields)
	})
	e.Blank()
}

func (q *quarkTarget) Function(e *emit.Emitter, f *ast.Function) {
	e.Block(q.Type(f.Returns)+" "+f.Name+q.params(f.Params), func() { body(e, q, f.Body) })
	e.Blank()
}

func (q *quarkTarget) OpenInterface(e *emit.Emitter, i *ast.Interface) {
	e.Line("interface %s {", i.Name)
	e.Indent()
}

func (q *quarkTarget) MethodSig(e *emit.Emitter, _ *ast.Interface, m *ast.MethodSig) {
	e.Line("%s %s%s;", q.Type(m.Returns), q.Ident(m.Name), q.params(m.Params))
}

func (q *quarkTarget) CloseInterface(e *emit.Emitter, _ *ast.Interface) {
	e.Dedent()
	e.Line("}")
	e.Blank()
}

func (q *quarkTarget) OpenClass(e *emit.Emitter, c *ast.Class) {
	e.Line("class %s {", c.Name)
	e.Indent()
	e.Blank()
	q.fields(e, c.Fields)
	if ctor := c.Constructor; ctor != nil {
		e.Blank()
		e.Block(c.Name+q.params(ctor.Params), func() { body(e, q, ctor.Body) })
	}
}

func (q *quarkTarget) Method(e *emit.Emitter, _ *ast.Class, m *ast.Method) {
	e.Blank()
	e.Block(q.Type(m.Returns)+" "+q.Ident(m.Name)+q.params(m.Params), func() { body(e, q, m.Body) })
}

func (q *quarkTarget) CloseClass(e *emit.Emitter, _ *ast.Class) {
	e.Dedent()
	e.Line("}")
	e.Blank()
}

func (*quarkTarget) Epilogue(*emit.Emitter, *ast.Module) {}

func (*quarkTarget) Format(src []byte) ([]byte, error) { return src, nil }
