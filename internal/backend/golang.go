package backend

import (
	"fmt"
	"go/format"
	"strconv"
	"strings"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/emit"
	"github.com/datawire/adaptive/internal/transform"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var goPrimitives = map[string]string{
	"bool":    "bool",
	"boolean": "bool",
	"byte":    "byte",
	"int":     "int",
	"int32":   "int32",
	"int64":   "int64",
	"float":   "float32",
	"double":  "float64",
	"string":  "string",
}

// goReserved holds keywords, predeclared identifiers the generated code
// relies on, and the names of the runtime helpers below.
var goReserved = setOf(
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type", "var",
	"any", "append", "bool", "byte", "error", "false", "float32", "float64",
	"int", "int32", "int64", "len", "make", "new", "nil", "panic", "recover",
	"string", "true", "reflect", "self",
	"wireGet", "wireHas", "wireMaps", "wireConvert", "wireNumber",
)

// goRuntime is emitted once per file. It tolerates the shapes a wire map
// takes after a JSON round trip: numbers of another width and []any where
// a typed slice is expected.
const goRuntime = `func wireGet[T any](m map[string]any, key string) T {
	var zero T
	v, ok := m[key]
	if !ok || v == nil {
		return zero
	}
	if t, ok := v.(T); ok {
		return t
	}
	if out, ok := wireConvert(reflect.ValueOf(v), reflect.TypeOf(&zero).Elem()); ok {
		return out.Interface().(T)
	}
	return zero
}

func wireHas(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func wireMaps(l []any) []map[string]any {
	out := make([]map[string]any, len(l))
	for i, v := range l {
		out[i], _ = v.(map[string]any)
	}
	return out
}

func wireConvert(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	switch {
	case v.Kind() == reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(t), true
		}
		return wireConvert(v.Elem(), t)
	case v.Type().AssignableTo(t):
		return v, true
	case wireNumber(v.Kind()) && wireNumber(t.Kind()):
		return v.Convert(t), true
	case v.Kind() == reflect.Slice && t.Kind() == reflect.Slice:
		out := reflect.MakeSlice(t, v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, ok := wireConvert(v.Index(i), t.Elem())
			if !ok {
				return reflect.Value{}, false
			}
			out.Index(i).Set(elem)
		}
		return out, true
	case t.Kind() == reflect.Pointer:
		elem, ok := wireConvert(v, t.Elem())
		if !ok {
			return reflect.Value{}, false
		}
		out := reflect.New(t.Elem())
		out.Elem().Set(elem)
		return out, true
	}
	return reflect.Value{}, false
}

func wireNumber(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}`

var title = cases.Title(language.Und, cases.NoLower)

// exported capitalizes a schema name so it is visible outside the
// generated package.
func exported(name string) string {
	return title.String(name)
}

// goTarget renders one self-contained Go file per module. Records and
// classes are pointers, interfaces are Go interfaces, and failures inside
// a method with a fallback are recovered. Primitives declared with a null
// default are pointers so that null survives the wire.
type goTarget struct {
	interfaces map[string]bool

	// unread holds the locals of the body being rendered that are
	// assigned but never read.
	unread map[string]bool
}

func newGoTarget() *goTarget {
	return &goTarget{interfaces: map[string]bool{}}
}

func (*goTarget) Name() string      { return "go" }
func (*goTarget) Extension() string { return "go" }
func (*goTarget) RefPrefix() string { return "// " }

func (g *goTarget) Type(t *ast.TypeRef) string {
	switch {
	case t.IsVoid():
		return ""
	case t.IsWireMap():
		return "map[string]any"
	case t.IsWireList():
		return "[]any"
	case t.IsAny():
		return "any"
	case t.IsList():
		return "[]" + g.Type(t.Elem())
	}
	if p, ok := goPrimitives[t.Name]; ok {
		if t.Nullable {
			return "*" + p
		}
		return p
	}
	if g.interfaces[t.Name] {
		return t.Name
	}
	return "*" + t.Name
}

func (*goTarget) Ident(name string) string {
	if goReserved[name] {
		return name + "_"
	}
	return name
}

func (g *goTarget) Expr(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return g.Ident(x.Name)
	case *ast.Self:
		return "self"
	case *ast.FieldOf:
		if _, ok := x.X.(*ast.Self); ok {
			return "self." + g.Ident(x.Name)
		}
		return g.Expr(x.X) + "." + exported(x.Name)
	case *ast.Get:
		return fmt.Sprintf("wireGet[%s](%s, %q)", g.Type(x.Type), g.Expr(x.Map), x.Key)
	case *ast.Has:
		return fmt.Sprintf("wireHas(%s, %q)", g.Expr(x.Map), x.Key)
	case *ast.Call:
		return fmt.Sprintf("%s(%s)", x.Func, strings.Join(exprs(g, x.Args), ", "))
	case *ast.MethodCall:
		return fmt.Sprintf("%s.%s(%s)", g.Expr(x.Recv), exported(x.Method), strings.Join(exprs(g, x.Args), ", "))
	case *ast.NewMap:
		return "map[string]any{}"
	case *ast.NewList:
		return g.Type(ast.Type("List", x.Elem)) + "{}"
	case *ast.NewStruct:
		return "New" + x.Type.Name + "()"
	case *ast.MapLit:
		entries := make([]string, len(x.Entries))
		for i, e := range x.Entries {
			entries[i] = fmt.Sprintf("%q: %s", e.Key, g.Expr(e.Value))
		}
		return "map[string]any{" + strings.Join(entries, ", ") + "}"
	case *ast.IntLit:
		return strconv.FormatInt(x.Value, 10)
	case *ast.Equals:
		return g.Expr(x.X) + " == " + g.Expr(x.Y)
	case *ast.IsNull:
		return g.Expr(x.X) + " == nil"
	case *ast.NotNull:
		return g.Expr(x.X) + " != nil"
	case *ast.StringLiteral:
		return quote(x)
	case *ast.NullLiteral:
		return "nil"
	}
	panic(fmt.Sprintf("go: unhandled expression %T", x))
}

func (g *goTarget) Stmt(e *emit.Emitter, s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Declare:
		name := g.Ident(s.Name)
		if _, null := s.Value.(*ast.NullLiteral); s.Value == nil || null {
			e.Line("var %s %s", name, g.Type(s.Type))
		} else {
			e.Line("var %s %s = %s", name, g.Type(s.Type), g.Expr(s.Value))
		}
		if g.unread[s.Name] {
			e.Line("_ = %s", name)
		}
	case *ast.Assign:
		e.Line("%s = %s", g.Expr(s.Target), g.Expr(s.Value))
	case *ast.Put:
		e.Line("%s[%q] = %s", g.Expr(s.Map), s.Key, g.Expr(s.Value))
	case *ast.Append:
		list := g.Expr(s.List)
		e.Line("%s = append(%s, %s)", list, list, g.Expr(s.Value))
	case *ast.If:
		closing := "}"
		if len(s.Else) > 0 {
			closing = ""
		}
		e.BlockWith(fmt.Sprintf("if %s {", g.Expr(s.Cond)), closing, func() { body(e, g, s.Then) })
		if len(s.Else) > 0 {
			e.BlockWith("} else {", "}", func() { body(e, g, s.Else) })
		}
	case *ast.ForEach:
		list := g.Expr(s.List)
		if s.Elem.IsWireMap() {
			list = "wireMaps(" + list + ")"
		}
		e.Block(fmt.Sprintf("for _, %s := range %s", g.Ident(s.Var), list), func() { body(e, g, s.Body) })
	case *ast.Return:
		if s.Value == nil {
			e.Line("return")
		} else {
			e.Line("return %s", g.Expr(s.Value))
		}
	case *ast.ExprStmt:
		e.Line(g.Expr(s.X))
	default:
		panic(fmt.Sprintf("go: unhandled statement %T", s))
	}
}

func (g *goTarget) params(ps []*ast.Parameter) string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = g.Ident(p.Name) + " " + g.Type(p.Type)
	}
	return "(" + strings.Join(out, ", ") + ")"
}

func (g *goTarget) signature(name string, ps []*ast.Parameter, returns *ast.TypeRef) string {
	sig := name + g.params(ps)
	if !returns.IsVoid() {
		sig += " " + g.Type(returns)
	}
	return sig
}

// literal converts a string default to a constant of type t. ok is false
// when the text does not fit the type.
func (g *goTarget) literal(t *ast.TypeRef, lit *ast.StringLiteral) (string, bool) {
	switch goPrimitives[t.Name] {
	case "":
		return "", false
	case "string":
		return quote(lit), true
	case "bool":
		v, err := strconv.ParseBool(lit.Value())
		return strconv.FormatBool(v), err == nil
	}
	if _, err := strconv.ParseFloat(lit.Value(), 64); err != nil {
		return "", false
	}
	return lit.Value(), true
}

func (g *goTarget) defaults(e *emit.Emitter, fields []*ast.Field, name func(string) string) {
	for _, f := range fields {
		lit, ok := f.Default.(*ast.StringLiteral)
		if !ok {
			continue
		}
		if v, ok := g.literal(f.Type, lit); ok {
			e.Line("self.%s = %s", name(f.Name), v)
		}
	}
}

func (g *goTarget) Prologue(e *emit.Emitter, m *ast.Module, mode transform.Mode) {
	for _, def := range m.Definitions {
		if i, ok := def.(*ast.Interface); ok {
			g.interfaces[i.Name] = true
		}
	}
	e.Line("// Code generated by sdlc from module %s (%s). DO NOT EDIT.", m.Name, mode)
	e.Blank()
	e.Line("package %s", strings.ToLower(m.Name))
	e.Blank()
	e.Line(`import "reflect"`)
	e.Blank()
	e.Lines(goRuntime)
	e.Blank()
}

func (g *goTarget) Record(e *emit.Emitter, s *ast.Struct) {
	e.Block(fmt.Sprintf("type %s struct", s.Name), func() {
		for _, f := range s.Fields {
			e.Line("%s %s", exported(f.Name), g.Type(f.Type))
		}
	})
	e.Blank()
	e.Block(fmt.Sprintf("func New%s() *%s", s.Name, s.Name), func() {
		e.Line("self := &%s{}", s.Name)
		g.defaults(e, s.Fields, exported)
		e.Line("return self")
	})
	e.Blank()
}

func (g *goTarget) Function(e *emit.Emitter, f *ast.Function) {
	g.unread = unreadLocals(f.Body)
	e.Block("func "+g.signature(f.Name, f.Params, f.Returns), func() { body(e, g, f.Body) })
	e.Blank()
}

func (g *goTarget) OpenInterface(e *emit.Emitter, i *ast.Interface) {
	e.Line("type %s interface {", i.Name)
	e.Indent()
}

func (g *goTarget) MethodSig(e *emit.Emitter, _ *ast.Interface, m *ast.MethodSig) {
	e.Line(g.signature(exported(m.Name), m.Params, m.Returns))
}

func (g *goTarget) CloseInterface(e *emit.Emitter, _ *ast.Interface) {
	e.Dedent()
	e.Line("}")
	e.Blank()
}

// OpenClass writes the struct, its constructor and a setter for every
// field that starts out null.
func (g *goTarget) OpenClass(e *emit.Emitter, c *ast.Class) {
	e.Block(fmt.Sprintf("type %s struct", c.Name), func() {
		for _, f := range c.Fields {
			e.Line("%s %s", g.Ident(f.Name), g.Type(f.Type))
		}
	})
	e.Blank()

	if ctor := c.Constructor; ctor != nil {
		g.unread = unreadLocals(ctor.Body)
		e.Block("func "+g.signature("New"+c.Name, ctor.Params, ast.Type(c.Name)), func() {
			e.Line("self := &%s{}", c.Name)
			g.defaults(e, c.Fields, g.Ident)
			body(e, g, ctor.Body)
			e.Line("return self")
		})
		e.Blank()
	}

	for _, f := range c.Fields {
		if _, ok := f.Default.(*ast.NullLiteral); !ok {
			continue
		}
		name := g.Ident(f.Name)
		e.Block(fmt.Sprintf("func (self *%s) Set%s(%s %s)", c.Name, exported(f.Name), name, g.Type(f.Type)), func() {
			e.Line("self.%s = %s", name, name)
		})
		e.Blank()
	}
}

func (g *goTarget) Method(e *emit.Emitter, c *ast.Class, m *ast.Method) {
	g.unread = unreadLocals(m.Body)
	recv := fmt.Sprintf("func (self *%s) ", c.Name)

	if m.Fallback == nil {
		e.Block(recv+g.signature(exported(m.Name), m.Params, m.Returns), func() { body(e, g, m.Body) })
		e.Blank()
		return
	}

	header := recv + exported(m.Name) + g.params(m.Params)
	if !m.Returns.IsVoid() {
		header += fmt.Sprintf(" (wire_fallback %s)", g.Type(m.Returns))
	}
	e.Block(header, func() {
		e.BlockWith("defer func() {", "}()", func() {
			if m.Returns.IsVoid() {
				e.Line("recover()")
				return
			}
			e.Block("if recover() != nil", func() {
				e.Line("wire_fallback = %s", g.Expr(m.Fallback))
			})
		})
		body(e, g, m.Body)
	})
	e.Blank()
}

func (*goTarget) CloseClass(*emit.Emitter, *ast.Class) {}

func (*goTarget) Epilogue(*emit.Emitter, *ast.Module) {}

func (*goTarget) Format(src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("go: formatting generated code: %w", err)
	}
	return out, nil
}

// unreadLocals returns the locals declared in stmts that are only ever
// assigned. Go rejects such variables, so the renderer marks them used.
func unreadLocals(stmts []ast.Stmt) map[string]bool {
	v := &readVisitor{declared: map[string]bool{}, read: map[string]bool{}}
	for _, s := range stmts {
		_ = ast.Walk(s, v)
	}
	unread := map[string]bool{}
	for name := range v.declared {
		if !v.read[name] {
			unread[name] = true
		}
	}
	return unread
}

type readVisitor struct {
	ast.NopVisitor
	declared map[string]bool
	read     map[string]bool
}

func (v *readVisitor) VisitStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Declare:
		v.declared[s.Name] = true
	case *ast.Assign:
		if _, ok := s.Target.(*ast.Ident); ok {
			if err := ast.Walk(s.Value, v); err != nil {
				return err
			}
			return ast.SkipChildren
		}
	}
	return nil
}

func (v *readVisitor) VisitExpr(x ast.Expr) error {
	if id, ok := x.(*ast.Ident); ok {
		v.read[id.Name] = true
	}
	return nil
}

func setOf(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
