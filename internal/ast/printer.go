package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// joindent places each item on its own line, indented four spaces, with a
// leading and trailing newline. No items yields the empty string.
func joindent[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	st := strings.Join(parts, "\n")
	if st == "" {
		return ""
	}
	return strings.ReplaceAll("\n"+st, "\n", "\n    ") + "\n"
}

func annotationPrefix(annotations []*Annotation) string {
	var b strings.Builder
	for _, a := range annotations {
		b.WriteString(a.String())
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Module) String() string {
	return fmt.Sprintf("%smodule %s {%s};", annotationPrefix(m.Annotations), m.Name, joindent(m.Definitions))
}

func (d *Description) String() string {
	return fmt.Sprintf("desc %s;", d.Content)
}

func (d *Defaults) String() string {
	return fmt.Sprintf("defaults {%s};", d.Raw)
}

func (s *Struct) String() string {
	return fmt.Sprintf("%sstruct %s {%s};", annotationPrefix(s.Annotations), s.Name, joindent(s.Fields))
}

func (d *Declaration) String() string {
	if d.Default != nil {
		return fmt.Sprintf("%s %s = %s", d.Type, d.Name, d.Default)
	}
	return fmt.Sprintf("%s %s", d.Type, d.Name)
}

func (f *Field) String() string {
	return f.Declaration.String() + ";"
}

func (p *Parameter) String() string {
	return p.Declaration.String()
}

func (o *Operation) String() string {
	params := make([]string, len(o.Parameters))
	for i, p := range o.Parameters {
		params[i] = p.String()
	}
	head := fmt.Sprintf("%s%s %s(%s)", annotationPrefix(o.Annotations), o.Type, o.Name, strings.Join(params, ", "))
	if o.Description != nil {
		return fmt.Sprintf("%s {\n    %s\n};", head, o.Description)
	}
	return head + ";"
}

func (t *TypeRef) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}

func (s *StringLiteral) String() string { return s.Text }

func (*NullLiteral) String() string { return "null" }

func (a *Annotation) String() string {
	if len(a.Args) == 0 {
		return "@" + a.Name
	}
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("@%s(%s)", a.Name, strings.Join(args, ", "))
}

// Synthesized nodes print as language-neutral pseudo code. The output is
// meant for debugging and test failure messages only.

func signature(name string, params []*Parameter, returns *TypeRef) string {
	ps := make([]string, len(params))
	for i, p := range params {
		ps[i] = p.String()
	}
	ret := "void"
	if returns != nil {
		ret = returns.String()
	}
	return fmt.Sprintf("%s %s(%s)", ret, name, strings.Join(ps, ", "))
}

func block(body []Stmt) string {
	return "{" + joindent(body) + "}"
}

func (f *Function) String() string {
	return fmt.Sprintf("fn %s %s", signature(f.Name, f.Params, f.Returns), block(f.Body))
}

func (m *MethodSig) String() string {
	return signature(m.Name, m.Params, m.Returns) + ";"
}

func (i *Interface) String() string {
	return fmt.Sprintf("%sinterface %s {%s}", annotationPrefix(i.Annotations), i.Name, joindent(i.Methods))
}

func (c *Class) String() string {
	var members []fmt.Stringer
	for _, f := range c.Fields {
		members = append(members, f)
	}
	if c.Constructor != nil {
		members = append(members, c.Constructor)
	}
	for _, m := range c.Methods {
		members = append(members, m)
	}
	return fmt.Sprintf("%sclass %s {%s}", annotationPrefix(c.Annotations), c.Name, joindent(members))
}

func (m *Method) String() string {
	s := fmt.Sprintf("%s%s %s", annotationPrefix(m.Annotations), signature(m.Name, m.Params, m.Returns), block(m.Body))
	if m.Fallback != nil {
		s += fmt.Sprintf(" fallback %s", m.Fallback)
	}
	return s
}

func (d *Declare) String() string {
	if d.Value == nil {
		return fmt.Sprintf("%s %s;", d.Type, d.Name)
	}
	return fmt.Sprintf("%s %s = %s;", d.Type, d.Name, d.Value)
}

func (a *Assign) String() string   { return fmt.Sprintf("%s = %s;", a.Target, a.Value) }
func (p *Put) String() string      { return fmt.Sprintf("%s[%q] = %s;", p.Map, p.Key, p.Value) }
func (a *Append) String() string   { return fmt.Sprintf("%s.append(%s);", a.List, a.Value) }
func (e *ExprStmt) String() string { return e.X.String() + ";" }

func (i *If) String() string {
	s := fmt.Sprintf("if (%s) %s", i.Cond, block(i.Then))
	if len(i.Else) > 0 {
		s += " else " + block(i.Else)
	}
	return s
}

func (f *ForEach) String() string {
	return fmt.Sprintf("for (%s %s : %s) %s", f.Elem, f.Var, f.List, block(f.Body))
}

func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value)
}

func (i *Ident) String() string     { return i.Name }
func (*Self) String() string        { return "self" }
func (f *FieldOf) String() string   { return fmt.Sprintf("%s.%s", f.X, f.Name) }
func (g *Get) String() string       { return fmt.Sprintf("%s[%q] as %s", g.Map, g.Key, g.Type) }
func (h *Has) String() string       { return fmt.Sprintf("%q in %s", h.Key, h.Map) }
func (*NewMap) String() string      { return "{}" }
func (n *NewList) String() string   { return fmt.Sprintf("new List<%s>()", n.Elem) }
func (n *NewStruct) String() string { return fmt.Sprintf("new %s()", n.Type) }
func (i *IntLit) String() string    { return strconv.FormatInt(i.Value, 10) }
func (e *Equals) String() string    { return fmt.Sprintf("%s == %s", e.X, e.Y) }
func (n *IsNull) String() string    { return fmt.Sprintf("%s == null", n.X) }
func (n *NotNull) String() string   { return fmt.Sprintf("%s != null", n.X) }

func exprList(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

func (c *Call) String() string { return fmt.Sprintf("%s(%s)", c.Func, exprList(c.Args)) }

func (m *MethodCall) String() string {
	return fmt.Sprintf("%s.%s(%s)", m.Recv, m.Method, exprList(m.Args))
}

func (m *MapLit) String() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = fmt.Sprintf("%q: %s", e.Key, e.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
