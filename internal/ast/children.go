package ast

type nodeList []Node

func (l nodeList) typ(t *TypeRef) nodeList {
	if t != nil {
		return append(l, t)
	}
	return l
}

func (l nodeList) expr(e Expr) nodeList {
	if e != nil {
		return append(l, e)
	}
	return l
}

func (l nodeList) stmts(body []Stmt) nodeList {
	for _, s := range body {
		l = append(l, s)
	}
	return l
}

func (l nodeList) annotations(as []*Annotation) nodeList {
	for _, a := range as {
		l = append(l, a)
	}
	return l
}

func (l nodeList) params(ps []*Parameter) nodeList {
	for _, p := range ps {
		l = append(l, p)
	}
	return l
}

func (l nodeList) exprs(es []Expr) nodeList {
	for _, e := range es {
		l = l.expr(e)
	}
	return l
}

func (m *Module) Children() []Node {
	l := nodeList{}.annotations(m.Annotations)
	for _, d := range m.Definitions {
		l = append(l, d)
	}
	return l
}

func (d *Description) Children() []Node {
	if d.Content == nil {
		return nil
	}
	return []Node{d.Content}
}

func (*Defaults) Children() []Node { return nil }

func (s *Struct) Children() []Node {
	l := nodeList{}.annotations(s.Annotations)
	for _, f := range s.Fields {
		l = append(l, f)
	}
	for _, h := range s.Helpers {
		l = append(l, h)
	}
	return l
}

func (d *Declaration) Children() []Node {
	l := nodeList{}.typ(d.Type)
	if d.Default != nil {
		l = append(l, d.Default)
	}
	return l
}

func (o *Operation) Children() []Node {
	l := nodeList{}.annotations(o.Annotations).params(o.Parameters).typ(o.Type)
	if o.Description != nil {
		l = append(l, o.Description)
	}
	return l
}

func (t *TypeRef) Children() []Node {
	var l nodeList
	for _, a := range t.Args {
		l = l.typ(a)
	}
	return l
}

func (*StringLiteral) Children() []Node { return nil }
func (*NullLiteral) Children() []Node   { return nil }

func (a *Annotation) Children() []Node {
	var l nodeList
	for _, arg := range a.Args {
		if arg != nil {
			l = append(l, arg)
		}
	}
	return l
}

func (f *Function) Children() []Node {
	return nodeList{}.params(f.Params).typ(f.Returns).stmts(f.Body)
}

func (m *MethodSig) Children() []Node {
	return nodeList{}.params(m.Params).typ(m.Returns)
}

func (i *Interface) Children() []Node {
	l := nodeList{}.annotations(i.Annotations)
	for _, m := range i.Methods {
		l = append(l, m)
	}
	return l
}

func (c *Class) Children() []Node {
	l := nodeList{}.annotations(c.Annotations)
	for _, f := range c.Fields {
		l = append(l, f)
	}
	if c.Constructor != nil {
		l = append(l, c.Constructor)
	}
	for _, m := range c.Methods {
		l = append(l, m)
	}
	return l
}

func (m *Method) Children() []Node {
	return nodeList{}.annotations(m.Annotations).params(m.Params).typ(m.Returns).stmts(m.Body).expr(m.Fallback)
}

func (d *Declare) Children() []Node  { return nodeList{}.typ(d.Type).expr(d.Value) }
func (a *Assign) Children() []Node   { return nodeList{}.expr(a.Target).expr(a.Value) }
func (p *Put) Children() []Node      { return nodeList{}.expr(p.Map).expr(p.Value) }
func (a *Append) Children() []Node   { return nodeList{}.expr(a.List).expr(a.Value) }
func (r *Return) Children() []Node   { return nodeList{}.expr(r.Value) }
func (e *ExprStmt) Children() []Node { return nodeList{}.expr(e.X) }

func (i *If) Children() []Node {
	return nodeList{}.expr(i.Cond).stmts(i.Then).stmts(i.Else)
}

func (f *ForEach) Children() []Node {
	return nodeList{}.typ(f.Elem).expr(f.List).stmts(f.Body)
}

func (*Ident) Children() []Node  { return nil }
func (*Self) Children() []Node   { return nil }
func (*NewMap) Children() []Node { return nil }
func (*IntLit) Children() []Node { return nil }

func (f *FieldOf) Children() []Node    { return nodeList{}.expr(f.X) }
func (g *Get) Children() []Node        { return nodeList{}.expr(g.Map).typ(g.Type) }
func (h *Has) Children() []Node        { return nodeList{}.expr(h.Map) }
func (c *Call) Children() []Node       { return nodeList{}.exprs(c.Args) }
func (n *NewList) Children() []Node    { return nodeList{}.typ(n.Elem) }
func (n *NewStruct) Children() []Node  { return nodeList{}.typ(n.Type) }
func (e *Equals) Children() []Node     { return nodeList{}.expr(e.X).expr(e.Y) }
func (n *IsNull) Children() []Node     { return nodeList{}.expr(n.X) }
func (n *NotNull) Children() []Node    { return nodeList{}.expr(n.X) }
func (m *MethodCall) Children() []Node { return nodeList{}.expr(m.Recv).exprs(m.Args) }

func (m *MapLit) Children() []Node {
	var l nodeList
	for _, e := range m.Entries {
		l = l.expr(e.Value)
	}
	return l
}
