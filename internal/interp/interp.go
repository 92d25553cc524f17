// Package interp evaluates the code synthesized by the transforms directly,
// without rendering it in a target language. It serves as the reference
// semantics that every backend has to agree with.
//
// Values are plain Go values: nil, bool, int64, float64, string, *List,
// map[string]any, *Record for struct instances, *Instance for generated
// classes and Host for objects implemented in Go.
package interp

import (
	"fmt"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/wire"
)

// List is a mutable ordered sequence.
type List struct {
	Items []any
}

func NewList(items ...any) *List {
	return &List{Items: items}
}

// Record is an instance of a schema struct.
type Record struct {
	Type   string
	Fields map[string]any
}

// Instance is an instance of a generated class.
type Instance struct {
	Class  *ast.Class
	Fields map[string]any
}

// Host is an object implemented in Go, such as a transport or a service
// implementation. Generated code calls it like any other object.
type Host interface {
	Invoke(method string, args []any) (any, error)
}

// HostFunc adapts a function to Host.
type HostFunc func(method string, args []any) (any, error)

func (f HostFunc) Invoke(method string, args []any) (any, error) {
	return f(method, args)
}

// Program holds the evaluable definitions of one transformed module.
type Program struct {
	structs   map[string]*ast.Struct
	functions map[string]*ast.Function
	classes   map[string]*ast.Class
}

// Load collects structs, their helpers and classes from m.
func Load(m *ast.Module) (*Program, error) {
	l := &loader{p: &Program{
		structs:   map[string]*ast.Struct{},
		functions: map[string]*ast.Function{},
		classes:   map[string]*ast.Class{},
	}}
	if err := ast.Walk(m, l); err != nil {
		return nil, err
	}
	return l.p, nil
}

type loader struct {
	ast.NopVisitor
	p *Program
}

func (l *loader) VisitStruct(s *ast.Struct) error {
	l.p.structs[s.Name] = s
	return nil
}

func (l *loader) VisitFunction(f *ast.Function) error {
	if _, dup := l.p.functions[f.Name]; dup {
		return fmt.Errorf("interp: function %s defined twice", f.Name)
	}
	l.p.functions[f.Name] = f
	return ast.SkipChildren
}

func (l *loader) VisitClass(c *ast.Class) error {
	l.p.classes[c.Name] = c
	return ast.SkipChildren
}

func (l *loader) VisitOperation(*ast.Operation) error { return ast.SkipChildren }

// NewRecord returns an instance of struct name with its defaults applied.
func (p *Program) NewRecord(name string) (*Record, error) {
	s, ok := p.structs[name]
	if !ok {
		return nil, fmt.Errorf("interp: unknown struct %s", name)
	}
	r := &Record{Type: name, Fields: make(map[string]any, len(s.Fields))}
	for _, f := range s.Fields {
		r.Fields[f.Name] = literal(f.Default)
	}
	return r, nil
}

// CallFunction runs a free function such as "Pet_toMap".
func (p *Program) CallFunction(name string, args ...any) (any, error) {
	f, ok := p.functions[name]
	if !ok {
		return nil, fmt.Errorf("interp: unknown function %s", name)
	}
	fr, err := bind(name, f.Params, args)
	if err != nil {
		return nil, err
	}
	return p.run(fr, f.Body)
}

// NewInstance constructs a generated class.
func (p *Program) NewInstance(class string, args ...any) (*Instance, error) {
	c, ok := p.classes[class]
	if !ok {
		return nil, fmt.Errorf("interp: unknown class %s", class)
	}
	obj := &Instance{Class: c, Fields: make(map[string]any, len(c.Fields))}
	for _, f := range c.Fields {
		obj.Fields[f.Name] = literal(f.Default)
	}
	if c.Constructor != nil {
		fr, err := bind(class, c.Constructor.Params, args)
		if err != nil {
			return nil, err
		}
		fr.self = obj
		if _, err := p.run(fr, c.Constructor.Body); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// Invoke calls method on recv, which is an *Instance or a Host. A method
// with a fallback answers with it instead of failing.
func (p *Program) Invoke(recv any, method string, args ...any) (any, error) {
	switch r := recv.(type) {
	case *Instance:
		m := findMethod(r.Class, method)
		if m == nil {
			return nil, fmt.Errorf("interp: %s has no method %s", r.Class.Name, method)
		}
		fr, err := bind(r.Class.Name+"."+method, m.Params, args)
		if err != nil {
			return nil, err
		}
		fr.self = r
		out, err := p.run(fr, m.Body)
		if err != nil && m.Fallback != nil {
			return p.eval(&frame{locals: map[string]any{}, self: r}, m.Fallback)
		}
		return out, err
	case Host:
		return r.Invoke(method, args)
	case nil:
		return nil, fmt.Errorf("interp: call of %s on null", method)
	}
	return nil, fmt.Errorf("interp: call of %s on %T", method, recv)
}

func findMethod(c *ast.Class, name string) *ast.Method {
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

type frame struct {
	locals map[string]any
	self   *Instance
}

func bind(name string, params []*ast.Parameter, args []any) (*frame, error) {
	if len(args) > len(params) {
		return nil, fmt.Errorf("interp: %s takes %d arguments, got %d", name, len(params), len(args))
	}
	fr := &frame{locals: make(map[string]any, len(params))}
	for i, param := range params {
		if i < len(args) {
			fr.locals[param.Name] = args[i]
		} else {
			fr.locals[param.Name] = literal(param.Default)
		}
	}
	return fr, nil
}

func literal(l ast.Literal) any {
	if s, ok := l.(*ast.StringLiteral); ok {
		return s.Value()
	}
	return nil
}

// ToWire converts a data value to its wire form. Records, instances and
// hosts have none.
func ToWire(v any) (wire.Value, error) {
	switch v := v.(type) {
	case *List:
		items := make([]wire.Value, len(v.Items))
		for i, item := range v.Items {
			w, err := ToWire(item)
			if err != nil {
				return wire.Null(), err
			}
			items[i] = w
		}
		return wire.List(items...), nil
	case map[string]any:
		entries := make(map[string]wire.Value, len(v))
		for k, e := range v {
			w, err := ToWire(e)
			if err != nil {
				return wire.Null(), err
			}
			entries[k] = w
		}
		return wire.Map(entries), nil
	case *Record, *Instance, Host:
		return wire.Null(), fmt.Errorf("interp: %T is not a wire value", v)
	}
	return wire.FromInterface(v)
}

// FromWire converts a wire value to the interpreter's representation.
func FromWire(v wire.Value) any {
	switch v.Kind() {
	case wire.KindList:
		items := v.Items()
		out := &List{Items: make([]any, len(items))}
		for i, item := range items {
			out.Items[i] = FromWire(item)
		}
		return out
	case wire.KindMap:
		out := make(map[string]any, v.Len())
		for _, k := range v.Keys() {
			e, _ := v.Get(k)
			out[k] = FromWire(e)
		}
		return out
	}
	return v.Interface()
}

// Equal compares values structurally. Integers and floats compare by
// numeric value.
func Equal(a, b any) bool {
	switch a := a.(type) {
	case *Record:
		r, ok := b.(*Record)
		if !ok || a == nil || r == nil {
			return ok && a == r
		}
		return a.Type == r.Type && equalMaps(a.Fields, r.Fields)
	case *List:
		l, ok := b.(*List)
		if !ok || a == nil || l == nil {
			return ok && a == l
		}
		if len(a.Items) != len(l.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], l.Items[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		m, ok := b.(map[string]any)
		return ok && equalMaps(a, m)
	case *Instance:
		return a == b
	case Host:
		return false
	}
	if x, ok := number(a); ok {
		y, ok := number(b)
		return ok && x == y
	}
	return a == b
}

func equalMaps(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !Equal(v, w) {
			return false
		}
	}
	return true
}

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
