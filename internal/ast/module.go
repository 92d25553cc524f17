package ast

import "strings"

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Definition is any node that may appear in a module's definition list.
// Parsed definitions are Description, Defaults, Struct and Operation;
// transforms append Function, Interface and Class.
type Definition interface {
	Node
	isDefinition()
}

// Literal is a default value or annotation argument.
type Literal interface {
	Node
	Expr
	isLiteral()
}

// Module is the root of one parsed schema
// Example: "module PetStore { struct Pet { int64 id; }; Pet findPetById(int64 id); };"
type Module struct {
	Pos         Position
	Name        string
	Annotations []*Annotation
	Definitions []Definition
}

// Description is free-text documentation attached to a module or operation
// Example: `desc "Returns all pets";`
type Description struct {
	Pos     Position
	Content *StringLiteral
}

// Defaults is an opaque `defaults { ... };` block. Its contents are kept as
// raw token text and are never interpreted.
type Defaults struct {
	Pos Position
	Raw string
}

// Struct is a plain data record
// Example: "struct Pet { int64 id; string name; string tag = null; };"
type Struct struct {
	Pos         Position
	Name        string
	Annotations []*Annotation
	Fields      []*Field

	// Helpers are the marshalling functions synthesized for this struct.
	// They are empty on a freshly parsed module.
	Helpers []*Function
}

// Declaration is the shape shared by fields and parameters.
type Declaration struct {
	Pos     Position
	Name    string
	Type    *TypeRef
	Default Literal
}

// Field is a declaration inside a struct
// Example: `string tag = null;`
type Field struct {
	Declaration
}

// Parameter is a declaration inside an operation signature
// Example: `List<string> tags = null`
type Parameter struct {
	Declaration
}

// Operation declares one remotely callable method
// Example: `Pet findPetById(int64 id) { desc "Returns a pet"; };`
type Operation struct {
	Pos         Position
	Name        string
	Annotations []*Annotation
	Parameters  []*Parameter
	Type        *TypeRef
	Description *Description
}

// TypeRef names a primitive, a struct or a generic container.
// Resolution is purely syntactic.
// Example: "int64", "Pet", "List<Pet>"
type TypeRef struct {
	Pos  Position
	Name string
	Args []*TypeRef

	// Nullable is set on the type of a field or parameter declared with a
	// null default. It is not part of the type's identity.
	Nullable bool
}

// StringLiteral keeps its surrounding double quotes in Text.
type StringLiteral struct {
	Pos  Position
	Text string
}

// NullLiteral is the `null` literal.
type NullLiteral struct {
	Pos Position
}

// Annotation tags a definition and selects generation behavior
// Example: `@service`, `@cache("30")`, `@index("id")`
type Annotation struct {
	Pos  Position
	Name string
	Args []Literal
}

func (*Description) isDefinition() {}
func (*Defaults) isDefinition()    {}
func (*Struct) isDefinition()      {}
func (*Operation) isDefinition()   {}

func (*StringLiteral) isLiteral() {}
func (*NullLiteral) isLiteral()   {}

// Quote builds a string literal from an unquoted value.
func Quote(value string) *StringLiteral {
	return &StringLiteral{Text: `"` + value + `"`}
}

// Value returns the literal text without its surrounding quotes.
func (s *StringLiteral) Value() string {
	return strings.TrimSuffix(strings.TrimPrefix(s.Text, `"`), `"`)
}

// With returns a copy of the module with defs appended. The receiver is not
// modified.
func (m *Module) With(defs ...Definition) *Module {
	out := *m
	out.Definitions = make([]Definition, 0, len(m.Definitions)+len(defs))
	out.Definitions = append(out.Definitions, m.Definitions...)
	out.Definitions = append(out.Definitions, defs...)
	return &out
}

// Replace returns a copy of the module where every definition is passed
// through fn. Definitions for which fn returns nil are kept unchanged.
func (m *Module) Replace(fn func(Definition) Definition) *Module {
	out := *m
	out.Definitions = make([]Definition, len(m.Definitions))
	for i, def := range m.Definitions {
		if repl := fn(def); repl != nil {
			out.Definitions[i] = repl
		} else {
			out.Definitions[i] = def
		}
	}
	return &out
}

// With returns a copy of the struct with helpers attached.
func (s *Struct) With(helpers ...*Function) *Struct {
	out := *s
	out.Helpers = make([]*Function, 0, len(s.Helpers)+len(helpers))
	out.Helpers = append(out.Helpers, s.Helpers...)
	out.Helpers = append(out.Helpers, helpers...)
	return &out
}

// Structs returns the module's structs in source order.
func (m *Module) Structs() []*Struct {
	var out []*Struct
	for _, def := range m.Definitions {
		if s, ok := def.(*Struct); ok {
			out = append(out, s)
		}
	}
	return out
}

// Operations returns the module's operations in source order.
func (m *Module) Operations() []*Operation {
	var out []*Operation
	for _, def := range m.Definitions {
		if op, ok := def.(*Operation); ok {
			out = append(out, op)
		}
	}
	return out
}

// FindAnnotation returns the first annotation with the given name, or nil.
func FindAnnotation(annotations []*Annotation, name string) *Annotation {
	for _, a := range annotations {
		if a.Name == name {
			return a
		}
	}
	return nil
}
