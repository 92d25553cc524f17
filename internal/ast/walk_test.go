package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tracer struct {
	NopVisitor
	events []string
}

func (tr *tracer) VisitModule(m *Module) error {
	tr.events = append(tr.events, "visit module "+m.Name)
	return nil
}

func (tr *tracer) LeaveModule(m *Module) error {
	tr.events = append(tr.events, "leave module "+m.Name)
	return nil
}

func (tr *tracer) VisitStruct(s *Struct) error {
	tr.events = append(tr.events, "visit struct "+s.Name)
	return nil
}

func (tr *tracer) LeaveStruct(s *Struct) error {
	tr.events = append(tr.events, "leave struct "+s.Name)
	return nil
}

func (tr *tracer) VisitField(f *Field) error {
	tr.events = append(tr.events, "field "+f.Name)
	return nil
}

func (tr *tracer) VisitOperation(o *Operation) error {
	tr.events = append(tr.events, "visit op "+o.Name)
	return nil
}

func (tr *tracer) LeaveOperation(o *Operation) error {
	tr.events = append(tr.events, "leave op "+o.Name)
	return nil
}

func (tr *tracer) VisitDescription(*Description) error {
	tr.events = append(tr.events, "desc")
	return nil
}

func sampleModule() *Module {
	return &Module{
		Name: "M",
		Definitions: []Definition{
			&Struct{Name: "A", Fields: []*Field{field(Type("int32"), "x", nil), field(Type("string"), "y", nil)}},
			&Operation{Name: "get", Type: Type("A"), Description: &Description{Content: Quote("d")}},
		},
	}
}

func TestWalkOrder(t *testing.T) {
	tr := &tracer{}
	require.NoError(t, Walk(sampleModule(), tr))

	assert.Equal(t, []string{
		"visit module M",
		"visit struct A",
		"field x",
		"field y",
		"leave struct A",
		"visit op get",
		"desc",
		"leave op get",
		"leave module M",
	}, tr.events)
}

type skipper struct {
	tracer
}

func (s *skipper) VisitStruct(st *Struct) error {
	s.tracer.VisitStruct(st)
	return SkipChildren
}

func TestWalkSkipChildren(t *testing.T) {
	s := &skipper{}
	require.NoError(t, Walk(sampleModule(), s))
	assert.NotContains(t, s.events, "field x")
	assert.Contains(t, s.events, "leave struct A")
}

type failer struct {
	NopVisitor
	visited int
}

var errStop = errors.New("stop")

func (f *failer) VisitField(*Field) error {
	f.visited++
	return errStop
}

func TestWalkAbortsOnError(t *testing.T) {
	f := &failer{}
	err := Walk(sampleModule(), f)
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 1, f.visited)
}

type exprCounter struct {
	NopVisitor
	stmts, exprs, literals int
}

func (c *exprCounter) VisitStmt(Stmt) error       { c.stmts++; return nil }
func (c *exprCounter) VisitExpr(Expr) error       { c.exprs++; return nil }
func (c *exprCounter) VisitLiteral(Literal) error { c.literals++; return nil }

func TestWalkCode(t *testing.T) {
	fn := &Function{
		Name: "f",
		Body: []Stmt{
			&Put{Map: Name("m"), Key: "k", Value: Quote("v")},
			&Return{Value: &NullLiteral{}},
		},
	}
	c := &exprCounter{}
	require.NoError(t, Walk(fn, c))
	assert.Equal(t, 2, c.stmts)
	assert.Equal(t, 1, c.exprs)
	assert.Equal(t, 2, c.literals)
}

func TestModuleWithIsImmutable(t *testing.T) {
	m := sampleModule()
	extra := &Interface{Name: "RPCClient"}

	out := m.With(extra)
	assert.Len(t, m.Definitions, 2)
	assert.Len(t, out.Definitions, 3)
	assert.Same(t, extra, out.Definitions[2])

	s := m.Structs()[0]
	withHelpers := s.With(&Function{Name: "A_toMap"})
	assert.Empty(t, s.Helpers)
	assert.Len(t, withHelpers.Helpers, 1)
}

func TestTypeRefPredicates(t *testing.T) {
	assert.True(t, Type("void").IsVoid())
	assert.True(t, Type("List", Type("Pet")).IsList())
	assert.True(t, Type("List", Type("Pet")).IsStructList())
	assert.False(t, Type("List", Type("string")).IsStructList())
	assert.False(t, Type("List", Type("a"), Type("b")).IsList())
	assert.True(t, Type("Pet").IsStruct())
	assert.False(t, Type("int64").IsStruct())
	assert.False(t, MapType().IsStruct())
	assert.True(t, Type("List", Type("Pet")).Equal(Type("List", Type("Pet"))))
	assert.False(t, Type("List", Type("Pet")).Equal(Type("List", Type("Dog"))))
}

func TestNodeTypeString(t *testing.T) {
	assert.Equal(t, "Module", MODULE.String())
	assert.Equal(t, "NotNull", NOT_NULL_EXPR.String())
	assert.Equal(t, STRUCT, (&Struct{}).NodeType())
}
