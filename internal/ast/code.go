package ast

// The nodes in this file never come out of the parser. Transforms build
// them to describe generated code independently of the target language;
// every backend renders the same tree, which keeps clients and servers in
// agreement on the wire format.

// Stmt is a statement in a synthesized body.
type Stmt interface {
	Node
	isStmt()
}

// Expr is an expression in a synthesized body.
type Expr interface {
	Node
	isExpr()
}

// Function is a free function, e.g. "Pet_toMap".
type Function struct {
	Name    string
	Params  []*Parameter
	Returns *TypeRef
	Body    []Stmt

	// Origin is the struct the function was derived from.
	Origin *Struct
}

// MethodSig is a bodiless method in an interface.
type MethodSig struct {
	Name    string
	Params  []*Parameter
	Returns *TypeRef
	Origin  *Operation
}

// Interface is an abstract capability or implementation contract.
type Interface struct {
	Name        string
	Annotations []*Annotation
	Methods     []*MethodSig
}

// Class is a generated client or server type.
type Class struct {
	Name        string
	Annotations []*Annotation
	Fields      []*Field
	Constructor *Method
	Methods     []*Method
}

// Method is a class member with a body. Origin is the operation the method
// was generated for, if any.
type Method struct {
	Name        string
	Annotations []*Annotation
	Params      []*Parameter
	Returns     *TypeRef
	Body        []Stmt

	// Fallback is returned instead of propagating a failure raised while
	// running Body. Nil means failures propagate.
	Fallback Expr

	Origin *Operation
}

func (*Function) isDefinition()  {}
func (*Interface) isDefinition() {}
func (*Class) isDefinition()     {}

// Statements

// Declare introduces a local: `Type Name = Value`. Value may be nil.
type Declare struct {
	Name  string
	Type  *TypeRef
	Value Expr
}

// Assign stores Value into Target (a local or a field).
type Assign struct {
	Target Expr
	Value  Expr
}

// Put stores Value under Key in a wire map.
type Put struct {
	Map   Expr
	Key   string
	Value Expr
}

// Append adds Value to the end of a list.
type Append struct {
	List  Expr
	Value Expr
}

type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// ForEach iterates List binding each element, of type Elem, to Var.
type ForEach struct {
	Var  string
	Elem *TypeRef
	List Expr
	Body []Stmt
}

// Return exits the function. Value is nil for void functions.
type Return struct {
	Value Expr
}

type ExprStmt struct {
	X Expr
}

func (*Declare) isStmt()  {}
func (*Assign) isStmt()   {}
func (*Put) isStmt()      {}
func (*Append) isStmt()   {}
func (*If) isStmt()       {}
func (*ForEach) isStmt()  {}
func (*Return) isStmt()   {}
func (*ExprStmt) isStmt() {}

// Expressions

type Ident struct {
	Name string
}

// Self is the receiver of the enclosing method.
type Self struct{}

// FieldOf selects a field of a struct value or of Self.
type FieldOf struct {
	X    Expr
	Name string
}

// Get reads Key from a wire map, converted to Type. A missing key yields
// the zero value of Type.
type Get struct {
	Map  Expr
	Key  string
	Type *TypeRef
}

// Has reports whether a wire map carries Key.
type Has struct {
	Map Expr
	Key string
}

// Call invokes a free function.
type Call struct {
	Func string
	Args []Expr
}

// MethodCall invokes a method on Recv.
type MethodCall struct {
	Recv   Expr
	Method string
	Args   []Expr
}

type NewMap struct{}

type NewList struct {
	Elem *TypeRef
}

// NewStruct creates a record with its declared defaults applied.
type NewStruct struct {
	Type *TypeRef
}

// MapLit is a wire map literal with entries in order.
type MapLit struct {
	Entries []*MapEntry
}

type MapEntry struct {
	Key   string
	Value Expr
}

type IntLit struct {
	Value int64
}

type Equals struct {
	X, Y Expr
}

type IsNull struct {
	X Expr
}

type NotNull struct {
	X Expr
}

func (*Ident) isExpr()         {}
func (*Self) isExpr()          {}
func (*FieldOf) isExpr()       {}
func (*Get) isExpr()           {}
func (*Has) isExpr()           {}
func (*Call) isExpr()          {}
func (*MethodCall) isExpr()    {}
func (*NewMap) isExpr()        {}
func (*NewList) isExpr()       {}
func (*NewStruct) isExpr()     {}
func (*MapLit) isExpr()        {}
func (*IntLit) isExpr()        {}
func (*Equals) isExpr()        {}
func (*IsNull) isExpr()        {}
func (*NotNull) isExpr()       {}
func (*StringLiteral) isExpr() {}
func (*NullLiteral) isExpr()   {}

// Name is shorthand for an identifier expression.
func Name(name string) *Ident { return &Ident{Name: name} }

// SelfField is shorthand for a field of the receiver.
func SelfField(name string) *FieldOf { return &FieldOf{X: &Self{}, Name: name} }
