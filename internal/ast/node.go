package ast

type Node interface {
	NodePos() Position
	NodeType() NodeType
	String() string

	// Children returns the node's direct children in source order. Absent
	// optional children are omitted.
	Children() []Node
}

func (m *Module) NodePos() Position { return m.Pos }
func (*Module) NodeType() NodeType  { return MODULE }

func (d *Description) NodePos() Position { return d.Pos }
func (*Description) NodeType() NodeType  { return DESCRIPTION }

func (d *Defaults) NodePos() Position { return d.Pos }
func (*Defaults) NodeType() NodeType  { return DEFAULTS }

func (s *Struct) NodePos() Position { return s.Pos }
func (*Struct) NodeType() NodeType  { return STRUCT }

func (f *Field) NodePos() Position { return f.Pos }
func (*Field) NodeType() NodeType  { return FIELD }

func (p *Parameter) NodePos() Position { return p.Pos }
func (*Parameter) NodeType() NodeType  { return PARAMETER }

func (o *Operation) NodePos() Position { return o.Pos }
func (*Operation) NodeType() NodeType  { return OPERATION }

func (t *TypeRef) NodePos() Position { return t.Pos }
func (*TypeRef) NodeType() NodeType  { return TYPE }

func (s *StringLiteral) NodePos() Position { return s.Pos }
func (*StringLiteral) NodeType() NodeType  { return STRING_LITERAL }

func (n *NullLiteral) NodePos() Position { return n.Pos }
func (*NullLiteral) NodeType() NodeType  { return NULL_LITERAL }

func (a *Annotation) NodePos() Position { return a.Pos }
func (*Annotation) NodeType() NodeType  { return ANNOTATION }

// Synthesized nodes carry no source position.

func (*Function) NodePos() Position  { return Position{} }
func (*Function) NodeType() NodeType { return FUNCTION }

func (*Interface) NodePos() Position  { return Position{} }
func (*Interface) NodeType() NodeType { return INTERFACE }

func (*MethodSig) NodePos() Position  { return Position{} }
func (*MethodSig) NodeType() NodeType { return METHOD_SIG }

func (*Class) NodePos() Position  { return Position{} }
func (*Class) NodeType() NodeType { return CLASS }

func (*Method) NodePos() Position  { return Position{} }
func (*Method) NodeType() NodeType { return METHOD }

func (*Declare) NodePos() Position  { return Position{} }
func (*Declare) NodeType() NodeType { return DECLARE_STMT }

func (*Assign) NodePos() Position  { return Position{} }
func (*Assign) NodeType() NodeType { return ASSIGN_STMT }

func (*Put) NodePos() Position  { return Position{} }
func (*Put) NodeType() NodeType { return PUT_STMT }

func (*Append) NodePos() Position  { return Position{} }
func (*Append) NodeType() NodeType { return APPEND_STMT }

func (*If) NodePos() Position  { return Position{} }
func (*If) NodeType() NodeType { return IF_STMT }

func (*ForEach) NodePos() Position  { return Position{} }
func (*ForEach) NodeType() NodeType { return FOREACH_STMT }

func (*Return) NodePos() Position  { return Position{} }
func (*Return) NodeType() NodeType { return RETURN_STMT }

func (*ExprStmt) NodePos() Position  { return Position{} }
func (*ExprStmt) NodeType() NodeType { return EXPR_STMT }

func (*Ident) NodePos() Position  { return Position{} }
func (*Ident) NodeType() NodeType { return IDENT_EXPR }

func (*Self) NodePos() Position  { return Position{} }
func (*Self) NodeType() NodeType { return SELF_EXPR }

func (*FieldOf) NodePos() Position  { return Position{} }
func (*FieldOf) NodeType() NodeType { return FIELD_EXPR }

func (*Get) NodePos() Position  { return Position{} }
func (*Get) NodeType() NodeType { return GET_EXPR }

func (*Has) NodePos() Position  { return Position{} }
func (*Has) NodeType() NodeType { return HAS_EXPR }

func (*Call) NodePos() Position  { return Position{} }
func (*Call) NodeType() NodeType { return CALL_EXPR }

func (*MethodCall) NodePos() Position  { return Position{} }
func (*MethodCall) NodeType() NodeType { return METHOD_CALL_EXPR }

func (*NewMap) NodePos() Position  { return Position{} }
func (*NewMap) NodeType() NodeType { return NEW_MAP_EXPR }

func (*NewList) NodePos() Position  { return Position{} }
func (*NewList) NodeType() NodeType { return NEW_LIST_EXPR }

func (*NewStruct) NodePos() Position  { return Position{} }
func (*NewStruct) NodeType() NodeType { return NEW_STRUCT_EXPR }

func (*MapLit) NodePos() Position  { return Position{} }
func (*MapLit) NodeType() NodeType { return MAP_LIT_EXPR }

func (*IntLit) NodePos() Position  { return Position{} }
func (*IntLit) NodeType() NodeType { return INT_LIT_EXPR }

func (*Equals) NodePos() Position  { return Position{} }
func (*Equals) NodeType() NodeType { return EQUALS_EXPR }

func (*IsNull) NodePos() Position  { return Position{} }
func (*IsNull) NodeType() NodeType { return IS_NULL_EXPR }

func (*NotNull) NodePos() Position  { return Position{} }
func (*NotNull) NodeType() NodeType { return NOT_NULL_EXPR }
