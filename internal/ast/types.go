package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Source nodes
	MODULE
	DESCRIPTION
	DEFAULTS
	STRUCT
	FIELD
	PARAMETER
	OPERATION
	TYPE
	STRING_LITERAL
	NULL_LITERAL
	ANNOTATION

	// Synthesized definitions
	FUNCTION
	INTERFACE
	METHOD_SIG
	CLASS
	METHOD

	// Statements
	DECLARE_STMT
	ASSIGN_STMT
	PUT_STMT
	APPEND_STMT
	IF_STMT
	FOREACH_STMT
	RETURN_STMT
	EXPR_STMT

	// Expressions
	IDENT_EXPR
	SELF_EXPR
	FIELD_EXPR
	GET_EXPR
	HAS_EXPR
	CALL_EXPR
	METHOD_CALL_EXPR
	NEW_MAP_EXPR
	NEW_LIST_EXPR
	NEW_STRUCT_EXPR
	MAP_LIT_EXPR
	INT_LIT_EXPR
	EQUALS_EXPR
	IS_NULL_EXPR
	NOT_NULL_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:          "Illegal",
	MODULE:           "Module",
	DESCRIPTION:      "Description",
	DEFAULTS:         "Defaults",
	STRUCT:           "Struct",
	FIELD:            "Field",
	PARAMETER:        "Parameter",
	OPERATION:        "Operation",
	TYPE:             "Type",
	STRING_LITERAL:   "StringLiteral",
	NULL_LITERAL:     "NullLiteral",
	ANNOTATION:       "Annotation",
	FUNCTION:         "Function",
	INTERFACE:        "Interface",
	METHOD_SIG:       "MethodSig",
	CLASS:            "Class",
	METHOD:           "Method",
	DECLARE_STMT:     "Declare",
	ASSIGN_STMT:      "Assign",
	PUT_STMT:         "Put",
	APPEND_STMT:      "Append",
	IF_STMT:          "If",
	FOREACH_STMT:     "ForEach",
	RETURN_STMT:      "Return",
	EXPR_STMT:        "ExprStmt",
	IDENT_EXPR:       "Ident",
	SELF_EXPR:        "Self",
	FIELD_EXPR:       "FieldOf",
	GET_EXPR:         "Get",
	HAS_EXPR:         "Has",
	CALL_EXPR:        "Call",
	METHOD_CALL_EXPR: "MethodCall",
	NEW_MAP_EXPR:     "NewMap",
	NEW_LIST_EXPR:    "NewList",
	NEW_STRUCT_EXPR:  "NewStruct",
	MAP_LIT_EXPR:     "MapLit",
	INT_LIT_EXPR:     "IntLit",
	EQUALS_EXPR:      "Equals",
	IS_NULL_EXPR:     "IsNull",
	NOT_NULL_EXPR:    "NotNull",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "NodeType(?)"
	}
	return nodeTypeNames[t]
}
