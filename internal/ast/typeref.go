package ast

// Internal type names used by synthesized code. They cannot be spelled in
// SDL source, so they never collide with user types.
const (
	MapTypeName  = "$map"
	ListTypeName = "$list"
	AnyTypeName  = "$any"
)

var primitiveTypes = map[string]bool{
	"void":    true,
	"bool":    true,
	"boolean": true,
	"byte":    true,
	"int":     true,
	"int32":   true,
	"int64":   true,
	"float":   true,
	"double":  true,
	"string":  true,
}

// Type builds a type reference.
func Type(name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Name: name, Args: args}
}

// MapType is the string-keyed map used on the wire.
func MapType() *TypeRef { return Type(MapTypeName) }

// WireListType is an ordered sequence of wire values.
func WireListType() *TypeRef { return Type(ListTypeName) }

// AnyType is an untyped wire value.
func AnyType() *TypeRef { return Type(AnyTypeName) }

// StringType is the SDL string primitive.
func StringType() *TypeRef { return Type("string") }

// IntType is the SDL 32-bit integer primitive.
func IntType() *TypeRef { return Type("int32") }

func (t *TypeRef) IsVoid() bool {
	return t == nil || (t.Name == "void" && len(t.Args) == 0)
}

// IsList reports whether t is exactly List<T>.
func (t *TypeRef) IsList() bool {
	return t != nil && t.Name == "List" && len(t.Args) == 1
}

func (t *TypeRef) IsGeneric() bool {
	return t != nil && len(t.Args) > 0
}

func (t *TypeRef) IsWireMap() bool  { return t != nil && t.Name == MapTypeName }
func (t *TypeRef) IsWireList() bool { return t != nil && t.Name == ListTypeName }
func (t *TypeRef) IsAny() bool      { return t != nil && t.Name == AnyTypeName }

func (t *TypeRef) IsPrimitive() bool {
	return t != nil && len(t.Args) == 0 && primitiveTypes[t.Name]
}

// IsStruct reports whether t names a user record. There is no symbol table:
// every non-generic name that is not a primitive or an internal wire type
// is taken to be a struct.
func (t *TypeRef) IsStruct() bool {
	if t == nil || len(t.Args) > 0 || t.IsPrimitive() {
		return false
	}
	switch t.Name {
	case "List", MapTypeName, ListTypeName, AnyTypeName:
		return false
	}
	return true
}

// IsStructList reports whether t is List<S> for a struct S.
func (t *TypeRef) IsStructList() bool {
	return t.IsList() && t.Args[0].IsStruct()
}

// Elem returns the element type of List<T>, or nil.
func (t *TypeRef) Elem() *TypeRef {
	if !t.IsList() {
		return nil
	}
	return t.Args[0]
}

// Equal compares two type references structurally, ignoring positions.
func (t *TypeRef) Equal(other *TypeRef) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Name != other.Name || len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}
