package transform

import "github.com/datawire/adaptive/internal/ast"

// MapConstructor synthesizes `S S_fromMap(map)`, which builds a struct from
// its wire map. A null map yields null. Fields declared with a default keep
// it unless the map carries the key.
func MapConstructor(s *ast.Struct) *ast.Function {
	typ := ast.Type(s.Name)
	wire := ast.Name("wire_map")
	result := ast.Name("wire_result")

	body := []ast.Stmt{
		&ast.If{Cond: &ast.IsNull{X: wire}, Then: []ast.Stmt{ret(null())}},
		declare(result.Name, typ, &ast.NewStruct{Type: typ}),
	}
	for _, f := range s.Fields {
		local := f.Name + "_value"
		stmts := decode(wire, f.Name, f.Type, local)
		stmts = append(stmts, &ast.Assign{Target: fieldOf(result, f.Name), Value: ast.Name(local)})
		if f.Default != nil {
			body = append(body, &ast.If{Cond: &ast.Has{Map: wire, Key: f.Name}, Then: stmts})
		} else {
			body = append(body, stmts...)
		}
	}
	body = append(body, ret(result))

	return &ast.Function{
		Name:    FromMapName(s.Name),
		Params:  []*ast.Parameter{param(wire.Name, ast.MapType())},
		Returns: typ,
		Body:    body,
		Origin:  s,
	}
}

// MapRenderer synthesizes `Map S_toMap(S)`, the inverse of MapConstructor.
// Every field is written, null or not.
func MapRenderer(s *ast.Struct) *ast.Function {
	value := ast.Name("wire_value")
	wire := ast.Name("wire_map")

	body := []ast.Stmt{
		&ast.If{Cond: &ast.IsNull{X: value}, Then: []ast.Stmt{ret(null())}},
		declare(wire.Name, ast.MapType(), &ast.NewMap{}),
	}
	for _, f := range s.Fields {
		stmts, expr := encode(fieldOf(value, f.Name), f.Type, f.Name+"_wire")
		body = append(body, stmts...)
		body = append(body, put(wire, f.Name, expr))
	}
	body = append(body, ret(wire))

	return &ast.Function{
		Name:    ToMapName(s.Name),
		Params:  []*ast.Parameter{param(value.Name, ast.Type(s.Name))},
		Returns: ast.MapType(),
		Body:    body,
		Origin:  s,
	}
}
