package transform

import "github.com/datawire/adaptive/internal/ast"

// Shorthands for assembling synthesized code.

func param(name string, typ *ast.TypeRef) *ast.Parameter {
	return &ast.Parameter{Declaration: ast.Declaration{Name: name, Type: typ}}
}

func field(name string, typ *ast.TypeRef, def ast.Literal) *ast.Field {
	return &ast.Field{Declaration: ast.Declaration{Name: name, Type: typ, Default: def}}
}

func declare(name string, typ *ast.TypeRef, value ast.Expr) *ast.Declare {
	return &ast.Declare{Name: name, Type: typ, Value: value}
}

func put(m ast.Expr, key string, value ast.Expr) *ast.Put {
	return &ast.Put{Map: m, Key: key, Value: value}
}

func get(m ast.Expr, key string, typ *ast.TypeRef) *ast.Get {
	return &ast.Get{Map: m, Key: key, Type: typ}
}

func call(fn string, args ...ast.Expr) *ast.Call {
	return &ast.Call{Func: fn, Args: args}
}

func ret(value ast.Expr) *ast.Return {
	return &ast.Return{Value: value}
}

func null() *ast.NullLiteral {
	return &ast.NullLiteral{}
}

func fieldOf(x ast.Expr, name string) *ast.FieldOf {
	return &ast.FieldOf{X: x, Name: name}
}

// copyParams returns fresh parameters so synthesized code never aliases the
// source tree.
func copyParams(ps []*ast.Parameter) []*ast.Parameter {
	out := make([]*ast.Parameter, len(ps))
	for i, p := range ps {
		cp := *p
		out[i] = &cp
	}
	return out
}

// Names of the synthesized marshalling helpers.

func FromMapName(structName string) string { return structName + "_fromMap" }
func ToMapName(structName string) string   { return structName + "_toMap" }

// Locals introduced by synthesized code always contain an underscore. SDL
// identifiers cannot, so a local never equals a parameter or field. Locals
// derived from a user name keep a fixed segment after it (`_arg_`,
// `_value`, `_wire`) so two derived names cannot meet either.

// encode converts value, of type typ, into its wire form. List<Struct>
// values need a loop, so encode may prepend statements and returns the
// expression that holds the result.
func encode(value ast.Expr, typ *ast.TypeRef, tmp string) ([]ast.Stmt, ast.Expr) {
	switch {
	case typ.IsStruct():
		return nil, call(ToMapName(typ.Name), value)
	case typ.IsStructList():
		elem := typ.Elem()
		stmts := []ast.Stmt{
			declare(tmp, ast.WireListType(), null()),
			&ast.If{
				Cond: &ast.NotNull{X: value},
				Then: []ast.Stmt{
					&ast.Assign{Target: ast.Name(tmp), Value: &ast.NewList{Elem: ast.AnyType()}},
					&ast.ForEach{Var: tmp + "_elem", Elem: elem, List: value, Body: []ast.Stmt{
						&ast.Append{List: ast.Name(tmp), Value: call(ToMapName(elem.Name), ast.Name(tmp+"_elem"))},
					}},
				},
			},
		}
		return stmts, ast.Name(tmp)
	}
	return nil, value
}

// decode reads key from a wire map as typ. A missing List<Struct> decodes
// to null.
func decode(m ast.Expr, key string, typ *ast.TypeRef, target string) []ast.Stmt {
	switch {
	case typ.IsStruct():
		return []ast.Stmt{declare(target, typ, call(FromMapName(typ.Name), get(m, key, ast.MapType())))}
	case typ.IsStructList():
		elem := typ.Elem()
		list := target + "_wire"
		return []ast.Stmt{
			declare(target, typ, null()),
			declare(list, ast.WireListType(), get(m, key, ast.WireListType())),
			&ast.If{
				Cond: &ast.NotNull{X: ast.Name(list)},
				Then: []ast.Stmt{
					&ast.Assign{Target: ast.Name(target), Value: &ast.NewList{Elem: elem}},
					&ast.ForEach{Var: target + "_elem", Elem: ast.MapType(), List: ast.Name(list), Body: []ast.Stmt{
						&ast.Append{List: ast.Name(target), Value: call(FromMapName(elem.Name), ast.Name(target+"_elem"))},
					}},
				},
			},
		}
	}
	return []ast.Stmt{declare(target, typ, get(m, key, typ))}
}
