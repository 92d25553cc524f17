package transform

import (
	"strconv"

	"github.com/datawire/adaptive/internal/ast"
)

// Names of the capabilities a generated client is wired to.
const (
	RPCClientName = "RPCClient"
	RPCCacheName  = "RPCCache"
	RPCIndexName  = "RPCIndex"
)

// ClientName is the generated client class for a module.
func ClientName(m *ast.Module) string { return m.Name + "_client" }

// ClientTransform synthesizes the transport capability interfaces and the
// `<Module>_client` class with one method per operation. RPCCache and
// RPCIndex are only declared when some operation is annotated @cache or
// @index.
func ClientTransform(m *ast.Module) []ast.Definition {
	ops := m.Operations()
	cached, indexed := false, false
	for _, op := range ops {
		cached = cached || ast.FindAnnotation(op.Annotations, "cache") != nil
		indexed = indexed || ast.FindAnnotation(op.Annotations, "index") != nil
	}

	defs := []ast.Definition{rpcClientInterface()}
	fields := []*ast.Field{
		field("rpc", ast.Type(RPCClientName), nil),
		field("name", ast.StringType(), nil),
	}
	if cached {
		defs = append(defs, rpcCacheInterface())
		fields = append(fields, field("cache", ast.Type(RPCCacheName), null()))
	}
	if indexed {
		defs = append(defs, rpcIndexInterface())
		fields = append(fields, field("index", ast.Type(RPCIndexName), null()))
	}

	class := &ast.Class{
		Name:        ClientName(m),
		Annotations: m.Annotations,
		Fields:      fields,
		Constructor: &ast.Method{
			Name:   ClientName(m),
			Params: []*ast.Parameter{param("rpc", ast.Type(RPCClientName))},
			Body: []ast.Stmt{
				&ast.Assign{Target: ast.SelfField("rpc"), Value: ast.Name("rpc")},
				&ast.Assign{Target: ast.SelfField("name"), Value: ast.Quote(m.Name)},
			},
		},
	}
	for _, op := range ops {
		class.Methods = append(class.Methods, clientMethod(op))
	}
	return append(defs, class)
}

func rpcClientInterface() *ast.Interface {
	return &ast.Interface{Name: RPCClientName, Methods: []*ast.MethodSig{{
		Name:    "call",
		Params:  []*ast.Parameter{param("name", ast.StringType()), param("args", ast.MapType())},
		Returns: ast.MapType(),
	}}}
}

func rpcCacheInterface() *ast.Interface {
	return &ast.Interface{Name: RPCCacheName, Methods: []*ast.MethodSig{{
		Name: "call",
		Params: []*ast.Parameter{
			param("rpc", ast.Type(RPCClientName)),
			param("name", ast.StringType()),
			param("args", ast.MapType()),
			param("maxAge", ast.IntType()),
		},
		Returns: ast.MapType(),
	}}}
}

func rpcIndexInterface() *ast.Interface {
	return &ast.Interface{Name: RPCIndexName, Methods: []*ast.MethodSig{{
		Name: "lookup",
		Params: []*ast.Parameter{
			param("name", ast.StringType()),
			param("key", ast.StringType()),
			param("args", ast.MapType()),
		},
		Returns: ast.MapType(),
	}}}
}

func clientMethod(op *ast.Operation) *ast.Method {
	args := ast.Name("call_args")
	response := ast.Name("call_response")

	body := []ast.Stmt{declare(args.Name, ast.MapType(), &ast.NewMap{})}
	for _, p := range op.Parameters {
		stmts, expr := encode(ast.Name(p.Name), p.Type, p.Name+"_wire")
		body = append(body, stmts...)
		body = append(body, put(args, p.Name, expr))
	}
	body = append(body, route(op, args, response)...)

	if !op.Type.IsVoid() {
		body = append(body, decodeResult(op.Type, response)...)
	}

	return &ast.Method{
		Name:        op.Name,
		Annotations: op.Annotations,
		Params:      copyParams(op.Parameters),
		Returns:     op.Type,
		Body:        body,
		Origin:      op,
	}
}

// route invokes the transport, going through the cache or the index when
// the operation asks for it and the client has one.
func route(op *ast.Operation, args, response *ast.Ident) []ast.Stmt {
	direct := &ast.MethodCall{Recv: ast.SelfField("rpc"), Method: "call", Args: []ast.Expr{ast.Quote(op.Name), args}}

	if a := ast.FindAnnotation(op.Annotations, "cache"); a != nil {
		age, _ := strconv.ParseInt(a.Args[0].(*ast.StringLiteral).Value(), 10, 32)
		cache := ast.SelfField("cache")
		return []ast.Stmt{
			declare(response.Name, ast.MapType(), nil),
			&ast.If{
				Cond: &ast.NotNull{X: cache},
				Then: []ast.Stmt{&ast.Assign{Target: response, Value: &ast.MethodCall{
					Recv:   cache,
					Method: "call",
					Args:   []ast.Expr{ast.SelfField("rpc"), ast.Quote(op.Name), args, &ast.IntLit{Value: age}},
				}}},
				Else: []ast.Stmt{&ast.Assign{Target: response, Value: direct}},
			},
		}
	}

	if a := ast.FindAnnotation(op.Annotations, "index"); a != nil {
		index := ast.SelfField("index")
		return []ast.Stmt{
			declare(response.Name, ast.MapType(), null()),
			&ast.If{
				Cond: &ast.NotNull{X: index},
				Then: []ast.Stmt{&ast.Assign{Target: response, Value: &ast.MethodCall{
					Recv:   index,
					Method: "lookup",
					Args:   []ast.Expr{ast.Quote(op.Name), a.Args[0], args},
				}}},
			},
			&ast.If{
				Cond: &ast.IsNull{X: response},
				Then: []ast.Stmt{&ast.Assign{Target: response, Value: direct}},
			},
		}
	}

	return []ast.Stmt{declare(response.Name, ast.MapType(), direct)}
}

// decodeResult unmarshals "$result". A missing List<Struct> result decodes to
// an empty list.
func decodeResult(typ *ast.TypeRef, response *ast.Ident) []ast.Stmt {
	const key = "$result"
	switch {
	case typ.IsStruct():
		return []ast.Stmt{ret(call(FromMapName(typ.Name), get(response, key, ast.MapType())))}
	case typ.IsStructList():
		elem := typ.Elem()
		result := ast.Name("call_result")
		list := ast.Name("call_list")
		return []ast.Stmt{
			declare(result.Name, typ, &ast.NewList{Elem: elem}),
			declare(list.Name, ast.WireListType(), get(response, key, ast.WireListType())),
			&ast.If{
				Cond: &ast.NotNull{X: list},
				Then: []ast.Stmt{&ast.ForEach{Var: "call_elem", Elem: ast.MapType(), List: list, Body: []ast.Stmt{
					&ast.Append{List: result, Value: call(FromMapName(elem.Name), ast.Name("call_elem"))},
				}}},
			},
			ret(result),
		}
	}
	return []ast.Stmt{ret(get(response, key, typ))}
}
