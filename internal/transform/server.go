package transform

import "github.com/datawire/adaptive/internal/ast"

// Wire map keys and status codes shared by every generated client and server.
const (
	StatusKey = "$status"
	ResultKey = "$result"

	StatusOK    = 200
	StatusError = 500
)

// ServerName is the generated dispatcher class for a module.
func ServerName(m *ast.Module) string { return m.Name + "_server" }

// ImplName is the interface the service implementation satisfies. A module
// may hold a struct of its own name, so the module name alone is not used.
func ImplName(m *ast.Module) string { return m.Name + "_impl" }

// ServerTransform synthesizes the `<Module>_impl` interface and the
// `<Module>_server` class whose call method dispatches a request by name.
// Unknown names, and failures raised by the implementation, answer with
// status 500.
func ServerTransform(m *ast.Module) []ast.Definition {
	ops := m.Operations()
	impl := &ast.Interface{Name: ImplName(m), Annotations: m.Annotations}
	for _, op := range ops {
		impl.Methods = append(impl.Methods, &ast.MethodSig{
			Name:    op.Name,
			Params:  copyParams(op.Parameters),
			Returns: op.Type,
			Origin:  op,
		})
	}

	name := ast.Name("name")
	args := ast.Name("args")
	response := ast.Name("call_response")

	body := []ast.Stmt{declare(response.Name, ast.MapType(), &ast.NewMap{})}
	for _, op := range ops {
		body = append(body, &ast.If{
			Cond: &ast.Equals{X: name, Y: ast.Quote(op.Name)},
			Then: dispatch(op, args, response),
		})
	}
	body = append(body,
		put(response, StatusKey, &ast.IntLit{Value: StatusError}),
		ret(response),
	)

	class := &ast.Class{
		Name:        ServerName(m),
		Annotations: m.Annotations,
		Fields: []*ast.Field{
			field("impl", ast.Type(ImplName(m)), nil),
			field("name", ast.StringType(), nil),
		},
		Constructor: &ast.Method{
			Name:   ServerName(m),
			Params: []*ast.Parameter{param("impl", ast.Type(ImplName(m)))},
			Body: []ast.Stmt{
				&ast.Assign{Target: ast.SelfField("impl"), Value: ast.Name("impl")},
				&ast.Assign{Target: ast.SelfField("name"), Value: ast.Quote(m.Name)},
			},
		},
		Methods: []*ast.Method{{
			Name:    "call",
			Params:  []*ast.Parameter{param("name", ast.StringType()), param("args", ast.MapType())},
			Returns: ast.MapType(),
			Body:    body,
			Fallback: &ast.MapLit{Entries: []*ast.MapEntry{
				{Key: StatusKey, Value: &ast.IntLit{Value: StatusError}},
			}},
		}},
	}

	return []ast.Definition{impl, class}
}

// dispatch decodes the arguments of op into `<op>_arg_<param>` locals,
// calls the implementation and encodes its result into `<op>_result`.
func dispatch(op *ast.Operation, args, response *ast.Ident) []ast.Stmt {
	var stmts []ast.Stmt
	var callArgs []ast.Expr
	for _, p := range op.Parameters {
		local := op.Name + "_arg_" + p.Name
		stmts = append(stmts, decode(args, p.Name, p.Type, local)...)
		callArgs = append(callArgs, ast.Name(local))
	}

	invoke := &ast.MethodCall{Recv: ast.SelfField("impl"), Method: op.Name, Args: callArgs}
	result := ast.Name(op.Name + "_result")
	if op.Type.IsVoid() {
		stmts = append(stmts, &ast.ExprStmt{X: invoke})
	} else {
		stmts = append(stmts, declare(result.Name, op.Type, invoke))
	}

	stmts = append(stmts, put(response, StatusKey, &ast.IntLit{Value: StatusOK}))
	if !op.Type.IsVoid() {
		pre, expr := encode(result, op.Type, op.Name+"_list")
		stmts = append(stmts, pre...)
		stmts = append(stmts, put(response, ResultKey, expr))
	}
	return append(stmts, ret(response))
}
