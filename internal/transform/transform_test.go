package transform

import (
	stderrors "errors"
	"testing"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/errors"
	"github.com/datawire/adaptive/internal/parser"
	"github.com/datawire/adaptive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string) *ast.Module {
	t.Helper()
	m, err := parser.Parse("test.sdl", source)
	require.NoError(t, err)
	return m
}

const point = `module Geo { struct Point { int32 x; string label = null; }; };`

func TestMapRenderer(t *testing.T) {
	s := mustParse(t, point).Structs()[0]
	fn := MapRenderer(s)

	testutil.ExpectNoDiff(t, `fn $map Point_toMap(Point wire_value) {
    if (wire_value == null) {
        return null;
    }
    $map wire_map = {};
    wire_map["x"] = wire_value.x;
    wire_map["label"] = wire_value.label;
    return wire_map;
}`, fn.String())
	assert.Same(t, s, fn.Origin)
}

func TestMapConstructor(t *testing.T) {
	s := mustParse(t, point).Structs()[0]
	fn := MapConstructor(s)

	testutil.ExpectNoDiff(t, `fn Point Point_fromMap($map wire_map) {
    if (wire_map == null) {
        return null;
    }
    Point wire_result = new Point();
    int32 x_value = wire_map["x"] as int32;
    wire_result.x = x_value;
    if ("label" in wire_map) {
        string label_value = wire_map["label"] as string;
        wire_result.label = label_value;
    }
    return wire_result;
}`, fn.String())
}

func TestMarshalNestedStructs(t *testing.T) {
	m := mustParse(t, `module Geo {
    struct Point { int32 x; };
    struct Path { Point start; List<Point> points; };
};`)
	path := m.Structs()[1]

	toMap := MapRenderer(path).String()
	assert.Contains(t, toMap, `wire_map["start"] = Point_toMap(wire_value.start);`)
	assert.Contains(t, toMap, `for (Point points_wire_elem : wire_value.points)`)
	assert.Contains(t, toMap, `wire_map["points"] = points_wire;`)

	fromMap := MapConstructor(path).String()
	assert.Contains(t, fromMap, `Point start_value = Point_fromMap(wire_map["start"] as $map);`)
	assert.Contains(t, fromMap, `$list points_value_wire = wire_map["points"] as $list;`)
	assert.Contains(t, fromMap, `points_value.append(Point_fromMap(points_value_elem));`)
}

func TestClientTransform(t *testing.T) {
	m := mustParse(t, testutil.ReadExample(t, "../..", "inventory.sdl"))
	defs := ClientTransform(m)

	var names []string
	for _, d := range defs {
		switch d := d.(type) {
		case *ast.Interface:
			names = append(names, d.Name)
		case *ast.Class:
			names = append(names, d.Name)
		}
	}
	assert.Equal(t, []string{"RPCClient", "RPCCache", "RPCIndex", "Inventory_client"}, names)

	class := defs[3].(*ast.Class)
	require.Len(t, class.Methods, 4)
	require.Len(t, class.Fields, 4)
	assert.Equal(t, "cache", class.Fields[2].Name)

	lookup := class.Methods[0].String()
	assert.Contains(t, lookup, `call_response = self.cache.call(self.rpc, "lookup", call_args, 30);`)
	assert.Contains(t, lookup, `call_response = self.rpc.call("lookup", call_args);`)
	assert.Contains(t, lookup, `return Item_fromMap(call_response["$result"] as $map);`)

	item := class.Methods[1].String()
	assert.Contains(t, item, `call_response = self.index.lookup("item", "sku", call_args);`)
	assert.Contains(t, item, `if (call_response == null)`)

	items := class.Methods[2].String()
	assert.Contains(t, items, `$map call_response = self.rpc.call("items", call_args);`)
	assert.Contains(t, items, `List<Item> call_result = new List<Item>();`)

	restock := class.Methods[3].String()
	assert.Contains(t, restock, `call_args["sku"] = sku;`)
	assert.Contains(t, restock, `call_args["count"] = count;`)
	assert.NotContains(t, restock, "return")
}

func TestClientWithoutRouting(t *testing.T) {
	m := mustParse(t, `@service module M { void ping(); };`)
	defs := ClientTransform(m)
	require.Len(t, defs, 2)
	class := defs[1].(*ast.Class)
	assert.Len(t, class.Fields, 2)
}

func TestServerTransform(t *testing.T) {
	m := mustParse(t, testutil.ReadExample(t, "../..", "inventory.sdl"))
	defs := ServerTransform(m)
	require.Len(t, defs, 2)

	impl := defs[0].(*ast.Interface)
	assert.Equal(t, "Inventory_impl", impl.Name)
	require.Len(t, impl.Methods, 4)
	assert.Equal(t, "lookup", impl.Methods[0].Name)
	assert.NotNil(t, impl.Methods[0].Origin)

	class := defs[1].(*ast.Class)
	assert.Equal(t, "Inventory_server", class.Name)
	require.Len(t, class.Methods, 1)

	dispatcher := class.Methods[0]
	assert.Equal(t, "call", dispatcher.Name)
	assert.NotNil(t, dispatcher.Fallback)

	body := dispatcher.Body
	require.Len(t, body, 1+4+2)
	for i, op := range []string{"lookup", "item", "items", "restock"} {
		branch, ok := body[1+i].(*ast.If)
		require.True(t, ok)
		assert.Equal(t, `name == "`+op+`"`, branch.Cond.String())
	}
	assert.Equal(t, `call_response["$status"] = 500;`, body[5].String())
	assert.Equal(t, "return call_response;", body[6].String())

	items := body[3].String()
	assert.Contains(t, items, `List<Item> items_result = self.impl.items();`)
	assert.Contains(t, items, `call_response["$status"] = 200;`)
	assert.Contains(t, items, `call_response["$result"] = items_list;`)

	restock := body[4].String()
	assert.Contains(t, restock, `string restock_arg_sku = args["sku"] as string;`)
	assert.Contains(t, restock, `self.impl.restock(restock_arg_sku, restock_arg_count);`)
	assert.NotContains(t, restock, `"$result"`)
}

func TestRunAttachesHelpers(t *testing.T) {
	m := mustParse(t, testutil.ReadExample(t, "../..", "inventory.sdl"))
	out, err := Run(m, Options{Mode: Client})
	require.NoError(t, err)

	assert.Empty(t, m.Structs()[0].Helpers, "input module must not change")
	assert.Len(t, m.Definitions, 5)

	helpers := out.Structs()[0].Helpers
	require.Len(t, helpers, 2)
	assert.Equal(t, "Item_fromMap", helpers[0].Name)
	assert.Equal(t, "Item_toMap", helpers[1].Name)
	assert.Len(t, out.Definitions, 5+4)
}

func TestRunServer(t *testing.T) {
	m := mustParse(t, testutil.ReadExample(t, "../..", "inventory.sdl"))
	out, err := Run(m, Options{Mode: Server})
	require.NoError(t, err)
	_, ok := out.Definitions[len(out.Definitions)-1].(*ast.Class)
	assert.True(t, ok)
}

func TestRunWithoutService(t *testing.T) {
	m := mustParse(t, `module Geo { struct Point { int32 x; }; };`)
	out, err := Run(m, Options{Mode: Client})
	require.NoError(t, err)
	assert.Len(t, out.Definitions, 1)
	assert.Len(t, out.Structs()[0].Helpers, 2)
}

func TestImplicitService(t *testing.T) {
	m := mustParse(t, `module M { void ping(); };`)

	_, err := Run(m, Options{Mode: Client})
	assert.ErrorIs(t, err, errors.ErrMissingService)

	out, err := Run(m, Options{Mode: Client, ImplicitService: true})
	require.NoError(t, err)
	assert.Len(t, out.Definitions, 3)
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		sentinel error
		code     string
	}{
		{"unknown annotation", `@service module M { @fast void ping(); };`, errors.ErrUnknownAnnotation, errors.ErrorUnknownAnnotation},
		{"cache without service", `module M { @cache("5") void ping(); };`, errors.ErrMissingService, errors.ErrorMissingService},
		{"cache arity", `@service module M { @cache void ping(); };`, errors.ErrAnnotationArity, errors.ErrorAnnotationArity},
		{"cache age", `@service module M { @cache("soon") void ping(); };`, errors.ErrInvalidCacheAge, errors.ErrorInvalidCacheAge},
		{"cache null age", `@service module M { @cache(null) void ping(); };`, errors.ErrAnnotationArity, errors.ErrorAnnotationArity},
		{"index key", `@service module M { @index("id") void ping(string name); };`, errors.ErrUnknownIndexKey, errors.ErrorUnknownIndexKey},
		{"cache and index", `@service module M { @index("id") @cache("1") void ping(string id); };`, errors.ErrAnnotationArity, errors.ErrorAnnotationArity},
		{"service on struct", `module M { @service struct S { int32 x; }; };`, errors.ErrUnknownAnnotation, errors.ErrorUnknownAnnotation},
		{"map type", `@service module M { void put(Map<string, string> values); };`, errors.ErrUnsupportedType, errors.ErrorUnsupportedType},
		{"nested list", `@service module M { List<List<string>> grid(); };`, errors.ErrUnsupportedType, errors.ErrorUnsupportedType},
		{"bare list", `module M { struct S { List items; }; };`, errors.ErrUnsupportedType, errors.ErrorUnsupportedType},
		{"void field", `module M { struct S { void nothing; }; };`, errors.ErrUnsupportedType, errors.ErrorUnsupportedType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Run(mustParse(t, tc.source), Options{Mode: Client})
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tc.sentinel)

			var ce *errors.CompileError
			require.True(t, stderrors.As(err, &ce))
			assert.Equal(t, tc.code, ce.Code)
		})
	}
}

func TestValueAnnotation(t *testing.T) {
	m := mustParse(t, `module M { @value struct S { int32 x; }; };`)
	ctx := &Context{Module: m}
	require.NoError(t, annotate(ctx, DefaultRegistry()))
	assert.Equal(t, []string{"S"}, ctx.Values)
}

func TestCustomRegistry(t *testing.T) {
	registry := DefaultRegistry()
	seen := 0
	registry["trace"] = func(*Context, ast.Node, *ast.Annotation) error {
		seen++
		return nil
	}

	m := mustParse(t, `@service module M { @trace void ping(); };`)
	_, err := Run(m, Options{Mode: Server, Registry: registry})
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("server")
	require.NoError(t, err)
	assert.Equal(t, Server, mode)
	assert.Equal(t, "server", mode.String())

	_, err = ParseMode("proxy")
	assert.ErrorIs(t, err, errors.ErrUnknownMode)
}

// declared collects every name a body introduces.
type declared struct {
	ast.NopVisitor
	names []string
}

func (d *declared) VisitStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Declare:
		d.names = append(d.names, s.Name)
	case *ast.ForEach:
		d.names = append(d.names, s.Var)
	}
	return nil
}

func assertDistinctLocals(t *testing.T, owner string, params []*ast.Parameter, body []ast.Stmt) {
	t.Helper()
	d := &declared{}
	for _, p := range params {
		d.names = append(d.names, p.Name)
	}
	for _, s := range body {
		require.NoError(t, ast.Walk(s, d))
	}
	seen := map[string]bool{}
	for _, name := range d.names {
		assert.False(t, seen[name], "%s declares %s twice", owner, name)
		seen[name] = true
	}
}

func TestSynthesizedNamesDoNotClash(t *testing.T) {
	sources := []string{
		`@service module Pet {
    struct Pet { int64 id; string name; string tag = null; };
    Pet findPetById(int64 id) { desc "x"; };
};`,
		`@service module R {
    struct P { int64 id; };
    P update(P result);
    List<P> many(List<P> list);
    P call(P name, List<P> args);
};`,
		`module W { struct S { int64 wire; List<S> map; S result; }; };`,
	}
	for _, source := range sources {
		m := mustParse(t, source)
		for _, mode := range []Mode{Client, Server} {
			out, err := Run(m, Options{Mode: mode})
			require.NoError(t, err)

			defined := map[string]bool{}
			for _, def := range out.Definitions {
				switch def := def.(type) {
				case *ast.Struct:
					defined[def.Name] = true
					for _, f := range def.Helpers {
						assertDistinctLocals(t, f.Name, f.Params, f.Body)
					}
				case *ast.Interface:
					assert.False(t, defined[def.Name], "%s defined twice", def.Name)
					defined[def.Name] = true
				case *ast.Class:
					assert.False(t, defined[def.Name], "%s defined twice", def.Name)
					defined[def.Name] = true
					for _, method := range def.Methods {
						assertDistinctLocals(t, def.Name+"."+method.Name, method.Params, method.Body)
					}
				}
			}
		}
	}
}

func TestServerInterfaceBesideSameNamedStruct(t *testing.T) {
	m := mustParse(t, `@service module Pet {
    struct Pet { int64 id; };
    Pet findPetById(int64 id);
};`)
	defs := ServerTransform(m)
	assert.Equal(t, "Pet_impl", defs[0].(*ast.Interface).Name)
	class := defs[1].(*ast.Class)
	assert.Equal(t, "Pet_impl", class.Fields[0].Type.Name)

	branch := class.Methods[0].Body[1].String()
	assert.Contains(t, branch, `int64 findPetById_arg_id = args["id"] as int64;`)
	assert.Contains(t, branch, `Pet findPetById_result = self.impl.findPetById(findPetById_arg_id);`)
	assert.Contains(t, branch, `call_response["$result"] = Pet_toMap(findPetById_result);`)
}
