package transform

import (
	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/errors"
)

type Options struct {
	Mode Mode

	// ImplicitService treats a module with operations as if it were
	// annotated @service.
	ImplicitService bool

	// Registry defaults to DefaultRegistry.
	Registry Registry
}

// Run validates m and returns a new module with marshalling helpers
// attached to every struct and, for a service, the client or server shape
// appended. m itself is left untouched.
func Run(m *ast.Module, opts Options) (*ast.Module, error) {
	if err := checkTypes(m); err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	ctx := &Context{Module: m, Mode: opts.Mode}
	if err := annotate(ctx, registry); err != nil {
		return nil, err
	}

	hasOps := len(m.Operations()) > 0
	if !ctx.Service && opts.ImplicitService && hasOps {
		ctx.Service = true
	}
	if !ctx.Service {
		if len(ctx.Routed) > 0 {
			op := ctx.Routed[0]
			return nil, errors.Compile(errors.ErrMissingService, m.Name, op.Pos,
				"operation %s is routed through a cache or index", op.Name)
		}
		if hasOps {
			return nil, errors.Compile(errors.ErrMissingService, m.Name, m.Pos,
				"module declares operations")
		}
	}

	out := m.Replace(func(def ast.Definition) ast.Definition {
		if s, ok := def.(*ast.Struct); ok {
			return s.With(MapConstructor(s), MapRenderer(s))
		}
		return nil
	})

	if ctx.Service {
		switch opts.Mode {
		case Client:
			out = out.With(ClientTransform(out)...)
		case Server:
			out = out.With(ServerTransform(out)...)
		default:
			return nil, errors.Compile(errors.ErrUnknownMode, m.Name, m.Pos, "%s", opts.Mode)
		}
	}
	return out, nil
}

// checkTypes rejects generic shapes other than List<T> of a primitive or a
// struct. void is only allowed as an operation result.
func checkTypes(m *ast.Module) error {
	for _, def := range m.Definitions {
		switch d := def.(type) {
		case *ast.Struct:
			for _, f := range d.Fields {
				if err := checkType(d.Name, f.Type, false); err != nil {
					return err
				}
			}
		case *ast.Operation:
			for _, p := range d.Parameters {
				if err := checkType(d.Name, p.Type, false); err != nil {
					return err
				}
			}
			if err := checkType(d.Name, d.Type, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkType(owner string, t *ast.TypeRef, allowVoid bool) error {
	switch {
	case t.IsVoid():
		if allowVoid {
			return nil
		}
		return errors.Compile(errors.ErrUnsupportedType, owner, t.Pos, "void is only valid as a result type")
	case t.IsList():
		elem := t.Elem()
		if elem.IsPrimitive() && !elem.IsVoid() || elem.IsStruct() {
			return nil
		}
	case t.Name == "List":
	case !t.IsGeneric():
		return nil
	}
	return errors.Compile(errors.ErrUnsupportedType, owner, t.Pos, "%s", t)
}
