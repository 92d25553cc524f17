package transform

import (
	"sort"
	"strconv"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/errors"
)

// Annotator validates one annotation on a module, struct or operation and
// records its effect in the Context.
type Annotator func(ctx *Context, target ast.Node, a *ast.Annotation) error

// Registry maps annotation names to annotators.
type Registry map[string]Annotator

// DefaultRegistry knows service, value, cache and index.
func DefaultRegistry() Registry {
	return Registry{
		"service": serviceAnnotator,
		"value":   valueAnnotator,
		"cache":   cacheAnnotator,
		"index":   indexAnnotator,
	}
}

func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Context is the state shared by the annotators of one module.
type Context struct {
	Module *ast.Module
	Mode   Mode

	// Service is set once the module carries @service.
	Service bool

	// Values lists the structs tagged @value.
	Values []string

	// Routed lists operations annotated @cache or @index, in source order.
	Routed []*ast.Operation
}

func nameOf(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Module:
		return n.Name
	case *ast.Struct:
		return n.Name
	case *ast.Operation:
		return n.Name
	}
	return n.NodeType().String()
}

func arity(target ast.Node, a *ast.Annotation, want int) error {
	if len(a.Args) != want {
		return errors.Compile(errors.ErrAnnotationArity, nameOf(target), a.Pos,
			"@%s takes %d argument(s), got %d", a.Name, want, len(a.Args))
	}
	return nil
}

func stringArg(target ast.Node, a *ast.Annotation) (string, error) {
	if err := arity(target, a, 1); err != nil {
		return "", err
	}
	lit, ok := a.Args[0].(*ast.StringLiteral)
	if !ok {
		return "", errors.Compile(errors.ErrAnnotationArity, nameOf(target), a.Pos,
			"@%s takes a string argument, got %s", a.Name, a.Args[0])
	}
	return lit.Value(), nil
}

func serviceAnnotator(ctx *Context, target ast.Node, a *ast.Annotation) error {
	if _, ok := target.(*ast.Module); !ok {
		return errors.Compile(errors.ErrUnknownAnnotation, nameOf(target), a.Pos, "@service only applies to a module")
	}
	if err := arity(target, a, 0); err != nil {
		return err
	}
	ctx.Service = true
	return nil
}

func valueAnnotator(ctx *Context, target ast.Node, a *ast.Annotation) error {
	s, ok := target.(*ast.Struct)
	if !ok {
		return errors.Compile(errors.ErrUnknownAnnotation, nameOf(target), a.Pos, "@value only applies to a struct")
	}
	if err := arity(target, a, 0); err != nil {
		return err
	}
	ctx.Values = append(ctx.Values, s.Name)
	return nil
}

func cacheAnnotator(ctx *Context, target ast.Node, a *ast.Annotation) error {
	op, ok := target.(*ast.Operation)
	if !ok {
		return errors.Compile(errors.ErrUnknownAnnotation, nameOf(target), a.Pos, "@cache only applies to an operation")
	}
	age, err := stringArg(target, a)
	if err != nil {
		return err
	}
	if n, err := strconv.ParseInt(age, 10, 32); err != nil || n < 0 {
		return errors.Compile(errors.ErrInvalidCacheAge, op.Name, a.Pos, "%q is not a number of seconds", age)
	}
	if ast.FindAnnotation(op.Annotations, "index") != nil {
		return errors.Compile(errors.ErrAnnotationArity, op.Name, a.Pos, "@cache and @index cannot be combined")
	}
	ctx.Routed = append(ctx.Routed, op)
	return nil
}

func indexAnnotator(ctx *Context, target ast.Node, a *ast.Annotation) error {
	op, ok := target.(*ast.Operation)
	if !ok {
		return errors.Compile(errors.ErrUnknownAnnotation, nameOf(target), a.Pos, "@index only applies to an operation")
	}
	key, err := stringArg(target, a)
	if err != nil {
		return err
	}
	for _, p := range op.Parameters {
		if p.Name == key {
			ctx.Routed = append(ctx.Routed, op)
			return nil
		}
	}
	return errors.Compile(errors.ErrUnknownIndexKey, op.Name, a.Pos, "%s has no parameter %q", op.Name, key)
}

// annotate runs the registered annotator for every annotation in the
// module, in source order.
func annotate(ctx *Context, registry Registry) error {
	apply := func(target ast.Node, annotations []*ast.Annotation) error {
		for _, a := range annotations {
			fn, ok := registry[a.Name]
			if !ok {
				return errors.Compile(errors.ErrUnknownAnnotation, nameOf(target), a.Pos,
					"@%s is not one of %v", a.Name, registry.Names())
			}
			if err := fn(ctx, target, a); err != nil {
				return err
			}
		}
		return nil
	}

	m := ctx.Module
	if err := apply(m, m.Annotations); err != nil {
		return err
	}
	for _, def := range m.Definitions {
		switch d := def.(type) {
		case *ast.Struct:
			if err := apply(d, d.Annotations); err != nil {
				return err
			}
		case *ast.Operation:
			if err := apply(d, d.Annotations); err != nil {
				return err
			}
		}
	}
	return nil
}
