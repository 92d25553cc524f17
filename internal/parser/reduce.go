package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/datawire/adaptive/grammar"
	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/errors"
)

// Reductions turn parse tree nodes into AST nodes, one function per grammar
// rule.

func position(pos lexer.Position) ast.Position {
	return ast.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

func reduceFile(file *grammar.File) (*ast.Module, error) {
	m := file.Module
	out := &ast.Module{
		Pos:         position(m.Pos),
		Name:        m.Name,
		Annotations: reduceAnnotations(m.Annotations),
	}
	for _, def := range m.Definitions {
		d, err := reduceDefinition(def)
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, d)
	}
	return out, nil
}

func reduceDefinition(def *grammar.Definition) (ast.Definition, error) {
	item := def.Item
	annotations := reduceAnnotations(def.Annotations)

	switch {
	case item.Struct != nil:
		s := reduceStruct(item.Struct)
		s.Annotations = annotations
		return s, nil
	case item.Operation != nil:
		op := reduceOperation(item.Operation)
		op.Annotations = annotations
		return op, nil
	}

	if len(annotations) > 0 {
		a := annotations[0]
		return nil, &errors.ParseError{
			Code:    errors.ErrorMisplacedAnnotation,
			Pos:     a.Pos,
			Token:   "@" + a.Name,
			Message: "annotations may only precede a module, struct or operation",
		}
	}

	switch {
	case item.Desc != nil:
		return reduceDesc(item.Desc), nil
	case item.Defaults != nil:
		return &ast.Defaults{
			Pos: position(item.Defaults.Pos),
			Raw: joinRaw(item.Defaults.Body),
		}, nil
	}
	return nil, fmt.Errorf("empty definition at %s", def.Pos)
}

// joinRaw keeps the skipped tokens of an opaque block for display.
func joinRaw(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return " " + strings.Join(tokens, " ") + " "
}

func reduceDesc(d *grammar.Desc) *ast.Description {
	return &ast.Description{
		Pos:     position(d.Pos),
		Content: &ast.StringLiteral{Pos: position(d.Pos), Text: d.Content},
	}
}

func reduceStruct(s *grammar.Struct) *ast.Struct {
	out := &ast.Struct{Pos: position(s.Pos), Name: s.Name}
	for _, f := range s.Fields {
		out.Fields = append(out.Fields, &ast.Field{Declaration: declaration(f.Pos, f.Name, f.Type, f.Default)})
	}
	return out
}

func reduceOperation(op *grammar.Operation) *ast.Operation {
	out := &ast.Operation{
		Pos:  position(op.Pos),
		Name: op.Name,
		Type: reduceType(op.Type),
	}
	for _, p := range op.Params {
		out.Parameters = append(out.Parameters, &ast.Parameter{Declaration: declaration(p.Pos, p.Name, p.Type, p.Default)})
	}
	if op.Body != nil && op.Body.Desc != nil {
		out.Description = reduceDesc(op.Body.Desc)
	}
	return out
}

func declaration(pos lexer.Position, name string, t *grammar.Type, def *grammar.Literal) ast.Declaration {
	d := ast.Declaration{
		Pos:     position(pos),
		Name:    name,
		Type:    reduceType(t),
		Default: reduceLiteral(def),
	}
	_, d.Type.Nullable = d.Default.(*ast.NullLiteral)
	return d
}

func reduceType(t *grammar.Type) *ast.TypeRef {
	out := &ast.TypeRef{Pos: position(t.Pos), Name: t.Name}
	for _, arg := range t.Args {
		out.Args = append(out.Args, reduceType(arg))
	}
	return out
}

func reduceLiteral(l *grammar.Literal) ast.Literal {
	switch {
	case l == nil:
		return nil
	case l.String != nil:
		return &ast.StringLiteral{Pos: position(l.Pos), Text: *l.String}
	default:
		return &ast.NullLiteral{Pos: position(l.Pos)}
	}
}

func reduceAnnotations(as []*grammar.Annotation) []*ast.Annotation {
	var out []*ast.Annotation
	for _, a := range as {
		ann := &ast.Annotation{Pos: position(a.Pos), Name: a.Name}
		for _, arg := range a.Args {
			ann.Args = append(ann.Args, reduceLiteral(arg))
		}
		out = append(out, ann)
	}
	return out
}
