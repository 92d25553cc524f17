package interp

import (
	"fmt"

	"github.com/datawire/adaptive/internal/ast"
)

// run executes body and returns the value of the first return statement
// reached, or nil when the body falls off its end.
func (p *Program) run(fr *frame, body []ast.Stmt) (any, error) {
	_, out, err := p.exec(fr, body)
	return out, err
}

func (p *Program) exec(fr *frame, body []ast.Stmt) (bool, any, error) {
	for _, s := range body {
		done, out, err := p.stmt(fr, s)
		if err != nil || done {
			return done, out, err
		}
	}
	return false, nil, nil
}

func (p *Program) stmt(fr *frame, s ast.Stmt) (bool, any, error) {
	switch s := s.(type) {
	case *ast.Declare:
		var v any
		if s.Value != nil {
			var err error
			if v, err = p.eval(fr, s.Value); err != nil {
				return false, nil, err
			}
		}
		fr.locals[s.Name] = v
	case *ast.Assign:
		v, err := p.eval(fr, s.Value)
		if err != nil {
			return false, nil, err
		}
		return false, nil, p.assign(fr, s.Target, v)
	case *ast.Put:
		m, err := p.evalMap(fr, s.Map)
		if err != nil {
			return false, nil, err
		}
		v, err := p.eval(fr, s.Value)
		if err != nil {
			return false, nil, err
		}
		m[s.Key] = v
	case *ast.Append:
		l, err := p.evalList(fr, s.List)
		if err != nil {
			return false, nil, err
		}
		if l == nil {
			return false, nil, fmt.Errorf("interp: append to null list %s", s.List)
		}
		v, err := p.eval(fr, s.Value)
		if err != nil {
			return false, nil, err
		}
		l.Items = append(l.Items, v)
	case *ast.If:
		c, err := p.eval(fr, s.Cond)
		if err != nil {
			return false, nil, err
		}
		cond, ok := c.(bool)
		if !ok {
			return false, nil, fmt.Errorf("interp: condition %s is %T, not bool", s.Cond, c)
		}
		if cond {
			return p.exec(fr, s.Then)
		}
		return p.exec(fr, s.Else)
	case *ast.ForEach:
		l, err := p.evalList(fr, s.List)
		if err != nil {
			return false, nil, err
		}
		if l == nil {
			return false, nil, fmt.Errorf("interp: iteration over null list %s", s.List)
		}
		for _, item := range l.Items {
			fr.locals[s.Var] = item
			if done, out, err := p.exec(fr, s.Body); err != nil || done {
				return done, out, err
			}
		}
	case *ast.Return:
		if s.Value == nil {
			return true, nil, nil
		}
		v, err := p.eval(fr, s.Value)
		return true, v, err
	case *ast.ExprStmt:
		_, err := p.eval(fr, s.X)
		return false, nil, err
	default:
		return false, nil, fmt.Errorf("interp: unhandled statement %T", s)
	}
	return false, nil, nil
}

func (p *Program) assign(fr *frame, target ast.Expr, v any) error {
	switch t := target.(type) {
	case *ast.Ident:
		fr.locals[t.Name] = v
		return nil
	case *ast.FieldOf:
		x, err := p.eval(fr, t.X)
		if err != nil {
			return err
		}
		fields, err := fieldsOf(x, t)
		if err != nil {
			return err
		}
		fields[t.Name] = v
		return nil
	}
	return fmt.Errorf("interp: cannot assign to %s", target)
}

func fieldsOf(x any, at *ast.FieldOf) (map[string]any, error) {
	switch x := x.(type) {
	case *Record:
		if x != nil {
			return x.Fields, nil
		}
	case *Instance:
		if x != nil {
			return x.Fields, nil
		}
	case nil:
	default:
		return nil, fmt.Errorf("interp: %s: %T has no fields", at, x)
	}
	return nil, fmt.Errorf("interp: %s: null dereference", at)
}

func (p *Program) evalMap(fr *frame, x ast.Expr) (map[string]any, error) {
	v, err := p.eval(fr, x)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, fmt.Errorf("interp: %s is %T, not a map", x, v)
	}
	return m, nil
}

func (p *Program) evalList(fr *frame, x ast.Expr) (*List, error) {
	v, err := p.eval(fr, x)
	if err != nil || v == nil {
		return nil, err
	}
	l, ok := v.(*List)
	if !ok {
		return nil, fmt.Errorf("interp: %s is %T, not a list", x, v)
	}
	return l, nil
}

func (p *Program) evalArgs(fr *frame, args []ast.Expr) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := p.eval(fr, a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (p *Program) eval(fr *frame, x ast.Expr) (any, error) {
	switch x := x.(type) {
	case *ast.Ident:
		v, ok := fr.locals[x.Name]
		if !ok {
			return nil, fmt.Errorf("interp: undefined %s", x.Name)
		}
		return v, nil
	case *ast.Self:
		if fr.self == nil {
			return nil, fmt.Errorf("interp: self outside a method")
		}
		return fr.self, nil
	case *ast.FieldOf:
		v, err := p.eval(fr, x.X)
		if err != nil {
			return nil, err
		}
		fields, err := fieldsOf(v, x)
		if err != nil {
			return nil, err
		}
		return fields[x.Name], nil
	case *ast.Get:
		m, err := p.evalMap(fr, x.Map)
		if err != nil {
			return nil, err
		}
		return m[x.Key], nil
	case *ast.Has:
		m, err := p.evalMap(fr, x.Map)
		if err != nil {
			return nil, err
		}
		_, ok := m[x.Key]
		return ok, nil
	case *ast.Call:
		args, err := p.evalArgs(fr, x.Args)
		if err != nil {
			return nil, err
		}
		return p.CallFunction(x.Func, args...)
	case *ast.MethodCall:
		recv, err := p.eval(fr, x.Recv)
		if err != nil {
			return nil, err
		}
		args, err := p.evalArgs(fr, x.Args)
		if err != nil {
			return nil, err
		}
		return p.Invoke(recv, x.Method, args...)
	case *ast.NewMap:
		return map[string]any{}, nil
	case *ast.NewList:
		return &List{}, nil
	case *ast.NewStruct:
		return p.NewRecord(x.Type.Name)
	case *ast.MapLit:
		m := make(map[string]any, len(x.Entries))
		for _, e := range x.Entries {
			v, err := p.eval(fr, e.Value)
			if err != nil {
				return nil, err
			}
			m[e.Key] = v
		}
		return m, nil
	case *ast.IntLit:
		return x.Value, nil
	case *ast.StringLiteral:
		return x.Value(), nil
	case *ast.NullLiteral:
		return nil, nil
	case *ast.Equals:
		a, err := p.eval(fr, x.X)
		if err != nil {
			return nil, err
		}
		b, err := p.eval(fr, x.Y)
		if err != nil {
			return nil, err
		}
		return Equal(a, b), nil
	case *ast.IsNull:
		v, err := p.eval(fr, x.X)
		return v == nil, err
	case *ast.NotNull:
		v, err := p.eval(fr, x.X)
		return v != nil, err
	}
	return nil, fmt.Errorf("interp: unhandled expression %T", x)
}
