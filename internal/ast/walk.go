package ast

import "errors"

// SkipChildren may be returned from a Visit callback to stop Walk from
// descending into the node. The matching Leave callback still runs.
var SkipChildren = errors.New("skip children")

// Visitor receives one Visit call before a node's children are walked and
// one Leave call after. Statements and expressions of synthesized code share
// the VisitStmt and VisitExpr hooks; string and null literals go to
// VisitLiteral wherever they appear.
type Visitor interface {
	VisitModule(*Module) error
	LeaveModule(*Module) error
	VisitDescription(*Description) error
	LeaveDescription(*Description) error
	VisitDefaults(*Defaults) error
	LeaveDefaults(*Defaults) error
	VisitStruct(*Struct) error
	LeaveStruct(*Struct) error
	VisitField(*Field) error
	LeaveField(*Field) error
	VisitParameter(*Parameter) error
	LeaveParameter(*Parameter) error
	VisitOperation(*Operation) error
	LeaveOperation(*Operation) error
	VisitType(*TypeRef) error
	LeaveType(*TypeRef) error
	VisitLiteral(Literal) error
	LeaveLiteral(Literal) error
	VisitAnnotation(*Annotation) error
	LeaveAnnotation(*Annotation) error

	VisitFunction(*Function) error
	LeaveFunction(*Function) error
	VisitInterface(*Interface) error
	LeaveInterface(*Interface) error
	VisitMethodSig(*MethodSig) error
	LeaveMethodSig(*MethodSig) error
	VisitClass(*Class) error
	LeaveClass(*Class) error
	VisitMethod(*Method) error
	LeaveMethod(*Method) error
	VisitStmt(Stmt) error
	LeaveStmt(Stmt) error
	VisitExpr(Expr) error
	LeaveExpr(Expr) error
}

// NopVisitor implements every Visitor method as a no-op. Embed it and
// override what you need.
type NopVisitor struct{}

func (NopVisitor) VisitModule(*Module) error           { return nil }
func (NopVisitor) LeaveModule(*Module) error           { return nil }
func (NopVisitor) VisitDescription(*Description) error { return nil }
func (NopVisitor) LeaveDescription(*Description) error { return nil }
func (NopVisitor) VisitDefaults(*Defaults) error       { return nil }
func (NopVisitor) LeaveDefaults(*Defaults) error       { return nil }
func (NopVisitor) VisitStruct(*Struct) error           { return nil }
func (NopVisitor) LeaveStruct(*Struct) error           { return nil }
func (NopVisitor) VisitField(*Field) error             { return nil }
func (NopVisitor) LeaveField(*Field) error             { return nil }
func (NopVisitor) VisitParameter(*Parameter) error     { return nil }
func (NopVisitor) LeaveParameter(*Parameter) error     { return nil }
func (NopVisitor) VisitOperation(*Operation) error     { return nil }
func (NopVisitor) LeaveOperation(*Operation) error     { return nil }
func (NopVisitor) VisitType(*TypeRef) error            { return nil }
func (NopVisitor) LeaveType(*TypeRef) error            { return nil }
func (NopVisitor) VisitLiteral(Literal) error          { return nil }
func (NopVisitor) LeaveLiteral(Literal) error          { return nil }
func (NopVisitor) VisitAnnotation(*Annotation) error   { return nil }
func (NopVisitor) LeaveAnnotation(*Annotation) error   { return nil }
func (NopVisitor) VisitFunction(*Function) error       { return nil }
func (NopVisitor) LeaveFunction(*Function) error       { return nil }
func (NopVisitor) VisitInterface(*Interface) error     { return nil }
func (NopVisitor) LeaveInterface(*Interface) error     { return nil }
func (NopVisitor) VisitMethodSig(*MethodSig) error     { return nil }
func (NopVisitor) LeaveMethodSig(*MethodSig) error     { return nil }
func (NopVisitor) VisitClass(*Class) error             { return nil }
func (NopVisitor) LeaveClass(*Class) error             { return nil }
func (NopVisitor) VisitMethod(*Method) error           { return nil }
func (NopVisitor) LeaveMethod(*Method) error           { return nil }
func (NopVisitor) VisitStmt(Stmt) error                { return nil }
func (NopVisitor) LeaveStmt(Stmt) error                { return nil }
func (NopVisitor) VisitExpr(Expr) error                { return nil }
func (NopVisitor) LeaveExpr(Expr) error                { return nil }

// Walk traverses node depth-first in source order. The first non-nil error
// returned by a callback (other than SkipChildren) aborts the walk.
func Walk(node Node, v Visitor) error {
	if node == nil {
		return nil
	}
	err := visit(node, v)
	if err != nil && err != SkipChildren {
		return err
	}
	if err == nil {
		for _, child := range node.Children() {
			if err := Walk(child, v); err != nil {
				return err
			}
		}
	}
	return leave(node, v)
}

func visit(node Node, v Visitor) error {
	switch n := node.(type) {
	case *Module:
		return v.VisitModule(n)
	case *Description:
		return v.VisitDescription(n)
	case *Defaults:
		return v.VisitDefaults(n)
	case *Struct:
		return v.VisitStruct(n)
	case *Field:
		return v.VisitField(n)
	case *Parameter:
		return v.VisitParameter(n)
	case *Operation:
		return v.VisitOperation(n)
	case *TypeRef:
		return v.VisitType(n)
	case Literal:
		return v.VisitLiteral(n)
	case *Annotation:
		return v.VisitAnnotation(n)
	case *Function:
		return v.VisitFunction(n)
	case *Interface:
		return v.VisitInterface(n)
	case *MethodSig:
		return v.VisitMethodSig(n)
	case *Class:
		return v.VisitClass(n)
	case *Method:
		return v.VisitMethod(n)
	case Stmt:
		return v.VisitStmt(n)
	case Expr:
		return v.VisitExpr(n)
	}
	return nil
}

func leave(node Node, v Visitor) error {
	switch n := node.(type) {
	case *Module:
		return v.LeaveModule(n)
	case *Description:
		return v.LeaveDescription(n)
	case *Defaults:
		return v.LeaveDefaults(n)
	case *Struct:
		return v.LeaveStruct(n)
	case *Field:
		return v.LeaveField(n)
	case *Parameter:
		return v.LeaveParameter(n)
	case *Operation:
		return v.LeaveOperation(n)
	case *TypeRef:
		return v.LeaveType(n)
	case Literal:
		return v.LeaveLiteral(n)
	case *Annotation:
		return v.LeaveAnnotation(n)
	case *Function:
		return v.LeaveFunction(n)
	case *Interface:
		return v.LeaveInterface(n)
	case *MethodSig:
		return v.LeaveMethodSig(n)
	case *Class:
		return v.LeaveClass(n)
	case *Method:
		return v.LeaveMethod(n)
	case Stmt:
		return v.LeaveStmt(n)
	case Expr:
		return v.LeaveExpr(n)
	}
	return nil
}
