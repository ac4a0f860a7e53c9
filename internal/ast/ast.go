// Package ast defines the abstract syntax tree for mython.
package ast

import (
	"mython/internal/span"
)

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	GetSpan() span.Span
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeBase provides the common Span field for all AST nodes.
type NodeBase struct {
	Span span.Span
}

func (n NodeBase) nodeNode()          {}
func (n NodeBase) GetSpan() span.Span { return n.Span }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (ExprBase) exprNode() {}

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ NodeBase }

func (StmtBase) stmtNode() {}

// ============================================================
// File (top-level AST root)
// ============================================================

// File is the whole program: a sequence of class definitions
// interleaved with top-level statements, executed as one Compound.
type File struct {
	NodeBase
	Body []Node
}

// ============================================================
// Comparator — the operator carried by a Comparison node.
// ============================================================

// Comparator names the six relational operators. Only Equal and Less
// are primitive; the rest are derived from them at evaluation time,
// mirroring the original runtime's Equal/Less/NotEqual/Greater/
// LessOrEqual/GreaterOrEqual family.
type Comparator int

const (
	CmpEqual Comparator = iota
	CmpNotEqual
	CmpLess
	CmpGreater
	CmpLessOrEqual
	CmpGreaterOrEqual
)

func (c Comparator) String() string {
	switch c {
	case CmpEqual:
		return "=="
	case CmpNotEqual:
		return "!="
	case CmpLess:
		return "<"
	case CmpGreater:
		return ">"
	case CmpLessOrEqual:
		return "<="
	case CmpGreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// ============================================================
// Expressions
// ============================================================

// NumericConst is an integer literal.
type NumericConst struct {
	ExprBase
	Value int
}

// StringConst is a string literal.
type StringConst struct {
	ExprBase
	Value string
}

// BoolConst is True or False.
type BoolConst struct {
	ExprBase
	Value bool
}

// NoneConst is the None literal.
type NoneConst struct {
	ExprBase
}

// VariableValue looks up a (possibly dotted) name: x, or self.field,
// or a.b.c resolving intermediate names as class-instance fields.
type VariableValue struct {
	ExprBase
	Path []string
}

// NewInstance constructs an instance of a named class, invoking its
// __init__ method with Args if the arity matches.
type NewInstance struct {
	ExprBase
	ClassName string
	Args      []Expr
}

// MethodCall invokes Method on Object with Args, used both as a
// statement (result discarded) and as an expression (result used).
type MethodCall struct {
	ExprBase
	Object Expr
	Method string
	Args   []Expr
}

// Stringify renders Arg via str(...): the object's own print
// representation, or the literal "None" if Arg evaluates to none.
type Stringify struct {
	ExprBase
	Arg Expr
}

// Not negates a boolean-coerced operand.
type Not struct {
	ExprBase
	Arg Expr
}

// Arith is one of the four arithmetic operators. Add additionally
// supports string concatenation and class-instance __add__ dispatch;
// Sub/Mult/Div are numeric-only.
type Arith int

const (
	ArithAdd Arith = iota
	ArithSub
	ArithMult
	ArithDiv
)

func (a Arith) String() string {
	switch a {
	case ArithAdd:
		return "+"
	case ArithSub:
		return "-"
	case ArithMult:
		return "*"
	case ArithDiv:
		return "/"
	default:
		return "?"
	}
}

// BinaryArith is a Lhs <op> Rhs arithmetic expression.
type BinaryArith struct {
	ExprBase
	Op  Arith
	Lhs Expr
	Rhs Expr
}

// Comparison is a Lhs <op> Rhs relational expression.
type Comparison struct {
	ExprBase
	Op  Comparator
	Lhs Expr
	Rhs Expr
}

// Or is a short-circuiting logical or.
type Or struct {
	ExprBase
	Lhs Expr
	Rhs Expr
}

// And is a short-circuiting logical and.
type And struct {
	ExprBase
	Lhs Expr
	Rhs Expr
}

// ============================================================
// Statements
// ============================================================

// Assignment binds Value to a bare name in the enclosing closure.
type Assignment struct {
	StmtBase
	Name  string
	Value Expr
}

// FieldAssignment assigns Value to a field on a class instance
// reached by evaluating Object.
type FieldAssignment struct {
	StmtBase
	Object Expr
	Field  string
	Value  Expr
}

// Print writes its arguments, space-separated with a trailing
// newline, converting each via Stringify semantics.
type Print struct {
	StmtBase
	Args []Expr
}

// ExprStmt evaluates X and discards the result — a bare method call
// used as a statement.
type ExprStmt struct {
	StmtBase
	X Expr
}

// IfElse executes IfBranch when Condition is truthy, else ElseBranch
// (nil when there is no else clause).
type IfElse struct {
	StmtBase
	Condition  Expr
	IfBranch   Stmt
	ElseBranch Stmt
}

// Return unwinds to the nearest enclosing MethodBody carrying Value.
type Return struct {
	StmtBase
	Value Expr
}

// Compound executes Statements in sequence.
type Compound struct {
	StmtBase
	Statements []Stmt
}

// MethodBody is the unique catch point for a Return signal raised
// while executing Body; it is what a method's code actually is.
type MethodBody struct {
	StmtBase
	Body Stmt
}

// ============================================================
// Declarations
// ============================================================

// MethodDecl is one `def name(params): ...` inside a class.
type MethodDecl struct {
	NodeBase
	Name   string
	Params []string
	Body   *MethodBody
}

// ClassDecl is a `class Name(Parent): ...` declaration. Parent is
// empty when the class has no base class.
type ClassDecl struct {
	NodeBase
	Name    string
	Parent  string
	Methods []*MethodDecl
}
