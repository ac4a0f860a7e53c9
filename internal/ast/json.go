package ast

import (
	"mython/internal/span"
)

// NodeToMap converts an AST node to a map suitable for JSON serialization.
// This produces a tagged-union structure: every node has a "kind" field.
func NodeToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return m("File", n.Span, "body", nodeSlice(n.Body))

	// ---- Expressions ----
	case *NumericConst:
		return m("NumericConst", n.Span, "value", n.Value)
	case *StringConst:
		return m("StringConst", n.Span, "value", n.Value)
	case *BoolConst:
		return m("BoolConst", n.Span, "value", n.Value)
	case *NoneConst:
		return m("NoneConst", n.Span)
	case *VariableValue:
		return m("VariableValue", n.Span, "path", n.Path)
	case *NewInstance:
		return m("NewInstance", n.Span, "className", n.ClassName, "args", exprSlice(n.Args))
	case *MethodCall:
		return m("MethodCall", n.Span,
			"object", NodeToMap(n.Object),
			"method", n.Method,
			"args", exprSlice(n.Args))
	case *Stringify:
		return m("Stringify", n.Span, "arg", NodeToMap(n.Arg))
	case *Not:
		return m("Not", n.Span, "arg", NodeToMap(n.Arg))
	case *BinaryArith:
		return m("BinaryArith", n.Span,
			"op", n.Op.String(),
			"lhs", NodeToMap(n.Lhs),
			"rhs", NodeToMap(n.Rhs))
	case *Comparison:
		return m("Comparison", n.Span,
			"op", n.Op.String(),
			"lhs", NodeToMap(n.Lhs),
			"rhs", NodeToMap(n.Rhs))
	case *Or:
		return m("Or", n.Span, "lhs", NodeToMap(n.Lhs), "rhs", NodeToMap(n.Rhs))
	case *And:
		return m("And", n.Span, "lhs", NodeToMap(n.Lhs), "rhs", NodeToMap(n.Rhs))

	// ---- Statements ----
	case *Assignment:
		return m("Assignment", n.Span, "name", n.Name, "value", NodeToMap(n.Value))
	case *FieldAssignment:
		return m("FieldAssignment", n.Span,
			"object", NodeToMap(n.Object),
			"field", n.Field,
			"value", NodeToMap(n.Value))
	case *Print:
		return m("Print", n.Span, "args", exprSlice(n.Args))
	case *ExprStmt:
		return m("ExprStmt", n.Span, "x", NodeToMap(n.X))
	case *IfElse:
		return m("IfElse", n.Span,
			"condition", NodeToMap(n.Condition),
			"ifBranch", NodeToMap(n.IfBranch),
			"elseBranch", NodeToMap(n.ElseBranch))
	case *Return:
		return m("Return", n.Span, "value", NodeToMap(n.Value))
	case *Compound:
		return m("Compound", n.Span, "statements", stmtSlice(n.Statements))
	case *MethodBody:
		return m("MethodBody", n.Span, "body", NodeToMap(n.Body))

	// ---- Declarations ----
	case *MethodDecl:
		return m("MethodDecl", n.Span,
			"name", n.Name,
			"params", n.Params,
			"body", NodeToMap(n.Body))
	case *ClassDecl:
		methods := make([]interface{}, len(n.Methods))
		for i, md := range n.Methods {
			methods[i] = NodeToMap(md)
		}
		return m("ClassDecl", n.Span, "name", n.Name, "parent", n.Parent, "methods", methods)

	default:
		return m("Unknown", node.GetSpan())
	}
}

func m(kind string, s span.Span, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"span": spanToMap(s),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func spanToMap(s span.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": map[string]interface{}{
			"offset": s.Start.Offset,
			"line":   s.Start.Line,
			"column": s.Start.Column,
		},
		"end": map[string]interface{}{
			"offset": s.End.Offset,
			"line":   s.End.Line,
			"column": s.End.Column,
		},
	}
}

func nodeSlice(nodes []Node) []interface{} {
	result := make([]interface{}, len(nodes))
	for i, n := range nodes {
		result[i] = NodeToMap(n)
	}
	return result
}

func exprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = NodeToMap(e)
	}
	return result
}

func stmtSlice(stmts []Stmt) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = NodeToMap(s)
	}
	return result
}
