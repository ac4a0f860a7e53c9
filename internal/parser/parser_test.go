package parser

import (
	"encoding/json"
	"strings"
	"testing"

	"mython/internal/ast"
)

func parseOK(t *testing.T, source string) *ast.File {
	t.Helper()
	file, diags := ParseFile(source, "test.myt")
	if len(diags) > 0 {
		t.Fatalf("parse errors: %v", diags)
	}
	return file
}

func parseToJSON(t *testing.T, source string) string {
	t.Helper()
	file := parseOK(t, source)
	m := ast.NodeToMap(file)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		t.Fatalf("json error: %v", err)
	}
	return string(data)
}

func TestParseAssignment(t *testing.T) {
	file := parseOK(t, "x = 42\n")
	if len(file.Body) != 1 {
		t.Fatalf("expected 1 node, got %d", len(file.Body))
	}
	a, ok := file.Body[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected Assignment, got %T", file.Body[0])
	}
	if a.Name != "x" {
		t.Errorf("expected name x, got %q", a.Name)
	}
	n, ok := a.Value.(*ast.NumericConst)
	if !ok || n.Value != 42 {
		t.Errorf("expected NumericConst{42}, got %#v", a.Value)
	}
}

func TestParseFieldAssignment(t *testing.T) {
	file := parseOK(t, "self.value = 1\n")
	fa, ok := file.Body[0].(*ast.FieldAssignment)
	if !ok {
		t.Fatalf("expected FieldAssignment, got %T", file.Body[0])
	}
	obj, ok := fa.Object.(*ast.VariableValue)
	if !ok || len(obj.Path) != 1 || obj.Path[0] != "self" {
		t.Fatalf("expected Object VariableValue{self}, got %#v", fa.Object)
	}
	if fa.Field != "value" {
		t.Errorf("expected field value, got %q", fa.Field)
	}
}

func TestParseDottedFieldAssignment(t *testing.T) {
	file := parseOK(t, "a.b.c = 1\n")
	fa, ok := file.Body[0].(*ast.FieldAssignment)
	if !ok {
		t.Fatalf("expected FieldAssignment, got %T", file.Body[0])
	}
	obj, ok := fa.Object.(*ast.VariableValue)
	if !ok || len(obj.Path) != 2 || obj.Path[0] != "a" || obj.Path[1] != "b" {
		t.Fatalf("expected Object VariableValue{a,b}, got %#v", fa.Object)
	}
	if fa.Field != "c" {
		t.Errorf("expected field c, got %q", fa.Field)
	}
}

func TestParsePrint(t *testing.T) {
	file := parseOK(t, "print 1, 2, 3\n")
	p, ok := file.Body[0].(*ast.Print)
	if !ok {
		t.Fatalf("expected Print, got %T", file.Body[0])
	}
	if len(p.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(p.Args))
	}
}

func TestParsePrintNoArgs(t *testing.T) {
	file := parseOK(t, "print\n")
	p, ok := file.Body[0].(*ast.Print)
	if !ok {
		t.Fatalf("expected Print, got %T", file.Body[0])
	}
	if len(p.Args) != 0 {
		t.Errorf("expected 0 args, got %d", len(p.Args))
	}
}

func TestParseClassDecl(t *testing.T) {
	src := "class Point:\n  def __init__(x, y):\n    self.x = x\n    self.y = y\n"
	file := parseOK(t, src)
	decl, ok := file.Body[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected ClassDecl, got %T", file.Body[0])
	}
	if decl.Name != "Point" {
		t.Errorf("expected name Point, got %q", decl.Name)
	}
	if len(decl.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(decl.Methods))
	}
	m := decl.Methods[0]
	if m.Name != "__init__" {
		t.Errorf("expected method __init__, got %q", m.Name)
	}
	if len(m.Params) != 2 || m.Params[0] != "x" || m.Params[1] != "y" {
		t.Errorf("expected params [x y], got %v", m.Params)
	}
}

func TestParseClassWithParent(t *testing.T) {
	src := "class Base:\n  def f():\n    return 1\nclass Derived(Base):\n  def g():\n    return 2\n"
	file := parseOK(t, src)
	if len(file.Body) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(file.Body))
	}
	derived, ok := file.Body[1].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected ClassDecl, got %T", file.Body[1])
	}
	if derived.Parent != "Base" {
		t.Errorf("expected parent Base, got %q", derived.Parent)
	}
}

func TestParseNewInstance(t *testing.T) {
	file := parseOK(t, "p = Point(1, 2)\n")
	a := file.Body[0].(*ast.Assignment)
	ni, ok := a.Value.(*ast.NewInstance)
	if !ok {
		t.Fatalf("expected NewInstance, got %T", a.Value)
	}
	if ni.ClassName != "Point" {
		t.Errorf("expected class Point, got %q", ni.ClassName)
	}
	if len(ni.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(ni.Args))
	}
}

func TestParseMethodCallChain(t *testing.T) {
	file := parseOK(t, "p.move(1, 2).describe()\n")
	stmt, ok := file.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", file.Body[0])
	}
	outer, ok := stmt.X.(*ast.MethodCall)
	if !ok || outer.Method != "describe" {
		t.Fatalf("expected outer MethodCall{describe}, got %#v", stmt.X)
	}
	inner, ok := outer.Object.(*ast.MethodCall)
	if !ok || inner.Method != "move" {
		t.Fatalf("expected inner MethodCall{move}, got %#v", outer.Object)
	}
}

func TestParseStringify(t *testing.T) {
	file := parseOK(t, "s = str(42)\n")
	a := file.Body[0].(*ast.Assignment)
	sf, ok := a.Value.(*ast.Stringify)
	if !ok {
		t.Fatalf("expected Stringify, got %T", a.Value)
	}
	if _, ok := sf.Arg.(*ast.NumericConst); !ok {
		t.Errorf("expected NumericConst arg, got %#v", sf.Arg)
	}
}

func TestParseIfElse(t *testing.T) {
	src := "if x < 1:\n  print 1\nelse:\n  print 2\n"
	file := parseOK(t, src)
	ie, ok := file.Body[0].(*ast.IfElse)
	if !ok {
		t.Fatalf("expected IfElse, got %T", file.Body[0])
	}
	cmp, ok := ie.Condition.(*ast.Comparison)
	if !ok || cmp.Op != ast.CmpLess {
		t.Fatalf("expected Comparison{<}, got %#v", ie.Condition)
	}
	if ie.ElseBranch == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	file := parseOK(t, "if x:\n  print 1\n")
	ie := file.Body[0].(*ast.IfElse)
	if ie.ElseBranch != nil {
		t.Errorf("expected no else branch, got %#v", ie.ElseBranch)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	file := parseOK(t, "x = 1 + 2 * 3\n")
	a := file.Body[0].(*ast.Assignment)
	add, ok := a.Value.(*ast.BinaryArith)
	if !ok || add.Op != ast.ArithAdd {
		t.Fatalf("expected outer Add, got %#v", a.Value)
	}
	if _, ok := add.Lhs.(*ast.NumericConst); !ok {
		t.Errorf("expected Lhs NumericConst, got %#v", add.Lhs)
	}
	mult, ok := add.Rhs.(*ast.BinaryArith)
	if !ok || mult.Op != ast.ArithMult {
		t.Fatalf("expected Rhs Mult, got %#v", add.Rhs)
	}
}

func TestParseLogicalPrecedence(t *testing.T) {
	file := parseOK(t, "x = a and b or c\n")
	a := file.Body[0].(*ast.Assignment)
	or, ok := a.Value.(*ast.Or)
	if !ok {
		t.Fatalf("expected outer Or, got %#v", a.Value)
	}
	if _, ok := or.Lhs.(*ast.And); !ok {
		t.Errorf("expected Lhs And, got %#v", or.Lhs)
	}
}

func TestParseNot(t *testing.T) {
	file := parseOK(t, "x = not a\n")
	a := file.Body[0].(*ast.Assignment)
	if _, ok := a.Value.(*ast.Not); !ok {
		t.Fatalf("expected Not, got %#v", a.Value)
	}
}

func TestParseReturn(t *testing.T) {
	src := "class C:\n  def f():\n    return 1 + 2\n"
	file := parseOK(t, src)
	decl := file.Body[0].(*ast.ClassDecl)
	body := decl.Methods[0].Body.Body.(*ast.Compound)
	ret, ok := body.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected Return, got %T", body.Statements[0])
	}
	if _, ok := ret.Value.(*ast.BinaryArith); !ok {
		t.Errorf("expected BinaryArith value, got %#v", ret.Value)
	}
}

func TestParseNestedIndentation(t *testing.T) {
	src := "class A:\n  def m():\n    if x:\n      print 1\n    print 2\n"
	file := parseOK(t, src)
	decl := file.Body[0].(*ast.ClassDecl)
	body := decl.Methods[0].Body.Body.(*ast.Compound)
	if len(body.Statements) != 2 {
		t.Fatalf("expected 2 statements in method body, got %d", len(body.Statements))
	}
	if _, ok := body.Statements[0].(*ast.IfElse); !ok {
		t.Errorf("expected first statement IfElse, got %T", body.Statements[0])
	}
	if _, ok := body.Statements[1].(*ast.Print); !ok {
		t.Errorf("expected second statement Print, got %T", body.Statements[1])
	}
}

func TestParseToJSONProducesClassDecl(t *testing.T) {
	out := parseToJSON(t, "class A:\n  def f():\n    return 1\n")
	if out == "" {
		t.Fatal("expected non-empty JSON")
	}
	if !strings.Contains(out, `"kind": "ClassDecl"`) {
		t.Errorf("expected a ClassDecl node in JSON, got %s", out)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	// A malformed class body (a bare expression where a method
	// definition is required) should not prevent later top-level
	// statements from parsing.
	src := "class A:\n  1\n  def f():\n    return 1\nprint 2\n"
	file, diags := ParseFile(src, "test.myt")
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	last := file.Body[len(file.Body)-1]
	if _, ok := last.(*ast.Print); !ok {
		t.Errorf("expected the trailing print to parse as Print, got %T", last)
	}
}
