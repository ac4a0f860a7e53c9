package runtime

import (
	"fmt"
	"io"
	"strings"

	"mython/internal/ast"
)

// ============================================================
// Control flow signal
// ============================================================

// Signal is the non-local control signal a statement's execution can
// raise. Return unwinds to the nearest MethodBody, the unique catch
// point, as an explicit Go result type rather than a panic/recover
// pair; since this language has no loops there is only one signal to
// propagate.
type Signal int

const (
	SigNormal Signal = iota
	SigReturn
)

// ExecResult is what executing a statement produces: a signal plus
// whatever value is in flight (the last-evaluated value for a plain
// statement, or the returned value for a Return).
type ExecResult struct {
	Signal Signal
	Value  ObjectHolder
}

var normal = ExecResult{Signal: SigNormal}

// ============================================================
// Interpreter
// ============================================================

// Interpreter walks an *ast.File and executes it against a Context.
type Interpreter struct {
	ctx *Context
}

// NewInterpreter creates an interpreter writing Print output to w.
func NewInterpreter(w io.Writer) *Interpreter {
	ctx := NewContext(w)
	in := &Interpreter{ctx: ctx}
	ctx.interp = in
	return in
}

// Run executes every top-level class definition and statement in
// file, in order, against a single global closure.
func (in *Interpreter) Run(file *ast.File) error {
	global := NewClosure()
	for _, node := range file.Body {
		switch n := node.(type) {
		case *ast.ClassDecl:
			class, err := in.buildClass(n, global)
			if err != nil {
				return err
			}
			global.Set(n.Name, Own(class))
		case ast.Stmt:
			result, err := in.execStmt(n, global)
			if err != nil {
				return err
			}
			if result.Signal == SigReturn {
				return &RuntimeError{Code: "E3006", Message: "return statement outside of a method"}
			}
		default:
			return fmt.Errorf("unexpected top-level node %T", node)
		}
	}
	return nil
}

// buildClass resolves decl into a runtime Class, looking up its
// parent (if any) in closure — classes must already be bound by the
// time a subclass declaration runs.
func (in *Interpreter) buildClass(decl *ast.ClassDecl, closure Closure) (*Class, error) {
	class := &Class{Name: decl.Name}
	if decl.Parent != "" {
		parentHolder, ok := closure.Get(decl.Parent)
		if !ok {
			return nil, &RuntimeError{Code: "E3001", Message: "base class not found: " + decl.Parent}
		}
		parentClass, ok := parentHolder.Get().(*Class)
		if !ok {
			return nil, &RuntimeError{Code: "E3003", Message: decl.Parent + " is not a class"}
		}
		class.Parent = parentClass
	}
	for _, md := range decl.Methods {
		class.Methods = append(class.Methods, &Method{Name: md.Name, Params: md.Params, Body: md.Body})
	}
	return class, nil
}

// ============================================================
// Statements
// ============================================================

func (in *Interpreter) execStmt(s ast.Stmt, closure Closure) (ExecResult, error) {
	switch st := s.(type) {
	case *ast.Assignment:
		value, err := in.eval(st.Value, closure)
		if err != nil {
			return ExecResult{}, err
		}
		closure.Set(st.Name, value)
		return ExecResult{Value: value}, nil

	case *ast.FieldAssignment:
		objHolder, err := in.eval(st.Object, closure)
		if err != nil {
			return ExecResult{}, err
		}
		instance, ok := objHolder.Get().(*ClassInstance)
		if !ok {
			return ExecResult{}, &RuntimeError{Code: "E3003", Message: "cannot assign a field on a non-object value"}
		}
		value, err := in.eval(st.Value, closure)
		if err != nil {
			return ExecResult{}, err
		}
		instance.Fields.Set(st.Field, value)
		return ExecResult{Value: value}, nil

	case *ast.Print:
		parts := make([]string, len(st.Args))
		for i, arg := range st.Args {
			h, err := in.eval(arg, closure)
			if err != nil {
				return ExecResult{}, err
			}
			text, err := Stringify(in.ctx, h)
			if err != nil {
				return ExecResult{}, err
			}
			parts[i] = text
		}
		fmt.Fprintln(in.ctx.Output, strings.Join(parts, " "))
		return normal, nil

	case *ast.ExprStmt:
		_, err := in.eval(st.X, closure)
		return normal, err

	case *ast.IfElse:
		condHolder, err := in.eval(st.Condition, closure)
		if err != nil {
			return ExecResult{}, err
		}
		truth, err := IsTrue(in.ctx, condHolder)
		if err != nil {
			return ExecResult{}, err
		}
		if truth {
			return in.execStmt(st.IfBranch, closure)
		}
		if st.ElseBranch != nil {
			return in.execStmt(st.ElseBranch, closure)
		}
		return normal, nil

	case *ast.Return:
		value, err := in.eval(st.Value, closure)
		if err != nil {
			return ExecResult{}, err
		}
		return ExecResult{Signal: SigReturn, Value: value}, nil

	case *ast.Compound:
		for _, sub := range st.Statements {
			result, err := in.execStmt(sub, closure)
			if err != nil {
				return result, err
			}
			if result.Signal == SigReturn {
				return result, nil
			}
		}
		return normal, nil

	case *ast.MethodBody:
		result, err := in.execStmt(st.Body, closure)
		if err != nil {
			return ExecResult{}, err
		}
		return ExecResult{Signal: SigNormal, Value: result.Value}, nil

	default:
		return ExecResult{}, fmt.Errorf("unhandled statement node %T", s)
	}
}

// ============================================================
// Expressions
// ============================================================

func (in *Interpreter) eval(e ast.Expr, closure Closure) (ObjectHolder, error) {
	switch ex := e.(type) {
	case *ast.NumericConst:
		return Own(Number(ex.Value)), nil
	case *ast.StringConst:
		return Own(String(ex.Value)), nil
	case *ast.BoolConst:
		return Own(Bool(ex.Value)), nil
	case *ast.NoneConst:
		return None(), nil
	case *ast.VariableValue:
		return in.evalVariableValue(ex, closure)
	case *ast.NewInstance:
		return in.evalNewInstance(ex, closure)
	case *ast.MethodCall:
		return in.evalMethodCall(ex, closure)
	case *ast.Stringify:
		h, err := in.eval(ex.Arg, closure)
		if err != nil {
			return None(), err
		}
		text, err := Stringify(in.ctx, h)
		if err != nil {
			return None(), err
		}
		return Own(String(text)), nil
	case *ast.Not:
		h, err := in.eval(ex.Arg, closure)
		if err != nil {
			return None(), err
		}
		truth, err := IsTrue(in.ctx, h)
		if err != nil {
			return None(), err
		}
		return Own(Bool(!truth)), nil
	case *ast.BinaryArith:
		return in.evalArith(ex, closure)
	case *ast.Comparison:
		return in.evalComparison(ex, closure)
	case *ast.Or:
		lhs, err := in.eval(ex.Lhs, closure)
		if err != nil {
			return None(), err
		}
		truth, err := IsTrue(in.ctx, lhs)
		if err != nil {
			return None(), err
		}
		if truth {
			return Own(Bool(true)), nil
		}
		rhs, err := in.eval(ex.Rhs, closure)
		if err != nil {
			return None(), err
		}
		truth, err = IsTrue(in.ctx, rhs)
		if err != nil {
			return None(), err
		}
		return Own(Bool(truth)), nil
	case *ast.And:
		lhs, err := in.eval(ex.Lhs, closure)
		if err != nil {
			return None(), err
		}
		truth, err := IsTrue(in.ctx, lhs)
		if err != nil {
			return None(), err
		}
		if !truth {
			return Own(Bool(false)), nil
		}
		rhs, err := in.eval(ex.Rhs, closure)
		if err != nil {
			return None(), err
		}
		truth, err = IsTrue(in.ctx, rhs)
		if err != nil {
			return None(), err
		}
		return Own(Bool(truth)), nil
	default:
		return None(), fmt.Errorf("unhandled expression node %T", e)
	}
}

// evalVariableValue resolves a (possibly dotted) name: the first
// segment in the closure, then each following segment as a field
// lookup on a class instance.
func (in *Interpreter) evalVariableValue(ex *ast.VariableValue, closure Closure) (ObjectHolder, error) {
	holder, ok := closure.Get(ex.Path[0])
	if !ok {
		return None(), &RuntimeError{Code: "E3001", Message: "variable not found: " + ex.Path[0]}
	}
	for _, field := range ex.Path[1:] {
		instance, ok := holder.Get().(*ClassInstance)
		if !ok {
			return None(), &RuntimeError{Code: "E3003", Message: "cannot access a field on a non-object value"}
		}
		holder, ok = instance.Fields.Get(field)
		if !ok {
			return None(), &RuntimeError{Code: "E3001", Message: "variable not found: " + field}
		}
	}
	return holder, nil
}

func (in *Interpreter) evalNewInstance(ex *ast.NewInstance, closure Closure) (ObjectHolder, error) {
	classHolder, ok := closure.Get(ex.ClassName)
	if !ok {
		return None(), &RuntimeError{Code: "E3001", Message: "class not found: " + ex.ClassName}
	}
	class, ok := classHolder.Get().(*Class)
	if !ok {
		return None(), &RuntimeError{Code: "E3003", Message: ex.ClassName + " is not a class"}
	}

	args := make([]ObjectHolder, len(ex.Args))
	for i, a := range ex.Args {
		h, err := in.eval(a, closure)
		if err != nil {
			return None(), err
		}
		args[i] = h
	}

	instance := NewClassInstance(class)
	if m, ok := class.GetMethod("__init__"); ok && len(m.Params) == len(args) {
		if _, err := instance.Call(in.ctx, "__init__", args); err != nil {
			return None(), err
		}
	}
	return Own(instance), nil
}

func (in *Interpreter) evalMethodCall(ex *ast.MethodCall, closure Closure) (ObjectHolder, error) {
	objHolder, err := in.eval(ex.Object, closure)
	if err != nil {
		return None(), err
	}
	instance, ok := objHolder.Get().(*ClassInstance)
	if !ok {
		return None(), &RuntimeError{Code: "E3003", Message: "cannot call a method on a non-object value"}
	}
	args := make([]ObjectHolder, len(ex.Args))
	for i, a := range ex.Args {
		h, err := in.eval(a, closure)
		if err != nil {
			return None(), err
		}
		args[i] = h
	}
	return instance.Call(in.ctx, ex.Method, args)
}

func (in *Interpreter) evalArith(ex *ast.BinaryArith, closure Closure) (ObjectHolder, error) {
	lhs, err := in.eval(ex.Lhs, closure)
	if err != nil {
		return None(), err
	}
	rhs, err := in.eval(ex.Rhs, closure)
	if err != nil {
		return None(), err
	}

	switch ex.Op {
	case ast.ArithAdd:
		if l, ok := lhs.Get().(Number); ok {
			if r, ok := rhs.Get().(Number); ok {
				return Own(l + r), nil
			}
		}
		if l, ok := lhs.Get().(String); ok {
			if r, ok := rhs.Get().(String); ok {
				return Own(l + r), nil
			}
		}
		if instance, ok := lhs.Get().(*ClassInstance); ok {
			if _, ok := instance.Class.GetMethod("__add__"); ok {
				return instance.Call(in.ctx, "__add__", []ObjectHolder{rhs})
			}
		}
		return None(), &RuntimeError{Code: "E3004", Message: "cannot add these objects"}

	case ast.ArithSub, ast.ArithMult, ast.ArithDiv:
		l, lok := lhs.Get().(Number)
		r, rok := rhs.Get().(Number)
		if !lok || !rok {
			return None(), &RuntimeError{Code: "E3004", Message: fmt.Sprintf("operator %s requires two numbers", ex.Op)}
		}
		switch ex.Op {
		case ast.ArithSub:
			return Own(l - r), nil
		case ast.ArithMult:
			return Own(l * r), nil
		default: // ArithDiv
			if r == 0 {
				return None(), &RuntimeError{Code: "E3004", Message: "division by zero"}
			}
			return Own(l / r), nil
		}

	default:
		return None(), fmt.Errorf("unhandled arithmetic operator %v", ex.Op)
	}
}

func (in *Interpreter) evalComparison(ex *ast.Comparison, closure Closure) (ObjectHolder, error) {
	lhs, err := in.eval(ex.Lhs, closure)
	if err != nil {
		return None(), err
	}
	rhs, err := in.eval(ex.Rhs, closure)
	if err != nil {
		return None(), err
	}

	switch ex.Op {
	case ast.CmpEqual:
		b, err := in.equal(lhs, rhs)
		return Own(Bool(b)), err
	case ast.CmpNotEqual:
		b, err := in.equal(lhs, rhs)
		return Own(Bool(!b)), err
	case ast.CmpLess:
		b, err := in.less(lhs, rhs)
		return Own(Bool(b)), err
	case ast.CmpGreater:
		// Greater(a, b) == !(Less(a, b) || Equal(a, b))
		lt, err := in.less(lhs, rhs)
		if err != nil {
			return None(), err
		}
		if lt {
			return Own(Bool(false)), nil
		}
		eq, err := in.equal(lhs, rhs)
		if err != nil {
			return None(), err
		}
		return Own(Bool(!eq)), nil
	case ast.CmpLessOrEqual:
		// LessOrEqual(a, b) == Less(a, b) || Equal(a, b)
		lt, err := in.less(lhs, rhs)
		if err != nil {
			return None(), err
		}
		if lt {
			return Own(Bool(true)), nil
		}
		eq, err := in.equal(lhs, rhs)
		if err != nil {
			return None(), err
		}
		return Own(Bool(eq)), nil
	case ast.CmpGreaterOrEqual:
		// GreaterOrEqual(a, b) == !Less(a, b)
		b, err := in.less(lhs, rhs)
		return Own(Bool(!b)), err
	default:
		return None(), fmt.Errorf("unhandled comparator %v", ex.Op)
	}
}

// equal is the Equal primitive: same-typed Number/String/Bool compare
// by value, two empty holders are equal, a ClassInstance delegates to
// __eq__; any other pairing is a comparison error.
func (in *Interpreter) equal(l, r ObjectHolder) (bool, error) {
	if !l.HasValue() && !r.HasValue() {
		return true, nil
	}
	switch lv := l.Get().(type) {
	case Number:
		if rv, ok := r.Get().(Number); ok {
			return lv == rv, nil
		}
	case String:
		if rv, ok := r.Get().(String); ok {
			return lv == rv, nil
		}
	case Bool:
		if rv, ok := r.Get().(Bool); ok {
			return lv == rv, nil
		}
	case *ClassInstance:
		if _, ok := lv.Class.GetMethod("__eq__"); ok {
			result, err := lv.Call(in.ctx, "__eq__", []ObjectHolder{r})
			if err != nil {
				return false, err
			}
			return IsTrue(in.ctx, result)
		}
	}
	return false, &RuntimeError{Code: "E3005", Message: "cannot compare objects for equality"}
}

// less is the Less primitive: same-typed Number/String/Bool compare by
// value, a ClassInstance delegates to __lt__; any other pairing is a
// comparison error.
func (in *Interpreter) less(l, r ObjectHolder) (bool, error) {
	switch lv := l.Get().(type) {
	case Number:
		if rv, ok := r.Get().(Number); ok {
			return lv < rv, nil
		}
	case String:
		if rv, ok := r.Get().(String); ok {
			return lv < rv, nil
		}
	case Bool:
		if rv, ok := r.Get().(Bool); ok {
			return !bool(lv) && bool(rv), nil
		}
	case *ClassInstance:
		if _, ok := lv.Class.GetMethod("__lt__"); ok {
			result, err := lv.Call(in.ctx, "__lt__", []ObjectHolder{r})
			if err != nil {
				return false, err
			}
			return IsTrue(in.ctx, result)
		}
	}
	return false, &RuntimeError{Code: "E3005", Message: "cannot compare objects for order"}
}
