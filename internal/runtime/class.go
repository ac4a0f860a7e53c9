package runtime

import (
	"fmt"
	"io"

	"mython/internal/ast"
)

// Method is one method of a Class: its formal parameter names and the
// body that runs in a fresh closure binding self and those parameters.
type Method struct {
	Name   string
	Params []string
	Body   *ast.MethodBody
}

// Class is a borrowed-parent-pointer class table: an ordered method
// list plus an optional parent to fall back to. GetMethod matches by
// name only — arity is checked at call sites, not here, so a class
// cannot have two methods of the same name at different arities.
type Class struct {
	Name    string
	Methods []*Method
	Parent  *Class
}

// GetMethod performs a linear scan of this class's own methods, then
// recurses into Parent if no match is found.
func (c *Class) GetMethod(name string) (*Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	if c.Parent != nil {
		return c.Parent.GetMethod(name)
	}
	return nil, false
}

func (c *Class) Print(w io.Writer, ctx *Context) error {
	_, err := fmt.Fprintf(w, "Class %s", c.Name)
	return err
}

// ClassInstance is a live object: a class pointer plus its own field
// closure.
type ClassInstance struct {
	Class  *Class
	Fields Closure
}

// NewClassInstance allocates a fresh, fieldless instance of class.
func NewClassInstance(class *Class) *ClassInstance {
	return &ClassInstance{Class: class, Fields: NewClosure()}
}

// Print calls __str__ on the instance if it defines one (directly or
// via inheritance); otherwise it prints the instance's identity the
// way the original runtime prints an object's address.
func (ci *ClassInstance) Print(w io.Writer, ctx *Context) error {
	if _, ok := ci.Class.GetMethod("__str__"); ok {
		result, err := ci.Call(ctx, "__str__", nil)
		if err != nil {
			return err
		}
		if !result.HasValue() {
			_, err := io.WriteString(w, "None")
			return err
		}
		return result.Get().Print(w, ctx)
	}
	_, err := fmt.Fprintf(w, "<%s instance at %p>", ci.Class.Name, ci)
	return err
}

// HasMethod reports whether the instance's class provides method at
// exactly argCount arity.
func (ci *ClassInstance) HasMethod(method string, argCount int) bool {
	m, ok := ci.Class.GetMethod(method)
	return ok && len(m.Params) == argCount
}

// Call dispatches method on the instance: a brand new closure is
// built (no chaining to any caller's closure), self is bound as a
// shared (non-owning) reference, and args are bound positionally.
// Arity must match exactly.
func (ci *ClassInstance) Call(ctx *Context, method string, args []ObjectHolder) (ObjectHolder, error) {
	m, ok := ci.Class.GetMethod(method)
	if !ok {
		return None(), &RuntimeError{Code: "E3002", Message: fmt.Sprintf("%s has no method %s", ci.Class.Name, method)}
	}
	if len(m.Params) != len(args) {
		return None(), &RuntimeError{Code: "E3002", Message: fmt.Sprintf("%s.%s expects %d argument(s), got %d", ci.Class.Name, method, len(m.Params), len(args))}
	}

	closure := NewClosure()
	closure.Set("self", Share(ci))
	for i, param := range m.Params {
		closure.Set(param, args[i])
	}

	result, err := ctx.interp.execStmt(m.Body, closure)
	if err != nil {
		return None(), err
	}
	return result.Value, nil
}
