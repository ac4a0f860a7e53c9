package runtime

import (
	"fmt"
	"io"
	"strings"
)

// Object is the dynamic value type every mython object implements:
// the single operation every kind of value must support is printing
// itself to a stream.
type Object interface {
	Print(w io.Writer, ctx *Context) error
}

// Number is an integer value.
type Number int

func (n Number) Print(w io.Writer, ctx *Context) error {
	_, err := fmt.Fprintf(w, "%d", int(n))
	return err
}

// String is a string value.
type String string

func (s String) Print(w io.Writer, ctx *Context) error {
	_, err := io.WriteString(w, string(s))
	return err
}

// Bool is a boolean value, printed the way mython source spells its
// literals: True / False.
type Bool bool

func (b Bool) Print(w io.Writer, ctx *Context) error {
	text := "False"
	if b {
		text = "True"
	}
	_, err := io.WriteString(w, text)
	return err
}

// ObjectHolder is a possibly-absent reference to an Object. Own and
// Share both produce an identical representation in Go — there is no
// manual deallocation to distinguish them the way the C++ original's
// ObjectHolder::Own/::Share do (a real vs. a no-op deleter) — but the
// two constructors are kept distinct so call sites still read as
// "this is a freshly created value" vs. "this is an alias onto
// something someone else owns", which matters for reasoning about the
// code even though Go's collector makes it operationally moot.
type ObjectHolder struct {
	object Object
}

// Own wraps a newly created Object in an owning holder.
func Own(obj Object) ObjectHolder {
	return ObjectHolder{object: obj}
}

// Share wraps an existing Object in a non-owning, aliasing holder.
func Share(obj Object) ObjectHolder {
	return ObjectHolder{object: obj}
}

// None is the empty holder: absence of a value, mython's implicit
// None.
func None() ObjectHolder {
	return ObjectHolder{}
}

// Get returns the held Object, or nil if the holder is empty.
func (h ObjectHolder) Get() Object {
	return h.object
}

// HasValue reports whether the holder carries an Object.
func (h ObjectHolder) HasValue() bool {
	return h.object != nil
}

// IsTrue reports the truthiness of a holder: Number != 0, the raw Bool
// value, a non-empty String, and false for everything else — a
// ClassInstance, the none-value, and an empty holder are all false.
func IsTrue(ctx *Context, h ObjectHolder) (bool, error) {
	switch v := h.Get().(type) {
	case Number:
		return v != 0, nil
	case Bool:
		return bool(v), nil
	case String:
		return v != "", nil
	default:
		return false, nil
	}
}

// Stringify renders h the way Print would, as a string — used by the
// Stringify AST node and by Print's own argument formatting.
func Stringify(ctx *Context, h ObjectHolder) (string, error) {
	if !h.HasValue() {
		return "None", nil
	}
	var buf strings.Builder
	if err := h.Get().Print(&buf, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}
