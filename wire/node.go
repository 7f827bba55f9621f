package wire

import (
	"fmt"
	"math"
	"slices"
)

// Kind is the type tag of a [Node].
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindNames = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// NumberForm is the Go representation carried by a number node.
//
// Integer and float forms are kept apart: an int64 node never encodes
// as a float, and a float32 node encodes with 32-bit precision.
type NumberForm uint8

const (
	NotNumber NumberForm = iota
	IntForm
	UintForm
	Float64Form
	Float32Form
)

// IsInteger reports whether f is one of the integer forms.
func (f NumberForm) IsInteger() bool {
	return f == IntForm || f == UintForm
}

// Node is a wire document node: null, bool, number, string, array or
// object.
//
// The zero Node is null. Nodes are values, and are never modified
// after construction.
type Node struct {
	kind   Kind
	form   NumberForm
	b      bool
	i      int64
	u      uint64
	f      float64
	s      string
	elems  []Node
	fields []Field
}

// Field is a key/value pair of an object node.
type Field struct {
	Key   string
	Value Node
}

// Null returns a null node.
func Null() Node { return Node{} }

// Bool returns a boolean node.
func Bool(b bool) Node { return Node{kind: BoolKind, b: b} }

// Int returns a signed integer node.
func Int(i int64) Node { return Node{kind: NumberKind, form: IntForm, i: i} }

// Uint returns an unsigned integer node.
func Uint(u uint64) Node { return Node{kind: NumberKind, form: UintForm, u: u} }

// Float returns a 64-bit floating point node.
func Float(f float64) Node { return Node{kind: NumberKind, form: Float64Form, f: f} }

// Float32 returns a 32-bit floating point node. The value is widened
// for storage, but encodes with 32-bit precision.
func Float32(f float32) Node { return Node{kind: NumberKind, form: Float32Form, f: float64(f)} }

// String returns a string node.
func String(s string) Node { return Node{kind: StringKind, s: s} }

// OptString returns a string node, or null if s is empty.
func OptString(s string) Node {
	if s == "" {
		return Null()
	}
	return String(s)
}

// Array returns an array node containing elems, in order.
func Array(elems ...Node) Node {
	if elems == nil {
		elems = []Node{}
	}
	return Node{kind: ArrayKind, elems: elems}
}

// Object returns an object node containing fields, in order.
//
// If several fields share a key, the last value wins and is kept at
// the position of the first.
func Object(fields ...Field) Node {
	ret := make([]Field, 0, len(fields))
	idx := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := idx[f.Key]; ok {
			ret[i].Value = f.Value
			continue
		}
		idx[f.Key] = len(ret)
		ret = append(ret, f)
	}
	return Node{kind: ObjectKind, fields: ret}
}

// Kind returns the type tag of n.
func (n Node) Kind() Kind { return n.kind }

// IsNull reports whether n is null.
func (n Node) IsNull() bool { return n.kind == NullKind }

// NumberForm returns the numeric representation of n, or NotNumber
// if n is not a number.
func (n Node) NumberForm() NumberForm { return n.form }

// AsBool returns the value of a boolean node, or false.
func (n Node) AsBool() bool { return n.kind == BoolKind && n.b }

// AsString returns the value of a string node, or "".
func (n Node) AsString() string {
	if n.kind != StringKind {
		return ""
	}
	return n.s
}

// Int returns the value of an integer node, and whether the value is
// an integer representable as an int64.
func (n Node) Int() (int64, bool) {
	switch n.form {
	case IntForm:
		return n.i, true
	case UintForm:
		if n.u > math.MaxInt64 {
			return 0, false
		}
		return int64(n.u), true
	}
	return 0, false
}

// Uint returns the value of an integer node, and whether the value
// is an integer representable as a uint64.
func (n Node) Uint() (uint64, bool) {
	switch n.form {
	case UintForm:
		return n.u, true
	case IntForm:
		if n.i < 0 {
			return 0, false
		}
		return uint64(n.i), true
	}
	return 0, false
}

// Float returns the value of a number node as a float64, and whether
// n is a number.
func (n Node) Float() (float64, bool) {
	switch n.form {
	case IntForm:
		return float64(n.i), true
	case UintForm:
		return float64(n.u), true
	case Float64Form, Float32Form:
		return n.f, true
	}
	return 0, false
}

// Len returns the number of elements of an array node or fields of
// an object node, and 0 for all other kinds.
func (n Node) Len() int {
	switch n.kind {
	case ArrayKind:
		return len(n.elems)
	case ObjectKind:
		return len(n.fields)
	}
	return 0
}

// Index returns the i-th element of an array node. It panics if n is
// not an array or i is out of range.
func (n Node) Index(i int) Node {
	if n.kind != ArrayKind {
		panic(fmt.Sprintf("Index called on %s node", n.kind))
	}
	return n.elems[i]
}

// Elems returns a copy of the elements of an array node.
func (n Node) Elems() []Node {
	return slices.Clone(n.elems)
}

// Fields returns a copy of the fields of an object node, in order.
func (n Node) Fields() []Field {
	return slices.Clone(n.fields)
}

// Keys returns the keys of an object node, in order.
func (n Node) Keys() []string {
	ret := make([]string, 0, len(n.fields))
	for _, f := range n.fields {
		ret = append(ret, f.Key)
	}
	return ret
}

// Get returns the value of the given key in an object node.
func (n Node) Get(key string) (Node, bool) {
	for _, f := range n.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Node{}, false
}

// Equal reports whether n and o are structurally equal.
//
// Object field order is ignored. Numbers compare by value within
// their family: an integer node never equals a float node.
func (n Node) Equal(o Node) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case NullKind:
		return true
	case BoolKind:
		return n.b == o.b
	case StringKind:
		return n.s == o.s
	case NumberKind:
		return numberEqual(n, o)
	case ArrayKind:
		return slices.EqualFunc(n.elems, o.elems, Node.Equal)
	case ObjectKind:
		if len(n.fields) != len(o.fields) {
			return false
		}
		for _, f := range n.fields {
			ov, ok := o.Get(f.Key)
			if !ok || !f.Value.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

func numberEqual(a, b Node) bool {
	if a.form.IsInteger() != b.form.IsInteger() {
		return false
	}
	if !a.form.IsInteger() {
		return a.f == b.f
	}
	if a.form == b.form {
		return a.i == b.i && a.u == b.u
	}
	if ai, ok := a.Int(); ok {
		bi, ok := b.Int()
		return ok && ai == bi
	}
	// a is a uint too large for int64, b can only match as a uint.
	bu, ok := b.Uint()
	au, _ := a.Uint()
	return ok && au == bu
}

// Interface returns n lowered to plain Go values: nil, bool, int64,
// uint64, float64, string, []any and map[string]any.
func (n Node) Interface() any {
	switch n.kind {
	case BoolKind:
		return n.b
	case NumberKind:
		switch n.form {
		case IntForm:
			return n.i
		case UintForm:
			return n.u
		default:
			return n.f
		}
	case StringKind:
		return n.s
	case ArrayKind:
		ret := make([]any, 0, len(n.elems))
		for _, e := range n.elems {
			ret = append(ret, e.Interface())
		}
		return ret
	case ObjectKind:
		ret := make(map[string]any, len(n.fields))
		for _, f := range n.fields {
			ret[f.Key] = f.Value.Interface()
		}
		return ret
	}
	return nil
}

// String returns the JSON text of n, for diagnostics.
func (n Node) String() string {
	bs, err := n.AppendJSON(nil)
	if err != nil {
		return fmt.Sprintf("<invalid %s node: %v>", n.kind, err)
	}
	return string(bs)
}
