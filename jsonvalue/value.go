package jsonvalue

import (
	"math"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the JSON null literal
	KindNull Kind = iota
	// KindBool is true or false
	KindBool
	// KindNumber is a JSON number
	KindNumber
	// KindString is a JSON string
	KindString
	// KindArray is an ordered sequence of values
	KindArray
	// KindObject is a mapping from names to values
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	lit  string // number literal as written, "" when built in code
	s    string
	arr  []Value
	obj  *object
}

type object struct {
	keys  []string
	vals  []Value
	index map[string]int
}

// Member is a key/value pair used to build objects.
type Member struct {
	Key   string
	Value Value
}

// NullValue returns null.
func NullValue() Value { return Value{} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue returns a number. NaN and infinities are accepted.
func NumberValue(f float64) Value { return Value{kind: KindNumber, n: f} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ArrayValue returns an array holding elems in order.
func ArrayValue(elems ...Value) Value {
	arr := make([]Value, len(elems))
	copy(arr, elems)
	return Value{kind: KindArray, arr: arr}
}

// ObjectValue returns an object holding members in order. When a key
// repeats, the last value wins and keeps the position of the first.
func ObjectValue(members ...Member) Value {
	o := newObject(len(members))
	for _, m := range members {
		o.set(m.Key, m.Value)
	}
	return Value{kind: KindObject, obj: o}
}

func newObject(capacity int) *object {
	return &object{
		keys:  make([]string, 0, capacity),
		vals:  make([]Value, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

func (o *object) set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.vals[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean held by v, false for other kinds.
func (v Value) Bool() bool { return v.b }

// Float returns the number held by v, 0 for other kinds.
func (v Value) Float() float64 { return v.n }

// Literal returns the number as written in the source, or "" if v was not
// parsed from text.
func (v Value) Literal() string { return v.lit }

// IsInteger reports whether v is a finite number without fractional part.
func (v Value) IsInteger() bool {
	return v.kind == KindNumber && !math.IsInf(v.n, 0) && !math.IsNaN(v.n) && math.Trunc(v.n) == v.n
}

// Int returns v as an int64 when it is an integer that fits.
func (v Value) Int() (int64, bool) {
	if !v.IsInteger() || v.n < math.MinInt64 || v.n >= math.MaxInt64 {
		return 0, false
	}
	return int64(v.n), true
}

// Str returns the string held by v, "" for other kinds.
func (v Value) Str() string { return v.s }

// Len returns the number of elements or members, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj.keys)
	default:
		return 0
	}
}

// Index returns the i-th array element. It panics if v is not an array or
// i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray {
		panic("jsonvalue: Index on " + v.kind.String())
	}
	return v.arr[i]
}

// Elements returns the array elements. The slice must not be modified.
func (v Value) Elements() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Keys returns the object keys in insertion order. The slice must not be
// modified.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	return v.obj.keys
}

// Get returns the member named key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	i, ok := v.obj.index[key]
	if !ok {
		return Value{}, false
	}
	return v.obj.vals[i], true
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Members returns the object members in insertion order.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	out := make([]Member, len(v.obj.keys))
	for i, k := range v.obj.keys {
		out[i] = Member{Key: k, Value: v.obj.vals[i]}
	}
	return out
}
