// Package cborval implements an order-preserving CBOR value tree.
//
// The standard decoding path for CBOR into Go's interface{} loses map
// insertion order, which CBORPath selectors must observe. Value keeps
// map entries in wire order and exposes a small tagged-union API instead
// of leaning on interface{} and type switches at every call site.
package cborval

import "fmt"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindText
	KindBytes
	KindBool
	KindNull
	KindArray
	KindMap
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindTag:
		return "tag"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MapEntry is a single key/value pair of a Map, in wire order.
type MapEntry struct {
	Key   Value
	Value Value
}

// Value is a tagged union over the CBOR data model used by CBORPath:
// Integer, Float, Text, Bytes, Bool, Null, Array, Map and Tag.
type Value struct {
	kind Kind

	i     int64
	f     float64
	text  string
	bytes []byte
	b     bool
	arr   []Value
	m     []MapEntry

	tagNum uint64
	tagVal *Value
}

// Int returns an Integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a Float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a Text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bytes returns a Bytes value. The slice is retained, not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Array returns an Array value holding items in order.
func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

// Map returns a Map value holding entries in insertion order.
func Map(entries ...MapEntry) Value { return Value{kind: KindMap, m: entries} }

// Tagged returns a Tag value wrapping inner under tag number num.
func Tagged(num uint64, inner Value) Value {
	v := inner
	return Value{kind: KindTag, tagNum: num, tagVal: &v}
}

// Kind reports the literal variant, including Tag.
func (v Value) Kind() Kind { return v.kind }

// Untag strips any number of nested Tag wrappers, returning the
// innermost non-Tag value. Selectors treat a Tag transparently as its
// inner value, per the CBOR data model's tagged-item semantics.
func (v Value) Untag() Value {
	for v.kind == KindTag {
		v = *v.tagVal
	}
	return v
}

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns v's integer payload.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns v's float payload.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// Text returns v's text payload.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Bytes returns v's byte-string payload.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.bytes, true
}

// Bool returns v's boolean payload.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Array returns v's element slice. Mutating the returned slice's
// elements mutates v.
func (v Value) Array() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Map returns v's entry slice in insertion order.
func (v Value) Map() ([]MapEntry, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// Tag returns v's tag number and inner value.
func (v Value) Tag() (uint64, Value, bool) {
	if v.kind != KindTag {
		return 0, Value{}, false
	}
	return v.tagNum, *v.tagVal, true
}

// ArrayRef returns a mutable view of v's elements, unwrapping any Tag
// wrapper first. It is used by the evaluator to take stable pointers
// into the argument tree for child/descendant traversal.
func (v *Value) ArrayRef() ([]Value, bool) {
	u := v.Untag()
	if u.kind != KindArray {
		return nil, false
	}
	if v.kind == KindTag {
		return v.tagVal.ArrayRef()
	}
	return v.arr, true
}

// MapRef returns a mutable view of v's entries, unwrapping any Tag
// wrapper first.
func (v *Value) MapRef() ([]MapEntry, bool) {
	u := v.Untag()
	if u.kind != KindMap {
		return nil, false
	}
	if v.kind == KindTag {
		return v.tagVal.MapRef()
	}
	return v.m, true
}

// Len reports the element/entry/text-rune/byte count used by the
// length function, and whether v is a kind length applies to.
func (v Value) Len() (int, bool) {
	switch v.kind {
	case KindArray:
		return len(v.arr), true
	case KindMap:
		return len(v.m), true
	case KindText:
		return len([]rune(v.text)), true
	case KindBytes:
		return len(v.bytes), true
	default:
		return 0, false
	}
}

// IsScalar reports whether v is a CBOR scalar: one of
// Integer/Float/Text/Bytes/Bool/Null. Maps, arrays and tags are not
// scalars.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindInt, KindFloat, KindText, KindBytes, KindBool, KindNull:
		return true
	default:
		return false
	}
}
