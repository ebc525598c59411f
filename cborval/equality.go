package cborval

import "bytes"

// Equal reports whether v and other compare equal under CBORPath's
// comparison semantics. It gives Value a method of the shape
// go-cmp looks for, so tests can compare values with cmp.Diff without
// reflecting into this type's unexported fields.
func (v Value) Equal(other Value) bool { return Equal(v, other) }

// Equal reports whether a and b compare equal under CBORPath's
// comparison semantics: same variant required, except Integer and
// Float compare by numeric value when both are finite (so Integer 8
// equals Float 8.0), NaN never equals anything, Arrays compare
// element-wise by length and order, and Maps compare by key set with
// order-independent matching values. Tags are transparent.
func Equal(a, b Value) bool {
	a, b = a.Untag(), b.Untag()

	if isNumeric(a) && isNumeric(b) {
		return numericEqual(a, b)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindText:
		return a.text == b.text
	case KindBytes:
		return bytes.Equal(a.bytes, b.bytes)
	case KindBool:
		return a.b == b.b
	case KindNull:
		return true
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return mapEqual(a.m, b.m)
	default:
		return false
	}
}

func mapEqual(a, b []MapEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for _, ea := range a {
		found := false
		for _, eb := range b {
			if Equal(ea.Key, eb.Key) {
				found = Equal(ea.Value, eb.Value)
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func isNumeric(v Value) bool { return v.kind == KindInt || v.kind == KindFloat }

// numericEqual compares two numeric values by mathematical value.
// Two integers compare exactly; any float operand is compared as
// float64, so very large integers may lose precision, matching CBOR's
// own float encoding tradeoffs.
func numericEqual(a, b Value) bool {
	if a.kind == KindInt && b.kind == KindInt {
		return a.i == b.i
	}
	af, aNaN := asFloat(a)
	bf, bNaN := asFloat(b)
	if aNaN || bNaN {
		return false
	}
	return af == bf
}

func asFloat(v Value) (float64, bool) {
	if v.kind == KindInt {
		return float64(v.i), false
	}
	return v.f, v.f != v.f
}

// Less reports whether a orders strictly before b. Ordering is only
// defined between two numeric values, two Text values (byte-wise) or
// two Bytes values (byte-wise); any other pairing, or a comparison
// involving NaN, is never less.
func Less(a, b Value) bool {
	a, b = a.Untag(), b.Untag()

	switch {
	case isNumeric(a) && isNumeric(b):
		if a.kind == KindInt && b.kind == KindInt {
			return a.i < b.i
		}
		af, aNaN := asFloat(a)
		bf, bNaN := asFloat(b)
		if aNaN || bNaN {
			return false
		}
		return af < bf
	case a.kind == KindText && b.kind == KindText:
		return a.text < b.text
	case a.kind == KindBytes && b.kind == KindBytes:
		return bytes.Compare(a.bytes, b.bytes) < 0
	default:
		return false
	}
}
