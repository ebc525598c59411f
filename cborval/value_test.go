package cborval

import "testing"

func TestEqualIntegerFloat(t *testing.T) {
	if !Equal(Int(8), Float(8.0)) {
		t.Error("Integer 8 should equal Float 8.0")
	}
	if Equal(Int(8), Float(8.5)) {
		t.Error("Integer 8 should not equal Float 8.5")
	}
}

func TestEqualNaN(t *testing.T) {
	nan := Float(nan())
	if Equal(nan, nan) {
		t.Error("NaN should never equal itself")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestEqualMapOrderIndependent(t *testing.T) {
	a := Map(MapEntry{Key: Text("a"), Value: Int(1)}, MapEntry{Key: Text("b"), Value: Int(2)})
	b := Map(MapEntry{Key: Text("b"), Value: Int(2)}, MapEntry{Key: Text("a"), Value: Int(1)})
	if !Equal(a, b) {
		t.Error("maps with the same entries in different order should be equal")
	}
}

func TestEqualArrayOrderMatters(t *testing.T) {
	a := Array(Int(1), Int(2))
	b := Array(Int(2), Int(1))
	if Equal(a, b) {
		t.Error("arrays with the same elements in different order should not be equal")
	}
}

func TestLessText(t *testing.T) {
	if !Less(Text(""), Text("a")) {
		t.Error("empty string should sort before any non-empty string")
	}
	if Less(Text("a"), Text("")) {
		t.Error("non-empty string should not sort before empty string")
	}
}

func TestLessIncomparable(t *testing.T) {
	if Less(Bool(true), Bool(false)) {
		t.Error("booleans have no defined ordering")
	}
	if Less(Text("a"), Int(1)) {
		t.Error("mismatched kinds have no defined ordering")
	}
}

func TestUntag(t *testing.T) {
	inner := Array(Int(1), Int(2))
	tagged := Tagged(100, inner)
	if tagged.Kind() != KindTag {
		t.Fatalf("Kind() = %v, want KindTag", tagged.Kind())
	}
	untagged := tagged.Untag()
	if untagged.Kind() != KindArray {
		t.Fatalf("Untag().Kind() = %v, want KindArray", untagged.Kind())
	}
	if !Equal(untagged, inner) {
		t.Error("Untag() should return the wrapped value")
	}
}

func TestLen(t *testing.T) {
	cases := []struct {
		v       Value
		want    int
		wantOK  bool
	}{
		{Array(Int(1), Int(2), Int(3)), 3, true},
		{Map(MapEntry{Key: Text("a"), Value: Int(1)}), 1, true},
		{Text("héllo"), 5, true},
		{Bytes([]byte{1, 2}), 2, true},
		{Int(5), 0, false},
		{Null(), 0, false},
		{Bool(true), 0, false},
	}
	for _, c := range cases {
		got, ok := c.v.Len()
		if ok != c.wantOK || (ok && got != c.want) {
			t.Errorf("Len(%v) = %d, %t, want %d, %t", c.v.Kind(), got, ok, c.want, c.wantOK)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	original := Array(
		Int(42),
		Text("hello"),
		Map(MapEntry{Key: Text("k"), Value: Bool(true)}),
		Float(3.5),
		Null(),
		Bytes([]byte{0xde, 0xad}),
	)
	encoded, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	decoded, err := Unmarshal(encoded)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !Equal(original, decoded) {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestRoundTripPreservesMapOrder(t *testing.T) {
	original := Map(
		MapEntry{Key: Text("z"), Value: Int(1)},
		MapEntry{Key: Text("a"), Value: Int(2)},
		MapEntry{Key: Text("m"), Value: Int(3)},
	)
	encoded, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	decoded, err := Unmarshal(encoded)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	entries, ok := decoded.Map()
	if !ok {
		t.Fatalf("decoded value is not a map")
	}
	wantKeys := []string{"z", "a", "m"}
	if len(entries) != len(wantKeys) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantKeys))
	}
	for i, want := range wantKeys {
		got, _ := entries[i].Key.Text()
		if got != want {
			t.Errorf("entry %d key = %q, want %q", i, got, want)
		}
	}
}

func TestDecodeIndefiniteLengthArray(t *testing.T) {
	// 0x9f = array, indefinite length; 0x01 0x02 = ints 1,2; 0xff = break.
	data := []byte{0x9f, 0x01, 0x02, 0xff}
	v, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	arr, ok := v.Array()
	if !ok || len(arr) != 2 {
		t.Fatalf("got %+v, want a 2-element array", v)
	}
}

func TestDecodeDuplicateMapKeyRejected(t *testing.T) {
	// 0xa2 = map, 2 pairs; "a":1, "a":2 both as text keys and int values.
	dup := Map(MapEntry{Key: Text("a"), Value: Int(1)})
	encoded, _ := Marshal(dup)
	// Hand-build a 2-entry map with a duplicate key by editing the header byte.
	data := append([]byte{0xa2}, encoded[1:]...)
	data = append(data, encoded[1:]...)
	if _, err := Unmarshal(data); err == nil {
		t.Error("expected an error for a map with a duplicate key")
	}
}
