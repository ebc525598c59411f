package cborval

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// scalarEncMode produces canonical CBOR for leaf scalars: it is
// constructed with cbor.CanonicalEncOptions().EncMode() once and the
// resulting EncMode is reused across calls.
var scalarEncMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	m, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return m
}

// Marshal encodes v as CBOR, preserving map insertion order.
func Marshal(v Value) ([]byte, error) { return v.MarshalCBOR() }

// MarshalCBOR implements cbor.Marshaler. Scalars are delegated to
// fxamacker/cbor's canonical encoder; arrays, maps and tags only need
// their own item header written by hand, since the library does not
// know how to walk this package's tagged union.
func (v Value) MarshalCBOR() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return scalarEncMode.Marshal(nil)
	case KindBool:
		return scalarEncMode.Marshal(v.b)
	case KindInt:
		return scalarEncMode.Marshal(v.i)
	case KindFloat:
		return scalarEncMode.Marshal(v.f)
	case KindText:
		return scalarEncMode.Marshal(v.text)
	case KindBytes:
		return scalarEncMode.Marshal(v.bytes)
	case KindArray:
		var buf bytes.Buffer
		writeHeader(&buf, 4, uint64(len(v.arr)))
		for _, item := range v.arr {
			b, err := item.MarshalCBOR()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		return buf.Bytes(), nil
	case KindMap:
		var buf bytes.Buffer
		writeHeader(&buf, 5, uint64(len(v.m)))
		for _, e := range v.m {
			kb, err := e.Key.MarshalCBOR()
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			vb, err := e.Value.MarshalCBOR()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		return buf.Bytes(), nil
	case KindTag:
		var buf bytes.Buffer
		writeHeader(&buf, 6, v.tagNum)
		inner, err := v.tagVal.MarshalCBOR()
		if err != nil {
			return nil, err
		}
		buf.Write(inner)
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cborval: cannot marshal kind %s", v.kind)
	}
}

// writeHeader writes a CBOR item header for the given major type and
// argument, choosing the minimal-length canonical encoding.
func writeHeader(buf *bytes.Buffer, major byte, n uint64) {
	first := major << 5
	switch {
	case n < 24:
		buf.WriteByte(first | byte(n))
	case n <= 0xff:
		buf.WriteByte(first | 24)
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(first | 25)
		buf.WriteByte(byte(n >> 8))
		buf.WriteByte(byte(n))
	case n <= 0xffffffff:
		buf.WriteByte(first | 26)
		for i := 3; i >= 0; i-- {
			buf.WriteByte(byte(n >> (8 * i)))
		}
	default:
		buf.WriteByte(first | 27)
		for i := 7; i >= 0; i-- {
			buf.WriteByte(byte(n >> (8 * i)))
		}
	}
}
