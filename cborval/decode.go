package cborval

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Unmarshal decodes a single CBOR data item from data, requiring the
// item to consume the entire input.
func Unmarshal(data []byte) (Value, error) {
	v, rest, err := decodeItem(data)
	if err != nil {
		return Value{}, err
	}
	if len(rest) != 0 {
		return Value{}, fmt.Errorf("cborval: %d trailing byte(s) after top-level item", len(rest))
	}
	return v, nil
}

// UnmarshalCBOR implements cbor.Unmarshaler so Value can be embedded
// in other CBOR-tagged structures.
func (v *Value) UnmarshalCBOR(data []byte) error {
	decoded, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// decodeItem decodes one CBOR data item from the front of data and
// returns the remaining, undecoded bytes.
//
// Scalar items (major types 0, 1, 2, 3 and 7) are handed to
// fxamacker/cbor's cbor.UnmarshalFirst, which owns every bit of
// integer/float/string header-length and canonical-form arithmetic.
// Containers (arrays, maps, tags) need their member items split out
// individually to preserve map insertion order, which interface{}
// decoding cannot do, so only their item headers are parsed by hand
// here; their contents recurse back into decodeItem and so still go
// through the library for anything scalar.
func decodeItem(data []byte) (Value, []byte, error) {
	if len(data) == 0 {
		return Value{}, nil, io.ErrUnexpectedEOF
	}
	major := data[0] >> 5
	switch major {
	case 0, 1, 2, 3, 7:
		return decodeScalar(data)
	case 4:
		arg, hlen, indefinite, err := itemHeader(data)
		if err != nil {
			return Value{}, nil, err
		}
		return decodeArray(data[hlen:], arg, indefinite)
	case 5:
		arg, hlen, indefinite, err := itemHeader(data)
		if err != nil {
			return Value{}, nil, err
		}
		return decodeMap(data[hlen:], arg, indefinite)
	case 6:
		arg, hlen, _, err := itemHeader(data)
		if err != nil {
			return Value{}, nil, err
		}
		inner, rest, err := decodeItem(data[hlen:])
		if err != nil {
			return Value{}, nil, err
		}
		return Tagged(arg, inner), rest, nil
	default:
		return Value{}, nil, fmt.Errorf("cborval: unsupported major type %d", major)
	}
}

func decodeScalar(data []byte) (Value, []byte, error) {
	var raw interface{}
	rest, err := cbor.UnmarshalFirst(data, &raw)
	if err != nil {
		return Value{}, nil, err
	}
	v, err := fromNative(raw)
	if err != nil {
		return Value{}, nil, err
	}
	return v, rest, nil
}

func fromNative(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case int64:
		return Int(x), nil
	case uint64:
		if x > uint64(1)<<63-1 {
			return Float(float64(x)), nil
		}
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Text(x), nil
	case []byte:
		return Bytes(x), nil
	default:
		return Value{}, fmt.Errorf("cborval: unexpected decoded scalar type %T", raw)
	}
}

func decodeArray(body []byte, n uint64, indefinite bool) (Value, []byte, error) {
	items := make([]Value, 0, boundedCap(n))
	if indefinite {
		for {
			if len(body) == 0 {
				return Value{}, nil, io.ErrUnexpectedEOF
			}
			if body[0] == 0xFF {
				body = body[1:]
				break
			}
			v, rest, err := decodeItem(body)
			if err != nil {
				return Value{}, nil, err
			}
			items = append(items, v)
			body = rest
		}
	} else {
		for i := uint64(0); i < n; i++ {
			v, rest, err := decodeItem(body)
			if err != nil {
				return Value{}, nil, err
			}
			items = append(items, v)
			body = rest
		}
	}
	return Array(items...), body, nil
}

func decodeMap(body []byte, n uint64, indefinite bool) (Value, []byte, error) {
	entries := make([]MapEntry, 0, boundedCap(n))
	readPair := func() error {
		k, rest, err := decodeItem(body)
		if err != nil {
			return err
		}
		body = rest
		val, rest, err := decodeItem(body)
		if err != nil {
			return err
		}
		body = rest
		for _, e := range entries {
			if Equal(e.Key, k) {
				return fmt.Errorf("cborval: duplicate map key %v", k)
			}
		}
		entries = append(entries, MapEntry{Key: k, Value: val})
		return nil
	}
	if indefinite {
		for {
			if len(body) == 0 {
				return Value{}, nil, io.ErrUnexpectedEOF
			}
			if body[0] == 0xFF {
				body = body[1:]
				break
			}
			if err := readPair(); err != nil {
				return Value{}, nil, err
			}
		}
	} else {
		for i := uint64(0); i < n; i++ {
			if err := readPair(); err != nil {
				return Value{}, nil, err
			}
		}
	}
	return Map(entries...), body, nil
}

func boundedCap(n uint64) int {
	const max = 1 << 16
	if n > max {
		return max
	}
	return int(n)
}

// itemHeader parses a CBOR item's initial byte and any following
// length bytes, returning the header's argument (item count for
// arrays/maps, tag number for tags), the header's byte length, and
// whether the item uses indefinite-length encoding (additional info
// 31, valid only for arrays and maps).
func itemHeader(data []byte) (arg uint64, headerLen int, indefinite bool, err error) {
	if len(data) == 0 {
		return 0, 0, false, io.ErrUnexpectedEOF
	}
	ai := data[0] & 0x1f
	switch {
	case ai < 24:
		return uint64(ai), 1, false, nil
	case ai == 24:
		if len(data) < 2 {
			return 0, 0, false, io.ErrUnexpectedEOF
		}
		return uint64(data[1]), 2, false, nil
	case ai == 25:
		if len(data) < 3 {
			return 0, 0, false, io.ErrUnexpectedEOF
		}
		return uint64(binary.BigEndian.Uint16(data[1:3])), 3, false, nil
	case ai == 26:
		if len(data) < 5 {
			return 0, 0, false, io.ErrUnexpectedEOF
		}
		return uint64(binary.BigEndian.Uint32(data[1:5])), 5, false, nil
	case ai == 27:
		if len(data) < 9 {
			return 0, 0, false, io.ErrUnexpectedEOF
		}
		return binary.BigEndian.Uint64(data[1:9]), 9, false, nil
	case ai == 31:
		return 0, 1, true, nil
	default:
		return 0, 0, false, fmt.Errorf("cborval: reserved additional information %d", ai)
	}
}
