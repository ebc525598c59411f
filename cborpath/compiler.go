package cborpath

import (
	"fmt"
	"regexp"

	"github.com/cborpath/cborpath/cborval"
)

// Compile parses a CBOR-encoded query into a Path, or returns an
// error wrapping one of the Err* sentinels and describing the first
// malformed construct encountered.
func Compile(v cborval.Value) (*Path, error) {
	arr, ok := v.Array()
	if !ok {
		return nil, fmt.Errorf("%w: path must be a CBOR array, got %s", ErrUnexpectedRoot, describeKind(v))
	}
	return compilePathArray(arr)
}

func compilePathArray(arr []cborval.Value) (*Path, error) {
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w", ErrEmptyPath)
	}
	root, err := parseRootIdentifier(arr[0])
	if err != nil {
		return nil, err
	}
	segs := make([]Segment, 0, len(arr)-1)
	for _, el := range arr[1:] {
		seg, err := compileSegment(el)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return &Path{Root: root, Segments: segs}, nil
}

func parseRootIdentifier(v cborval.Value) (RootKind, error) {
	text, ok := v.Text()
	if !ok {
		return 0, fmt.Errorf("%w, got %s", ErrUnexpectedRoot, describeKind(v))
	}
	switch text {
	case "$":
		return RootAbsolute, nil
	case "@":
		return RootRelative, nil
	default:
		return 0, fmt.Errorf("%w, got %q", ErrUnexpectedRoot, text)
	}
}

func compileSegment(v cborval.Value) (Segment, error) {
	if entries, ok := v.Map(); ok {
		if len(entries) != 1 {
			return Segment{}, fmt.Errorf("%w: segment map must have exactly one key, got %d", ErrBadSegment, len(entries))
		}
		keyText, ok := entries[0].Key.Text()
		if !ok {
			return Segment{}, fmt.Errorf("%w: segment map key must be text", ErrBadSegment)
		}
		if keyText == ".." {
			sels, err := compileSelectorList(entries[0].Value)
			if err != nil {
				return Segment{}, err
			}
			return Segment{Kind: SegDescendant, Selectors: sels}, nil
		}
		sel, err := compileSelector(v)
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: SegChild, Selectors: []Selector{sel}}, nil
	}
	if arr, ok := v.Array(); ok {
		sels := make([]Selector, 0, len(arr))
		for _, el := range arr {
			sel, err := compileSelector(el)
			if err != nil {
				return Segment{}, err
			}
			sels = append(sels, sel)
		}
		if len(sels) == 0 {
			return Segment{}, fmt.Errorf("%w: child segment selector list must not be empty", ErrBadSegment)
		}
		return Segment{Kind: SegChild, Selectors: sels}, nil
	}
	sel, err := compileSelector(v)
	if err != nil {
		return Segment{}, err
	}
	return Segment{Kind: SegChild, Selectors: []Selector{sel}}, nil
}

func compileSelectorList(v cborval.Value) ([]Selector, error) {
	if arr, ok := v.Array(); ok {
		sels := make([]Selector, 0, len(arr))
		for _, el := range arr {
			sel, err := compileSelector(el)
			if err != nil {
				return nil, err
			}
			sels = append(sels, sel)
		}
		if len(sels) == 0 {
			return nil, fmt.Errorf("%w: descendant segment selector list must not be empty", ErrBadSegment)
		}
		return sels, nil
	}
	sel, err := compileSelector(v)
	if err != nil {
		return nil, err
	}
	return []Selector{sel}, nil
}

var selectorMapKeys = []string{"*", "#", ":", "?"}

func compileSelector(v cborval.Value) (Selector, error) {
	if entries, ok := v.Map(); ok {
		if len(entries) != 1 {
			return Selector{}, fmt.Errorf("%w: selector map must have exactly one key, got %d", ErrBadSelector, len(entries))
		}
		keyText, ok := entries[0].Key.Text()
		if !ok {
			return Selector{}, fmt.Errorf("%w: selector map key must be text", ErrBadSelector)
		}
		switch keyText {
		case "*":
			n, ok := entries[0].Value.Int()
			if !ok || n != 1 {
				return Selector{}, fmt.Errorf("%w: wildcard selector must be {\"*\": 1}", ErrBadSelector)
			}
			return Selector{Kind: SelWildcard}, nil
		case "#":
			idx, ok := entries[0].Value.Int()
			if !ok {
				return Selector{}, fmt.Errorf("%w: index selector value must be an integer", ErrBadSelector)
			}
			return Selector{Kind: SelIndex, Index: int(idx)}, nil
		case ":":
			return compileSlice(entries[0].Value)
		case "?":
			expr, err := compileBoolExpr(entries[0].Value)
			if err != nil {
				return Selector{}, err
			}
			return Selector{Kind: SelFilter, Filter: expr}, nil
		default:
			return Selector{}, suggestKey(ErrBadSelector, keyText, selectorMapKeys)
		}
	}
	if text, ok := v.Text(); ok && text == "*" {
		return Selector{Kind: SelWildcard}, nil
	}
	if v.IsScalar() {
		if text, ok := v.Text(); ok && (text == "$" || text == "@") {
			return Selector{}, fmt.Errorf("%w: %q is reserved and cannot be used as a key selector", ErrBadSelector, text)
		}
		return Selector{Kind: SelKey, Key: v}, nil
	}
	return Selector{}, fmt.Errorf("%w: cannot parse selector from %s", ErrBadSelector, describeKind(v))
}

func compileSlice(v cborval.Value) (Selector, error) {
	arr, ok := v.Array()
	if !ok || len(arr) < 1 || len(arr) > 3 {
		return Selector{}, fmt.Errorf("%w: slice selector must be [start, end, step]", ErrBadSelector)
	}
	var start, end *int
	step := 1
	if len(arr) >= 1 {
		s, err := optionalInt(arr[0])
		if err != nil {
			return Selector{}, err
		}
		start = s
	}
	if len(arr) >= 2 {
		e, err := optionalInt(arr[1])
		if err != nil {
			return Selector{}, err
		}
		end = e
	}
	if len(arr) == 3 {
		st, err := optionalInt(arr[2])
		if err != nil {
			return Selector{}, err
		}
		if st == nil {
			return Selector{}, fmt.Errorf("%w: slice step cannot be null", ErrBadSliceStep)
		}
		step = *st
	}
	if step == 0 {
		return Selector{}, fmt.Errorf("%w", ErrBadSliceStep)
	}
	return Selector{Kind: SelSlice, Start: start, End: end, Step: step}, nil
}

func optionalInt(v cborval.Value) (*int, error) {
	if v.IsNull() {
		return nil, nil
	}
	n, ok := v.Int()
	if !ok {
		return nil, fmt.Errorf("%w: slice bound must be an integer or null", ErrBadSelector)
	}
	i := int(n)
	return &i, nil
}

var boolOpKeys = []string{"&&", "||", "!", "<", "<=", "==", "!=", ">", ">=", "match", "search"}

func compileBoolExpr(v cborval.Value) (*BoolExpr, error) {
	if arr, ok := v.Array(); ok {
		p, err := compilePathArray(arr)
		if err != nil {
			return nil, err
		}
		return &BoolExpr{Kind: BETest, Path: p}, nil
	}
	entries, ok := v.Map()
	if !ok || len(entries) != 1 {
		return nil, fmt.Errorf("%w: boolean expression must be a single-key map or a path array", ErrBadBoolOp)
	}
	opText, ok := entries[0].Key.Text()
	if !ok {
		return nil, fmt.Errorf("%w: boolean operator key must be text", ErrBadBoolOp)
	}
	val := entries[0].Value
	switch opText {
	case "&&", "||":
		arr, ok := val.Array()
		if !ok || len(arr) < 2 {
			return nil, fmt.Errorf("%w: %q requires an array of at least two boolean expressions", ErrBadBoolOp, opText)
		}
		operands := make([]*BoolExpr, 0, len(arr))
		for _, el := range arr {
			be, err := compileBoolExpr(el)
			if err != nil {
				return nil, err
			}
			operands = append(operands, be)
		}
		kind := BEAnd
		if opText == "||" {
			kind = BEOr
		}
		return &BoolExpr{Kind: kind, Operands: operands}, nil
	case "!":
		inner, err := compileBoolExpr(val)
		if err != nil {
			return nil, err
		}
		return &BoolExpr{Kind: BENot, Operands: []*BoolExpr{inner}}, nil
	case "<", "<=", "==", "!=", ">", ">=":
		arr, ok := val.Array()
		if !ok || len(arr) != 2 {
			return nil, fmt.Errorf("%w: comparison %q requires a 2-element array", ErrBadComparison, opText)
		}
		left, err := compileComparable(arr[0])
		if err != nil {
			return nil, err
		}
		right, err := compileComparable(arr[1])
		if err != nil {
			return nil, err
		}
		return &BoolExpr{Kind: BEComparison, Op: comparisonOp(opText), Left: left, Right: right}, nil
	case "match", "search":
		arr, ok := val.Array()
		if !ok || len(arr) != 2 {
			return nil, fmt.Errorf("%w: %q requires [comparable, regex]", ErrBadFunctionArity, opText)
		}
		cmp, err := compileComparable(arr[0])
		if err != nil {
			return nil, err
		}
		pattern, ok := arr[1].Text()
		if !ok {
			return nil, fmt.Errorf("%w: regex argument must be text", ErrBadRegex)
		}
		kind := BESearch
		compiled := pattern
		if opText == "match" {
			kind = BEMatch
			compiled = "^(?:" + pattern + ")$"
		}
		re, err := regexp.Compile(compiled)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRegex, err)
		}
		return &BoolExpr{Kind: kind, Arg: cmp, Regex: re, Pattern: pattern}, nil
	default:
		return nil, suggestKey(ErrBadBoolOp, opText, boolOpKeys)
	}
}

func comparisonOp(s string) ComparisonOp {
	switch s {
	case "<":
		return OpLt
	case "<=":
		return OpLe
	case "==":
		return OpEq
	case "!=":
		return OpNe
	case ">":
		return OpGt
	default:
		return OpGe
	}
}

var comparableFunctionKeys = []string{"length", "count", "value"}

func compileComparable(v cborval.Value) (*Comparable, error) {
	if v.IsScalar() {
		return &Comparable{Kind: CompLiteral, Literal: v}, nil
	}
	if arr, ok := v.Array(); ok {
		p, err := compileSingularPathArray(arr)
		if err != nil {
			return nil, err
		}
		return &Comparable{Kind: CompSingularPath, Path: p}, nil
	}
	entries, ok := v.Map()
	if !ok || len(entries) != 1 {
		return nil, fmt.Errorf("%w: comparable must be a literal, path array, or single-key function map, got %s", ErrBadComparable, describeKind(v))
	}
	key, ok := entries[0].Key.Text()
	if !ok {
		return nil, fmt.Errorf("%w: comparable function key must be text", ErrBadComparable)
	}
	switch key {
	case "length":
		inner, err := compileComparable(entries[0].Value)
		if err != nil {
			return nil, err
		}
		return &Comparable{Kind: CompLength, Inner: inner}, nil
	case "count":
		p, err := Compile(entries[0].Value)
		if err != nil {
			return nil, err
		}
		return &Comparable{Kind: CompCount, Path: p}, nil
	case "value":
		p, err := Compile(entries[0].Value)
		if err != nil {
			return nil, err
		}
		return &Comparable{Kind: CompValue, Path: p}, nil
	default:
		return nil, suggestKey(ErrUnknownFunction, key, comparableFunctionKeys)
	}
}

func compileSingularPathArray(arr []cborval.Value) (*Path, error) {
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w", ErrEmptyPath)
	}
	root, err := parseRootIdentifier(arr[0])
	if err != nil {
		return nil, err
	}
	segs := make([]Segment, 0, len(arr)-1)
	for _, el := range arr[1:] {
		sel, err := compileSingularSelector(el)
		if err != nil {
			return nil, err
		}
		segs = append(segs, Segment{Kind: SegChild, Selectors: []Selector{sel}})
	}
	return &Path{Root: root, Segments: segs}, nil
}

func compileSingularSelector(v cborval.Value) (Selector, error) {
	if entries, ok := v.Map(); ok {
		if len(entries) == 1 {
			if keyText, ok := entries[0].Key.Text(); ok && keyText == "#" {
				idx, ok := entries[0].Value.Int()
				if !ok {
					return Selector{}, fmt.Errorf("%w: index selector value must be an integer", ErrBadSelector)
				}
				return Selector{Kind: SelIndex, Index: int(idx)}, nil
			}
		}
		return Selector{}, fmt.Errorf("%w: singular path selectors are restricted to key and index", ErrNonSingularPath)
	}
	if v.IsScalar() {
		if text, ok := v.Text(); ok && (text == "$" || text == "@" || text == "*") {
			return Selector{}, fmt.Errorf("%w: %q cannot be used as a singular-path key selector", ErrNonSingularPath, text)
		}
		return Selector{Kind: SelKey, Key: v}, nil
	}
	return Selector{}, fmt.Errorf("%w: cannot parse singular-path selector from %s", ErrNonSingularPath, describeKind(v))
}

func describeKind(v cborval.Value) string {
	return v.Kind().String()
}
