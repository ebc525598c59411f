// Package cborpath compiles CBOR-encoded queries into an AST and
// evaluates them against decoded CBOR values, following the
// JSONPath (draft-ietf-jsonpath-base-09) data model with queries
// expressed as CBOR arrays instead of strings.
package cborpath

import (
	"regexp"

	"github.com/cborpath/cborpath/cborval"
)

// RootKind distinguishes an absolute path ("$", evaluated against the
// top-level argument) from a relative one ("@", evaluated against a
// filter's current node).
type RootKind uint8

const (
	RootAbsolute RootKind = iota
	RootRelative
)

// Path is a compiled query: a root identifier followed by zero or
// more segments applied left to right.
type Path struct {
	Root     RootKind
	Segments []Segment
}

// SegmentKind distinguishes a child segment, which applies its
// selectors to each node of the current nodelist, from a descendant
// segment, which applies them to each current node and to every node
// below it, in the visiting order preOrder produces (the node itself
// first).
type SegmentKind uint8

const (
	SegChild SegmentKind = iota
	SegDescendant
)

// Segment is one step of a Path: a kind plus the selectors it applies.
type Segment struct {
	Kind      SegmentKind
	Selectors []Selector
}

// SelectorKind identifies which selector variant a Selector holds.
type SelectorKind uint8

const (
	SelKey SelectorKind = iota
	SelWildcard
	SelIndex
	SelSlice
	SelFilter
)

// Selector is one member of a segment's selector list.
type Selector struct {
	Kind SelectorKind

	Key   cborval.Value // SelKey
	Index int           // SelIndex

	Start, End *int // SelSlice; nil means unspecified
	Step       int  // SelSlice; never zero

	Filter *BoolExpr // SelFilter
}

// BoolExprKind identifies which boolean-expression variant a BoolExpr
// holds.
type BoolExprKind uint8

const (
	BEAnd BoolExprKind = iota
	BEOr
	BENot
	BEComparison
	BETest
	BEMatch
	BESearch
)

// ComparisonOp identifies a comparison operator.
type ComparisonOp uint8

const (
	OpLt ComparisonOp = iota
	OpLe
	OpEq
	OpNe
	OpGt
	OpGe
)

// BoolExpr is a compiled filter predicate.
type BoolExpr struct {
	Kind BoolExprKind

	Operands []*BoolExpr // And/Or (>=2 elements), Not (exactly 1)

	Op          ComparisonOp // Comparison
	Left, Right *Comparable  // Comparison

	Path *Path // Test: existence of at least one matched node

	Arg     *Comparable    // Match/Search
	Regex   *regexp.Regexp // Match/Search, compiled (Match is anchored)
	Pattern string         // Match/Search, the regex source as written
}

// ComparableKind identifies which Comparable variant a Comparable
// holds.
type ComparableKind uint8

const (
	CompLiteral ComparableKind = iota
	CompSingularPath
	CompLength
	CompCount
	CompValue
)

// Comparable is a value-producing operand of a comparison, match or
// search expression. It evaluates to at most one CBOR value (Nothing
// if it produces none).
type Comparable struct {
	Kind ComparableKind

	Literal cborval.Value // CompLiteral

	Path *Path // CompSingularPath, CompCount, CompValue

	Inner *Comparable // CompLength
}
