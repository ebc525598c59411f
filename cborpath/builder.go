package cborpath

import (
	"fmt"
	"regexp"

	"github.com/cborpath/cborpath/cborval"
)

// PathBuilder constructs a Path fluently instead of hand-assembling
// the CBOR-Array encoding and compiling it.
type PathBuilder struct {
	path *Path
}

// AbsPath starts building an absolute ("$") path.
func AbsPath() *PathBuilder { return &PathBuilder{path: &Path{Root: RootAbsolute}} }

// RelPath starts building a relative ("@") path.
func RelPath() *PathBuilder { return &PathBuilder{path: &Path{Root: RootRelative}} }

// Child appends a child segment applying sels.
func (b *PathBuilder) Child(sels ...Selector) *PathBuilder {
	b.path.Segments = append(b.path.Segments, Segment{Kind: SegChild, Selectors: sels})
	return b
}

// Descendant appends a descendant segment applying sels.
func (b *PathBuilder) Descendant(sels ...Selector) *PathBuilder {
	b.path.Segments = append(b.path.Segments, Segment{Kind: SegDescendant, Selectors: sels})
	return b
}

// Key is shorthand for Child(KeySelector(k)).
func (b *PathBuilder) Key(k cborval.Value) *PathBuilder { return b.Child(KeySelector(k)) }

// Wildcard is shorthand for Child(WildcardSelector()).
func (b *PathBuilder) Wildcard() *PathBuilder { return b.Child(WildcardSelector()) }

// Index is shorthand for Child(IndexSelector(i)).
func (b *PathBuilder) Index(i int) *PathBuilder { return b.Child(IndexSelector(i)) }

// Slice is shorthand for Child(SliceSelector(start, end, step)).
func (b *PathBuilder) Slice(start, end *int, step int) *PathBuilder {
	return b.Child(SliceSelector(start, end, step))
}

// Filter is shorthand for Child(FilterSelector(expr)).
func (b *PathBuilder) Filter(expr *BoolExpr) *PathBuilder { return b.Child(FilterSelector(expr)) }

// Build returns the constructed Path.
func (b *PathBuilder) Build() *Path { return b.path }

// KeySelector builds a Key selector.
func KeySelector(k cborval.Value) Selector { return Selector{Kind: SelKey, Key: k} }

// WildcardSelector builds a Wildcard selector.
func WildcardSelector() Selector { return Selector{Kind: SelWildcard} }

// IndexSelector builds an Index selector.
func IndexSelector(i int) Selector { return Selector{Kind: SelIndex, Index: i} }

// SliceSelector builds a Slice selector. start/end may be nil to use
// the default bound for step's sign; step must not be zero.
func SliceSelector(start, end *int, step int) Selector {
	return Selector{Kind: SelSlice, Start: start, End: end, Step: step}
}

// FilterSelector builds a Filter selector.
func FilterSelector(expr *BoolExpr) Selector { return Selector{Kind: SelFilter, Filter: expr} }

// And builds a logical AND of at least two operands.
func And(exprs ...*BoolExpr) *BoolExpr { return &BoolExpr{Kind: BEAnd, Operands: exprs} }

// Or builds a logical OR of at least two operands.
func Or(exprs ...*BoolExpr) *BoolExpr { return &BoolExpr{Kind: BEOr, Operands: exprs} }

// Not builds a logical negation.
func Not(expr *BoolExpr) *BoolExpr { return &BoolExpr{Kind: BENot, Operands: []*BoolExpr{expr}} }

// Test builds an existence test over p.
func Test(p *Path) *BoolExpr { return &BoolExpr{Kind: BETest, Path: p} }

func comparison(op ComparisonOp, l, r *Comparable) *BoolExpr {
	return &BoolExpr{Kind: BEComparison, Op: op, Left: l, Right: r}
}

// Eq builds an equality comparison.
func Eq(l, r *Comparable) *BoolExpr { return comparison(OpEq, l, r) }

// Neq builds an inequality comparison.
func Neq(l, r *Comparable) *BoolExpr { return comparison(OpNe, l, r) }

// Lt builds a less-than comparison.
func Lt(l, r *Comparable) *BoolExpr { return comparison(OpLt, l, r) }

// Lte builds a less-than-or-equal comparison.
func Lte(l, r *Comparable) *BoolExpr { return comparison(OpLe, l, r) }

// Gt builds a greater-than comparison.
func Gt(l, r *Comparable) *BoolExpr { return comparison(OpGt, l, r) }

// Gte builds a greater-than-or-equal comparison.
func Gte(l, r *Comparable) *BoolExpr { return comparison(OpGe, l, r) }

// Search builds a substring-match predicate against pattern.
func Search(c *Comparable, pattern string) (*BoolExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRegex, err)
	}
	return &BoolExpr{Kind: BESearch, Arg: c, Regex: re, Pattern: pattern}, nil
}

// Match builds a full-match predicate against pattern.
func Match(c *Comparable, pattern string) (*BoolExpr, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRegex, err)
	}
	return &BoolExpr{Kind: BEMatch, Arg: c, Regex: re, Pattern: pattern}, nil
}

// Val builds a literal Comparable.
func Val(v cborval.Value) *Comparable { return &Comparable{Kind: CompLiteral, Literal: v} }

// SingPath builds a Comparable resolving a singular path.
func SingPath(p *Path) *Comparable { return &Comparable{Kind: CompSingularPath, Path: p} }

// Length builds a Comparable over c's length.
func Length(c *Comparable) *Comparable { return &Comparable{Kind: CompLength, Inner: c} }

// Count builds a Comparable over the number of nodes p matches.
func Count(p *Path) *Comparable { return &Comparable{Kind: CompCount, Path: p} }

// Value builds a Comparable that collapses p's nodelist: a single
// matched node yields its value, anything else yields Nothing.
func Value(p *Path) *Comparable { return &Comparable{Kind: CompValue, Path: p} }
