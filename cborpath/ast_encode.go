package cborpath

import "github.com/cborpath/cborpath/cborval"

// Encode reconstructs the CBOR-Array encoding of p. It is the inverse
// of Compile: for any Path produced by Compile(c), Compile(p.Encode())
// yields a Path with identical semantics (Encode always chooses the
// canonical list-form segment/selector shapes, even when the original
// encoding used an equivalent shorthand).
func (p *Path) Encode() cborval.Value {
	items := make([]cborval.Value, 0, len(p.Segments)+1)
	root := "$"
	if p.Root == RootRelative {
		root = "@"
	}
	items = append(items, cborval.Text(root))
	for _, seg := range p.Segments {
		items = append(items, seg.encode())
	}
	return cborval.Array(items...)
}

// encodeSingular renders p the way compileSingularPathArray expects to
// read it back: one bare Key or Index selector per element, with none
// of the array-wrapping a general child segment uses. Compile only
// ever builds singular-path-shaped Paths through
// compileSingularPathArray, so every segment here is a SegChild with
// exactly one Key or Index selector.
func (p *Path) encodeSingular() cborval.Value {
	root := "$"
	if p.Root == RootRelative {
		root = "@"
	}
	items := make([]cborval.Value, 0, len(p.Segments)+1)
	items = append(items, cborval.Text(root))
	for _, seg := range p.Segments {
		sel := seg.Selectors[0]
		if sel.Kind == SelIndex {
			items = append(items, cborval.Map(cborval.MapEntry{Key: cborval.Text("#"), Value: cborval.Int(int64(sel.Index))}))
			continue
		}
		items = append(items, sel.Key)
	}
	return cborval.Array(items...)
}

func (seg Segment) encode() cborval.Value {
	sels := make([]cborval.Value, len(seg.Selectors))
	for i, s := range seg.Selectors {
		sels[i] = s.encode()
	}
	if seg.Kind == SegDescendant {
		return cborval.Map(cborval.MapEntry{Key: cborval.Text(".."), Value: cborval.Array(sels...)})
	}
	return cborval.Array(sels...)
}

func (s Selector) encode() cborval.Value {
	switch s.Kind {
	case SelKey:
		return s.Key
	case SelWildcard:
		return cborval.Map(cborval.MapEntry{Key: cborval.Text("*"), Value: cborval.Int(1)})
	case SelIndex:
		return cborval.Map(cborval.MapEntry{Key: cborval.Text("#"), Value: cborval.Int(int64(s.Index))})
	case SelSlice:
		parts := cborval.Array(encodeOptionalInt(s.Start), encodeOptionalInt(s.End), cborval.Int(int64(s.Step)))
		return cborval.Map(cborval.MapEntry{Key: cborval.Text(":"), Value: parts})
	case SelFilter:
		return cborval.Map(cborval.MapEntry{Key: cborval.Text("?"), Value: s.Filter.encode()})
	default:
		return cborval.Null()
	}
}

func encodeOptionalInt(i *int) cborval.Value {
	if i == nil {
		return cborval.Null()
	}
	return cborval.Int(int64(*i))
}

func (b *BoolExpr) encode() cborval.Value {
	switch b.Kind {
	case BEAnd, BEOr:
		key := "&&"
		if b.Kind == BEOr {
			key = "||"
		}
		items := make([]cborval.Value, len(b.Operands))
		for i, op := range b.Operands {
			items[i] = op.encode()
		}
		return cborval.Map(cborval.MapEntry{Key: cborval.Text(key), Value: cborval.Array(items...)})
	case BENot:
		return cborval.Map(cborval.MapEntry{Key: cborval.Text("!"), Value: b.Operands[0].encode()})
	case BEComparison:
		pair := cborval.Array(b.Left.encode(), b.Right.encode())
		return cborval.Map(cborval.MapEntry{Key: cborval.Text(comparisonSymbol(b.Op)), Value: pair})
	case BETest:
		return b.Path.Encode()
	case BEMatch, BESearch:
		key := "search"
		if b.Kind == BEMatch {
			key = "match"
		}
		pair := cborval.Array(b.Arg.encode(), cborval.Text(b.Pattern))
		return cborval.Map(cborval.MapEntry{Key: cborval.Text(key), Value: pair})
	default:
		return cborval.Null()
	}
}

func comparisonSymbol(op ComparisonOp) string {
	switch op {
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpGt:
		return ">"
	default:
		return ">="
	}
}

func (c *Comparable) encode() cborval.Value {
	switch c.Kind {
	case CompLiteral:
		return c.Literal
	case CompSingularPath:
		return c.Path.encodeSingular()
	case CompLength:
		return cborval.Map(cborval.MapEntry{Key: cborval.Text("length"), Value: c.Inner.encode()})
	case CompCount:
		return cborval.Map(cborval.MapEntry{Key: cborval.Text("count"), Value: c.Path.Encode()})
	case CompValue:
		return cborval.Map(cborval.MapEntry{Key: cborval.Text("value"), Value: c.Path.Encode()})
	default:
		return cborval.Null()
	}
}
