package cborpath

import "github.com/cborpath/cborpath/cborval"

// Node is a reference into the argument tree passed to Evaluate. Go's
// slices keep a stable backing array for the lifetime of the argument,
// so nodes can point directly into it instead of copying values or
// tracking parent-plus-index locators.
type Node = *cborval.Value

// Nodelist is an ordered sequence of matched nodes, possibly containing
// duplicates when a descendant or filter selector revisits the same
// node through different paths.
type Nodelist []Node

// Values collects the values a Nodelist's nodes currently point to.
func (nl Nodelist) Values() []cborval.Value {
	out := make([]cborval.Value, len(nl))
	for i, n := range nl {
		out[i] = *n
	}
	return out
}

// Evaluate applies p to arg and returns the matched nodes. A relative
// path evaluated at the top level (outside of any filter) is treated
// the same as an absolute one: its starting node is arg.
func (p *Path) Evaluate(arg cborval.Value) Nodelist {
	return p.evaluateFrom(&arg, &arg)
}

// EvaluateToCBOR evaluates p against arg and returns the matched
// values re-encoded as a single CBOR array, in match order.
func (p *Path) EvaluateToCBOR(arg cborval.Value) ([]byte, error) {
	nl := p.Evaluate(arg)
	return cborval.Marshal(cborval.Array(nl.Values()...))
}

// PathElem identifies one step of a Locator: either a map key or an
// array index.
type PathElem struct {
	IsKey bool
	Key   cborval.Value
	Index int
}

// Locator is the sequence of steps from the evaluation root to a
// matched node.
type Locator []PathElem

// EvaluatePaths applies p to arg and returns a Locator for every
// matched node, in the same order Evaluate would return the nodes
// themselves.
func (p *Path) EvaluatePaths(arg cborval.Value) []Locator {
	root := &arg
	current := []locatedNode{{node: root, loc: nil}}
	for _, seg := range p.Segments {
		current = evalSegmentPaths(seg, root, current)
	}
	out := make([]Locator, len(current))
	for i, ln := range current {
		out[i] = ln.loc
	}
	return out
}

type locatedNode struct {
	node Node
	loc  Locator
}

func (p *Path) evaluateFrom(root, current Node) Nodelist {
	nodes := Nodelist{current}
	for _, seg := range p.Segments {
		nodes = evalSegment(seg, root, nodes)
	}
	return nodes
}

func evalSegment(seg Segment, root Node, current Nodelist) Nodelist {
	var out Nodelist
	switch seg.Kind {
	case SegChild:
		for _, n := range current {
			out = append(out, evalSelectors(seg.Selectors, root, n)...)
		}
	case SegDescendant:
		for _, n := range current {
			for _, d := range preOrder(n) {
				out = append(out, evalSelectors(seg.Selectors, root, d)...)
			}
		}
	}
	return out
}

func evalSelectors(sels []Selector, root, n Node) Nodelist {
	var out Nodelist
	for _, s := range sels {
		out = append(out, evalSelector(s, root, n)...)
	}
	return out
}

// preOrder returns n followed by every descendant of n: all of a
// node's direct children are listed before any of them is recursed
// into, so a shallow descendant always precedes its own deeper
// descendants but can still precede or follow a shallow descendant
// found under an earlier sibling, depending on where in the tree it
// sits. This mirrors the original's two-phase "extend with children,
// then recurse each child" shape rather than a textbook preorder
// walk, which matters for descendant-segment match order.
func preOrder(n Node) []Node {
	out := []Node{n}
	appendDescendants(&out, n)
	return out
}

func appendDescendants(out *[]Node, n Node) {
	children := directChildren(n)
	*out = append(*out, children...)
	for _, c := range children {
		appendDescendants(out, c)
	}
}

func directChildren(n Node) []Node {
	if arr, ok := n.ArrayRef(); ok {
		children := make([]Node, len(arr))
		for i := range arr {
			children[i] = &arr[i]
		}
		return children
	}
	if m, ok := n.MapRef(); ok {
		children := make([]Node, len(m))
		for i := range m {
			children[i] = &m[i].Value
		}
		return children
	}
	return nil
}

func evalSelector(sel Selector, root, n Node) Nodelist {
	switch sel.Kind {
	case SelKey:
		if m, ok := n.MapRef(); ok {
			for i := range m {
				if cborval.Equal(m[i].Key, sel.Key) {
					return Nodelist{&m[i].Value}
				}
			}
		}
		return nil
	case SelWildcard:
		if arr, ok := n.ArrayRef(); ok {
			out := make(Nodelist, len(arr))
			for i := range arr {
				out[i] = &arr[i]
			}
			return out
		}
		if m, ok := n.MapRef(); ok {
			out := make(Nodelist, len(m))
			for i := range m {
				out[i] = &m[i].Value
			}
			return out
		}
		return nil
	case SelIndex:
		if arr, ok := n.ArrayRef(); ok {
			idx := normalizeIndex(sel.Index, len(arr))
			if idx >= 0 && idx < len(arr) {
				return Nodelist{&arr[idx]}
			}
		}
		return nil
	case SelSlice:
		if arr, ok := n.ArrayRef(); ok {
			return sliceSelect(arr, sel)
		}
		return nil
	case SelFilter:
		if arr, ok := n.ArrayRef(); ok {
			var out Nodelist
			for i := range arr {
				if evalBoolExpr(sel.Filter, root, &arr[i]) {
					out = append(out, &arr[i])
				}
			}
			return out
		}
		if m, ok := n.MapRef(); ok {
			var out Nodelist
			for i := range m {
				if evalBoolExpr(sel.Filter, root, &m[i].Value) {
					out = append(out, &m[i].Value)
				}
			}
			return out
		}
		return nil
	default:
		return nil
	}
}

func normalizeIndex(i, length int) int {
	if i >= 0 {
		return i
	}
	return length + i
}

// sliceSelect ports the negative-step slicing algorithm: start/end are
// normalized against the array length before either branch runs, then
// for a positive step the normalized bounds are clamped and walked
// forward, while for a negative step the walk direction is reversed
// and the result is reversed back afterward to preserve the draft's
// element ordering.
func sliceSelect(arr []cborval.Value, sel Selector) Nodelist {
	length := len(arr)
	step := sel.Step

	rawStart, rawEnd := sliceBounds(sel, length, step)
	start := normalizeIndex(rawStart, length)
	end := normalizeIndex(rawEnd, length)

	if step > 0 {
		s := min(max(start, 0), length)
		e := min(max(end, 0), length)
		var out Nodelist
		for i := s; i < e; i += step {
			out = append(out, &arr[i])
		}
		return out
	}

	actualStart := min(clampNonNegative(end+1+start%(-step)-(end+1)%step), length)
	actualEnd := min(clampNonNegative(start+1), length)
	var out Nodelist
	for i := actualStart; i < actualEnd; i += -step {
		out = append(out, &arr[i])
	}
	reverseNodes(out)
	return out
}

// sliceBounds resolves start/end defaults, which depend on the sign
// of step when the bound is absent.
func sliceBounds(sel Selector, length, step int) (start, end int) {
	if step > 0 {
		start, end = 0, length
	} else {
		start, end = length-1, -length-1
	}
	if sel.Start != nil {
		start = *sel.Start
	}
	if sel.End != nil {
		end = *sel.End
	}
	return start, end
}

func clampNonNegative(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

func reverseNodes(nl Nodelist) {
	for i, j := 0, len(nl)-1; i < j; i, j = i+1, j-1 {
		nl[i], nl[j] = nl[j], nl[i]
	}
}
