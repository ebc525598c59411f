package cborpath

import "github.com/cborpath/cborpath/cborval"

func evalSegmentPaths(seg Segment, root Node, current []locatedNode) []locatedNode {
	var out []locatedNode
	switch seg.Kind {
	case SegChild:
		for _, ln := range current {
			out = append(out, evalSelectorsPaths(seg.Selectors, root, ln)...)
		}
	case SegDescendant:
		for _, ln := range current {
			for _, d := range preOrderPaths(ln) {
				out = append(out, evalSelectorsPaths(seg.Selectors, root, d)...)
			}
		}
	}
	return out
}

func evalSelectorsPaths(sels []Selector, root Node, ln locatedNode) []locatedNode {
	var out []locatedNode
	for _, s := range sels {
		out = append(out, evalSelectorPaths(s, root, ln)...)
	}
	return out
}

// preOrderPaths returns ln followed by every descendant of ln, using
// the same two-phase "direct children first, then recurse each
// child" shape as appendDescendants/directChildren, so match order
// agrees with Evaluate's.
func preOrderPaths(ln locatedNode) []locatedNode {
	out := []locatedNode{ln}
	appendDescendantPaths(&out, ln)
	return out
}

func appendDescendantPaths(out *[]locatedNode, ln locatedNode) {
	children := directChildrenPaths(ln)
	*out = append(*out, children...)
	for _, c := range children {
		appendDescendantPaths(out, c)
	}
}

func directChildrenPaths(ln locatedNode) []locatedNode {
	if arr, ok := ln.node.ArrayRef(); ok {
		children := make([]locatedNode, len(arr))
		for i := range arr {
			children[i] = locatedNode{node: &arr[i], loc: appendElem(ln.loc, PathElem{IsKey: false, Index: i})}
		}
		return children
	}
	if m, ok := ln.node.MapRef(); ok {
		children := make([]locatedNode, len(m))
		for i := range m {
			children[i] = locatedNode{node: &m[i].Value, loc: appendElem(ln.loc, PathElem{IsKey: true, Key: m[i].Key})}
		}
		return children
	}
	return nil
}

func appendElem(loc Locator, elem PathElem) Locator {
	out := make(Locator, len(loc)+1)
	copy(out, loc)
	out[len(loc)] = elem
	return out
}

func evalSelectorPaths(sel Selector, root Node, ln locatedNode) []locatedNode {
	switch sel.Kind {
	case SelKey:
		if m, ok := ln.node.MapRef(); ok {
			for i := range m {
				if cborval.Equal(m[i].Key, sel.Key) {
					return []locatedNode{{node: &m[i].Value, loc: appendElem(ln.loc, PathElem{IsKey: true, Key: m[i].Key})}}
				}
			}
		}
		return nil
	case SelWildcard:
		var out []locatedNode
		if arr, ok := ln.node.ArrayRef(); ok {
			for i := range arr {
				out = append(out, locatedNode{node: &arr[i], loc: appendElem(ln.loc, PathElem{IsKey: false, Index: i})})
			}
			return out
		}
		if m, ok := ln.node.MapRef(); ok {
			for i := range m {
				out = append(out, locatedNode{node: &m[i].Value, loc: appendElem(ln.loc, PathElem{IsKey: true, Key: m[i].Key})})
			}
		}
		return out
	case SelIndex:
		if arr, ok := ln.node.ArrayRef(); ok {
			idx := normalizeIndex(sel.Index, len(arr))
			if idx >= 0 && idx < len(arr) {
				return []locatedNode{{node: &arr[idx], loc: appendElem(ln.loc, PathElem{IsKey: false, Index: idx})}}
			}
		}
		return nil
	case SelSlice:
		if arr, ok := ln.node.ArrayRef(); ok {
			nl := sliceSelect(arr, sel)
			out := make([]locatedNode, len(nl))
			for i, n := range nl {
				idx := nodeArrayIndex(arr, n)
				out[i] = locatedNode{node: n, loc: appendElem(ln.loc, PathElem{IsKey: false, Index: idx})}
			}
			return out
		}
		return nil
	case SelFilter:
		var out []locatedNode
		if arr, ok := ln.node.ArrayRef(); ok {
			for i := range arr {
				if evalBoolExpr(sel.Filter, root, &arr[i]) {
					out = append(out, locatedNode{node: &arr[i], loc: appendElem(ln.loc, PathElem{IsKey: false, Index: i})})
				}
			}
			return out
		}
		if m, ok := ln.node.MapRef(); ok {
			for i := range m {
				if evalBoolExpr(sel.Filter, root, &m[i].Value) {
					out = append(out, locatedNode{node: &m[i].Value, loc: appendElem(ln.loc, PathElem{IsKey: true, Key: m[i].Key})})
				}
			}
		}
		return out
	default:
		return nil
	}
}

func nodeArrayIndex(arr []cborval.Value, n Node) int {
	for i := range arr {
		if &arr[i] == n {
			return i
		}
	}
	return -1
}
