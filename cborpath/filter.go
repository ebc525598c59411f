package cborpath

import "github.com/cborpath/cborpath/cborval"

// evalBoolExpr evaluates a compiled filter predicate against the
// current node, with root kept available for nested absolute
// sub-paths and comparables.
func evalBoolExpr(expr *BoolExpr, root, current Node) bool {
	switch expr.Kind {
	case BEAnd:
		for _, op := range expr.Operands {
			if !evalBoolExpr(op, root, current) {
				return false
			}
		}
		return true
	case BEOr:
		for _, op := range expr.Operands {
			if evalBoolExpr(op, root, current) {
				return true
			}
		}
		return false
	case BENot:
		return !evalBoolExpr(expr.Operands[0], root, current)
	case BEComparison:
		return evalComparison(expr, root, current)
	case BETest:
		return len(evalPathFromRootOrCurrent(expr.Path, root, current)) > 0
	case BEMatch, BESearch:
		v, ok := evalComparable(expr.Arg, root, current)
		if !ok {
			return false
		}
		text, ok := v.Text()
		if !ok {
			return false
		}
		return expr.Regex.MatchString(text)
	default:
		return false
	}
}

func evalPathFromRootOrCurrent(p *Path, root, current Node) Nodelist {
	start := root
	if p.Root == RootRelative {
		start = current
	}
	return p.evaluateFrom(root, start)
}

func evalComparison(expr *BoolExpr, root, current Node) bool {
	l, lok := evalComparable(expr.Left, root, current)
	r, rok := evalComparable(expr.Right, root, current)
	equal := func() bool {
		if lok && rok {
			return cborval.Equal(l, r)
		}
		return lok == rok
	}
	less := func(a cborval.Value, aok bool, b cborval.Value, bok bool) bool {
		if !aok || !bok {
			return false
		}
		return cborval.Less(a, b)
	}
	switch expr.Op {
	case OpEq:
		return equal()
	case OpNe:
		return !equal()
	case OpGt:
		return less(r, rok, l, lok)
	case OpGe:
		return less(r, rok, l, lok) || equal()
	case OpLt:
		return less(l, lok, r, rok)
	case OpLe:
		return less(l, lok, r, rok) || equal()
	default:
		return false
	}
}

// evalComparable evaluates a Comparable, returning false when it
// produces Nothing.
func evalComparable(c *Comparable, root, current Node) (cborval.Value, bool) {
	switch c.Kind {
	case CompLiteral:
		return c.Literal, true
	case CompSingularPath:
		nl := evalPathFromRootOrCurrent(c.Path, root, current)
		if len(nl) != 1 {
			return cborval.Value{}, false
		}
		return *nl[0], true
	case CompLength:
		v, ok := evalComparable(c.Inner, root, current)
		if !ok {
			return cborval.Value{}, false
		}
		n, ok := v.Len()
		if !ok {
			return cborval.Value{}, false
		}
		return cborval.Int(int64(n)), true
	case CompCount:
		nl := evalPathFromRootOrCurrent(c.Path, root, current)
		return cborval.Int(int64(len(nl))), true
	case CompValue:
		nl := evalPathFromRootOrCurrent(c.Path, root, current)
		if len(nl) != 1 {
			return cborval.Value{}, false
		}
		return *nl[0], true
	default:
		return cborval.Value{}, false
	}
}
