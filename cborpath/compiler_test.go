package cborpath_test

import (
	"errors"
	"testing"

	"github.com/cborpath/cborpath/cborpath"
	"github.com/cborpath/cborpath/cborval"
)

func TestCompileShorthandKeySegments(t *testing.T) {
	query := cborval.Array(
		cborval.Text("$"),
		cborval.Text("store"),
		cborval.Text("book"),
	)
	p, err := cborpath.Compile(query)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if p.Root != cborpath.RootAbsolute {
		t.Errorf("Root = %v, want RootAbsolute", p.Root)
	}
	if len(p.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(p.Segments))
	}
	for _, seg := range p.Segments {
		if seg.Kind != cborpath.SegChild || len(seg.Selectors) != 1 || seg.Selectors[0].Kind != cborpath.SelKey {
			t.Errorf("unexpected segment %+v", seg)
		}
	}
}

func TestCompileWildcardShorthands(t *testing.T) {
	for _, wildcard := range []cborval.Value{
		cborval.Text("*"),
		cborval.Map(cborval.MapEntry{Key: cborval.Text("*"), Value: cborval.Int(1)}),
	} {
		query := cborval.Array(cborval.Text("$"), wildcard)
		p, err := cborpath.Compile(query)
		if err != nil {
			t.Fatalf("Compile(%v) error: %v", wildcard, err)
		}
		if p.Segments[0].Selectors[0].Kind != cborpath.SelWildcard {
			t.Errorf("Compile(%v) did not produce a wildcard selector", wildcard)
		}
	}
}

func TestCompileDescendantSegment(t *testing.T) {
	query := cborval.Array(
		cborval.Text("$"),
		cborval.Map(cborval.MapEntry{Key: cborval.Text(".."), Value: cborval.Text("author")}),
	)
	p, err := cborpath.Compile(query)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if p.Segments[0].Kind != cborpath.SegDescendant {
		t.Fatalf("got segment kind %v, want SegDescendant", p.Segments[0].Kind)
	}
}

func TestCompileIndexAndSlice(t *testing.T) {
	query := cborval.Array(
		cborval.Text("$"),
		cborval.Map(cborval.MapEntry{Key: cborval.Text("#"), Value: cborval.Int(-1)}),
		cborval.Map(cborval.MapEntry{
			Key:   cborval.Text(":"),
			Value: cborval.Array(cborval.Int(0), cborval.Null(), cborval.Int(2)),
		}),
	)
	p, err := cborpath.Compile(query)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	idxSel := p.Segments[0].Selectors[0]
	if idxSel.Kind != cborpath.SelIndex || idxSel.Index != -1 {
		t.Errorf("got %+v, want Index(-1)", idxSel)
	}
	sliceSel := p.Segments[1].Selectors[0]
	if sliceSel.Kind != cborpath.SelSlice || sliceSel.Step != 2 || sliceSel.End != nil {
		t.Errorf("got %+v, want Slice(start=0, end=nil, step=2)", sliceSel)
	}
	if sliceSel.Start == nil || *sliceSel.Start != 0 {
		t.Errorf("got start %v, want 0", sliceSel.Start)
	}
}

func TestCompileSliceZeroStepRejected(t *testing.T) {
	query := cborval.Array(
		cborval.Text("$"),
		cborval.Map(cborval.MapEntry{
			Key:   cborval.Text(":"),
			Value: cborval.Array(cborval.Null(), cborval.Null(), cborval.Int(0)),
		}),
	)
	_, err := cborpath.Compile(query)
	if !errors.Is(err, cborpath.ErrBadSliceStep) {
		t.Fatalf("got error %v, want ErrBadSliceStep", err)
	}
}

func TestCompileFilterComparison(t *testing.T) {
	query := cborval.Array(
		cborval.Text("$"),
		cborval.Text("book"),
		cborval.Map(cborval.MapEntry{
			Key: cborval.Text("?"),
			Value: cborval.Map(cborval.MapEntry{
				Key: cborval.Text("<"),
				Value: cborval.Array(
					cborval.Array(cborval.Text("@"), cborval.Text("price")),
					cborval.Int(10),
				),
			}),
		}),
	)
	p, err := cborpath.Compile(query)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	filterSel := p.Segments[1].Selectors[0]
	if filterSel.Kind != cborpath.SelFilter {
		t.Fatalf("got %+v, want a filter selector", filterSel)
	}
	if filterSel.Filter.Kind != cborpath.BEComparison || filterSel.Filter.Op != cborpath.OpLt {
		t.Errorf("got %+v, want a < comparison", filterSel.Filter)
	}
}

func TestCompileUnknownSelectorKeyRejected(t *testing.T) {
	query := cborval.Array(
		cborval.Text("$"),
		cborval.Map(cborval.MapEntry{Key: cborval.Text("?!"), Value: cborval.Int(1)}),
	)
	_, err := cborpath.Compile(query)
	if !errors.Is(err, cborpath.ErrBadSelector) {
		t.Fatalf("got error %v, want ErrBadSelector", err)
	}
}

func TestCompileRootMustBeDollarOrAt(t *testing.T) {
	query := cborval.Array(cborval.Text("%"))
	_, err := cborpath.Compile(query)
	if !errors.Is(err, cborpath.ErrUnexpectedRoot) {
		t.Fatalf("got error %v, want ErrUnexpectedRoot", err)
	}
}

func TestCompileEmptyPathRejected(t *testing.T) {
	_, err := cborpath.Compile(cborval.Array())
	if !errors.Is(err, cborpath.ErrEmptyPath) {
		t.Fatalf("got error %v, want ErrEmptyPath", err)
	}
}

func TestCompileNonArrayRejected(t *testing.T) {
	_, err := cborpath.Compile(cborval.Text("$.store"))
	if !errors.Is(err, cborpath.ErrUnexpectedRoot) {
		t.Fatalf("got error %v, want ErrUnexpectedRoot", err)
	}
}

func TestCompileNonSingularPathInComparable(t *testing.T) {
	query := cborval.Array(
		cborval.Text("$"),
		cborval.Map(cborval.MapEntry{
			Key: cborval.Text("?"),
			Value: cborval.Map(cborval.MapEntry{
				Key: cborval.Text("=="),
				Value: cborval.Array(
					cborval.Array(cborval.Text("@"), cborval.Text("*")),
					cborval.Int(1),
				),
			}),
		}),
	)
	_, err := cborpath.Compile(query)
	if !errors.Is(err, cborpath.ErrNonSingularPath) {
		t.Fatalf("got error %v, want ErrNonSingularPath", err)
	}
}

func TestCompileMatchArity(t *testing.T) {
	badArity := cborval.Array(
		cborval.Text("$"),
		cborval.Map(cborval.MapEntry{
			Key: cborval.Text("?"),
			Value: cborval.Map(cborval.MapEntry{
				Key:   cborval.Text("match"),
				Value: cborval.Array(cborval.Array(cborval.Text("@"))),
			}),
		}),
	)
	_, err := cborpath.Compile(badArity)
	if !errors.Is(err, cborpath.ErrBadFunctionArity) {
		t.Fatalf("got error %v, want ErrBadFunctionArity", err)
	}
}
