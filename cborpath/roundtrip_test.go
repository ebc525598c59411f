package cborpath_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cborpath/cborpath/cborpath"
	"github.com/cborpath/cborpath/cborval"
)

// TestRoundTripBuilderEncodeCompile checks that compiling the CBOR
// encoding of a builder-constructed Path reproduces a Path that
// evaluates identically, for a representative set of queries.
func TestRoundTripBuilderEncodeCompile(t *testing.T) {
	priceUnderTen := cborpath.Lt(
		cborpath.SingPath(cborpath.RelPath().Key(cborval.Text("price")).Build()),
		cborpath.Val(cborval.Float(10)),
	)
	cases := []*cborpath.Path{
		cborpath.AbsPath().Key(cborval.Text("store")).Key(cborval.Text("book")).Build(),
		cborpath.AbsPath().Descendant(cborpath.KeySelector(cborval.Text("author"))).Build(),
		cborpath.AbsPath().Key(cborval.Text("store")).Wildcard().Build(),
		cborpath.AbsPath().Key(cborval.Text("book")).Index(-1).Build(),
		cborpath.AbsPath().Key(cborval.Text("book")).Slice(intPtr(0), nil, 2).Build(),
		cborpath.AbsPath().Key(cborval.Text("book")).Filter(priceUnderTen).Build(),
		cborpath.AbsPath().Key(cborval.Text("book")).Child(cborpath.IndexSelector(0), cborpath.IndexSelector(1)).Build(),
	}

	doc := sampleDocument()
	for i, original := range cases {
		encoded := original.Encode()
		recompiled, err := cborpath.Compile(encoded)
		if err != nil {
			t.Fatalf("case %d: Compile(Encode(p)) error: %v", i, err)
		}
		want := original.Evaluate(doc).Values()
		got := recompiled.Evaluate(doc).Values()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("case %d: Compile(Encode(p)) changed evaluation results (-want +got):\n%s", i, diff)
		}
	}
}

func TestRoundTripEncodeCompileEncodeStable(t *testing.T) {
	original := cborpath.AbsPath().
		Descendant(cborpath.KeySelector(cborval.Text("price"))).
		Build()
	encoded1 := original.Encode()
	recompiled, err := cborpath.Compile(encoded1)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	encoded2 := recompiled.Encode()
	if !cborval.Equal(encoded1, encoded2) {
		t.Errorf("re-encoding a recompiled path changed its shape: %+v vs %+v", encoded1, encoded2)
	}
}

func sampleDocument() cborval.Value {
	book := func(title string, price float64) cborval.Value {
		return cborval.Map(
			cborval.MapEntry{Key: cborval.Text("title"), Value: cborval.Text(title)},
			cborval.MapEntry{Key: cborval.Text("author"), Value: cborval.Text("someone")},
			cborval.MapEntry{Key: cborval.Text("price"), Value: cborval.Float(price)},
		)
	}
	books := cborval.Array(
		book("A", 5),
		book("B", 15),
		book("C", 8),
	)
	return cborval.Map(
		cborval.MapEntry{Key: cborval.Text("store"), Value: cborval.Map(
			cborval.MapEntry{Key: cborval.Text("book"), Value: books},
		)},
		cborval.MapEntry{Key: cborval.Text("book"), Value: books},
	)
}
