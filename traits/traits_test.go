// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package traits_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phycomp/traits"
)

func TestTable(t *testing.T) {
	tb := newTable()

	testTable(t, "table", tb)
}

func TestTableTSV(t *testing.T) {
	tb := newTable()

	var w bytes.Buffer
	if err := tb.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	r := strings.NewReader(w.String())
	nt, err := traits.ReadTSV(r)
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}

	testTable(t, "tsv", nt)
}

func TestMatchTips(t *testing.T) {
	tb := traits.NewTable("size")
	tb.Add("c", []float64{3})
	tb.Add("a", []float64{1})
	tb.Add("b", []float64{2})

	tips := []string{"a", "b", "c"}
	mt, err := tb.MatchTips(tips)
	if err != nil {
		t.Fatalf("matchTips: unexpected error: %v", err)
	}

	want := []string{"A", "B", "C"}
	if g := mt.Taxa(); !reflect.DeepEqual(g, want) {
		t.Errorf("matchTips: taxa: got %v, want %v", g, want)
	}
	vals, err := mt.Column("size")
	if err != nil {
		t.Fatalf("matchTips: column: unexpected error: %v", err)
	}
	if wv := []float64{1, 2, 3}; !reflect.DeepEqual(vals, wv) {
		t.Errorf("matchTips: values: got %v, want %v", vals, wv)
	}

	// the source table must be untouched
	if g := tb.Taxa(); !reflect.DeepEqual(g, []string{"C", "A", "B"}) {
		t.Errorf("matchTips: source table modified: got %v", g)
	}

	// matching an already ordered table
	// returns an equal table
	st, err := mt.MatchTips(tips)
	if err != nil {
		t.Fatalf("matchTips: unexpected error: %v", err)
	}
	if g := st.Taxa(); !reflect.DeepEqual(g, mt.Taxa()) {
		t.Errorf("matchTips: not idempotent: got %v, want %v", g, mt.Taxa())
	}
}

func TestMatchTipsError(t *testing.T) {
	tb := traits.NewTable("size")
	tb.Add("c", []float64{3})
	tb.Add("a", []float64{1})

	if _, err := tb.MatchTips([]string{"a", "b", "c"}); !errors.Is(err, traits.ErrNoMatch) {
		t.Errorf("matchTips: got error %v, want %v", err, traits.ErrNoMatch)
	}
	if _, err := tb.MatchTips([]string{"a", "a", "c"}); !errors.Is(err, traits.ErrRepeated) {
		t.Errorf("matchTips: got error %v, want %v", err, traits.ErrRepeated)
	}
}

func TestDiscretize(t *testing.T) {
	tb := traits.NewTable("size")
	taxa := []string{"a", "b", "c", "d", "e"}
	vals := []float64{1, 2, 3, 4, 5}
	for i, tax := range taxa {
		if err := tb.Add(tax, []float64{vals[i]}); err != nil {
			t.Fatalf("unable to add taxon %q: %v", tax, err)
		}
	}

	st, err := tb.Discretize("size")
	if err != nil {
		t.Fatalf("discretize: unexpected error: %v", err)
	}

	// median is 3:
	// values under the median are state 0,
	// values at or over the median are state 1.
	want := []int{0, 0, 1, 1, 1}
	if g := st.Codes(); !reflect.DeepEqual(g, want) {
		t.Errorf("discretize: got %v, want %v", g, want)
	}
	if g := st.Observed(); !reflect.DeepEqual(g, []int{0, 1}) {
		t.Errorf("discretize: observed states: got %v, want %v", g, []int{0, 1})
	}

	// state 0 is reserved for unscored taxa,
	// remap it before model fitting
	rm := st.Remap(0, 2)
	wantRemap := []int{2, 2, 1, 1, 1}
	if g := rm.Codes(); !reflect.DeepEqual(g, wantRemap) {
		t.Errorf("remap: got %v, want %v", g, wantRemap)
	}
	if g := st.Codes(); !reflect.DeepEqual(g, want) {
		t.Errorf("remap: source states modified: got %v", g)
	}
}

func TestDiscretizeTies(t *testing.T) {
	tb := traits.NewTable("size")
	taxa := []string{"a", "b", "c", "d"}
	vals := []float64{1, 3, 3, 5}
	for i, tax := range taxa {
		tb.Add(tax, []float64{vals[i]})
	}

	st, err := tb.Discretize("size")
	if err != nil {
		t.Fatalf("discretize: unexpected error: %v", err)
	}

	// ties at the median go to the upper state,
	// so groups can be of unequal size
	want := []int{0, 1, 1, 1}
	if g := st.Codes(); !reflect.DeepEqual(g, want) {
		t.Errorf("discretize: got %v, want %v", g, want)
	}
}

func TestDiscretizeDegenerate(t *testing.T) {
	tb := traits.NewTable("size")
	for _, tax := range []string{"a", "b", "c"} {
		tb.Add(tax, []float64{1})
	}

	if _, err := tb.Discretize("size"); !errors.Is(err, traits.ErrDegenerate) {
		t.Errorf("discretize: got error %v, want %v", err, traits.ErrDegenerate)
	}

	empty := traits.NewTable("size")
	if _, err := empty.Discretize("size"); !errors.Is(err, traits.ErrDegenerate) {
		t.Errorf("discretize: got error %v, want %v", err, traits.ErrDegenerate)
	}
}

func TestStatesTSV(t *testing.T) {
	tb := newTable()
	st, err := tb.Discretize("body mass")
	if err != nil {
		t.Fatalf("discretize: unexpected error: %v", err)
	}
	st = st.Remap(0, 2)

	var w bytes.Buffer
	if err := st.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	ns, err := traits.ReadStatesTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}

	if g := ns.Trait(); g != "body mass" {
		t.Errorf("tsv: trait: got %q, want %q", g, "body mass")
	}
	if g := ns.Taxa(); !reflect.DeepEqual(g, st.Taxa()) {
		t.Errorf("tsv: taxa: got %v, want %v", g, st.Taxa())
	}
	if g := ns.Codes(); !reflect.DeepEqual(g, st.Codes()) {
		t.Errorf("tsv: states: got %v, want %v", g, st.Codes())
	}
}

func newTable() *traits.Table {
	tb := traits.NewTable("body mass", "brain volume")

	tb.Add("Homo sapiens", []float64{62, 1350})
	tb.Add("Pan troglodytes", []float64{45, 395})
	tb.Add("Gorilla gorilla", []float64{105, 465})
	tb.Add("Pongo pygmaeus", []float64{57, 397})
	return tb
}

func testTable(t testing.TB, name string, tb *traits.Table) {
	t.Helper()

	taxa := []string{"Homo sapiens", "Pan troglodytes", "Gorilla gorilla", "Pongo pygmaeus"}
	if g := tb.Taxa(); !reflect.DeepEqual(g, taxa) {
		t.Errorf("%s: taxa: got %v, want %v", name, g, taxa)
	}

	cols := []string{"body mass", "brain volume"}
	if g := tb.Columns(); !reflect.DeepEqual(g, cols) {
		t.Errorf("%s: columns: got %v, want %v", name, g, cols)
	}

	mass := map[string]float64{
		"Homo sapiens":    62,
		"Pan troglodytes": 45,
		"Gorilla gorilla": 105,
		"Pongo pygmaeus":  57,
	}
	for tax, w := range mass {
		g, err := tb.Value(tax, "body mass")
		if err != nil {
			t.Fatalf("%s: value for %q: unexpected error: %v", name, tax, err)
		}
		if g != w {
			t.Errorf("%s: value for %q: got %v, want %v", name, tax, g, w)
		}
	}
}
