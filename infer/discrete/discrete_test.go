// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package discrete_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/js-arias/phycomp/infer/discrete"
	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/traits"
	"github.com/js-arias/timetree"
)

const cherryData = "(A:1.000000,B:1.000000);"
const treeData = "((A:1.000000,B:1.000000):1.000000,C:2.000000);"

func TestLogLike(t *testing.T) {
	tr := readTree(t, cherryData)
	st := newStates(t, map[string]int{"A": 1, "B": 2})

	// on a two terminal tree with different states
	// and equal rates q,
	// the likelihood is
	// 0.5 * [P00(1)*P01(1) + P10(1)*P11(1)]
	// = (1 - exp(-4q)) / 4
	q := 0.5
	got, err := discrete.LogLike(tr, st, q, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Log((1 - math.Exp(-4*q)) / 4)
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("er logLike: got %v, want %v", got, want)
	}

	// with different rates
	// (q01 = 0.3, q10 = 0.7, s = 1)
	e := math.Exp(-1)
	p00 := 0.7 + 0.3*e
	p01 := 0.3 * (1 - e)
	p10 := 0.7 * (1 - e)
	p11 := 0.3 + 0.7*e
	want = math.Log(0.5 * (p00*p01 + p10*p11))
	got, err = discrete.LogLike(tr, st, 0.3, 0.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("ard logLike: got %v, want %v", got, want)
	}
}

func TestFitER(t *testing.T) {
	tr := readTree(t, treeData)
	st := newStates(t, map[string]int{"A": 1, "B": 1, "C": 2})

	f, err := discrete.FitER(tr, st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.States != [2]int{1, 2} {
		t.Errorf("states: got %v, want [1 2]", f.States)
	}
	if f.Rates[0] != f.Rates[1] {
		t.Errorf("er rates must be equal: got %v", f.Rates)
	}
	if f.Rates[0] <= 0 {
		t.Errorf("rate: got %v, want > 0", f.Rates[0])
	}
	if f.K != 1 {
		t.Errorf("parameters: got %d, want 1", f.K)
	}
	if f.N != 3 {
		t.Errorf("terminals: got %d, want 3", f.N)
	}

	// the fit can not be worse
	// than any fixed rate evaluation
	for _, q := range []float64{0.1, 0.5, 1, 2} {
		like, err := discrete.LogLike(tr, st, q, q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.LogLike < like-1e-6 {
			t.Errorf("logLike %v worse than at rate %v: %v", f.LogLike, q, like)
		}
	}

	if sum := f.RootProb[0] + f.RootProb[1]; math.Abs(sum-1) > 1e-10 {
		t.Errorf("root probabilities sum: got %v, want 1", sum)
	}
	if g, w := f.AIC(), -2*f.LogLike+2; math.Abs(g-w) > 1e-10 {
		t.Errorf("aic: got %v, want %v", g, w)
	}
}

func TestFitARD(t *testing.T) {
	tr := readTree(t, treeData)
	st := newStates(t, map[string]int{"A": 1, "B": 1, "C": 2})

	er, err := discrete.FitER(tr, st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ard, err := discrete.FitARD(tr, st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ER is nested in ARD
	// (both rates equal),
	// so the ARD fit can not be worse
	if ard.LogLike < er.LogLike-1e-4 {
		t.Errorf("ard logLike %v worse than er %v", ard.LogLike, er.LogLike)
	}
	if ard.K != 2 {
		t.Errorf("parameters: got %d, want 2", ard.K)
	}
}

func TestUnscored(t *testing.T) {
	tr := readTree(t, treeData)
	st := newStates(t, map[string]int{"A": 1, "B": 2, "C": discrete.Unscored})

	f, err := discrete.FitER(tr, st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.N != 2 {
		t.Errorf("scored terminals: got %d, want 2", f.N)
	}
}

func TestSingleState(t *testing.T) {
	tr := readTree(t, treeData)
	st := newStates(t, map[string]int{"A": 1, "B": 1, "C": 1})

	if _, err := discrete.FitER(tr, st); !errors.Is(err, discrete.ErrSingleState) {
		t.Errorf("got error %v, want %v", err, discrete.ErrSingleState)
	}
}

func TestNoMatch(t *testing.T) {
	tr := readTree(t, treeData)
	st := newStates(t, map[string]int{"A": 1, "B": 2})

	if _, err := discrete.FitER(tr, st); !errors.Is(err, traits.ErrNoMatch) {
		t.Errorf("got error %v, want %v", err, traits.ErrNoMatch)
	}
}

func newStates(t testing.TB, codes map[string]int) *traits.States {
	t.Helper()

	st := traits.NewStates("habit")
	for tax, c := range codes {
		st.Add(tax, c)
	}
	return st
}

func readTree(t testing.TB, data string) *timetree.Tree {
	t.Helper()

	c, err := newick.Read(strings.NewReader(data), "test", 0)
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	names := c.Names()
	if len(names) == 0 {
		t.Fatalf("empty tree collection")
	}
	return c.Tree(names[0])
}
