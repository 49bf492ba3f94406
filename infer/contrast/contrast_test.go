// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package contrast_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/js-arias/phycomp/infer/contrast"
	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/traits"
	"github.com/js-arias/timetree"
)

const treeData = "((A:1.000000,B:1.000000):1.000000,C:2.000000);"

func TestContrasts(t *testing.T) {
	tr := readTree(t, treeData)

	obs := map[string]float64{
		"A": 1,
		"B": 2,
		"C": 4,
	}
	p, err := contrast.New(tr, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cs := p.Contrasts()
	if len(cs) != 2 {
		t.Fatalf("contrasts: got %d, want 2", len(cs))
	}

	// contrast signs depend on the children order,
	// so compare absolute values,
	// matching contrasts by their expected variance.
	want := map[float64]float64{
		2.0: 1 / math.Sqrt(2),   // (A,B) node
		3.5: 2.5 / math.Sqrt(3.5), // root
	}
	for _, c := range cs {
		w, ok := want[c.Variance]
		if !ok {
			t.Errorf("contrast at node %d: unexpected variance %v", c.Node, c.Variance)
			continue
		}
		if g := math.Abs(c.Value); math.Abs(g-w) > 1e-10 {
			t.Errorf("contrast at node %d: got %v, want %v", c.Node, g, w)
		}
	}

	// weighted ancestral value at the root
	if g, w := p.Root(), 18.0/7; math.Abs(g-w) > 1e-10 {
		t.Errorf("root value: got %v, want %v", g, w)
	}

	// mean squared standardized contrast
	sigma2 := (0.5 + 2.5*2.5/3.5) / 2
	if g := p.Sigma2(); math.Abs(g-sigma2) > 1e-10 {
		t.Errorf("sigma2: got %v, want %v", g, sigma2)
	}
}

func TestContrastsNoMatch(t *testing.T) {
	tr := readTree(t, treeData)

	obs := map[string]float64{
		"A": 1,
		"B": 2,
	}
	if _, err := contrast.New(tr, obs); !errors.Is(err, traits.ErrNoMatch) {
		t.Errorf("got error %v, want %v", err, traits.ErrNoMatch)
	}
}

func TestRegression(t *testing.T) {
	tr := readTree(t, treeData)

	x := map[string]float64{"A": 1, "B": 2, "C": 4}
	y := map[string]float64{"A": 2, "B": 4, "C": 8}

	px, err := contrast.New(tr, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	py, err := contrast.New(tr, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slope, r2, err := contrast.Regression(px, py)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// y is exactly 2x
	if math.Abs(slope-2) > 1e-10 {
		t.Errorf("slope: got %v, want 2", slope)
	}
	if math.Abs(r2-1) > 1e-10 {
		t.Errorf("r2: got %v, want 1", r2)
	}
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
