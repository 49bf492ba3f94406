// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package continuous_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/js-arias/phycomp/infer/continuous"
	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/traits"
	"github.com/js-arias/timetree"
)

const treeData = "((A:1.000000,B:1.000000):1.000000,C:2.000000);"

var obs = map[string]float64{
	"A": 1,
	"B": 2,
	"C": 4,
}

func TestFitBM(t *testing.T) {
	tr := readTree(t, treeData)

	f, err := continuous.FitBM(tr, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// hand calculated GLS estimates:
	// V = [[2,1,0],[1,2,0],[0,0,2]]
	// root = 18/7, q = 16/7, sigma2 = 16/21
	if g, w := f.Root, 18.0/7; math.Abs(g-w) > 1e-6 {
		t.Errorf("bm: root: got %v, want %v", g, w)
	}
	if g, w := f.Sigma2, 16.0/21; math.Abs(g-w) > 1e-6 {
		t.Errorf("bm: sigma2: got %v, want %v", g, w)
	}

	// logLike = -0.5 (n log(2 pi sigma2) + log det V + n)
	want := -0.5 * (3*math.Log(2*math.Pi*16.0/21) + math.Log(6) + 3)
	if math.Abs(f.LogLike-want) > 1e-6 {
		t.Errorf("bm: logLike: got %v, want %v", f.LogLike, want)
	}

	if f.K != 2 {
		t.Errorf("bm: parameters: got %d, want 2", f.K)
	}
	if f.N != 3 {
		t.Errorf("bm: terminals: got %d, want 3", f.N)
	}
	if g, w := f.AIC(), -2*f.LogLike+4; math.Abs(g-w) > 1e-10 {
		t.Errorf("bm: aic: got %v, want %v", g, w)
	}
}

func TestFitOU(t *testing.T) {
	tr := readTree(t, treeData)

	bm, err := continuous.FitBM(tr, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ou, err := continuous.FitOU(tr, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// BM is nested in OU (alpha = 0),
	// so the OU fit can not be worse
	if ou.LogLike < bm.LogLike-1e-4 {
		t.Errorf("ou: logLike %v worse than bm %v", ou.LogLike, bm.LogLike)
	}
	if ou.Param < 0 {
		t.Errorf("ou: negative alpha: %v", ou.Param)
	}
	if ou.K != 3 {
		t.Errorf("ou: parameters: got %d, want 3", ou.K)
	}
}

func TestFitEB(t *testing.T) {
	tr := readTree(t, treeData)

	bm, err := continuous.FitBM(tr, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eb, err := continuous.FitEB(tr, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// BM is nested in EB (r = 0)
	if eb.LogLike < bm.LogLike-1e-4 {
		t.Errorf("eb: logLike %v worse than bm %v", eb.LogLike, bm.LogLike)
	}
	if eb.Param > 0 {
		t.Errorf("eb: positive rate parameter: %v", eb.Param)
	}
}

func TestFitNoMatch(t *testing.T) {
	tr := readTree(t, treeData)

	bad := map[string]float64{
		"A": 1,
		"B": 2,
	}
	if _, err := continuous.FitBM(tr, bad); !errors.Is(err, traits.ErrNoMatch) {
		t.Errorf("got error %v, want %v", err, traits.ErrNoMatch)
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
