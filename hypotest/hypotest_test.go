// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest_test

import (
	"math"
	"testing"

	"github.com/js-arias/phycomp/hypotest"
)

func TestOneSampleTTest(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	r, err := hypotest.OneSampleTTest(x, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// mean 3, variance 2.5,
	// t = 3 / sqrt(2.5/5)
	want := 3 / math.Sqrt(0.5)
	if math.Abs(r.T-want) > 1e-10 {
		t.Errorf("t: got %v, want %v", r.T, want)
	}
	if r.DF != 4 {
		t.Errorf("df: got %v, want 4", r.DF)
	}
	if r.P < 0.01 || r.P > 0.02 {
		t.Errorf("p: got %v, want about 0.013", r.P)
	}

	if _, err := hypotest.OneSampleTTest([]float64{1}, 0); err == nil {
		t.Errorf("expecting error for a single observation")
	}
	if _, err := hypotest.OneSampleTTest([]float64{2, 2, 2}, 0); err == nil {
		t.Errorf("expecting error for zero variance")
	}
}

func TestTwoSampleTTest(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 4, 5, 6, 7}

	pooled, err := hypotest.TwoSampleTTest(x, y, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// pooled variance 2.5,
	// t = -2 / sqrt(2.5 * 2/5) = -2
	if math.Abs(pooled.T+2) > 1e-10 {
		t.Errorf("pooled t: got %v, want -2", pooled.T)
	}
	if pooled.DF != 8 {
		t.Errorf("pooled df: got %v, want 8", pooled.DF)
	}
	if pooled.P < 0.07 || pooled.P > 0.09 {
		t.Errorf("pooled p: got %v, want about 0.08", pooled.P)
	}

	// with equal variances and sizes
	// Welch reduces to the pooled test
	welch, err := hypotest.TwoSampleTTest(x, y, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(welch.T-pooled.T) > 1e-10 {
		t.Errorf("welch t: got %v, want %v", welch.T, pooled.T)
	}
	if math.Abs(welch.DF-8) > 1e-10 {
		t.Errorf("welch df: got %v, want 8", welch.DF)
	}
}

func TestPairedTTest(t *testing.T) {
	x := []float64{2, 4, 6, 2, 6}
	y := []float64{1, 2, 3, 1, 3}

	r, err := hypotest.PairedTTest(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// differences 1, 2, 3, 1, 3:
	// mean 2, variance 1,
	// t = 2 / sqrt(1/5)
	want := 2 * math.Sqrt(5)
	if math.Abs(r.T-want) > 1e-10 {
		t.Errorf("t: got %v, want %v", r.T, want)
	}
	if r.DF != 4 {
		t.Errorf("df: got %v, want 4", r.DF)
	}

	if _, err := hypotest.PairedTTest(x, []float64{1, 2}); err == nil {
		t.Errorf("expecting error for unpaired samples")
	}
}

func TestRankSum(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{4, 5, 6}

	r, err := hypotest.RankSum(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// all x ranks below all y ranks: U = 0
	if r.Statistic != 0 {
		t.Errorf("u: got %v, want 0", r.Statistic)
	}

	// z = (0 - 4.5 + 0.5) / sqrt(5.25)
	want := -4 / math.Sqrt(5.25)
	if math.Abs(r.Z-want) > 1e-10 {
		t.Errorf("z: got %v, want %v", r.Z, want)
	}
	if r.P < 0.07 || r.P > 0.09 {
		t.Errorf("p: got %v, want about 0.08", r.P)
	}

	if _, err := hypotest.RankSum([]float64{1, 1}, []float64{1, 1}); err == nil {
		t.Errorf("expecting error for fully tied data")
	}
}

func TestSignedRank(t *testing.T) {
	x := []float64{2, 4, 6, 0, 10}
	y := []float64{1, 2, 3, 4, 5}

	r, err := hypotest.SignedRank(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// differences 1, 2, 3, -4, 5:
	// V = 1 + 2 + 3 + 5 = 11
	if r.Statistic != 11 {
		t.Errorf("v: got %v, want 11", r.Statistic)
	}

	// z = (11 - 7.5 - 0.5) / sqrt(13.75)
	want := 3 / math.Sqrt(13.75)
	if math.Abs(r.Z-want) > 1e-10 {
		t.Errorf("z: got %v, want %v", r.Z, want)
	}
	if r.P < 0.40 || r.P > 0.44 {
		t.Errorf("p: got %v, want about 0.42", r.P)
	}

	// zero differences are discarded
	if _, err := hypotest.SignedRank([]float64{1, 2}, []float64{1, 2}); err == nil {
		t.Errorf("expecting error when all differences are zero")
	}
}

func TestOneWayANOVA(t *testing.T) {
	groups := [][]float64{
		{1, 2, 3},
		{2, 3, 4},
		{6, 7, 8},
	}

	r, err := hypotest.OneWayANOVA(groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// group means 2, 3, 7, grand mean 4:
	// ssb = 3*(4+1+9) = 42, ssw = 6,
	// F = (42/2) / (6/6) = 21
	if math.Abs(r.F-21) > 1e-10 {
		t.Errorf("f: got %v, want 21", r.F)
	}
	if r.DFB != 2 || r.DFW != 6 {
		t.Errorf("df: got %d, %d, want 2, 6", r.DFB, r.DFW)
	}

	// for F(2, 6) the upper tail is (1 + 2F/6)^-3
	want := 1.0 / 512
	if math.Abs(r.P-want) > 1e-6 {
		t.Errorf("p: got %v, want %v", r.P, want)
	}

	if _, err := hypotest.OneWayANOVA([][]float64{{1, 2}}); err == nil {
		t.Errorf("expecting error for a single group")
	}
	if _, err := hypotest.OneWayANOVA([][]float64{{1, 1}, {2, 2}}); err == nil {
		t.Errorf("expecting error for zero variance within groups")
	}
}

func TestKruskalWallis(t *testing.T) {
	groups := [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}

	r, err := hypotest.KruskalWallis(groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// rank sums 6, 15, 24:
	// H = 12/90 * (12 + 75 + 192) - 30 = 7.2
	if math.Abs(r.H-7.2) > 1e-10 {
		t.Errorf("h: got %v, want 7.2", r.H)
	}
	if r.DF != 2 {
		t.Errorf("df: got %d, want 2", r.DF)
	}

	// chi-square upper tail with 2 df is exp(-H/2)
	want := math.Exp(-3.6)
	if math.Abs(r.P-want) > 1e-6 {
		t.Errorf("p: got %v, want %v", r.P, want)
	}
}

func TestChiSquareGOF(t *testing.T) {
	r, err := hypotest.ChiSquareGOF([]float64{10, 20, 30}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// uniform expectation 20 per class:
	// X2 = (100 + 0 + 100) / 20 = 10
	if math.Abs(r.X2-10) > 1e-10 {
		t.Errorf("x2: got %v, want 10", r.X2)
	}
	if r.DF != 2 {
		t.Errorf("df: got %d, want 2", r.DF)
	}
	want := math.Exp(-5)
	if math.Abs(r.P-want) > 1e-6 {
		t.Errorf("p: got %v, want %v", r.P, want)
	}

	// expected counts are rescaled,
	// so proportional expectations give zero
	r, err = hypotest.ChiSquareGOF([]float64{10, 20, 30}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.X2 != 0 {
		t.Errorf("x2: got %v, want 0", r.X2)
	}
}

func TestChiSquareIndependence(t *testing.T) {
	// perfectly proportional table
	r, err := hypotest.ChiSquareIndependence([][]float64{
		{10, 20},
		{20, 40},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.X2 != 0 {
		t.Errorf("x2: got %v, want 0", r.X2)
	}
	if r.DF != 1 {
		t.Errorf("df: got %d, want 1", r.DF)
	}
	if math.Abs(r.P-1) > 1e-10 {
		t.Errorf("p: got %v, want 1", r.P)
	}

	// strongly associated table
	r, err = hypotest.ChiSquareIndependence([][]float64{
		{30, 5},
		{5, 30},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.P > 0.001 {
		t.Errorf("p: got %v, want < 0.001", r.P)
	}

	if _, err := hypotest.ChiSquareIndependence([][]float64{{1, 2}}); err == nil {
		t.Errorf("expecting error for a single row")
	}
}

func TestLinearModel(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{1, 2, 3, 4, 6}

	m, err := hypotest.LinearModel(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// sxy = 12, sxx = 10:
	// slope 1.2, intercept -0.4
	if math.Abs(m.Slope-1.2) > 1e-10 {
		t.Errorf("slope: got %v, want 1.2", m.Slope)
	}
	if math.Abs(m.Intercept+0.4) > 1e-10 {
		t.Errorf("intercept: got %v, want -0.4", m.Intercept)
	}

	// rss = 0.4, tss = 14.8
	if g, w := m.R2, 1-0.4/14.8; math.Abs(g-w) > 1e-10 {
		t.Errorf("r2: got %v, want %v", g, w)
	}
	if g, w := m.SlopeSE, math.Sqrt(0.4/3/10); math.Abs(g-w) > 1e-10 {
		t.Errorf("slope se: got %v, want %v", g, w)
	}
	if math.Abs(m.F-108) > 1e-8 {
		t.Errorf("f: got %v, want 108", m.F)
	}
	if m.DF != 3 {
		t.Errorf("df: got %d, want 3", m.DF)
	}
	if m.P > 0.01 {
		t.Errorf("p: got %v, want < 0.01", m.P)
	}

	if g, w := m.Predict(10), 11.6; math.Abs(g-w) > 1e-10 {
		t.Errorf("prediction: got %v, want %v", g, w)
	}

	if _, err := hypotest.LinearModel([]float64{1, 1, 1}, []float64{1, 2, 3}); err == nil {
		t.Errorf("expecting error for a constant predictor")
	}
}
