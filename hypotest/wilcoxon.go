// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// A WilcoxonTest is the result
// of a rank based two sample test.
type WilcoxonTest struct {
	// Value of the test statistic:
	// the Mann-Whitney U in a rank sum test,
	// or the positive rank sum V
	// in a signed rank test
	Statistic float64

	// Normal approximation of the statistic,
	// with tie and continuity corrections
	Z float64

	// Two sided p-value
	P float64
}

// RankSum tests whether two independent samples
// come from the same distribution
// (the Wilcoxon-Mann-Whitney test),
// using the normal approximation
// with tie and continuity corrections.
func RankSum(x, y []float64) (*WilcoxonTest, error) {
	if len(x) < 1 {
		return nil, errSmall("rank sum test", len(x), 1)
	}
	if len(y) < 1 {
		return nil, errSmall("rank sum test", len(y), 1)
	}

	all := make([]float64, 0, len(x)+len(y))
	all = append(all, x...)
	all = append(all, y...)
	ranks, ties := midRanks(all)

	var w float64
	for i := range x {
		w += ranks[i]
	}
	nx := float64(len(x))
	ny := float64(len(y))
	n := nx + ny

	// Mann-Whitney U statistic
	u := w - nx*(nx+1)/2

	mean := nx * ny / 2
	variance := nx * ny / 12 * ((n + 1) - ties/(n*(n-1)))
	if variance == 0 {
		return nil, fmt.Errorf("rank sum test: zero variance (all values tied)")
	}

	z := normalApprox(u, mean, variance)
	return &WilcoxonTest{
		Statistic: u,
		Z:         z,
		P:         2 * distuv.UnitNormal.CDF(-math.Abs(z)),
	}, nil
}

// SignedRank tests whether the differences
// between two paired samples
// are symmetric around zero
// (the Wilcoxon signed rank test),
// using the normal approximation
// with tie and continuity corrections.
// Zero differences are discarded.
func SignedRank(x, y []float64) (*WilcoxonTest, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("signed rank test: got %d and %d observations, want paired samples", len(x), len(y))
	}

	var d []float64
	for i := range x {
		if df := x[i] - y[i]; df != 0 {
			d = append(d, df)
		}
	}
	if len(d) < 2 {
		return nil, errSmall("signed rank test", len(d), 2)
	}

	abs := make([]float64, len(d))
	for i, v := range d {
		abs[i] = math.Abs(v)
	}
	ranks, ties := midRanks(abs)

	var v float64
	for i, df := range d {
		if df > 0 {
			v += ranks[i]
		}
	}
	n := float64(len(d))

	mean := n * (n + 1) / 4
	variance := n*(n+1)*(2*n+1)/24 - ties/48
	if variance == 0 {
		return nil, fmt.Errorf("signed rank test: zero variance")
	}

	z := normalApprox(v, mean, variance)
	return &WilcoxonTest{
		Statistic: v,
		Z:         z,
		P:         2 * distuv.UnitNormal.CDF(-math.Abs(z)),
	}, nil
}

// NormalApprox returns the normal approximation
// of a rank statistic,
// with a continuity correction
// towards the mean.
func normalApprox(stat, mean, variance float64) float64 {
	d := stat - mean
	switch {
	case d > 0.5:
		d -= 0.5
	case d < -0.5:
		d += 0.5
	default:
		d = 0
	}
	return d / math.Sqrt(variance)
}
