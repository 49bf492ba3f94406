// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// A Comparison is a pairwise comparison
// between two groups
// in a Tukey HSD post hoc test.
type Comparison struct {
	// Indices of the compared groups
	A, B int

	// Difference of the group means
	// (mean of A minus mean of B)
	Diff float64

	// Value of the studentized range statistic
	Q float64

	// P-value of the comparison,
	// adjusted for the whole family of comparisons
	P float64

	// True if the p-value
	// is smaller than the test level
	Significant bool
}

// TukeyHSD performs the Tukey honestly significant difference test
// over all pairs of groups,
// at the given test level alpha
// (for example 0.05).
// The p-values use the studentized range distribution
// with the Tukey-Kramer correction
// for unequal group sizes.
func TukeyHSD(groups [][]float64, alpha float64) ([]Comparison, error) {
	if len(groups) < 2 {
		return nil, fmt.Errorf("tukey: got %d groups, want at least 2", len(groups))
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("tukey: invalid test level %g", alpha)
	}

	var n int
	for i, g := range groups {
		if len(g) < 2 {
			return nil, fmt.Errorf("tukey: group %d: %v", i, errSmall("group", len(g), 2))
		}
		n += len(g)
	}

	// mean square within groups
	var ssw float64
	means := make([]float64, len(groups))
	for i, g := range groups {
		m, _ := meanVar(g)
		means[i] = m
		for _, v := range g {
			ssw += (v - m) * (v - m)
		}
	}
	df := n - len(groups)
	if ssw == 0 {
		return nil, fmt.Errorf("tukey: zero variance within groups")
	}
	msw := ssw / float64(df)

	k := len(groups)
	var cs []Comparison
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			diff := means[i] - means[j]
			se := math.Sqrt(msw / 2 * (1/float64(len(groups[i])) + 1/float64(len(groups[j]))))
			q := math.Abs(diff) / se
			p := 1 - studentizedRangeCDF(q, k, df)
			if p < 0 {
				p = 0
			}
			cs = append(cs, Comparison{
				A:           i,
				B:           j,
				Diff:        diff,
				Q:           q,
				P:           p,
				Significant: p < alpha,
			})
		}
	}
	return cs, nil
}

// StudentizedRangeCDF returns the probability
// that the studentized range of k groups,
// with df degrees of freedom for the error variance,
// is smaller than q.
//
// The probability is the double integral
// of the range probability
// conditioned on the scale factor s
// (the square root of a chi-square over its degrees of freedom),
// weighted by the density of s;
// both integrals use Gauss-Legendre quadrature.
func studentizedRangeCDF(q float64, k, df int) float64 {
	if q <= 0 {
		return 0
	}

	nu := float64(df)
	lg, _ := math.Lgamma(nu / 2)

	// density of s = sqrt(chi2/df),
	// in logarithms to avoid overflow
	// at large degrees of freedom
	logDens := func(s float64) float64 {
		return nu/2*math.Log(nu) + (nu-1)*math.Log(s) - nu*s*s/2 + (1-nu/2)*math.Ln2 - lg
	}

	outer := func(s float64) float64 {
		if s <= 0 {
			return 0
		}
		return math.Exp(logDens(s)) * rangeCDF(q*s, k)
	}

	// s concentrates around one,
	// with a heavier tail at small df
	hi := 1 + 14/math.Sqrt(nu)
	p := quad.Fixed(outer, 1e-9, hi, 128, nil, 0)
	if p > 1 {
		p = 1
	}
	return p
}

// RangeCDF returns the probability
// that the range of k standard normal values
// is smaller than r.
func rangeCDF(r float64, k int) float64 {
	if r <= 0 {
		return 0
	}
	norm := distuv.UnitNormal

	inner := func(z float64) float64 {
		p := norm.CDF(z) - norm.CDF(z-r)
		return norm.Prob(z) * math.Pow(p, float64(k-1))
	}
	return float64(k) * quad.Fixed(inner, -8, r+8, 128, nil, 0)
}
