// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// A KruskalTest is the result
// of a Kruskal-Wallis rank test.
type KruskalTest struct {
	// Value of the H statistic,
	// corrected for ties
	H float64

	// Degrees of freedom
	// of the chi-square approximation
	DF int

	// P-value
	P float64
}

// KruskalWallis tests whether two or more groups
// come from the same distribution,
// using ranks,
// with the chi-square approximation
// of the H statistic.
func KruskalWallis(groups [][]float64) (*KruskalTest, error) {
	if len(groups) < 2 {
		return nil, fmt.Errorf("kruskal-wallis: got %d groups, want at least 2", len(groups))
	}

	var all []float64
	for i, g := range groups {
		if len(g) < 1 {
			return nil, fmt.Errorf("kruskal-wallis: group %d: empty group", i)
		}
		all = append(all, g...)
	}
	n := float64(len(all))
	if n < 3 {
		return nil, errSmall("kruskal-wallis", len(all), 3)
	}

	ranks, ties := midRanks(all)

	var h float64
	off := 0
	for _, g := range groups {
		var sum float64
		for i := range g {
			sum += ranks[off+i]
		}
		h += sum * sum / float64(len(g))
		off += len(g)
	}
	h = 12/(n*(n+1))*h - 3*(n+1)

	// tie correction
	c := 1 - ties/(n*n*n-n)
	if c == 0 {
		return nil, fmt.Errorf("kruskal-wallis: zero variance (all values tied)")
	}
	h /= c

	df := len(groups) - 1
	dist := distuv.ChiSquared{K: float64(df)}
	return &KruskalTest{
		H:  h,
		DF: df,
		P:  1 - dist.CDF(h),
	}, nil
}
