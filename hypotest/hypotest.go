// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package hypotest implements classical inferential statistics
// used in comparative analyses:
// normality tests,
// t tests,
// rank based tests,
// analysis of variance
// (with post hoc comparisons),
// multivariate analysis of variance,
// linear models,
// and chi-square tests.
//
// All tests return a plain result struct
// with the test statistic,
// the degrees of freedom,
// and a two sided p-value
// (except for the tests
// that are one sided by construction,
// such as the F test of an ANOVA).
// Invalid data
// (samples too small,
// zero variance,
// mismatched dimensions)
// is reported as an error,
// never as a panic.
package hypotest

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MinSample is the error message prefix
// used for samples too small for a given test.
func errSmall(name string, n, min int) error {
	return fmt.Errorf("%s: got %d observations, want at least %d", name, n, min)
}

// MidRanks returns the ranks of a sample
// (ties receive the average of the tied ranks)
// and the tie correction term,
// the sum of t³-t
// over all groups of t tied values.
func midRanks(v []float64) (ranks []float64, ties float64) {
	type indexed struct {
		v float64
		i int
	}
	xs := make([]indexed, len(v))
	for i, x := range v {
		xs[i] = indexed{v: x, i: i}
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i].v < xs[j].v })

	ranks = make([]float64, len(v))
	for i := 0; i < len(xs); {
		j := i
		for j < len(xs) && xs[j].v == xs[i].v {
			j++
		}
		// the mid-rank of the run of ties
		// (ranks are one based)
		r := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[xs[k].i] = r
		}
		if t := float64(j - i); t > 1 {
			ties += t*t*t - t
		}
		i = j
	}
	return ranks, ties
}

// MeanVar returns the mean
// and the sample variance
// of a data set.
func meanVar(x []float64) (mean, variance float64) {
	mean = stat.Mean(x, nil)
	variance = stat.Variance(x, nil)
	return mean, variance
}
