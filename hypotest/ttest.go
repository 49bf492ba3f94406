// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// A TTest is the result of a t test.
type TTest struct {
	// Value of the t statistic
	T float64

	// Degrees of freedom
	// (fractional under the Welch approximation)
	DF float64

	// Two sided p-value
	P float64

	// Estimated mean,
	// or difference of means
	// in a two sample test
	Mean float64
}

// OneSampleTTest tests whether the mean of a sample
// is equal to a given value mu.
func OneSampleTTest(x []float64, mu float64) (*TTest, error) {
	if len(x) < 2 {
		return nil, errSmall("one sample t test", len(x), 2)
	}
	m, v := meanVar(x)
	if v == 0 {
		return nil, fmt.Errorf("one sample t test: zero variance")
	}

	n := float64(len(x))
	t := (m - mu) / math.Sqrt(v/n)
	df := n - 1
	return &TTest{
		T:    t,
		DF:   df,
		P:    tPValue(t, df),
		Mean: m,
	}, nil
}

// TwoSampleTTest tests whether two independent samples
// have the same mean.
// If equalVar is true
// the variances are pooled;
// otherwise the Welch approximation is used.
func TwoSampleTTest(x, y []float64, equalVar bool) (*TTest, error) {
	if len(x) < 2 {
		return nil, errSmall("two sample t test", len(x), 2)
	}
	if len(y) < 2 {
		return nil, errSmall("two sample t test", len(y), 2)
	}

	mx, vx := meanVar(x)
	my, vy := meanVar(y)
	if vx == 0 && vy == 0 {
		return nil, fmt.Errorf("two sample t test: zero variance")
	}
	nx := float64(len(x))
	ny := float64(len(y))

	var t, df float64
	if equalVar {
		pooled := ((nx-1)*vx + (ny-1)*vy) / (nx + ny - 2)
		t = (mx - my) / math.Sqrt(pooled*(1/nx+1/ny))
		df = nx + ny - 2
	} else {
		se2 := vx/nx + vy/ny
		t = (mx - my) / math.Sqrt(se2)
		df = se2 * se2 / ((vx/nx)*(vx/nx)/(nx-1) + (vy/ny)*(vy/ny)/(ny-1))
	}
	return &TTest{
		T:    t,
		DF:   df,
		P:    tPValue(t, df),
		Mean: mx - my,
	}, nil
}

// PairedTTest tests whether the mean difference
// between two paired samples
// is equal to zero.
func PairedTTest(x, y []float64) (*TTest, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("paired t test: got %d and %d observations, want paired samples", len(x), len(y))
	}
	if len(x) < 2 {
		return nil, errSmall("paired t test", len(x), 2)
	}

	d := make([]float64, len(x))
	for i := range x {
		d[i] = x[i] - y[i]
	}
	r, err := OneSampleTTest(d, 0)
	if err != nil {
		return nil, fmt.Errorf("paired t test: %v", err)
	}
	return r, nil
}

// TPValue returns the two sided p-value
// of a t statistic
// with df degrees of freedom.
func tPValue(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}
