// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// A ManovaTest is the result
// of a one way multivariate analysis of variance.
type ManovaTest struct {
	// Wilks' lambda statistic
	Lambda float64

	// Rao's F approximation of lambda
	F float64

	// Degrees of freedom of the F approximation
	DF1, DF2 float64

	// P-value
	P float64
}

// MANOVA tests whether two or more groups
// of multivariate observations
// have the same mean vector,
// using Wilks' lambda
// with Rao's F approximation.
//
// Each group is a set of observations,
// and each observation a vector
// with the same number of variables.
func MANOVA(groups [][][]float64) (*ManovaTest, error) {
	if len(groups) < 2 {
		return nil, fmt.Errorf("manova: got %d groups, want at least 2", len(groups))
	}
	if len(groups[0]) == 0 || len(groups[0][0]) == 0 {
		return nil, fmt.Errorf("manova: empty group")
	}
	p := len(groups[0][0])

	var n int
	grand := make([]float64, p)
	for gi, g := range groups {
		if len(g) < 2 {
			return nil, fmt.Errorf("manova: group %d: %v", gi, errSmall("group", len(g), 2))
		}
		for _, obs := range g {
			if len(obs) != p {
				return nil, fmt.Errorf("manova: group %d: got %d variables, want %d", gi, len(obs), p)
			}
			for j, v := range obs {
				grand[j] += v
			}
			n++
		}
	}
	if n <= p+len(groups) {
		return nil, fmt.Errorf("manova: got %d observations, want more than %d", n, p+len(groups))
	}
	for j := range grand {
		grand[j] /= float64(n)
	}

	// between groups (hypothesis)
	// and within groups (error)
	// cross product matrices
	h := mat.NewSymDense(p, nil)
	e := mat.NewSymDense(p, nil)
	for _, g := range groups {
		m := make([]float64, p)
		for _, obs := range g {
			for j, v := range obs {
				m[j] += v
			}
		}
		for j := range m {
			m[j] /= float64(len(g))
		}

		for j := 0; j < p; j++ {
			for l := j; l < p; l++ {
				h.SetSym(j, l, h.At(j, l)+float64(len(g))*(m[j]-grand[j])*(m[l]-grand[l]))
			}
		}
		for _, obs := range g {
			for j := 0; j < p; j++ {
				for l := j; l < p; l++ {
					e.SetSym(j, l, e.At(j, l)+(obs[j]-m[j])*(obs[l]-m[l]))
				}
			}
		}
	}

	eh := mat.NewSymDense(p, nil)
	eh.AddSym(e, h)

	var cholE, cholEH mat.Cholesky
	if ok := cholE.Factorize(e); !ok {
		return nil, fmt.Errorf("manova: singular error matrix")
	}
	if ok := cholEH.Factorize(eh); !ok {
		return nil, fmt.Errorf("manova: singular total matrix")
	}
	lambda := math.Exp(cholE.LogDet() - cholEH.LogDet())

	// Rao's F approximation
	dfh := float64(len(groups) - 1)
	fp := float64(p)
	m := float64(n) - 1 - (fp+dfh+1)/2
	t := 1.0
	if d := fp*fp + dfh*dfh - 5; d > 0 {
		t = math.Sqrt((fp*fp*dfh*dfh - 4) / d)
	}
	df1 := fp * dfh
	df2 := m*t - (df1-2)/2
	if df2 <= 0 {
		return nil, fmt.Errorf("manova: not enough error degrees of freedom")
	}

	lt := math.Pow(lambda, 1/t)
	f := (1 - lt) / lt * df2 / df1

	dist := distuv.F{D1: df1, D2: df2}
	return &ManovaTest{
		Lambda: lambda,
		F:      f,
		DF1:    df1,
		DF2:    df2,
		P:      1 - dist.CDF(f),
	}, nil
}
