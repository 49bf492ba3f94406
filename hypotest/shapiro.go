// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"
)

// A ShapiroTest is the result
// of a Shapiro-Wilk normality test.
type ShapiroTest struct {
	// Value of the W statistic
	W float64

	// P-value of the null hypothesis
	// that the sample comes
	// from a normal distribution
	P float64
}

// ShapiroWilk tests whether a sample
// comes from a normal distribution,
// using Royston's approximation
// (algorithm AS R94)
// of the Shapiro-Wilk W statistic.
// The sample size must be between 3 and 5000.
func ShapiroWilk(x []float64) (*ShapiroTest, error) {
	n := len(x)
	if n < 3 {
		return nil, errSmall("shapiro-wilk", n, 3)
	}
	if n > 5000 {
		return nil, fmt.Errorf("shapiro-wilk: got %d observations, want at most 5000", n)
	}

	xs := slices.Clone(x)
	slices.Sort(xs)
	if xs[0] == xs[n-1] {
		return nil, fmt.Errorf("shapiro-wilk: zero variance")
	}

	a := shapiroWeights(n)

	m, _ := meanVar(xs)
	var num, den float64
	for i, v := range xs {
		num += a[i] * v
		den += (v - m) * (v - m)
	}
	w := num * num / den
	if w > 1 {
		w = 1
	}

	return &ShapiroTest{
		W: w,
		P: shapiroPValue(w, n),
	}, nil
}

// ShapiroWeights returns the coefficients
// of the linear combination of order statistics
// of the W statistic,
// with Royston's polynomial corrections
// on the extreme coefficients.
func shapiroWeights(n int) []float64 {
	if n == 3 {
		s := math.Sqrt(0.5)
		return []float64{-s, 0, s}
	}

	norm := distuv.UnitNormal

	// expected normal order statistics
	// (Blom approximation)
	m := make([]float64, n)
	var mm float64
	for i := range m {
		m[i] = norm.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		mm += m[i] * m[i]
	}

	u := 1 / math.Sqrt(float64(n))
	sm := math.Sqrt(mm)

	an := m[n-1]/sm + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685+u*(-2.706056)))))

	a := make([]float64, n)
	if n <= 5 {
		phi := (mm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		sp := math.Sqrt(phi)
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / sp
		}
	} else {
		an1 := m[n-2]/sm + u*(0.042981+u*(-0.293762+u*(-1.752461+u*(5.682633+u*(-3.582633)))))
		phi := (mm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		sp := math.Sqrt(phi)
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / sp
		}
		a[n-2] = an1
		a[1] = -an1
	}
	a[n-1] = an
	a[0] = -an
	return a
}

// ShapiroPValue returns the p-value of a W statistic,
// using Royston's normalizing transformations.
func shapiroPValue(w float64, n int) float64 {
	norm := distuv.UnitNormal

	if n == 3 {
		// exact
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		return p
	}

	var z float64
	if n <= 11 {
		fn := float64(n)
		g := -2.273 + 0.459*fn
		mu := 0.5440 + fn*(-0.39978+fn*(0.025054+fn*(-0.0006714)))
		sigma := math.Exp(1.3822 + fn*(-0.77857+fn*(0.062767+fn*(-0.0020322))))
		z = (-math.Log(g-math.Log(1-w)) - mu) / sigma
	} else {
		ln := math.Log(float64(n))
		mu := -1.5861 + ln*(-0.31082+ln*(-0.083751+ln*0.0038915))
		sigma := math.Exp(-0.4803 + ln*(-0.082676+ln*0.0030302))
		z = (math.Log(1-w) - mu) / sigma
	}
	return 1 - norm.CDF(z)
}
