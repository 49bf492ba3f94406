// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// An LM is a fitted simple linear model,
// a least squares regression
// of a response y
// over a single predictor x.
type LM struct {
	// Estimated coefficients
	Slope, Intercept float64

	// Standard errors of the coefficients
	SlopeSE, InterceptSE float64

	// Two sided p-values
	// of the t tests of each coefficient
	// against zero
	SlopeP, InterceptP float64

	// F statistic of the regression
	// and its p-value
	F, P float64

	// Residual degrees of freedom
	DF int

	// Coefficient of determination
	R2 float64
}

// LinearModel fits a least squares regression
// of y over x.
func LinearModel(x, y []float64) (*LM, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("linear model: got %d and %d observations, want paired samples", len(x), len(y))
	}
	if len(x) < 3 {
		return nil, errSmall("linear model", len(x), 3)
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	mx, _ := meanVar(x)
	my, _ := meanVar(y)

	var sxx, rss, tss float64
	for i := range x {
		sxx += (x[i] - mx) * (x[i] - mx)
		res := y[i] - alpha - beta*x[i]
		rss += res * res
		tss += (y[i] - my) * (y[i] - my)
	}
	if sxx == 0 {
		return nil, fmt.Errorf("linear model: zero variance in the predictor")
	}
	if tss == 0 {
		return nil, fmt.Errorf("linear model: zero variance in the response")
	}

	n := float64(len(x))
	df := len(x) - 2
	s2 := rss / float64(df)

	seb := math.Sqrt(s2 / sxx)
	sea := math.Sqrt(s2 * (1/n + mx*mx/sxx))

	m := &LM{
		Slope:       beta,
		Intercept:   alpha,
		SlopeSE:     seb,
		InterceptSE: sea,
		DF:          df,
		R2:          1 - rss/tss,
	}

	if rss == 0 {
		// an exact fit:
		// the standard errors are zero
		// and the tests are degenerate
		m.SlopeP = 0
		m.InterceptP = 0
		m.F = math.Inf(1)
		m.P = 0
		return m, nil
	}

	m.SlopeP = tPValue(beta/seb, float64(df))
	m.InterceptP = tPValue(alpha/sea, float64(df))

	m.F = (tss - rss) / s2
	dist := distuv.F{D1: 1, D2: float64(df)}
	m.P = 1 - dist.CDF(m.F)
	return m, nil
}

// Predict returns the fitted value
// of the model at x.
func (m *LM) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}
