// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package aic implements the Akaike information criterion,
// its small-sample correction,
// and Akaike weights,
// used to rank competing models
// by their fit-complexity trade-off.
package aic

import (
	"fmt"
	"math"
)

// AIC returns the Akaike information criterion
// for a model with the given log-likelihood
// and k free parameters.
func AIC(logLike float64, k int) float64 {
	return -2*logLike + 2*float64(k)
}

// AICc returns the Akaike information criterion
// corrected for a small sample of size n,
// for a model with the given log-likelihood
// and k free parameters.
// The correction is undefined when n <= k+1.
func AICc(logLike float64, k, n int) (float64, error) {
	if n <= k+1 {
		return 0, fmt.Errorf("aicc: sample size %d too small for %d parameters", n, k)
	}
	c := 2 * float64(k) * float64(k+1) / float64(n-k-1)
	return AIC(logLike, k) + c, nil
}

// Weights returns the Akaike weights
// of a set of models
// from their AIC (or AICc) scores.
// Weights sum to one,
// and each weight is the relative support
// of its model within the compared set.
func Weights(scores []float64) []float64 {
	if len(scores) == 0 {
		return nil
	}

	best := scores[0]
	for _, s := range scores {
		if s < best {
			best = s
		}
	}

	w := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		w[i] = math.Exp(-0.5 * (s - best))
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}
