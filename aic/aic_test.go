// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package aic_test

import (
	"math"
	"testing"

	"github.com/js-arias/phycomp/aic"
)

func TestAIC(t *testing.T) {
	if g := aic.AIC(-10, 2); g != 24 {
		t.Errorf("aic: got %v, want %v", g, 24.0)
	}

	g, err := aic.AICc(-10, 2, 10)
	if err != nil {
		t.Fatalf("aicc: unexpected error: %v", err)
	}
	// aic + 2k(k+1)/(n-k-1) = 24 + 12/7
	want := 24 + 12.0/7
	if math.Abs(g-want) > 1e-10 {
		t.Errorf("aicc: got %v, want %v", g, want)
	}

	if _, err := aic.AICc(-10, 2, 3); err == nil {
		t.Errorf("aicc: expecting error for small sample")
	}
}

func TestWeights(t *testing.T) {
	scores := []float64{24, 26, 30}
	w := aic.Weights(scores)

	var sum float64
	for _, v := range w {
		sum += v
	}
	if math.Abs(sum-1) > 1e-10 {
		t.Errorf("weights: sum: got %v, want 1", sum)
	}
	if !(w[0] > w[1] && w[1] > w[2]) {
		t.Errorf("weights: not ordered with scores: %v", w)
	}

	// delta of 2 units: relative weight is exp(-1)
	if r := w[1] / w[0]; math.Abs(r-math.Exp(-1)) > 1e-10 {
		t.Errorf("weights: ratio: got %v, want %v", r, math.Exp(-1))
	}
}
