// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest_test

import (
	"math"
	"testing"

	"github.com/js-arias/phycomp/hypotest"
)

func TestShapiroWilkSmall(t *testing.T) {
	// on three values the test is exact:
	// an equidistant sample is perfectly linear
	// on the normal quantiles,
	// so W = 1 and p = 1
	r, err := hypotest.ShapiroWilk([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(r.W-1) > 1e-10 {
		t.Errorf("w: got %v, want 1", r.W)
	}
	if math.Abs(r.P-1) > 1e-10 {
		t.Errorf("p: got %v, want 1", r.P)
	}
}

func TestShapiroWilkNormal(t *testing.T) {
	// normal quantiles are,
	// by construction,
	// as normal as a sample can be
	x := []float64{-1.28, -0.84, -0.52, -0.25, 0, 0.25, 0.52, 0.84, 1.28}

	r, err := hypotest.ShapiroWilk(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.W < 0.98 {
		t.Errorf("w: got %v, want close to 1", r.W)
	}
	if r.P < 0.5 {
		t.Errorf("p: got %v, want > 0.5", r.P)
	}
}

func TestShapiroWilkSkewed(t *testing.T) {
	x := []float64{1, 1, 1, 1, 1, 1, 1, 1, 2, 3, 10, 40}

	r, err := hypotest.ShapiroWilk(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.W > 0.8 {
		t.Errorf("w: got %v, want < 0.8", r.W)
	}
	if r.P > 0.01 {
		t.Errorf("p: got %v, want < 0.01", r.P)
	}
}

func TestShapiroWilkErrors(t *testing.T) {
	if _, err := hypotest.ShapiroWilk([]float64{1, 2}); err == nil {
		t.Errorf("expecting error for a sample of two")
	}
	if _, err := hypotest.ShapiroWilk([]float64{5, 5, 5, 5}); err == nil {
		t.Errorf("expecting error for zero variance")
	}
}
