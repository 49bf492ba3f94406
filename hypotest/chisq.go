// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// A ChiSquareTest is the result
// of a chi-square test.
type ChiSquareTest struct {
	// Value of the chi-square statistic
	X2 float64

	// Degrees of freedom
	DF int

	// P-value
	P float64
}

// ChiSquareGOF tests whether a set of observed counts
// follows a set of expected counts
// (a goodness of fit test).
// If expected is nil,
// a uniform expectation is used.
// Expected counts are rescaled
// to the total of the observed counts.
func ChiSquareGOF(observed, expected []float64) (*ChiSquareTest, error) {
	if len(observed) < 2 {
		return nil, errSmall("chi-square", len(observed), 2)
	}

	var total float64
	for i, o := range observed {
		if o < 0 {
			return nil, fmt.Errorf("chi-square: class %d: negative count %g", i, o)
		}
		total += o
	}
	if total == 0 {
		return nil, fmt.Errorf("chi-square: empty observation")
	}

	if expected == nil {
		expected = make([]float64, len(observed))
		for i := range expected {
			expected[i] = 1
		}
	}
	if len(expected) != len(observed) {
		return nil, fmt.Errorf("chi-square: got %d expected counts, want %d", len(expected), len(observed))
	}

	var eTotal float64
	for i, e := range expected {
		if e <= 0 {
			return nil, fmt.Errorf("chi-square: class %d: expected count %g, want positive", i, e)
		}
		eTotal += e
	}

	var x2 float64
	for i, o := range observed {
		e := expected[i] * total / eTotal
		x2 += (o - e) * (o - e) / e
	}

	df := len(observed) - 1
	dist := distuv.ChiSquared{K: float64(df)}
	return &ChiSquareTest{
		X2: x2,
		DF: df,
		P:  1 - dist.CDF(x2),
	}, nil
}

// ChiSquareIndependence tests whether the rows and columns
// of a contingency table of counts
// are independent.
func ChiSquareIndependence(table [][]float64) (*ChiSquareTest, error) {
	if len(table) < 2 {
		return nil, fmt.Errorf("chi-square: got %d rows, want at least 2", len(table))
	}
	cols := len(table[0])
	if cols < 2 {
		return nil, fmt.Errorf("chi-square: got %d columns, want at least 2", cols)
	}

	rowSum := make([]float64, len(table))
	colSum := make([]float64, cols)
	var total float64
	for i, row := range table {
		if len(row) != cols {
			return nil, fmt.Errorf("chi-square: row %d: got %d columns, want %d", i, len(row), cols)
		}
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("chi-square: cell %d,%d: negative count %g", i, j, v)
			}
			rowSum[i] += v
			colSum[j] += v
			total += v
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("chi-square: empty table")
	}

	var x2 float64
	for i, row := range table {
		for j, v := range row {
			e := rowSum[i] * colSum[j] / total
			if e == 0 {
				return nil, fmt.Errorf("chi-square: cell %d,%d: zero expected count", i, j)
			}
			x2 += (v - e) * (v - e) / e
		}
	}

	df := (len(table) - 1) * (cols - 1)
	dist := distuv.ChiSquared{K: float64(df)}
	return &ChiSquareTest{
		X2: x2,
		DF: df,
		P:  1 - dist.CDF(x2),
	}, nil
}
