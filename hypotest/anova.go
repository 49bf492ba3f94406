// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package hypotest

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// An ANOVA is the result
// of a one way analysis of variance.
type ANOVA struct {
	// Value of the F statistic
	F float64

	// Degrees of freedom,
	// between and within groups
	DFB, DFW int

	// P-value
	P float64

	// Sums of squares,
	// between and within groups
	SSB, SSW float64
}

// OneWayANOVA tests whether two or more groups
// have the same mean.
func OneWayANOVA(groups [][]float64) (*ANOVA, error) {
	if len(groups) < 2 {
		return nil, fmt.Errorf("anova: got %d groups, want at least 2", len(groups))
	}

	var grand float64
	var n int
	for i, g := range groups {
		if len(g) < 2 {
			return nil, fmt.Errorf("anova: group %d: %v", i, errSmall("group", len(g), 2))
		}
		for _, v := range g {
			grand += v
		}
		n += len(g)
	}
	grand /= float64(n)

	var ssb, ssw float64
	for _, g := range groups {
		m, _ := meanVar(g)
		ssb += float64(len(g)) * (m - grand) * (m - grand)
		for _, v := range g {
			ssw += (v - m) * (v - m)
		}
	}

	dfb := len(groups) - 1
	dfw := n - len(groups)
	if ssw == 0 {
		return nil, fmt.Errorf("anova: zero variance within groups")
	}

	f := (ssb / float64(dfb)) / (ssw / float64(dfw))
	dist := distuv.F{D1: float64(dfb), D2: float64(dfw)}
	return &ANOVA{
		F:   f,
		DFB: dfb,
		DFW: dfw,
		P:   1 - dist.CDF(f),
		SSB: ssb,
		SSW: ssw,
	}, nil
}
