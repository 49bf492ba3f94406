// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package contrast implements
// Felsenstein's phylogenetic independent contrasts,
// statistically independent variables
// computed from trait differences at tree nodes,
// used to correct for shared ancestry
// in comparative statistics.
package contrast

import (
	"fmt"
	"math"
	"slices"

	"github.com/js-arias/phycomp/traits"
	"github.com/js-arias/timetree"
	"gonum.org/v1/gonum/stat"
)

const millionYears = 1_000_000

// A Contrast is a standardized trait contrast
// at an internal node of a tree.
type Contrast struct {
	// ID of the node
	Node int

	// Age of the node, in years
	Age int64

	// Standardized contrast
	Value float64

	// Expected variance of the contrast,
	// in million years
	Variance float64
}

// A PIC is a set of phylogenetic independent contrasts
// of a continuous trait over a tree.
type PIC struct {
	t         *timetree.Tree
	contrasts []Contrast

	root   float64
	sigma2 float64
}

// New calculates the independent contrasts
// of a continuous trait over a tree.
//
// Observations are keyed by terminal name;
// every terminal of the tree must have an observation,
// a terminal without one is an error
// (of the traits.ErrNoMatch kind).
// The tree must be fully resolved
// (all internal nodes with two descendants).
func New(t *timetree.Tree, obs map[string]float64) (*PIC, error) {
	p := &PIC{t: t}

	root, _, err := p.downPass(t.Root(), obs)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}
	p.root = root

	var ss float64
	for _, c := range p.contrasts {
		ss += c.Value * c.Value
	}
	p.sigma2 = ss / float64(len(p.contrasts))

	slices.SortFunc(p.contrasts, func(a, b Contrast) int {
		return a.Node - b.Node
	})
	return p, nil
}

// Contrasts returns the standardized contrasts,
// ordered by node ID.
func (p *PIC) Contrasts() []Contrast {
	return slices.Clone(p.contrasts)
}

// Root returns the estimate of the trait value
// at the root of the tree.
func (p *PIC) Root() float64 {
	return p.root
}

// Sigma2 returns the Brownian motion rate estimated
// from the contrasts
// (the mean squared standardized contrast),
// in trait units per million year.
func (p *PIC) Sigma2() float64 {
	return p.sigma2
}

// Tree returns the tree used for the contrasts.
func (p *PIC) Tree() *timetree.Tree {
	return p.t
}

// Values returns the standardized contrast values,
// ordered by node ID.
func (p *PIC) Values() []float64 {
	vals := make([]float64, len(p.contrasts))
	for i, c := range p.contrasts {
		vals[i] = c.Value
	}
	return vals
}

// Regression returns the through-origin regression
// of the y contrasts over the x contrasts
// (contrasts have an arbitrary sign,
// so the regression must not have an intercept).
// Both contrast sets must be from the same tree.
func Regression(x, y *PIC) (slope, r2 float64, err error) {
	if x.t != y.t {
		return 0, 0, fmt.Errorf("contrasts from different trees: %q, %q", x.t.Name(), y.t.Name())
	}

	xs := x.Values()
	ys := y.Values()
	_, slope = stat.LinearRegression(xs, ys, nil, true)
	r2 = stat.RSquared(xs, ys, nil, 0, slope)
	return slope, r2, nil
}

// DownPass calculates the contrasts
// and ancestral values of a node,
// returning the node value
// and the additional branch length
// induced by the uncertainty of the estimate
// (in million years).
func (p *PIC) downPass(n int, obs map[string]float64) (x, extra float64, err error) {
	if p.t.IsTerm(n) {
		tax := p.t.Taxon(n)
		v, ok := obs[tax]
		if !ok {
			return 0, 0, fmt.Errorf("terminal %q: %w", tax, traits.ErrNoMatch)
		}
		return v, 0, nil
	}

	children := p.t.Children(n)
	if len(children) != 2 {
		return 0, 0, fmt.Errorf("node %d: tree not fully resolved", n)
	}

	var val [2]float64
	var brLen [2]float64
	for i, c := range children {
		v, ex, err := p.downPass(c, obs)
		if err != nil {
			return 0, 0, err
		}
		val[i] = v
		brLen[i] = float64(p.t.Age(n)-p.t.Age(c))/millionYears + ex
	}

	sum := brLen[0] + brLen[1]
	if sum <= 0 {
		return 0, 0, fmt.Errorf("node %d: zero length branches", n)
	}

	p.contrasts = append(p.contrasts, Contrast{
		Node:     n,
		Age:      p.t.Age(n),
		Value:    (val[0] - val[1]) / math.Sqrt(sum),
		Variance: sum,
	})

	x = (val[0]/brLen[0] + val[1]/brLen[1]) / (1/brLen[0] + 1/brLen[1])
	extra = brLen[0] * brLen[1] / sum
	return x, extra, nil
}
