// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package discrete implements maximum likelihood fitting
// of Markov models of discrete trait evolution
// (Mk models)
// for a binary trait
// on a time calibrated phylogenetic tree,
// using Felsenstein's pruning algorithm.
//
// Two models are implemented:
// equal rates (ER),
// with a single transition rate in both directions,
// and all rates different (ARD),
// with a forward and a backward rate.
// On a binary trait
// the symmetric model (SYM)
// is identical to ER.
//
// State code 0 is reserved:
// a taxon with state 0 is taken as unscored
// (its conditional likelihood is one
// for every state),
// so valid data must not use 0 as a state code
// (see the Remap method of traits.States).
package discrete

import (
	"errors"
	"fmt"
	"math"

	"github.com/js-arias/phycomp/aic"
	"github.com/js-arias/phycomp/traits"
	"github.com/js-arias/timetree"
)

const millionYears = 1_000_000

// Unscored is the reserved state code
// for a taxon without a valid observation.
const Unscored = 0

// ErrSingleState is the error
// when the data has less than two observed states,
// so there is nothing to fit.
var ErrSingleState = errors.New("single observed state")

// Model is the name of a model
// of discrete trait evolution.
type Model string

// Valid models.
const (
	// Equal rates:
	// a single rate for both transitions.
	ER Model = "er"

	// All rates different:
	// independent forward and backward rates.
	ARD Model = "ard"
)

// MaxRate is the largest transition rate
// used in the search,
// in events per million year.
const maxRate = 100.0

// A Fit is the result of the maximum likelihood fit
// of a discrete trait model.
type Fit struct {
	// Fitted model
	Model Model

	// The two observed state codes,
	// in ascending order
	States [2]int

	// Transition rates,
	// in events per million year:
	// Rates[0] is the rate from States[0] to States[1],
	// and Rates[1] the rate from States[1] to States[0]
	// (both equal under ER)
	Rates [2]float64

	// Maximum log-likelihood
	LogLike float64

	// Marginal probability of each state
	// at the root
	RootProb [2]float64

	// Number of free parameters
	K int

	// Number of scored terminals
	N int
}

// AIC returns the Akaike information criterion
// of a fitted model.
func (f *Fit) AIC() float64 {
	return aic.AIC(f.LogLike, f.K)
}

// AICc returns the Akaike information criterion
// corrected for small samples
// of a fitted model.
func (f *Fit) AICc() (float64, error) {
	return aic.AICc(f.LogLike, f.K, f.N)
}

// FitER fits an equal rates Mk model
// for a binary trait over a tree.
func FitER(t *timetree.Tree, st *traits.States) (*Fit, error) {
	d, err := newTreeData(t, st)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}

	step := 1 / d.maxDepth
	q, logLike := maxSearch(func(q float64) float64 {
		if q <= 0 || q > maxRate {
			return -math.MaxFloat64
		}
		like, _ := d.logLike(q, q)
		return like
	}, step, step, step*1e-5)

	logLike, rootProb := d.logLike(q, q)
	return &Fit{
		Model:    ER,
		States:   d.states,
		Rates:    [2]float64{q, q},
		LogLike:  logLike,
		RootProb: rootProb,
		K:        1,
		N:        d.scored,
	}, nil
}

// FitARD fits an all rates different Mk model
// for a binary trait over a tree.
func FitARD(t *timetree.Tree, st *traits.States) (*Fit, error) {
	d, err := newTreeData(t, st)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}

	// start at the ER estimate
	step := 1 / d.maxDepth
	q, _ := maxSearch(func(q float64) float64 {
		if q <= 0 || q > maxRate {
			return -math.MaxFloat64
		}
		like, _ := d.logLike(q, q)
		return like
	}, step, step, step*1e-5)

	rates := [2]float64{q, q}
	best, _ := d.logLike(rates[0], rates[1])

	// alternate the search on each rate
	// until there is no improvement
	for i := 0; i < 100; i++ {
		r0, like := maxSearch(func(r float64) float64 {
			if r <= 0 || r > maxRate {
				return -math.MaxFloat64
			}
			l, _ := d.logLike(r, rates[1])
			return l
		}, rates[0], rates[0]/2, rates[0]*1e-6)
		rates[0] = r0

		r1, like1 := maxSearch(func(r float64) float64 {
			if r <= 0 || r > maxRate {
				return -math.MaxFloat64
			}
			l, _ := d.logLike(rates[0], r)
			return l
		}, rates[1], rates[1]/2, rates[1]*1e-6)
		rates[1] = r1

		if like1 > like {
			like = like1
		}
		if like-best < 1e-9 {
			best = like
			break
		}
		best = like
	}

	logLike, rootProb := d.logLike(rates[0], rates[1])
	return &Fit{
		Model:    ARD,
		States:   d.states,
		Rates:    rates,
		LogLike:  logLike,
		RootProb: rootProb,
		K:        2,
		N:        d.scored,
	}, nil
}

// LogLike returns the log-likelihood
// of a binary Mk model
// with the given transition rates
// (q01 from the smallest state code to the largest,
// q10 the reverse),
// in events per million year.
func LogLike(t *timetree.Tree, st *traits.States, q01, q10 float64) (float64, error) {
	d, err := newTreeData(t, st)
	if err != nil {
		return 0, fmt.Errorf("tree %q: %w", t.Name(), err)
	}
	if q01 <= 0 || q10 <= 0 {
		return 0, fmt.Errorf("tree %q: rates must be positive", t.Name())
	}

	logLike, _ := d.logLike(q01, q10)
	return logLike, nil
}

// TreeData is a tree prepared
// for the pruning likelihood calculations.
type treeData struct {
	t      *timetree.Tree
	states [2]int

	// observed state index per terminal node ID,
	// -1 for unscored terminals
	obs map[int]int

	scored   int
	maxDepth float64
}

func newTreeData(t *timetree.Tree, st *traits.States) (*treeData, error) {
	var states []int
	for _, c := range st.Observed() {
		if c == Unscored {
			continue
		}
		states = append(states, c)
	}
	if len(states) < 2 {
		return nil, fmt.Errorf("%w: states %v", ErrSingleState, states)
	}
	if len(states) > 2 {
		return nil, fmt.Errorf("got %d states, want 2", len(states))
	}

	d := &treeData{
		t:      t,
		states: [2]int{states[0], states[1]},
		obs:    make(map[int]int),
	}

	rootAge := t.Age(t.Root())
	for _, n := range t.Nodes() {
		if !t.IsTerm(n) {
			continue
		}
		if depth := float64(rootAge-t.Age(n)) / millionYears; depth > d.maxDepth {
			d.maxDepth = depth
		}

		tax := t.Taxon(n)
		c, ok := st.Code(tax)
		if !ok {
			return nil, fmt.Errorf("terminal %q: %w", tax, traits.ErrNoMatch)
		}
		if c == Unscored {
			d.obs[n] = -1
			continue
		}
		if c == d.states[0] {
			d.obs[n] = 0
		} else {
			d.obs[n] = 1
		}
		d.scored++
	}

	return d, nil
}

// LogLike returns the log-likelihood of the data
// and the marginal root state probabilities,
// under a flat root prior.
func (d *treeData) logLike(q01, q10 float64) (float64, [2]float64) {
	cond, scale := d.conditional(d.t.Root(), q01, q10)

	like := 0.5*cond[0] + 0.5*cond[1]
	root := [2]float64{
		0.5 * cond[0] / like,
		0.5 * cond[1] / like,
	}
	return math.Log(like) + scale, root
}

// Conditional returns the conditional likelihoods of a node
// and an accumulated log scaling factor.
//
// In a terminal the conditional likelihood
// is one for the observed state
// (or for every state in an unscored terminal);
// in an internal node it is the product
// over its descendants
// of the conditional likelihoods
// propagated along each descendant branch.
func (d *treeData) conditional(n int, q01, q10 float64) ([2]float64, float64) {
	if d.t.IsTerm(n) {
		if s := d.obs[n]; s >= 0 {
			var cond [2]float64
			cond[s] = 1
			return cond, 0
		}
		return [2]float64{1, 1}, 0
	}

	cond := [2]float64{1, 1}
	var scale float64
	for _, c := range d.t.Children(n) {
		cc, cs := d.conditional(c, q01, q10)
		scale += cs

		brLen := float64(d.t.Age(n)-d.t.Age(c)) / millionYears
		p := transition(q01, q10, brLen)
		for i := 0; i < 2; i++ {
			cond[i] *= p[i][0]*cc[0] + p[i][1]*cc[1]
		}
	}

	// rescale to avoid underflow on large trees
	max := cond[0]
	if cond[1] > max {
		max = cond[1]
	}
	if max > 0 {
		cond[0] /= max
		cond[1] /= max
		scale += math.Log(max)
	}
	return cond, scale
}

// Transition returns the transition probability matrix
// of a two state Markov process
// with rates q01 and q10,
// over a branch of t million years.
func transition(q01, q10, t float64) [2][2]float64 {
	s := q01 + q10
	e := math.Exp(-s * t)
	return [2][2]float64{
		{(q10 + q01*e) / s, q01 * (1 - e) / s},
		{q10 * (1 - e) / s, (q01 + q10*e) / s},
	}
}

// MaxSearch searches for the maximum of a function
// with a step-halving hill climb,
// starting at start
// (the parameter is never smaller than zero).
func maxSearch(f func(float64) float64, start, step, stop float64) (param, max float64) {
	param = start
	max = f(start)

	upOK := false
	for p := param + step; ; p += step {
		like := f(p)
		if like < max {
			break
		}
		param = p
		max = like
		upOK = true
	}
	if !upOK {
		for p := param - step; p >= 0; p -= step {
			like := f(p)
			if like < max {
				break
			}
			param = p
			max = like
		}
	}

	for st := step / 2; ; st = st / 2 {
		for {
			improved := false
			if like := f(param + st); like > max {
				param += st
				max = like
				improved = true
			}
			if p := param - st; p >= 0 {
				if like := f(p); like > max {
					param = p
					max = like
					improved = true
				}
			}
			if !improved {
				break
			}
		}
		if st < stop {
			break
		}
	}
	return param, max
}
