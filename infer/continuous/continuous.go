// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package continuous implements maximum likelihood fitting
// of models of continuous trait evolution
// on a time calibrated phylogenetic tree.
//
// Three models are implemented:
// Brownian motion,
// Ornstein-Uhlenbeck,
// and Early Burst.
// In all models the trait at the tips
// is a multivariate normal
// whose covariance is defined by the shared history
// of each pair of terminals;
// the rate (sigma2)
// and the root value
// are profiled analytically,
// and any remaining shape parameter
// is fitted by a step-halving search.
package continuous

import (
	"fmt"
	"math"

	"github.com/js-arias/phycomp/aic"
	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/traits"
	"github.com/js-arias/timetree"
	"gonum.org/v1/gonum/mat"
)

const millionYears = 1_000_000

// Model is the name of a model
// of continuous trait evolution.
type Model string

// Valid models.
const (
	// Brownian motion:
	// variance accumulates linearly with time.
	BM Model = "bm"

	// Ornstein-Uhlenbeck:
	// Brownian motion with an attraction
	// towards a central value,
	// of strength alpha.
	OU Model = "ou"

	// Early Burst:
	// Brownian motion with a rate
	// that decays exponentially with time
	// (rate parameter r,
	// always negative or zero).
	EB Model = "eb"
)

// A Fit is the result of the maximum likelihood fit
// of a continuous trait model.
type Fit struct {
	// Fitted model
	Model Model

	// Rate of trait evolution,
	// in squared trait units per million year
	Sigma2 float64

	// Estimated trait value at the root
	Root float64

	// Shape parameter:
	// alpha for the OU model,
	// r for the EB model,
	// zero for BM
	Param float64

	// Maximum log-likelihood
	LogLike float64

	// Number of free parameters
	K int

	// Number of terminals
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

// FitBM fits a Brownian motion model
// for a continuous trait over a tree.
// Observations are keyed by terminal name;
// every terminal must have an observation.
func FitBM(t *timetree.Tree, obs map[string]float64) (*Fit, error) {
	d, err := newData(t, obs)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}

	sigma2, root, logLike, err := d.logLike(BM, 0)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}
	return &Fit{
		Model:   BM,
		Sigma2:  sigma2,
		Root:    root,
		LogLike: logLike,
		K:       2,
		N:       len(d.tips),
	}, nil
}

// FitOU fits an Ornstein-Uhlenbeck model
// for a continuous trait over a tree.
// Observations are keyed by terminal name;
// every terminal must have an observation.
func FitOU(t *timetree.Tree, obs map[string]float64) (*Fit, error) {
	d, err := newData(t, obs)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}

	// scale the search steps
	// with the total depth of the tree
	step := 2 / d.maxDepth

	alpha, logLike := maxSearch(func(a float64) float64 {
		_, _, like, err := d.logLike(OU, a)
		if err != nil {
			return -math.MaxFloat64
		}
		return like
	}, 0, step, step*1e-5)

	sigma2, root, logLike, err := d.logLike(OU, alpha)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}
	return &Fit{
		Model:   OU,
		Sigma2:  sigma2,
		Root:    root,
		Param:   alpha,
		LogLike: logLike,
		K:       3,
		N:       len(d.tips),
	}, nil
}

// FitEB fits an Early Burst model
// for a continuous trait over a tree.
// Observations are keyed by terminal name;
// every terminal must have an observation.
func FitEB(t *timetree.Tree, obs map[string]float64) (*Fit, error) {
	d, err := newData(t, obs)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}

	step := 2 / d.maxDepth

	// the search is over the magnitude of r
	// (r is always negative)
	m, logLike := maxSearch(func(m float64) float64 {
		_, _, like, err := d.logLike(EB, -m)
		if err != nil {
			return -math.MaxFloat64
		}
		return like
	}, 0, step, step*1e-5)

	sigma2, root, logLike, err := d.logLike(EB, -m)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}
	return &Fit{
		Model:   EB,
		Sigma2:  sigma2,
		Root:    root,
		Param:   -m,
		LogLike: logLike,
		K:       3,
		N:       len(d.tips),
	}, nil
}

// Data is the tree-trait data
// used for the likelihood calculations:
// the tip depths and shared times,
// in million years,
// and the observed trait values,
// in tip order.
type data struct {
	tips     []string
	x        []float64
	shared   [][]float64
	depth    []float64
	maxDepth float64
}

func newData(t *timetree.Tree, obs map[string]float64) (*data, error) {
	tips := newick.TipOrder(t)
	d := &data{
		tips:   tips,
		x:      make([]float64, len(tips)),
		shared: make([][]float64, len(tips)),
		depth:  make([]float64, len(tips)),
	}
	for i, tax := range tips {
		v, ok := obs[tax]
		if !ok {
			return nil, fmt.Errorf("terminal %q: %w", tax, traits.ErrNoMatch)
		}
		d.x[i] = v
		d.shared[i] = make([]float64, len(tips))
	}

	tip := make(map[string]int, len(tips))
	for i, tax := range tips {
		tip[tax] = i
	}

	rootAge := t.Age(t.Root())
	var walk func(n int) []int
	walk = func(n int) []int {
		nodeDepth := float64(rootAge-t.Age(n)) / millionYears
		if t.IsTerm(n) {
			i := tip[t.Taxon(n)]
			d.shared[i][i] = nodeDepth
			d.depth[i] = nodeDepth
			if nodeDepth > d.maxDepth {
				d.maxDepth = nodeDepth
			}
			return []int{i}
		}

		var desc []int
		for _, c := range t.Children(n) {
			cd := walk(c)
			// the shared time of two terminals
			// is the depth of their most recent common ancestor
			for _, i := range desc {
				for _, j := range cd {
					d.shared[i][j] = nodeDepth
					d.shared[j][i] = nodeDepth
				}
			}
			desc = append(desc, cd...)
		}
		return desc
	}
	walk(t.Root())

	return d, nil
}

// LogLike returns the profiled maximum likelihood estimates
// of the rate and root value,
// and the log-likelihood,
// of a model with the given shape parameter.
func (d *data) logLike(m Model, param float64) (sigma2, root, logLike float64, err error) {
	n := len(d.tips)
	v := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v.SetSym(i, j, d.covariance(m, param, i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(v); !ok {
		return 0, 0, 0, fmt.Errorf("model %q: covariance matrix not positive definite", m)
	}

	ones := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		ones.SetVec(i, 1)
	}
	xv := mat.NewVecDense(n, d.x)

	var vi1, vix mat.VecDense
	if err := chol.SolveVecTo(&vi1, ones); err != nil {
		return 0, 0, 0, fmt.Errorf("model %q: %v", m, err)
	}
	if err := chol.SolveVecTo(&vix, xv); err != nil {
		return 0, 0, 0, fmt.Errorf("model %q: %v", m, err)
	}

	root = mat.Dot(ones, &vix) / mat.Dot(ones, &vi1)

	res := mat.NewVecDense(n, nil)
	res.AddScaledVec(xv, -root, ones)
	var vir mat.VecDense
	if err := chol.SolveVecTo(&vir, res); err != nil {
		return 0, 0, 0, fmt.Errorf("model %q: %v", m, err)
	}
	q := mat.Dot(res, &vir)

	sigma2 = q / float64(n)
	logLike = -0.5 * (float64(n)*math.Log(2*math.Pi*sigma2) + chol.LogDet() + float64(n))
	return sigma2, root, logLike, nil
}

// Covariance returns the model covariance
// between terminals i and j,
// with the rate factored out.
func (d *data) covariance(m Model, param float64, i, j int) float64 {
	s := d.shared[i][j]
	switch m {
	case OU:
		alpha := param
		if alpha < 1e-9 {
			return s
		}
		// phylogenetic distance between the terminals
		dist := d.depth[i] + d.depth[j] - 2*s
		return math.Exp(-alpha*dist) * (1 - math.Exp(-2*alpha*s)) / (2 * alpha)
	case EB:
		r := param
		if math.Abs(r) < 1e-9 {
			return s
		}
		return (math.Exp(r*s) - 1) / r
	}
	return s
}

// MaxSearch searches for the maximum of a function
// with a step-halving hill climb,
// starting at start
// (the parameter is never smaller than zero).
func maxSearch(f func(float64) float64, start, step, stop float64) (param, max float64) {
	param = start
	max = f(start)

	// first search:
	// go up until the function decreases;
	// if there is no improvement,
	// go down
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
		// go one step up and one step down
		// to see if the likelihood improves
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
