// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package simulate implements simple simulators
// of phylogenetic trees
// and trait data,
// used to build example data sets.
package simulate

import (
	"fmt"
	"math"
	"strings"

	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/timetree"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const millionYears = 1_000_000

// A node is a node
// of a simulated tree.
type node struct {
	// depth of the node,
	// from the root,
	// in simulation time units
	depth float64

	taxon    string
	children [2]*node
}

// PureBirth simulates a phylogenetic tree
// with the given number of terminals
// under a pure birth (Yule) process,
// scaled to the given root age
// (in years).
//
// The tree is built by writing the simulation
// as a Newick tree
// and reading it back,
// so terminal ages are rounded
// to the million years precision
// of the Newick output.
func PureBirth(name string, terms int, rootAge int64, src rand.Source) (*timetree.Tree, error) {
	if terms < 2 {
		return nil, fmt.Errorf("pure birth: got %d terminals, want at least 2", terms)
	}
	if rootAge <= 0 {
		return nil, fmt.Errorf("pure birth: invalid root age %d", rootAge)
	}

	r := rand.New(src)

	// the root split is the first event
	root := &node{}
	root.children[0] = &node{}
	root.children[1] = &node{}
	active := []*node{root.children[0], root.children[1]}

	var t float64
	for len(active) < terms {
		exp := distuv.Exponential{Rate: float64(len(active)), Src: src}
		t += exp.Rand()

		i := r.Intn(len(active))
		n := active[i]
		n.depth = t
		n.children[0] = &node{}
		n.children[1] = &node{}

		active[i] = n.children[0]
		active = append(active, n.children[1])
	}

	// final stretch to the present
	exp := distuv.Exponential{Rate: float64(len(active)), Src: src}
	t += exp.Rand()
	for i, n := range active {
		n.depth = t
		n.taxon = fmt.Sprintf("sp%d", i+1)
	}

	// scale simulation time to million years
	scale := float64(rootAge) / millionYears / t

	var sb strings.Builder
	writeNode(&sb, root, scale)
	sb.WriteString(";")

	c, err := newick.Read(strings.NewReader(sb.String()), name, 0)
	if err != nil {
		return nil, fmt.Errorf("pure birth: %v", err)
	}
	return c.Tree(c.Names()[0]), nil
}

func writeNode(sb *strings.Builder, n *node, scale float64) {
	if n.children[0] == nil {
		sb.WriteString(strings.ReplaceAll(n.taxon, " ", "_"))
		return
	}

	sb.WriteString("(")
	for i, c := range n.children {
		if i > 0 {
			sb.WriteString(",")
		}
		writeNode(sb, c, scale)
		fmt.Fprintf(sb, ":%.6f", (c.depth-n.depth)*scale)
	}
	sb.WriteString(")")
}

// Brownian simulates the evolution
// of a continuous trait over a tree
// under Brownian motion,
// with rate sigma2
// (in squared trait units per million year)
// and value z0 at the root.
// It returns the simulated values at the terminals,
// keyed by terminal name.
func Brownian(t *timetree.Tree, sigma2, z0 float64, src rand.Source) (map[string]float64, error) {
	if sigma2 < 0 {
		return nil, fmt.Errorf("brownian: invalid rate %g", sigma2)
	}

	vals := make(map[string]float64)
	var walk func(n int, x float64)
	walk = func(n int, x float64) {
		if t.IsTerm(n) {
			vals[t.Taxon(n)] = x
			return
		}
		for _, c := range t.Children(n) {
			brLen := float64(t.Age(n)-t.Age(c)) / millionYears
			cx := x
			if v := sigma2 * brLen; v > 0 {
				norm := distuv.Normal{Mu: 0, Sigma: math.Sqrt(v), Src: src}
				cx += norm.Rand()
			}
			walk(c, cx)
		}
	}
	walk(t.Root(), z0)

	return vals, nil
}
