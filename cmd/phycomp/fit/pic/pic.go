// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pic implements a command to calculate
// phylogenetic independent contrasts.
package pic

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/infer/contrast"
	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/project"
	"github.com/js-arias/phycomp/traits"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `pic --x <trait> [--y <trait>]
	[--tree <tree-name>]
	<project-file>`,
	Short: "calculate phylogenetic independent contrasts",
	Long: `
Command pic calculates Felsenstein's phylogenetic independent contrasts of one
or two trait columns of a PhyComp project over a tree, and print the contrasts
in the standard output.

The argument of the command is the name of the project file.

The flag --x is required and indicates the trait column to be used. Every
terminal of the tree must have a row in the trait table.

By default the first tree of the project is used. Use the flag --tree to
select a different tree.

If the flag --y is given, the contrasts of both traits will be calculated, and
a through-origin regression of the y contrasts over the x contrasts will be
added to the output (contrasts have an arbitrary sign, so the regression must
not have an intercept).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var xTrait string
var yTrait string
var treeName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&xTrait, "x", "", "")
	c.Flags().StringVar(&yTrait, "y", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if xTrait == "" {
		return c.UsageError("expecting flag --x")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tc, err := p.Trees()
	if err != nil {
		return err
	}
	if treeName == "" {
		treeName = tc.Names()[0]
	}
	t := tc.Tree(treeName)
	if t == nil {
		return fmt.Errorf("tree %q: not in project", treeName)
	}

	tb, err := p.TraitData()
	if err != nil {
		return err
	}

	px, err := picOf(t, tb, xTrait)
	if err != nil {
		return err
	}

	if yTrait == "" {
		fmt.Fprintf(c.Stdout(), "trait: %s\n", xTrait)
		printContrasts(c, px)
		return nil
	}

	py, err := picOf(t, tb, yTrait)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "node\tage\t%s\t%s\n", xTrait, yTrait)
	xs := px.Contrasts()
	ys := py.Contrasts()
	for i, cx := range xs {
		fmt.Fprintf(c.Stdout(), "%d\t%d\t%.6f\t%.6f\n", cx.Node, cx.Age, cx.Value, ys[i].Value)
	}

	slope, r2, err := contrast.Regression(px, py)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "slope: %.6f\n", slope)
	fmt.Fprintf(c.Stdout(), "r2: %.6f\n", r2)
	return nil
}

func printContrasts(c *command.Command, p *contrast.PIC) {
	fmt.Fprintf(c.Stdout(), "node\tage\tcontrast\tvariance\n")
	for _, ct := range p.Contrasts() {
		fmt.Fprintf(c.Stdout(), "%d\t%d\t%.6f\t%.6f\n", ct.Node, ct.Age, ct.Value, ct.Variance)
	}
	fmt.Fprintf(c.Stdout(), "root: %.6f\n", p.Root())
	fmt.Fprintf(c.Stdout(), "sigma2: %.6f\n", p.Sigma2())
}

func picOf(t *timetree.Tree, tb *traits.Table, col string) (*contrast.PIC, error) {
	mt, err := tb.MatchTips(newick.TipOrder(t))
	if err != nil {
		return nil, fmt.Errorf("tree %q: %v", t.Name(), err)
	}

	obs := make(map[string]float64, mt.Len())
	for _, tax := range mt.Taxa() {
		v, err := mt.Value(tax, col)
		if err != nil {
			return nil, err
		}
		obs[tax] = v
	}
	return contrast.New(t, obs)
}
