// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package contcmd implements a command to fit
// models of continuous trait evolution.
package contcmd

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/aic"
	"github.com/js-arias/phycomp/infer/continuous"
	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/project"
	"github.com/js-arias/phycomp/traits"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `continuous --trait <trait>
	[--tree <tree-name>] [--model <model>]
	[--all]
	<project-file>`,
	Short: "fit models of continuous trait evolution",
	Long: `
Command continuous fits a model of continuous trait evolution for a trait
column over a tree of a PhyComp project, by maximum likelihood, and print the
fitted parameters in the standard output.

The argument of the command is the name of the project file.

The flag --trait is required and indicates the trait column to be used. Every
terminal of the tree must have a row in the trait table.

By default the first tree of the project is used. Use the flag --tree to
select a different tree.

By default a Brownian motion model is fitted. Use the flag --model to select
the model: "bm" (Brownian motion), "ou" (Ornstein-Uhlenbeck), or "eb" (Early
Burst).

If the flag --all is given, the three models will be fitted and compared with
the corrected Akaike information criterion (AICc) and Akaike weights.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var traitName string
var treeName string
var modelName string
var allModels bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&traitName, "trait", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&modelName, "model", "bm", "")
	c.Flags().BoolVar(&allModels, "all", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if traitName == "" {
		return c.UsageError("expecting flag --trait")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	t, obs, err := readData(p)
	if err != nil {
		return err
	}

	if allModels {
		return fitAll(c, t, obs)
	}

	var f *continuous.Fit
	switch continuous.Model(modelName) {
	case continuous.BM:
		f, err = continuous.FitBM(t, obs)
	case continuous.OU:
		f, err = continuous.FitOU(t, obs)
	case continuous.EB:
		f, err = continuous.FitEB(t, obs)
	default:
		return c.UsageError(fmt.Sprintf("unknown model %q", modelName))
	}
	if err != nil {
		return err
	}

	printFit(c, f)
	return nil
}

func fitAll(c *command.Command, t *timetree.Tree, obs map[string]float64) error {
	fits := make([]*continuous.Fit, 0, 3)
	for _, fn := range []func(*timetree.Tree, map[string]float64) (*continuous.Fit, error){
		continuous.FitBM,
		continuous.FitOU,
		continuous.FitEB,
	} {
		f, err := fn(t, obs)
		if err != nil {
			return err
		}
		fits = append(fits, f)
	}

	scores := make([]float64, len(fits))
	for i, f := range fits {
		s, err := f.AICc()
		if err != nil {
			return fmt.Errorf("model %q: %v", f.Model, err)
		}
		scores[i] = s
	}
	weights := aic.Weights(scores)

	fmt.Fprintf(c.Stdout(), "model\tsigma2\troot\tparam\tlogLike\tAICc\tweight\n")
	for i, f := range fits {
		fmt.Fprintf(c.Stdout(), "%s\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\n",
			f.Model, f.Sigma2, f.Root, f.Param, f.LogLike, scores[i], weights[i])
	}
	return nil
}

func printFit(c *command.Command, f *continuous.Fit) {
	fmt.Fprintf(c.Stdout(), "model: %s\n", f.Model)
	fmt.Fprintf(c.Stdout(), "sigma2: %.6f\n", f.Sigma2)
	fmt.Fprintf(c.Stdout(), "root: %.6f\n", f.Root)
	switch f.Model {
	case continuous.OU:
		fmt.Fprintf(c.Stdout(), "alpha: %.6f\n", f.Param)
	case continuous.EB:
		fmt.Fprintf(c.Stdout(), "rate change: %.6f\n", f.Param)
	}
	fmt.Fprintf(c.Stdout(), "logLike: %.6f\n", f.LogLike)
	fmt.Fprintf(c.Stdout(), "AIC: %.6f\n", f.AIC())
	if s, err := f.AICc(); err == nil {
		fmt.Fprintf(c.Stdout(), "AICc: %.6f\n", s)
	}
}

// ReadData reads the tree and the trait observations
// defined in a project,
// with the trait rows matched
// to the terminal order of the tree.
func readData(p *project.Project) (*timetree.Tree, map[string]float64, error) {
	tc, err := p.Trees()
	if err != nil {
		return nil, nil, err
	}
	if treeName == "" {
		treeName = tc.Names()[0]
	}
	t := tc.Tree(treeName)
	if t == nil {
		return nil, nil, fmt.Errorf("tree %q: not in project", treeName)
	}

	tb, err := p.TraitData()
	if err != nil {
		return nil, nil, err
	}
	obs, err := observations(t, tb, traitName)
	if err != nil {
		return nil, nil, err
	}
	return t, obs, nil
}

func observations(t *timetree.Tree, tb *traits.Table, col string) (map[string]float64, error) {
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
	return obs, nil
}
