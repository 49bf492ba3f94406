// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mk implements a command to fit
// Mk models of discrete trait evolution.
package mk

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/infer/discrete"
	"github.com/js-arias/phycomp/project"
)

var Command = &command.Command{
	Usage: `mk [--tree <tree-name>] [--model <model>]
	<project-file>`,
	Short: "fit an Mk model of discrete trait evolution",
	Long: `
Command mk fits a Markov model of discrete trait evolution (an Mk model) for
the binary trait states of a PhyComp project over a tree, by maximum
likelihood, and print the fitted parameters in the standard output.

The argument of the command is the name of the project file.

The states are read from the state file of the project. The state code 0 is
read as an unscored taxon (see 'phycomp help state-codes'); apart from the 0
code, the states must have exactly two codes.

By default the first tree of the project is used. Use the flag --tree to
select a different tree.

By default an equal rates model is fitted. Use the flag --model to select the
model: "er" (equal rates, a single transition rate) or "ard" (all rates
different, a forward and a backward rate). On a binary trait the symmetric
model is identical to the equal rates model.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var modelName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&modelName, "model", "er", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
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

	st, err := p.StateData()
	if err != nil {
		return err
	}

	var f *discrete.Fit
	switch discrete.Model(modelName) {
	case discrete.ER:
		f, err = discrete.FitER(t, st)
	case discrete.ARD:
		f, err = discrete.FitARD(t, st)
	default:
		return c.UsageError(fmt.Sprintf("unknown model %q", modelName))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "model: %s\n", f.Model)
	fmt.Fprintf(c.Stdout(), "trait: %s\n", st.Trait())
	fmt.Fprintf(c.Stdout(), "rate %d->%d: %.6f\n", f.States[0], f.States[1], f.Rates[0])
	fmt.Fprintf(c.Stdout(), "rate %d->%d: %.6f\n", f.States[1], f.States[0], f.Rates[1])
	fmt.Fprintf(c.Stdout(), "logLike: %.6f\n", f.LogLike)
	fmt.Fprintf(c.Stdout(), "AIC: %.6f\n", f.AIC())
	if s, err := f.AICc(); err == nil {
		fmt.Fprintf(c.Stdout(), "AICc: %.6f\n", s)
	}
	fmt.Fprintf(c.Stdout(), "root P(%d): %.6f\n", f.States[0], f.RootProb[0])
	fmt.Fprintf(c.Stdout(), "root P(%d): %.6f\n", f.States[1], f.RootProb[1])
	return nil
}
