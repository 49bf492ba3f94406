// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the trees of a PhyComp project.
package terms

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/project"
)

var Command = &command.Command{
	Usage: "terms [--tree <tree-name>] <project-file>",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the trees from a PhyComp project and print the name of the
terminals in the standard output, in the order they appear in the tree. That
order is the order in which comparative analyses read trait values, so it is
the order the trait table must follow (see 'phycomp trait match').

The argument of the command is the name of the project file.

By default the terminals of all trees will be printed. If the flag --tree is
set, only the terminals of the indicated tree will be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
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

	ls := tc.Names()
	if treeName != "" {
		ls = []string{treeName}
	}
	for _, tn := range ls {
		t := tc.Tree(tn)
		if t == nil {
			return fmt.Errorf("tree %q: not in project", tn)
		}
		for _, tax := range newick.TipOrder(t) {
			fmt.Fprintf(c.Stdout(), "%s\n", tax)
		}
	}

	return nil
}
