// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package match implements a command to reorder
// the rows of the trait table of a PhyComp project
// to the terminal order of a tree.
package match

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/project"
	"github.com/js-arias/phycomp/traits"
)

var Command = &command.Command{
	Usage: "match [--tree <tree-name>] <project-file>",
	Short: "match trait rows to the terminals of a tree",
	Long: `
Command match reads the trait table of a PhyComp project, reorders its rows to
match the terminal order of a tree, and rewrites the trait file with the new
order. After the command, the values of any trait column are paired, index by
index, with the terminals of the tree.

The argument of the command is the name of the project file.

By default the first tree of the project is used. Use the flag --tree to
select a different tree.

Each terminal of the tree must match exactly one row of the table; a terminal
without a matching row is an error, and the file is left untouched. Rows for
taxa that are not in the tree will be dropped.
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

	mt, err := tb.MatchTips(newick.TipOrder(t))
	if err != nil {
		return fmt.Errorf("tree %q: %v", treeName, err)
	}

	if dropped := tb.Len() - mt.Len(); dropped > 0 {
		fmt.Fprintf(c.Stderr(), "dropped %d rows not in tree %q\n", dropped, treeName)
	}

	if err := writeTraits(p.Path(project.Traits), mt); err != nil {
		return err
	}
	return nil
}

func writeTraits(name string, tb *traits.Table) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tb.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
