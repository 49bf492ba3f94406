// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sim implements a command to simulate
// a phylogenetic tree into a PhyComp project.
package sim

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/project"
	"github.com/js-arias/phycomp/simulate"
	"github.com/js-arias/phycomp/traits"
	"github.com/js-arias/timetree"
	"golang.org/x/exp/rand"
)

var Command = &command.Command{
	Usage: `sim [--name <tree-name>] [--terms <number>]
	[--age <value>] [--seed <value>]
	[--trait <name>] [--sigma <value>]
	[-f|--file <tree-file>]
	<project-file>`,
	Short: "simulate a tree into a PhyComp project",
	Long: `
Command sim simulates a time calibrated phylogenetic tree under a pure birth
(Yule) process and adds the tree to a PhyComp project.

The argument of the command is the name of the project file. If no project
file exists, a new project will be created.

By default the simulated tree will have 10 terminals and a root age of 10
million years, with the name "sim". Use the flags --terms, --age (in million
years), and --name to change the defaults.

If the flag --trait is given, a continuous trait with the indicated name will
be simulated over the tree under Brownian motion, starting from zero at the
root, and stored in the trait file of the project (or in 'traits.tab' if the
project does not have a trait file). The rate of the Brownian process, in
squared trait units per million year, is set with the flag --sigma (1 by
default).

The simulation is seeded from the current time. For a reproducible tree, use
the flag --seed with any integer value.

By default the tree will be stored in the tree file currently defined for the
project, or in 'trees.tab'. A different tree file name can be defined using
the flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

const millionYears = 1_000_000

var treeFile string
var treeName string
var traitName string
var numTerms int
var rootAge float64
var sigma2 float64
var seed int64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&treeName, "name", "sim", "")
	c.Flags().StringVar(&traitName, "trait", "", "")
	c.Flags().IntVar(&numTerms, "terms", 10, "")
	c.Flags().Float64Var(&rootAge, "age", 10, "")
	c.Flags().Float64Var(&sigma2, "sigma", 1, "")
	c.Flags().Int64Var(&seed, "seed", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	var tc *timetree.Collection
	if tf := p.Path(project.Trees); tf != "" {
		tc, err = readTreeFile(tf)
		if err != nil {
			return err
		}
	}
	if tc == nil {
		tc = timetree.NewCollection()
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := rand.NewSource(uint64(seed))

	t, err := simulate.PureBirth(treeName, numTerms, int64(rootAge*millionYears), src)
	if err != nil {
		return err
	}
	if err := tc.Add(t); err != nil {
		return fmt.Errorf("when adding tree %q: %v", treeName, err)
	}

	if treeFile == "" {
		treeFile = p.Path(project.Trees)
		if treeFile == "" {
			treeFile = "trees.tab"
		}
	}
	if err := writeTrees(tc); err != nil {
		return err
	}
	p.Add(project.Trees, treeFile)

	if traitName != "" {
		if err := simTrait(p, t, src); err != nil {
			return err
		}
	}

	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func simTrait(p *project.Project, t *timetree.Tree, src rand.Source) error {
	vals, err := simulate.Brownian(t, sigma2, 0, src)
	if err != nil {
		return err
	}

	tb := traits.NewTable(traitName)
	if len(tb.Columns()) != 1 {
		return fmt.Errorf("invalid trait name %q", traitName)
	}
	want := tb.Columns()[0]
	if tf := p.Path(project.Traits); tf != "" {
		tb, err = readTraitFile(tf)
		if err != nil {
			return err
		}
		cols := tb.Columns()
		if len(cols) != 1 || cols[0] != want {
			return fmt.Errorf("trait file %q already has traits %v", tf, cols)
		}
	}

	for _, tax := range newick.TipOrder(t) {
		if err := tb.Add(tax, []float64{vals[tax]}); err != nil {
			return fmt.Errorf("when adding taxon %q: %v", tax, err)
		}
	}

	tf := p.Path(project.Traits)
	if tf == "" {
		tf = "traits.tab"
	}
	if err := writeTraits(tf, tb); err != nil {
		return err
	}
	p.Add(project.Traits, tf)
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func readTreeFile(name string) (*timetree.Collection, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

func readTraitFile(name string) (*traits.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tb, err := traits.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return tb, nil
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

func writeTrees(tc *timetree.Collection) (err error) {
	f, err := os.Create(treeFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", treeFile, err)
	}
	return nil
}
