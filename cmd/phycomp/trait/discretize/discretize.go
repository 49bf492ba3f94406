// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package discretize implements a command to split
// a continuous trait at its median
// into discrete states.
package discretize

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/project"
	"github.com/js-arias/phycomp/traits"
)

var Command = &command.Command{
	Usage: `discretize --trait <trait>
	[--from <state>] [--to <state>]
	[-f|--file <state-file>]
	<project-file>`,
	Short: "discretize a continuous trait at its median",
	Long: `
Command discretize reads the trait table of a PhyComp project, splits the
values of a trait column at the median, and stores the resulting states in the
state file of the project.

The argument of the command is the name of the project file.

The flag --trait is required and indicates the trait column to be split.
Values smaller than the median are given state 0, and values at, or greater
than, the median are given state 1; ties at the median always go to the upper
state. If the split produces a single state the command will fail.

The state code 0 is reserved for unscored taxa (see
'phycomp help state-codes'), so after the split the state 0 is remapped to
state 2, and the final file uses the codes 1 and 2. Use the flags --from and
--to to define a different remapping; with '--from 0 --to 0' the states are
kept untouched.

By default the states will be stored in the state file currently defined for
the project, or in 'states.tab'. A different file name can be defined with
the flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var traitName string
var stateFile string
var fromState int
var toState int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&traitName, "trait", "", "")
	c.Flags().StringVar(&stateFile, "file", "", "")
	c.Flags().StringVar(&stateFile, "f", "", "")
	c.Flags().IntVar(&fromState, "from", 0, "")
	c.Flags().IntVar(&toState, "to", 2, "")
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

	tb, err := p.TraitData()
	if err != nil {
		return err
	}

	st, err := tb.Discretize(traitName)
	if err != nil {
		return err
	}
	if fromState != toState {
		st = st.Remap(fromState, toState)
	}

	if stateFile == "" {
		stateFile = p.Path(project.States)
		if stateFile == "" {
			stateFile = "states.tab"
		}
	}

	if err := writeStates(st); err != nil {
		return err
	}
	p.Add(project.States, stateFile)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func writeStates(st *traits.States) (err error) {
	f, err := os.Create(stateFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := st.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", stateFile, err)
	}
	return nil
}
