// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// trees in a PhyComp project as SVG files.
package draw

import (
	"bufio"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/project"
)

var Command = &command.Command{
	Usage: `draw [--tree <tree>] [--step <value>]
	[--states]
	[-o|--output <out-prefix>]
	<project-file>`,
	Short: "draw project trees as SVG files",
	Long: `
Command draw reads a PhyComp project and draws the trees into a SVG-encoded
file.

The argument of the command is the name of the project file.

By default, 10 pixel units will be used per million year; use the flag --step
to define a different value (it can have decimal points).

By default, all trees in the project will be drawn. If the flag --tree is set,
only the indicated tree will be printed.

If the flag --states is given, the terminal names will be colored by the state
code defined in the state file of the project, using a color blind friendly
color scheme. Unscored terminals will be kept in black.

By default, the names of the trees will be used as the output file names. Use
the flag -o, or --output, to define a prefix for the resulting files.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var useStates bool
var stepX float64
var treeName string
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&useStates, "states", false, "")
	c.Flags().Float64Var(&stepX, "step", 10, "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
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
		st := copyTree(t, stepX)
		if useStates {
			sd, err := p.StateData()
			if err != nil {
				return err
			}
			st.setStateColors(sd)
		}
		if err := writeSVG(tn, st); err != nil {
			return err
		}
	}
	return nil
}

func writeSVG(name string, t svgTree) (err error) {
	if outPrefix != "" {
		name = fmt.Sprintf("%s-%s.svg", outPrefix, name)
	} else {
		name += ".svg"
	}

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

	bw := bufio.NewWriter(f)
	if err := t.draw(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
