// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plot implements a command to plot
// the histogram of a continuous trait.
package plot

import (
	"fmt"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/project"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `plot --trait <trait>
	[--bins <number>]
	[-o|--output <image-file>]
	<project-file>`,
	Short: "plot the histogram of a trait",
	Long: `
Command plot reads the trait table of a PhyComp project and plots the
histogram of a trait column as a PNG file.

The argument of the command is the name of the project file.

The flag --trait is required and indicates the trait column to be plotted.

By default 10 bins will be used; use the flag --bins to set a different
number.

By default the output file is the name of the trait with the suffix
"-hist.png". Use the flag -o, or --output, to define a different file name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var traitName string
var outFile string
var bins int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&traitName, "trait", "", "")
	c.Flags().StringVar(&outFile, "output", "", "")
	c.Flags().StringVar(&outFile, "o", "", "")
	c.Flags().IntVar(&bins, "bins", 10, "")
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
	vals, err := tb.Column(traitName)
	if err != nil {
		return err
	}

	pt := plot.New()
	pt.Title.Text = traitName
	pt.X.Label.Text = traitName
	pt.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return fmt.Errorf("trait %q: %v", traitName, err)
	}
	pt.Add(h)

	if outFile == "" {
		outFile = strings.ReplaceAll(traitName, " ", "-") + "-hist.png"
	}
	if err := pt.Save(6*vg.Inch, 4*vg.Inch, outFile); err != nil {
		return fmt.Errorf("while writing file %q: %v", outFile, err)
	}
	return nil
}
