// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lm implements a command
// for simple linear regression.
package lm

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/dataset"
	"github.com/js-arias/phycomp/hypotest"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `lm --x <column> --y <column>
	[--plot <image-file>]
	[<data-file>]`,
	Short: "simple linear regression",
	Long: `
Command lm fits a least squares regression of a response column over a
predictor column of a tab-delimited data file and print the coefficients,
their standard errors and t test p-values, the F statistic, and the
coefficient of determination in the standard output.

The argument of the command is the name of the data file, a tab-delimited
table with a header row naming the columns. If no file is given the data will
be read from the standard input.

The flag --x is required and indicates the predictor column; the flag --y is
required and indicates the response column.

If the flag --plot is given, a scatter plot of the data with the fitted line
will be saved as a PNG file with the given name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var xCol string
var yCol string
var plotFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&xCol, "x", "", "")
	c.Flags().StringVar(&yCol, "y", "", "")
	c.Flags().StringVar(&plotFile, "plot", "", "")
}

func run(c *command.Command, args []string) error {
	if xCol == "" || yCol == "" {
		return c.UsageError("expecting flags --x and --y")
	}

	d, err := readData(c.Stdin(), args)
	if err != nil {
		return err
	}
	x, err := d.Column(xCol)
	if err != nil {
		return err
	}
	y, err := d.Column(yCol)
	if err != nil {
		return err
	}

	m, err := hypotest.LinearModel(x, y)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "slope: %.6f (se %.6f, p %.6f)\n", m.Slope, m.SlopeSE, m.SlopeP)
	fmt.Fprintf(c.Stdout(), "intercept: %.6f (se %.6f, p %.6f)\n", m.Intercept, m.InterceptSE, m.InterceptP)
	fmt.Fprintf(c.Stdout(), "F: %.6f on 1 and %d df\n", m.F, m.DF)
	fmt.Fprintf(c.Stdout(), "r2: %.6f\n", m.R2)
	fmt.Fprintf(c.Stdout(), "p-value: %.6f\n", m.P)

	if plotFile == "" {
		return nil
	}
	return savePlot(x, y, m)
}

func savePlot(x, y []float64, m *hypotest.LM) error {
	pt := plot.New()
	pt.X.Label.Text = xCol
	pt.Y.Label.Text = yCol

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("while building plot: %v", err)
	}
	pt.Add(sc)

	line := plotter.NewFunction(m.Predict)
	pt.Add(line)

	if err := pt.Save(6*vg.Inch, 4*vg.Inch, plotFile); err != nil {
		return fmt.Errorf("while writing file %q: %v", plotFile, err)
	}
	return nil
}

func readData(r io.Reader, args []string) (*dataset.Dataset, error) {
	name := "stdin"
	if len(args) > 0 && args[0] != "-" {
		name = args[0]
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	d, err := dataset.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return d, nil
}
