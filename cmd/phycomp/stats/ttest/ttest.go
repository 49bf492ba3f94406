// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ttest implements a command
// for one and two sample t tests.
package ttest

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/dataset"
	"github.com/js-arias/phycomp/hypotest"
)

var Command = &command.Command{
	Usage: `ttest --x <column> [--y <column>]
	[--mu <value>] [--paired] [--equal-var]
	[<data-file>]`,
	Short: "one and two sample t tests",
	Long: `
Command ttest performs a t test over the columns of a tab-delimited data file
and print the t statistic, the degrees of freedom, and the two sided p-value
in the standard output.

The argument of the command is the name of the data file, a tab-delimited
table with a header row naming the columns. If no file is given the data will
be read from the standard input.

The flag --x is required and indicates the first column of the test. If only
--x is given, a one sample test of the column mean against the value of the
flag --mu (zero by default) will be performed.

If the flag --y is given, a two sample test of the two columns will be
performed. By default the Welch approximation for unequal variances is used;
with the flag --equal-var the variances will be pooled. With the flag
--paired the observations of both columns are taken as paired, and a paired
test will be performed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var xCol string
var yCol string
var mu float64
var paired bool
var equalVar bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&xCol, "x", "", "")
	c.Flags().StringVar(&yCol, "y", "", "")
	c.Flags().Float64Var(&mu, "mu", 0, "")
	c.Flags().BoolVar(&paired, "paired", false, "")
	c.Flags().BoolVar(&equalVar, "equal-var", false, "")
}

func run(c *command.Command, args []string) error {
	if xCol == "" {
		return c.UsageError("expecting flag --x")
	}

	d, err := readData(c.Stdin(), args)
	if err != nil {
		return err
	}
	x, err := d.Column(xCol)
	if err != nil {
		return err
	}

	var r *hypotest.TTest
	switch {
	case yCol == "":
		r, err = hypotest.OneSampleTTest(x, mu)
	default:
		var y []float64
		y, err = d.Column(yCol)
		if err != nil {
			return err
		}
		if paired {
			r, err = hypotest.PairedTTest(x, y)
		} else {
			r, err = hypotest.TwoSampleTTest(x, y, equalVar)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "t: %.6f\n", r.T)
	fmt.Fprintf(c.Stdout(), "df: %.6f\n", r.DF)
	fmt.Fprintf(c.Stdout(), "mean: %.6f\n", r.Mean)
	fmt.Fprintf(c.Stdout(), "p-value: %.6f\n", r.P)
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
