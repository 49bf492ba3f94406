// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package anova implements a command
// for one way analysis of variance.
package anova

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/dataset"
	"github.com/js-arias/phycomp/hypotest"
)

var Command = &command.Command{
	Usage: `anova --group <column> --value <column>
	[--posthoc] [--alpha <value>]
	[<data-file>]`,
	Short: "one way analysis of variance",
	Long: `
Command anova performs a one way analysis of variance over a tab-delimited
data file and print the F statistic, the degrees of freedom, and the p-value
in the standard output.

The argument of the command is the name of the data file, a tab-delimited
table with a header row naming the columns. If no file is given the data will
be read from the standard input.

The flag --group is required and indicates the column with the group labels;
the flag --value is required and indicates the column with the numeric values.

If the flag --posthoc is given, the Tukey honestly significant difference test
will be performed over all pairs of groups, at the test level given by the
flag --alpha (0.05 by default).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var groupCol string
var valueCol string
var postHoc bool
var alpha float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&groupCol, "group", "", "")
	c.Flags().StringVar(&valueCol, "value", "", "")
	c.Flags().BoolVar(&postHoc, "posthoc", false, "")
	c.Flags().Float64Var(&alpha, "alpha", 0.05, "")
}

func run(c *command.Command, args []string) error {
	if groupCol == "" || valueCol == "" {
		return c.UsageError("expecting flags --group and --value")
	}

	d, err := readData(c.Stdin(), args)
	if err != nil {
		return err
	}
	names, groups, err := d.Groups(groupCol, valueCol)
	if err != nil {
		return err
	}

	r, err := hypotest.OneWayANOVA(groups)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "F: %.6f\n", r.F)
	fmt.Fprintf(c.Stdout(), "df: %d, %d\n", r.DFB, r.DFW)
	fmt.Fprintf(c.Stdout(), "p-value: %.6f\n", r.P)

	if !postHoc {
		return nil
	}

	cs, err := hypotest.TukeyHSD(groups, alpha)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "\ngroup\tgroup\tdiff\tq\tp-value\n")
	for _, cmp := range cs {
		sig := ""
		if cmp.Significant {
			sig = "\t*"
		}
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%.6f\t%.6f\t%.6f%s\n",
			names[cmp.A], names[cmp.B], cmp.Diff, cmp.Q, cmp.P, sig)
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
