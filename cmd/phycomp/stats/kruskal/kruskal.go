// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package kruskal implements a command
// for the Kruskal-Wallis rank test.
package kruskal

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/dataset"
	"github.com/js-arias/phycomp/hypotest"
)

var Command = &command.Command{
	Usage: `kruskal --group <column> --value <column>
	[<data-file>]`,
	Short: "Kruskal-Wallis rank test",
	Long: `
Command kruskal performs a Kruskal-Wallis rank test over a tab-delimited data
file and print the H statistic, the degrees of freedom, and the p-value in
the standard output.

The argument of the command is the name of the data file, a tab-delimited
table with a header row naming the columns. If no file is given the data will
be read from the standard input.

The flag --group is required and indicates the column with the group labels;
the flag --value is required and indicates the column with the numeric values.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var groupCol string
var valueCol string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&groupCol, "group", "", "")
	c.Flags().StringVar(&valueCol, "value", "", "")
}

func run(c *command.Command, args []string) error {
	if groupCol == "" || valueCol == "" {
		return c.UsageError("expecting flags --group and --value")
	}

	d, err := readData(c.Stdin(), args)
	if err != nil {
		return err
	}
	_, groups, err := d.Groups(groupCol, valueCol)
	if err != nil {
		return err
	}

	r, err := hypotest.KruskalWallis(groups)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "H: %.6f\n", r.H)
	fmt.Fprintf(c.Stdout(), "df: %d\n", r.DF)
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
