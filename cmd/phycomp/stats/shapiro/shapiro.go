// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package shapiro implements a command
// for the Shapiro-Wilk normality test.
package shapiro

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/dataset"
	"github.com/js-arias/phycomp/hypotest"
)

var Command = &command.Command{
	Usage: "shapiro --column <column> [<data-file>]",
	Short: "Shapiro-Wilk normality test",
	Long: `
Command shapiro tests whether the values of a column of a tab-delimited data
file come from a normal distribution, using the Shapiro-Wilk test, and print
the W statistic and its p-value in the standard output.

The argument of the command is the name of the data file, a tab-delimited
table with a header row naming the columns. If no file is given the data will
be read from the standard input.

The flag --column is required and indicates the column to be tested.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var colName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&colName, "column", "", "")
}

func run(c *command.Command, args []string) error {
	if colName == "" {
		return c.UsageError("expecting flag --column")
	}

	d, err := readData(c.Stdin(), args)
	if err != nil {
		return err
	}
	vals, err := d.Column(colName)
	if err != nil {
		return err
	}

	r, err := hypotest.ShapiroWilk(vals)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "W: %.6f\n", r.W)
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
