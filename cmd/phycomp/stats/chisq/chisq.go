// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package chisq implements a command
// for chi-square tests.
package chisq

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/dataset"
	"github.com/js-arias/phycomp/hypotest"
)

var Command = &command.Command{
	Usage: `chisq [--observed <column>] [--expected <column>]
	[<data-file>]`,
	Short: "chi-square tests",
	Long: `
Command chisq performs a chi-square test over a tab-delimited data file and
print the chi-square statistic, the degrees of freedom, and the p-value in
the standard output.

The argument of the command is the name of the data file, a tab-delimited
table with a header row naming the columns. If no file is given the data will
be read from the standard input.

By default all the columns of the file are read as a contingency table of
counts, and a test of independence between rows and columns is performed.

If the flag --observed is given, a goodness of fit test of the counts of the
indicated column is performed. By default a uniform expectation is used; the
flag --expected indicates a column with the expected counts, that will be
rescaled to the total of the observed counts.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var obsCol string
var expCol string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&obsCol, "observed", "", "")
	c.Flags().StringVar(&expCol, "expected", "", "")
}

func run(c *command.Command, args []string) error {
	d, err := readData(c.Stdin(), args)
	if err != nil {
		return err
	}

	var r *hypotest.ChiSquareTest
	if obsCol != "" {
		obs, err := d.Column(obsCol)
		if err != nil {
			return err
		}
		var exp []float64
		if expCol != "" {
			exp, err = d.Column(expCol)
			if err != nil {
				return err
			}
		}
		r, err = hypotest.ChiSquareGOF(obs, exp)
		if err != nil {
			return err
		}
	} else {
		table, err := contingency(d)
		if err != nil {
			return err
		}
		r, err = hypotest.ChiSquareIndependence(table)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(c.Stdout(), "X2: %.6f\n", r.X2)
	fmt.Fprintf(c.Stdout(), "df: %d\n", r.DF)
	fmt.Fprintf(c.Stdout(), "p-value: %.6f\n", r.P)
	return nil
}

// Contingency reads all the columns of a data set
// as a table of counts,
// one row per data row.
func contingency(d *dataset.Dataset) ([][]float64, error) {
	cols := d.Columns()
	vals := make([][]float64, len(cols))
	for i, c := range cols {
		v, err := d.Column(c)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	table := make([][]float64, d.Len())
	for i := range table {
		row := make([]float64, len(cols))
		for j := range cols {
			row[j] = vals[j][i]
		}
		table[i] = row
	}
	return table, nil
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
