// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package manova implements a command
// for one way multivariate analysis of variance.
package manova

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/dataset"
	"github.com/js-arias/phycomp/hypotest"
)

var Command = &command.Command{
	Usage: `manova --group <column> --values <column>,<column>...
	[<data-file>]`,
	Short: "one way multivariate analysis of variance",
	Long: `
Command manova performs a one way multivariate analysis of variance over a
tab-delimited data file and print Wilks' lambda, its F approximation with the
degrees of freedom, and the p-value in the standard output.

The argument of the command is the name of the data file, a tab-delimited
table with a header row naming the columns. If no file is given the data will
be read from the standard input.

The flag --group is required and indicates the column with the group labels;
the flag --values is required and indicates the columns with the numeric
variables, as a comma separated list.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var groupCol string
var valueCols string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&groupCol, "group", "", "")
	c.Flags().StringVar(&valueCols, "values", "", "")
}

func run(c *command.Command, args []string) error {
	if groupCol == "" || valueCols == "" {
		return c.UsageError("expecting flags --group and --values")
	}

	var cols []string
	for _, v := range strings.Split(valueCols, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		cols = append(cols, v)
	}
	if len(cols) < 2 {
		return c.UsageError("expecting at least two value columns")
	}

	d, err := readData(c.Stdin(), args)
	if err != nil {
		return err
	}
	_, groups, err := d.GroupVectors(groupCol, cols)
	if err != nil {
		return err
	}

	r, err := hypotest.MANOVA(groups)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "Wilks lambda: %.6f\n", r.Lambda)
	fmt.Fprintf(c.Stdout(), "F: %.6f\n", r.F)
	fmt.Fprintf(c.Stdout(), "df: %.2f, %.2f\n", r.DF1, r.DF2)
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
