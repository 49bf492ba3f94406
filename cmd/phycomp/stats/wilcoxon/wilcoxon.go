// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package wilcoxon implements a command
// for rank based two sample tests.
package wilcoxon

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/dataset"
	"github.com/js-arias/phycomp/hypotest"
)

var Command = &command.Command{
	Usage: `wilcoxon --x <column> --y <column>
	[--paired]
	[<data-file>]`,
	Short: "Wilcoxon rank based tests",
	Long: `
Command wilcoxon performs a rank based test over two columns of a
tab-delimited data file and print the test statistic, its normal
approximation, and the two sided p-value in the standard output.

The argument of the command is the name of the data file, a tab-delimited
table with a header row naming the columns. If no file is given the data will
be read from the standard input.

The flags --x and --y are required and indicate the two columns of the test.
By default the columns are taken as independent samples, and a rank sum
(Wilcoxon-Mann-Whitney) test is performed, reporting the Mann-Whitney U
statistic. With the flag --paired the observations of both columns are taken
as paired, and a signed rank test is performed, reporting the positive rank
sum V; zero differences are discarded.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var xCol string
var yCol string
var paired bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&xCol, "x", "", "")
	c.Flags().StringVar(&yCol, "y", "", "")
	c.Flags().BoolVar(&paired, "paired", false, "")
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

	var r *hypotest.WilcoxonTest
	stat := "U"
	if paired {
		r, err = hypotest.SignedRank(x, y)
		stat = "V"
	} else {
		r, err = hypotest.RankSum(x, y)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "%s: %.6f\n", stat, r.Statistic)
	fmt.Fprintf(c.Stdout(), "z: %.6f\n", r.Z)
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
