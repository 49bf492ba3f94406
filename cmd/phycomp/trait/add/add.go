// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add
// a continuous trait table to a PhyComp project.
package add

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/project"
	"github.com/js-arias/phycomp/traits"
)

var Command = &command.Command{
	Usage: `add [-f|--file <trait-file>]
	<project-file> [<data-file>...]`,
	Short: "add continuous trait data to a PhyComp project",
	Long: `
Command add read continuous trait measurements from one or more tab-delimited
files, and add the data to a PhyComp project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more data files can be given as arguments. If no file is given the
data will be read from the standard input. All input files must have the same
trait columns, and a taxon can be defined only once over all input files (see
'phycomp help trait-files' for the file format).

By default the data will be stored in the trait file currently defined for
the project. If the project does not have a trait file, a new one will be
created with the name 'traits.tab'. A different file name can be defined with
the flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var traitFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&traitFile, "file", "", "")
	c.Flags().StringVar(&traitFile, "f", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	var tb *traits.Table
	if tf := p.Path(project.Traits); tf != "" {
		tb, err = readTraitFile(nil, tf)
		if err != nil {
			return fmt.Errorf("on project %q: %v", tf, err)
		}
	}

	args = args[1:]
	if len(args) == 0 {
		args = append(args, "-")
	}
	for _, a := range args {
		fn := a
		if fn == "-" {
			fn = ""
			a = "stdin"
		}
		nt, err := readTraitFile(c.Stdin(), fn)
		if err != nil {
			return err
		}
		if tb == nil {
			tb = nt
			continue
		}
		if err := merge(tb, nt); err != nil {
			return fmt.Errorf("when adding data from %q: %v", a, err)
		}
	}

	if traitFile == "" {
		traitFile = p.Path(project.Traits)
		if traitFile == "" {
			traitFile = "traits.tab"
		}
	}

	if err := writeTraits(tb); err != nil {
		return err
	}
	p.Add(project.Traits, traitFile)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

// Merge adds the rows of table nt
// to the table tb.
// Both tables must have the same trait columns.
func merge(tb, nt *traits.Table) error {
	cols := tb.Columns()
	nc := nt.Columns()
	if len(cols) != len(nc) {
		return fmt.Errorf("got %d traits, want %d", len(nc), len(cols))
	}
	for i, n := range nc {
		if cols[i] != n {
			return fmt.Errorf("got trait %q, want %q", n, cols[i])
		}
	}

	for _, tax := range nt.Taxa() {
		vals := make([]float64, len(cols))
		for i, col := range cols {
			v, err := nt.Value(tax, col)
			if err != nil {
				return err
			}
			vals[i] = v
		}
		if err := tb.Add(tax, vals); err != nil {
			return err
		}
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func readTraitFile(r io.Reader, name string) (*traits.Table, error) {
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	tb, err := traits.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return tb, nil
}

func writeTraits(tb *traits.Table) (err error) {
	f, err := os.Create(traitFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tb.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", traitFile, err)
	}
	return nil
}
