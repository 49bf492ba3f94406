// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package traits provides a table of continuous trait measurements
// for a taxon list,
// and its discretization into trait states.
//
// Downstream comparative analyses consume trait values positionally,
// index by index with the terminals of a tree,
// so the table keeps an explicit row order
// and can be reordered to match the terminal order of any tree
// (see MatchTips).
package traits

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"gonum.org/v1/gonum/stat"
)

// Errors of the correspondence between
// tree terminals and table rows.
var (
	// ErrNoMatch is the error
	// when a tree terminal has no matching table row.
	ErrNoMatch = errors.New("terminal without matching taxon")

	// ErrRepeated is the error
	// when a terminal is matched by more than one row,
	// or appears more than once in a terminal list.
	ErrRepeated = errors.New("repeated terminal")
)

// ErrDegenerate is the error
// when a discretization does not produce
// two distinct trait states.
var ErrDegenerate = errors.New("degenerate trait partition")

// A Table is a collection of continuous trait measurements
// observed in a set of taxa.
// Rows are keyed by taxon name
// and keep their insertion order.
type Table struct {
	columns []string
	taxa    []string
	index   map[string]int
	rows    [][]float64
}

// NewTable creates a new empty table
// for the given trait columns.
func NewTable(columns ...string) *Table {
	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		c = strings.Join(strings.Fields(strings.ToLower(c)), " ")
		if c == "" {
			continue
		}
		cols = append(cols, c)
	}

	return &Table{
		columns: cols,
		index:   make(map[string]int),
	}
}

// Add adds a new row of measurements
// for a given taxon.
// The number of values must be equal
// to the number of trait columns,
// and the taxon must not be already in the table.
func (tb *Table) Add(taxon string, values []float64) error {
	taxon = canon(taxon)
	if taxon == "" {
		return fmt.Errorf("expecting taxon name")
	}
	if _, dup := tb.index[taxon]; dup {
		return fmt.Errorf("taxon %q: %w", taxon, ErrRepeated)
	}
	if len(values) != len(tb.columns) {
		return fmt.Errorf("taxon %q: got %d values, want %d", taxon, len(values), len(tb.columns))
	}

	tb.index[taxon] = len(tb.taxa)
	tb.taxa = append(tb.taxa, taxon)
	tb.rows = append(tb.rows, slices.Clone(values))
	return nil
}

// Column returns the values of a trait column,
// in row order.
func (tb *Table) Column(column string) ([]float64, error) {
	c := tb.colIndex(column)
	if c < 0 {
		return nil, fmt.Errorf("unknown trait %q", column)
	}

	vals := make([]float64, len(tb.rows))
	for i, r := range tb.rows {
		vals[i] = r[c]
	}
	return vals, nil
}

// Columns returns the names of the trait columns.
func (tb *Table) Columns() []string {
	return slices.Clone(tb.columns)
}

// HasTaxon returns true if the given taxon
// has a row in the table.
func (tb *Table) HasTaxon(name string) bool {
	_, ok := tb.index[canon(name)]
	return ok
}

// Len returns the number of rows in the table.
func (tb *Table) Len() int {
	return len(tb.taxa)
}

// MatchTips returns a new table
// with the rows reordered to match the given terminal list,
// index by index.
//
// Every terminal must match exactly one row;
// a terminal without a row is reported as an ErrNoMatch error,
// and a terminal given more than once as an ErrRepeated error.
// Rows for taxa not in the terminal list are dropped.
// The receiver table is not modified.
func (tb *Table) MatchTips(tips []string) (*Table, error) {
	nt := NewTable(tb.columns...)
	seen := make(map[string]bool, len(tips))
	for _, tip := range tips {
		name := canon(tip)
		if seen[name] {
			return nil, fmt.Errorf("tip %q: %w", tip, ErrRepeated)
		}
		seen[name] = true

		i, ok := tb.index[name]
		if !ok {
			return nil, fmt.Errorf("tip %q: %w", tip, ErrNoMatch)
		}
		if err := nt.Add(name, tb.rows[i]); err != nil {
			return nil, fmt.Errorf("tip %q: %v", tip, err)
		}
	}
	return nt, nil
}

// Taxa returns the taxa of the table,
// in row order.
func (tb *Table) Taxa() []string {
	return slices.Clone(tb.taxa)
}

// Value returns the measurement of a trait
// for a given taxon.
func (tb *Table) Value(taxon, column string) (float64, error) {
	c := tb.colIndex(column)
	if c < 0 {
		return 0, fmt.Errorf("unknown trait %q", column)
	}
	i, ok := tb.index[canon(taxon)]
	if !ok {
		return 0, fmt.Errorf("taxon %q: %w", taxon, ErrNoMatch)
	}
	return tb.rows[i][c], nil
}

// Discretize splits a trait column at its median
// into two states:
// values smaller than the median are given state 0,
// and values at, or greater than, the median are given state 1
// (ties at the median always go to the upper state).
//
// The median is the empirical quantile at probability 0.5.
// If the split does not produce two distinct states
// (an empty or constant column),
// it returns an ErrDegenerate error.
//
// State 0 is reserved by the discrete model fitting
// for unscored taxa,
// so the resulting states should be remapped
// (see States.Remap)
// before model fitting.
func (tb *Table) Discretize(column string) (*States, error) {
	vals, err := tb.Column(column)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("trait %q: empty column: %w", column, ErrDegenerate)
	}

	sv := slices.Clone(vals)
	slices.Sort(sv)
	median := stat.Quantile(0.5, stat.Empirical, sv, nil)

	st := NewStates(column)
	low, up := false, false
	for i, v := range vals {
		s := 0
		if v >= median {
			s = 1
			up = true
		} else {
			low = true
		}
		if err := st.Add(tb.taxa[i], s); err != nil {
			return nil, fmt.Errorf("trait %q: %v", column, err)
		}
	}
	if !low || !up {
		return nil, fmt.Errorf("trait %q: single state produced: %w", column, ErrDegenerate)
	}
	return st, nil
}

func (tb *Table) colIndex(column string) int {
	column = strings.Join(strings.Fields(strings.ToLower(column)), " ")
	return slices.Index(tb.columns, column)
}

// Canon returns a taxon name
// in its canonical form.
func canon(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[n:]
}
