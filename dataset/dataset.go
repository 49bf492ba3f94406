// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dataset implements a reader
// for simple tab-delimited data files,
// tables with a header row
// and one observation per row,
// used by the statistical commands.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Dataset is a table of observations
// read from a tab-delimited file.
// Columns are keyed by name
// (case insensitive),
// and rows keep the file order.
type Dataset struct {
	columns []string
	fields  map[string]int
	rows    [][]string
}

// ReadTSV reads a data set
// from a tab-delimited file
// with a header row
// naming the columns.
func ReadTSV(r io.Reader) (*Dataset, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}

	d := &Dataset{
		fields: make(map[string]int, len(head)),
	}
	for i, h := range head {
		h = strings.Join(strings.Fields(strings.ToLower(h)), " ")
		if h == "" {
			return nil, fmt.Errorf("header: empty column name at field %d", i+1)
		}
		if _, dup := d.fields[h]; dup {
			return nil, fmt.Errorf("header: repeated column %q", h)
		}
		d.fields[h] = i
		d.columns = append(d.columns, h)
	}

	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		d.rows = append(d.rows, row)
	}
	return d, nil
}

// Columns returns the column names,
// in file order.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Column returns the values of a numeric column.
func (d *Dataset) Column(name string) ([]float64, error) {
	f, ok := d.fields[canon(name)]
	if !ok {
		return nil, fmt.Errorf("column %q: not in data set", name)
	}

	vals := make([]float64, len(d.rows))
	for i, row := range d.rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[f]), 64)
		if err != nil {
			return nil, fmt.Errorf("column %q: row %d: %v", name, i+2, err)
		}
		vals[i] = v
	}
	return vals, nil
}

// Strings returns the values of a column
// as strings.
func (d *Dataset) Strings(name string) ([]string, error) {
	f, ok := d.fields[canon(name)]
	if !ok {
		return nil, fmt.Errorf("column %q: not in data set", name)
	}

	vals := make([]string, len(d.rows))
	for i, row := range d.rows {
		vals[i] = strings.TrimSpace(row[f])
	}
	return vals, nil
}

// Groups splits a numeric column
// by the labels of a grouping column.
// Group labels are returned
// in order of first appearance.
func (d *Dataset) Groups(group, value string) ([]string, [][]float64, error) {
	labels, err := d.Strings(group)
	if err != nil {
		return nil, nil, err
	}
	vals, err := d.Column(value)
	if err != nil {
		return nil, nil, err
	}

	index := make(map[string]int)
	var names []string
	var groups [][]float64
	for i, l := range labels {
		g, ok := index[l]
		if !ok {
			g = len(names)
			index[l] = g
			names = append(names, l)
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], vals[i])
	}
	return names, groups, nil
}

// GroupVectors splits a set of numeric columns
// by the labels of a grouping column,
// one vector of values per row.
// Group labels are returned
// in order of first appearance.
func (d *Dataset) GroupVectors(group string, values []string) ([]string, [][][]float64, error) {
	labels, err := d.Strings(group)
	if err != nil {
		return nil, nil, err
	}

	cols := make([][]float64, len(values))
	for i, v := range values {
		c, err := d.Column(v)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = c
	}

	index := make(map[string]int)
	var names []string
	var groups [][][]float64
	for i, l := range labels {
		g, ok := index[l]
		if !ok {
			g = len(names)
			index[l] = g
			names = append(names, l)
			groups = append(groups, nil)
		}
		obs := make([]float64, len(cols))
		for j, c := range cols {
			obs[j] = c[i]
		}
		groups[g] = append(groups[g], obs)
	}
	return names, groups, nil
}

func canon(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
