// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package traits

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadTSV reads a trait table from a TSV file.
//
// The TSV file must contain a "taxon" field
// with the name of the taxon of each row;
// any other field is read as a trait column
// with numeric values.
// Rows keep the order they have in the file.
//
// Here is an example file:
//
//	taxon	body mass	brain volume
//	Homo sapiens	62.000000	1350.000000
//	Pan troglodytes	45.000000	395.000000
//	Gorilla gorilla	105.000000	465.000000
func ReadTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}

	taxCol := -1
	var cols []string
	var colPos []int
	for i, h := range head {
		h = strings.Join(strings.Fields(strings.ToLower(h)), " ")
		if h == "taxon" {
			taxCol = i
			continue
		}
		cols = append(cols, h)
		colPos = append(colPos, i)
	}
	if taxCol < 0 {
		return nil, fmt.Errorf("expecting field %q", "taxon")
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("expecting at least one trait field")
	}

	tb := NewTable(cols...)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		vals := make([]float64, len(cols))
		for j, p := range colPos {
			v, err := strconv.ParseFloat(row[p], 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %q: %v", ln, cols[j], row[p], err)
			}
			vals[j] = v
		}
		if err := tb.Add(row[taxCol], vals); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return tb, nil
}

// TSV writes a trait table to a TSV file,
// preserving the row order of the table.
func (tb *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := append([]string{"taxon"}, tb.columns...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, tax := range tb.taxa {
		row := make([]string, 0, len(tb.columns)+1)
		row = append(row, tax)
		for _, v := range tb.rows[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

var statesHeader = []string{
	"taxon",
	"trait",
	"state",
}

// ReadStatesTSV reads a state collection from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - taxon, the name of the taxon
//   - trait, the name of the discretized trait
//   - state, the integer state code of the taxon
//
// Here is an example file:
//
//	taxon	trait	state
//	Homo sapiens	body mass	1
//	Pan troglodytes	body mass	2
//	Gorilla gorilla	body mass	1
func ReadStatesTSV(r io.Reader) (*States, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range statesHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var st *States
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "trait"
		if st == nil {
			st = NewStates(row[fields[f]])
		}

		f = "state"
		c, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %q: %v", ln, f, row[fields[f]], err)
		}

		f = "taxon"
		if err := st.Add(row[fields[f]], c); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	if st == nil {
		return nil, fmt.Errorf("while reading data: empty file")
	}
	return st, nil
}

// TSV writes a state collection to a TSV file,
// preserving the row order of the collection.
func (s *States) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(statesHeader); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, tax := range s.taxa {
		row := []string{
			tax,
			s.trait,
			strconv.Itoa(s.codes[i]),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
