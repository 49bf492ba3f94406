// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick implements reading and writing
// of phylogenetic trees in the Newick
// (parenthetical) format,
// with branch lengths given in million years.
package newick

import (
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/timetree"
)

const millionYears = 1_000_000

// Read reads one or more trees in Newick format,
// naming them with the indicated name
// (if there are multiple trees,
// the name is used as a prefix).
//
// Branch lengths are expected to be in million years.
// If age is zero,
// the root age will be set from the largest distance
// between the root and a terminal.
//
// The descendants of each node are stored
// in the canonical order defined by timetree,
// so the tip order of the resulting tree
// can be different from the order
// in the input text.
func Read(r io.Reader, name string, age int64) (*timetree.Collection, error) {
	c, err := timetree.Newick(r, name, age)
	if err != nil {
		return nil, fmt.Errorf("while reading newick data: %v", err)
	}
	return c, nil
}

// String returns the Newick representation of a tree,
// with branch lengths in million years.
func String(t *timetree.Tree) string {
	var sb strings.Builder
	writeNode(&sb, t, t.Root())
	sb.WriteString(";")
	return sb.String()
}

// Write writes a tree in Newick format,
// with branch lengths in million years,
// in a single line.
func Write(w io.Writer, t *timetree.Tree) error {
	if _, err := fmt.Fprintf(w, "%s\n", String(t)); err != nil {
		return fmt.Errorf("while writing newick data: %v", err)
	}
	return nil
}

// TipOrder returns the terminal labels of a tree
// in tree order,
// that is,
// the order in which the terminals appear
// in the Newick output of the tree
// (the canonical node order defined by timetree,
// not the order of the text the tree was read from).
//
// Positional trait data
// (see the traits package)
// must follow this order.
func TipOrder(t *timetree.Tree) []string {
	var terms []string
	var walk func(n int)
	walk = func(n int) {
		if t.IsTerm(n) {
			terms = append(terms, t.Taxon(n))
			return
		}
		for _, c := range t.Children(n) {
			walk(c)
		}
	}
	walk(t.Root())
	return terms
}

func writeNode(sb *strings.Builder, t *timetree.Tree, n int) {
	if t.IsTerm(n) {
		sb.WriteString(label(t.Taxon(n)))
	} else {
		sb.WriteString("(")
		for i, c := range t.Children(n) {
			if i > 0 {
				sb.WriteString(",")
			}
			writeNode(sb, t, c)
		}
		sb.WriteString(")")
	}

	if t.IsRoot(n) {
		return
	}
	brLen := float64(t.Age(t.Parent(n))-t.Age(n)) / millionYears
	fmt.Fprintf(sb, ":%.6f", brLen)
}

func label(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
