// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package nexus implements importing of phylogenetic trees
// from files in the Nexus format,
// a block-structured text format
// that carries one or more trees
// with auxiliary metadata blocks.
package nexus

import (
	"fmt"
	"io"
	"strings"

	"github.com/evolbioinfo/gotree/io/nexus"
	gotree "github.com/evolbioinfo/gotree/tree"
	"github.com/js-arias/timetree"
)

// Read reads the trees of a Nexus file.
//
// Branch lengths are expected to be in million years.
// If age is zero,
// the root age of each tree will be set
// from the largest distance
// between the root and a terminal.
// Trees keep the names given in the trees block;
// unnamed trees are named with the given name
// and the position of the tree in the file.
func Read(r io.Reader, name string, age int64) (*timetree.Collection, error) {
	n, err := nexus.NewParser(r).Parse()
	if err != nil {
		return nil, fmt.Errorf("while reading nexus data: %v", err)
	}

	coll := timetree.NewCollection()
	var tErr error
	i := 0
	n.IterateTrees(func(tn string, t *gotree.Tree) {
		if tErr != nil {
			return
		}
		if tn == "" {
			tn = fmt.Sprintf("%s.%d", name, i)
		}
		i++

		nc, err := timetree.Newick(strings.NewReader(t.Newick()), tn, age)
		if err != nil {
			tErr = fmt.Errorf("on tree %q: %v", tn, err)
			return
		}
		for _, tn := range nc.Names() {
			if err := coll.Add(nc.Tree(tn)); err != nil {
				tErr = fmt.Errorf("on tree %q: %v", tn, err)
				return
			}
		}
	})
	if tErr != nil {
		return nil, tErr
	}
	if len(coll.Names()) == 0 {
		return nil, fmt.Errorf("while reading nexus data: no trees in file")
	}

	return coll, nil
}
