// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/timetree"
)

const treeData = "((Pan_troglodytes:6.000000,Homo_sapiens:6.000000):2.000000,Gorilla_gorilla:8.000000);"

func TestRead(t *testing.T) {
	c, err := newick.Read(strings.NewReader(treeData), "apes", 0)
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}

	tr := firstTree(t, c)

	// timetree stores the descendants of a node
	// in its own canonical order,
	// so the tip order is independent
	// of the order in the input text
	order := []string{"Gorilla gorilla", "Homo sapiens", "Pan troglodytes"}
	if g := newick.TipOrder(tr); !reflect.DeepEqual(g, order) {
		t.Errorf("tip order: got %v, want %v", g, order)
	}

	if g := tr.Age(tr.Root()); g != 8_000_000 {
		t.Errorf("root age: got %d, want %d", g, 8_000_000)
	}
}

func TestRoundTrip(t *testing.T) {
	c, err := newick.Read(strings.NewReader(treeData), "apes", 0)
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	tr := firstTree(t, c)

	out := newick.String(tr)
	nc, err := newick.Read(strings.NewReader(out), "apes", 0)
	if err != nil {
		t.Fatalf("unable to read written tree: %v", err)
	}
	nt := firstTree(t, nc)

	// same tip order
	if g, w := newick.TipOrder(nt), newick.TipOrder(tr); !reflect.DeepEqual(g, w) {
		t.Errorf("round trip: tip order: got %v, want %v", g, w)
	}

	// same terminal ages and branch lengths,
	// checked through a second write:
	// the output must be a fixed point
	if g := newick.String(nt); g != out {
		t.Errorf("round trip: output: got %q, want %q", g, out)
	}

	if g, w := nt.Age(nt.Root()), tr.Age(tr.Root()); g != w {
		t.Errorf("round trip: root age: got %d, want %d", g, w)
	}
}

func firstTree(t testing.TB, c *timetree.Collection) *timetree.Tree {
	t.Helper()

	names := c.Names()
	if len(names) == 0 {
		t.Fatalf("empty tree collection")
	}
	tr := c.Tree(names[0])
	if tr == nil {
		t.Fatalf("undefined tree %q", names[0])
	}
	return tr
}
