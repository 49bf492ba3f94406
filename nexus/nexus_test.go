// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package nexus_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phycomp/newick"
	"github.com/js-arias/phycomp/nexus"
)

var nexusData = strings.Join([]string{
	"#NEXUS",
	"BEGIN TREES;",
	"TREE apes = ((Pan_troglodytes:6,Homo_sapiens:6):2,Gorilla_gorilla:8);",
	"END;",
	"",
}, "\n")

func TestRead(t *testing.T) {
	c, err := nexus.Read(strings.NewReader(nexusData), "tree", 0)
	if err != nil {
		t.Fatalf("unable to read nexus data: %v", err)
	}

	names := c.Names()
	if len(names) != 1 {
		t.Fatalf("trees: got %d, want 1", len(names))
	}

	tr := c.Tree(names[0])
	if tr == nil {
		t.Fatalf("undefined tree %q", names[0])
	}

	// tips in timetree canonical order
	order := []string{"Gorilla gorilla", "Homo sapiens", "Pan troglodytes"}
	if g := newick.TipOrder(tr); !reflect.DeepEqual(g, order) {
		t.Errorf("tip order: got %v, want %v", g, order)
	}
	if g := tr.Age(tr.Root()); g != 8_000_000 {
		t.Errorf("root age: got %d, want %d", g, 8_000_000)
	}
}

func TestReadRootAge(t *testing.T) {
	c, err := nexus.Read(strings.NewReader(nexusData), "tree", 10_000_000)
	if err != nil {
		t.Fatalf("unable to read nexus data: %v", err)
	}

	tr := c.Tree(c.Names()[0])
	if tr == nil {
		t.Fatalf("undefined tree %q", c.Names()[0])
	}
	if g := tr.Age(tr.Root()); g != 10_000_000 {
		t.Errorf("root age: got %d, want %d", g, 10_000_000)
	}
}
