// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package dataset_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phycomp/dataset"
)

var blob = `# example data
species	habitat	mass	length
fox	forest	5.5	60
hare	field	3.1	48
deer	forest	80	190
vole	field	0.03	11
`

func TestReadTSV(t *testing.T) {
	d, err := dataset.ReadTSV(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cols := []string{"species", "habitat", "mass", "length"}
	if g := d.Columns(); !reflect.DeepEqual(g, cols) {
		t.Errorf("columns: got %v, want %v", g, cols)
	}
	if d.Len() != 4 {
		t.Errorf("rows: got %d, want 4", d.Len())
	}

	mass, err := d.Column("mass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w := []float64{5.5, 3.1, 80, 0.03}; !reflect.DeepEqual(mass, w) {
		t.Errorf("mass: got %v, want %v", mass, w)
	}

	sp, err := d.Strings("species")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w := []string{"fox", "hare", "deer", "vole"}; !reflect.DeepEqual(sp, w) {
		t.Errorf("species: got %v, want %v", sp, w)
	}

	if _, err := d.Column("habitat"); err == nil {
		t.Errorf("expecting error for a non numeric column")
	}
	if _, err := d.Column("weight"); err == nil {
		t.Errorf("expecting error for an unknown column")
	}
}

func TestGroups(t *testing.T) {
	d, err := dataset.ReadTSV(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names, groups, err := d.Groups("habitat", "mass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w := []string{"forest", "field"}; !reflect.DeepEqual(names, w) {
		t.Errorf("groups: got %v, want %v", names, w)
	}
	want := [][]float64{
		{5.5, 80},
		{3.1, 0.03},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("values: got %v, want %v", groups, want)
	}
}

func TestGroupVectors(t *testing.T) {
	d, err := dataset.ReadTSV(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names, groups, err := d.GroupVectors("habitat", []string{"mass", "length"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w := []string{"forest", "field"}; !reflect.DeepEqual(names, w) {
		t.Errorf("groups: got %v, want %v", names, w)
	}
	want := [][][]float64{
		{{5.5, 60}, {80, 190}},
		{{3.1, 48}, {0.03, 11}},
	}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("values: got %v, want %v", groups, want)
	}
}
