// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/phycomp/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Trees, "trees.tab"},
		{project.Traits, "traits.tab"},
		{project.States, "states.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := "tmp-project-for-test.tab"
	defer os.Remove(name)

	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)
}

func TestProjectDelete(t *testing.T) {
	p := project.New()
	p.Add(project.Trees, "trees.tab")
	p.Add(project.Traits, "traits.tab")

	if prev := p.Add(project.Traits, ""); prev != "traits.tab" {
		t.Errorf("delete: got previous path %q, want %q", prev, "traits.tab")
	}
	want := []project.Dataset{project.Trees}
	if g := p.Sets(); !reflect.DeepEqual(g, want) {
		t.Errorf("sets: got %v, want %v", g, want)
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}

	var ds []project.Dataset
	for _, s := range sets {
		ds = append(ds, s.set)
	}
	slices.Sort(ds)
	if g := p.Sets(); !reflect.DeepEqual(g, ds) {
		t.Errorf("sets: got %v, want %v", g, ds)
	}
}
