// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package traits

import (
	"fmt"
	"slices"
	"strings"
)

// States is a collection of discrete trait states
// observed in a set of taxa.
// Rows are keyed by taxon name
// and keep their insertion order.
//
// State codes are plain integers.
// Code 0 is reserved to indicate an unscored taxon
// by the discrete model fitting,
// so data to be used in model fitting
// should remap any valid 0 code to a free code
// (see Remap).
type States struct {
	trait string
	taxa  []string
	index map[string]int
	codes []int
}

// NewStates creates a new empty state collection
// for the given trait name.
func NewStates(trait string) *States {
	trait = strings.Join(strings.Fields(strings.ToLower(trait)), " ")
	return &States{
		trait: trait,
		index: make(map[string]int),
	}
}

// Add adds the state of a given taxon.
// The taxon must not be already in the collection.
func (s *States) Add(taxon string, state int) error {
	taxon = canon(taxon)
	if taxon == "" {
		return fmt.Errorf("expecting taxon name")
	}
	if _, dup := s.index[taxon]; dup {
		return fmt.Errorf("taxon %q: %w", taxon, ErrRepeated)
	}

	s.index[taxon] = len(s.taxa)
	s.taxa = append(s.taxa, taxon)
	s.codes = append(s.codes, state)
	return nil
}

// Code returns the state of a given taxon.
func (s *States) Code(taxon string) (int, bool) {
	i, ok := s.index[canon(taxon)]
	if !ok {
		return 0, false
	}
	return s.codes[i], true
}

// Codes returns the state codes,
// in row order.
func (s *States) Codes() []int {
	return slices.Clone(s.codes)
}

// Len returns the number of taxa in the collection.
func (s *States) Len() int {
	return len(s.taxa)
}

// Observed returns the distinct state codes
// observed in the collection,
// in ascending order.
func (s *States) Observed() []int {
	obs := make(map[int]bool, 2)
	for _, c := range s.codes {
		obs[c] = true
	}

	codes := make([]int, 0, len(obs))
	for c := range obs {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Remap returns a new state collection
// in which every state equal to from
// is replaced by the state to.
// All other states are kept untouched.
func (s *States) Remap(from, to int) *States {
	ns := NewStates(s.trait)
	for i, tax := range s.taxa {
		c := s.codes[i]
		if c == from {
			c = to
		}
		// Add can not fail:
		// taxa come from a valid collection.
		ns.Add(tax, c)
	}
	return ns
}

// Taxa returns the taxa of the collection,
// in row order.
func (s *States) Taxa() []string {
	return slices.Clone(s.taxa)
}

// Trait returns the name of the discretized trait.
func (s *States) Trait() string {
	return s.trait
}
