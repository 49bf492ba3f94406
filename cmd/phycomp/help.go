// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(projectsGuide)
	app.Add(stateCodesGuide)
	app.Add(traitFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
PhyComp requires several files to read and process comparative data. To reduce
the burden of keeping track of many files, a single project file is used to
hold the reference of all files required in the analysis. This guide explains
the structure of the file, but most of the time, the best and most secure way
to edit or view this file is by using phycomp commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# phycomp project files
	dataset	path
	states	states.tab
	traits	traits.tab
	trees	trees.tab

The valid file types are:

- Time-calibrated trees. Defined by the dataset keyword "trees". This file
  contains one or more trees in the form of a tab-delimited file. The
  recommended way to add a tree file is by using the command
  'phycomp tree add'.
- Continuous trait measurements. Defined by the dataset keyword "traits".
  This file contains a table of numeric trait values per taxon in the form of
  a tab-delimited file. The recommended way to add a trait file is by using
  the command 'phycomp trait add'.
- Discrete trait states. Defined by the dataset keyword "states". This file
  contains a single discretized trait with an integer state code per taxon.
  The recommended way to create a state file is by using the command
  'phycomp trait discretize'.
	`,
}

var traitFilesGuide = &command.Command{
	Usage: "trait-files",
	Short: "about trait files",
	Long: `
In PhyComp, continuous trait measurements are stored in a tab-delimited file
with a "taxon" column and one column per trait. Any column that is not the
taxon column is read as a trait with numeric values.

Here is an example file:

	taxon	body mass	brain volume
	Homo sapiens	62.000000	1350.000000
	Pan troglodytes	45.000000	395.000000
	Gorilla gorilla	105.000000	465.000000

Comparative analyses read trait values position by position, paired with the
terminals of a tree, so before any model fitting the rows of the table must be
reordered to match the terminal order of the tree in use. The command
'phycomp trait match' reads the trait file, reorders the rows to the terminal
order of a tree, and rewrites the file; it will fail if a terminal of the tree
has no matching row in the table.

In a PhyComp project, the file that contains the trait table is indicated with
the "traits" keyword.
	`,
}

var stateCodesGuide = &command.Command{
	Usage: "state-codes",
	Short: "about discrete state codes",
	Long: `
Discrete trait states in PhyComp are plain integer codes stored in a
tab-delimited file with the following columns:

	- taxon  the name of the taxon
	- trait  the name of the discretized trait
	- state  the integer state code of the taxon

Here is an example file:

	taxon	trait	state
	Homo sapiens	body mass	1
	Pan troglodytes	body mass	2
	Gorilla gorilla	body mass	1

The state code 0 is reserved: model fitting commands read a taxon with state 0
as unscored, that is, as a taxon without a valid observation of the trait.
Because of that, a discretization that uses 0 as a valid state must be
remapped to a free code before model fitting. The command
'phycomp trait discretize' splits a continuous trait at its median into
states 0 and 1, and by default remaps state 0 to state 2, so the resulting
file uses the codes 1 and 2.

In a PhyComp project, the file that contains the trait states is indicated
with the "states" keyword.
	`,
}
