// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyComp is a tool for phylogenetic comparative analysis.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/cmd/phycomp/fit"
	"github.com/js-arias/phycomp/cmd/phycomp/stats"
	"github.com/js-arias/phycomp/cmd/phycomp/trait"
	"github.com/js-arias/phycomp/cmd/phycomp/tree"
)

var app = &command.Command{
	Usage: "phycomp <command> [<argument>...]",
	Short: "a tool for phylogenetic comparative analysis",
}

func init() {
	app.Add(fit.Command)
	app.Add(stats.Command)
	app.Add(trait.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
