// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package trait is a metapackage for commands
// that dealt with continuous trait measurements.
package trait

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/cmd/phycomp/trait/add"
	"github.com/js-arias/phycomp/cmd/phycomp/trait/discretize"
	"github.com/js-arias/phycomp/cmd/phycomp/trait/match"
	"github.com/js-arias/phycomp/cmd/phycomp/trait/plot"
)

var Command = &command.Command{
	Usage: "trait <command> [<argument>...]",
	Short: "commands for continuous trait data",
}

func init() {
	Command.Add(add.Command)
	Command.Add(discretize.Command)
	Command.Add(match.Command)
	Command.Add(plot.Command)
}
