// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package fit is a metapackage for commands
// that fit models of trait evolution.
package fit

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/cmd/phycomp/fit/contcmd"
	"github.com/js-arias/phycomp/cmd/phycomp/fit/mk"
	"github.com/js-arias/phycomp/cmd/phycomp/fit/pic"
)

var Command = &command.Command{
	Usage: "fit <command> [<argument>...]",
	Short: "commands to fit models of trait evolution",
}

func init() {
	Command.Add(contcmd.Command)
	Command.Add(mk.Command)
	Command.Add(pic.Command)
}
