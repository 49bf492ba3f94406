// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats is a metapackage for commands
// that perform classical statistical tests
// over plain data files.
package stats

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phycomp/cmd/phycomp/stats/anova"
	"github.com/js-arias/phycomp/cmd/phycomp/stats/chisq"
	"github.com/js-arias/phycomp/cmd/phycomp/stats/kruskal"
	"github.com/js-arias/phycomp/cmd/phycomp/stats/lm"
	"github.com/js-arias/phycomp/cmd/phycomp/stats/manova"
	"github.com/js-arias/phycomp/cmd/phycomp/stats/shapiro"
	"github.com/js-arias/phycomp/cmd/phycomp/stats/ttest"
	"github.com/js-arias/phycomp/cmd/phycomp/stats/wilcoxon"
)

var Command = &command.Command{
	Usage: "stats <command> [<argument>...]",
	Short: "commands for statistical tests",
}

func init() {
	Command.Add(anova.Command)
	Command.Add(chisq.Command)
	Command.Add(kruskal.Command)
	Command.Add(lm.Command)
	Command.Add(manova.Command)
	Command.Add(shapiro.Command)
	Command.Add(ttest.Command)
	Command.Add(wilcoxon.Command)
}
