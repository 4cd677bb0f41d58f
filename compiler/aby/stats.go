//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/markkurossi/abyc/compiler/utils"
	"github.com/markkurossi/tabulate"
)

// ComputationStats holds the lowering statistics of one computation.
type ComputationStats struct {
	Name     string
	Terms    int
	Shares   int
	Inputs   int
	Outputs  int
	Consts   int
	Gates    map[string]int
	Duration time.Duration

	embedded time.Time
}

// NumGates returns the total number of emitted instructions.
func (s *ComputationStats) NumGates() int {
	var sum int
	for _, count := range s.Gates {
		sum += count
	}
	return sum
}

// Stats holds the lowering statistics of a program.
type Stats struct {
	Computations []*ComputationStats
	Shares       int
	Timing       *utils.Timing
}

// Lookup returns the statistics of the named computation.
func (s *Stats) Lookup(name string) *ComputationStats {
	for _, c := range s.Computations {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Print prints the statistics table to the writer.
func (s *Stats) Print(out io.Writer) {
	tab := tabulate.New(utils.Style(out))
	tab.Header("Computation").SetAlign(tabulate.ML)
	tab.Header("Terms").SetAlign(tabulate.MR)
	tab.Header("Shares").SetAlign(tabulate.MR)
	tab.Header("In").SetAlign(tabulate.MR)
	tab.Header("Out").SetAlign(tabulate.MR)
	tab.Header("Consts").SetAlign(tabulate.MR)
	tab.Header("Gates").SetAlign(tabulate.MR)
	tab.Header("Time").SetAlign(tabulate.MR)

	for _, c := range s.Computations {
		row := tab.Row()
		row.Column(c.Name)
		row.Column(fmt.Sprintf("%d", c.Terms))
		row.Column(fmt.Sprintf("%d", c.Shares))
		row.Column(fmt.Sprintf("%d", c.Inputs))
		row.Column(fmt.Sprintf("%d", c.Outputs))
		row.Column(fmt.Sprintf("%d", c.Consts))
		row.Column(fmt.Sprintf("%d", c.NumGates()))
		row.Column(c.Duration.String())

		var ops []string
		for op := range c.Gates {
			ops = append(ops, op)
		}
		sort.Strings(ops)
		for idx, op := range ops {
			row := tab.Row()
			if idx+1 >= len(ops) {
				row.Column("╰╴" + op).SetFormat(tabulate.FmtItalic)
			} else {
				row.Column("├╴" + op).SetFormat(tabulate.FmtItalic)
			}
			for i := 0; i < 5; i++ {
				row.Column("")
			}
			row.Column(fmt.Sprintf("%d", c.Gates[op])).
				SetFormat(tabulate.FmtItalic)
		}
	}
	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column("")
	row.Column(fmt.Sprintf("%d", s.Shares)).SetFormat(tabulate.FmtBold)

	tab.Print(out)
}
