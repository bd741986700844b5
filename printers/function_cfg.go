package printers

import (
	"fmt"
	"strings"

	"go-tealer/cfg"
)

// FunctionCFGDot renders only the blocks owned by one subroutine, for a
// router-style contract where dumping the whole program's CFG is too much
// to read at once (spec.md §6's per-function printer).
func FunctionCFGDot(g *cfg.CFG, subroutine string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("digraph %q {\n", subroutine))
	b.WriteString("  node [shape=box fontname=monospace];\n")
	for _, blk := range g.Blocks {
		if blk.Subroutine != subroutine {
			continue
		}
		b.WriteString(fmt.Sprintf("  B%d [label=%q];\n", blk.ID, blockLabel(g.Program, blk)))
	}
	for _, blk := range g.Blocks {
		if blk.Subroutine != subroutine {
			continue
		}
		for _, e := range blk.Successors {
			if e.Kind == cfg.EdgeHalt {
				continue
			}
			target := g.Block(e.To)
			if target.Subroutine != subroutine {
				continue
			}
			b.WriteString(fmt.Sprintf("  B%d -> B%d [label=%q];\n", e.From, e.To, e.Kind.String()))
		}
	}
	b.WriteString("}\n")
	return b.String()
}
