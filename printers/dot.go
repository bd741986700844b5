// Package printers renders a built analysis (CFG, call graph, findings)
// into human- and tool-consumable forms: Graphviz DOT files, summary
// tables, and plain-text dumps.
package printers

import (
	"fmt"
	"strings"

	"go-tealer/cfg"
	"go-tealer/teal"
)

// CFGDot renders g as a Graphviz DOT digraph, one node per basic block
// labeled with its instructions, one edge per cfg.Edge labeled with its
// kind.
func CFGDot(g *cfg.CFG) string {
	var b strings.Builder
	b.WriteString("digraph cfg {\n")
	b.WriteString("  node [shape=box fontname=monospace];\n")
	for _, blk := range g.Blocks {
		b.WriteString(fmt.Sprintf("  B%d [label=%q];\n", blk.ID, blockLabel(g.Program, blk)))
	}
	for _, blk := range g.Blocks {
		for _, e := range blk.Successors {
			if e.Kind == cfg.EdgeHalt {
				continue
			}
			b.WriteString(fmt.Sprintf("  B%d -> B%d [label=%q];\n", e.From, e.To, e.Kind.String()))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func blockLabel(prog *teal.Program, b *cfg.BasicBlock) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("B%d", b.ID))
	for _, ins := range b.Instructions(prog) {
		lines = append(lines, ins.String())
	}
	return strings.Join(lines, "\n")
}

// CallGraphDot renders the call graph: one node per subroutine, one edge
// per call-site.
func CallGraphDot(edges map[string][]string) string {
	var b strings.Builder
	b.WriteString("digraph callgraph {\n")
	b.WriteString("  node [shape=ellipse fontname=monospace];\n")
	for caller, callees := range edges {
		for _, callee := range callees {
			b.WriteString(fmt.Sprintf("  %q -> %q;\n", caller, callee))
		}
	}
	b.WriteString("}\n")
	return b.String()
}
