package parser

import (
	"fmt"
	"strings"

	"go-tealer/teal"
)

// Format renders a Program back to canonical TEAL source. Used to check the
// parser invariant "parse then pretty-print yields an equivalent
// instruction list" (spec.md §8).
func Format(prog *teal.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#pragma version %d\n", prog.Version)

	labelsByIndex := map[int][]string{}
	for name, idx := range prog.Labels {
		labelsByIndex[idx] = append(labelsByIndex[idx], name)
	}

	for i, ins := range prog.Instructions {
		for _, name := range labelsByIndex[i] {
			fmt.Fprintf(&b, "%s:\n", name)
		}
		fmt.Fprintf(&b, "%s\n", ins.String())
	}
	return b.String()
}
