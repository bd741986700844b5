// Package regexmatch implements the external regex engine named in spec.md
// §1 as an out-of-core-scope collaborator: it receives an already-built CFG
// and a small instruction-sequence pattern, and reports every path through
// the CFG where the pattern matches contiguous instructions.
//
// Grounded on the original's tealer/utils/regex/regex.py: a pattern is a
// label (or "*" for the entry point) followed by a straight-line sequence
// of instructions to match verbatim against the program, one edge at a
// time, refusing to follow a branch mid-pattern.
package regexmatch

import (
	"fmt"
	"strings"

	"go-tealer/cfg"
	"go-tealer/parser"
	"go-tealer/teal"
)

// Pattern is a parsed regex: where to start looking, and the instruction
// sequence that must follow contiguously from there.
type Pattern struct {
	Label        string
	Instructions []*teal.Instruction
}

// Parse reads the "label => instructions" text format used by the original
// tool's regex files.
func Parse(text string) (*Pattern, error) {
	idx := strings.Index(text, "=>")
	if idx < 0 {
		return nil, fmt.Errorf("regexmatch: missing \"=>\" separator")
	}
	label := strings.TrimSpace(text[:idx])
	body := strings.TrimSpace(text[idx+2:])
	if label == "" {
		return nil, fmt.Errorf("regexmatch: empty label")
	}

	prog, err := parser.Parse(body, "<regex>")
	if err != nil {
		return nil, fmt.Errorf("regexmatch: parsing pattern body: %w", err)
	}
	if len(prog.Instructions) == 0 {
		return nil, fmt.Errorf("regexmatch: pattern body has no instructions")
	}
	return &Pattern{Label: label, Instructions: prog.Instructions}, nil
}

// Match is one contiguous run of program instructions (by index into
// prog.Instructions) that matched a Pattern.
type Match struct {
	Indices []int
}

// Result is the outcome of running a Pattern against a CFG: every matching
// run, plus every instruction visited along the way while searching for
// one (the original's "covered" set, used to shade a rendered CFG).
type Result struct {
	Matches []Match
	Covered map[int]bool
}

// Run searches g for every path starting at Pattern.Label (or the entry
// block's first instruction, for "*") where the pattern's instructions
// match a contiguous, unbranching run of program instructions.
func Run(g *cfg.CFG, prog *teal.Program, p *Pattern) (*Result, error) {
	start, err := startIndex(g, prog, p.Label)
	if err != nil {
		return nil, err
	}

	res := &Result{Covered: map[int]bool{}}
	visited := map[int]bool{}
	findInstructions(g, prog, start, p.Instructions, visited, res)
	return res, nil
}

func startIndex(g *cfg.CFG, prog *teal.Program, label string) (int, error) {
	if label == "*" {
		return g.Entry().First, nil
	}
	idx, ok := prog.Labels[label]
	if !ok {
		return 0, fmt.Errorf("regexmatch: label %q not found", label)
	}
	return idx, nil
}

// isMatchAt reports whether pattern matches the contiguous, unbranching run
// of instructions starting at idx.
func isMatchAt(g *cfg.CFG, prog *teal.Program, idx int, pattern []*teal.Instruction) bool {
	cur := idx
	for _, want := range pattern {
		if cur < 0 || cur >= len(prog.Instructions) {
			return false
		}
		got := prog.InstructionAt(cur)
		if got.String() != want.String() {
			return false
		}
		next, ok := soleSuccessor(g, prog, cur)
		if !ok {
			cur = -1
			continue
		}
		cur = next
	}
	return true
}

// soleSuccessor returns the next instruction index to follow when walking a
// pattern, or ok=false if idx branches to more than one successor (the
// pattern can't straddle a branch, matching the original's refusal).
func soleSuccessor(g *cfg.CFG, prog *teal.Program, idx int) (int, bool) {
	blk := g.BlockOf(idx)
	if idx != blk.Last {
		return idx + 1, true
	}
	succ := g.Successors(blk)
	if len(succ) != 1 {
		return 0, false
	}
	return succ[0].First, true
}

func instructionSuccessors(g *cfg.CFG, prog *teal.Program, idx int) []int {
	blk := g.BlockOf(idx)
	if idx != blk.Last {
		return []int{idx + 1}
	}
	var next []int
	for _, s := range g.Successors(blk) {
		next = append(next, s.First)
	}
	return next
}

func findInstructions(g *cfg.CFG, prog *teal.Program, idx int, pattern []*teal.Instruction, visited map[int]bool, res *Result) bool {
	if visited[idx] {
		return false
	}
	visited[idx] = true

	reaches := false

	if isMatchAt(g, prog, idx, pattern) {
		match := Match{}
		cur := idx
		for range pattern {
			match.Indices = append(match.Indices, cur)
			next, ok := soleSuccessor(g, prog, cur)
			if !ok {
				break
			}
			cur = next
		}
		res.Matches = append(res.Matches, match)
		reaches = true
	}

	for _, next := range instructionSuccessors(g, prog, idx) {
		if findInstructions(g, prog, next, pattern, visited, res) {
			res.Covered[idx] = true
			reaches = true
		}
	}

	return reaches
}
