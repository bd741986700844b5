package cfg

import (
	"fmt"
	"sort"

	"go-tealer/teal"
)

// CFGError is a fatal CFG-construction failure (spec.md §7): an unresolved
// label or a structural inconsistency caught before the dataflow engine runs.
type CFGError struct {
	Msg string
}

func (e *CFGError) Error() string { return e.Msg }

// Build implements C4: split the instruction sequence into basic blocks and
// link control-flow edges (subroutine call/return pairing is left to
// package callgraph, per spec.md §4.4 step 3).
func Build(prog *teal.Program) (*CFG, error) {
	n := len(prog.Instructions)
	if n == 0 {
		return nil, &CFGError{Msg: "program has no instructions"}
	}

	leaders := computeLeaders(prog)

	g := &CFG{Program: prog, instrToBlock: make([]int, n)}
	// leaderIdx[i] true means instruction i starts a block.
	sortedLeaders := make([]int, 0, len(leaders))
	for idx := range leaders {
		sortedLeaders = append(sortedLeaders, idx)
	}
	sort.Ints(sortedLeaders)

	blockStart := map[int]int{} // instruction index -> block ID, for leader lookups
	for bi, start := range sortedLeaders {
		end := n - 1
		if bi+1 < len(sortedLeaders) {
			end = sortedLeaders[bi+1] - 1
		}
		b := &BasicBlock{ID: bi, First: start, Last: end, Subroutine: "main"}
		g.Blocks = append(g.Blocks, b)
		blockStart[start] = bi
		for i := start; i <= end; i++ {
			g.instrToBlock[i] = bi
		}
	}

	for _, b := range g.Blocks {
		if err := linkBlock(g, prog, b, blockStart); err != nil {
			return nil, err
		}
	}
	populatePredecessors(g)

	return g, nil
}

// computeLeaders implements spec.md §4.4 step 1.
func computeLeaders(prog *teal.Program) map[int]bool {
	leaders := map[int]bool{0: true}
	for idx := range prog.Labels {
		leaders[prog.Labels[idx]] = true
	}
	for i, ins := range prog.Instructions {
		if (ins.Def.IsTerminator || ins.Def.IsBranch) && i+1 < len(prog.Instructions) {
			leaders[i+1] = true
		}
	}
	return leaders
}

func linkBlock(g *CFG, prog *teal.Program, b *BasicBlock, blockStart map[int]int) error {
	exit := prog.Instructions[b.Last]
	nextInstr := b.Last + 1
	hasNext := nextInstr < len(prog.Instructions)

	targetBlock := func(label string) (int, error) {
		idx, ok := prog.Labels[label]
		if !ok {
			return 0, &CFGError{Msg: fmt.Sprintf("reference to undefined label %q", label)}
		}
		bid, ok := blockStart[idx]
		if !ok {
			return 0, &CFGError{Msg: fmt.Sprintf("label %q does not point to a block boundary", label)}
		}
		return bid, nil
	}

	switch {
	case exit.Def.IsRetsub:
		// No static successor; resolved by callgraph.Recover (C5).
	case exit.Def.IsCallsub:
		targets := exit.BranchTargets()
		to, err := targetBlock(targets[0])
		if err != nil {
			return err
		}
		b.Successors = append(b.Successors, Edge{From: b.ID, To: to, Kind: EdgeCallsubToEntry})
		// The return-site edge is synthesized once the callee's retsub
		// blocks are known; record nothing here, per spec.md §4.4 step 3.
	case exit.Opcode == "b":
		to, err := targetBlock(exit.BranchTargets()[0])
		if err != nil {
			return err
		}
		b.Successors = append(b.Successors, Edge{From: b.ID, To: to, Kind: EdgeJump})
	case exit.Opcode == "bnz" || exit.Opcode == "bz":
		to, err := targetBlock(exit.BranchTargets()[0])
		if err != nil {
			return err
		}
		b.Successors = append(b.Successors, Edge{From: b.ID, To: to, Kind: EdgeBranchTaken})
		if !hasNext {
			return &CFGError{Msg: fmt.Sprintf("%s at line %d has no fall-through block", exit.Opcode, exit.Line)}
		}
		b.Successors = append(b.Successors, Edge{From: b.ID, To: blockStart[nextInstr], Kind: EdgeBranchNotTaken})
	case exit.Opcode == "switch" || exit.Opcode == "match":
		for _, label := range exit.BranchTargets() {
			to, err := targetBlock(label)
			if err != nil {
				return err
			}
			b.Successors = append(b.Successors, Edge{From: b.ID, To: to, Kind: EdgeBranchTaken})
		}
		if hasNext {
			b.Successors = append(b.Successors, Edge{From: b.ID, To: blockStart[nextInstr], Kind: EdgeFallthrough})
		}
	case exit.Def.IsTerminator:
		// return, err, or unconditional forms without an explicit target.
		b.Successors = append(b.Successors, Edge{From: b.ID, Kind: EdgeHalt})
	default:
		if !hasNext {
			return &CFGError{Msg: fmt.Sprintf("instruction at line %d falls off the end of the program", exit.Line)}
		}
		b.Successors = append(b.Successors, Edge{From: b.ID, To: blockStart[nextInstr], Kind: EdgeFallthrough})
	}
	return nil
}

func populatePredecessors(g *CFG) {
	for _, b := range g.Blocks {
		for _, e := range b.Successors {
			if e.Kind == EdgeHalt {
				continue
			}
			g.Blocks[e.To].Predecessors = append(g.Blocks[e.To].Predecessors, e)
		}
	}
}
