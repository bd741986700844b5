package cfg

import "go-tealer/teal"

// CFG is the built control-flow graph for one Program: a dense arena of
// blocks indexed by ID (spec.md §9 — avoids cyclic ownership).
type CFG struct {
	Program *teal.Program
	Blocks  []*BasicBlock
	// instrToBlock maps instruction index -> owning block ID, used by
	// callers that need to go from a teal.Instruction back to its block.
	instrToBlock []int
}

// Entry is the program's first basic block.
func (g *CFG) Entry() *BasicBlock {
	return g.Blocks[0]
}

// Block returns the block with the given ID.
func (g *CFG) Block(id int) *BasicBlock {
	return g.Blocks[id]
}

// BlockOf returns the block owning instruction index i.
func (g *CFG) BlockOf(instrIdx int) *BasicBlock {
	return g.Blocks[g.instrToBlock[instrIdx]]
}

// Successors resolves an edge list to the target blocks.
func (g *CFG) Successors(b *BasicBlock) []*BasicBlock {
	out := make([]*BasicBlock, 0, len(b.Successors))
	for _, e := range b.Successors {
		if e.Kind == EdgeHalt {
			continue
		}
		out = append(out, g.Blocks[e.To])
	}
	return out
}

// Predecessors resolves a block's predecessor edges to the source blocks.
func (g *CFG) Predecessors(b *BasicBlock) []*BasicBlock {
	out := make([]*BasicBlock, 0, len(b.Predecessors))
	for _, e := range b.Predecessors {
		out = append(out, g.Blocks[e.From])
	}
	return out
}
