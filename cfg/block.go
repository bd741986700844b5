// Package cfg builds the control-flow graph (C4) from a parsed
// go-tealer/teal.Program: basic blocks plus typed edges between them.
package cfg

import "go-tealer/teal"

// EdgeKind is one of the edge types spec.md §3 defines.
type EdgeKind int

const (
	EdgeFallthrough EdgeKind = iota
	EdgeJump
	EdgeBranchTaken
	EdgeBranchNotTaken
	EdgeCallsubToEntry
	EdgeRetsubToReturnSite
	EdgeHalt
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeFallthrough:
		return "fallthrough"
	case EdgeJump:
		return "jump"
	case EdgeBranchTaken:
		return "branch-taken"
	case EdgeBranchNotTaken:
		return "branch-not-taken"
	case EdgeCallsubToEntry:
		return "callsub-to-entry"
	case EdgeRetsubToReturnSite:
		return "retsub-to-return-site"
	case EdgeHalt:
		return "halt"
	}
	return "unknown"
}

// Edge is a typed (from-id, to-id, kind) control-flow edge. Edges never own
// blocks; they only reference block IDs, per DESIGN.md's "no cyclic
// ownership" choice (spec.md §9).
type Edge struct {
	From int
	To   int
	Kind EdgeKind
}

// BasicBlock is a maximal straight-line run of instructions (spec.md §3).
type BasicBlock struct {
	ID         int
	First      int // index into Program.Instructions
	Last       int
	Successors []Edge
	Predecessors []Edge
	// Subroutine is "main" for the entry region, or a subroutine entry
	// block's own ID-derived name once callgraph.Recover runs.
	Subroutine string

	// Context is the dataflow annotation slot (C6); package dataflow owns
	// its contents. It is written in place after construction, per the
	// Lifecycles note in spec.md §3.
	Context interface{}
}

// Instructions returns the slice of the block's instructions from the
// owning Program.
func (b *BasicBlock) Instructions(prog *teal.Program) []*teal.Instruction {
	return prog.Instructions[b.First : b.Last+1]
}

// EntryInstruction returns the block's first instruction.
func (b *BasicBlock) EntryInstruction(prog *teal.Program) *teal.Instruction {
	return prog.Instructions[b.First]
}

// ExitInstruction returns the block's last instruction.
func (b *BasicBlock) ExitInstruction(prog *teal.Program) *teal.Instruction {
	return prog.Instructions[b.Last]
}

// IsCallsubBlock reports whether this block ends with callsub.
func (b *BasicBlock) IsCallsubBlock(prog *teal.Program) bool {
	return b.ExitInstruction(prog).Def.IsCallsub
}

// IsRetsubBlock reports whether this block ends with retsub.
func (b *BasicBlock) IsRetsubBlock(prog *teal.Program) bool {
	return b.ExitInstruction(prog).Def.IsRetsub
}
