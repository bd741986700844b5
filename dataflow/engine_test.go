package dataflow

import (
	"testing"

	"go-tealer/callgraph"
	"go-tealer/cfg"
	"go-tealer/parser"
)

func buildAndRun(t *testing.T, src string) *cfg.CFG {
	t.Helper()
	prog, err := parser.Parse(src, "engine.teal")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, err := cfg.Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	callgraph.Recover(g)
	Run(g)
	return g
}

func blockContext(t *testing.T, g *cfg.CFG, id int) *BlockContext {
	t.Helper()
	b := g.Block(id)
	bc, ok := b.Context.(*BlockContext)
	if !ok {
		t.Fatalf("block %d has no *BlockContext", id)
	}
	return bc
}

func TestRunPropagatesLocalAssertAcrossFallthrough(t *testing.T) {
	g := buildAndRun(t, `#pragma version 6
txn RekeyTo
global ZeroAddress
==
assert
int 1
return
`)
	bc := blockContext(t, g, g.Entry().ID)
	v := bc.CurrentField(RekeyTo)
	if v.Kind != KindSet || !v.Contains(zeroAddressScalar) {
		t.Errorf("RekeyTo after assert = %+v, want {zero address}", v)
	}
}

func TestRunNarrowsAlongTakenBranchOnly(t *testing.T) {
	g := buildAndRun(t, `#pragma version 6
txn OnCompletion
int NoOp
==
bnz noop_path
int 1
return
noop_path:
int 1
return
`)
	labelIdx := g.Program.Labels["noop_path"]
	noopBlock := g.BlockOf(labelIdx)
	bcNoop := blockContext(t, g, noopBlock.ID)
	if v := bcNoop.CurrentField(OnCompletion); v.Kind != KindSet || !v.ContainsUint(0) {
		t.Errorf("OnCompletion on taken path = %+v, want {NoOp}", v)
	}

	entryBlockIDAfterFallthrough := g.BlockOf(4).ID // the "int 1; return" fallthrough block starts right after bnz
	// The fallthrough (not-taken) block's own id is distinct from noopBlock.
	if entryBlockIDAfterFallthrough == noopBlock.ID {
		t.Fatalf("test setup broken: fallthrough and taken blocks are the same")
	}
	bcFallthrough := blockContext(t, g, entryBlockIDAfterFallthrough)
	if v := bcFallthrough.CurrentField(OnCompletion); v.Kind == KindSet && len(v.Set) == 1 {
		t.Errorf("OnCompletion on not-taken path = %+v, want it left unconstrained (no refinement for != in this idiom)", v)
	}
}

func TestRunJoinsAtMergePoint(t *testing.T) {
	g := buildAndRun(t, `#pragma version 6
txn OnCompletion
int NoOp
==
bnz path_a
txn OnCompletion
int OptIn
==
assert
b merge
path_a:
int 1
assert
merge:
int 1
return
`)
	mergeIdx := g.Program.Labels["merge"]
	mergeBlock := g.BlockOf(mergeIdx)
	bc := blockContext(t, g, mergeBlock.ID)
	v := bc.CurrentField(OnCompletion)
	// Either fully refined (join of {NoOp} and {OptIn}) or left top; both are
	// sound, but it must not be empty/bottom.
	if v.Kind == KindBottom {
		t.Errorf("OnCompletion at merge = %+v, must not be Bottom", v)
	}
}

func TestRunPropagatesAcrossCallsubRetsub(t *testing.T) {
	g := buildAndRun(t, `#pragma version 6
txn RekeyTo
global ZeroAddress
==
assert
callsub check
int 1
return
check:
int 1
retsub
`)
	entry := g.Entry()
	returnSiteID := g.BlockOf(entry.Last + 1).ID
	checkEntryID := g.BlockOf(g.Program.Labels["check"]).ID

	bcCheck := blockContext(t, g, checkEntryID)
	if v := bcCheck.CurrentField(RekeyTo); v.Kind != KindSet || !v.Contains(zeroAddressScalar) {
		t.Errorf("RekeyTo inside subroutine = %+v, want {zero address} (carried in via the callsub edge)", v)
	}

	bcReturn := blockContext(t, g, returnSiteID)
	if v := bcReturn.CurrentField(RekeyTo); v.Kind != KindSet || !v.Contains(zeroAddressScalar) {
		t.Errorf("RekeyTo after the call returns = %+v, want {zero address} (carried back via the retsub edge)", v)
	}
}

func TestRunOnStraightLineProgramLeavesUnmentionedFieldsTop(t *testing.T) {
	g := buildAndRun(t, `#pragma version 6
int 1
return
`)
	bc := blockContext(t, g, g.Entry().ID)
	if v := bc.CurrentField(Fee); v.Kind != KindTop {
		t.Errorf("Fee on a program that never mentions it = %+v, want Top", v)
	}
}
