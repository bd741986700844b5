package detectors

import (
	"fmt"

	"go-tealer/cfg"
	"go-tealer/dataflow"
	"go-tealer/detect"
	"go-tealer/teal"
)

func blockContext(b *cfg.BasicBlock) *dataflow.BlockContext {
	if bc, ok := b.Context.(*dataflow.BlockContext); ok {
		return bc
	}
	return &dataflow.BlockContext{}
}

func pathIDs(path []*cfg.BasicBlock) []int {
	ids := make([]int, len(path))
	for i, b := range path {
		ids[i] = b.ID
	}
	return ids
}

// onCompletionReachable walks every entry-to-return path of a stateful
// program and reports one finding per path whose terminal block still
// allows field onCompletion's lattice value to contain target (spec.md
// §4.8's is-deletable/is-updatable shape). requireUnprotectedSender, when
// true, additionally requires that Sender was never narrowed to a single
// address along that path (the unprotected-* variants).
func onCompletionReachable(ctx *detect.Context, id, title string, severity detect.Severity, confidence detect.Confidence, target teal.OnCompletion, requireUnprotectedSender bool) []detect.Finding {
	var findings []detect.Finding
	detect.WalkEntryToReturn(ctx.CFG, func(path []*cfg.BasicBlock) {
		last := path[len(path)-1]
		bc := blockContext(last)
		if !bc.CurrentField(dataflow.OnCompletion).ContainsUint(uint64(target)) {
			return
		}
		if requireUnprotectedSender {
			sender := bc.CurrentField(dataflow.Sender)
			if sender.Kind == dataflow.KindSet && len(sender.Set) == 1 {
				return // Sender pinned to one address: protected
			}
		}
		findings = append(findings, detect.Finding{
			DetectorID: id,
			Title:      title,
			Severity:   severity,
			Confidence: confidence,
			Description: fmt.Sprintf(
				"a path reaching the end of the program leaves OnCompletion=%s possible without it being refuted",
				target,
			),
			Path:    pathIDs(path),
			BlockID: last.ID,
			Line:    last.ExitInstruction(ctx.CFG.Program).Line,
		})
	})
	return findings
}

// fieldUnconstrainedAtReturn walks every entry-to-return path and reports a
// finding for each path whose terminal block still leaves field entirely
// unconstrained (⊤), per spec.md §4.8's can-close-account/can-close-asset/
// missing-fee-check/rekey-to shape: the transaction itself is about to be
// submitted with no assertion ever pinning that field down.
func fieldUnconstrainedAtReturn(ctx *detect.Context, id, title string, severity detect.Severity, confidence detect.Confidence, field dataflow.Field, describe string) []detect.Finding {
	var findings []detect.Finding
	detect.WalkEntryToReturn(ctx.CFG, func(path []*cfg.BasicBlock) {
		last := path[len(path)-1]
		bc := blockContext(last)
		if bc.CurrentField(field).Kind != dataflow.KindTop {
			return
		}
		findings = append(findings, detect.Finding{
			DetectorID:  id,
			Title:       title,
			Severity:    severity,
			Confidence:  confidence,
			Description: describe,
			Path:        pathIDs(path),
			BlockID:     last.ID,
			Line:        last.ExitInstruction(ctx.CFG.Program).Line,
		})
	})
	return findings
}

// instructionScan runs f over every instruction of every block.
func instructionScan(g *cfg.CFG, f func(b *cfg.BasicBlock, ins *teal.Instruction)) {
	for _, b := range g.Blocks {
		for _, ins := range b.Instructions(g.Program) {
			f(b, ins)
		}
	}
}
