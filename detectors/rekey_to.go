package detectors

import (
	"fmt"

	"go-tealer/cfg"
	"go-tealer/dataflow"
	"go-tealer/detect"
)

// rekeyTo is a STATEFULLGROUP-style detector (SPEC_FULL.md's supplemented
// detector taxonomy): besides the current transaction's own RekeyTo, it
// also checks every sibling transaction the program actually reads via a
// literal `gtxn i ...`, since a rekey hidden on another leg of an atomic
// group is just as dangerous.
type rekeyTo struct{}

func (rekeyTo) ID() string                          { return "rekey-to" }
func (rekeyTo) Title() string                       { return "RekeyTo is never checked" }
func (rekeyTo) Severity() detect.Severity           { return detect.SeverityHigh }
func (rekeyTo) Confidence() detect.Confidence       { return detect.ConfidenceHigh }

// Applicability returns AppliesToStateful: the original's STATEFULLGROUP
// type has no direct equivalent in a {stateless, stateful} applicability
// model, and this check's per-field logic (OnCompletion-independent,
// purely a RekeyTo/sibling-RekeyTo scan) is the stateful-application
// concern, not the stateless-logic-signature one.
func (rekeyTo) Applicability() detect.ModeApplicability { return detect.AppliesToStateful }

func (d rekeyTo) Run(ctx *detect.Context) []detect.Finding {
	findings := fieldUnconstrainedAtReturn(ctx, d.ID(), d.Title(), d.Severity(), d.Confidence(), dataflow.RekeyTo,
		"RekeyTo is never pinned to the zero address along this path, so this transaction can rekey the sender's account")

	for _, i := range gtxnIndicesAccessed(ctx.CFG) {
		findings = append(findings, d.siblingFindings(ctx, i)...)
	}
	return findings
}

func (d rekeyTo) siblingFindings(ctx *detect.Context, i int) []detect.Finding {
	var findings []detect.Finding
	detect.WalkEntryToReturn(ctx.CFG, func(path []*cfg.BasicBlock) {
		last := path[len(path)-1]
		bc := blockContext(last)
		if bc.GtxnField(i, dataflow.RekeyTo).Kind != dataflow.KindTop {
			return
		}
		findings = append(findings, detect.Finding{
			DetectorID: d.ID(),
			Title:      d.Title(),
			Severity:   d.Severity(),
			Confidence: d.Confidence(),
			Description: fmt.Sprintf(
				"RekeyTo of the group transaction at absolute index %d is never pinned to the zero address along this path", i),
			Path:    pathIDs(path),
			BlockID: last.ID,
			Line:    last.ExitInstruction(ctx.CFG.Program).Line,
		})
	})
	return findings
}

func gtxnIndicesAccessed(g *cfg.CFG) []int {
	seen := map[uint64]bool{}
	var out []int
	for _, b := range g.Blocks {
		for _, ins := range b.Instructions(g.Program) {
			if ins.Opcode != "gtxn" || len(ins.Immediates) != 2 {
				continue
			}
			i := ins.Immediates[0].Uint
			if !seen[i] {
				seen[i] = true
				out = append(out, int(i))
			}
		}
	}
	return out
}

func init() { Default.Register(rekeyTo{}) }
