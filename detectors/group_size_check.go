package detectors

import (
	"fmt"

	"go-tealer/dataflow"
	"go-tealer/detect"
)

type groupSizeCheck struct{}

func (groupSizeCheck) ID() string                          { return "group-size-check" }
func (groupSizeCheck) Title() string                       { return "Missing group size check before absolute gtxn access" }
func (groupSizeCheck) Severity() detect.Severity           { return detect.SeverityMedium }
func (groupSizeCheck) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (groupSizeCheck) Applicability() detect.ModeApplicability { return detect.AppliesToBoth }

// Run implements spec.md §4.8: any block reading `gtxn i ...` with a literal
// i while GroupSize is still ⊤ means nothing guarantees the group even has
// i+1 transactions in it.
func (d groupSizeCheck) Run(ctx *detect.Context) []detect.Finding {
	var findings []detect.Finding
	for _, b := range ctx.CFG.Blocks {
		bc := blockContext(b)
		for _, ins := range b.Instructions(ctx.CFG.Program) {
			if ins.Opcode != "gtxn" || len(ins.Immediates) != 2 {
				continue
			}
			if bc.CurrentField(dataflow.GroupSize).Kind != dataflow.KindTop {
				continue
			}
			i := ins.Immediates[0].Uint
			findings = append(findings, detect.Finding{
				DetectorID: d.ID(),
				Title:      d.Title(),
				Severity:   d.Severity(),
				Confidence: d.Confidence(),
				Description: fmt.Sprintf(
					"gtxn %d ... is reached with GroupSize unconstrained; nothing guarantees the group has at least %d transactions",
					i, i+1,
				),
				Path:    []int{b.ID},
				BlockID: b.ID,
				Line:    ins.Line,
			})
		}
	}
	return findings
}

func init() { Default.Register(groupSizeCheck{}) }
