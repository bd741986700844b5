package detectors

import "go-tealer/detect"

type constantGtxn struct{}

func (constantGtxn) ID() string                          { return "constant-gtxn" }
func (constantGtxn) Title() string                       { return "Unoptimized gtxn with a computed index" }
func (constantGtxn) Severity() detect.Severity           { return detect.SeverityInfo }
func (constantGtxn) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (constantGtxn) Applicability() detect.ModeApplicability { return detect.AppliesToStateless }

// Run implements the original's sliding-window check (tealer's
// ConstantGtxn): `int c; gtxns field` produces two instructions where
// `gtxn c field` would do, since c is already a compile-time constant.
func (d constantGtxn) Run(ctx *detect.Context) []detect.Finding {
	var findings []detect.Finding
	for _, b := range ctx.CFG.Blocks {
		instrs := b.Instructions(ctx.CFG.Program)
		for i := 0; i+1 < len(instrs); i++ {
			first, second := instrs[i], instrs[i+1]
			if first.Opcode != "int" {
				continue
			}
			if second.Opcode != "gtxns" && second.Opcode != "gtxnsa" && second.Opcode != "gtxnsas" {
				continue
			}
			findings = append(findings, detect.Finding{
				DetectorID:  d.ID(),
				Title:       d.Title(),
				Severity:    d.Severity(),
				Confidence:  d.Confidence(),
				Description: "int <literal>; " + second.Opcode + " ... can be replaced by gtxn <literal> ...",
				Path:        []int{b.ID},
				BlockID:     b.ID,
				Line:        first.Line,
			})
		}
	}
	return findings
}

func init() { Default.Register(constantGtxn{}) }
