package detectors

import "go-tealer/detect"

type selfAccess struct{}

func (selfAccess) ID() string                          { return "self-access" }
func (selfAccess) Title() string                       { return "Unoptimized self access" }
func (selfAccess) Severity() detect.Severity           { return detect.SeverityInfo }
func (selfAccess) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (selfAccess) Applicability() detect.ModeApplicability { return detect.AppliesToStateless }

// Run implements the original's SelfAccess: `txn GroupIndex; gtxns/gtxnsa/
// gtxnsas field` reads the current transaction's own field through a
// sibling-access opcode, which `txn field` does directly.
func (d selfAccess) Run(ctx *detect.Context) []detect.Finding {
	var findings []detect.Finding
	for _, b := range ctx.CFG.Blocks {
		instrs := b.Instructions(ctx.CFG.Program)
		for i := 0; i+1 < len(instrs); i++ {
			first, second := instrs[i], instrs[i+1]
			if first.Opcode != "txn" || len(first.Immediates) != 1 || first.Immediates[0].FieldName != "GroupIndex" {
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
				Description: "txn GroupIndex; " + second.Opcode + " ... can be replaced by txn ...",
				Path:        []int{b.ID},
				BlockID:     b.ID,
				Line:        first.Line,
			})
		}
	}
	return findings
}

func init() { Default.Register(selfAccess{}) }
