package detectors

import "go-tealer/detect"

type senderAccess struct{}

func (senderAccess) ID() string                          { return "sender-access" }
func (senderAccess) Title() string                       { return "Unoptimized sender access" }
func (senderAccess) Severity() detect.Severity           { return detect.SeverityInfo }
func (senderAccess) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (senderAccess) Applicability() detect.ModeApplicability { return detect.AppliesToStateless }

// Run implements the original's SenderAccess: `txna Accounts 0` reads the
// sender's address the long way; `txn Sender` is equivalent and cheaper.
func (d senderAccess) Run(ctx *detect.Context) []detect.Finding {
	var findings []detect.Finding
	for _, b := range ctx.CFG.Blocks {
		for _, ins := range b.Instructions(ctx.CFG.Program) {
			if ins.Opcode != "txna" || len(ins.Immediates) != 2 {
				continue
			}
			if ins.Immediates[0].FieldName != "Accounts" || ins.Immediates[1].Uint != 0 {
				continue
			}
			findings = append(findings, detect.Finding{
				DetectorID:  d.ID(),
				Title:       d.Title(),
				Severity:    d.Severity(),
				Confidence:  d.Confidence(),
				Description: "txna Accounts 0 can be replaced by txn Sender",
				Path:        []int{b.ID},
				BlockID:     b.ID,
				Line:        ins.Line,
			})
		}
	}
	return findings
}

func init() { Default.Register(senderAccess{}) }
