package detectors

import (
	"go-tealer/dataflow"
	"go-tealer/detect"
)

type missingFeeCheck struct{}

func (missingFeeCheck) ID() string                          { return "missing-fee-check" }
func (missingFeeCheck) Title() string                       { return "Fee is never checked" }
func (missingFeeCheck) Severity() detect.Severity           { return detect.SeverityMedium }
func (missingFeeCheck) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (missingFeeCheck) Applicability() detect.ModeApplicability { return detect.AppliesToStateless }

func (d missingFeeCheck) Run(ctx *detect.Context) []detect.Finding {
	return fieldUnconstrainedAtReturn(ctx, d.ID(), d.Title(), d.Severity(), d.Confidence(), dataflow.Fee,
		"the transaction's Fee is never bounded along this path, allowing a fee-bump attack against a logic signature")
}

func init() { Default.Register(missingFeeCheck{}) }
