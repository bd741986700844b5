package detectors

import (
	"go-tealer/dataflow"
	"go-tealer/detect"
)

type canCloseAccount struct{}

func (canCloseAccount) ID() string                          { return "can-close-account" }
func (canCloseAccount) Title() string                       { return "CloseRemainderTo is never checked" }
func (canCloseAccount) Severity() detect.Severity           { return detect.SeverityHigh }
func (canCloseAccount) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (canCloseAccount) Applicability() detect.ModeApplicability { return detect.AppliesToStateless }

func (d canCloseAccount) Run(ctx *detect.Context) []detect.Finding {
	return fieldUnconstrainedAtReturn(ctx, d.ID(), d.Title(), d.Severity(), d.Confidence(), dataflow.CloseRemainderTo,
		"the transaction's CloseRemainderTo is never pinned to the zero address along this path, so it can drain the sender's account")
}

func init() { Default.Register(canCloseAccount{}) }
