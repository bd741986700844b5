package detectors

import (
	"go-tealer/detect"
	"go-tealer/teal"
)

type isDeletable struct{}

func (isDeletable) ID() string                          { return "is-deletable" }
func (isDeletable) Title() string                       { return "Contract can be deleted" }
func (isDeletable) Severity() detect.Severity           { return detect.SeverityLow }
func (isDeletable) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (isDeletable) Applicability() detect.ModeApplicability { return detect.AppliesToStateful }

func (d isDeletable) Run(ctx *detect.Context) []detect.Finding {
	return onCompletionReachable(ctx, d.ID(), d.Title(), d.Severity(), d.Confidence(), teal.DeleteApplication, false)
}

func init() { Default.Register(isDeletable{}) }
