package detectors

import (
	"go-tealer/detect"
	"go-tealer/teal"
)

type isUpdatable struct{}

func (isUpdatable) ID() string                          { return "is-updatable" }
func (isUpdatable) Title() string                       { return "Contract can be updated" }
func (isUpdatable) Severity() detect.Severity           { return detect.SeverityLow }
func (isUpdatable) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (isUpdatable) Applicability() detect.ModeApplicability { return detect.AppliesToStateful }

func (d isUpdatable) Run(ctx *detect.Context) []detect.Finding {
	return onCompletionReachable(ctx, d.ID(), d.Title(), d.Severity(), d.Confidence(), teal.UpdateApplication, false)
}

func init() { Default.Register(isUpdatable{}) }
