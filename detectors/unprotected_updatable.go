package detectors

import (
	"go-tealer/detect"
	"go-tealer/teal"
)

type unprotectedUpdatable struct{}

func (unprotectedUpdatable) ID() string                          { return "unprotected-updatable" }
func (unprotectedUpdatable) Title() string                       { return "Contract can be updated by anyone" }
func (unprotectedUpdatable) Severity() detect.Severity           { return detect.SeverityHigh }
func (unprotectedUpdatable) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (unprotectedUpdatable) Applicability() detect.ModeApplicability { return detect.AppliesToStateful }

func (d unprotectedUpdatable) Run(ctx *detect.Context) []detect.Finding {
	return onCompletionReachable(ctx, d.ID(), d.Title(), d.Severity(), d.Confidence(), teal.UpdateApplication, true)
}

func init() { Default.Register(unprotectedUpdatable{}) }
