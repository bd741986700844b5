package detectors

import (
	"go-tealer/detect"
	"go-tealer/teal"
)

type unprotectedDeletable struct{}

func (unprotectedDeletable) ID() string                          { return "unprotected-deletable" }
func (unprotectedDeletable) Title() string                       { return "Contract can be deleted by anyone" }
func (unprotectedDeletable) Severity() detect.Severity           { return detect.SeverityHigh }
func (unprotectedDeletable) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (unprotectedDeletable) Applicability() detect.ModeApplicability { return detect.AppliesToStateful }

func (d unprotectedDeletable) Run(ctx *detect.Context) []detect.Finding {
	return onCompletionReachable(ctx, d.ID(), d.Title(), d.Severity(), d.Confidence(), teal.DeleteApplication, true)
}

func init() { Default.Register(unprotectedDeletable{}) }
