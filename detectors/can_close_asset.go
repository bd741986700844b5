package detectors

import (
	"go-tealer/dataflow"
	"go-tealer/detect"
)

type canCloseAsset struct{}

func (canCloseAsset) ID() string                          { return "can-close-asset" }
func (canCloseAsset) Title() string                       { return "AssetCloseTo is never checked" }
func (canCloseAsset) Severity() detect.Severity           { return detect.SeverityHigh }
func (canCloseAsset) Confidence() detect.Confidence       { return detect.ConfidenceHigh }
func (canCloseAsset) Applicability() detect.ModeApplicability { return detect.AppliesToStateless }

func (d canCloseAsset) Run(ctx *detect.Context) []detect.Finding {
	return fieldUnconstrainedAtReturn(ctx, d.ID(), d.Title(), d.Severity(), d.Confidence(), dataflow.AssetCloseTo,
		"the transaction's AssetCloseTo is never pinned to the zero address along this path, so it can close out the sender's asset holding")
}

func init() { Default.Register(canCloseAsset{}) }
