package detect

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"go-tealer/teal"
)

// ModeApplicability scopes a Detector to the contract modes it makes sense
// against (spec.md §4.7's "an applicability predicate over {stateful,
// stateless}"), mirroring the original's DetectorType.
type ModeApplicability int

const (
	AppliesToStateless ModeApplicability = iota
	AppliesToStateful
	AppliesToBoth
)

func (a ModeApplicability) appliesTo(mode teal.ContractMode) bool {
	switch a {
	case AppliesToBoth:
		return true
	case AppliesToStateless:
		return mode == teal.ModeStateless
	case AppliesToStateful:
		return mode == teal.ModeStateful
	default:
		return false
	}
}

// Detector is one check from the library in package detectors (C8). Run
// receives the fully-built analysis context (CFG, call graph, dataflow
// annotations already attached to each block's Context) and returns every
// instance it found.
type Detector interface {
	ID() string
	Title() string
	Severity() Severity
	Confidence() Confidence
	Applicability() ModeApplicability
	Run(ctx *Context) []Finding
}

// Registry holds the detector library and can be asked to run a filtered
// subset, mirroring the teacher's ModuleLoader (spec.md §4.7).
type Registry struct {
	detectors []Detector
}

// NewRegistry returns an empty registry; package detectors populates one at
// init time via Register.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a detector to the library.
func (r *Registry) Register(d Detector) {
	r.detectors = append(r.detectors, d)
}

// All returns every registered detector, for a caller (e.g. pluginapi) that
// needs to copy or re-export the library rather than just run it.
func (r *Registry) All() []Detector {
	return r.detectors
}

// Selected returns the detectors to run against a contract in mode,
// honoring an include list (run only these IDs, if non-empty), an exclude
// list (never run these IDs), and each detector's own mode applicability.
func (r *Registry) Selected(mode teal.ContractMode, include, exclude []string) []Detector {
	includeSet := toSet(include)
	excludeSet := toSet(exclude)

	var out []Detector
	for _, d := range r.detectors {
		if len(includeSet) > 0 && !includeSet[d.ID()] {
			continue
		}
		if excludeSet[d.ID()] {
			continue
		}
		if !d.Applicability().appliesTo(mode) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// RunAll executes every selected detector against ctx, deduplicating
// findings by Fingerprint (spec.md §5). A detector that panics is logged
// and skipped rather than taking down the run (spec.md §7's
// DetectorInternal error kind).
func (r *Registry) RunAll(ctx *Context, include, exclude []string) []Finding {
	mode := ctx.CFG.Program.Mode
	var all []Finding
	seen := map[uint64]bool{}
	for _, d := range r.Selected(mode, include, exclude) {
		log.Debug("entering detector", "id", d.ID())
		findings := runDetectorSafely(d, ctx)
		log.Debug("exiting detector", "id", d.ID(), "findings", len(findings))
		for _, f := range findings {
			fp, err := f.Fingerprint()
			if err != nil || seen[fp] {
				continue
			}
			seen[fp] = true
			all = append(all, f)
		}
	}
	return all
}

// runDetectorSafely runs one detector, recovering a panic into a logged
// warning and an empty result set so the rest of the registry still runs
// (spec.md §7's DetectorInternal: "log, skip that detector, proceed with
// others").
func runDetectorSafely(d Detector, ctx *Context) (findings []Finding) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("detector panicked, skipping", "id", d.ID(), "panic", fmt.Sprint(r))
			findings = nil
		}
	}()
	return d.Run(ctx)
}
