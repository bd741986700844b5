// Package detect implements C7: the traversal strategies detectors run
// under, and the shared Finding/registration plumbing package detectors
// builds on.
package detect

import (
	"github.com/mitchellh/hashstructure/v2"

	"go-tealer/callgraph"
	"go-tealer/cfg"
)

// Severity mirrors the teacher's module severity levels, renamed for the
// TEAL domain (spec.md §5).
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
	SeverityInfo   Severity = "Informational"
)

// Confidence is how sure a detector is that a reported path is really
// reachable/exploitable, distinct from Severity's "how bad if it is"
// (spec.md §3, §4.7; the original's CONFIDENCE alongside IMPACT on every
// check).
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Finding is one reported instance of a detector firing on one path
// (spec.md §5).
type Finding struct {
	DetectorID  string
	Title       string
	Severity    Severity
	Confidence  Confidence
	Description string
	// Path is the sequence of block IDs the detector walked to reach the
	// reported instruction, entry block first.
	Path []int
	// BlockID/Line pin the finding to the instruction that triggered it.
	BlockID int
	Line    int
}

// dedupKey is hashed to collapse findings that differ only in an
// uninteresting prefix of an otherwise-identical path, keyed on
// (detector-id, last-block-id, path-prefix-hash) per spec.md §4.7 — Path
// itself, not just its length, since two distinct multi-block findings must
// not collide just because both paths happen to have the same length. Line
// is included too: the instruction-scan detectors (group-size-check,
// constant-gtxn, self-access, sender-access) report every match in a block
// with Path pinned to that one block, so without Line two distinct matches
// in the same block would otherwise still hash identically.
type dedupKey struct {
	DetectorID string
	BlockID    int
	Path       []int
	Line       int
}

// Fingerprint returns a stable hash used to deduplicate findings across
// repeated DFS paths that reach the same sink the same way.
func (f Finding) Fingerprint() (uint64, error) {
	return hashstructure.Hash(dedupKey{DetectorID: f.DetectorID, BlockID: f.BlockID, Path: f.Path, Line: f.Line}, hashstructure.FormatV2, nil)
}

// Context bundles what a Detector needs to inspect: the built CFG, the
// recovered call graph, and (once dataflow.Run has annotated it) each
// block's Context slot carries the lattice state.
type Context struct {
	CFG   *cfg.CFG
	Calls *callgraph.CallGraph
}
