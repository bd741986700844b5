package detect

import (
	"testing"

	"go-tealer/cfg"
	"go-tealer/teal"
)

type stubDetector struct {
	id       string
	findings []Finding
	applies  ModeApplicability
	panics   bool
}

func (s stubDetector) ID() string                     { return s.id }
func (s stubDetector) Title() string                  { return s.id }
func (s stubDetector) Severity() Severity             { return SeverityLow }
func (s stubDetector) Confidence() Confidence         { return ConfidenceHigh }
func (s stubDetector) Applicability() ModeApplicability {
	return s.applies
}
func (s stubDetector) Run(ctx *Context) []Finding {
	if s.panics {
		panic("boom")
	}
	return s.findings
}

func contextInMode(mode teal.ContractMode) *Context {
	return &Context{CFG: &cfg.CFG{Program: &teal.Program{Mode: mode}}}
}

func TestRegistrySelectedHonorsIncludeAndExclude(t *testing.T) {
	r := NewRegistry()
	r.Register(stubDetector{id: "a", applies: AppliesToBoth})
	r.Register(stubDetector{id: "b", applies: AppliesToBoth})
	r.Register(stubDetector{id: "c", applies: AppliesToBoth})

	all := r.Selected(teal.ModeStateful, nil, nil)
	if len(all) != 3 {
		t.Fatalf("Selected(nil,nil) = %d detectors, want 3", len(all))
	}

	included := r.Selected(teal.ModeStateful, []string{"a", "c"}, nil)
	if len(included) != 2 {
		t.Fatalf("Selected([a,c],nil) = %d detectors, want 2", len(included))
	}

	excluded := r.Selected(teal.ModeStateful, nil, []string{"b"})
	if len(excluded) != 2 {
		t.Fatalf("Selected(nil,[b]) = %d detectors, want 2", len(excluded))
	}
	for _, d := range excluded {
		if d.ID() == "b" {
			t.Errorf("Selected(nil,[b]) still contains b")
		}
	}
}

func TestRegistrySelectedFiltersByModeApplicability(t *testing.T) {
	r := NewRegistry()
	r.Register(stubDetector{id: "stateful-only", applies: AppliesToStateful})
	r.Register(stubDetector{id: "stateless-only", applies: AppliesToStateless})
	r.Register(stubDetector{id: "both", applies: AppliesToBoth})

	statefulSel := r.Selected(teal.ModeStateful, nil, nil)
	if len(statefulSel) != 2 {
		t.Fatalf("Selected(stateful) = %d detectors, want 2", len(statefulSel))
	}
	for _, d := range statefulSel {
		if d.ID() == "stateless-only" {
			t.Errorf("Selected(stateful) unexpectedly included a stateless-only detector")
		}
	}

	statelessSel := r.Selected(teal.ModeStateless, nil, nil)
	if len(statelessSel) != 2 {
		t.Fatalf("Selected(stateless) = %d detectors, want 2", len(statelessSel))
	}
	for _, d := range statelessSel {
		if d.ID() == "stateful-only" {
			t.Errorf("Selected(stateless) unexpectedly included a stateful-only detector")
		}
	}
}

func TestRegistryRunAllDeduplicatesFindings(t *testing.T) {
	r := NewRegistry()
	dup := Finding{DetectorID: "a", BlockID: 1, Path: []int{0, 1}}
	r.Register(stubDetector{id: "a", findings: []Finding{dup, dup}, applies: AppliesToBoth})

	findings := r.RunAll(contextInMode(teal.ModeStateful), nil, nil)
	if len(findings) != 1 {
		t.Fatalf("RunAll returned %d findings, want 1 after dedup", len(findings))
	}
}

func TestRegistryRunAllSkipsDetectorOutsideItsMode(t *testing.T) {
	r := NewRegistry()
	r.Register(stubDetector{id: "stateful-only", applies: AppliesToStateful, findings: []Finding{{DetectorID: "stateful-only", BlockID: 1}}})

	findings := r.RunAll(contextInMode(teal.ModeStateless), nil, nil)
	if len(findings) != 0 {
		t.Fatalf("RunAll in stateless mode ran a stateful-only detector, got %d findings", len(findings))
	}
}

func TestRegistryRunAllRecoversFromPanickingDetector(t *testing.T) {
	r := NewRegistry()
	r.Register(stubDetector{id: "boom", applies: AppliesToBoth, panics: true})
	r.Register(stubDetector{id: "fine", applies: AppliesToBoth, findings: []Finding{{DetectorID: "fine", BlockID: 2}}})

	findings := r.RunAll(contextInMode(teal.ModeStateful), nil, nil)
	if len(findings) != 1 || findings[0].DetectorID != "fine" {
		t.Fatalf("RunAll = %+v, want only the non-panicking detector's finding", findings)
	}
}

func TestRegistryAllReturnsEveryRegisteredDetector(t *testing.T) {
	r := NewRegistry()
	r.Register(stubDetector{id: "a"})
	r.Register(stubDetector{id: "b"})
	if len(r.All()) != 2 {
		t.Fatalf("All() = %d detectors, want 2", len(r.All()))
	}
}
