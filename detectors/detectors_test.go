package detectors

import (
	"testing"

	"go-tealer/callgraph"
	"go-tealer/cfg"
	"go-tealer/dataflow"
	"go-tealer/detect"
	"go-tealer/parser"
)

// analyze runs the full pipeline (parse -> CFG -> call graph -> dataflow)
// against src and returns a ready detect.Context, mirroring what
// cmd/tealer's analyzeFile does.
func analyze(t *testing.T, src string) *detect.Context {
	t.Helper()
	prog, err := parser.Parse(src, "detector.teal")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	g, err := cfg.Build(prog)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	calls := callgraph.Recover(g)
	dataflow.Run(g)
	return &detect.Context{CFG: g, Calls: calls}
}

func findingsFor(id string, findings []detect.Finding) []detect.Finding {
	var out []detect.Finding
	for _, f := range findings {
		if f.DetectorID == id {
			out = append(out, f)
		}
	}
	return out
}
