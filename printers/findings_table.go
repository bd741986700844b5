package printers

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"go-tealer/detect"
)

// FindingsTable renders a detect run's findings as a boxed text table, one
// row per finding in the order given (spec.md §6's tabular detector
// reports).
func FindingsTable(findings []detect.Finding) string {
	t := table.NewWriter()
	t.SetTitle("Findings")
	t.AppendHeader(table.Row{"Detector", "Severity", "Confidence", "Block", "Line", "Description"})
	for _, f := range findings {
		t.AppendRow(table.Row{f.DetectorID, string(f.Severity), string(f.Confidence), f.BlockID, f.Line, f.Description})
	}
	return t.Render()
}

// HumanSummary renders the coarse per-program counters a CLI run prints
// before the detailed table: total blocks, subroutines, and a findings
// count by severity.
func HumanSummary(blockCount, subroutineCount int, findings []detect.Finding) string {
	bySeverity := map[detect.Severity]int{}
	for _, f := range findings {
		bySeverity[f.Severity]++
	}
	return fmt.Sprintf(
		"%d basic blocks, %d subroutines, %d findings (high=%d medium=%d low=%d info=%d)",
		blockCount, subroutineCount, len(findings),
		bySeverity[detect.SeverityHigh], bySeverity[detect.SeverityMedium],
		bySeverity[detect.SeverityLow], bySeverity[detect.SeverityInfo],
	)
}
