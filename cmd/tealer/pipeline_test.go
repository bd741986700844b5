package main

import (
	"os"
	"path/filepath"
	"testing"

	"go-tealer/dataflow"
	"go-tealer/pluginapi"
)

func writeContract(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "contract.teal")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestAnalyzeFileBuildsFullPipeline(t *testing.T) {
	path := writeContract(t, `#pragma version 6
txn Sender
global ZeroAddress
==
assert
int 1
return
`)
	a, err := analyzeFile(path, "")
	if err != nil {
		t.Fatalf("analyzeFile: %v", err)
	}
	if len(a.CFG.Blocks) == 0 {
		t.Fatalf("analyzeFile produced a CFG with no blocks")
	}
	if a.Calls == nil || a.Calls.Subroutines["main"] == nil {
		t.Fatalf("analyzeFile: call graph missing the main subroutine")
	}
	if a.CFG.Entry().Context == nil {
		t.Errorf("analyzeFile: entry block has no dataflow context, dataflow.Run was not wired in")
	}
}

func TestAnalyzeFileMissingFileFails(t *testing.T) {
	if _, err := analyzeFile(filepath.Join(t.TempDir(), "nonexistent.teal"), ""); err == nil {
		t.Fatalf("expected an error reading a nonexistent contract file")
	}
}

func TestAnalyzeFileRejectsMalformedProgram(t *testing.T) {
	path := writeContract(t, `#pragma version 6
bnz nonexistent
int 1
return
`)
	if _, err := analyzeFile(path, ""); err == nil {
		t.Fatalf("expected an error for a branch to an undefined label")
	}
}

func TestAnalyzeFileSeedsGroupSizeFromGroupConfig(t *testing.T) {
	dir := t.TempDir()
	contractPath := writeFile(t, dir, "amm.teal", `#pragma version 6
int 1
return
`)
	groupConfigPath := writeFile(t, dir, "group_config.yaml", `
name: swap-group
contracts:
  - name: amm
    file_path: amm.teal
    type: ApprovalProgram
groups:
  - - txn_id: t0
      txn_type: appl
      application:
        contract: amm
        function: swap
    - txn_id: t1
      txn_type: pay
`)
	a, err := analyzeFile(contractPath, groupConfigPath)
	if err != nil {
		t.Fatalf("analyzeFile: %v", err)
	}
	bc, ok := a.CFG.Entry().Context.(*dataflow.BlockContext)
	if !ok {
		t.Fatalf("analyzeFile: entry block context is not a *dataflow.BlockContext")
	}
	if !bc.CurrentField(dataflow.GroupSize).ContainsUint(2) {
		t.Errorf("analyzeFile: entry block's GroupSize was not seeded from the group-config's declared group of size 2")
	}
}

func TestAnalyzeFileIgnoresGroupConfigForUndeclaredContract(t *testing.T) {
	dir := t.TempDir()
	contractPath := writeFile(t, dir, "other.teal", `#pragma version 6
int 1
return
`)
	groupConfigPath := writeFile(t, dir, "group_config.yaml", `
name: swap-group
contracts:
  - name: amm
    file_path: amm.teal
    type: ApprovalProgram
groups:
  - - txn_id: t0
      txn_type: appl
      application:
        contract: amm
        function: swap
    - txn_id: t1
      txn_type: pay
`)
	a, err := analyzeFile(contractPath, groupConfigPath)
	if err != nil {
		t.Fatalf("analyzeFile: %v", err)
	}
	bc, ok := a.CFG.Entry().Context.(*dataflow.BlockContext)
	if !ok {
		t.Fatalf("analyzeFile: entry block context is not a *dataflow.BlockContext")
	}
	if bc.CurrentField(dataflow.GroupSize).Kind != dataflow.KindTop {
		t.Errorf("analyzeFile: a group-config entry for a different contract must not seed this one's GroupSize")
	}
}

func TestAnalyzeFileWithMissingGroupConfigPathStillAnalyzes(t *testing.T) {
	path := writeContract(t, `#pragma version 6
int 1
return
`)
	if _, err := analyzeFile(path, filepath.Join(t.TempDir(), "nonexistent.yaml")); err != nil {
		t.Fatalf("analyzeFile: a missing --group-config file should be logged and ignored, not fail the run: %v", err)
	}
}

func TestRunPrinterDispatchesBuiltins(t *testing.T) {
	path := writeContract(t, `#pragma version 6
int 1
return
`)
	a, err := analyzeFile(path, "")
	if err != nil {
		t.Fatalf("analyzeFile: %v", err)
	}
	reg := pluginapi.New()

	if out, err := runPrinter(a, reg, "complexity"); err != nil || out == "" {
		t.Errorf("runPrinter(complexity) = %q, %v", out, err)
	}
	if out, err := runPrinter(a, reg, "call-graph"); err != nil || out == "" {
		t.Errorf("runPrinter(call-graph) = %q, %v", out, err)
	}
	if out, err := runPrinter(a, reg, "human-summary"); err != nil || out == "" {
		t.Errorf("runPrinter(human-summary) = %q, %v", out, err)
	}
}

func TestRunPrinterUnknownNameFails(t *testing.T) {
	path := writeContract(t, `#pragma version 6
int 1
return
`)
	a, err := analyzeFile(path, "")
	if err != nil {
		t.Fatalf("analyzeFile: %v", err)
	}
	reg := pluginapi.New()
	if _, err := runPrinter(a, reg, "nonexistent-printer"); err == nil {
		t.Fatalf("expected an error for an unregistered printer name")
	}
}
