package groupconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func loadOrFail(t *testing.T, yamlSrc string) *Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "group_config.yaml")
	if err := os.WriteFile(path, []byte(yamlSrc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestLoadValidConfigRoundTrips(t *testing.T) {
	cfg := loadOrFail(t, `
name: swap-group
contracts:
  - name: amm
    file_path: amm.teal
    type: ApprovalProgram
    version: 6
    subroutines: [check_swap]
    functions:
      - name: swap
        dispatch_path: ["B0", "B3"]
groups:
  - - txn_id: t0
      txn_type: appl
      application:
        contract: amm
        function: swap
    - txn_id: t1
      txn_type: pay
      absolute_index: 1
      relative_indexes:
        - other_txn_id: t0
          offset: -1
`)
	if cfg.Name != "swap-group" {
		t.Errorf("Name = %q, want swap-group", cfg.Name)
	}
	if len(cfg.Contracts) != 1 || cfg.Contracts[0].Name != "amm" {
		t.Fatalf("Contracts = %+v", cfg.Contracts)
	}
	if len(cfg.Contracts[0].Functions) != 1 {
		t.Fatalf("Functions = %+v", cfg.Contracts[0].Functions)
	}
	fn := cfg.Contracts[0].Functions[0]
	if fn.Name != "swap" {
		t.Errorf("function name = %q, want swap", fn.Name)
	}
	if len(fn.DispatchPath) != 2 || fn.DispatchPath[0] != 0 || fn.DispatchPath[1] != 3 {
		t.Errorf("DispatchPath = %v, want [0 3]", fn.DispatchPath)
	}
	if len(cfg.Groups) != 1 || len(cfg.Groups[0]) != 2 {
		t.Fatalf("Groups = %+v", cfg.Groups)
	}
	t1 := cfg.Groups[0][1]
	if t1.RelativeOffset["t0"] != -1 {
		t.Errorf("RelativeOffset[t0] = %d, want -1", t1.RelativeOffset["t0"])
	}
}

func TestFromRawMissingNameFails(t *testing.T) {
	_, err := fromRaw(&rawConfig{})
	if err == nil {
		t.Fatalf("expected an error for a config with no name")
	}
}

func TestFromRawInvalidContractTypeFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "group_config.yaml")
	src := `
name: g
contracts:
  - name: amm
    type: NotARealType
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an invalid contract type")
	}
}

func TestFromRawInvalidTxnTypeFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "group_config.yaml")
	src := `
name: g
groups:
  - - txn_id: t0
      txn_type: not_a_real_type
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an invalid txn_type")
	}
}

func TestFromRawMalformedDispatchPathFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "group_config.yaml")
	src := `
name: g
contracts:
  - name: amm
    type: ApprovalProgram
    functions:
      - name: swap
        dispatch_path: ["not-a-block-id"]
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for a malformed dispatch_path entry")
	}
}

func TestGroupSizesReturnsDistinctSizesForContract(t *testing.T) {
	cfg := loadOrFail(t, `
name: g
groups:
  - - txn_id: t0
      txn_type: appl
      application:
        contract: amm
        function: swap
    - txn_id: t1
      txn_type: pay
  - - txn_id: t2
      txn_type: appl
      application:
        contract: amm
        function: swap
    - txn_id: t3
      txn_type: pay
    - txn_id: t4
      txn_type: pay
  - - txn_id: t5
      txn_type: pay
`)
	sizes := cfg.GroupSizes("amm")
	if len(sizes) != 2 {
		t.Fatalf("GroupSizes(amm) = %v, want two distinct sizes", sizes)
	}
	seen := map[int]bool{sizes[0]: true, sizes[1]: true}
	if !seen[2] || !seen[3] {
		t.Errorf("GroupSizes(amm) = %v, want {2,3}", sizes)
	}
	if got := cfg.GroupSizes("nonexistent"); got != nil {
		t.Errorf("GroupSizes(nonexistent) = %v, want nil", got)
	}
}

func TestContractNameForFileMatchesByBasename(t *testing.T) {
	cfg := loadOrFail(t, `
name: g
contracts:
  - name: amm
    file_path: contracts/amm.teal
    type: ApprovalProgram
`)
	name, ok := cfg.ContractNameForFile("/some/other/path/amm.teal")
	if !ok || name != "amm" {
		t.Errorf("ContractNameForFile = %q, %v, want amm, true", name, ok)
	}
	if _, ok := cfg.ContractNameForFile("nonexistent.teal"); ok {
		t.Errorf("ContractNameForFile(nonexistent.teal) unexpectedly found a match")
	}
}

func TestSeedsPinsGroupSizeWhenUnambiguous(t *testing.T) {
	cfg := loadOrFail(t, `
name: g
contracts:
  - name: amm
    type: ApprovalProgram
    functions:
      - name: swap
        dispatch_path: ["B0", "B3"]
groups:
  - - txn_id: t0
      txn_type: appl
      application:
        contract: amm
        function: swap
    - txn_id: t1
      txn_type: pay
`)
	seeds := cfg.Seeds("amm", 0)
	if len(seeds) != 2 {
		t.Fatalf("Seeds(amm, 0) = %d seeds, want 2 (entry block + one dispatch-path entry block)", len(seeds))
	}
	var sawEntry, sawDispatch bool
	for _, s := range seeds {
		if s.BlockID == 0 {
			sawEntry = true
		}
		if s.BlockID == 3 {
			sawDispatch = true
		}
	}
	if !sawEntry || !sawDispatch {
		t.Errorf("Seeds(amm, 0) = %+v, want seeds at block 0 and block 3", seeds)
	}
}

func TestSeedsReturnsNilForAmbiguousGroupSize(t *testing.T) {
	cfg := loadOrFail(t, `
name: g
groups:
  - - txn_id: t0
      txn_type: appl
      application:
        contract: amm
        function: swap
    - txn_id: t1
      txn_type: pay
  - - txn_id: t2
      txn_type: appl
      application:
        contract: amm
        function: swap
    - txn_id: t3
      txn_type: pay
    - txn_id: t4
      txn_type: pay
`)
	if seeds := cfg.Seeds("amm", 0); seeds != nil {
		t.Errorf("Seeds(amm, 0) = %v, want nil when the contract's declared groups disagree on size", seeds)
	}
}

func TestDispatchEntryForFindsDeclaredFunction(t *testing.T) {
	cfg := loadOrFail(t, `
name: g
contracts:
  - name: amm
    type: ApprovalProgram
    functions:
      - name: swap
        dispatch_path: ["B0", "B3"]
`)
	entry, ok := cfg.DispatchEntryFor("amm", "swap")
	if !ok {
		t.Fatalf("DispatchEntryFor(amm, swap) not found")
	}
	if len(entry.DispatchPath) != 2 {
		t.Errorf("DispatchPath = %v", entry.DispatchPath)
	}
	if _, ok := cfg.DispatchEntryFor("amm", "nonexistent"); ok {
		t.Errorf("DispatchEntryFor(amm, nonexistent) unexpectedly found")
	}
	if _, ok := cfg.DispatchEntryFor("nonexistent", "swap"); ok {
		t.Errorf("DispatchEntryFor(nonexistent, swap) unexpectedly found")
	}
}
