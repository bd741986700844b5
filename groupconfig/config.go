// Package groupconfig loads the optional group-configuration data file
// (spec.md §6): a declaration of which contracts participate in which
// atomic transaction groups, consumed by package dataflow as an
// initial-state refinement.
package groupconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"go-tealer/dataflow"
)

var validContractTypes = map[string]bool{
	"LogicSig":          true,
	"ApprovalProgram":   true,
	"ClearStateProgram": true,
}

var validTxnTypes = map[string]bool{
	"pay": true, "keyreg": true, "acfg": true, "axfer": true, "afrz": true, "appl": true,
}

// InvalidConfig reports a structurally valid YAML document that still
// violates the group-configuration schema.
type InvalidConfig struct {
	Msg string
}

func (e *InvalidConfig) Error() string { return e.Msg }

// FunctionCall names a (contract, function) pair a group transaction
// dispatches into.
type FunctionCall struct {
	Contract string `yaml:"contract"`
	Function string `yaml:"function"`
}

// DispatchEntry is one named entry point inside a contract, identified by
// the ordered sequence of basic-block IDs from the program entry to the
// function's first distinctive block (spec.md §6's "dispatch_path").
type DispatchEntry struct {
	Name         string
	DispatchPath []int
}

// Contract is one named program the group configuration knows about.
type Contract struct {
	Name        string
	FilePath    string
	Type        string
	Version     int
	Subroutines []string
	Functions   []DispatchEntry
}

// Transaction is one leg of a declared atomic group.
type Transaction struct {
	TxnID          string
	TxnType        string
	Application    *FunctionCall
	HasLogicSig    *bool
	LogicSig       *FunctionCall
	AbsoluteIndex  *int
	RelativeOffset map[string]int
}

// Config is the parsed, validated group-configuration document.
type Config struct {
	Name      string
	Contracts []Contract
	Groups    [][]Transaction
}

// rawConfig mirrors Config's YAML shape exactly before the
// block-id/relative-index post-processing Load performs.
type rawConfig struct {
	Name      string `yaml:"name"`
	Contracts []struct {
		Name        string   `yaml:"name"`
		FilePath    string   `yaml:"file_path"`
		Type        string   `yaml:"type"`
		Version     int      `yaml:"version"`
		Subroutines []string `yaml:"subroutines"`
		Functions   []struct {
			Name         string   `yaml:"name"`
			DispatchPath []string `yaml:"dispatch_path"`
		} `yaml:"functions"`
	} `yaml:"contracts"`
	Groups [][]struct {
		TxnID         string        `yaml:"txn_id"`
		TxnType       string        `yaml:"txn_type"`
		Application   *FunctionCall `yaml:"application"`
		HasLogicSig   *bool         `yaml:"has_logic_sig"`
		LogicSig      *FunctionCall `yaml:"logic_sig"`
		AbsoluteIndex *int          `yaml:"absolute_index"`
		RelativeIndexes []struct {
			OtherTxnID string `yaml:"other_txn_id"`
			Offset     int    `yaml:"offset"`
		} `yaml:"relative_indexes"`
	} `yaml:"groups"`
}

// Load reads and validates a group-configuration YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("groupconfig: %w", err)
	}
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("groupconfig: %w", err)
	}
	return fromRaw(&raw)
}

func fromRaw(raw *rawConfig) (*Config, error) {
	if raw.Name == "" {
		return nil, &InvalidConfig{Msg: "name is not given"}
	}
	cfg := &Config{Name: raw.Name}

	for _, rc := range raw.Contracts {
		if rc.Name == "" {
			return nil, &InvalidConfig{Msg: "contract name is not given"}
		}
		if !validContractTypes[rc.Type] {
			return nil, &InvalidConfig{Msg: fmt.Sprintf("contract %q: invalid type %q", rc.Name, rc.Type)}
		}
		c := Contract{
			Name: rc.Name, FilePath: rc.FilePath, Type: rc.Type,
			Version: rc.Version, Subroutines: rc.Subroutines,
		}
		for _, rf := range rc.Functions {
			if rf.Name == "" {
				return nil, &InvalidConfig{Msg: fmt.Sprintf("contract %q: function name is not given", rc.Name)}
			}
			path, err := parseDispatchPath(rf.DispatchPath)
			if err != nil {
				return nil, &InvalidConfig{Msg: fmt.Sprintf("contract %q, function %q: %v", rc.Name, rf.Name, err)}
			}
			c.Functions = append(c.Functions, DispatchEntry{Name: rf.Name, DispatchPath: path})
		}
		cfg.Contracts = append(cfg.Contracts, c)
	}

	for _, rg := range raw.Groups {
		var group []Transaction
		for _, rt := range rg {
			if rt.TxnID == "" || rt.TxnType == "" {
				return nil, &InvalidConfig{Msg: "group transaction is missing txn_id or txn_type"}
			}
			if !validTxnTypes[rt.TxnType] {
				return nil, &InvalidConfig{Msg: fmt.Sprintf("transaction %q: invalid txn_type %q", rt.TxnID, rt.TxnType)}
			}
			t := Transaction{
				TxnID: rt.TxnID, TxnType: rt.TxnType,
				Application: rt.Application, HasLogicSig: rt.HasLogicSig,
				LogicSig: rt.LogicSig, AbsoluteIndex: rt.AbsoluteIndex,
			}
			if len(rt.RelativeIndexes) > 0 {
				t.RelativeOffset = make(map[string]int, len(rt.RelativeIndexes))
				for _, ri := range rt.RelativeIndexes {
					t.RelativeOffset[ri.OtherTxnID] = ri.Offset
				}
			}
			group = append(group, t)
		}
		cfg.Groups = append(cfg.Groups, group)
	}
	return cfg, nil
}

// parseDispatchPath converts ["B0","B3","B7"]-style block-id strings into
// the block IDs C4 assigned.
func parseDispatchPath(raw []string) ([]int, error) {
	out := make([]int, 0, len(raw))
	for _, s := range raw {
		if !strings.HasPrefix(s, "B") {
			return nil, fmt.Errorf("malformed block id %q", s)
		}
		n, err := strconv.Atoi(s[1:])
		if err != nil {
			return nil, fmt.Errorf("malformed block id %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}

// GroupSizes returns the distinct group sizes a named contract participates
// in across every declared group, used to seed GroupSize's initial dataflow
// value for that contract (spec.md §6).
func (c *Config) GroupSizes(contractName string) []int {
	seen := map[int]bool{}
	var sizes []int
	for _, group := range c.Groups {
		inGroup := false
		for _, t := range group {
			if (t.Application != nil && t.Application.Contract == contractName) ||
				(t.LogicSig != nil && t.LogicSig.Contract == contractName) {
				inGroup = true
				break
			}
		}
		if inGroup && !seen[len(group)] {
			seen[len(group)] = true
			sizes = append(sizes, len(group))
		}
	}
	return sizes
}

// Seeds returns the dataflow.Seed values this configuration implies for the
// named contract, consumed purely as read-only initial-state refinement
// input to C6 (SPEC_FULL.md §6): when every group the contract participates
// in declares the same size, that size is pinned to GroupSize at entryBlockID
// (the program's entry block) and, again, at each declared function's
// dispatch-path entry block — a router-style contract's ABI methods each
// getting their own initial GroupSize fact the way the original's
// dispatch_path attaches a per-function refinement.
func (c *Config) Seeds(contractName string, entryBlockID int) []dataflow.Seed {
	sizes := c.GroupSizes(contractName)
	if len(sizes) != 1 {
		return nil // no declared groups, or an ambiguous mix of sizes: leave GroupSize at top
	}
	groupSize := dataflow.SingleUint(uint64(sizes[0]))

	seeds := []dataflow.Seed{{BlockID: entryBlockID, Field: dataflow.GroupSize, GtxnIndex: -1, Value: groupSize}}
	for _, ct := range c.Contracts {
		if ct.Name != contractName {
			continue
		}
		for _, fn := range ct.Functions {
			if len(fn.DispatchPath) == 0 {
				continue
			}
			dispatchBlockID := fn.DispatchPath[len(fn.DispatchPath)-1]
			seeds = append(seeds, dataflow.Seed{BlockID: dispatchBlockID, Field: dataflow.GroupSize, GtxnIndex: -1, Value: groupSize})
		}
	}
	return seeds
}

// DispatchEntryFor returns the dispatch entry named fn inside contract, if
// declared.
func (c *Config) DispatchEntryFor(contract, fn string) (DispatchEntry, bool) {
	for _, ct := range c.Contracts {
		if ct.Name != contract {
			continue
		}
		for _, f := range ct.Functions {
			if f.Name == fn {
				return f, true
			}
		}
	}
	return DispatchEntry{}, false
}

// ContractNameForFile returns the declared contract whose file_path matches
// path by basename, letting a CLI invocation look up which group-config
// entry (and therefore which Seeds) applies to the file it was pointed at.
func (c *Config) ContractNameForFile(path string) (string, bool) {
	base := filepath.Base(path)
	for _, ct := range c.Contracts {
		if filepath.Base(ct.FilePath) == base {
			return ct.Name, true
		}
	}
	return "", false
}
