package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"

	"go-tealer/callgraph"
	"go-tealer/cfg"
	"go-tealer/dataflow"
	"go-tealer/detect"
	"go-tealer/groupconfig"
	"go-tealer/parser"
	"go-tealer/teal"
)

// analysis bundles every artifact one contract file produces on its way
// through the core: parsed program, CFG, call graph, and the dataflow
// annotations dataflow.Run writes into each block's Context.
type analysis struct {
	Program *teal.Program
	CFG     *cfg.CFG
	Calls   *callgraph.CallGraph
}

// analyzeFile runs the full core pipeline over one contract file. When
// groupConfigPath is non-empty, it is loaded and, if it declares the
// contract at path, its group sizes and dispatch paths seed the dataflow
// engine's entry blocks (SPEC_FULL.md §6) instead of leaving GroupSize at
// top for the whole analysis.
func analyzeFile(path, groupConfigPath string) (*analysis, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	prog, err := parser.Parse(string(src), path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	g, err := cfg.Build(prog)
	if err != nil {
		return nil, fmt.Errorf("building cfg for %s: %w", path, err)
	}
	calls := callgraph.Recover(g)
	dataflow.Run(g, groupConfigSeeds(path, groupConfigPath, g)...)
	return &analysis{Program: prog, CFG: g, Calls: calls}, nil
}

// groupConfigSeeds loads groupConfigPath, if given, and returns the seeds it
// implies for the contract at path's entry block. A missing path, a load
// error, or a contract groupConfigPath doesn't declare all yield no seeds
// rather than failing the whole analysis, since the group-config file is an
// optional refinement, not a required input.
func groupConfigSeeds(path, groupConfigPath string, g *cfg.CFG) []dataflow.Seed {
	if groupConfigPath == "" {
		return nil
	}
	gc, err := groupconfig.Load(groupConfigPath)
	if err != nil {
		log.Warn("ignoring group-config", "path", groupConfigPath, "err", err)
		return nil
	}
	contractName, ok := gc.ContractNameForFile(path)
	if !ok {
		return nil
	}
	return gc.Seeds(contractName, g.Entry().ID)
}

func (a *analysis) detectContext() *detect.Context {
	return &detect.Context{CFG: a.CFG, Calls: a.Calls}
}
