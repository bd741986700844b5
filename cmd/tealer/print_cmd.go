package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-tealer/config"
	"go-tealer/pluginapi"
	"go-tealer/printers"
)

func newPrintCmd(opts *config.Options, reg *pluginapi.Registry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print <printer-name>",
		Short: "Run a single printer against a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ContractsPath == "" {
				return fmt.Errorf("print: --contracts is required")
			}
			a, err := analyzeFile(opts.ContractsPath, opts.GroupConfigPath)
			if err != nil {
				return err
			}

			out, err := runPrinter(a, reg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	return cmd
}

func runPrinter(a *analysis, reg *pluginapi.Registry, name string) (string, error) {
	switch name {
	case "call-graph":
		return printers.CallGraphDot(a.Calls.Edges), nil
	case "complexity":
		return fmt.Sprintf("cyclomatic complexity: %d", printers.Complexity(a.CFG)), nil
	case "human-summary":
		findings := reg.Detectors.RunAll(a.detectContext(), nil, nil)
		return printers.HumanSummary(len(a.CFG.Blocks), len(a.Calls.Subroutines), findings), nil
	default:
		fn, ok := reg.Printer(name)
		if !ok {
			return "", fmt.Errorf("print: unknown printer %q", name)
		}
		return fn(a.CFG), nil
	}
}
