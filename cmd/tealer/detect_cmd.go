package main

import (
	"fmt"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"go-tealer/config"
	"go-tealer/pluginapi"
	"go-tealer/printers"
)

func newDetectCmd(opts *config.Options, reg *pluginapi.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Run detectors against a contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ContractsPath == "" {
				return fmt.Errorf("detect: --contracts is required")
			}
			a, err := analyzeFile(opts.ContractsPath, opts.GroupConfigPath)
			if err != nil {
				return err
			}
			findings := reg.Detectors.RunAll(a.detectContext(), opts.DetectorsInclude, opts.DetectorsExclude)
			ethlog.Info("detect finished", "contract", opts.ContractsPath, "findings", len(findings))

			fmt.Fprintln(cmd.OutOrStdout(), printers.HumanSummary(len(a.CFG.Blocks), len(a.Calls.Subroutines), findings))
			fmt.Fprintln(cmd.OutOrStdout(), printers.FindingsTable(findings))
			return nil
		},
	}
}
