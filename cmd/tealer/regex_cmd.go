package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-tealer/config"
	"go-tealer/regexmatch"
)

func newRegexCmd(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "regex <regex-file>",
		Short: "Run the instruction-sequence regex engine against a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ContractsPath == "" {
				return fmt.Errorf("regex: --contracts is required")
			}
			a, err := analyzeFile(opts.ContractsPath, opts.GroupConfigPath)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			pattern, err := regexmatch.Parse(string(raw))
			if err != nil {
				return err
			}

			res, err := regexmatch.Run(a.CFG, a.Program, pattern)
			if err != nil {
				return err
			}
			if len(res.Matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no match was found")
				return nil
			}
			for i, m := range res.Matches {
				fmt.Fprintf(cmd.OutOrStdout(), "match %d: instructions %v\n", i, m.Indices)
			}
			return nil
		},
	}
}
