// Command tealer is the CLI dispatcher over the go-tealer analysis core:
// detect, print, and regex subcommands against one or more TEAL contract
// files, optionally informed by a group-config YAML file.
package main

import (
	"fmt"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"go-tealer/cfg"
	"go-tealer/config"
	"go-tealer/detectors"
	"go-tealer/pluginapi"
	"go-tealer/printers"
)

// main builds the default registry and runs the CLI. An embedder that
// wants extra detectors or printers forks this function: build its own
// *pluginapi.Registry, Register/RegisterPrinter onto it, then call
// newRootCmd(opts, reg).Execute() instead of going through main.
func main() {
	opts := config.NewOptions()
	reg := defaultRegistry()
	root := newRootCmd(opts, reg)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// defaultRegistry copies the built-in detector library and printer set into
// a fresh pluginapi.Registry, which is what gets extended by a caller that
// wants to add its own detectors/printers before Execute runs.
func defaultRegistry() *pluginapi.Registry {
	reg := pluginapi.New()
	for _, d := range detectors.Default.All() {
		reg.Detectors.Register(d)
	}
	reg.RegisterPrinter("cfg", printers.CFGDot)
	reg.RegisterPrinter("function-cfg", func(g *cfg.CFG) string { return printers.FunctionCFGDot(g, "main") })
	reg.RegisterPrinter("transaction-context", printers.TransactionContext)
	return reg
}

func newRootCmd(opts *config.Options, reg *pluginapi.Registry) *cobra.Command {
	root := &cobra.Command{
		Use:   "tealer",
		Short: "Static analyzer for Algorand TEAL contracts",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			installLogger(opts.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.ContractsPath, "contracts", "", "path to a TEAL contract file")
	root.PersistentFlags().StringVar(&opts.GroupConfigPath, "group-config", "", "path to a group-config YAML file")
	root.PersistentFlags().StringSliceVar(&opts.DetectorsInclude, "detectors", nil, "comma-separated detector ids to run (default: all)")
	root.PersistentFlags().StringSliceVar(&opts.DetectorsExclude, "exclude", nil, "comma-separated detector ids to skip")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level: trace|debug|info|warn|error|crit")

	root.AddCommand(newDetectCmd(opts, reg))
	root.AddCommand(newPrintCmd(opts, reg))
	root.AddCommand(newRegexCmd(opts))
	return root
}

func installLogger(level string) {
	lvl := ethlog.LevelInfo
	switch level {
	case "trace":
		lvl = ethlog.LevelTrace
	case "debug":
		lvl = ethlog.LevelDebug
	case "warn":
		lvl = ethlog.LevelWarn
	case "error":
		lvl = ethlog.LevelError
	case "crit":
		lvl = ethlog.LevelCrit
	}
	h := ethlog.NewTerminalHandlerWithLevel(os.Stderr, lvl, false)
	ethlog.SetDefault(ethlog.NewLogger(h))
}
