package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jsvensson/streetleaves/internal/lsp"
)

var (
	flagVerbose bool
	flagLogFile string
	version     = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:          "leafpalette-lsp",
	Short:        "Language server for streetleaves palette files, over stdio",
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbosity := 1
		if flagVerbose {
			verbosity = 2
		}
		var logPath *string
		if flagLogFile != "" {
			logPath = &flagLogFile
		}
		return lsp.NewServer(version).Run(verbosity, logPath)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "write logs to this file instead of stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
