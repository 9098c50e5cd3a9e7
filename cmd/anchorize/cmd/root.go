package cmd

import (
	"github.com/spf13/cobra"

	"github.com/anchorize/anchorize/pkg/logging"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "anchorize",
	Short: "Compile a restricted TypeScript dialect into Anchor Rust source",
	Long: `anchorize translates a restricted, class-based typed scripting
dialect into Solana Anchor smart-contract source: one instruction
function and account-context struct per class method, one state
struct per exported account interface.

It also carries the workspace's external collaborators: a concurrent
multi-project build driver, a program-id manifest sync, and a watch
mode over that manifest.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		logging.Init(level)
	},
}

// Execute runs the root command.
func Execute() error {
	defer logging.Stop()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose (debug-level) logging")
}
