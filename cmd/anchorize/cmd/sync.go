package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anchorize/anchorize/pkg/logging"
	"github.com/anchorize/anchorize/pkg/manifest"
)

var (
	syncManifestPath string
	syncTsDir        string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rewrite each program's PROGRAM_ID from a workspace TOML manifest",
	Long: `sync reads a workspace manifest of (program-name -> base58 pubkey)
pairs and rewrites the literal argument to new Pubkey(...) in the line
declaring static PROGRAM_ID for each matching source file under
--ts-dir. A file without that exact pattern is skipped with a warning,
never an error.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringVar(&syncManifestPath, "manifest", "programs.toml", "path to the workspace program-id manifest")
	syncCmd.Flags().StringVar(&syncTsDir, "ts-dir", "ts-programs/src", "directory containing each program's TypeScript source")
}

func runSync(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(syncManifestPath)
	if err != nil {
		return err
	}

	result, err := manifest.Sync(m, syncTsDir)
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	log := logging.Get()
	for _, path := range result.Updated {
		log.Info().Str("file", path).Msg("program id updated")
	}
	for _, skipped := range result.Skipped {
		log.Warn().Str("file", skipped.Path).Msg(skipped.Reason)
	}
	return nil
}
