package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anchorize/anchorize/pkg/logging"
	"github.com/anchorize/anchorize/pkg/manifest"
)

var (
	watchManifestPath string
	watchTsDir        string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run sync whenever the workspace manifest changes",
	Long: `watch wraps sync in a long-running filesystem-event loop: it runs
sync once immediately, then again every time --manifest is written to,
until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchManifestPath, "manifest", "programs.toml", "path to the workspace program-id manifest")
	watchCmd.Flags().StringVar(&watchTsDir, "ts-dir", "ts-programs/src", "directory containing each program's TypeScript source")
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := logging.Get()

	stop, err := manifest.Watch(watchManifestPath, func(m manifest.Manifest) error {
		result, err := manifest.Sync(m, watchTsDir)
		if err != nil {
			return err
		}
		for _, path := range result.Updated {
			log.Info().Str("file", path).Msg("program id updated")
		}
		for _, skipped := range result.Skipped {
			log.Warn().Str("file", skipped.Path).Msg(skipped.Reason)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer stop()

	log.Info().Str("manifest", watchManifestPath).Msg("watching for changes")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	return nil
}
