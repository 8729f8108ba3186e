package cli

import (
	"github.com/spf13/cobra"

	"hostmerge/pkg/backup"
)

func newBackupCmd(a *app) *cobra.Command {
	opts := backup.Options{}
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Fetch every listed source and snapshot what changed",
		Long: "Fetches each source from the source list, one at a time, and writes a " +
			"normalized snapshot when its content changed. A source that fails to " +
			"download is skipped and the run continues.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := backup.NewFetcher(a.cfg.Backup.Timeout, a.cfg.Backup.UserAgent, a.log)
			runner := backup.NewRunner(fetcher, a.log)
			return runner.Run(cmd.Context(), a.cfg.Paths.SourceList, a.cfg.Paths.BackupDir, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.KeepOld, "keep-old", "k", false, "keep entries the upstream source has removed")
	cmd.Flags().StringSliceVar(&opts.Only, "only", nil, "back up only these 8-hex source ids")
	cmd.Flags().StringSliceVar(&opts.Skip, "skip", nil, "skip these 8-hex source ids")
	cmd.Flags().BoolVar(&opts.Cleanup, "cleanup", false, "reformat existing snapshots without fetching")
	return cmd
}
