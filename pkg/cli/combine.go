package cli

import (
	"github.com/spf13/cobra"

	"hostmerge/pkg/combine"
)

func newCombineCmd(a *app) *cobra.Command {
	opts := combine.Options{}
	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Merge all source files into one deduplicated, filtered hosts file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return combine.Run(a.cfg, a.log, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Everything, "everything", "e", false, "also merge the backup snapshots, writing to the combined-all output")
	cmd.Flags().BoolVar(&opts.SkipWhitelist, "no-whitelist", false, "skip the whitelist pass")
	cmd.Flags().BoolVar(&opts.SkipTrim, "no-trim", false, "skip the trim-rules pass")
	return cmd
}
