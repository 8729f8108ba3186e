package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hostmerge/pkg/search"
)

func newSearchCmd(a *app) *cobra.Command {
	var indexPath string
	cmd := &cobra.Command{
		Use:   "search [file]",
		Short: "Look up domains against the combined output",
		Long: "With a file argument, print one exact-membership verdict per listed " +
			"domain. Without one, start an interactive loop: \":mode\" toggles " +
			"between exact and substring matching, \":quit\" exits.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := indexPath
			if path == "" {
				path = a.cfg.Paths.Combined
			}
			index, err := search.LoadIndex(path)
			if err != nil {
				return err
			}
			a.log.Info("index loaded", "file", path, "entries", index.Size())

			if len(args) == 1 {
				return search.RunBatch(index, args[0], cmd.OutOrStdout())
			}

			if !term.IsTerminal(int(os.Stdin.Fd())) {
				a.log.Warn("stdin is not a terminal, reading queries until EOF")
			}
			repl := search.NewREPL(index, cmd.OutOrStdout())
			return repl.Run(cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVar(&indexPath, "index", "", "hosts file to index (default: the combined output)")
	return cmd
}
