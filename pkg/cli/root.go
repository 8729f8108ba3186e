// Package cli wires the hostmerge command tree. Exactly one mode runs per
// invocation; all real work lives in the backup, combine and search
// packages.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hostmerge/pkg/config"
	"hostmerge/pkg/logger"
	"hostmerge/pkg/version"
)

// app carries the configuration and logger shared by all subcommands,
// populated once before any of them runs.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var configPath, logLevel, logFile string

	root := &cobra.Command{
		Use:           "hostmerge",
		Short:         "Aggregate hosts-file blocklists into deduplicated, filtered sets",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Setup(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				if err := config.ValidateLogLevel(logLevel); err != nil {
					return err
				}
				cfg.Logging.Level = logLevel
			}
			if logFile != "" {
				cfg.Logging.File = logFile
			}
			a.cfg = cfg
			a.log = logger.Setup(cfg.Logging.Level, cfg.Logging.File)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./hostmerge.toml or $HOSTMERGE_CONFIG)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "log destination: stdout, stderr or a file path")

	root.AddCommand(newBackupCmd(a), newCombineCmd(a), newSearchCmd(a))
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
