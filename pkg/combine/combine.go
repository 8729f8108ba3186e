// Package combine merges source directories into one filtered output file.
package combine

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"hostmerge/pkg/config"
	"hostmerge/pkg/filtering"
	"hostmerge/pkg/hosts"
)

// Options shape one combine run.
type Options struct {
	// Everything also merges the backup snapshot directory and writes to
	// the combined-all output path.
	Everything bool
	// SkipWhitelist leaves whitelisted entries in.
	SkipWhitelist bool
	// SkipTrim skips the regex trim pass.
	SkipTrim bool
}

// Run merges, filters and writes the combined hosts file.
func Run(cfg *config.Config, log *slog.Logger, opts Options) error {
	if log == nil {
		log = slog.Default()
	}

	set := hosts.NewSet()
	log.Info("merging sources", "dir", cfg.Paths.SourcesDir)
	lines, err := hosts.MergeDir(cfg.Paths.SourcesDir, set)
	if err != nil {
		return err
	}

	if opts.Everything {
		log.Info("merging backup snapshots", "dir", cfg.Paths.BackupDir)
		n, err := hosts.MergeDir(cfg.Paths.BackupDir, set)
		if err != nil {
			return err
		}
		lines += n
	}

	if !opts.SkipWhitelist {
		whitelist, err := filtering.LoadWhitelist(cfg.Paths.Whitelist)
		if err != nil {
			return err
		}
		removed := filtering.ApplyWhitelist(set, whitelist)
		log.Info("whitelist applied", "removed", removed)
	}

	if !opts.SkipTrim && cfg.Paths.TrimRules != "" {
		rules, err := filtering.LoadTrimRules(cfg.Paths.TrimRules)
		if err != nil {
			return err
		}
		removed := filtering.ApplyTrim(set, rules)
		log.Info("trim rules applied", "rules", len(rules), "removed", removed)
	}

	out := cfg.Paths.Combined
	if opts.Everything {
		out = cfg.Paths.CombinedAll
	}
	if err := WriteOutput(out, set); err != nil {
		return err
	}
	log.Info("combined hosts written", "file", out, "entries", set.Len(), "lines", lines)
	return nil
}

// WriteOutput serializes the set sorted, tab-separated, newline-joined, with
// no header and no trailing newline.
func WriteOutput(path string, set *hosts.Set) error {
	entries := set.Sorted()
	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = entry.String()
	}
	if err := os.WriteFile(path, []byte(strings.Join(parts, "\n")), 0o644); err != nil {
		return fmt.Errorf("write combined output: %w", err)
	}
	return nil
}
