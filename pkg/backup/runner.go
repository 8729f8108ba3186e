package backup

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hostmerge/pkg/hosts"
)

// Options select and shape one backup run.
type Options struct {
	// Only restricts the run to the listed source ids; empty means all.
	Only []string
	// Skip excludes the listed source ids.
	Skip []string
	// KeepOld unions the fresh fetch with the existing snapshot instead of
	// replacing it.
	KeepOld bool
	// Cleanup reformats existing snapshots in place without fetching.
	Cleanup bool
}

// Runner executes the per-source backup loop.
type Runner struct {
	fetcher *Fetcher
	log     *slog.Logger
	now     func() time.Time
}

// NewRunner builds a Runner around a Fetcher.
func NewRunner(fetcher *Fetcher, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{fetcher: fetcher, log: log, now: time.Now}
}

// Run backs up every selected source from the list file into destDir,
// strictly one at a time. A fetch failure skips only that source and the
// run continues; a bad id selector or an unreadable list file aborts before
// any network or snapshot I/O.
func (r *Runner) Run(ctx context.Context, listPath, destDir string, opts Options) error {
	if err := validateIDs(opts.Only); err != nil {
		return err
	}
	if err := validateIDs(opts.Skip); err != nil {
		return err
	}

	sources, err := readSourceList(listPath)
	if err != nil {
		return err
	}

	only, err := buildSelector(sources, opts.Only)
	if err != nil {
		return err
	}
	skip, err := buildSelector(sources, opts.Skip)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	for _, src := range sources {
		id := src.ID()
		if len(only) > 0 {
			if _, ok := only[id]; !ok {
				continue
			}
		}
		if _, ok := skip[id]; ok {
			continue
		}

		if opts.Cleanup {
			if err := r.cleanupSource(src, destDir); err != nil {
				r.log.Error("cleanup failed, skipping source", "source", id, "error", err)
			}
			continue
		}
		r.backupSource(ctx, src, destDir, opts.KeepOld)
	}
	return nil
}

func readSourceList(path string) ([]Source, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from configuration.
	if err != nil {
		return nil, fmt.Errorf("open source list: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return ParseSources(f)
}

// validateIDs checks selector shape only: exactly 8 lower-hex characters.
func validateIDs(ids []string) error {
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if len(id) != 8 || !isHex(id) {
			return fmt.Errorf("invalid source id %q: want 8 hex characters", id)
		}
	}
	return nil
}

// buildSelector resolves ids against the parsed source list; an id that
// matches no source is an error rather than a silent no-op.
func buildSelector(sources []Source, ids []string) (map[string]struct{}, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	known := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		known[src.ID()] = struct{}{}
	}
	sel := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("unknown source id %q", id)
		}
		sel[id] = struct{}{}
	}
	return sel, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

func (r *Runner) backupSource(ctx context.Context, src Source, destDir string, keepOld bool) {
	id := src.ID()
	path := filepath.Join(destDir, src.SnapshotName())

	data, err := r.fetcher.Fetch(ctx, src)
	if err != nil {
		r.log.Error("fetch failed, skipping source", "source", id, "url", src.URL, "error", err)
		return
	}

	fresh := hosts.NewSet()
	lines, err := hosts.Build(bytes.NewReader(data), fresh)
	if err != nil {
		r.log.Error("parse failed, skipping source", "source", id, "error", err)
		return
	}

	old, err := LoadSnapshot(path)
	if err != nil {
		r.log.Error("snapshot unreadable, skipping source", "source", id, "error", err)
		return
	}

	write, final := Plan(old, fresh, keepOld)
	if !write {
		r.log.Info("nothing changed, skipping", "source", id, "url", src.URL)
		return
	}
	if err := WriteSnapshot(path, src, final, r.now()); err != nil {
		r.log.Error("snapshot write failed", "source", id, "error", err)
		return
	}
	r.log.Info("snapshot written", "source", id, "url", src.URL, "kept", final.Len(), "lines", lines)
}

// cleanupSource re-parses an existing snapshot and rewrites it normalized.
// Sources that were never backed up are left alone.
func (r *Runner) cleanupSource(src Source, destDir string) error {
	path := filepath.Join(destDir, src.SnapshotName())
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	set, err := LoadSnapshot(path)
	if err != nil {
		return err
	}
	if err := WriteSnapshot(path, src, set, r.now()); err != nil {
		return err
	}
	r.log.Info("snapshot reformatted", "source", src.ID(), "entries", set.Len())
	return nil
}
