package backup

import (
	"fmt"
	"os"
	"strings"
	"time"

	"hostmerge/pkg/hosts"
)

// WriteSnapshot persists a set for one source: a header naming the source
// URL and the backup date, a blank line, then the sorted entries with no
// trailing newline.
func WriteSnapshot(path string, src Source, set *hosts.Set, now time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n# Backed up on: %s\n\n", src.URL, now.Format("2006-01-02"))
	for i, entry := range set.Sorted() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(entry.String())
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a previously written snapshot into a fresh set. The
// header lines are comments to the normalizer and drop out on their own. A
// missing file yields an empty set: the source has simply never been backed
// up.
func LoadSnapshot(path string) (*hosts.Set, error) {
	set := hosts.NewSet()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}
	if _, err := hosts.MergeFile(path, set); err != nil {
		return nil, err
	}
	return set, nil
}
