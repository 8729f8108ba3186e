package hosts

import (
	"fmt"
	"os"
	"path/filepath"
)

// MergeDir runs Build over every regular file in dir, unioning the results
// into set. Subdirectories are skipped, no recursion. Returns the total
// number of lines processed across all files.
func MergeDir(dir string, set *Set) (int, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read source dir: %w", err)
	}

	total := 0
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		n, err := MergeFile(filepath.Join(dir, de.Name()), set)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// MergeFile runs Build over a single hosts file.
func MergeFile(path string, set *Set) (int, error) {
	f, err := os.Open(path) // #nosec G304 -- paths come from configured directories.
	if err != nil {
		return 0, fmt.Errorf("open hosts file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	n, err := Build(f, set)
	if err != nil {
		return n, fmt.Errorf("parse %s: %w", path, err)
	}
	return n, nil
}
