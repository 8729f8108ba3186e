package search

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// RunBatch reads bare domains from queryPath, one per line, and writes one
// exact-membership verdict line per domain to w.
func RunBatch(index *Index, queryPath string, w io.Writer) error {
	f, err := os.Open(queryPath) // #nosec G304 -- path is a CLI argument.
	if err != nil {
		return fmt.Errorf("open search input: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		domain := strings.TrimSpace(scanner.Text())
		if domain == "" {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", domain, verdict(index.Exact(domain)))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan search input: %w", err)
	}
	return nil
}

func verdict(blocked bool) string {
	if blocked {
		return "blocked"
	}
	return "not blocked"
}
