// Package backup fetches remote blocklist sources and keeps a per-source
// snapshot of the entries each one contributes.
package backup

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"
)

// Source is one remote blocklist document.
type Source struct {
	URL string
}

// ID returns the stable 8-hex-character handle for the source: the first
// bytes of the SHA-256 digest of its URL. Safe for filenames and short
// enough to type.
func (s Source) ID() string {
	sum := sha256.Sum256([]byte(s.URL))
	return hex.EncodeToString(sum[:4])
}

// SnapshotName is the file name the snapshot is stored under:
// "{id}-{basename of the URL path}".
func (s Source) SnapshotName() string {
	base := ""
	if u, err := url.Parse(s.URL); err == nil {
		base = path.Base(u.Path)
		if base == "." || base == "/" {
			base = ""
		}
	}
	return s.ID() + "-" + base
}

// ParseSources reads a source list: one URL per line, blank lines and
// #-comments ignored. The result is deduplicated and sorted by URL so runs
// process sources in a stable order.
func ParseSources(r io.Reader) ([]Source, error) {
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seen[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan source list: %w", err)
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	sources := make([]Source, len(urls))
	for i, u := range urls {
		sources[i] = Source{URL: u}
	}
	return sources, nil
}
