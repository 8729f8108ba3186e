// Package filtering removes unwanted entries from a merged hosts set: exact
// whitelist subtraction and regex-based trimming.
package filtering

import (
	"fmt"
	"os"

	"hostmerge/pkg/hosts"
)

// LoadWhitelist parses the whitelist file with the regular hosts normalizer,
// so whitelist lines accept the same syntax as blocklist lines.
func LoadWhitelist(path string) (*hosts.Set, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from configuration.
	if err != nil {
		return nil, fmt.Errorf("open whitelist: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	set := hosts.NewSet()
	if _, err := hosts.Build(f, set); err != nil {
		return nil, fmt.Errorf("parse whitelist: %w", err)
	}
	return set, nil
}

// ApplyWhitelist removes every whitelisted entry from set, matching on the
// full (address, domain) tuple. Returns the number removed.
func ApplyWhitelist(set, whitelist *hosts.Set) int {
	return set.Subtract(whitelist)
}
