// Package search answers exact and substring lookups against a combined
// hosts set.
package search

import (
	"fmt"
	"os"
	"strings"

	"hostmerge/pkg/hosts"
)

// Index answers membership queries over a finished entry set. It is
// read-only and safe to reuse across queries.
type Index struct {
	set     *hosts.Set
	domains []string
}

// NewIndex builds an index over set. The set is not copied; the caller must
// not mutate it afterwards.
func NewIndex(set *hosts.Set) *Index {
	return &Index{set: set, domains: set.Domains()}
}

// LoadIndex builds an index from a serialized combined hosts file.
func LoadIndex(path string) (*Index, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from configuration.
	if err != nil {
		return nil, fmt.Errorf("open index source: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	set := hosts.NewSet()
	if _, err := hosts.Build(f, set); err != nil {
		return nil, fmt.Errorf("parse index source: %w", err)
	}
	return NewIndex(set), nil
}

// Exact reports whether the canonical entry reconstructed from domain is a
// member of the set.
func (i *Index) Exact(domain string) bool {
	d := strings.ToLower(strings.TrimSpace(domain))
	return i.set.Has(hosts.Entry{Addr: hosts.BlockAddress, Domain: d})
}

// Partial returns every indexed domain containing fragment as a substring,
// in sorted order.
func (i *Index) Partial(fragment string) []string {
	frag := strings.ToLower(strings.TrimSpace(fragment))
	if frag == "" {
		return nil
	}
	var matches []string
	for _, d := range i.domains {
		if strings.Contains(d, frag) {
			matches = append(matches, d)
		}
	}
	return matches
}

// Size returns the number of indexed entries.
func (i *Index) Size() int {
	return i.set.Len()
}
