package hosts

import "sort"

// Set is an unordered collection of unique entries keyed by the full
// (address, domain) tuple.
type Set struct {
	entries map[Entry]struct{}
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{entries: make(map[Entry]struct{})}
}

// Add inserts an entry; duplicates collapse silently.
func (s *Set) Add(e Entry) {
	s.entries[e] = struct{}{}
}

// Remove deletes a single entry if present.
func (s *Set) Remove(e Entry) {
	delete(s.entries, e)
}

// Has reports membership of the exact tuple.
func (s *Set) Has(e Entry) bool {
	_, ok := s.entries[e]
	return ok
}

// Len returns the number of unique entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Merge unions other into s.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for e := range other.entries {
		s.entries[e] = struct{}{}
	}
}

// Subtract removes every entry present in other and returns how many were
// removed.
func (s *Set) Subtract(other *Set) int {
	if other == nil {
		return 0
	}
	removed := 0
	for e := range other.entries {
		if _, ok := s.entries[e]; ok {
			delete(s.entries, e)
			removed++
		}
	}
	return removed
}

// SubsetOf reports whether every entry of s is also in other.
func (s *Set) SubsetOf(other *Set) bool {
	for e := range s.entries {
		if !other.Has(e) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold exactly the same tuples.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	return s.SubsetOf(other)
}

// Entries returns the entries in unspecified order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for e := range s.entries {
		out = append(out, e)
	}
	return out
}

// Sorted returns the entries ordered lexicographically by their serialized
// tab-separated form, for reproducible output.
func (s *Set) Sorted() []Entry {
	out := s.Entries()
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Domains returns the deduplicated domain portions in sorted order.
func (s *Set) Domains() []string {
	seen := make(map[string]struct{}, len(s.entries))
	for e := range s.entries {
		seen[e.Domain] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
