package backup

import "hostmerge/pkg/hosts"

// Plan decides whether a freshly fetched set warrants a snapshot write and
// what the written set should be.
//
// With keepOld false the snapshot mirrors the upstream exactly: write when
// anything changed, and entries the upstream dropped are dropped here too.
// With keepOld true a once-seen entry is never lost: write only when the
// fetch introduced entries unknown to the old snapshot, and persist the
// union. The trade-off is completeness against staleness.
//
// Plan takes ownership of fresh and may mutate it; the returned set is the
// one to persist.
func Plan(old, fresh *hosts.Set, keepOld bool) (bool, *hosts.Set) {
	if keepOld {
		if fresh.SubsetOf(old) {
			return false, fresh
		}
		fresh.Merge(old)
		return true, fresh
	}
	if fresh.Equal(old) {
		return false, fresh
	}
	return true, fresh
}
