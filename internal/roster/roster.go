// Package roster tracks the last-observed set of online players and
// computes join/leave diffs between polls.
package roster

import "sort"

// Tracker holds the previous participant set. It is owned by the watch
// loop and touched only from that goroutine, so it needs no locking.
type Tracker struct {
	prev map[string]bool
}

func NewTracker() *Tracker {
	return &Tracker{prev: make(map[string]bool)}
}

// Seed primes the tracker with the players already online at startup so
// they are not reported as fresh joins on the first tick.
func (t *Tracker) Seed(current map[string]bool) {
	t.prev = clone(current)
}

// Diff compares current against the remembered previous set and returns
// the players who joined and who left, both sorted lexicographically for
// deterministic notification order. The stored set is not modified;
// callers commit via Advance after the tick succeeds.
func (t *Tracker) Diff(current map[string]bool) (joined, left []string) {
	for name := range current {
		if !t.prev[name] {
			joined = append(joined, name)
		}
	}
	for name := range t.prev {
		if !current[name] {
			left = append(left, name)
		}
	}
	sort.Strings(joined)
	sort.Strings(left)
	return joined, left
}

// Advance replaces the remembered set wholesale with current.
func (t *Tracker) Advance(current map[string]bool) {
	t.prev = clone(current)
}

// Previous returns a copy of the remembered set, for inspection.
func (t *Tracker) Previous() map[string]bool {
	return clone(t.prev)
}

func clone(set map[string]bool) map[string]bool {
	out := make(map[string]bool, len(set))
	for name := range set {
		out[name] = true
	}
	return out
}
