package watch

import (
	"log"
	"sync"
)

// failureThreshold is how many consecutive player-query failures the
// watcher tolerates before giving up. Brief outages ride through; a
// permanently broken configuration does not retry silently forever.
const failureThreshold = 5

// escalator counts consecutive tick failures. It is written by the watch
// loop and read by the status endpoint's health hook, hence the mutex.
type escalator struct {
	mu          sync.Mutex
	consecutive int
	threshold   int
}

func newEscalator(threshold int) *escalator {
	return &escalator{threshold: threshold}
}

// record notes one failed tick and reports whether the threshold has
// been reached.
func (e *escalator) record(err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.consecutive++
	log.Printf("[watch] poll error (%d/%d): %v", e.consecutive, e.threshold, err)
	return e.consecutive >= e.threshold
}

// reset clears the counter after a fully successful tick.
func (e *escalator) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.consecutive = 0
}

func (e *escalator) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.consecutive
}
