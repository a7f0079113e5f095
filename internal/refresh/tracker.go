package refresh

import "sync"

// Tracker remembers the last version a consumer acted on.
type Tracker struct {
	mu   sync.Mutex
	last uint64
}

// Observe records version and reports whether it differs from the previous one.
// Any change counts, not only increments.
func (t *Tracker) Observe(version uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if version == t.last {
		return false
	}
	t.last = version
	return true
}

// Last returns the last observed version.
func (t *Tracker) Last() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
