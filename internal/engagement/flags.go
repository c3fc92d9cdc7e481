package engagement

import "sync"

// Flags are the write-once guards that keep each trigger to at most one
// firing per page view. Shared for the session lifetime, reset only by a
// full reload (a new session).
type Flags struct {
	mu    sync.Mutex
	fired map[Trigger]bool
}

func NewFlags() *Flags {
	return &Flags{fired: make(map[Trigger]bool)}
}

// TrySet marks the trigger fired. Returns false when it already was, so
// callers can use it as the single firing gate.
func (f *Flags) TrySet(t Trigger) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fired[t] {
		return false
	}
	f.fired[t] = true
	return true
}

func (f *Flags) Fired(t Trigger) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fired[t]
}
