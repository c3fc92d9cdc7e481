package sched

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Stop reports whether the callback was
// prevented from running.
type Handle interface {
	Stop() bool
}

// Clock schedules deferred callbacks. Owners keep the returned Handle and stop
// it on teardown so no timer outlives the component that armed it.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Handle
}

type realClock struct{}

type realHandle struct {
	t *time.Timer
}

func (h realHandle) Stop() bool { return h.t.Stop() }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Handle {
	return realHandle{t: time.AfterFunc(d, fn)}
}

// Real returns the wall-clock implementation backed by time.AfterFunc.
func Real() Clock { return realClock{} }

// HandleSet tracks outstanding handles for an owner and stops them together.
type HandleSet struct {
	mu      sync.Mutex
	handles []Handle
}

// Track keeps h so StopAll can cancel it later.
func (s *HandleSet) Track(h Handle) Handle {
	s.mu.Lock()
	s.handles = append(s.handles, h)
	s.mu.Unlock()
	return h
}

// StopAll cancels every tracked handle and clears the set.
func (s *HandleSet) StopAll() {
	s.mu.Lock()
	handles := s.handles
	s.handles = nil
	s.mu.Unlock()
	for _, h := range handles {
		h.Stop()
	}
}
