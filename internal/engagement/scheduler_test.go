package engagement

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"backend/internal/sched"
)

func allTriggers() TriggerConfig {
	return TriggerConfig{
		Enabled:             true,
		EntryEnabled:        true,
		EntryDelay:          4 * time.Second,
		IdleEnabled:         true,
		IdleThreshold:       0.5,
		ExitEnabled:         true,
		ExitScrollThreshold: 0.95,
	}
}

func TestEntryFiresOnceAfterDelay(t *testing.T) {
	clock := sched.NewFake()
	var fired []Trigger
	NewScheduler(allTriggers(), clock, func(tr Trigger) { fired = append(fired, tr) })

	clock.Advance(3 * time.Second)
	assert.Empty(t, fired)

	clock.Advance(time.Second)
	assert.Equal(t, []Trigger{TriggerEntry}, fired)

	clock.Advance(time.Minute)
	assert.Len(t, fired, 1)
}

func TestIdleFiresOnceAcrossRepeatedCrossings(t *testing.T) {
	clock := sched.NewFake()
	cfg := allTriggers()
	cfg.EntryEnabled = false
	cfg.ExitEnabled = false

	var fired []Trigger
	s := NewScheduler(cfg, clock, func(tr Trigger) { fired = append(fired, tr) })

	// depth (1000+800)/4000 = 0.45, below threshold
	s.ObserveScroll(1000, 800, 4000)
	assert.Empty(t, fired)

	// three crossings, one firing
	s.ObserveScroll(1500, 800, 4000)
	s.ObserveScroll(500, 800, 4000)
	s.ObserveScroll(2000, 800, 4000)
	s.ObserveScroll(1800, 800, 4000)
	assert.Equal(t, []Trigger{TriggerIdle}, fired)
}

func TestExitSharesOneFlagAcrossSignals(t *testing.T) {
	clock := sched.NewFake()
	cfg := allTriggers()
	cfg.EntryEnabled = false
	cfg.IdleEnabled = false

	var fired []Trigger
	s := NewScheduler(cfg, clock, func(tr Trigger) { fired = append(fired, tr) })

	s.ObservePointer(-2)
	assert.Equal(t, []Trigger{TriggerExit}, fired)

	// deep scroll is the same "about to leave" signal
	s.ObserveScroll(3800, 800, 4000)
	s.ObservePointer(0)
	assert.Len(t, fired, 1)
}

func TestExitDeepScrollWithoutPointer(t *testing.T) {
	clock := sched.NewFake()
	cfg := allTriggers()
	cfg.EntryEnabled = false
	cfg.IdleEnabled = false

	var fired []Trigger
	s := NewScheduler(cfg, clock, func(tr Trigger) { fired = append(fired, tr) })

	// depth (3300+800)/4000 = 1.025 crosses the 0.95 threshold
	s.ObserveScroll(3300, 800, 4000)
	assert.Equal(t, []Trigger{TriggerExit}, fired)
}

func TestAllDisabledArmsNothing(t *testing.T) {
	clock := sched.NewFake()
	cfg := TriggerConfig{Enabled: true}

	fired := 0
	s := NewScheduler(cfg, clock, func(Trigger) { fired++ })

	assert.False(t, s.Active())
	assert.Equal(t, 0, clock.Pending(), "no listeners, no timers")

	s.ObserveScroll(4000, 800, 4000)
	s.ObservePointer(-1)
	clock.Advance(time.Minute)
	assert.Equal(t, 0, fired)
}

func TestStopConcurrentWithEventReports(t *testing.T) {
	clock := sched.NewFake()
	s := NewScheduler(allTriggers(), clock, func(Trigger) {})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.ObserveScroll(float64(i), 800, 4000)
			s.ObservePointer(float64(i%3) - 1)
		}
	}()
	go func() {
		defer wg.Done()
		s.Stop()
	}()
	wg.Wait()

	assert.False(t, s.Active())
}

func TestStopCancelsEntryTimer(t *testing.T) {
	clock := sched.NewFake()
	fired := 0
	s := NewScheduler(allTriggers(), clock, func(Trigger) { fired++ })

	s.Stop()
	clock.Advance(time.Minute)
	assert.Equal(t, 0, fired)
}
