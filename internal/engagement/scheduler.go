package engagement

import (
	"sync"
	"time"

	"backend/internal/sched"
)

// Trigger names one of the promotional interruption signals.
type Trigger string

const (
	TriggerEntry Trigger = "entry"
	TriggerIdle  Trigger = "idle"
	// TriggerExit fires on pointer-leaves-top or on deep scroll,
	// whichever comes first; both share the one flag.
	TriggerExit Trigger = "exit"
)

// TriggerConfig controls which interruptions a site runs.
type TriggerConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	EntryEnabled bool          `json:"entry_enabled" mapstructure:"entry_enabled"`
	EntryDelay   time.Duration `json:"entry_delay" mapstructure:"entry_delay"`

	IdleEnabled   bool    `json:"idle_enabled" mapstructure:"idle_enabled"`
	IdleThreshold float64 `json:"idle_threshold" mapstructure:"idle_threshold"`

	ExitEnabled         bool    `json:"exit_enabled" mapstructure:"exit_enabled"`
	ExitScrollThreshold float64 `json:"exit_scroll_threshold" mapstructure:"exit_scroll_threshold"`
}

func (c TriggerConfig) withDefaults() TriggerConfig {
	if c.EntryDelay <= 0 {
		c.EntryDelay = 4 * time.Second
	}
	if c.IdleThreshold <= 0 {
		c.IdleThreshold = 0.5
	}
	if c.ExitScrollThreshold <= 0 {
		c.ExitScrollThreshold = 0.95
	}
	return c
}

// anyTrigger reports whether observation is worth setting up at all.
func (c TriggerConfig) anyTrigger() bool {
	return c.Enabled && (c.EntryEnabled || c.IdleEnabled || c.ExitEnabled)
}

// Scheduler watches one page view and fires each trigger at most once.
// With every trigger disabled it arms nothing and ignores all input.
// Observe calls and Stop may come from different goroutines; mu guards
// the active flag between them.
type Scheduler struct {
	cfg     TriggerConfig
	flags   *Flags
	fire    func(Trigger)
	clock   sched.Clock
	handles sched.HandleSet

	mu     sync.Mutex
	active bool
}

func NewScheduler(cfg TriggerConfig, clock sched.Clock, fire func(Trigger)) *Scheduler {
	s := &Scheduler{
		cfg:   cfg.withDefaults(),
		flags: NewFlags(),
		fire:  fire,
		clock: clock,
	}
	if !s.cfg.anyTrigger() {
		return s
	}
	s.active = true
	if s.cfg.EntryEnabled {
		s.handles.Track(clock.AfterFunc(s.cfg.EntryDelay, func() {
			s.fireOnce(TriggerEntry)
		}))
	}
	return s
}

// Active reports whether any observation is armed.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Scheduler) Fired(t Trigger) bool { return s.flags.Fired(t) }

// ObserveScroll takes the raw viewport metrics a browser reports and
// derives scroll depth as (position + viewport) / document.
func (s *Scheduler) ObserveScroll(position, viewportHeight, documentHeight float64) {
	if !s.Active() || documentHeight <= 0 {
		return
	}
	depth := (position + viewportHeight) / documentHeight
	if s.cfg.IdleEnabled && depth >= s.cfg.IdleThreshold {
		s.fireOnce(TriggerIdle)
	}
	if s.cfg.ExitEnabled && depth >= s.cfg.ExitScrollThreshold {
		s.fireOnce(TriggerExit)
	}
}

// ObservePointer fires exit intent when the pointer reaches the top edge.
func (s *Scheduler) ObservePointer(y float64) {
	if !s.Active() || !s.cfg.ExitEnabled {
		return
	}
	if y <= 0 {
		s.fireOnce(TriggerExit)
	}
}

func (s *Scheduler) fireOnce(t Trigger) {
	if !s.flags.TrySet(t) {
		return
	}
	s.fire(t)
}

// Stop cancels the entry timer; pending callbacks must never outlive the
// page view that owns them.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
	s.handles.StopAll()
}
