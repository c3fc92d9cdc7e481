package engagement

import (
	"sync"
	"time"

	"backend/internal/domain/models"
	"backend/internal/sched"
)

const defaultMobileBreakpoint = 768

// TickerConfig controls the rotating "recent activity" toast.
type TickerConfig struct {
	Enabled          bool          `json:"enabled" mapstructure:"enabled"`
	DisplayDuration  time.Duration `json:"display_duration" mapstructure:"display_duration"`
	IntervalBetween  time.Duration `json:"interval_between" mapstructure:"interval_between"`
	Position         string        `json:"position" mapstructure:"position"`
	ShowOnMobile     bool          `json:"show_on_mobile" mapstructure:"show_on_mobile"`
	MobileBreakpoint int           `json:"mobile_breakpoint" mapstructure:"mobile_breakpoint"`
}

func (c TickerConfig) withDefaults() TickerConfig {
	if c.DisplayDuration <= 0 {
		c.DisplayDuration = 5 * time.Second
	}
	if c.IntervalBetween <= 0 {
		c.IntervalBetween = 12 * time.Second
	}
	if c.Position == "" {
		c.Position = "bottom-left"
	}
	if c.MobileBreakpoint <= 0 {
		c.MobileBreakpoint = defaultMobileBreakpoint
	}
	return c
}

// Rotation is the process-wide cursor over the notification list. Every
// page view advances the same cursor so the site does not show each new
// visitor the same first item.
type Rotation struct {
	mu   sync.Mutex
	next int
}

func NewRotation() *Rotation { return &Rotation{} }

// Next returns the current index and advances, wrapping after the last
// item. n <= 0 yields -1.
func (r *Rotation) Next(n int) int {
	if n <= 0 {
		return -1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.next % n
	r.next = (idx + 1) % n
	return idx
}

// Ticker runs the show/hide cadence for one page view. It is inert when
// disabled, when the item list is empty, or on mobile viewports with
// show_on_mobile off. At most one timer is outstanding at a time, so a
// session kept alive for hours holds a single handle, not one per cycle.
type Ticker struct {
	cfg      TickerConfig
	items    []models.NotificationItem
	rotation *Rotation
	clock    sched.Clock

	show func(models.NotificationItem)
	hide func()

	mu      sync.Mutex
	pending sched.Handle
	running bool
}

func NewTicker(cfg TickerConfig, items []models.NotificationItem, rotation *Rotation, clock sched.Clock, show func(models.NotificationItem), hide func()) *Ticker {
	return &Ticker{
		cfg:      cfg.withDefaults(),
		items:    items,
		rotation: rotation,
		clock:    clock,
		show:     show,
		hide:     hide,
	}
}

// Start arms the first cadence tick. viewportWidth gates the mobile rule.
func (t *Ticker) Start(viewportWidth int) {
	if !t.cfg.Enabled || len(t.items) == 0 {
		return
	}
	if !t.cfg.ShowOnMobile && viewportWidth > 0 && viewportWidth < t.cfg.MobileBreakpoint {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.scheduleTickLocked()
}

func (t *Ticker) scheduleTickLocked() {
	t.pending = t.clock.AfterFunc(t.cfg.IntervalBetween, t.tick)
}

func (t *Ticker) tick() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	idx := t.rotation.Next(len(t.items))
	item := t.items[idx]
	t.mu.Unlock()

	t.show(item)

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.pending = t.clock.AfterFunc(t.cfg.DisplayDuration, func() {
		t.hide()
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.running {
			t.scheduleTickLocked()
		}
	})
}

// Stop cancels the outstanding cadence timer.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
