package engagement

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/sched"
)

// PromptKind distinguishes what the frontend should render.
type PromptKind string

const (
	PromptPopup            PromptKind = "popup"
	PromptNotificationShow PromptKind = "notification_show"
	PromptNotificationHide PromptKind = "notification_hide"
)

// Prompt is one queued instruction for the page that owns the session.
type Prompt struct {
	Kind         PromptKind               `json:"kind"`
	Trigger      Trigger                  `json:"trigger,omitempty"`
	Notification *models.NotificationItem `json:"notification,omitempty"`
	Position     string                   `json:"position,omitempty"`
}

// Event is a browser observation reported into a session.
type Event struct {
	Type           string  `json:"type"`
	Position       float64 `json:"position"`
	ViewportHeight float64 `json:"viewport_height"`
	DocumentHeight float64 `json:"document_height"`
	PointerY       float64 `json:"pointer_y"`
}

const (
	EventScroll  = "scroll"
	EventPointer = "pointer"
	EventPoll    = "poll"
)

// Session is one page view's scheduler state. Timers enqueue prompts
// here and the page drains them with its next event report.
type Session struct {
	ID string

	mu        sync.Mutex
	pending   []Prompt
	expiresAt time.Time

	scheduler *Scheduler
	ticker    *Ticker
}

func (s *Session) enqueue(p Prompt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, p)
}

func (s *Session) drain() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

func (s *Session) teardown() {
	s.scheduler.Stop()
	s.ticker.Stop()
}

// Manager owns all live page-view sessions plus the shared rotation
// cursor and sweeps out sessions whose page stopped reporting.
type Manager struct {
	triggers TriggerConfig
	tickCfg  TickerConfig
	items    []models.NotificationItem
	rotation *Rotation
	clock    sched.Clock
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
	janitor  sched.Handle
	closed   bool
}

func NewManager(triggers TriggerConfig, tickCfg TickerConfig, items []models.NotificationItem, rotation *Rotation, clock sched.Clock, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	m := &Manager{
		triggers: triggers,
		tickCfg:  tickCfg.withDefaults(),
		items:    items,
		rotation: rotation,
		clock:    clock,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
	m.janitor = clock.AfterFunc(ttl, m.sweep)
	return m
}

// TriggerConfig exposes the effective popup configuration.
func (m *Manager) TriggerConfig() TriggerConfig { return m.triggers }

// TickerConfig exposes the effective ticker configuration.
func (m *Manager) TickerConfig() TickerConfig { return m.tickCfg }

// NextNotification advances the shared cursor for stateless polling
// clients. ok is false when the list is empty.
func (m *Manager) NextNotification() (models.NotificationItem, bool) {
	idx := m.rotation.Next(len(m.items))
	if idx < 0 {
		return models.NotificationItem{}, false
	}
	return m.items[idx], true
}

// Open starts a session for one page view.
func (m *Manager) Open(viewportWidth int) *Session {
	s := &Session{ID: uuid.NewString()}
	s.scheduler = NewScheduler(m.triggers, m.clock, func(t Trigger) {
		s.enqueue(Prompt{Kind: PromptPopup, Trigger: t})
	})
	s.ticker = NewTicker(m.tickCfg, m.items, m.rotation, m.clock,
		func(item models.NotificationItem) {
			n := item
			s.enqueue(Prompt{Kind: PromptNotificationShow, Notification: &n, Position: m.tickCfg.Position})
		},
		func() {
			s.enqueue(Prompt{Kind: PromptNotificationHide})
		})
	s.ticker.Start(viewportWidth)

	m.mu.Lock()
	defer m.mu.Unlock()
	s.expiresAt = m.clock.Now().Add(m.ttl)
	m.sessions[s.ID] = s
	return s
}

// Report applies one browser event and drains whatever the session's
// timers queued since the last report.
func (m *Manager) Report(id string, ev Event) ([]Prompt, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok && m.clock.Now().After(s.expiresAt) {
		delete(m.sessions, id)
		s.teardown()
		ok = false
	}
	if !ok {
		m.mu.Unlock()
		return nil, domain.NotFoundError{Resource: "engagement session"}
	}
	s.expiresAt = m.clock.Now().Add(m.ttl)
	m.mu.Unlock()

	switch ev.Type {
	case EventScroll:
		s.scheduler.ObserveScroll(ev.Position, ev.ViewportHeight, ev.DocumentHeight)
	case EventPointer:
		s.scheduler.ObservePointer(ev.PointerY)
	case EventPoll, "":
		// heartbeat only
	default:
		return nil, domain.ValidationError{Field: "type", Msg: "unknown event type"}
	}

	return s.drain(), nil
}

// Close tears a session down and cancels everything it scheduled.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return domain.NotFoundError{Resource: "engagement session"}
	}
	s.teardown()
	return nil
}

func (m *Manager) sweep() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	now := m.clock.Now()
	var dead []*Session
	for id, s := range m.sessions {
		if now.After(s.expiresAt) {
			delete(m.sessions, id)
			dead = append(dead, s)
		}
	}
	m.janitor = m.clock.AfterFunc(m.ttl, m.sweep)
	m.mu.Unlock()

	for _, s := range dead {
		s.teardown()
	}
}

// Shutdown stops the janitor and every live session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	if m.janitor != nil {
		m.janitor.Stop()
	}
	live := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		delete(m.sessions, id)
		live = append(live, s)
	}
	m.mu.Unlock()

	for _, s := range live {
		s.teardown()
	}
}
