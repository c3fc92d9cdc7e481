package engagement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/domain"
	"backend/internal/sched"
)

func newTestManager(clock *sched.Fake) *Manager {
	return NewManager(allTriggers(), enabledTicker(), tickerItems(), NewRotation(), clock, 2*time.Minute)
}

func TestSessionDrainsEntryPopup(t *testing.T) {
	clock := sched.NewFake()
	m := newTestManager(clock)
	defer m.Shutdown()

	s := m.Open(1280)
	clock.Advance(4 * time.Second)

	prompts, err := m.Report(s.ID, Event{Type: EventPoll})
	require.NoError(t, err)
	require.NotEmpty(t, prompts)
	assert.Equal(t, PromptPopup, prompts[0].Kind)
	assert.Equal(t, TriggerEntry, prompts[0].Trigger)

	// drained prompts are gone
	prompts, err = m.Report(s.ID, Event{Type: EventPoll})
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestSessionScrollEventFiresIdleOnce(t *testing.T) {
	clock := sched.NewFake()
	m := newTestManager(clock)
	defer m.Shutdown()

	s := m.Open(1280)

	ev := Event{Type: EventScroll, Position: 2000, ViewportHeight: 800, DocumentHeight: 4000}
	prompts, err := m.Report(s.ID, ev)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, TriggerIdle, prompts[0].Trigger)

	prompts, err = m.Report(s.ID, ev)
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestSessionTickerPromptsCarryItems(t *testing.T) {
	clock := sched.NewFake()
	m := newTestManager(clock)
	defer m.Shutdown()

	s := m.Open(1280)
	clock.Advance(12 * time.Second)
	clock.Advance(5 * time.Second)

	prompts, err := m.Report(s.ID, Event{Type: EventPoll})
	require.NoError(t, err)

	var kinds []PromptKind
	for _, p := range prompts {
		kinds = append(kinds, p.Kind)
	}
	assert.Contains(t, kinds, PromptNotificationShow)
	assert.Contains(t, kinds, PromptNotificationHide)
	for _, p := range prompts {
		if p.Kind == PromptNotificationShow {
			require.NotNil(t, p.Notification)
			assert.Equal(t, "Asha", p.Notification.Name)
		}
	}
}

func TestClosedSessionIsGone(t *testing.T) {
	clock := sched.NewFake()
	m := newTestManager(clock)
	defer m.Shutdown()

	s := m.Open(1280)
	require.NoError(t, m.Close(s.ID))

	_, err := m.Report(s.ID, Event{Type: EventPoll})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	err = m.Close(s.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestExpiredSessionIsSweptAndRejected(t *testing.T) {
	clock := sched.NewFake()
	m := newTestManager(clock)
	defer m.Shutdown()

	s := m.Open(1280)
	clock.Advance(5 * time.Minute)

	_, err := m.Report(s.ID, Event{Type: EventPoll})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestReportExtendsSessionLifetime(t *testing.T) {
	clock := sched.NewFake()
	m := NewManager(TriggerConfig{}, TickerConfig{}, nil, NewRotation(), clock, 2*time.Minute)
	defer m.Shutdown()

	s := m.Open(1280)
	for i := 0; i < 4; i++ {
		clock.Advance(90 * time.Second)
		_, err := m.Report(s.ID, Event{Type: EventPoll})
		require.NoError(t, err, "heartbeats keep the session alive")
	}
}

func TestNextNotificationAdvancesSharedCursor(t *testing.T) {
	clock := sched.NewFake()
	m := newTestManager(clock)
	defer m.Shutdown()

	a, ok := m.NextNotification()
	require.True(t, ok)
	b, _ := m.NextNotification()
	c, _ := m.NextNotification()
	d, _ := m.NextNotification()

	assert.Equal(t, "Asha", a.Name)
	assert.Equal(t, "Rohit", b.Name)
	assert.Equal(t, "Meera", c.Name)
	assert.Equal(t, "Asha", d.Name)
}

func TestNextNotificationEmptyList(t *testing.T) {
	clock := sched.NewFake()
	m := NewManager(TriggerConfig{}, TickerConfig{}, nil, NewRotation(), clock, time.Minute)
	defer m.Shutdown()

	_, ok := m.NextNotification()
	assert.False(t, ok)
}
