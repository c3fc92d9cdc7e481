package challenge

import (
	"sync"
	"time"

	"backend/internal/sched"

	"github.com/google/uuid"
)

// Issued is the client-facing view of a stored challenge: operands only, the
// expected answer stays server-side.
type Issued struct {
	ID       string  `json:"id"`
	Variant  Variant `json:"variant"`
	OperandA int     `json:"operand_a"`
	OperandB int     `json:"operand_b"`
	Prompt   string  `json:"prompt"`
}

type entry struct {
	state   State
	expires time.Time
}

// Store keeps issued challenges in memory for one-shot redemption. Every
// Redeem consumes the entry whatever the outcome, so a stale challenge can
// never back a second submission attempt.
type Store struct {
	mu      sync.Mutex
	clock   sched.Clock
	ttl     time.Duration
	entries map[string]entry
}

// NewStore builds a store whose challenges expire after ttl.
func NewStore(clock sched.Clock, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Issue generates and remembers a fresh challenge.
func (st *Store) Issue(v Variant) Issued {
	state := Generate(v)
	id := uuid.NewString()

	st.mu.Lock()
	st.purgeLocked(st.clock.Now())
	st.entries[id] = entry{state: state, expires: st.clock.Now().Add(st.ttl)}
	st.mu.Unlock()

	return Issued{
		ID:       id,
		Variant:  state.Variant,
		OperandA: state.OperandA,
		OperandB: state.OperandB,
		Prompt:   state.Prompt(),
	}
}

// Redeem verifies the answer for a previously issued challenge and removes
// it. Unknown, expired, or already-redeemed ids verify false.
func (st *Store) Redeem(id, answer string) bool {
	st.mu.Lock()
	e, ok := st.entries[id]
	if ok {
		delete(st.entries, id)
	}
	st.mu.Unlock()

	if !ok || st.clock.Now().After(e.expires) {
		return false
	}
	return Verify(e.state, answer)
}

func (st *Store) purgeLocked(now time.Time) {
	for id, e := range st.entries {
		if now.After(e.expires) {
			delete(st.entries, id)
		}
	}
}
