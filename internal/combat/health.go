package combat

import (
	"time"

	"github.com/fightcore/fight-engine/internal/sim"
)

// Health is the ledger for one fighter's health value. Every mutation
// clamps to [0, max]; callers are never rejected. The death signal is
// one-shot: once health reaches zero it fires a single CharacterDied
// event and stays silent until ResetHealth re-arms it.
type Health struct {
	ownerID string
	max     float64
	current float64
	died    bool

	clock *sim.Clock
	bus   *EventBus
}

// NewHealth creates a full ledger for the given fighter.
func NewHealth(ownerID string, max float64, clock *sim.Clock, bus *EventBus) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{
		ownerID: ownerID,
		max:     max,
		current: max,
		clock:   clock,
		bus:     bus,
	}
}

// Current returns the current health value.
func (h *Health) Current() float64 {
	return h.current
}

// Max returns the maximum health value.
func (h *Health) Max() float64 {
	return h.max
}

// Percent returns current health as a fraction of max, in [0, 1].
func (h *Health) Percent() float64 {
	return h.current / h.max
}

// IsAlive reports whether health is above zero.
func (h *Health) IsAlive() bool {
	return h.current > 0
}

// ApplyDamage subtracts amount and clamps to [0, max]. A negative
// amount is a caller bug; it is treated as zero rather than rejected.
// Reaching zero fires CharacterDied exactly once until ResetHealth.
func (h *Health) ApplyDamage(amount float64) {
	if amount < 0 {
		amount = 0
	}
	h.current -= amount
	if h.current < 0 {
		h.current = 0
	}
	h.publishChanged()

	if h.current == 0 && !h.died {
		h.died = true
		h.publish(EventCharacterDied)
	}
}

// Heal adds amount and clamps to max.
func (h *Health) Heal(amount float64) {
	if amount < 0 {
		amount = 0
	}
	h.current += amount
	if h.current > h.max {
		h.current = h.max
	}
	h.publishChanged()
}

// ResetHealth restores full health and re-arms the death signal.
func (h *Health) ResetHealth() {
	h.current = h.max
	h.died = false
	h.publishChanged()
}

func (h *Health) publishChanged() {
	if h.bus == nil {
		return
	}
	evt := NewEvent(EventHealthChanged, h.ownerID, h.ownerID, h.now())
	evt.Amount = h.current
	evt.Max = h.max
	h.bus.Publish(evt)
}

func (h *Health) publish(eventType EventType) {
	if h.bus == nil {
		return
	}
	h.bus.Publish(NewEvent(eventType, h.ownerID, h.ownerID, h.now()))
}

func (h *Health) now() time.Duration {
	if h.clock != nil {
		return h.clock.Now()
	}
	return 0
}
