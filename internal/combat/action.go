package combat

import (
	"time"

	"github.com/fightcore/fight-engine/internal/sim"
)

// ActionState tracks one fighter's transient combat flags: whether an
// attack or block is in progress and which kind. Actions run to
// completion; the only way out before the scheduled auto-clear is a
// full external reset at round end.
type ActionState struct {
	ownerID string
	tuning  Tuning

	clock *sim.Clock
	sched *sim.Scheduler
	bus   *EventBus

	attacking bool
	blocking  bool
	kind      ActionKind
	startedAt time.Duration

	clearToken *sim.Token

	// onAutoClear runs after the scheduled auto-clear has dropped the
	// flags. The AI hooks this to force its machine back to idle.
	onAutoClear func()

	// Per-swing damage bookkeeping, owned by the hit resolver.
	damageApplied bool
	leftWindow    bool
	stuckCleared  bool
}

// NewActionState creates a cleared action state for the given fighter.
func NewActionState(ownerID string, tuning Tuning, clock *sim.Clock, sched *sim.Scheduler, bus *EventBus) *ActionState {
	return &ActionState{
		ownerID: ownerID,
		tuning:  tuning,
		clock:   clock,
		sched:   sched,
		bus:     bus,
	}
}

// SetAutoClearHook registers a callback invoked after every scheduled
// auto-clear. Pass nil to remove it.
func (s *ActionState) SetAutoClearHook(fn func()) {
	s.onAutoClear = fn
}

// IsAttacking reports whether any action is currently held.
func (s *ActionState) IsAttacking() bool {
	return s.attacking
}

// IsBlocking reports whether the fighter is currently blocking.
func (s *ActionState) IsBlocking() bool {
	return s.blocking
}

// Kind returns the action in progress, ActionNone when idle.
func (s *ActionState) Kind() ActionKind {
	return s.kind
}

// Begin starts an action and schedules its auto-clear after the
// action's animation length. A previous pending auto-clear is
// superseded: its token is cancelled so the stale timer cannot stomp
// the new action.
func (s *ActionState) Begin(kind ActionKind) {
	s.begin(kind, s.tuning.Duration(kind))
}

// BeginHeld starts an action with an explicit hold instead of the
// animation length. The reactive block path uses this to hold a forced
// block for its fixed duration.
func (s *ActionState) BeginHeld(kind ActionKind, hold time.Duration) {
	s.begin(kind, hold)
}

func (s *ActionState) begin(kind ActionKind, hold time.Duration) {
	if kind == ActionNone || hold <= 0 {
		return
	}
	if s.clearToken != nil {
		s.clearToken.Cancel()
	}

	s.attacking = true
	s.blocking = kind == ActionBlock
	s.kind = kind
	s.startedAt = s.clock.Now()
	s.damageApplied = false
	s.leftWindow = false
	s.stuckCleared = false

	s.clearToken = s.sched.After(hold, s.autoClear)

	if s.bus != nil {
		evt := NewEvent(EventActionStarted, s.ownerID, s.ownerID, s.clock.Now())
		evt.Kind = kind
		s.bus.Publish(evt)
	}
}

func (s *ActionState) autoClear() {
	kind := s.kind
	s.clearFlags()

	if s.bus != nil {
		evt := NewEvent(EventActionEnded, s.ownerID, s.ownerID, s.clock.Now())
		evt.Kind = kind
		s.bus.Publish(evt)
	}
	if s.onAutoClear != nil {
		s.onAutoClear()
	}
}

// Reset clears all flags and cancels any pending auto-clear. Used on
// round reset; the auto-clear hook is not invoked.
func (s *ActionState) Reset() {
	if s.clearToken != nil {
		s.clearToken.Cancel()
		s.clearToken = nil
	}
	s.clearFlags()
}

func (s *ActionState) clearFlags() {
	s.attacking = false
	s.blocking = false
	s.kind = ActionNone
}

// NormalizedTime returns how far the current action's animation has
// progressed: 0 at the start, 1 after one full loop, growing past 1 as
// the animation keeps looping. Returns 0 when no action is held.
func (s *ActionState) NormalizedTime(now time.Duration) float64 {
	if s.kind == ActionNone {
		return 0
	}
	dur := s.tuning.Duration(s.kind)
	if dur <= 0 {
		return 0
	}
	elapsed := now - s.startedAt
	if elapsed < 0 {
		return 0
	}
	return elapsed.Seconds() / dur.Seconds()
}

// Uninterruptible reports whether a live action holds the fighter in
// its non-interruptible window. Actions run to completion, so the AI
// machine stays frozen in its current state until the auto-clear
// fires; cooldown clocks still advance because they are timestamps.
func (s *ActionState) Uninterruptible() bool {
	return s.attacking
}
