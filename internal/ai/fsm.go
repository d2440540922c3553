package ai

import (
	"math"
	"math/rand"
	"time"

	"github.com/fightcore/fight-engine/internal/combat"
	"github.com/fightcore/fight-engine/internal/sim"
	"go.uber.org/zap"
)

// never is far enough in the past that any cooldown comparison against
// it passes on a fresh machine. Half the range keeps now-never from
// overflowing.
const never = time.Duration(math.MinInt64 / 2)

// Snapshot is the world view the machine reads at the top of a tick.
// Health values are collected and exposed but no tactical rule consumes
// them yet.
type Snapshot struct {
	Distance          float64
	OpponentAttacking bool
	OpponentBlocking  bool
	SelfBlocking      bool
	SelfHealth        float64
	SelfMaxHealth     float64
	OpponentHealth    float64
	OpponentMaxHealth float64
}

// FSM is the AI fighter's tactical state machine. Each tick it takes a
// world snapshot, picks a target state through a strict-priority
// decision tree, and moves through a debounced transition gate. Timed
// auto-resets re-enter through the same gate so exit/enter hooks are
// never bypassed.
//
// Everything runs on the single simulation timeline: due timers fire
// before Tick, and the reactive block path is only invoked between
// ticks, so the state variable has exactly one writer at a time.
type FSM struct {
	logger *zap.Logger
	tuning Tuning

	clock *sim.Clock
	sched *sim.Scheduler
	rng   *rand.Rand
	bus   *combat.EventBus

	self     *combat.Fighter
	opponent *combat.Fighter

	state          State
	lastTransition time.Duration
	lastPunch      time.Duration
	moving         bool

	// Pending hold for the next Block enter; set by the reactive path
	// to override the default block duration.
	reactiveHold time.Duration

	lastSnapshot Snapshot
}

// NewFSM creates the machine in Idle with all cooldowns expired, and
// wires the fighter's action auto-clear back into the transition gate.
func NewFSM(self, opponent *combat.Fighter, tuning Tuning, clock *sim.Clock, sched *sim.Scheduler, rng *rand.Rand, bus *combat.EventBus, logger *zap.Logger) *FSM {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &FSM{
		logger:         logger,
		tuning:         tuning,
		clock:          clock,
		sched:          sched,
		rng:            rng,
		bus:            bus,
		self:           self,
		opponent:       opponent,
		state:          StateIdle,
		lastTransition: never,
		lastPunch:      never,
	}
	// The scheduled auto-clear is the second path back to Idle. It goes
	// through the same transition gate, forced so the fired timer
	// always wins over the per-tick evaluation.
	self.Actions().SetAutoClearHook(func() {
		f.transition(StateIdle, true)
	})
	return f
}

// State returns the current tactical state.
func (f *FSM) State() State {
	return f.state
}

// Moving reports whether a movement state currently translates the
// fighter.
func (f *FSM) Moving() bool {
	return f.moving
}

// LastSnapshot returns the world view from the most recent tick.
func (f *FSM) LastSnapshot() Snapshot {
	return f.lastSnapshot
}

// Reset returns the machine to Idle with expired cooldowns. Called by
// round management between rounds; the fighter's action state is reset
// separately.
func (f *FSM) Reset() {
	f.state = StateIdle
	f.moving = false
	f.reactiveHold = 0
	f.lastTransition = never
	f.lastPunch = never
}

// Tick runs one simulation step: observe, decide, transition, move.
// While an action is in its non-interruptible window the machine is
// frozen in its current state; cooldown clocks still advance because
// they are plain timestamps against the shared clock.
func (f *FSM) Tick(dt time.Duration) {
	snap := f.Observe()
	f.lastSnapshot = snap

	if !f.self.Actions().Uninterruptible() {
		target := f.decide(snap)
		f.transition(target, false)
	}

	f.move(dt)
}

// Observe builds the world snapshot for this tick. Missing
// collaborators degrade to neutral values rather than failing the tick.
func (f *FSM) Observe() Snapshot {
	snap := Snapshot{
		SelfBlocking: f.self.Actions().IsBlocking(),
	}
	if h := f.self.Health(); h != nil {
		snap.SelfHealth = h.Current()
		snap.SelfMaxHealth = h.Max()
	}
	if f.opponent != nil {
		snap.Distance = f.self.DistanceTo(f.opponent)
		snap.OpponentAttacking = f.opponent.Actions().IsAttacking()
		snap.OpponentBlocking = f.opponent.Actions().IsBlocking()
		if h := f.opponent.Health(); h != nil {
			snap.OpponentHealth = h.Current()
			snap.OpponentMaxHealth = h.Max()
		}
	}
	return snap
}

// decide evaluates the tactical rules in strict priority order; the
// first match wins.
func (f *FSM) decide(snap Snapshot) State {
	now := f.clock.Now()

	if snap.OpponentAttacking && snap.Distance < f.tuning.BlockRange &&
		!snap.SelfBlocking && f.chance(f.tuning.BlockProbability) {
		return StateBlock
	}
	if snap.Distance < f.tuning.PunchRange && now-f.lastPunch > f.tuning.PunchCooldown {
		return StatePunch
	}
	if snap.Distance > f.tuning.SafeDistance+1 {
		return StateMoveForward
	}
	if snap.Distance < f.tuning.AttackRange-1 {
		return StateMoveBackward
	}
	return StateIdle
}

// OnOpponentAttack is the inbound notification that the opponent has
// begun an attack. Returns whether the kind was recognized; unknown
// kinds cause no state change. If the AI is not already blocking, a
// coin flip may force an immediate block that bypasses the debounce and
// is held for a fixed duration before the timer path returns it to
// Idle.
func (f *FSM) OnOpponentAttack(kindName string) bool {
	kind, ok := combat.ParseActionKind(kindName)
	if !ok || !kind.IsAttack() {
		return false
	}

	if !f.self.Actions().IsBlocking() && f.chance(f.tuning.ReactiveBlockProbability) {
		f.reactiveHold = f.tuning.ReactiveBlockHold
		if !f.transition(StateBlock, true) {
			f.reactiveHold = 0
		}
	}
	return true
}

// transition moves the machine to target through the gate. The gate
// rejects same-state transitions always, and transitions inside the
// debounce window unless forced. Forced transitions come from the
// timer path and the reactive block; they skip only the debounce
// check, never the exit/enter hooks.
func (f *FSM) transition(target State, force bool) bool {
	if target == f.state {
		return false
	}
	now := f.clock.Now()
	if !force && now-f.lastTransition <= f.tuning.Debounce {
		return false
	}

	prev := f.state
	f.exitState(prev)
	f.state = target
	f.lastTransition = now
	f.enterState(target)

	f.logger.Debug("state transition",
		zap.String("fighter", f.self.Name()),
		zap.String("from", prev.String()),
		zap.String("to", target.String()),
		zap.Bool("forced", force),
	)

	if f.bus != nil {
		evt := combat.NewEvent(combat.EventStateChanged, f.self.ID(), f.self.ID(), now)
		evt.Data = target.String()
		f.bus.Publish(evt)
	}
	return true
}

func (f *FSM) exitState(s State) {
	if s.IsMovement() {
		f.moving = false
	}
}

func (f *FSM) enterState(s State) {
	switch s {
	case StatePunch:
		f.lastPunch = f.clock.Now()
		f.self.Actions().Begin(combat.ActionPunch)
	case StateBlock:
		hold := f.reactiveHold
		f.reactiveHold = 0
		if hold > 0 {
			f.self.Actions().BeginHeld(combat.ActionBlock, hold)
		} else {
			f.self.Actions().Begin(combat.ActionBlock)
		}
	case StateMoveForward, StateMoveBackward:
		f.moving = true
	}
}

// move translates the fighter along its facing while in a movement
// state, turning the facing toward the opponent at a rate proportional
// to the move speed.
func (f *FSM) move(dt time.Duration) {
	if !f.state.IsMovement() || f.opponent == nil {
		return
	}

	self := f.self.Transform()
	toOpponent := f.opponent.Transform().Pos.Sub(self.Pos)
	if toOpponent.Len() > 0 {
		maxTurn := f.tuning.TurnRate * f.tuning.MoveSpeed * dt.Seconds()
		self.RotateToward(toOpponent.Angle(), maxTurn)
	}

	step := f.tuning.MoveSpeed * dt.Seconds()
	if f.state == StateMoveBackward {
		step = -step
	}
	self.Pos = self.Pos.Add(combat.Heading(self.Facing).Scale(step))
}

// chance runs one Bernoulli trial.
func (f *FSM) chance(p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return f.rng.Float64() < p
}
