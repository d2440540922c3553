package ai

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/fightcore/fight-engine/internal/combat"
	"github.com/fightcore/fight-engine/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const tickStep = 16 * time.Millisecond

type fsmFixture struct {
	clock  *sim.Clock
	sched  *sim.Scheduler
	bus    *combat.EventBus
	self   *combat.Fighter // the AI fighter
	player *combat.Fighter
	fsm    *FSM
}

func newFSMFixture(t *testing.T, mod func(*Tuning)) *fsmFixture {
	tuning := DefaultTuning()
	if mod != nil {
		mod(&tuning)
	}

	clock := sim.NewClock()
	sched := sim.NewScheduler(clock)
	bus := combat.NewEventBus()
	ct := combat.DefaultTuning()

	player := combat.NewFighter("Player", combat.RolePlayer, ct, clock, sched, bus)
	self := combat.NewFighter("AI", combat.RoleOpponent, ct, clock, sched, bus)

	rng := rand.New(rand.NewSource(1))
	fsm := NewFSM(self, player, tuning, clock, sched, rng, bus, zaptest.NewLogger(t))

	f := &fsmFixture{
		clock:  clock,
		sched:  sched,
		bus:    bus,
		self:   self,
		player: player,
		fsm:    fsm,
	}
	f.setDistance(4)
	return f
}

// setDistance places the player at the origin and the AI d away, facing
// the player.
func (f *fsmFixture) setDistance(d float64) {
	f.player.Transform().Pos = combat.Vec2{X: 0, Y: 0}
	f.player.Transform().Facing = 0
	f.self.Transform().Pos = combat.Vec2{X: d, Y: 0}
	f.self.Transform().Facing = math.Pi
}

// tick runs one engine-ordered simulation step: advance, fire due
// timers, then evaluate.
func (f *fsmFixture) tick() {
	f.clock.Advance(tickStep)
	f.sched.RunDue()
	f.fsm.Tick(tickStep)
}

func (f *fsmFixture) tickFor(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tickStep {
		f.tick()
	}
}

func TestBlockHasTopPriority(t *testing.T) {
	f := newFSMFixture(t, func(tn *Tuning) {
		tn.BlockProbability = 1
		tn.PunchCooldown = 0 // punch would also be a candidate
	})

	// Close enough to punch, but the opponent's live attack wins.
	f.setDistance(1.5)
	f.player.Actions().Begin(combat.ActionPunch)

	f.tick()
	assert.Equal(t, StateBlock, f.fsm.State())
	assert.True(t, f.self.Actions().IsBlocking())
}

func TestBlockScenarioAtMidRange(t *testing.T) {
	f := newFSMFixture(t, func(tn *Tuning) {
		tn.BlockProbability = 1
	})

	f.setDistance(3.0)
	f.player.Actions().Begin(combat.ActionKick)

	f.tick()
	assert.Equal(t, StateBlock, f.fsm.State())
}

func TestBlockFailsBernoulliTrial(t *testing.T) {
	f := newFSMFixture(t, func(tn *Tuning) {
		tn.BlockProbability = 0
	})

	f.setDistance(3.0)
	f.player.Actions().Begin(combat.ActionPunch)

	f.tick()
	assert.Equal(t, StateIdle, f.fsm.State())
}

func TestPunchDecisionAndCooldown(t *testing.T) {
	f := newFSMFixture(t, nil)

	f.setDistance(1.5)
	f.tick()
	require.Equal(t, StatePunch, f.fsm.State())
	require.True(t, f.self.Actions().IsAttacking())
	require.Equal(t, combat.ActionPunch, f.self.Actions().Kind())

	// Run past the punch animation; the auto-clear timer forces Idle.
	f.tickFor(combat.DefaultTuning().PunchDuration + tickStep)
	require.Equal(t, StateIdle, f.fsm.State())

	// Still in range, but the punch cooldown gates a repeat.
	f.setDistance(1.5)
	f.tickFor(2 * time.Second)
	assert.NotEqual(t, StatePunch, f.fsm.State())

	// Once the cooldown expires the punch comes back.
	f.clock.Advance(10 * time.Second)
	f.setDistance(1.5)
	f.tick()
	assert.Equal(t, StatePunch, f.fsm.State())
}

func TestMoveForwardWhenFar(t *testing.T) {
	f := newFSMFixture(t, func(tn *Tuning) {
		tn.SafeDistance = 10
	})

	f.setDistance(12) // 12 > 10+1
	f.tick()
	require.Equal(t, StateMoveForward, f.fsm.State())
	require.True(t, f.fsm.Moving())

	start := f.self.DistanceTo(f.player)
	f.tickFor(time.Second)
	assert.Less(t, f.self.DistanceTo(f.player), start, "expected forward movement to close distance")
}

func TestMoveBackwardWhenTooClose(t *testing.T) {
	f := newFSMFixture(t, func(tn *Tuning) {
		tn.PunchRange = 0 // the punch rule outranks movement at this range
	})

	f.setDistance(1.0) // 1.0 < attackRange(2.5)-1
	f.tick()
	require.Equal(t, StateMoveBackward, f.fsm.State())

	start := f.self.DistanceTo(f.player)
	f.tickFor(time.Second)
	assert.Greater(t, f.self.DistanceTo(f.player), start, "expected backward movement to open distance")
}

func TestTransitionDebounce(t *testing.T) {
	f := newFSMFixture(t, func(tn *Tuning) {
		tn.SafeDistance = 10
		tn.PunchRange = 0 // keep movement the only candidate at close range
	})

	f.setDistance(12)
	f.tick()
	require.Equal(t, StateMoveForward, f.fsm.State())

	// A different candidate inside the debounce window must not flip
	// the state.
	deadline := f.clock.Now() + 480*time.Millisecond
	for f.clock.Now() < deadline {
		f.setDistance(1.0)
		f.tick()
		require.Equal(t, StateMoveForward, f.fsm.State(),
			"state flipped %v after a transition", f.clock.Now())
	}

	// Past the debounce the new candidate wins.
	f.tickFor(100 * time.Millisecond)
	f.setDistance(1.0)
	f.tick()
	assert.Equal(t, StateMoveBackward, f.fsm.State())
}

func TestFrozenDuringAttackAnimation(t *testing.T) {
	f := newFSMFixture(t, nil)

	f.setDistance(1.5)
	f.tick()
	require.Equal(t, StatePunch, f.fsm.State())

	// Even a strong movement candidate cannot interrupt a live attack.
	f.setDistance(20)
	f.tickFor(time.Second)
	assert.Equal(t, StatePunch, f.fsm.State())
}

func TestReactiveBlockBypassesDebounce(t *testing.T) {
	f := newFSMFixture(t, func(tn *Tuning) {
		tn.SafeDistance = 10
		tn.ReactiveBlockProbability = 1
	})

	f.setDistance(12)
	f.tick()
	require.Equal(t, StateMoveForward, f.fsm.State())

	// Immediately after a transition, still inside the debounce window.
	require.True(t, f.fsm.OnOpponentAttack("Punch"))
	require.Equal(t, StateBlock, f.fsm.State())
	require.True(t, f.self.Actions().IsBlocking())

	// Held for the fixed reactive duration, then forced back to Idle.
	f.setDistance(4)
	f.tickFor(1500*time.Millisecond + 2*tickStep)
	assert.Equal(t, StateIdle, f.fsm.State())
	assert.False(t, f.self.Actions().IsBlocking())
}

func TestReactiveBlockRespectsGuards(t *testing.T) {
	f := newFSMFixture(t, func(tn *Tuning) {
		tn.ReactiveBlockProbability = 1
		tn.BlockProbability = 1
	})

	// Unrecognized kinds cause no state change.
	assert.False(t, f.fsm.OnOpponentAttack("Fireball"))
	assert.Equal(t, StateIdle, f.fsm.State())

	// Block is a recognized action but not an attack.
	assert.False(t, f.fsm.OnOpponentAttack("Block"))
	assert.Equal(t, StateIdle, f.fsm.State())

	// While already blocking, the reactive path must not re-trigger.
	f.setDistance(3.0)
	f.player.Actions().Begin(combat.ActionPunch)
	f.tick()
	require.Equal(t, StateBlock, f.fsm.State())
	assert.True(t, f.fsm.OnOpponentAttack("Punch"))
	assert.Equal(t, StateBlock, f.fsm.State())
}

func TestReactiveBlockFailedTrial(t *testing.T) {
	f := newFSMFixture(t, func(tn *Tuning) {
		tn.ReactiveBlockProbability = 0
	})

	assert.True(t, f.fsm.OnOpponentAttack("UpperCut"))
	assert.Equal(t, StateIdle, f.fsm.State())
	assert.False(t, f.self.Actions().IsBlocking())
}

func TestSnapshotCollectsHealth(t *testing.T) {
	f := newFSMFixture(t, nil)

	f.player.Health().ApplyDamage(40)
	f.self.Health().ApplyDamage(10)
	f.tick()

	snap := f.fsm.LastSnapshot()
	assert.Equal(t, 90.0, snap.SelfHealth)
	assert.Equal(t, 100.0, snap.SelfMaxHealth)
	assert.Equal(t, 60.0, snap.OpponentHealth)
	assert.Equal(t, 100.0, snap.OpponentMaxHealth)
}

func TestResetExpiresCooldowns(t *testing.T) {
	f := newFSMFixture(t, nil)

	f.setDistance(1.5)
	f.tick()
	require.Equal(t, StatePunch, f.fsm.State())

	f.self.Actions().Reset()
	f.fsm.Reset()
	require.Equal(t, StateIdle, f.fsm.State())

	// Both the debounce and the punch cooldown are expired again.
	f.setDistance(1.5)
	f.tick()
	assert.Equal(t, StatePunch, f.fsm.State())
}

func TestAutoClearWinsOverSameTickDecision(t *testing.T) {
	f := newFSMFixture(t, nil)

	f.setDistance(1.5)
	f.tick()
	require.Equal(t, StatePunch, f.fsm.State())

	// Advance just past the punch duration so the auto-clear and the
	// next evaluation land on the same tick: timers apply first, the
	// forced Idle wins, and the fresh decision is debounce-gated.
	remaining := combat.DefaultTuning().PunchDuration + tickStep
	f.tickFor(remaining)
	assert.Equal(t, StateIdle, f.fsm.State())
	assert.False(t, f.self.Actions().IsAttacking())
}
