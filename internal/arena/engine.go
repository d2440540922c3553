// Package arena wires the combat core together and drives it on the
// single simulation timeline: one Tick advances the clock, fires due
// timers, evaluates the AI machine and resolves contacts, in that
// fixed order.
package arena

import (
	"math"
	"math/rand"
	"time"

	"github.com/fightcore/fight-engine/internal/ai"
	"github.com/fightcore/fight-engine/internal/combat"
	"github.com/fightcore/fight-engine/internal/sim"
	"go.uber.org/zap"
)

// Options configures an engine.
type Options struct {
	Combat combat.Tuning
	AI     ai.Tuning

	PlayerName   string
	OpponentName string

	// Distance between the two spawn points.
	SpawnDistance float64
}

// DefaultOptions returns an engine configuration with the shipped
// balance and spawn layout.
func DefaultOptions() Options {
	return Options{
		Combat:        combat.DefaultTuning(),
		AI:            ai.DefaultTuning(),
		PlayerName:    "Player",
		OpponentName:  "Opponent",
		SpawnDistance: 4.0,
	}
}

// Engine owns the two fighters, the AI machine and the hit resolver.
// It is single-threaded: all combat state is mutated only from Tick and
// from the inbound command methods, which callers must invoke from the
// same goroutine that ticks.
type Engine struct {
	logger *zap.Logger

	clock    *sim.Clock
	sched    *sim.Scheduler
	bus      *combat.EventBus
	resolver *combat.Resolver

	player   *combat.Fighter
	opponent *combat.Fighter
	fsm      *ai.FSM

	playerSpawn   combat.Transform
	opponentSpawn combat.Transform

	// Stand-in for the physics layer: fighters closer than this are in
	// contact while an attack is live.
	contactRange float64
}

// NewEngine builds a ready-to-tick engine with both fighters at their
// spawn points facing each other.
func NewEngine(opts Options, rng *rand.Rand, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	clock := sim.NewClock()
	sched := sim.NewScheduler(clock)
	bus := combat.NewEventBus()

	player := combat.NewFighter(opts.PlayerName, combat.RolePlayer, opts.Combat, clock, sched, bus)
	opponent := combat.NewFighter(opts.OpponentName, combat.RoleOpponent, opts.Combat, clock, sched, bus)

	e := &Engine{
		logger:   logger,
		clock:    clock,
		sched:    sched,
		bus:      bus,
		resolver: combat.NewResolver(opts.Combat, clock, bus, logger),
		player:   player,
		opponent: opponent,
		playerSpawn: combat.Transform{
			Pos: combat.Vec2{X: 0, Y: 0},
		},
		opponentSpawn: combat.Transform{
			Pos:    combat.Vec2{X: opts.SpawnDistance, Y: 0},
			Facing: math.Pi,
		},
		contactRange: opts.AI.AttackRange,
	}
	e.fsm = ai.NewFSM(opponent, player, opts.AI, clock, sched, rng, bus, logger)

	*player.Transform() = e.playerSpawn
	*opponent.Transform() = e.opponentSpawn

	return e
}

// Player returns the player-side fighter.
func (e *Engine) Player() *combat.Fighter {
	return e.player
}

// Opponent returns the AI-side fighter.
func (e *Engine) Opponent() *combat.Fighter {
	return e.opponent
}

// FSM returns the AI tactical machine.
func (e *Engine) FSM() *ai.FSM {
	return e.fsm
}

// Bus returns the combat event bus for boundary subscribers.
func (e *Engine) Bus() *combat.EventBus {
	return e.bus
}

// Clock returns the simulation clock.
func (e *Engine) Clock() *sim.Clock {
	return e.clock
}

// Tick advances the simulation by dt. Due timers fire before the AI
// evaluates, so an auto-reset and a fresh decision landing on the same
// tick resolve in a fixed, tested order.
func (e *Engine) Tick(dt time.Duration) {
	e.clock.Advance(dt)
	e.sched.RunDue()
	e.fsm.Tick(dt)
	e.resolveContacts()
}

// PlayerCommand is the inbound command boundary (voice or menu mapped
// upstream). It begins the named action on the player and, for attacks,
// notifies the AI's reactive path. Returns whether the command was
// recognized and accepted; an action already in progress runs to
// completion and rejects new commands.
func (e *Engine) PlayerCommand(kindName string) bool {
	kind, ok := combat.ParseActionKind(kindName)
	if !ok {
		return false
	}
	if e.player.Actions().IsAttacking() {
		return false
	}

	e.player.Actions().Begin(kind)
	if kind.IsAttack() {
		e.fsm.OnOpponentAttack(kindName)
	}
	return true
}

// Contact reports an externally detected contact between the two
// fighters and resolves it in both directions.
func (e *Engine) Contact() {
	e.resolver.Resolve(e.player, e.opponent)
	e.resolver.Resolve(e.opponent, e.player)
}

// resolveContacts is the headless stand-in for collider callbacks:
// while the fighters are inside contact range, each tick counts as a
// contact event for any live attack.
func (e *Engine) resolveContacts() {
	if e.player.DistanceTo(e.opponent) > e.contactRange {
		return
	}
	e.Contact()
}

// ResetRound drops all pending timers and returns both fighters and
// the AI machine to their round-start state.
func (e *Engine) ResetRound() {
	e.sched.Reset()
	e.player.ResetRound(e.playerSpawn)
	e.opponent.ResetRound(e.opponentSpawn)
	e.fsm.Reset()
}
