package combat

import (
	"github.com/fightcore/fight-engine/internal/sim"
	"github.com/google/uuid"
)

// Fighter bundles one combatant's combat-facing state: health ledger,
// action flags and the transform mirror. Fighters are created at bout
// start and reset between rounds, never destroyed mid-bout.
type Fighter struct {
	id   string
	name string
	role Role

	transform Transform
	health    *Health
	actions   *ActionState
}

// NewFighter creates a fighter at full health with cleared flags.
func NewFighter(name string, role Role, tuning Tuning, clock *sim.Clock, sched *sim.Scheduler, bus *EventBus) *Fighter {
	id := uuid.NewString()
	return &Fighter{
		id:      id,
		name:    name,
		role:    role,
		health:  NewHealth(id, tuning.MaxHealth, clock, bus),
		actions: NewActionState(id, tuning, clock, sched, bus),
	}
}

// ID returns the fighter's unique ID.
func (f *Fighter) ID() string {
	return f.id
}

// Name returns the fighter's display name.
func (f *Fighter) Name() string {
	return f.name
}

// Role returns which side of the bout the fighter is on.
func (f *Fighter) Role() Role {
	return f.role
}

// Health returns the fighter's health ledger.
func (f *Fighter) Health() *Health {
	return f.health
}

// Actions returns the fighter's action state.
func (f *Fighter) Actions() *ActionState {
	return f.actions
}

// Transform returns the fighter's position and facing for mutation.
func (f *Fighter) Transform() *Transform {
	return &f.transform
}

// DistanceTo returns the arena distance to another fighter.
func (f *Fighter) DistanceTo(o *Fighter) float64 {
	return f.transform.Distance(o.transform)
}

// ResetRound restores full health, clears action flags and moves the
// fighter back to its spawn transform.
func (f *Fighter) ResetRound(spawn Transform) {
	f.actions.Reset()
	f.health.ResetHealth()
	f.transform = spawn
}
