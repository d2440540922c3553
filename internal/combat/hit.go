package combat

import (
	"github.com/fightcore/fight-engine/internal/sim"
	"go.uber.org/zap"
)

// Resolver decides whether a contact between two fighters deals damage
// and how much. The physics layer reports raw contacts; the resolver
// applies the damage-window policy, block reduction and the
// one-application-per-swing guarantee, then writes into the defender's
// health ledger.
type Resolver struct {
	tuning Tuning
	clock  *sim.Clock
	bus    *EventBus
	logger *zap.Logger
}

// NewResolver creates a hit resolver.
func NewResolver(tuning Tuning, clock *sim.Clock, bus *EventBus, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		tuning: tuning,
		clock:  clock,
		bus:    bus,
		logger: logger,
	}
}

// Resolve handles one contact event between attacker and defender.
// Returns the damage applied and whether any was. Contacts between the
// same fighter or the same side never count.
//
// Damage may only be applied during the first half of each swing loop
// (normalized time mod 1 < 0.5), at most once per swing. The applied
// flag rearms when the swing re-enters the first half after leaving it,
// and unconditionally once the attack passes two full loops, which
// guards against a flag stuck by a missed window exit.
func (r *Resolver) Resolve(attacker, defender *Fighter) (float64, bool) {
	if attacker == nil || defender == nil {
		return 0, false
	}
	if attacker.ID() == defender.ID() || attacker.Role() == defender.Role() {
		return 0, false
	}

	st := attacker.Actions()
	kind := st.Kind()
	if !st.IsAttacking() || !kind.IsAttack() {
		return 0, false
	}

	t := st.NormalizedTime(r.clock.Now())
	frac := t - float64(int(t))
	if frac >= 0.5 {
		// Second half of the swing; remember we left the window so the
		// next loop rearms the flag.
		st.leftWindow = true
		return 0, false
	}

	if st.leftWindow || (t >= 2.0 && !st.stuckCleared) {
		st.damageApplied = false
		st.leftWindow = false
		if t >= 2.0 {
			st.stuckCleared = true
		}
	}
	if st.damageApplied {
		return 0, false
	}

	damage := r.tuning.Damage(kind)
	blocked := defender.Actions().IsBlocking()
	if blocked {
		damage *= r.tuning.BlockDamageMultiplier
	}

	st.damageApplied = true
	defender.Health().ApplyDamage(damage)

	r.logger.Debug("hit landed",
		zap.String("attacker", attacker.Name()),
		zap.String("defender", defender.Name()),
		zap.String("kind", kind.String()),
		zap.Float64("damage", damage),
		zap.Bool("blocked", blocked),
	)

	if r.bus != nil {
		now := r.clock.Now()

		evt := NewEvent(EventHitLanded, defender.ID(), attacker.ID(), now)
		evt.Kind = kind
		evt.Amount = damage
		r.bus.Publish(evt)

		// Signal the animation layer to play the defender's hit
		// reaction. Fire-and-forget.
		reaction := NewEvent(EventHitReaction, defender.ID(), attacker.ID(), now)
		reaction.Kind = kind
		r.bus.Publish(reaction)
	}

	return damage, true
}
