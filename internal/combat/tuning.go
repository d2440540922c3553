package combat

import "time"

// Tuning holds the combat constants. Values default to the shipped
// balance; config may override any of them.
type Tuning struct {
	MaxHealth float64 `mapstructure:"max_health"`

	PunchDamage    float64 `mapstructure:"punch_damage"`
	KickDamage     float64 `mapstructure:"kick_damage"`
	UpperCutDamage float64 `mapstructure:"uppercut_damage"`

	// Fraction of damage retained while the target blocks. 0.25 keeps a
	// quarter of the hit, i.e. blocking absorbs 75%.
	BlockDamageMultiplier float64 `mapstructure:"block_damage_multiplier"`

	// Action durations equal the corresponding animation lengths and
	// must stay in sync with them.
	PunchDuration    time.Duration `mapstructure:"punch_duration"`
	KickDuration     time.Duration `mapstructure:"kick_duration"`
	UpperCutDuration time.Duration `mapstructure:"uppercut_duration"`
	BlockDuration    time.Duration `mapstructure:"block_duration"`
}

// DefaultTuning returns the shipped combat balance.
func DefaultTuning() Tuning {
	return Tuning{
		MaxHealth:             100,
		PunchDamage:           10,
		KickDamage:            5,
		UpperCutDamage:        15,
		BlockDamageMultiplier: 0.25,
		PunchDuration:         2090 * time.Millisecond,
		KickDuration:          1130 * time.Millisecond,
		UpperCutDuration:      3080 * time.Millisecond,
		BlockDuration:         1490 * time.Millisecond,
	}
}

// Damage returns the base damage for an attack kind, zero for
// non-attacks.
func (t Tuning) Damage(kind ActionKind) float64 {
	switch kind {
	case ActionPunch:
		return t.PunchDamage
	case ActionKick:
		return t.KickDamage
	case ActionUpperCut:
		return t.UpperCutDamage
	}
	return 0
}

// Duration returns how long an action holds its flags before the
// scheduled auto-clear fires.
func (t Tuning) Duration(kind ActionKind) time.Duration {
	switch kind {
	case ActionPunch:
		return t.PunchDuration
	case ActionKick:
		return t.KickDuration
	case ActionUpperCut:
		return t.UpperCutDuration
	case ActionBlock:
		return t.BlockDuration
	}
	return 0
}
