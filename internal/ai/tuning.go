package ai

import "time"

// Tuning holds the tactical constants. Values default to the shipped
// balance; config may override any of them.
type Tuning struct {
	// Minimum gap between any two state transitions, regardless of
	// which states are involved.
	Debounce time.Duration `mapstructure:"debounce"`

	// Minimum gap between punches; independent of the debounce.
	PunchCooldown time.Duration `mapstructure:"punch_cooldown"`

	BlockRange               float64       `mapstructure:"block_range"`
	BlockProbability         float64       `mapstructure:"block_probability"`
	ReactiveBlockProbability float64       `mapstructure:"reactive_block_probability"`
	ReactiveBlockHold        time.Duration `mapstructure:"reactive_block_hold"`

	PunchRange   float64 `mapstructure:"punch_range"`
	SafeDistance float64 `mapstructure:"safe_distance"`
	AttackRange  float64 `mapstructure:"attack_range"`

	MoveSpeed float64 `mapstructure:"move_speed"`
	// Facing turns toward the opponent at TurnRate * MoveSpeed radians
	// per second while moving.
	TurnRate float64 `mapstructure:"turn_rate"`
}

// DefaultTuning returns the shipped tactical balance.
func DefaultTuning() Tuning {
	return Tuning{
		Debounce:                 500 * time.Millisecond,
		PunchCooldown:            10 * time.Second,
		BlockRange:               3.4,
		BlockProbability:         0.80,
		ReactiveBlockProbability: 0.50,
		ReactiveBlockHold:        1500 * time.Millisecond,
		PunchRange:               2.0,
		SafeDistance:             5.0,
		AttackRange:              2.5,
		MoveSpeed:                2.0,
		TurnRate:                 1.5,
	}
}
