// Package config loads engine configuration with viper. Every tunable
// has a default matching the shipped balance, so the engine runs with
// no config file at all; a YAML file and FIGHT_-prefixed environment
// variables override individual keys.
package config

import (
	"fmt"
	"strings"

	"github.com/fightcore/fight-engine/internal/ai"
	"github.com/fightcore/fight-engine/internal/combat"
	"github.com/spf13/viper"
)

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig controls the optional Postgres score store. When
// disabled, scores live in memory for the process lifetime.
type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// BoutConfig controls round structure and the arena layout.
type BoutConfig struct {
	RoundsToWin   int     `mapstructure:"rounds_to_win"`
	SpawnDistance float64 `mapstructure:"spawn_distance"`
	TickRate      int     `mapstructure:"tick_rate"`
	PlayerName    string  `mapstructure:"player_name"`
	OpponentName  string  `mapstructure:"opponent_name"`
}

// Config is the root configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Bout     BoutConfig     `mapstructure:"bout"`
	Combat   combat.Tuning  `mapstructure:"combat"`
	AI       ai.Tuning      `mapstructure:"ai"`
}

// Load reads configuration from the given file path. An empty path
// loads pure defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.dsn", "")

	v.SetDefault("bout.rounds_to_win", 2)
	v.SetDefault("bout.spawn_distance", 4.0)
	v.SetDefault("bout.tick_rate", 60)
	v.SetDefault("bout.player_name", "Player")
	v.SetDefault("bout.opponent_name", "Opponent")

	ct := combat.DefaultTuning()
	v.SetDefault("combat.max_health", ct.MaxHealth)
	v.SetDefault("combat.punch_damage", ct.PunchDamage)
	v.SetDefault("combat.kick_damage", ct.KickDamage)
	v.SetDefault("combat.uppercut_damage", ct.UpperCutDamage)
	v.SetDefault("combat.block_damage_multiplier", ct.BlockDamageMultiplier)
	v.SetDefault("combat.punch_duration", ct.PunchDuration)
	v.SetDefault("combat.kick_duration", ct.KickDuration)
	v.SetDefault("combat.uppercut_duration", ct.UpperCutDuration)
	v.SetDefault("combat.block_duration", ct.BlockDuration)

	at := ai.DefaultTuning()
	v.SetDefault("ai.debounce", at.Debounce)
	v.SetDefault("ai.punch_cooldown", at.PunchCooldown)
	v.SetDefault("ai.block_range", at.BlockRange)
	v.SetDefault("ai.block_probability", at.BlockProbability)
	v.SetDefault("ai.reactive_block_probability", at.ReactiveBlockProbability)
	v.SetDefault("ai.reactive_block_hold", at.ReactiveBlockHold)
	v.SetDefault("ai.punch_range", at.PunchRange)
	v.SetDefault("ai.safe_distance", at.SafeDistance)
	v.SetDefault("ai.attack_range", at.AttackRange)
	v.SetDefault("ai.move_speed", at.MoveSpeed)
	v.SetDefault("ai.turn_rate", at.TurnRate)
}

func (c *Config) validate() error {
	if c.Bout.RoundsToWin < 1 {
		return fmt.Errorf("bout.rounds_to_win must be at least 1, got %d", c.Bout.RoundsToWin)
	}
	if c.Bout.TickRate < 1 {
		return fmt.Errorf("bout.tick_rate must be at least 1, got %d", c.Bout.TickRate)
	}
	if c.Combat.MaxHealth <= 0 {
		return fmt.Errorf("combat.max_health must be positive, got %v", c.Combat.MaxHealth)
	}
	for name, p := range map[string]float64{
		"ai.block_probability":           c.AI.BlockProbability,
		"ai.reactive_block_probability":  c.AI.ReactiveBlockProbability,
		"combat.block_damage_multiplier": c.Combat.BlockDamageMultiplier,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", name, p)
		}
	}
	if c.Database.Enabled && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when database.enabled is true")
	}
	return nil
}
