package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 2, cfg.Bout.RoundsToWin)
	assert.Equal(t, 60, cfg.Bout.TickRate)

	assert.Equal(t, 100.0, cfg.Combat.MaxHealth)
	assert.Equal(t, 10.0, cfg.Combat.PunchDamage)
	assert.Equal(t, 5.0, cfg.Combat.KickDamage)
	assert.Equal(t, 15.0, cfg.Combat.UpperCutDamage)
	assert.Equal(t, 0.25, cfg.Combat.BlockDamageMultiplier)
	assert.Equal(t, 2090*time.Millisecond, cfg.Combat.PunchDuration)
	assert.Equal(t, 1130*time.Millisecond, cfg.Combat.KickDuration)
	assert.Equal(t, 3080*time.Millisecond, cfg.Combat.UpperCutDuration)
	assert.Equal(t, 1490*time.Millisecond, cfg.Combat.BlockDuration)

	assert.Equal(t, 500*time.Millisecond, cfg.AI.Debounce)
	assert.Equal(t, 10*time.Second, cfg.AI.PunchCooldown)
	assert.Equal(t, 3.4, cfg.AI.BlockRange)
	assert.Equal(t, 0.80, cfg.AI.BlockProbability)
	assert.Equal(t, 0.50, cfg.AI.ReactiveBlockProbability)
	assert.Equal(t, 1500*time.Millisecond, cfg.AI.ReactiveBlockHold)
	assert.Equal(t, 2.0, cfg.AI.PunchRange)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
logging:
  level: debug
  format: json
bout:
  rounds_to_win: 3
ai:
  block_probability: 0.5
  punch_cooldown: 5s
combat:
  punch_damage: 12
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Bout.RoundsToWin)
	assert.Equal(t, 0.5, cfg.AI.BlockProbability)
	assert.Equal(t, 5*time.Second, cfg.AI.PunchCooldown)
	assert.Equal(t, 12.0, cfg.Combat.PunchDamage)

	// Untouched keys keep their defaults.
	assert.Equal(t, 3.4, cfg.AI.BlockRange)
	assert.Equal(t, 5.0, cfg.Combat.KickDamage)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"probability out of range": "ai:\n  block_probability: 1.5\n",
		"zero tick rate":           "bout:\n  tick_rate: 0\n",
		"non-positive health":      "combat:\n  max_health: -5\n",
		"dsn required":             "database:\n  enabled: true\n",
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FIGHT_AI_BLOCK_RANGE", "4.2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4.2, cfg.AI.BlockRange)
}
