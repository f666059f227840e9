package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, 10, cfg.Balance.BaseAttackDamage)
	assert.Equal(t, 5, cfg.Balance.BaseDefense)
	assert.Equal(t, 8, cfg.Balance.BaseHeal)
	assert.Equal(t, 2, cfg.Balance.SpellfireMultiplier)
	assert.Equal(t, 0.10, cfg.Balance.VerdantMassHealPct)
	assert.Equal(t, 10, cfg.Balance.RetaliationBaseNormal)
	assert.Equal(t, 100, cfg.Balance.PowerUnlockThreshold)
	assert.Equal(t, 500, cfg.Season.SeasonGoal)
	assert.Equal(t, []int{0, 4, 8, 12, 16, 20}, cfg.Wandering.SpawnHours)
	assert.Equal(t, 600, cfg.Wandering.ClearGraceSeconds)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Balance.BaseAttackDamage = 25
	cfg.Wandering.SpawnHours = []int{6}
	cfg.ApplyDefaults()

	assert.Equal(t, 25, cfg.Balance.BaseAttackDamage)
	assert.Equal(t, []int{6}, cfg.Wandering.SpawnHours)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
guild_id: "guild-1"
postgres:
  dsn: "postgres://localhost/vale"
nats:
  url: "nats://localhost:4222"
season:
  max_days: 14
balance:
  base_attack_damage: 12
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "guild-1", cfg.GuildID)
	assert.Equal(t, "postgres://localhost/vale", cfg.Postgres.DSN)
	assert.Equal(t, 14, cfg.Season.MaxDays)
	assert.Equal(t, 12, cfg.Balance.BaseAttackDamage)

	// Omitted tunables still get defaults.
	assert.Equal(t, 5, cfg.Balance.BaseDefense)
	assert.Equal(t, 500, cfg.Season.SeasonGoal)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
guild_id: "guild-1"
postgres:
  dsn: "postgres://localhost/vale"
nats:
  url: "nats://localhost:4222"
`), 0o600))

	t.Setenv("GUILD_ID", "guild-override")
	t.Setenv("SEASON_MAX_DAYS", "7")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "guild-override", cfg.GuildID)
	assert.Equal(t, 7, cfg.Season.MaxDays)
}
