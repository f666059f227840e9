package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	// GuildID is the Discord server this deployment serves.
	GuildID       string              `yaml:"guild_id"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
	Season        SeasonConfig        `yaml:"season"`
	Wandering     WanderingConfig     `yaml:"wandering"`
	Balance       BalanceConfig       `yaml:"balance"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	TracingEnabled bool   `yaml:"tracing_enabled"`
}

// SeasonConfig holds seasonal-boss scheduling configuration.
type SeasonConfig struct {
	// MaxDays ends the season with reason time_expired when Day exceeds it.
	// Zero disables the cap.
	MaxDays int `yaml:"max_days"`
	// SeasonGoal is the global point target shown on the scoreboard.
	SeasonGoal int `yaml:"season_goal"`
}

// WanderingConfig holds wandering-monster scheduling configuration.
type WanderingConfig struct {
	// SpawnHours are the UTC hours at which a spawn roll happens.
	SpawnHours []int `yaml:"spawn_hours"`
	// ClearGraceSeconds is how long a resolved event banner stays up.
	ClearGraceSeconds int `yaml:"clear_grace_seconds"`
}

// BalanceConfig holds the combat arithmetic constants. Every value has a
// default applied in ApplyDefaults so a partial YAML file stays playable.
type BalanceConfig struct {
	BaseAttackDamage      int     `yaml:"base_attack_damage"`
	BaseDefense           int     `yaml:"base_defense"`
	BaseHeal              int     `yaml:"base_heal"`
	AttackBonusPerVote    int     `yaml:"attack_bonus_per_vote"`
	DefenseBonusPerVote   int     `yaml:"defense_bonus_per_vote"`
	HealBonusPerVote      int     `yaml:"heal_bonus_per_vote"`
	SpellfireMultiplier   int     `yaml:"spellfire_multiplier"`
	VerdantMassHealPct    float64 `yaml:"verdant_mass_heal_pct"`
	RetaliationBaseEasy   int     `yaml:"retaliation_base_easy"`
	RetaliationBaseNormal int     `yaml:"retaliation_base_normal"`
	RetaliationBaseHard   int     `yaml:"retaliation_base_hard"`
	EscalationMinor       int     `yaml:"escalation_minor"`
	EscalationSeasonal    int     `yaml:"escalation_seasonal"`
	RetaliationVoteScale  int     `yaml:"retaliation_vote_scale"`
	DefendReduction       int     `yaml:"defend_reduction"`
	PowerUnlockThreshold  int     `yaml:"power_unlock_threshold"`
}

// ApplyDefaults fills zero-valued tunables with the stock numbers.
func (c *Config) ApplyDefaults() {
	b := &c.Balance
	if b.BaseAttackDamage == 0 {
		b.BaseAttackDamage = 10
	}
	if b.BaseDefense == 0 {
		b.BaseDefense = 5
	}
	if b.BaseHeal == 0 {
		b.BaseHeal = 8
	}
	if b.AttackBonusPerVote == 0 {
		b.AttackBonusPerVote = 2
	}
	if b.DefenseBonusPerVote == 0 {
		b.DefenseBonusPerVote = 2
	}
	if b.HealBonusPerVote == 0 {
		b.HealBonusPerVote = 2
	}
	if b.SpellfireMultiplier == 0 {
		b.SpellfireMultiplier = 2
	}
	if b.VerdantMassHealPct == 0 {
		b.VerdantMassHealPct = 0.10
	}
	if b.RetaliationBaseEasy == 0 {
		b.RetaliationBaseEasy = 5
	}
	if b.RetaliationBaseNormal == 0 {
		b.RetaliationBaseNormal = 10
	}
	if b.RetaliationBaseHard == 0 {
		b.RetaliationBaseHard = 15
	}
	if b.EscalationMinor == 0 {
		b.EscalationMinor = 1
	}
	if b.EscalationSeasonal == 0 {
		b.EscalationSeasonal = 2
	}
	if b.RetaliationVoteScale == 0 {
		b.RetaliationVoteScale = 2
	}
	if b.DefendReduction == 0 {
		b.DefendReduction = 1
	}
	if b.PowerUnlockThreshold == 0 {
		b.PowerUnlockThreshold = 100
	}
	if c.Season.SeasonGoal == 0 {
		c.Season.SeasonGoal = 500
	}
	if len(c.Wandering.SpawnHours) == 0 {
		c.Wandering.SpawnHours = []int{0, 4, 8, 12, 16, 20}
	}
	if c.Wandering.ClearGraceSeconds == 0 {
		c.Wandering.ClearGraceSeconds = 600
	}
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("GUILD_ID"); v != "" {
		cfg.GuildID = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		cfg.Observability.TracingEnabled = v == "true"
	}
	if v := os.Getenv("SEASON_MAX_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Season.MaxDays = n
		}
	}
	if v := os.Getenv("POWER_UNLOCK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Balance.PowerUnlockThreshold = n
		}
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.GuildID = os.Getenv("GUILD_ID")
	if cfg.GuildID == "" {
		return nil, fmt.Errorf("GUILD_ID environment variable not set")
	}

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	cfg.Observability.MetricsAddress = os.Getenv("METRICS_ADDRESS") // optional; empty disables the HTTP listener
	cfg.Observability.Environment = os.Getenv("ENV")
	cfg.Observability.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.Observability.TracingEnabled = os.Getenv("TRACING_ENABLED") == "true"

	if v := os.Getenv("SEASON_MAX_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SEASON_MAX_DAYS value: %v", err)
		}
		cfg.Season.MaxDays = n
	}
	if v := os.Getenv("POWER_UNLOCK_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid POWER_UNLOCK_THRESHOLD value: %v", err)
		}
		cfg.Balance.PowerUnlockThreshold = n
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ToObsConfig maps app configuration onto the observability provider config.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName:    "vale-bot",
		Environment:    appCfg.Observability.Environment,
		LogLevel:       appCfg.Observability.LogLevel,
		TracingEnabled: appCfg.Observability.TracingEnabled,
	}
}
