package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Players)
	assert.Equal(t, time.Second, cfg.DealerDelay())
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
table {
  seed                = 42
  max_rounds          = 20
  reshuffle_threshold = 15
  dealer_delay_ms     = 250
}

player "Alice" {
  balance = 500
}

player "Robo" {
  strategy = "basic"
  bet      = 25
}

log {
  level = "debug"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Table.Seed)
	assert.Equal(t, 20, cfg.Table.MaxRounds)
	assert.Equal(t, 15, cfg.Table.ReshuffleThreshold)
	assert.Equal(t, 250*time.Millisecond, cfg.DealerDelay())

	require.Len(t, cfg.Players, 2)
	assert.Equal(t, PlayerConfig{Name: "Alice", Balance: 500, Strategy: StrategyHuman}, cfg.Players[0])
	assert.Equal(t, PlayerConfig{Name: "Robo", Balance: DefaultBalance, Strategy: "basic", Bet: 25}, cfg.Players[1])
	assert.True(t, cfg.HasHumans())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultLogFile, cfg.Log.File)
}

func TestLoadFillsMissingBlocks(t *testing.T) {
	cfg, err := Load(writeConfig(t, `player "Bot" { strategy = "stand" }`))
	require.NoError(t, err)

	require.NotNil(t, cfg.Table)
	assert.Equal(t, DefaultDealerDelay, cfg.Table.DealerDelayMS)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultBet, cfg.Players[0].Bet)
	assert.False(t, cfg.HasHumans())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeConfig(t, `table {`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")

	_, err = Load(writeConfig(t, `table { seats = 3 }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Players = []PlayerConfig{{Name: "Alice", Balance: 100, Strategy: StrategyHuman}}
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative max rounds", func(c *Config) { c.Table.MaxRounds = -1 }, "max_rounds"},
		{"threshold above deck size", func(c *Config) { c.Table.ReshuffleThreshold = 53 }, "reshuffle_threshold"},
		{"negative delay", func(c *Config) { c.Table.DealerDelayMS = -5 }, "dealer_delay_ms"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"empty name", func(c *Config) { c.Players[0].Name = "" }, "name must not be empty"},
		{"duplicate name", func(c *Config) { c.Players = append(c.Players, c.Players[0]) }, "duplicate"},
		{"zero balance", func(c *Config) { c.Players[0].Balance = 0 }, "balance must be positive"},
		{"unknown strategy", func(c *Config) { c.Players[0].Strategy = "counter" }, "invalid strategy"},
		{"bet above balance", func(c *Config) { c.Players[0].Bet = 101 }, "bet must be between"},
		{"too many players", func(c *Config) {
			for i := range MaxPlayers {
				c.Players = append(c.Players, PlayerConfig{Name: string(rune('B' + i)), Balance: 1, Strategy: "stand"})
			}
		}, "at most"},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.Table.Seed = 1
	cfg.Table.MaxRounds = 3

	err := cfg.ApplyEnv(map[string]string{
		"BLACKJACK_SEED":      "99",
		"BLACKJACK_LOG_LEVEL": "warn",
		"BLACKJACK_LOG_FILE":  "/tmp/bj.log",
		"UNRELATED":           "x",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Table.Seed)
	assert.Equal(t, 3, cfg.Table.MaxRounds, "unset variables leave the file value")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/bj.log", cfg.Log.File)
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(map[string]string{"BLACKJACK_MAX_ROUNDS": "lots"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestApplyEnvReadsProcessEnvironment(t *testing.T) {
	t.Setenv("BLACKJACK_MAX_ROUNDS", "12")
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(nil))
	assert.Equal(t, 12, cfg.Table.MaxRounds)
}
