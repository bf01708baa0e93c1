// Package config loads table and player settings from HCL files, with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
)

const (
	// StrategyHuman seats a player prompted in the terminal
	StrategyHuman = "human"
	// MaxPlayers is the number of seats at the table
	MaxPlayers = 7

	DefaultBalance     = 1000
	DefaultBet         = 10
	DefaultDealerDelay = 1000
	DefaultLogLevel    = "info"
	DefaultLogFile     = "blackjack.log"
)

// Config represents the complete configuration
type Config struct {
	Table   *TableSettings `hcl:"table,block"`
	Players []PlayerConfig `hcl:"player,block"`
	Log     *LogSettings   `hcl:"log,block"`
}

// TableSettings contains table-level configuration
type TableSettings struct {
	Seed               int64 `hcl:"seed,optional"`
	MaxRounds          int   `hcl:"max_rounds,optional"`
	ReshuffleThreshold int   `hcl:"reshuffle_threshold,optional"`
	DealerDelayMS      int   `hcl:"dealer_delay_ms,optional"`
}

// PlayerConfig defines one seat. Strategy is "human" or a bot strategy.
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Balance  int    `hcl:"balance,optional"`
	Strategy string `hcl:"strategy,optional"`
	Bet      int    `hcl:"bet,optional"`
}

// LogSettings controls the log file
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// envOverrides are read with the BLACKJACK_ prefix
type envOverrides struct {
	Seed      *int64  `env:"SEED"`
	MaxRounds *int    `env:"MAX_ROUNDS"`
	LogLevel  *string `env:"LOG_LEVEL"`
	LogFile   *string `env:"LOG_FILE"`
}

// Default returns the default configuration. It seats nobody; players are
// set up interactively when the file names none.
func Default() *Config {
	return &Config{
		Table: &TableSettings{
			DealerDelayMS: DefaultDealerDelay,
		},
		Log: &LogSettings{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{DealerDelayMS: DefaultDealerDelay}
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}

	for i := range c.Players {
		if c.Players[i].Balance == 0 {
			c.Players[i].Balance = DefaultBalance
		}
		if c.Players[i].Strategy == "" {
			c.Players[i].Strategy = StrategyHuman
		}
		if c.Players[i].Bet == 0 && c.Players[i].Strategy != StrategyHuman {
			c.Players[i].Bet = DefaultBet
		}
	}
}

// ApplyEnv overlays BLACKJACK_* variables from environ. A nil environ reads
// the process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: "BLACKJACK_", Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.applyDefaults()

	if o.Seed != nil {
		c.Table.Seed = *o.Seed
	}
	if o.MaxRounds != nil {
		c.Table.MaxRounds = *o.MaxRounds
	}
	if o.LogLevel != nil {
		c.Log.Level = *o.LogLevel
	}
	if o.LogFile != nil {
		c.Log.File = *o.LogFile
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table != nil {
		if c.Table.MaxRounds < 0 {
			return fmt.Errorf("max_rounds must not be negative: %d", c.Table.MaxRounds)
		}
		if c.Table.ReshuffleThreshold < 0 || c.Table.ReshuffleThreshold > deck.Size {
			return fmt.Errorf("reshuffle_threshold must be between 0 and %d: %d", deck.Size, c.Table.ReshuffleThreshold)
		}
		if c.Table.DealerDelayMS < 0 {
			return fmt.Errorf("dealer_delay_ms must not be negative: %d", c.Table.DealerDelayMS)
		}
	}

	if c.Log != nil && c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
		}
	}

	if len(c.Players) > MaxPlayers {
		return fmt.Errorf("at most %d players can be seated, got %d", MaxPlayers, len(c.Players))
	}

	validStrategies := append([]string{StrategyHuman}, bot.Strategies()...)
	seen := make(map[string]bool)
	for _, p := range c.Players {
		if p.Name == "" {
			return errors.New("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if p.Balance <= 0 {
			return fmt.Errorf("player %s: balance must be positive", p.Name)
		}
		if !slices.Contains(validStrategies, p.Strategy) {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
		if p.Bet < 0 || p.Bet > p.Balance {
			return fmt.Errorf("player %s: bet must be between 0 and the balance", p.Name)
		}
	}

	return nil
}

// DealerDelay returns the pause between dealer draws
func (c *Config) DealerDelay() time.Duration {
	if c.Table == nil {
		return 0
	}
	return time.Duration(c.Table.DealerDelayMS) * time.Millisecond
}

// HasHumans reports whether any configured seat is prompted in the terminal
func (c *Config) HasHumans() bool {
	for _, p := range c.Players {
		if p.Strategy == StrategyHuman {
			return true
		}
	}
	return false
}
