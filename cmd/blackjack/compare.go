package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/simulator"
)

// CompareCmd plays two strategies over the same shuffles and tests the difference
type CompareCmd struct {
	Baseline     string  `kong:"default='dealer',help='Strategy to compare against'"`
	Challenger   string  `kong:"default='basic',help='Strategy under test'"`
	Sessions     int     `kong:"default='100',help='Number of independent sessions per strategy'"`
	Rounds       int     `kong:"default='1000',help='Rounds per session'"`
	Players      int     `kong:"default='1',help='Bots seated at each table'"`
	Bet          int     `kong:"default='10',help='Flat bet per round'"`
	Balance      int     `kong:"default='1000',help='Starting balance per bot'"`
	Seed         int64   `kong:"help='RNG seed shared by both runs (0 for random)'"`
	Workers      int     `kong:"help='Sessions run in parallel (0 = GOMAXPROCS)'"`
	Significance float64 `kong:"default='0.05',help='Significance level for the t-test'"`
	Debug        bool    `kong:"help='Enable debug logging'"`
}

func (c *CompareCmd) Run() error {
	if c.Players < 1 || c.Players > config.MaxPlayers {
		return fmt.Errorf("players must be between 1 and %d: %d", config.MaxPlayers, c.Players)
	}
	if c.Significance <= 0 || c.Significance >= 1 {
		return fmt.Errorf("significance must be between 0 and 1: %v", c.Significance)
	}

	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := shared.SetupLogger(level)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	fmt.Printf("Comparing %s against %s: %d sessions x %d rounds each\n",
		c.Challenger, c.Baseline, c.Sessions, c.Rounds)

	m, err := simulator.RunMatchup(ctx, simulator.Config{
		Sessions:        c.Sessions,
		Rounds:          c.Rounds,
		Players:         c.Players,
		Bet:             c.Bet,
		StartingBalance: c.Balance,
		Seed:            c.Seed,
		Workers:         c.Workers,
		Logger:          logger,
	}, c.Baseline, c.Challenger)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	simulator.PrintMatchup(os.Stdout, m, c.Significance)
	return nil
}
