package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays many independent bot-only sessions
type SimulateCmd struct {
	Sessions           int           `kong:"default='100',help='Number of independent sessions'"`
	Rounds             int           `kong:"default='1000',help='Rounds per session (0 plays until every bot is broke)'"`
	Players            int           `kong:"default='1',help='Bots seated at each table'"`
	Strategy           string        `kong:"default='basic',help='Bot strategy: stand, dealer, basic, random or mixed'"`
	Bet                int           `kong:"default='10',help='Flat bet per round'"`
	Balance            int           `kong:"default='1000',help='Starting balance per bot'"`
	Seed               int64         `kong:"help='RNG seed (0 for random)'"`
	ReshuffleThreshold int           `kong:"help='Reshuffle between rounds below this many cards (0 to disable)'"`
	Workers            int           `kong:"help='Sessions run in parallel (0 = GOMAXPROCS)'"`
	Timeout            time.Duration `kong:"help='Abort the simulation after this long (0 for no limit)'"`
	WriteStats         string        `kong:"help='Write a JSON report to this file'"`
	Debug              bool          `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	if c.Players < 1 || c.Players > config.MaxPlayers {
		return fmt.Errorf("players must be between 1 and %d: %d", config.MaxPlayers, c.Players)
	}

	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := shared.SetupLogger(level)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	sim := simulator.New(simulator.Config{
		Sessions:           c.Sessions,
		Rounds:             c.Rounds,
		Players:            c.Players,
		Strategy:           c.Strategy,
		Bet:                c.Bet,
		StartingBalance:    c.Balance,
		Seed:               c.Seed,
		ReshuffleThreshold: c.ReshuffleThreshold,
		Workers:            c.Workers,
		Timeout:            c.Timeout,
		Logger:             logger,
	})

	cfg := sim.Config()
	fmt.Printf("Starting simulation: %d sessions x %d rounds, %d %s bot(s), %d workers\n",
		cfg.Sessions, cfg.Rounds, cfg.Players, cfg.Strategy, cfg.Workers)

	result, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, result, cfg.Strategy)

	if c.WriteStats != "" {
		if err := simulator.WriteReport(c.WriteStats, result); err != nil {
			return fmt.Errorf("failed to write stats: %w", err)
		}
		fmt.Printf("\nStats written to %s\n", c.WriteStats)
	}
	return nil
}
