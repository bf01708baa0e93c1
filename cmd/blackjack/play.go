package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs an interactive session at the terminal
type PlayCmd struct {
	Config    string `kong:"default='blackjack.hcl',type='path',help='HCL config file (missing file uses defaults)'"`
	Seed      *int64 `kong:"help='Deterministic deck seed (overrides config)'"`
	MaxRounds int    `kong:"help='Stop after N rounds (0 uses the config value)'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger, logFile, err := shared.SetupFileLogger(cfg.Log.File, cfg.Log.Level, "MAIN")
	if err != nil {
		return err
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	fmt.Print(tui.TitleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	run := tui.ProgramRunner(os.Stdin, os.Stdout)
	if len(cfg.Players) == 0 {
		seats, err := tui.SetupSeats(run)
		if errors.Is(err, tui.ErrCancelled) {
			logger.Info("Seat setup cancelled")
			return nil
		}
		if err != nil {
			return fmt.Errorf("seat setup: %w", err)
		}
		cfg.Players = humanPlayers(seats)
	}

	seed, err := randutil.Resolve(cfg.Table.Seed)
	if err != nil {
		return err
	}
	logger.Info("Starting blackjack", "seed", seed, "players", len(cfg.Players),
		"maxRounds", cfg.Table.MaxRounds, "reshuffleThreshold", cfg.Table.ReshuffleThreshold)

	ctx, cancel := context.WithCancel(shared.SetupSignalHandlerWithLogger(logger))
	defer cancel()

	human := tui.NewHumanAgent(run, logger, cancel)
	seats, err := buildSeats(cfg, seed, human, logger)
	if err != nil {
		return err
	}

	bus := game.NewEventBus()
	bus.Subscribe(display.NewRenderer(os.Stdout,
		display.WithDealerDelay(cfg.DealerDelay()),
		display.WithLogger(logger),
	))

	rc, err := game.NewRoundController(deck.NewDeck(randutil.New(seed)), seats,
		game.WithLogger(logger),
		game.WithEventBus(bus),
		game.WithReshuffleThreshold(cfg.Table.ReshuffleThreshold),
	)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	opts := []game.SessionOption{game.WithMaxRounds(cfg.Table.MaxRounds)}
	if cfg.HasHumans() {
		opts = append(opts, game.WithContinue(human.AskContinue))
	}

	summary, err := game.NewSession(rc, opts...).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Session complete", "session", summary.SessionID, "rounds", summary.Rounds, "reason", summary.Reason)
	return nil
}

func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}

	if c.Seed != nil {
		cfg.Table.Seed = *c.Seed
	}
	if c.MaxRounds > 0 {
		cfg.Table.MaxRounds = c.MaxRounds
	}
	if c.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// humanPlayers turns interactively entered seats into player configs
func humanPlayers(seats []tui.SeatConfig) []config.PlayerConfig {
	players := make([]config.PlayerConfig, len(seats))
	for i, s := range seats {
		players[i] = config.PlayerConfig{
			Name:     s.Name,
			Balance:  s.Balance,
			Strategy: config.StrategyHuman,
		}
	}
	return players
}

// buildSeats creates a table seat per configured player. Human seats share
// one terminal agent; each bot gets its own RNG derived from seed.
func buildSeats(cfg *config.Config, seed int64, human game.DecisionProvider, logger *log.Logger) ([]game.Seat, error) {
	seats := make([]game.Seat, 0, len(cfg.Players))
	for i, p := range cfg.Players {
		var provider game.DecisionProvider
		if p.Strategy == config.StrategyHuman {
			provider = human
		} else {
			b, err := bot.New(p.Strategy, bot.FlatBet(p.Bet), randutil.New(randutil.Derive(seed, i+1)), logger)
			if err != nil {
				return nil, fmt.Errorf("player %s: %w", p.Name, err)
			}
			provider = b
		}
		seats = append(seats, game.Seat{
			Player:   game.NewPlayer(p.Name, p.Balance),
			Provider: provider,
		})
	}
	return seats, nil
}
