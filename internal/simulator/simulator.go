package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// StrategyMixed seats one bot of each known strategy in turn
const StrategyMixed = "mixed"

// ErrTimeout is returned when a simulation exceeds Config.Timeout
var ErrTimeout = errors.New("simulation timed out")

// Config holds configuration for running simulations
type Config struct {
	Sessions           int
	Rounds             int // per session; 0 plays until every bot is broke
	Players            int
	Strategy           string
	Bet                int
	StartingBalance    int
	Seed               int64
	ReshuffleThreshold int
	Workers            int
	Timeout            time.Duration
	Logger             *log.Logger
	Clock              quartz.Clock
}

// Result aggregates every session of a simulation
type Result struct {
	Sessions   int
	Rounds     int
	Bankrupt   int
	Seed       int64
	Seats      []string
	Strategies []string // parallel to Seats
	Stats      *statistics.Tracker
	Elapsed    time.Duration
}

// Simulator runs independent blackjack sessions between bots and a dealer
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Sessions <= 0 {
		config.Sessions = 1
	}
	if config.Players <= 0 {
		config.Players = 1
	}
	if config.Strategy == "" {
		config.Strategy = bot.StrategyBasic
	}
	if config.Bet <= 0 {
		config.Bet = 10
	}
	if config.StartingBalance <= 0 {
		config.StartingBalance = 1000
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Config returns the configuration with defaults applied
func (s *Simulator) Config() Config {
	return s.config
}

// Seats returns the bot names and strategies, in seat order
func (s *Simulator) Seats() ([]string, []string) {
	names := make([]string, s.config.Players)
	strategies := make([]string, s.config.Players)
	all := bot.Strategies()
	for i := range names {
		names[i] = fmt.Sprintf("Bot%d", i+1)
		strategies[i] = s.config.Strategy
		if s.config.Strategy == StrategyMixed {
			strategies[i] = all[i%len(all)]
		}
	}
	return names, strategies
}

type sessionResult struct {
	summary game.SessionSummary
	stats   *statistics.Tracker
}

// Run plays every session and merges the results in session order, so the
// outcome for a given seed does not depend on Workers.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	seed, err := randutil.Resolve(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("seeding simulation: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var timedOut atomic.Bool
	if cfg.Timeout > 0 {
		timer := cfg.Clock.AfterFunc(cfg.Timeout, func() {
			timedOut.Store(true)
			cancel()
		}, "simulator", "timeout")
		defer timer.Stop()
	}

	start := cfg.Clock.Now()
	cfg.Logger.Info("Starting simulation",
		"sessions", cfg.Sessions,
		"players", cfg.Players,
		"strategy", cfg.Strategy,
		"rounds", cfg.Rounds,
		"seed", seed,
		"workers", cfg.Workers)

	results := make([]sessionResult, cfg.Sessions)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range cfg.Sessions {
		g.Go(func() error {
			r, err := s.playSession(gctx, i, randutil.Derive(seed, i))
			if err != nil {
				return fmt.Errorf("session %d: %w", i+1, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if timedOut.Load() {
			return nil, fmt.Errorf("%w after %v (seed: %d)", ErrTimeout, cfg.Timeout, seed)
		}
		return nil, err
	}

	names, strategies := s.Seats()
	result := &Result{
		Sessions:   cfg.Sessions,
		Seed:       seed,
		Seats:      names,
		Strategies: strategies,
		Stats:      statistics.NewTracker(),
	}
	for _, r := range results {
		result.Rounds += r.summary.Rounds
		if r.summary.Reason == game.StopBankrupt {
			result.Bankrupt++
		}
		result.Stats.Merge(r.stats)
	}
	result.Elapsed = cfg.Clock.Since(start)

	cfg.Logger.Info("Simulation complete", "rounds", result.Rounds, "bankrupt", result.Bankrupt, "elapsed", result.Elapsed)
	return result, nil
}

// playSession runs one session on its own deck and bots. Nothing in here is
// shared with other sessions.
func (s *Simulator) playSession(ctx context.Context, index int, seed int64) (sessionResult, error) {
	cfg := s.config
	logger := cfg.Logger.With("session", index+1)

	names, strategies := s.Seats()
	seats := make([]game.Seat, len(names))
	for i, name := range names {
		provider, err := bot.New(strategies[i], bot.FlatBet(cfg.Bet), randutil.New(randutil.Derive(seed, i+1)), logger)
		if err != nil {
			return sessionResult{}, err
		}
		seats[i] = game.Seat{Player: game.NewPlayer(name, cfg.StartingBalance), Provider: provider}
	}

	tracker := statistics.NewTracker()
	bus := game.NewEventBus()
	bus.Subscribe(tracker)

	rc, err := game.NewRoundController(deck.NewDeck(randutil.New(seed)), seats,
		game.WithLogger(logger),
		game.WithEventBus(bus),
		game.WithClock(cfg.Clock),
		game.WithReshuffleThreshold(cfg.ReshuffleThreshold))
	if err != nil {
		return sessionResult{}, err
	}

	summary, err := game.NewSession(rc, game.WithMaxRounds(cfg.Rounds)).Run(ctx)
	if err != nil {
		return sessionResult{}, err
	}
	return sessionResult{summary: summary, stats: tracker}, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, sessions, rounds int, strategy string, seed int64, logger *log.Logger) (*Result, error) {
	return New(Config{
		Sessions: sessions,
		Rounds:   rounds,
		Strategy: strategy,
		Seed:     seed,
		Logger:   logger,
	}).Run(ctx)
}

// PrintSummary writes a summary of simulation results, one block per seat
func PrintSummary(w io.Writer, result *Result, strategy string) {
	fmt.Fprintf(w, "\n=== FINAL RESULTS: %s strategy ===\n", strategy)
	fmt.Fprintf(w, "Sessions: %d (%d ended bankrupt)\n", result.Sessions, result.Bankrupt)
	fmt.Fprintf(w, "Rounds played: %d\n", result.Rounds)
	fmt.Fprintf(w, "Seed: %d\n", result.Seed)
	fmt.Fprintf(w, "Elapsed: %v\n", result.Elapsed.Round(time.Millisecond))

	for _, name := range result.Seats {
		stats, ok := result.Stats.Player(name)
		if !ok {
			fmt.Fprintf(w, "\n=== %s ===\nNo hands played\n", name)
			continue
		}
		low, high := stats.ConfidenceInterval95()

		fmt.Fprintf(w, "\n=== %s ===\n", name)
		fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)
		fmt.Fprintf(w, "Mean: %.4f chips/hand\n", stats.Mean())
		fmt.Fprintf(w, "Median: %.4f chips/hand\n", stats.Median())
		fmt.Fprintf(w, "Std Dev: %.4f chips\n", stats.StdDev())
		fmt.Fprintf(w, "Std Error: %.4f chips\n", stats.StdError())
		fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] chips/hand\n", low, high)
		fmt.Fprintf(w, "Return: %.2f%% of chips wagered\n", stats.Return()*100)

		if stats.Hands > 0 {
			pct := func(n int) float64 { return float64(n) / float64(stats.Hands) * 100 }
			fmt.Fprintf(w, "Wins: %d (%.1f%%), blackjacks: %d (%.1f%%), pushes: %d (%.1f%%), losses: %d (%.1f%%)\n",
				stats.Wins, pct(stats.Wins),
				stats.Blackjacks, pct(stats.Blackjacks),
				stats.Pushes, pct(stats.Pushes),
				stats.Losses, pct(stats.Losses))
			fmt.Fprintf(w, "Busts: %d (%.1f%%), dealer busts: %d (%.1f%%)\n",
				stats.Busts, pct(stats.Busts), stats.DealerBusts, pct(stats.DealerBusts))
		}
	}
}
