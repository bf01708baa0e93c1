// Package bot provides automated players for tables and simulations.
package bot

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// BetSizer decides how much an automated player wagers
type BetSizer interface {
	Bet(balance int) int
}

// FlatBet wagers the same amount every round, or the whole balance when
// less than that remains
type FlatBet int

// Bet returns the flat amount capped at balance
func (f FlatBet) Bet(balance int) int {
	return min(int(f), balance)
}

// FractionBet wagers a fraction of the current balance, never less than Min
type FractionBet struct {
	Fraction float64
	Min      int
}

// Bet returns Fraction of balance, rounded down and capped at balance
func (f FractionBet) Bet(balance int) int {
	bet := max(int(float64(balance)*f.Fraction), f.Min)
	return min(bet, balance)
}

// Strategy names accepted by New
const (
	StrategyStand  = "stand"
	StrategyDealer = "dealer"
	StrategyBasic  = "basic"
	StrategyRandom = "random"
)

var constructors = map[string]func(BetSizer, *rand.Rand, *log.Logger) game.DecisionProvider{
	StrategyStand:  func(s BetSizer, _ *rand.Rand, l *log.Logger) game.DecisionProvider { return NewStandBot(s, l) },
	StrategyDealer: func(s BetSizer, _ *rand.Rand, l *log.Logger) game.DecisionProvider { return NewDealerBot(s, l) },
	StrategyBasic:  func(s BetSizer, _ *rand.Rand, l *log.Logger) game.DecisionProvider { return NewBasicBot(s, l) },
	StrategyRandom: func(s BetSizer, r *rand.Rand, l *log.Logger) game.DecisionProvider { return NewRandomBot(s, r, l) },
}

// Strategies returns the known strategy names, sorted
func Strategies() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates a bot for the named strategy
func New(strategy string, sizer BetSizer, rng *rand.Rand, logger *log.Logger) (game.DecisionProvider, error) {
	ctor, ok := constructors[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", strategy, Strategies())
	}
	if sizer == nil {
		sizer = FlatBet(10)
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ctor(sizer, rng, logger.WithPrefix("bot")), nil
}

// base carries what every bot shares: a bet sizer and a logger
type base struct {
	sizer  BetSizer
	logger *log.Logger
}

func (b base) RequestBet(view game.PlayerView) int {
	bet := b.sizer.Bet(view.Balance)
	b.logger.Debug("Placing bet", "player", view.Name, "bet", bet, "balance", view.Balance)
	return bet
}

func (b base) decide(view game.PlayerView, action game.Action, reason string) game.Action {
	b.logger.Debug("Bot decision",
		"player", view.Name,
		"score", view.Score,
		"soft", view.Soft,
		"dealer", view.DealerUpCard.String(),
		"decision", action,
		"reasoning", reason)
	return action
}
