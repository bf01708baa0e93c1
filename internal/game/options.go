package game

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/gameid"
)

// RoundOption configures a RoundController during creation.
type RoundOption func(*RoundController)

// WithLogger sets the logger. The controller logs under the "round" prefix.
func WithLogger(logger *log.Logger) RoundOption {
	return func(rc *RoundController) {
		if logger != nil {
			rc.logger = logger.WithPrefix("round")
		}
	}
}

// WithEventBus publishes round events on bus instead of a private bus
func WithEventBus(bus EventBus) RoundOption {
	return func(rc *RoundController) {
		if bus != nil {
			rc.bus = bus
		}
	}
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) RoundOption {
	return func(rc *RoundController) {
		if clock != nil {
			rc.clock = clock
		}
	}
}

// WithReshuffleThreshold reshuffles the deck before a round whenever fewer
// than n cards remain. Zero leaves reshuffling to deck exhaustion alone.
func WithReshuffleThreshold(n int) RoundOption {
	return func(rc *RoundController) {
		if n >= 0 {
			rc.reshuffleThreshold = n
		}
	}
}

// WithIDGenerator sets the generator for round IDs
func WithIDGenerator(ids *gameid.Generator) RoundOption {
	return func(rc *RoundController) {
		if ids != nil {
			rc.ids = ids
		}
	}
}
