package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// RandomBot flips a coin to hit or stand, but never hits 21
type RandomBot struct {
	base
	rng *rand.Rand
}

// NewRandomBot creates a new RandomBot instance. A nil rng uses the global
// source.
func NewRandomBot(sizer BetSizer, rng *rand.Rand, logger *log.Logger) *RandomBot {
	return &RandomBot{base: base{sizer: sizer, logger: logger}, rng: rng}
}

func (b *RandomBot) RequestHitOrStand(view game.PlayerView) game.Action {
	if view.Score >= game.BlackjackScore {
		return b.decide(view, game.Stand, "rand-bot holding 21")
	}
	if b.coin() {
		return b.decide(view, game.Hit, "rand-bot random hit")
	}
	return b.decide(view, game.Stand, "rand-bot random stand")
}

func (b *RandomBot) coin() bool {
	if b.rng == nil {
		return rand.IntN(2) == 0
	}
	return b.rng.IntN(2) == 0
}
