package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// StandBot always stands on its first two cards
type StandBot struct {
	base
}

// NewStandBot creates a new StandBot instance
func NewStandBot(sizer BetSizer, logger *log.Logger) *StandBot {
	return &StandBot{base{sizer: sizer, logger: logger}}
}

func (b *StandBot) RequestHitOrStand(view game.PlayerView) game.Action {
	return b.decide(view, game.Stand, "stand-bot standing")
}
