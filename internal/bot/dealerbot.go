package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// DealerBot plays the dealer's own policy: hit below 17, otherwise stand
type DealerBot struct {
	base
}

// NewDealerBot creates a new DealerBot instance
func NewDealerBot(sizer BetSizer, logger *log.Logger) *DealerBot {
	return &DealerBot{base{sizer: sizer, logger: logger}}
}

func (b *DealerBot) RequestHitOrStand(view game.PlayerView) game.Action {
	if view.Score < game.DealerStandScore {
		return b.decide(view, game.Hit, "dealer-bot hitting below 17")
	}
	return b.decide(view, game.Stand, "dealer-bot standing on 17+")
}
