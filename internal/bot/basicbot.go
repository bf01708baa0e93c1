package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// BasicBot follows the hit/stand half of basic strategy for a dealer who
// stands on soft 17. Doubling and splitting are not offered at this table.
type BasicBot struct {
	base
}

// NewBasicBot creates a new BasicBot instance
func NewBasicBot(sizer BetSizer, logger *log.Logger) *BasicBot {
	return &BasicBot{base{sizer: sizer, logger: logger}}
}

func (b *BasicBot) RequestHitOrStand(view game.PlayerView) game.Action {
	up := upCardValue(view.DealerUpCard)
	if view.Soft {
		switch {
		case view.Score >= 19:
			return b.decide(view, game.Stand, "soft 19+")
		case view.Score == 18 && up <= 8:
			return b.decide(view, game.Stand, "soft 18 against a weak card")
		default:
			return b.decide(view, game.Hit, "soft hand can't bust")
		}
	}

	switch {
	case view.Score >= 17:
		return b.decide(view, game.Stand, "hard 17+")
	case view.Score >= 13 && up <= 6:
		return b.decide(view, game.Stand, "stiff hand against a bust card")
	case view.Score == 12 && up >= 4 && up <= 6:
		return b.decide(view, game.Stand, "12 against 4-6")
	default:
		return b.decide(view, game.Hit, "drawing to a weak total")
	}
}

// upCardValue returns the blackjack value of the dealer's up card. A zero
// card (no dealer cards yet) is treated as a ten.
func upCardValue(c deck.Card) int {
	if c.IsZero() {
		return 10
	}
	return c.Value()
}
