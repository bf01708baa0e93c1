package game

import (
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// BlackjackScore is the best possible hand total
const BlackjackScore = 21

// Hand is the ordered set of cards held by one participant for one round.
// Cards are stored by value; a hand never aliases the deck.
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

// Add appends a card. There is no upper bound; busting is derived, not blocked.
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Score returns the best total: the highest total not above 21 when one
// exists, otherwise the total with every ace counted as 1.
func (h *Hand) Score() int {
	score, _ := h.evaluate()
	return score
}

// IsSoft reports whether an ace is still counted as 11 in the score
func (h *Hand) IsSoft() bool {
	_, soft := h.evaluate()
	return soft
}

// evaluate counts aces as 11 and softens them one at a time while the
// total is over 21.
func (h *Hand) evaluate() (score int, soft bool) {
	aces := 0
	for _, c := range h.cards {
		score += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for score > BlackjackScore && aces > 0 {
		score -= 10
		aces--
	}
	return score, aces > 0
}

// IsBlackjack reports a two-card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Score() == BlackjackScore
}

// IsBust reports a score over 21
func (h *Hand) IsBust() bool {
	return h.Score() > BlackjackScore
}

// Reset removes every card
func (h *Hand) Reset() {
	h.cards = h.cards[:0]
}

// String renders the cards followed by the score, e.g. "A♠ K♦ (21)"
func (h *Hand) String() string {
	if len(h.cards) == 0 {
		return "empty"
	}
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ") + " (" + strconv.Itoa(h.Score()) + ")"
}

// PartialString renders the first card and hides the rest, as the dealer's
// hand is shown before the dealer turn.
func (h *Hand) PartialString() string {
	if len(h.cards) == 0 {
		return "empty"
	}
	if len(h.cards) == 1 {
		return h.cards[0].String()
	}
	return h.cards[0].String() + " [hidden]"
}
