package game

import "github.com/lox/blackjack/internal/deck"

// Action is a player's choice during their turn
type Action int

const (
	Stand Action = iota
	Hit
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	default:
		return "unknown"
	}
}

// PlayerView is the read-only state handed to a decision provider. It is a
// snapshot; changing it has no effect on the round.
type PlayerView struct {
	Name         string
	Balance      int
	Wager        int
	Cards        []deck.Card
	Score        int
	Soft         bool
	DealerUpCard deck.Card // zero before the deal
	Round        int
}

// DecisionProvider supplies a player's decisions. Implementations may prompt
// a human, follow a script in tests, or play a fixed strategy.
type DecisionProvider interface {
	// RequestBet returns the wager for the coming round; 0 sits the round out
	RequestBet(view PlayerView) int
	// RequestHitOrStand is called until it returns Stand or the hand busts
	RequestHitOrStand(view PlayerView) Action
}
