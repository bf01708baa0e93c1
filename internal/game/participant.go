package game

import "fmt"

// PlayKind selects how a participant decides to hit or stand
type PlayKind int

const (
	// Human participants defer every decision to a DecisionProvider
	Human PlayKind = iota
	// Dealer participants follow ShouldHit and never bet
	Dealer
)

// String returns the string representation of a play kind
func (k PlayKind) String() string {
	switch k {
	case Human:
		return "human"
	case Dealer:
		return "dealer"
	default:
		return "unknown"
	}
}

// Participant is a seat at the table: a player or the dealer.
//
// Balance only moves through PlaceBet and Credit. Wager is zero when the
// participant is not in the current round.
type Participant struct {
	Name    string
	Kind    PlayKind
	Hand    *Hand
	balance int
	wager   int
}

// NewPlayer creates a player seat with a starting balance
func NewPlayer(name string, balance int) *Participant {
	if balance < 0 {
		balance = 0
	}
	return &Participant{Name: name, Kind: Human, Hand: NewHand(), balance: balance}
}

// NewDealer creates the dealer seat
func NewDealer() *Participant {
	return &Participant{Name: "Dealer", Kind: Dealer, Hand: NewHand()}
}

// Balance returns the chips the participant holds outside the current wager
func (p *Participant) Balance() int {
	return p.balance
}

// Wager returns the chips at risk this round
func (p *Participant) Wager() int {
	return p.wager
}

// IsWagering reports whether the participant is playing the current round
func (p *Participant) IsWagering() bool {
	return p.wager > 0
}

// CanBet reports whether amount is a legal wager right now
func (p *Participant) CanBet(amount int) bool {
	return p.Kind == Human && amount > 0 && amount <= p.balance
}

// PlaceBet debits the balance and records the wager. Amounts that are not
// positive or exceed the balance are clamped to no bet; the accepted amount
// is returned.
func (p *Participant) PlaceBet(amount int) int {
	if !p.CanBet(amount) {
		p.wager = 0
		return 0
	}
	p.balance -= amount
	p.wager = amount
	return amount
}

// Credit adds a settlement payout to the balance
func (p *Participant) Credit(amount int) {
	if amount > 0 {
		p.balance += amount
	}
}

// ResetRound clears the hand and the wager for the next round
func (p *Participant) ResetRound() {
	p.Hand.Reset()
	p.wager = 0
}

// String returns a one-line summary such as "Alice: $950 (bet $50)"
func (p *Participant) String() string {
	if p.wager > 0 {
		return fmt.Sprintf("%s: $%d (bet $%d)", p.Name, p.balance, p.wager)
	}
	return fmt.Sprintf("%s: $%d", p.Name, p.balance)
}
