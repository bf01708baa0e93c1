package game

// Result classifies how a player's wager settled against the dealer
type Result int

const (
	Loss Result = iota
	Push
	Win
	BlackjackWin
)

// String returns the string representation of a result
func (r Result) String() string {
	switch r {
	case Loss:
		return "loss"
	case Push:
		return "push"
	case Win:
		return "win"
	case BlackjackWin:
		return "blackjack"
	default:
		return "unknown"
	}
}

// IsWin returns true for Win and BlackjackWin
func (r Result) IsWin() bool {
	return r == Win || r == BlackjackWin
}

// Settlement is the outcome of one wager: the classification and the amount
// credited back to the player. The wager was already debited at bet time, so
// a loss pays 0 and a push pays the wager back.
type Settlement struct {
	Result Result
	Payout int
}

// Net returns the player's profit for the round given the original wager
func (s Settlement) Net(wager int) int {
	return s.Payout - wager
}

// BlackjackPayout returns the amount credited for a winning blackjack: the
// wager back plus 3:2. Chips are whole, so an odd half is rounded down.
func BlackjackPayout(wager int) int {
	return wager + wager*3/2
}

// Settle compares a final player hand with the final dealer hand. The rules
// are applied in order and the first match wins.
func Settle(player, dealer *Hand, wager int) Settlement {
	switch {
	case player.IsBust():
		return Settlement{Result: Loss}
	case dealer.IsBust():
		return Settlement{Result: Win, Payout: 2 * wager}
	case player.IsBlackjack() && dealer.IsBlackjack():
		return Settlement{Result: Push, Payout: wager}
	case player.IsBlackjack():
		return Settlement{Result: BlackjackWin, Payout: BlackjackPayout(wager)}
	case dealer.IsBlackjack():
		return Settlement{Result: Loss}
	}

	ps, ds := player.Score(), dealer.Score()
	switch {
	case ps > ds:
		return Settlement{Result: Win, Payout: 2 * wager}
	case ps == ds:
		return Settlement{Result: Push, Payout: wager}
	default:
		return Settlement{Result: Loss}
	}
}
