package game

// Phase is a step of the round state machine. A round walks the phases in
// declaration order and ends in PhaseComplete.
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseDealing
	PhasePlayerTurns
	PhaseDealerTurn
	PhaseSettlement
	PhaseComplete
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseDealing:
		return "dealing"
	case PhasePlayerTurns:
		return "player_turns"
	case PhaseDealerTurn:
		return "dealer_turn"
	case PhaseSettlement:
		return "settlement"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}
