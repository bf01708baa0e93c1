package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/gameid"
)

var (
	// ErrNoPlayers is returned when a controller is created without seats
	ErrNoPlayers = errors.New("at least one player is required")
	// ErrNoProvider is returned when a seat has no decision provider
	ErrNoProvider = errors.New("player has no decision provider")
)

// Seat pairs a player with the provider that makes their decisions
type Seat struct {
	Player   *Participant
	Provider DecisionProvider
}

// PlayerOutcome is one player's line in a settled round
type PlayerOutcome struct {
	Name      string
	Wager     int
	Result    Result
	Payout    int
	Net       int
	Cards     []deck.Card
	Score     int
	Blackjack bool
	Bust      bool
	Balance   int
}

// RoundResult is a snapshot of a settled round. Only players who wagered
// appear in Outcomes.
type RoundResult struct {
	RoundID         string
	Round           int
	Outcomes        []PlayerOutcome
	DealerCards     []deck.Card
	DealerScore     int
	DealerBust      bool
	DealerBlackjack bool
	DealerPlayed    bool
	CardsRemaining  int
}

// Outcome returns the named player's outcome
func (r RoundResult) Outcome(name string) (PlayerOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Name == name {
			return o, true
		}
	}
	return PlayerOutcome{}, false
}

// RoundController runs rounds as an explicit state machine over one deck,
// one dealer and an ordered list of seats. It is not safe for concurrent use;
// every mutation of the deck, hands and balances happens here, in order.
type RoundController struct {
	deck    *deck.Deck
	dealer  *Participant
	seats   []Seat
	rounds  int
	phase   Phase
	roundID string
	played  bool

	logger             *log.Logger
	bus                EventBus
	clock              quartz.Clock
	ids                *gameid.Generator
	reshuffleThreshold int
}

// NewRoundController creates a controller positioned at PhaseBetting
func NewRoundController(d *deck.Deck, seats []Seat, opts ...RoundOption) (*RoundController, error) {
	if d == nil {
		return nil, errors.New("deck is required")
	}
	if len(seats) == 0 {
		return nil, ErrNoPlayers
	}
	for _, s := range seats {
		if s.Player == nil {
			return nil, ErrNoPlayers
		}
		if s.Provider == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoProvider, s.Player.Name)
		}
	}

	rc := &RoundController{
		deck:   d,
		dealer: NewDealer(),
		seats:  seats,
		phase:  PhaseBetting,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		bus:    NewEventBus(),
		clock:  quartz.NewReal(),
		ids:    gameid.NewGenerator(nil),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc, nil
}

// Phase returns the phase the next Step will execute
func (rc *RoundController) Phase() Phase { return rc.phase }

// Rounds returns the number of settled rounds
func (rc *RoundController) Rounds() int { return rc.rounds }

// Dealer returns the dealer seat
func (rc *RoundController) Dealer() *Participant { return rc.dealer }

// Deck returns the deck the controller deals from
func (rc *RoundController) Deck() *deck.Deck { return rc.deck }

// EventBus returns the bus round events are published on
func (rc *RoundController) EventBus() EventBus { return rc.bus }

// Players returns the players in seat order
func (rc *RoundController) Players() []*Participant {
	out := make([]*Participant, len(rc.seats))
	for i, s := range rc.seats {
		out[i] = s.Player
	}
	return out
}

// CanContinue reports whether any player still has chips to bet
func (rc *RoundController) CanContinue() bool {
	for _, s := range rc.seats {
		if s.Player.Balance() > 0 {
			return true
		}
	}
	return false
}

// PlayRound runs one full round from betting to settlement
func (rc *RoundController) PlayRound() *RoundResult {
	if rc.phase == PhaseComplete {
		rc.phase = PhaseBetting
	}
	var result *RoundResult
	for rc.phase != PhaseComplete {
		if r := rc.step(); r != nil {
			result = r
		}
	}
	return result
}

// Step executes the current phase and advances to the next one. Stepping a
// completed round starts the next round's betting phase. The RoundResult is
// returned from the settlement step and is nil otherwise.
func (rc *RoundController) Step() *RoundResult {
	if rc.phase == PhaseComplete {
		rc.phase = PhaseBetting
	}
	return rc.step()
}

func (rc *RoundController) step() *RoundResult {
	switch rc.phase {
	case PhaseBetting:
		rc.startRound()
		rc.collectBets()
		rc.phase = PhaseDealing
	case PhaseDealing:
		rc.dealInitialCards()
		rc.phase = PhasePlayerTurns
	case PhasePlayerTurns:
		for i := range rc.seats {
			rc.playTurn(i)
		}
		rc.phase = PhaseDealerTurn
	case PhaseDealerTurn:
		rc.playDealer()
		rc.phase = PhaseSettlement
	case PhaseSettlement:
		result := rc.settle()
		rc.phase = PhaseComplete
		return result
	}
	return nil
}

func (rc *RoundController) currentRound() int {
	return rc.rounds + 1
}

func (rc *RoundController) startRound() {
	rc.roundID = rc.ids.Generate()
	rc.played = false
	rc.dealer.ResetRound()
	for _, s := range rc.seats {
		s.Player.ResetRound()
	}

	if rc.reshuffleThreshold > 0 && rc.deck.Remaining() < rc.reshuffleThreshold {
		rc.logger.Debug("Reshuffling before round", "remaining", rc.deck.Remaining(), "threshold", rc.reshuffleThreshold)
		rc.deck.Reshuffle()
		rc.bus.Publish(NewReshuffleEvent("threshold", rc.deck.Reshuffles(), rc.clock.Now()))
	}

	names := make([]string, len(rc.seats))
	for i, s := range rc.seats {
		names[i] = s.Player.Name
	}
	rc.logger.Debug("Starting round", "round", rc.currentRound(), "roundID", rc.roundID, "remaining", rc.deck.Remaining())
	rc.bus.Publish(NewRoundStartEvent(rc.roundID, rc.currentRound(), names, rc.clock.Now()))
}

func (rc *RoundController) collectBets() {
	for i, s := range rc.seats {
		p := s.Player
		if p.Balance() <= 0 {
			continue
		}
		requested := s.Provider.RequestBet(rc.view(i))
		accepted := p.PlaceBet(requested)
		if requested != 0 && accepted == 0 {
			rc.logger.Debug("Bet rejected", "player", p.Name, "requested", requested, "balance", p.Balance())
		} else {
			rc.logger.Debug("Bet placed", "player", p.Name, "amount", accepted, "balance", p.Balance())
		}
		rc.bus.Publish(NewBetPlacedEvent(p.Name, requested, accepted, p.Balance(), rc.clock.Now()))
	}
}

func (rc *RoundController) dealInitialCards() {
	for _, s := range rc.seats {
		if s.Player.IsWagering() {
			rc.draw(s.Player, false)
			rc.draw(s.Player, false)
		}
	}
	rc.draw(rc.dealer, false)
	rc.draw(rc.dealer, true)

	for _, s := range rc.seats {
		if s.Player.IsWagering() && s.Player.Hand.IsBlackjack() {
			rc.logger.Debug("Blackjack", "player", s.Player.Name)
			rc.bus.Publish(NewBlackjackEvent(s.Player.Name, rc.clock.Now()))
		}
	}
}

// playTurn asks the seat's provider for decisions until it stands or busts.
// Players who sat out or hold blackjack do not act.
func (rc *RoundController) playTurn(i int) {
	s := rc.seats[i]
	p := s.Player
	if !p.IsWagering() || p.Hand.IsBlackjack() {
		return
	}

	hits := 0
	for !p.Hand.IsBust() && rc.wantsHit(s, i) {
		rc.draw(p, false)
		hits++
	}

	rc.logger.Debug("Player turn complete", "player", p.Name, "score", p.Hand.Score(), "bust", p.Hand.IsBust(), "hits", hits)
	rc.bus.Publish(NewPlayerTurnEndEvent(p.Name, p.Hand.Score(), p.Hand.IsBust(), hits, rc.clock.Now()))
}

// wantsHit dispatches the hit-or-stand decision on the participant's kind
func (rc *RoundController) wantsHit(s Seat, i int) bool {
	switch s.Player.Kind {
	case Dealer:
		return ShouldHit(s.Player.Hand)
	default:
		switch action := s.Provider.RequestHitOrStand(rc.view(i)); action {
		case Hit:
			return true
		case Stand:
			return false
		default:
			rc.logger.Warn("Provider returned unknown action, standing", "player", s.Player.Name, "action", int(action))
			return false
		}
	}
}

func (rc *RoundController) playDealer() {
	live := false
	for _, s := range rc.seats {
		if s.Player.IsWagering() && !s.Player.Hand.IsBust() {
			live = true
			break
		}
	}

	rc.bus.Publish(NewDealerRevealEvent(rc.dealer.Hand, live, rc.clock.Now()))
	if !live {
		rc.logger.Debug("No live players, dealer reveals only", "score", rc.dealer.Hand.Score())
		return
	}

	rc.played = true
	dealerSeat := Seat{Player: rc.dealer}
	for !rc.dealer.Hand.IsBust() && rc.wantsHit(dealerSeat, -1) {
		rc.draw(rc.dealer, false)
	}
	rc.logger.Debug("Dealer turn complete", "score", rc.dealer.Hand.Score(), "bust", rc.dealer.Hand.IsBust())
}

func (rc *RoundController) settle() *RoundResult {
	dh := rc.dealer.Hand
	result := &RoundResult{
		RoundID:         rc.roundID,
		Round:           rc.currentRound(),
		DealerCards:     dh.Cards(),
		DealerScore:     dh.Score(),
		DealerBust:      dh.IsBust(),
		DealerBlackjack: dh.IsBlackjack(),
		DealerPlayed:    rc.played,
	}

	for _, s := range rc.seats {
		p := s.Player
		if !p.IsWagering() {
			continue
		}
		wager := p.Wager()
		st := Settle(p.Hand, dh, wager)
		p.Credit(st.Payout)
		result.Outcomes = append(result.Outcomes, PlayerOutcome{
			Name:      p.Name,
			Wager:     wager,
			Result:    st.Result,
			Payout:    st.Payout,
			Net:       st.Net(wager),
			Cards:     p.Hand.Cards(),
			Score:     p.Hand.Score(),
			Blackjack: p.Hand.IsBlackjack(),
			Bust:      p.Hand.IsBust(),
			Balance:   p.Balance(),
		})
		rc.logger.Debug("Settled", "player", p.Name, "result", st.Result, "wager", wager, "payout", st.Payout, "balance", p.Balance())
	}

	rc.rounds++
	result.CardsRemaining = rc.deck.Remaining()

	rc.dealer.ResetRound()
	for _, s := range rc.seats {
		s.Player.ResetRound()
	}

	rc.bus.Publish(NewRoundResultEvent(*result, rc.clock.Now()))
	return result
}

// draw deals one card into p's hand. A reshuffle triggered by an exhausted
// deck is logged and published.
func (rc *RoundController) draw(p *Participant, hidden bool) deck.Card {
	before := rc.deck.Reshuffles()
	card := rc.deck.Deal()
	if n := rc.deck.Reshuffles(); n != before {
		rc.logger.Info("Deck exhausted mid-round, reshuffled", "round", rc.currentRound(), "reshuffles", n)
		rc.bus.Publish(NewReshuffleEvent("exhausted", n, rc.clock.Now()))
	}
	p.Hand.Add(card)
	rc.bus.Publish(NewCardDealtEvent(p, card, hidden, rc.phase, rc.clock.Now()))
	return card
}

// view builds the snapshot handed to seat i's provider
func (rc *RoundController) view(i int) PlayerView {
	p := rc.seats[i].Player
	v := PlayerView{
		Name:    p.Name,
		Balance: p.Balance(),
		Wager:   p.Wager(),
		Cards:   p.Hand.Cards(),
		Score:   p.Hand.Score(),
		Soft:    p.Hand.IsSoft(),
		Round:   rc.currentRound(),
	}
	if cards := rc.dealer.Hand.Cards(); len(cards) > 0 {
		v.DealerUpCard = cards[0]
	}
	return v
}
