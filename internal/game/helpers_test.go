package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// scriptedProvider returns bets and actions from fixed scripts. Once a
// script runs out it bets the last value and stands.
type scriptedProvider struct {
	bets    []int
	actions []Action
	views   []PlayerView
	betIdx  int
	actIdx  int
}

func (s *scriptedProvider) RequestBet(view PlayerView) int {
	if len(s.bets) == 0 {
		return 0
	}
	if s.betIdx >= len(s.bets) {
		return s.bets[len(s.bets)-1]
	}
	bet := s.bets[s.betIdx]
	s.betIdx++
	return bet
}

func (s *scriptedProvider) RequestHitOrStand(view PlayerView) Action {
	s.views = append(s.views, view)
	if s.actIdx >= len(s.actions) {
		return Stand
	}
	a := s.actions[s.actIdx]
	s.actIdx++
	return a
}

// alwaysHit bets a fixed amount and hits until the hand busts
type alwaysHit struct{ bet int }

func (a alwaysHit) RequestBet(PlayerView) int             { return a.bet }
func (a alwaysHit) RequestHitOrStand(PlayerView) Action { return Hit }

// eventRecorder keeps every published event
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(e GameEvent) { r.events = append(r.events, e) }

func (r *eventRecorder) cardsDealtTo(name string) []deck.Card {
	var out []deck.Card
	for _, e := range r.events {
		if cd, ok := e.(CardDealtEvent); ok && cd.Recipient == name {
			out = append(out, cd.Card)
		}
	}
	return out
}

func (r *eventRecorder) ofType(t EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}

func hand(t *testing.T, cards string) *Hand {
	t.Helper()
	parsed, err := deck.ParseCards(cards)
	require.NoError(t, err)
	return NewHand(parsed...)
}

// newTestController builds a controller over a stacked deck
func newTestController(t *testing.T, stacked string, seats []Seat, opts ...RoundOption) (*RoundController, *eventRecorder) {
	t.Helper()
	d, err := deck.NewStackedDeck(randutil.New(1), deck.MustParseCards(stacked)...)
	require.NoError(t, err)
	rec := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)
	rc, err := NewRoundController(d, seats, append([]RoundOption{WithEventBus(bus)}, opts...)...)
	require.NoError(t, err)
	return rc, rec
}
