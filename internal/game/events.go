package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round events. Subscribers only observe; nothing
// they do feeds back into the round.
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeBetPlaced    EventType = "bet_placed"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypeBlackjack    EventType = "blackjack"
	EventTypePlayerTurn   EventType = "player_turn_end"
	EventTypeDealerReveal EventType = "dealer_reveal"
	EventTypeRoundResult  EventType = "round_result"
	EventTypeReshuffle    EventType = "reshuffle"
	EventTypeSessionEnd   EventType = "session_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a session
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when betting opens for a round
type RoundStartEvent struct {
	RoundID   string
	Round     int
	Players   []string
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundID string, round int, players []string, at time.Time) RoundStartEvent {
	return RoundStartEvent{RoundID: roundID, Round: round, Players: players, timestamp: at}
}

// BetPlacedEvent is published for every player asked to bet. Amount is what
// was accepted; it is 0 when the player sat out or the request was clamped.
type BetPlacedEvent struct {
	Player    string
	Requested int
	Amount    int
	Balance   int
	timestamp time.Time
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }
func (e BetPlacedEvent) Timestamp() time.Time { return e.timestamp }

// Clamped reports whether a non-zero request was rejected
func (e BetPlacedEvent) Clamped() bool { return e.Requested != 0 && e.Amount == 0 }

// NewBetPlacedEvent creates a new bet placed event
func NewBetPlacedEvent(player string, requested, amount, balance int, at time.Time) BetPlacedEvent {
	return BetPlacedEvent{Player: player, Requested: requested, Amount: amount, Balance: balance, timestamp: at}
}

// CardDealtEvent is published for every card leaving the deck. The dealer's
// hole card is marked Hidden; displays should not show it until the reveal.
type CardDealtEvent struct {
	Recipient string
	Kind      PlayKind
	Card      deck.Card
	Hidden    bool
	Phase     Phase
	Hand      []deck.Card
	Score     int
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a new card dealt event
func NewCardDealtEvent(p *Participant, card deck.Card, hidden bool, phase Phase, at time.Time) CardDealtEvent {
	return CardDealtEvent{
		Recipient: p.Name,
		Kind:      p.Kind,
		Card:      card,
		Hidden:    hidden,
		Phase:     phase,
		Hand:      p.Hand.Cards(),
		Score:     p.Hand.Score(),
		timestamp: at,
	}
}

// BlackjackEvent is published when a player's first two cards make 21
type BlackjackEvent struct {
	Player    string
	timestamp time.Time
}

func (e BlackjackEvent) EventType() EventType { return EventTypeBlackjack }
func (e BlackjackEvent) Timestamp() time.Time { return e.timestamp }

// NewBlackjackEvent creates a new blackjack event
func NewBlackjackEvent(player string, at time.Time) BlackjackEvent {
	return BlackjackEvent{Player: player, timestamp: at}
}

// PlayerTurnEndEvent is published when a player stands or busts
type PlayerTurnEndEvent struct {
	Player    string
	Score     int
	Bust      bool
	Hits      int
	timestamp time.Time
}

func (e PlayerTurnEndEvent) EventType() EventType { return EventTypePlayerTurn }
func (e PlayerTurnEndEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerTurnEndEvent creates a new player turn end event
func NewPlayerTurnEndEvent(player string, score int, bust bool, hits int, at time.Time) PlayerTurnEndEvent {
	return PlayerTurnEndEvent{Player: player, Score: score, Bust: bust, Hits: hits, timestamp: at}
}

// DealerRevealEvent is published when the dealer's hole card is turned over.
// WillPlay is false when every wagering player has busted and the dealer
// keeps the hand as dealt.
type DealerRevealEvent struct {
	Cards     []deck.Card
	Score     int
	WillPlay  bool
	timestamp time.Time
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }
func (e DealerRevealEvent) Timestamp() time.Time { return e.timestamp }

// NewDealerRevealEvent creates a new dealer reveal event
func NewDealerRevealEvent(h *Hand, willPlay bool, at time.Time) DealerRevealEvent {
	return DealerRevealEvent{Cards: h.Cards(), Score: h.Score(), WillPlay: willPlay, timestamp: at}
}

// RoundResultEvent is published after settlement with the full round outcome
type RoundResultEvent struct {
	Result    RoundResult
	timestamp time.Time
}

func (e RoundResultEvent) EventType() EventType { return EventTypeRoundResult }
func (e RoundResultEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundResultEvent creates a new round result event
func NewRoundResultEvent(result RoundResult, at time.Time) RoundResultEvent {
	return RoundResultEvent{Result: result, timestamp: at}
}

// ReshuffleEvent is published whenever the deck is rebuilt
type ReshuffleEvent struct {
	Reason     string
	Reshuffles int
	timestamp  time.Time
}

func (e ReshuffleEvent) EventType() EventType { return EventTypeReshuffle }
func (e ReshuffleEvent) Timestamp() time.Time { return e.timestamp }

// NewReshuffleEvent creates a new reshuffle event
func NewReshuffleEvent(reason string, reshuffles int, at time.Time) ReshuffleEvent {
	return ReshuffleEvent{Reason: reason, Reshuffles: reshuffles, timestamp: at}
}

// SessionEndEvent is published once when a session stops
type SessionEndEvent struct {
	Summary   SessionSummary
	timestamp time.Time
}

func (e SessionEndEvent) EventType() EventType { return EventTypeSessionEnd }
func (e SessionEndEvent) Timestamp() time.Time { return e.timestamp }

// NewSessionEndEvent creates a new session end event
func NewSessionEndEvent(summary SessionSummary, at time.Time) SessionEndEvent {
	return SessionEndEvent{Summary: summary, timestamp: at}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delivery is
// synchronous and in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers are not comparable and cannot be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
