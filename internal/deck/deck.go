package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck
const Size = 52

// Deck is a single 52-card deck dealt from a cursor.
//
// Cards before the cursor have been dealt and are never dealt again until the
// deck is reshuffled. When the deck runs out, Deal reshuffles a fresh 52 cards
// and keeps going, so callers never observe an exhausted deck.
type Deck struct {
	cards      [Size]Card
	next       int
	rng        *rand.Rand
	reshuffles int
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := NewOrderedDeck(rng)
	d.Shuffle()
	return d
}

// NewOrderedDeck creates a deck in reference order (suit by suit, Two to Ace)
// without shuffling it. The RNG is kept for later shuffles.
func NewOrderedDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.fill()
	return d
}

// NewStackedDeck creates a deck whose first cards are top, in order. The
// remaining cards follow in reference order, shuffled if rng is non-nil.
// Scenario tests use it to deal known hands.
func NewStackedDeck(rng *rand.Rand, top ...Card) (*Deck, error) {
	d := &Deck{rng: rng}
	used := make(map[Card]bool, len(top))
	for i, c := range top {
		if !c.Rank.Valid() {
			return nil, fmt.Errorf("card %d: %w", i, ErrInvalidRank)
		}
		if !c.Suit.Valid() {
			return nil, fmt.Errorf("card %d: %w", i, ErrInvalidSuit)
		}
		if used[c] {
			return nil, fmt.Errorf("card %v stacked twice", c)
		}
		used[c] = true
		d.cards[i] = c
	}
	rest := d.cards[len(top):len(top)]
	for _, suit := range Suits {
		for _, rank := range Ranks {
			if c := NewCard(rank, suit); !used[c] {
				rest = append(rest, c)
			}
		}
	}
	if rng != nil {
		rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	}
	return d, nil
}

// MustStackedDeck is like NewStackedDeck but panics on error. Intended for tests.
func MustStackedDeck(rng *rand.Rand, top ...Card) *Deck {
	d, err := NewStackedDeck(rng, top...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Deck) fill() {
	i := 0
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.next = 0
}

// Shuffle shuffles the deck using Fisher-Yates and resets the cursor
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Reshuffle rebuilds all 52 cards and shuffles them
func (d *Deck) Reshuffle() {
	d.fill()
	d.Shuffle()
	d.reshuffles++
}

// Deal returns the next card, reshuffling first if the deck is exhausted
func (d *Deck) Deal() Card {
	if d.next >= len(d.cards) {
		d.Reshuffle()
	}
	card := d.cards[d.next]
	d.next++
	return card
}

// Remaining returns the number of cards left to deal
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// IsEmpty returns true if every card has been dealt
func (d *Deck) IsEmpty() bool {
	return d.next >= len(d.cards)
}

// Reshuffles returns how many times the deck has been rebuilt
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}

// Dealt returns a copy of the cards dealt since the last shuffle
func (d *Deck) Dealt() []Card {
	out := make([]Card, d.next)
	copy(out, d.cards[:d.next])
	return out
}

// Cards returns a copy of the full deck order, dealt and undealt
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards[:])
	return out
}
