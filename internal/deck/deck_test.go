package deck

import (
	"testing"

	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedDeckHasEveryCardOnce(t *testing.T) {
	t.Parallel()
	d := NewOrderedDeck(randutil.New(1))

	seen := make(map[Card]bool, Size)
	for _, c := range d.Cards() {
		require.True(t, c.Rank.Valid(), "invalid rank in %v", c)
		require.True(t, c.Suit.Valid(), "invalid suit in %v", c)
		require.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	assert.Len(t, seen, Size)
	assert.Equal(t, NewCard(Two, Spades), d.Cards()[0])
	assert.Equal(t, NewCard(Ace, Clubs), d.Cards()[Size-1])
}

func TestShuffledDeckIsPermutation(t *testing.T) {
	t.Parallel()
	for seed := int64(0); seed < 20; seed++ {
		d := NewDeck(randutil.New(seed))
		seen := make(map[Card]bool, Size)
		for _, c := range d.Cards() {
			seen[c] = true
		}
		require.Len(t, seen, Size, "seed %d", seed)
	}
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	t.Parallel()
	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	c := NewDeck(randutil.New(43))

	assert.Equal(t, a.Cards(), b.Cards())
	assert.NotEqual(t, a.Cards(), c.Cards())
	assert.NotEqual(t, NewOrderedDeck(nil).Cards(), a.Cards())
}

func TestDealAdvancesCursor(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(7))
	order := d.Cards()

	seen := make(map[Card]bool, Size)
	for i := 0; i < Size; i++ {
		require.Equal(t, Size-i, d.Remaining())
		card := d.Deal()
		require.Equal(t, order[i], card)
		require.False(t, seen[card], "card %v dealt twice", card)
		seen[card] = true
	}
	assert.Equal(t, 0, d.Remaining())
	assert.True(t, d.IsEmpty())
	assert.Len(t, d.Dealt(), Size)
	assert.Equal(t, 0, d.Reshuffles())
}

func TestDealFromExhaustedDeckReshuffles(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(9))
	for i := 0; i < Size; i++ {
		d.Deal()
	}
	require.Equal(t, 0, d.Remaining())

	card := d.Deal()
	assert.False(t, card.IsZero())
	assert.Equal(t, Size-1, d.Remaining())
	assert.Equal(t, 1, d.Reshuffles())
	assert.Equal(t, []Card{card}, d.Dealt())
}

func TestReshuffleRestoresFullDeck(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(3))
	for i := 0; i < 10; i++ {
		d.Deal()
	}
	d.Reshuffle()

	assert.Equal(t, Size, d.Remaining())
	assert.Empty(t, d.Dealt())
	seen := make(map[Card]bool, Size)
	for _, c := range d.Cards() {
		seen[c] = true
	}
	assert.Len(t, seen, Size)
}

func TestShuffleResetsCursor(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(5))
	d.Deal()
	d.Deal()
	d.Shuffle()
	assert.Equal(t, Size, d.Remaining())
}

func TestStackedDeckDealsTopCardsFirst(t *testing.T) {
	t.Parallel()
	top := MustParseCards("AsKhTd")
	d, err := NewStackedDeck(randutil.New(1), top...)
	require.NoError(t, err)

	for _, want := range top {
		assert.Equal(t, want, d.Deal())
	}
	seen := make(map[Card]bool, Size)
	for _, c := range d.Cards() {
		seen[c] = true
	}
	assert.Len(t, seen, Size)
}

func TestStackedDeckRejectsDuplicates(t *testing.T) {
	t.Parallel()
	_, err := NewStackedDeck(nil, MustParseCards("AsAs")...)
	assert.Error(t, err)
}

func TestStackedDeckRejectsInvalidCards(t *testing.T) {
	t.Parallel()
	_, err := NewStackedDeck(nil, Card{Rank: 1, Suit: Spades})
	assert.ErrorIs(t, err, ErrInvalidRank)
}
