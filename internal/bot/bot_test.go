package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func view(t *testing.T, cards, up string) game.PlayerView {
	t.Helper()
	h := game.NewHand(deck.MustParseCards(cards)...)
	upCard, err := deck.ParseCard(up)
	require.NoError(t, err)
	return game.PlayerView{
		Name:         "Bot",
		Balance:      500,
		Wager:        10,
		Cards:        h.Cards(),
		Score:        h.Score(),
		Soft:         h.IsSoft(),
		DealerUpCard: upCard,
	}
}

func TestBetSizers(t *testing.T) {
	tests := []struct {
		name    string
		sizer   BetSizer
		balance int
		want    int
	}{
		{"flat", FlatBet(25), 1000, 25},
		{"flat capped at balance", FlatBet(25), 10, 10},
		{"flat broke", FlatBet(25), 0, 0},
		{"fraction", FractionBet{Fraction: 0.1}, 1000, 100},
		{"fraction rounds down", FractionBet{Fraction: 0.1}, 995, 99},
		{"fraction minimum", FractionBet{Fraction: 0.01, Min: 5}, 100, 5},
		{"fraction minimum capped", FractionBet{Fraction: 0.01, Min: 5}, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sizer.Bet(tt.balance))
		})
	}
}

func TestNewResolvesStrategies(t *testing.T) {
	assert.Equal(t, []string{"basic", "dealer", "random", "stand"}, Strategies())

	for _, name := range Strategies() {
		p, err := New(name, FlatBet(10), randutil.New(1), testLogger())
		require.NoError(t, err, name)
		assert.Equal(t, 10, p.RequestBet(game.PlayerView{Balance: 100}))
	}

	_, err := New("martingale", nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "martingale")

	p, err := New(StrategyStand, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, p.RequestBet(game.PlayerView{Balance: 100}), "defaults to a flat 10")
}

func TestStandBot(t *testing.T) {
	b := NewStandBot(FlatBet(10), testLogger())
	assert.Equal(t, game.Stand, b.RequestHitOrStand(view(t, "2s3d", "Th")))
}

func TestDealerBot(t *testing.T) {
	b := NewDealerBot(FlatBet(10), testLogger())
	assert.Equal(t, game.Hit, b.RequestHitOrStand(view(t, "Ts6d", "7h")))
	assert.Equal(t, game.Stand, b.RequestHitOrStand(view(t, "Ts7d", "7h")))
	assert.Equal(t, game.Stand, b.RequestHitOrStand(view(t, "As6d", "7h")), "soft 17 stands")
}

func TestBasicBot(t *testing.T) {
	b := NewBasicBot(FlatBet(10), testLogger())

	tests := []struct {
		cards string
		up    string
		want  game.Action
	}{
		{"Ts7d", "Ah", game.Stand},
		{"Ts6d", "6h", game.Stand},
		{"Ts6d", "7h", game.Hit},
		{"Ts3d", "2h", game.Stand},
		{"Ts2d", "3h", game.Hit},
		{"Ts2d", "4h", game.Stand},
		{"Ts2d", "6h", game.Stand},
		{"Ts2d", "7h", game.Hit},
		{"5s6d", "6h", game.Hit},
		{"As7d", "8h", game.Stand},
		{"As7d", "9h", game.Hit},
		{"As7d", "Ah", game.Hit},
		{"As8d", "Th", game.Stand},
		{"As6d", "5h", game.Hit},
		{"As5d", "Kh", game.Hit},
	}
	for _, tt := range tests {
		t.Run(tt.cards+"_vs_"+tt.up, func(t *testing.T) {
			assert.Equal(t, tt.want, b.RequestHitOrStand(view(t, tt.cards, tt.up)))
		})
	}
}

func TestBasicBotWithoutUpCard(t *testing.T) {
	b := NewBasicBot(FlatBet(10), testLogger())
	v := view(t, "Ts6d", "2h")
	v.DealerUpCard = deck.Card{}
	assert.Equal(t, game.Hit, b.RequestHitOrStand(v))
}

func TestRandomBot(t *testing.T) {
	b := NewRandomBot(FlatBet(10), randutil.New(42), testLogger())

	assert.Equal(t, game.Stand, b.RequestHitOrStand(view(t, "AsKd", "7h")))
	assert.Equal(t, game.Stand, b.RequestHitOrStand(view(t, "7s7d7c", "7h")))

	hits := 0
	for range 1000 {
		if b.RequestHitOrStand(view(t, "Ts2d", "7h")) == game.Hit {
			hits++
		}
	}
	assert.InDelta(t, 500, hits, 100)
}

func TestRandomBotIsReproducible(t *testing.T) {
	a := NewRandomBot(FlatBet(10), randutil.New(7), testLogger())
	b := NewRandomBot(FlatBet(10), randutil.New(7), testLogger())
	v := view(t, "Ts2d", "7h")
	for range 50 {
		assert.Equal(t, a.RequestHitOrStand(v), b.RequestHitOrStand(v))
	}
}

func TestBotsPlayARound(t *testing.T) {
	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			p, err := New(name, FlatBet(50), randutil.New(3), testLogger())
			require.NoError(t, err)

			rc, err := game.NewRoundController(deck.NewDeck(randutil.New(9)),
				[]game.Seat{{Player: game.NewPlayer(name, 1000), Provider: p}})
			require.NoError(t, err)

			result := rc.PlayRound()
			out, ok := result.Outcome(name)
			require.True(t, ok)
			assert.Equal(t, 50, out.Wager)
			assert.Equal(t, 950+out.Payout, out.Balance)
		})
	}
}
