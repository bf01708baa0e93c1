package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name   string
		player string
		dealer string
		wager  int
		want   Settlement
	}{
		{"player 20 beats dealer 18", "TsQs", "9h9d", 100, Settlement{Win, 200}},
		{"both blackjack push", "AsKd", "AhQc", 100, Settlement{Push, 100}},
		{"player blackjack beats 19", "AsKd", "Th9c", 100, Settlement{BlackjackWin, 250}},
		{"player bust loses to dealer bust", "TsQsKs", "ThQhKh", 100, Settlement{Loss, 0}},
		{"player bust loses to dealer 17", "TsQs5s", "Th7h", 100, Settlement{Loss, 0}},
		{"dealer bust pays even money", "Ts8s", "Th6hKc", 100, Settlement{Win, 200}},
		{"dealer blackjack beats 21", "7s7d7c", "AhKh", 100, Settlement{Loss, 0}},
		{"player blackjack beats three card 21", "AsKd", "7h7d7c", 100, Settlement{BlackjackWin, 250}},
		{"equal scores push", "Ts8s", "Th8h", 100, Settlement{Push, 100}},
		{"lower score loses", "Ts7s", "Th8h", 100, Settlement{Loss, 0}},
		{"blackjack odd wager rounds down", "AsKd", "Th9c", 5, Settlement{BlackjackWin, 12}},
		{"player bust vs dealer blackjack", "TsQs2s", "AhKh", 50, Settlement{Loss, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(hand(t, tt.player), hand(t, tt.dealer), tt.wager)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettlementNet(t *testing.T) {
	assert.Equal(t, 100, Settlement{Result: Win, Payout: 200}.Net(100))
	assert.Equal(t, 0, Settlement{Result: Push, Payout: 100}.Net(100))
	assert.Equal(t, -100, Settlement{Result: Loss}.Net(100))
	assert.Equal(t, 150, Settlement{Result: BlackjackWin, Payout: 250}.Net(100))
}

func TestResultStrings(t *testing.T) {
	assert.Equal(t, "win", Win.String())
	assert.Equal(t, "blackjack", BlackjackWin.String())
	assert.Equal(t, "push", Push.String())
	assert.Equal(t, "loss", Loss.String())
	assert.True(t, BlackjackWin.IsWin())
	assert.False(t, Push.IsWin())
}
