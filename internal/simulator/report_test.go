package simulator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/statistics"
)

func TestNewReport(t *testing.T) {
	result, err := New(Config{
		Sessions: 2,
		Rounds:   30,
		Players:  2,
		Strategy: StrategyMixed,
		Seed:     2024,
		Logger:   testLogger(),
	}).Run(context.Background())
	require.NoError(t, err)

	report := NewReport(result)
	assert.Equal(t, int64(2024), report.Seed)
	assert.Equal(t, 2, report.Sessions)
	assert.Equal(t, result.Rounds, report.Rounds)
	require.Len(t, report.Seats, 2)

	for i, seat := range report.Seats {
		stats, ok := result.Stats.Player(seat.Name)
		require.True(t, ok)
		assert.Equal(t, result.Strategies[i], seat.Strategy)
		assert.Equal(t, stats.Hands, seat.Hands)
		assert.Equal(t, stats.Wagered, seat.Wagered)
		assert.InDelta(t, stats.Mean(), seat.Mean, 1e-9)
		assert.Equal(t, seat.Hands, seat.Wins+seat.Losses+seat.Pushes+seat.Blackjacks)
	}
}

func TestNewReportSeatWithoutHands(t *testing.T) {
	report := NewReport(&Result{
		Seats:      []string{"Bot1"},
		Strategies: []string{"stand"},
		Stats:      statistics.NewTracker(),
	})

	require.Len(t, report.Seats, 1)
	assert.Equal(t, SeatReport{Name: "Bot1", Strategy: "stand"}, report.Seats[0])
}

func TestWriteReport(t *testing.T) {
	result, err := New(Config{Sessions: 1, Rounds: 10, Seed: 5, Logger: testLogger()}).Run(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, WriteReport(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, NewReport(result), got)
	assert.Contains(t, string(data), `"dealer_busts"`)
}
