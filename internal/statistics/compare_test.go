package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack/internal/game"
)

func sample(nets ...int) Statistics {
	var s Statistics
	for _, net := range nets {
		r := game.Push
		switch {
		case net > 0:
			r = game.Win
		case net < 0:
			r = game.Loss
		}
		s.Add(HandResult{Net: net, Wager: 10, Result: r})
	}
	return s
}

func repeat(n int, nets ...int) []int {
	out := make([]int, 0, n*len(nets))
	for range n {
		out = append(out, nets...)
	}
	return out
}

func TestCompare_IdenticalSamples(t *testing.T) {
	a := sample(10, -10, 10, -10, 0)
	b := sample(10, -10, 10, -10, 0)

	c := Compare(a, b)
	assert.Zero(t, c.Difference)
	assert.Zero(t, c.TStatistic)
	assert.InDelta(t, 1.0, c.PValue, 1e-9)
	assert.False(t, c.Significant(0.05))
	assert.Equal(t, "negligible", c.EffectLabel())
	assert.Less(t, c.CI95Low, 0.0)
	assert.Greater(t, c.CI95High, 0.0)
}

func TestCompare_ClearDifference(t *testing.T) {
	baseline := sample(repeat(50, 10, -10)...)
	challenger := sample(repeat(50, 20, 0)...)

	c := Compare(challenger, baseline)
	assert.InDelta(t, 10.0, c.Difference, 1e-9)
	assert.InDelta(t, 1.4213, c.StdError, 1e-3)
	assert.InDelta(t, 7.036, c.TStatistic, 1e-2)
	assert.InDelta(t, 198.0, c.DF, 1e-6)
	assert.Less(t, c.PValue, 0.001)
	assert.True(t, c.Significant(0.05))
	assert.Equal(t, "large", c.EffectLabel())
	assert.Greater(t, c.CI95Low, 0.0)
	assert.Less(t, c.CI95Low, 10.0)
	assert.Greater(t, c.CI95High, 10.0)

	reversed := Compare(baseline, challenger)
	assert.InDelta(t, -c.Difference, reversed.Difference, 1e-9)
	assert.InDelta(t, c.PValue, reversed.PValue, 1e-12)
}

func TestCompare_NotEnoughData(t *testing.T) {
	c := Compare(sample(10), sample(-10))
	assert.Equal(t, 20.0, c.Difference)
	assert.Zero(t, c.TStatistic)
	assert.Equal(t, 1.0, c.PValue)
	assert.Equal(t, 20.0, c.CI95Low)
	assert.Equal(t, 20.0, c.CI95High)

	c = Compare(Statistics{}, Statistics{})
	assert.Zero(t, c.Difference)
	assert.Equal(t, 1.0, c.PValue)
}

func TestCompare_NoVariance(t *testing.T) {
	c := Compare(sample(10, 10, 10), sample(-10, -10, -10))
	assert.Equal(t, 20.0, c.Difference)
	assert.Zero(t, c.StdError)
	assert.Equal(t, 1.0, c.PValue)
	assert.Zero(t, c.EffectSize)
}

func TestComparison_EffectLabel(t *testing.T) {
	tests := []struct {
		d    float64
		want string
	}{
		{0, "negligible"},
		{-0.19, "negligible"},
		{0.2, "small"},
		{-0.49, "small"},
		{0.5, "medium"},
		{0.79, "medium"},
		{0.8, "large"},
		{-2.5, "large"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Comparison{EffectSize: tt.d}.EffectLabel(), "d=%v", tt.d)
	}
}
