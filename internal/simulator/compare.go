package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Matchup is two simulations over the same shuffles that differ only in the
// bots' strategy
type Matchup struct {
	Baseline        string
	Challenger      string
	BaselineRun     *Result
	ChallengerRun   *Result
	BaselineStats   statistics.Statistics
	ChallengerStats statistics.Statistics
	Comparison      statistics.Comparison // challenger minus baseline
}

// RunMatchup simulates cfg once per strategy with one shared seed, so both
// runs see the same decks, and compares their per-hand results.
func RunMatchup(ctx context.Context, cfg Config, baseline, challenger string) (*Matchup, error) {
	if baseline == StrategyMixed || challenger == StrategyMixed {
		return nil, errors.New("mixed is not a strategy that can be compared")
	}

	seed, err := randutil.Resolve(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("seeding matchup: %w", err)
	}
	cfg.Seed = seed

	m := &Matchup{Baseline: baseline, Challenger: challenger}
	for _, run := range []struct {
		strategy string
		result   **Result
		stats    *statistics.Statistics
	}{
		{baseline, &m.BaselineRun, &m.BaselineStats},
		{challenger, &m.ChallengerRun, &m.ChallengerStats},
	} {
		c := cfg
		c.Strategy = run.strategy
		result, err := New(c).Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", run.strategy, err)
		}
		*run.result = result
		*run.stats = pooled(result)
	}

	m.Comparison = statistics.Compare(m.ChallengerStats, m.BaselineStats)
	return m, nil
}

// pooled merges every seat of a run into one sample
func pooled(result *Result) statistics.Statistics {
	var all statistics.Statistics
	for _, name := range result.Seats {
		if s, ok := result.Stats.Player(name); ok {
			all.Merge(&s)
		}
	}
	return all
}

// PrintMatchup writes both runs side by side and the comparison between them
func PrintMatchup(w io.Writer, m *Matchup, alpha float64) {
	fmt.Fprintf(w, "\n=== MATCHUP: %s vs %s ===\n", m.Challenger, m.Baseline)
	fmt.Fprintf(w, "Seed: %d\n", m.BaselineRun.Seed)
	fmt.Fprintf(w, "Elapsed: %v\n", (m.BaselineRun.Elapsed + m.ChallengerRun.Elapsed).Round(time.Millisecond))

	for _, side := range []struct {
		label string
		stats statistics.Statistics
		run   *Result
	}{
		{m.Baseline, m.BaselineStats, m.BaselineRun},
		{m.Challenger, m.ChallengerStats, m.ChallengerRun},
	} {
		low, high := side.stats.ConfidenceInterval95()
		fmt.Fprintf(w, "\n%s: %d hands over %d rounds (%d sessions bankrupt)\n",
			side.label, side.stats.Hands, side.run.Rounds, side.run.Bankrupt)
		fmt.Fprintf(w, "  Mean: %.4f chips/hand, 95%% CI [%.4f, %.4f]\n", side.stats.Mean(), low, high)
		fmt.Fprintf(w, "  Return: %.2f%%, win rate: %.1f%%\n", side.stats.Return()*100, side.stats.WinRate()*100)
	}

	c := m.Comparison
	fmt.Fprintf(w, "\n=== COMPARISON ===\n")
	fmt.Fprintf(w, "Difference: %+.4f chips/hand (SE %.4f)\n", c.Difference, c.StdError)
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", c.CI95Low, c.CI95High)
	fmt.Fprintf(w, "t = %.3f, df = %.1f, p = %.4f\n", c.TStatistic, c.DF, c.PValue)
	fmt.Fprintf(w, "Effect size: %.3f (%s)\n", c.EffectSize, c.EffectLabel())

	switch {
	case !c.Significant(alpha):
		fmt.Fprintf(w, "No significant difference at alpha %.2f\n", alpha)
	case c.Difference > 0:
		fmt.Fprintf(w, "%s is significantly better than %s\n", m.Challenger, m.Baseline)
	default:
		fmt.Fprintf(w, "%s is significantly worse than %s\n", m.Challenger, m.Baseline)
	}
}
