package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// HandResult represents the settled outcome of one wager
type HandResult struct {
	Net        int         // Chips won or lost, payout minus wager
	Wager      int         // Chips put at risk
	Result     game.Result // How the wager settled
	Bust       bool        // Player went over 21
	DealerBust bool        // Dealer went over 21
}

// ResultStats tracks the wagers that settled a particular way
type ResultStats struct {
	Hands  int
	SumNet float64
}

// Statistics tracks per-round results for one player
type Statistics struct {
	Hands   int
	Wagered int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Wins        int
	Losses      int
	Pushes      int
	Blackjacks  int
	Busts       int
	DealerBusts int

	// Indexed by game.Result
	ResultStats [4]ResultStats
}

// FromOutcome converts a settled round line into a HandResult
func FromOutcome(o game.PlayerOutcome, dealerBust bool) HandResult {
	return HandResult{
		Net:        o.Net,
		Wager:      o.Wager,
		Result:     o.Result,
		Bust:       o.Bust,
		DealerBust: dealerBust,
	}
}

// Mean returns the arithmetic mean of all results in chips per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumNet / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	// rounding can push identical samples slightly below zero
	return max(0, (s.SumNet2-float64(s.Hands)*mean*mean)/float64(s.Hands-1))
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of hands won, blackjacks included
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins+s.Blackjacks) / float64(s.Hands)
}

// Return returns net chips as a fraction of chips wagered
func (s *Statistics) Return() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.SumNet / float64(s.Wagered)
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	net := float64(result.Net)
	s.Hands++
	s.Wagered += result.Wager
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	switch result.Result {
	case game.Win:
		s.Wins++
	case game.BlackjackWin:
		s.Blackjacks++
	case game.Push:
		s.Pushes++
	default:
		s.Losses++
	}
	if result.Bust {
		s.Busts++
	}
	if result.DealerBust {
		s.DealerBusts++
	}

	if r := int(result.Result); r >= 0 && r < len(s.ResultStats) {
		s.ResultStats[r].Hands++
		s.ResultStats[r].SumNet += net
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Hands += other.Hands
	s.Wagered += other.Wagered
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.Busts += other.Busts
	s.DealerBusts += other.DealerBusts
	for i := range s.ResultStats {
		s.ResultStats[i].Hands += other.ResultStats[i].Hands
		s.ResultStats[i].SumNet += other.ResultStats[i].SumNet
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ResultMean returns the mean net for hands that settled as r
func (s *Statistics) ResultMean(r game.Result) float64 {
	if int(r) < 0 || int(r) >= len(s.ResultStats) {
		return 0
	}
	rs := s.ResultStats[r]
	if rs.Hands == 0 {
		return 0
	}
	return rs.SumNet / float64(rs.Hands)
}

// IsLedgerBalanced checks that the per-result buckets add up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	sum := 0.0
	for _, rs := range s.ResultStats {
		sum += rs.SumNet
	}
	return math.Abs(s.SumNet-sum) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: total=%.2f does not equal the sum of result buckets", s.SumNet)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if total := s.Wins + s.Losses + s.Pushes + s.Blackjacks; total != s.Hands {
		return fmt.Errorf("result counts (%d) do not match hands count (%d)", total, s.Hands)
	}
	if s.Busts > s.Losses {
		return fmt.Errorf("busts (%d) exceed losses (%d)", s.Busts, s.Losses)
	}
	return nil
}
