package simulator

import (
	"github.com/lox/blackjack/internal/fileutil"
)

// SeatReport is one seat's results in a written report
type SeatReport struct {
	Name        string  `json:"name"`
	Strategy    string  `json:"strategy"`
	Hands       int     `json:"hands"`
	Wagered     int     `json:"wagered"`
	Net         float64 `json:"net"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	CI95Low     float64 `json:"ci95_low"`
	CI95High    float64 `json:"ci95_high"`
	Return      float64 `json:"return"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Pushes      int     `json:"pushes"`
	Blackjacks  int     `json:"blackjacks"`
	Busts       int     `json:"busts"`
	DealerBusts int     `json:"dealer_busts"`
}

// Report is the JSON form of a Result
type Report struct {
	Seed      int64        `json:"seed"`
	Sessions  int          `json:"sessions"`
	Rounds    int          `json:"rounds"`
	Bankrupt  int          `json:"bankrupt"`
	ElapsedMS int64        `json:"elapsed_ms"`
	Seats     []SeatReport `json:"seats"`
}

// NewReport flattens result into a Report. Seats that never wagered are
// reported with zero hands.
func NewReport(result *Result) Report {
	r := Report{
		Seed:      result.Seed,
		Sessions:  result.Sessions,
		Rounds:    result.Rounds,
		Bankrupt:  result.Bankrupt,
		ElapsedMS: result.Elapsed.Milliseconds(),
		Seats:     make([]SeatReport, 0, len(result.Seats)),
	}

	for i, name := range result.Seats {
		seat := SeatReport{Name: name}
		if i < len(result.Strategies) {
			seat.Strategy = result.Strategies[i]
		}
		if stats, ok := result.Stats.Player(name); ok {
			low, high := stats.ConfidenceInterval95()
			seat.Hands = stats.Hands
			seat.Wagered = stats.Wagered
			seat.Net = stats.SumNet
			seat.Mean = stats.Mean()
			seat.StdDev = stats.StdDev()
			seat.CI95Low, seat.CI95High = low, high
			seat.Return = stats.Return()
			seat.Wins = stats.Wins
			seat.Losses = stats.Losses
			seat.Pushes = stats.Pushes
			seat.Blackjacks = stats.Blackjacks
			seat.Busts = stats.Busts
			seat.DealerBusts = stats.DealerBusts
		}
		r.Seats = append(r.Seats, seat)
	}
	return r
}

// WriteReport writes result to filename as JSON, replacing it atomically
func WriteReport(filename string, result *Result) error {
	return fileutil.WriteJSON(filename, NewReport(result))
}
