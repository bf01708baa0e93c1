package game

// DealerStandScore is the total at which the dealer stops drawing
const DealerStandScore = 17

// ShouldHit is the dealer's fixed drawing rule: hit below 17, stand on any 17
// including soft 17. A busted hand never hits.
func ShouldHit(h *Hand) bool {
	return h.Score() < DealerStandScore
}
