package statistics

import (
	"sync"

	"github.com/lox/blackjack/internal/game"
)

// Tracker subscribes to round results and keeps Statistics per player.
// It is safe to read from another goroutine while a session publishes.
type Tracker struct {
	mu      sync.Mutex
	players map[string]*Statistics
	order   []string
	rounds  int
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{players: make(map[string]*Statistics)}
}

// OnEvent records every outcome in a RoundResultEvent
func (t *Tracker) OnEvent(event game.GameEvent) {
	e, ok := event.(game.RoundResultEvent)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rounds++
	for _, o := range e.Result.Outcomes {
		t.statsFor(o.Name).Add(FromOutcome(o, e.Result.DealerBust))
	}
}

func (t *Tracker) statsFor(name string) *Statistics {
	s, ok := t.players[name]
	if !ok {
		s = &Statistics{}
		t.players[name] = s
		t.order = append(t.order, name)
	}
	return s
}

// Rounds returns the number of settled rounds seen
func (t *Tracker) Rounds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rounds
}

// Players returns player names in the order they first settled a wager
func (t *Tracker) Players() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.order...)
}

// Player returns a copy of the named player's statistics
func (t *Tracker) Player(name string) (Statistics, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.players[name]
	if !ok {
		return Statistics{}, false
	}
	cp := *s
	cp.Values = append([]float64(nil), s.Values...)
	return cp, true
}

// Merge folds other's per-player statistics into t
func (t *Tracker) Merge(other *Tracker) {
	if other == nil || other == t {
		return
	}
	other.mu.Lock()
	defer other.mu.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rounds += other.rounds
	for _, name := range other.order {
		t.statsFor(name).Merge(other.players[name])
	}
}
