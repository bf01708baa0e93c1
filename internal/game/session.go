package game

import (
	"context"

	"github.com/lox/blackjack/internal/gameid"
)

// StopReason says why a session ended
type StopReason int

const (
	// StopBankrupt means no player has chips left
	StopBankrupt StopReason = iota
	// StopMaxRounds means the configured round limit was reached
	StopMaxRounds
	// StopDeclined means the continue hook asked to stop
	StopDeclined
	// StopCancelled means the context was cancelled
	StopCancelled
)

// String returns the string representation of a stop reason
func (r StopReason) String() string {
	switch r {
	case StopBankrupt:
		return "bankrupt"
	case StopMaxRounds:
		return "max_rounds"
	case StopDeclined:
		return "declined"
	case StopCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// PlayerBalance records a player's chips at the start and end of a session
type PlayerBalance struct {
	Name     string
	Starting int
	Final    int
}

// Net returns the change in balance over the session
func (b PlayerBalance) Net() int {
	return b.Final - b.Starting
}

// SessionSummary is the end-of-session report
type SessionSummary struct {
	SessionID      string
	Rounds         int
	CardsRemaining int
	Reshuffles     int
	Players        []PlayerBalance
	Reason         StopReason
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithMaxRounds stops the session after n rounds. Zero means no limit.
func WithMaxRounds(n int) SessionOption {
	return func(s *Session) {
		if n >= 0 {
			s.maxRounds = n
		}
	}
}

// WithContinue installs a hook asked after every round whether to play on.
// It is only consulted while some player can still bet.
func WithContinue(fn func(result *RoundResult) bool) SessionOption {
	return func(s *Session) { s.continueFn = fn }
}

// WithSessionID overrides the generated session ID
func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Session repeats rounds on one controller until a stop condition holds.
// The end of a session is decided here, never by the round state machine.
type Session struct {
	id         string
	controller *RoundController
	maxRounds  int
	continueFn func(result *RoundResult) bool
	starting   map[string]int
}

// NewSession creates a session over rc, recording starting balances
func NewSession(rc *RoundController, opts ...SessionOption) *Session {
	s := &Session{
		id:         gameid.Generate(),
		controller: rc,
		starting:   make(map[string]int),
	}
	for _, p := range rc.Players() {
		s.starting[p.Name] = p.Balance()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session ID
func (s *Session) ID() string { return s.id }

// Run plays rounds until no player has chips, the round limit is reached,
// the continue hook declines, or ctx is cancelled. Cancellation is only
// observed between rounds and is returned as ctx.Err() alongside the summary.
func (s *Session) Run(ctx context.Context) (SessionSummary, error) {
	rc := s.controller
	logger := rc.logger.WithPrefix("session").With("sessionID", s.id)
	logger.Info("Session starting", "players", len(rc.seats), "maxRounds", s.maxRounds)

	var (
		reason StopReason
		err    error
	)
	played := 0
	for {
		if !rc.CanContinue() {
			reason = StopBankrupt
			break
		}
		if s.maxRounds > 0 && played >= s.maxRounds {
			reason = StopMaxRounds
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			reason, err = StopCancelled, ctxErr
			break
		}

		result := rc.PlayRound()
		played++

		if s.continueFn != nil && rc.CanContinue() && !s.continueFn(result) {
			reason = StopDeclined
			break
		}
	}

	summary := s.summary(reason)
	logger.Info("Session finished", "rounds", summary.Rounds, "reason", reason)
	rc.bus.Publish(NewSessionEndEvent(summary, rc.clock.Now()))
	return summary, err
}

func (s *Session) summary(reason StopReason) SessionSummary {
	rc := s.controller
	summary := SessionSummary{
		SessionID:      s.id,
		Rounds:         rc.Rounds(),
		CardsRemaining: rc.deck.Remaining(),
		Reshuffles:     rc.deck.Reshuffles(),
		Reason:         reason,
	}
	for _, p := range rc.Players() {
		summary.Players = append(summary.Players, PlayerBalance{
			Name:     p.Name,
			Starting: s.starting[p.Name],
			Final:    p.Balance(),
		})
	}
	return summary
}
