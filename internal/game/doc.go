// Package game implements the blackjack round engine.
//
// The main type is RoundController, which runs one round at a time as an
// explicit state machine:
//
//	betting → dealing → player turns → dealer turn → settlement → complete
//
// Players make their decisions through the DecisionProvider interface; the
// dealer follows ShouldHit. Settle maps the final hands and the wager to a
// payout and a Result.
//
// # Basic Usage
//
//	d := deck.NewDeck(randutil.New(42))
//	alice := game.NewPlayer("Alice", 1000)
//	rc, err := game.NewRoundController(d, []game.Seat{{Player: alice, Provider: provider}})
//	if err != nil {
//	    return err
//	}
//	result := rc.PlayRound()
//
// A Session repeats rounds until no player has chips left:
//
//	summary, err := game.NewSession(rc, game.WithMaxRounds(100)).Run(ctx)
//
// # Deterministic Testing
//
// All randomness lives in the deck's *rand.Rand. Seed it with randutil.New
// and supply a scripted DecisionProvider to replay a round exactly. Event
// timestamps come from a quartz.Clock, so tests can use quartz.NewMock.
//
// # Events
//
// Every card dealt, bet placed and round settled is published on an EventBus.
// Subscribers are observers only; the display and statistics packages are
// built on them.
package game
