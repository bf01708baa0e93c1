// Package display renders table events as styled text for a terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

const hiddenCard = "[hidden]"

// Option configures a Renderer
type Option func(*Renderer)

// WithProfile forces a colour profile instead of detecting one from the writer
func WithProfile(p termenv.Profile) Option {
	return func(r *Renderer) { r.profile = &p }
}

// WithClock sets the clock used for the dealer pause
func WithClock(clock quartz.Clock) Option {
	return func(r *Renderer) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithDealerDelay pauses after each dealer card once the hole card is shown
func WithDealerDelay(d time.Duration) Option {
	return func(r *Renderer) { r.dealerDelay = max(d, 0) }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger.WithPrefix("display")
		}
	}
}

// WithLanguage sets the locale used to group chip amounts
func WithLanguage(tag language.Tag) Option {
	return func(r *Renderer) { r.printer = message.NewPrinter(tag) }
}

// Renderer writes a running commentary of the table. It subscribes to the
// round event bus and never feeds anything back into the round.
type Renderer struct {
	w           io.Writer
	profile     *termenv.Profile
	styles      Styles
	printer     *message.Printer
	clock       quartz.Clock
	dealerDelay time.Duration
	logger      *log.Logger
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:       w,
		printer: message.NewPrinter(language.English),
		clock:   quartz.NewReal(),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	var lr *lipgloss.Renderer
	if r.profile != nil {
		lr = lipgloss.NewRenderer(w, termenv.WithProfile(*r.profile))
	} else {
		lr = lipgloss.NewRenderer(w)
	}
	r.styles = NewStyles(lr)
	return r
}

// Money formats whole chips with digit grouping, e.g. "$1,250"
func (r *Renderer) Money(chips int) string {
	if chips < 0 {
		return r.printer.Sprintf("-$%d", -chips)
	}
	return r.printer.Sprintf("$%d", chips)
}

// SignedMoney formats a net amount with an explicit sign, e.g. "+$150"
func (r *Renderer) SignedMoney(chips int) string {
	if chips > 0 {
		return "+" + r.Money(chips)
	}
	return r.Money(chips)
}

// OnEvent renders one event
func (r *Renderer) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		r.roundStart(e)
	case game.BetPlacedEvent:
		r.betPlaced(e)
	case game.CardDealtEvent:
		r.cardDealt(e)
	case game.BlackjackEvent:
		r.println(r.styles.Success.Render(e.Player + " has BLACKJACK!"))
	case game.PlayerTurnEndEvent:
		r.playerTurnEnd(e)
	case game.DealerRevealEvent:
		r.dealerReveal(e)
	case game.RoundResultEvent:
		r.roundResult(e.Result)
	case game.ReshuffleEvent:
		r.println(r.styles.Warning.Render(fmt.Sprintf("Deck reshuffled (%s)", e.Reason)))
	case game.SessionEndEvent:
		r.sessionEnd(e.Summary)
	default:
		r.logger.Debug("Ignoring event", "type", event.EventType())
	}
}

func (r *Renderer) roundStart(e game.RoundStartEvent) {
	r.println("")
	r.println(r.styles.Header.Render(fmt.Sprintf("Round %d", e.Round)))
	r.println(r.styles.Info.Render("Players: " + strings.Join(e.Players, ", ")))
}

func (r *Renderer) betPlaced(e game.BetPlacedEvent) {
	switch {
	case e.Clamped():
		r.println(r.styles.Warning.Render(fmt.Sprintf("%s's bet of %s is not allowed with %s, sitting out",
			e.Player, r.Money(e.Requested), r.Money(e.Balance))))
	case e.Amount == 0:
		r.println(r.styles.Info.Render(e.Player + " sits out this round"))
	default:
		r.println(fmt.Sprintf("%s bets %s (balance %s)", r.styles.Player.Render(e.Player), r.Money(e.Amount), r.Money(e.Balance)))
	}
}

func (r *Renderer) cardDealt(e game.CardDealtEvent) {
	if e.Kind == game.Dealer {
		switch {
		case e.Hidden:
			r.println(fmt.Sprintf("%s: %s", r.styles.Dealer.Render("Dealer"), r.partialHand(e.Hand)))
		case e.Phase == game.PhaseDealerTurn:
			r.println(fmt.Sprintf("%s draws %s: %s", r.styles.Dealer.Render("Dealer"), r.card(e.Card), r.hand(e.Hand, e.Score)))
			r.pause()
		}
		return
	}

	name := r.styles.Player.Render(e.Recipient)
	switch {
	case e.Phase == game.PhasePlayerTurns:
		r.println(fmt.Sprintf("%s hits and draws %s: %s", name, r.card(e.Card), r.hand(e.Hand, e.Score)))
	case len(e.Hand) == 2:
		r.println(fmt.Sprintf("%s: %s", name, r.hand(e.Hand, e.Score)))
	}
}

func (r *Renderer) playerTurnEnd(e game.PlayerTurnEndEvent) {
	if e.Bust {
		r.println(r.styles.Error.Render(fmt.Sprintf("%s busts with %d", e.Player, e.Score)))
		return
	}
	r.println(fmt.Sprintf("%s stands on %d", e.Player, e.Score))
}

func (r *Renderer) dealerReveal(e game.DealerRevealEvent) {
	r.println(fmt.Sprintf("%s reveals: %s", r.styles.Dealer.Render("Dealer"), r.hand(e.Cards, e.Score)))
	if !e.WillPlay {
		r.println(r.styles.Info.Render("All players busted, dealer does not need to play"))
		return
	}
	r.pause()
}

func (r *Renderer) roundResult(res game.RoundResult) {
	dealer := r.hand(res.DealerCards, res.DealerScore)
	if res.DealerBust {
		dealer += " " + r.styles.Error.Render("BUST")
	}
	r.println(fmt.Sprintf("%s final: %s", r.styles.Dealer.Render("Dealer"), dealer))

	if len(res.Outcomes) == 0 {
		r.println(r.styles.Info.Render("No wagers this round"))
		return
	}
	for _, o := range res.Outcomes {
		style := r.styles.Info
		switch {
		case o.Result.IsWin():
			style = r.styles.Success
		case o.Result == game.Loss:
			style = r.styles.Error
		}
		r.println(fmt.Sprintf("%s %s %s (balance %s)",
			r.styles.Player.Render(o.Name+":"),
			style.Render(describe(o)),
			r.SignedMoney(o.Net),
			r.Money(o.Balance)))
	}
}

func describe(o game.PlayerOutcome) string {
	switch {
	case o.Result == game.BlackjackWin:
		return "wins with blackjack"
	case o.Result == game.Win:
		return fmt.Sprintf("wins with %d", o.Score)
	case o.Result == game.Push:
		return fmt.Sprintf("pushes on %d", o.Score)
	case o.Bust:
		return "busted"
	default:
		return fmt.Sprintf("loses with %d", o.Score)
	}
}

func (r *Renderer) sessionEnd(s game.SessionSummary) {
	r.println("")
	r.println(r.styles.Header.Render("Final Statistics"))
	r.println(fmt.Sprintf("Rounds played: %d", s.Rounds))
	r.println(fmt.Sprintf("Cards remaining in deck: %d", s.CardsRemaining))
	if s.Reshuffles > 0 {
		r.println(fmt.Sprintf("Reshuffles: %d", s.Reshuffles))
	}
	for _, p := range s.Players {
		r.println(fmt.Sprintf("%s final balance: %s (%s)", r.styles.Player.Render(p.Name), r.Money(p.Final), r.SignedMoney(p.Net())))
	}
	switch s.Reason {
	case game.StopBankrupt:
		r.println(r.styles.Warning.Render("All players are out of chips. Game over!"))
	case game.StopCancelled:
		r.println(r.styles.Info.Render("Game interrupted"))
	default:
		r.println(r.styles.Info.Render("Thanks for playing!"))
	}
}

func (r *Renderer) card(c deck.Card) string {
	if c.IsRed() {
		return r.styles.RedCard.Render(c.String())
	}
	return r.styles.BlackCard.Render(c.String())
}

func (r *Renderer) cards(cs []deck.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = r.card(c)
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) hand(cs []deck.Card, score int) string {
	return fmt.Sprintf("%s (%d)", r.cards(cs), score)
}

// partialHand shows the dealer's up card with the hole card face down
func (r *Renderer) partialHand(cs []deck.Card) string {
	if len(cs) == 0 {
		return r.styles.Hidden.Render(hiddenCard)
	}
	return r.card(cs[0]) + " " + r.styles.Hidden.Render(hiddenCard)
}

func (r *Renderer) pause() {
	if r.dealerDelay <= 0 {
		return
	}
	timer := r.clock.NewTimer(r.dealerDelay, "display", "dealer")
	<-timer.C
}

func (r *Renderer) println(line string) {
	if _, err := fmt.Fprintln(r.w, line); err != nil {
		r.logger.Warn("Failed to write output", "error", err)
	}
}
