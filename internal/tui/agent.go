package tui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Runner runs a prompt to completion and returns its final state
type Runner func(m *PromptModel) (*PromptModel, error)

// ProgramRunner runs prompts as bubbletea programs on in and out
func ProgramRunner(in io.Reader, out io.Writer) Runner {
	return func(m *PromptModel) (*PromptModel, error) {
		final, err := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
		if err != nil {
			return nil, err
		}
		pm, ok := final.(*PromptModel)
		if !ok {
			return nil, fmt.Errorf("unexpected model %T", final)
		}
		return pm, nil
	}
}

// HumanAgent asks a person at the terminal for every decision. Once a prompt
// is cancelled the agent stops asking: it sits out and stands until the
// session ends.
type HumanAgent struct {
	run         Runner
	logger      *log.Logger
	onInterrupt func()
	interrupted bool
}

// NewHumanAgent creates an agent that prompts through run. onInterrupt, if
// set, is called the first time the user cancels a prompt.
func NewHumanAgent(run Runner, logger *log.Logger, onInterrupt func()) *HumanAgent {
	return &HumanAgent{
		run:         run,
		logger:      logger.WithPrefix("tui"),
		onInterrupt: onInterrupt,
	}
}

// Interrupted reports whether the user cancelled a prompt
func (a *HumanAgent) Interrupted() bool { return a.interrupted }

// RequestBet implements game.DecisionProvider
func (a *HumanAgent) RequestBet(view game.PlayerView) int {
	value, ok := a.ask(NewBetPrompt(view))
	if !ok {
		return 0
	}
	bet := value.(int)
	a.logger.Info("Bet entered", "player", view.Name, "bet", bet)
	return bet
}

// RequestHitOrStand implements game.DecisionProvider
func (a *HumanAgent) RequestHitOrStand(view game.PlayerView) game.Action {
	value, ok := a.ask(NewActionPrompt(view))
	if !ok {
		return game.Stand
	}
	action := value.(game.Action)
	a.logger.Info("Action entered", "player", view.Name, "action", action, "score", view.Score)
	return action
}

// AskContinue asks whether to play another round. It is shaped to be used
// as the session's continue hook.
func (a *HumanAgent) AskContinue(*game.RoundResult) bool {
	value, ok := a.ask(NewContinuePrompt())
	return ok && value.(bool)
}

func (a *HumanAgent) ask(m *PromptModel) (any, bool) {
	if a.interrupted {
		return nil, false
	}
	final, err := a.run(m)
	if err != nil {
		a.logger.Error("Prompt failed", "error", err)
		a.interrupt()
		return nil, false
	}
	if final.Cancelled() || !final.Done() {
		a.logger.Info("Prompt cancelled")
		a.interrupt()
		return nil, false
	}
	return final.Value(), true
}

func (a *HumanAgent) interrupt() {
	if a.interrupted {
		return
	}
	a.interrupted = true
	if a.onInterrupt != nil {
		a.onInterrupt()
	}
}

// SeatConfig is one player entered at seat setup
type SeatConfig struct {
	Name    string
	Balance int
}

// SetupSeats asks how many players are sitting down, then each player's name
// and starting balance. It fails if the user cancels.
func SetupSeats(run Runner) ([]SeatConfig, error) {
	count, err := askOnce(run, NewSeatCountPrompt())
	if err != nil {
		return nil, err
	}

	seats := make([]SeatConfig, 0, count.(int))
	taken := make(map[string]bool)
	for i := 1; i <= count.(int); i++ {
		name, err := askOnce(run, NewNamePrompt(i, taken))
		if err != nil {
			return nil, err
		}
		balance, err := askOnce(run, NewBalancePrompt(name.(string)))
		if err != nil {
			return nil, err
		}
		taken[name.(string)] = true
		seats = append(seats, SeatConfig{Name: name.(string), Balance: balance.(int)})
	}
	return seats, nil
}

// ErrCancelled is returned when the user abandons seat setup
var ErrCancelled = errors.New("setup cancelled")

func askOnce(run Runner, m *PromptModel) (any, error) {
	final, err := run(m)
	if err != nil {
		return nil, err
	}
	if !final.Done() {
		return nil, ErrCancelled
	}
	return final.Value(), nil
}
