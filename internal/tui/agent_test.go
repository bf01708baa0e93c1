package tui

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// scriptedRunner answers each prompt with the next line; "^C" cancels
func scriptedRunner(lines ...string) (Runner, *[]string) {
	var titles []string
	return func(m *PromptModel) (*PromptModel, error) {
		titles = append(titles, m.title)
		for len(lines) > 0 {
			line := lines[0]
			lines = lines[1:]
			if line == "^C" {
				m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
			} else {
				submit(m, line)
			}
			if m.Done() || m.Cancelled() {
				break
			}
		}
		return m, nil
	}, &titles
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestHumanAgent(t *testing.T) {
	run, titles := scriptedRunner("abc", "75", "h", "s", "")
	agent := NewHumanAgent(run, testLogger(), nil)
	view := game.PlayerView{Name: "Alice", Balance: 100}

	assert.Equal(t, 75, agent.RequestBet(view))
	assert.Equal(t, game.Hit, agent.RequestHitOrStand(view))
	assert.Equal(t, game.Stand, agent.RequestHitOrStand(view))
	assert.True(t, agent.AskContinue(nil))
	assert.False(t, agent.Interrupted())
	assert.Len(t, *titles, 4)
}

func TestHumanAgentInterrupt(t *testing.T) {
	interrupts := 0
	run, titles := scriptedRunner("^C", "50")
	agent := NewHumanAgent(run, testLogger(), func() { interrupts++ })
	view := game.PlayerView{Name: "Alice", Balance: 100}

	assert.Equal(t, 0, agent.RequestBet(view))
	assert.True(t, agent.Interrupted())
	assert.Equal(t, 1, interrupts)

	// no more prompts once interrupted
	assert.Equal(t, 0, agent.RequestBet(view))
	assert.Equal(t, game.Stand, agent.RequestHitOrStand(view))
	assert.False(t, agent.AskContinue(nil))
	assert.Len(t, *titles, 1)
	assert.Equal(t, 1, interrupts)
}

func TestHumanAgentRunnerError(t *testing.T) {
	agent := NewHumanAgent(func(*PromptModel) (*PromptModel, error) {
		return nil, errors.New("no tty")
	}, testLogger(), nil)

	assert.Equal(t, game.Stand, agent.RequestHitOrStand(game.PlayerView{}))
	assert.True(t, agent.Interrupted())
}

func TestHumanAgentPlaysARound(t *testing.T) {
	run, _ := scriptedRunner("100", "s")
	agent := NewHumanAgent(run, testLogger(), nil)

	seats := []game.Seat{{Player: game.NewPlayer("Alice", 1000), Provider: agent}}
	rc, err := game.NewRoundController(newDeck(t, "TsQs9h9d"), seats)
	require.NoError(t, err)

	result := rc.PlayRound()
	out, ok := result.Outcome("Alice")
	require.True(t, ok)
	assert.Equal(t, game.Win, out.Result)
	assert.Equal(t, 1100, out.Balance)
}

func TestSetupSeats(t *testing.T) {
	run, _ := scriptedRunner("2", "", "", "Player1", "Carol", "250")
	seats, err := SetupSeats(run)
	require.NoError(t, err)

	assert.Equal(t, []SeatConfig{
		{Name: "Player1", Balance: DefaultBalance},
		{Name: "Carol", Balance: 250},
	}, seats)
}

func TestSetupSeatsDefaultsToOnePlayer(t *testing.T) {
	run, _ := scriptedRunner("7", "Dana", "500")
	seats, err := SetupSeats(run)
	require.NoError(t, err)
	assert.Equal(t, []SeatConfig{{Name: "Dana", Balance: 500}}, seats)
}

func TestSetupSeatsCancelled(t *testing.T) {
	run, _ := scriptedRunner("1", "^C")
	_, err := SetupSeats(run)
	require.ErrorIs(t, err, ErrCancelled)
}

func newDeck(t *testing.T, stacked string) *deck.Deck {
	t.Helper()
	d, err := deck.NewStackedDeck(randutil.New(1), deck.MustParseCards(stacked)...)
	require.NoError(t, err)
	return d
}
