// Package tui prompts human players in the terminal with bubbletea.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Parser turns the submitted text into a value, or explains why it can't
type Parser func(input string) (any, error)

// PromptModel asks one question on a single input line. Enter submits; an
// input the parser rejects shows the error and asks again. Ctrl+C or Esc
// cancel the prompt.
type PromptModel struct {
	title   string
	context []string
	hint    string
	input   textinput.Model
	parse   Parser

	value     any
	errMsg    string
	done      bool
	cancelled bool
}

// NewPromptModel creates a prompt. context lines are shown between the title
// and the input, hint under the input.
func NewPromptModel(title string, context []string, hint string, parse Parser) *PromptModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 32
	ti.Prompt = "> "
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputStyle

	return &PromptModel{
		title:   title,
		context: context,
		hint:    hint,
		input:   ti,
		parse:   parse,
	}
}

// Init initializes the prompt
func (m *PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt
func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			value, err := m.parse(strings.TrimSpace(m.input.Value()))
			if err != nil {
				m.errMsg = err.Error()
				m.input.SetValue("")
				return m, nil
			}
			m.value = value
			m.errMsg = ""
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m *PromptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")
	for _, line := range m.context {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.hint != "" {
		b.WriteString(InfoStyle.Render(m.hint))
		b.WriteString("\n")
	}
	return b.String()
}

// Value returns the parsed answer once the prompt is done
func (m *PromptModel) Value() any { return m.value }

// Done reports whether an answer was accepted
func (m *PromptModel) Done() bool { return m.done }

// Cancelled reports whether the user abandoned the prompt
func (m *PromptModel) Cancelled() bool { return m.cancelled }

// Err returns the message for the last rejected input
func (m *PromptModel) Err() string { return m.errMsg }
