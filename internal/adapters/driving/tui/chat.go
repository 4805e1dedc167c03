// Package tui implements the interactive chat session as a Bubble Tea
// program.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
	"github.com/veritas-labs/paperchat-cli/internal/core/ports/driving"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// answerMsg carries a completed ask back into the update loop.
type answerMsg struct {
	question string
	answer   domain.Answer
	err      error
}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	bot       driving.QueryService
	input     textinput.Model
	viewport  viewport.Model
	history   []string
	lengths   []string
	lengthIdx int
	waiting   bool
	ready     bool
}

// New creates a new chat model. defaultLength selects the initially
// active answer length.
func New(bot driving.QueryService, defaultLength string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	m := Model{
		bot:      bot,
		input:    ti,
		viewport: viewport.New(0, 0),
		lengths:  bot.Lengths(),
	}
	for i, name := range m.lengths {
		if name == defaultLength {
			m.lengthIdx = i
		}
	}
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 3 + ih // header, hint, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.viewport.SetContent(strings.Join(m.history, "\n"))
		return m, nil

	case answerMsg:
		m.waiting = false
		m.appendExchange(msg)
		m.viewport.SetContent(strings.Join(m.history, "\n"))
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			return m, m.ask(question, m.lengths[m.lengthIdx])
		case "tab":
			m.lengthIdx = (m.lengthIdx + 1) % len(m.lengths)
			return m, nil
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := titleStyle.Render("Paperchat")
	hint := hintStyle.Render(fmt.Sprintf(
		"answer length: %s (tab to change) | ctrl+c to quit", m.lengths[m.lengthIdx]))
	input := inputBoxStyle.Render(m.input.View())
	if m.waiting {
		input = inputBoxStyle.Render("thinking...")
	}

	return header + "\n" + hint + "\n" + m.viewport.View() + "\n" + input
}

// ask runs the query off the update loop.
func (m Model) ask(question, length string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.bot.Ask(context.Background(), question, length)
		return answerMsg{question: question, answer: answer, err: err}
	}
}

// appendExchange formats one question/answer exchange into the history.
func (m *Model) appendExchange(msg answerMsg) {
	m.history = append(m.history, questionStyle.Render("You: "+msg.question))
	if msg.err != nil {
		m.history = append(m.history, errorStyle.Render("Error: "+msg.err.Error()), "")
		return
	}

	m.history = append(m.history, msg.answer.Text)
	if len(msg.answer.Sources) > 0 {
		m.history = append(m.history, sourceStyle.Render("Sources:"))
		for _, s := range msg.answer.Sources {
			m.history = append(m.history, sourceStyle.Render("  - "+s))
		}
	}
	m.history = append(m.history, "")
}

// Run starts the chat program and blocks until the user quits.
func Run(bot driving.QueryService, defaultLength string) error {
	_, err := tea.NewProgram(New(bot, defaultLength), tea.WithAltScreen()).Run()
	return err
}
