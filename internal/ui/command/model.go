package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/presentos/present-cli/internal/dispatch"
	"github.com/presentos/present-cli/internal/theme"
)

// SubmitMsg is emitted when the user submits a command.
type SubmitMsg string

// Model is the free-text command box. It shows the result of the most
// recent dispatch until the next one overwrites it.
type Model struct {
	input   textinput.Model
	result  *dispatch.Result
	pending bool
	width   int
	height  int
}

// New creates a new command box model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "ask anything... (\"add contact John\", \"what's on today?\")"
	ti.Prompt = "> "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command box.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			// The input clears immediately: the command is on its
			// way and the user should not resubmit it by accident.
			m.input.Reset()
			if text != "" && !m.pending {
				m.pending = true
				return m, func() tea.Msg {
					return SubmitMsg(text)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// SetResult records the outcome of the latest dispatch.
func (m *Model) SetResult(r dispatch.Result) {
	m.result = &r
	m.pending = false
}

// SetValue replaces the input text, used by voice capture routing.
func (m *Model) SetValue(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}

// View renders the command box and the last result.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections := []string{
		titleStyle.Render("Command"),
		m.input.View(),
	}

	if m.pending {
		sections = append(sections, "",
			theme.HelpStyle.Render("working..."))
	}

	if m.result != nil {
		sections = append(sections, "", m.renderResult())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// renderResult formats the last dispatch outcome.
func (m Model) renderResult() string {
	if m.result.ErrorMessage != "" {
		return lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render("✗ " + m.result.ErrorMessage)
	}

	var sb strings.Builder
	sb.WriteString(m.result.ResponseText)
	if len(m.result.AgentsInvolved) > 0 {
		sb.WriteString("\n")
		sb.WriteString(theme.HelpStyle.Render(
			"agents: " + strings.Join(m.result.AgentsInvolved, ", "),
		))
	}
	return sb.String()
}

// SetSize updates the command box dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
