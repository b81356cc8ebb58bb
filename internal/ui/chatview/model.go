package chatview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/presentos/present-cli/internal/chat"
	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/internal/theme"
)

// CloseMsg signals the parent to close the chat panel.
type CloseMsg struct{}

// RespondedMsg arrives when a send round trip has finished, successfully
// or not. The transcript is re-read from the session either way.
type RespondedMsg struct{}

// Model is the assistant chat panel.
type Model struct {
	session  *chat.Session
	input    textarea.Model
	viewport viewport.Model
	sending  bool
	width    int
	height   int
}

// New creates a chat panel over the given session.
func New(session *chat.Session, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Message the assistant..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetWidth(width - 4)
	ta.SetHeight(3)
	ta.CharLimit = 2000
	ta.Focus()

	vpHeight := height - 8 // space for input area + borders
	if vpHeight < 4 {
		vpHeight = 4
	}

	vp := viewport.New(width-4, vpHeight)
	vp.Style = lipgloss.NewStyle()

	m := Model{
		session:  session,
		input:    ta,
		viewport: vp,
		width:    width,
		height:   height,
	}
	m.refreshViewport()
	return m
}

// Init returns the initial command for the chat panel.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the chat panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RespondedMsg:
		m.sending = false
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmds []tea.Cmd

	var taCmd tea.Cmd
	m.input, taCmd = m.input.Update(msg)
	if taCmd != nil {
		cmds = append(cmds, taCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input for the chat panel.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg {
			return CloseMsg{}
		}

	case "ctrl+l":
		session := m.session
		m.sending = false
		return m, func() tea.Msg {
			session.Clear(context.Background())
			return RespondedMsg{}
		}

	case "enter":
		if m.sending {
			return m, nil
		}

		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}

		m.input.Reset()
		m.sending = true
		// The user turn lands in the transcript synchronously inside
		// Send, but the panel shows it right away via the refresh that
		// follows the round trip; meanwhile the spinner line covers it.
		m.refreshViewport()

		session := m.session
		return m, func() tea.Msg {
			session.Send(context.Background(), text)
			return RespondedMsg{}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refreshViewport re-renders the conversation content and scrolls to bottom.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

// renderConversation builds the conversation display string.
func (m Model) renderConversation() string {
	messages := m.session.Messages()

	if len(messages) == 0 && !m.sending {
		return lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("Ask about your day. The assistant sees your current " +
				"backlog, energy level, weather, and upcoming events.")
	}

	var sections []string

	roleStyle := lipgloss.NewStyle().Bold(true)
	userStyle := roleStyle.Foreground(theme.ColorBlue)
	assistantStyle := roleStyle.Foreground(theme.ColorGreen)
	contentStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)

	for _, msg := range messages {
		var label string
		switch msg.Role {
		case model.RoleUser:
			label = userStyle.Render("You:")
		case model.RoleAssistant:
			label = assistantStyle.Render("Assistant:")
		default:
			label = roleStyle.Render(string(msg.Role) + ":")
		}

		sections = append(sections, label)
		sections = append(sections, contentStyle.Render(msg.Content))
		if msg.Role == model.RoleAssistant && msg.Model != "" {
			sections = append(sections, metaStyle.Render(
				fmt.Sprintf("%s · %d tokens", msg.Model, msg.TokensUsed),
			))
		}
		sections = append(sections, "")
	}

	if m.sending {
		sections = append(sections, metaStyle.Render("..."))
	}

	return strings.Join(sections, "\n")
}

// View renders the chat panel.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Assistant")

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(
		strings.Repeat("─", min(m.width-6, 80)),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.viewport.View(),
		separator,
		m.input.View(),
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the chat panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 4)

	vpHeight := height - 8
	if vpHeight < 4 {
		vpHeight = 4
	}
	m.viewport.Width = width - 4
	m.viewport.Height = vpHeight
	m.refreshViewport()
}

// SetValue replaces the input text, used by voice capture routing.
func (m *Model) SetValue(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
}

// Refresh re-reads the transcript from the session.
func (m *Model) Refresh() {
	m.refreshViewport()
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
