package notifications

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/presentos/present-cli/internal/feed"
	"github.com/presentos/present-cli/internal/keys"
	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/internal/theme"
)

// CloseMsg signals the parent to close the notification panel.
type CloseMsg struct{}

// Model is the notification feed panel: newest first, cursor selection,
// per-item and bulk mark-as-read.
type Model struct {
	feed   *feed.Feed
	keys   *keys.KeyMap
	cursor int
	width  int
	height int
}

// New creates the notification panel over the given feed.
func New(f *feed.Feed, k *keys.KeyMap, width, height int) Model {
	return Model{
		feed:   f,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the notification panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		items := m.feed.All()

		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CloseMsg{} }

		case "j", "down":
			if m.cursor < len(items)-1 {
				m.cursor++
			}

		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}

		case "enter":
			if m.cursor < len(items) {
				m.feed.MarkRead(items[m.cursor].ID)
			}

		case "A":
			m.feed.MarkAllRead()
		}
	}

	return m, nil
}

// View renders the notification panel.
func (m Model) View() string {
	items := m.feed.All()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := fmt.Sprintf("Notifications (%d unread)", m.feed.UnreadCount())

	sections := []string{titleStyle.Render(title)}

	if len(items) == 0 {
		sections = append(sections, theme.HelpStyle.Render("No notifications yet."))
	}

	// Clamp the cursor after the list shrank under it.
	cursor := m.cursor
	if cursor >= len(items) && len(items) > 0 {
		cursor = len(items) - 1
	}

	for i, n := range items {
		sections = append(sections, m.renderItem(n, i == cursor))
	}

	sections = append(sections, "",
		theme.HelpStyle.Render("enter mark read · A mark all read · esc back"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// renderItem formats one feed entry.
func (m Model) renderItem(n model.Notification, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}

	badge := theme.KindStyle(n.Kind).Render(n.Kind)

	msgStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	if n.Read {
		msgStyle = lipgloss.NewStyle().Foreground(theme.ColorGray)
	}

	marker := " "
	if !n.Read {
		marker = theme.UnreadStyle.Render("●")
	}

	line := fmt.Sprintf("%s%s %s %s  %s",
		prefix,
		marker,
		badge,
		msgStyle.Render(n.Message),
		theme.HelpStyle.Render(n.CreatedLabel),
	)

	if selected {
		return lipgloss.NewStyle().Bold(true).Render(line)
	}
	return line
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
