package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/presentos/present-cli/internal/agg"
	"github.com/presentos/present-cli/internal/keys"
	"github.com/presentos/present-cli/internal/theme"
)

// Card indexes for the focusable dashboard cards, in tab order.
const (
	cardTasks = iota
	cardEvents
	cardEmails
	cardContacts
	cardAvatars
	cardCount
)

var cardTitles = [cardCount]string{
	"Tasks",
	"Today",
	"Inbox",
	"Contacts",
	"Avatars",
}

// Model is the main dashboard: one card per backend collection plus a
// weather and context strip. Tab cycles the focused card; h/l page the
// focused card's collection.
type Model struct {
	agg    *agg.Aggregator
	keys   *keys.KeyMap
	focus  int
	width  int
	height int
}

// New creates a dashboard over the given aggregator.
func New(a *agg.Aggregator, k *keys.KeyMap, width, height int) Model {
	return Model{
		agg:    a,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.focus = (m.focus + 1) % cardCount

		case "shift+tab":
			m.focus = (m.focus + cardCount - 1) % cardCount

		case "l", "right":
			m.pager(m.focus).next()

		case "h", "left":
			m.pager(m.focus).prev()
		}
	}

	return m, nil
}

// pagerFuncs adapts the focused card's collection to a uniform paging pair.
type pagerFuncs struct {
	next func()
	prev func()
}

func (m Model) pager(card int) pagerFuncs {
	switch card {
	case cardTasks:
		return pagerFuncs{m.agg.Tasks.NextPage, m.agg.Tasks.PrevPage}
	case cardEvents:
		return pagerFuncs{m.agg.Events.NextPage, m.agg.Events.PrevPage}
	case cardEmails:
		return pagerFuncs{m.agg.Emails.NextPage, m.agg.Emails.PrevPage}
	case cardContacts:
		return pagerFuncs{m.agg.Contacts.NextPage, m.agg.Contacts.PrevPage}
	default:
		return pagerFuncs{m.agg.Avatars.NextPage, m.agg.Avatars.PrevPage}
	}
}

// View renders the dashboard.
func (m Model) View() string {
	cardWidth := m.width/2 - 2
	if cardWidth < 30 {
		cardWidth = m.width - 4
	}

	cards := [cardCount]string{
		m.renderCard(cardTasks, cardWidth, m.renderTasks()),
		m.renderCard(cardEvents, cardWidth, m.renderEvents()),
		m.renderCard(cardEmails, cardWidth, m.renderEmails()),
		m.renderCard(cardContacts, cardWidth, m.renderContacts()),
		m.renderCard(cardAvatars, cardWidth, m.renderAvatars()),
	}

	contextStrip := m.renderContextStrip(cardWidth)

	left := lipgloss.JoinVertical(lipgloss.Left,
		cards[cardTasks], cards[cardEmails], cards[cardAvatars])
	right := lipgloss.JoinVertical(lipgloss.Left,
		contextStrip, cards[cardEvents], cards[cardContacts])

	if cardWidth == m.width-4 {
		// Narrow terminal: single column.
		return lipgloss.JoinVertical(lipgloss.Left,
			contextStrip,
			cards[cardTasks], cards[cardEvents], cards[cardEmails],
			cards[cardContacts], cards[cardAvatars])
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderCard wraps body in a card frame with title and page dots.
func (m Model) renderCard(card int, width int, body string) string {
	style := theme.CardStyle
	if card == m.focus {
		style = theme.ActiveCardStyle
	}

	title := theme.CardTitleStyle.Render(cardTitles[card])

	sections := []string{title, body}
	if dots := m.renderDots(card); dots != "" {
		sections = append(sections, dots)
	}

	return style.
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderDots renders the paginator dots for cards spanning more than
// one page.
func (m Model) renderDots(card int) string {
	var page, pages int
	switch card {
	case cardTasks:
		page, pages = m.agg.Tasks.Page(), m.agg.Tasks.PageCount()
	case cardEvents:
		page, pages = m.agg.Events.Page(), m.agg.Events.PageCount()
	case cardEmails:
		page, pages = m.agg.Emails.Page(), m.agg.Emails.PageCount()
	case cardContacts:
		page, pages = m.agg.Contacts.Page(), m.agg.Contacts.PageCount()
	case cardAvatars:
		page, pages = m.agg.Avatars.Page(), m.agg.Avatars.PageCount()
	}

	if pages <= 1 {
		return ""
	}

	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = theme.UnreadStyle.Render("•")
	p.InactiveDot = theme.HelpStyle.Render("•")
	p.SetTotalPages(pages)
	p.Page = page - 1

	return p.View()
}

func (m Model) renderTasks() string {
	items := m.agg.Tasks.PageItems()
	if len(items) == 0 {
		return theme.HelpStyle.Render("No tasks.")
	}

	var lines []string
	for _, t := range items {
		status := " "
		switch t.Status {
		case "completed":
			status = "✓"
		case "in_progress":
			status = "~"
		}
		line := fmt.Sprintf("%s %s %s",
			status,
			theme.PriorityStyle(t.Priority).Render(t.Priority),
			t.Title,
		)
		if t.DueDate != "" {
			line += theme.HelpStyle.Render(" due " + t.DueDate)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEvents() string {
	items := m.agg.Events.PageItems()
	if len(items) == 0 {
		return theme.HelpStyle.Render("Nothing scheduled today.")
	}

	var lines []string
	for _, e := range items {
		line := fmt.Sprintf("%s  %s",
			theme.HelpStyle.Render(eventTime(e.StartTime)),
			e.Title,
		)
		if e.Location != "" {
			line += theme.HelpStyle.Render(" @ " + e.Location)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// eventTime trims an ISO timestamp down to HH:MM for the card line.
func eventTime(ts string) string {
	if len(ts) >= 16 && ts[10] == 'T' {
		return ts[11:16]
	}
	return ts
}

func (m Model) renderEmails() string {
	items := m.agg.Emails.PageItems()
	if len(items) == 0 {
		return theme.HelpStyle.Render("Inbox is quiet.")
	}

	// The backend lists unread mail only, so every entry gets the
	// unread marker.
	subject := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	var lines []string
	for _, e := range items {
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			theme.UnreadStyle.Render("●"),
			subject.Render(e.Subject),
			theme.HelpStyle.Render(e.From),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderContacts() string {
	items := m.agg.Contacts.PageItems()
	if len(items) == 0 {
		return theme.HelpStyle.Render("No contacts.")
	}

	var lines []string
	for _, c := range items {
		line := c.Name
		if c.Company != "" {
			line += theme.HelpStyle.Render(" · " + c.Company)
		}
		if c.Email != "" {
			line += theme.HelpStyle.Render(" · " + c.Email)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderAvatars() string {
	items := m.agg.Avatars.PageItems()
	if len(items) == 0 {
		return theme.HelpStyle.Render("No avatar progress yet.")
	}

	var lines []string
	for _, a := range items {
		bar := xpBar(a.XPInLevel, a.XPInLevel+a.XPToNext, 12)
		lines = append(lines, fmt.Sprintf("%-14s L%d %s %s",
			a.Name,
			a.Level,
			bar,
			theme.HelpStyle.Render(fmt.Sprintf("%d xp", a.TotalXP)),
		))
	}
	return strings.Join(lines, "\n")
}

// xpBar renders a fixed-width progress bar for avatar experience.
// Backend values are untrusted, so filled is clamped into [0, width].
func xpBar(current, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := current * width / total
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return theme.UnreadStyle.Render(strings.Repeat("█", filled)) +
		theme.HelpStyle.Render(strings.Repeat("░", width-filled))
}

// renderContextStrip shows weather and the backend's situational read.
func (m Model) renderContextStrip(width int) string {
	w := m.agg.Weather()
	sc := m.agg.SystemContext()

	var parts []string
	if w.Condition != "" {
		parts = append(parts, fmt.Sprintf("%s %.0f°C", w.Condition, w.TempC))
		if w.Location != "" {
			parts = append(parts, w.Location)
		}
	}
	if sc.EnergyLevel > 0 {
		parts = append(parts, fmt.Sprintf("energy %d%%", sc.EnergyLevel))
	}
	if sc.TaskBacklog > 0 {
		parts = append(parts, fmt.Sprintf("backlog %d", sc.TaskBacklog))
	}

	body := theme.HelpStyle.Render("Waiting for first refresh...")
	if len(parts) > 0 {
		body = strings.Join(parts, "  ·  ")
	}

	return theme.CardStyle.
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			theme.CardTitleStyle.Render("Now"),
			body,
		))
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
