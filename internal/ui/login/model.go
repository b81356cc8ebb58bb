package login

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/presentos/present-cli/internal/auth"
	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/internal/theme"
)

// DoneMsg signals that a session was created.
type DoneMsg struct {
	Session *model.Session
}

// AbortMsg signals the user backed out of the login form.
type AbortMsg struct{}

// loginResultMsg is sent after the session has been persisted.
type loginResultMsg struct {
	session *model.Session
	err     error
}

// Model is the login form shown while no session exists.
type Model struct {
	manager *auth.Manager
	form    *huh.Form

	formEmail string
	formName  string

	saving    bool
	statusMsg string
	width     int
	height    int
}

// New creates the login form model.
func New(manager *auth.Manager, width, height int) Model {
	m := Model{
		manager: manager,
		width:   width,
		height:  height,
	}
	m.form = m.buildForm()
	return m
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Description("Your account identity").
				Placeholder("you@example.com").
				Value(&m.formEmail).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("email is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Display name").
				Description("Shown in the dashboard header (optional)").
				Placeholder("Your name").
				Value(&m.formName),
		),
	).WithWidth(min(m.width-8, 60))
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.saving = false
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Login failed: %v", msg.err)
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg {
			return DoneMsg{Session: msg.session}
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.saving {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.saving = true
		manager := m.manager
		email, name := m.formEmail, m.formName
		return m, func() tea.Msg {
			sess, err := manager.Login(context.Background(), email, name)
			return loginResultMsg{session: sess, err: err}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return AbortMsg{} }
	}

	return m, cmd
}

// View renders the login form centered in the terminal.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue).
		MarginBottom(1)

	sections := []string{
		titleStyle.Render("PresentOS"),
	}

	if m.saving {
		sections = append(sections, theme.HelpStyle.Render("Signing in..."))
	} else {
		sections = append(sections, m.form.View())
	}

	if m.statusMsg != "" {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.ColorRed).Render(m.statusMsg))
	}

	content := theme.PanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

// SetSize updates the login form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
