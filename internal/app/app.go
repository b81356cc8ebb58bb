// Package app wires the orchestration services into the root Bubble
// Tea model and routes messages between the views.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/presentos/present-cli/internal/agg"
	"github.com/presentos/present-cli/internal/api"
	"github.com/presentos/present-cli/internal/auth"
	"github.com/presentos/present-cli/internal/chat"
	"github.com/presentos/present-cli/internal/dispatch"
	"github.com/presentos/present-cli/internal/feed"
	"github.com/presentos/present-cli/internal/keys"
	"github.com/presentos/present-cli/internal/model"
	"github.com/presentos/present-cli/internal/store"
	"github.com/presentos/present-cli/internal/ui"
	"github.com/presentos/present-cli/internal/ui/chatview"
	"github.com/presentos/present-cli/internal/ui/command"
	"github.com/presentos/present-cli/internal/ui/dashboard"
	"github.com/presentos/present-cli/internal/ui/helpview"
	"github.com/presentos/present-cli/internal/ui/login"
	"github.com/presentos/present-cli/internal/ui/notifications"
	"github.com/presentos/present-cli/internal/voice"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewChat
	ViewNotifications
	ViewCommand
	ViewHelp
)

// sessionReadyMsg arrives once the persisted state has been loaded
// after startup or login.
type sessionReadyMsg struct{}

// refreshedMsg arrives after a full collection refresh has resolved.
type refreshedMsg struct{}

// dispatchedMsg carries the outcome of one dispatched command.
type dispatchedMsg struct {
	result dispatch.Result
}

// mailCountMsg carries the backend's unread mail count.
type mailCountMsg struct {
	count int
	err   error
}

// pollTickMsg drives the periodic unread-mail poll.
type pollTickMsg time.Time

// voiceTranscriptMsg delivers a final voice transcript to its target
// input.
type voiceTranscriptMsg struct {
	target voice.Target
	text   string
}

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	ready        bool

	cfg        *model.AppConfig
	store      store.Store
	client     *api.Client
	aggregator *agg.Aggregator
	feed       *feed.Feed
	dispatcher *dispatch.Dispatcher
	chatSess   *chat.Session
	authMgr    *auth.Manager
	voiceAd    *voice.Adapter
	voiceCh    chan voiceTranscriptMsg

	session   *model.Session
	mailCount int
	keys      *keys.KeyMap

	loginView  login.Model
	dashView   dashboard.Model
	chatView   chatview.Model
	noteView   notifications.Model
	cmdView    command.Model
	helpView   helpview.Model
	refreshing bool
}

// New assembles the application services and views over the given
// store and configuration.
func New(s store.Store, cfg *model.AppConfig) Model {
	k := keys.DefaultKeyMap()
	client := api.NewClient(cfg.Backend.BaseURL)
	aggregator := agg.New(client, cfg)
	f := feed.New(s, cfg.Display.FeedCapacity)
	dispatcher := dispatch.New(client, aggregator, f, cfg)
	chatSess := chat.New(client, aggregator, f, s)
	authMgr := auth.New(s, auth.KeyringTokens{})

	voiceCh := make(chan voiceTranscriptMsg, 4)
	rec := voice.NewExecRecognizer(cfg.Voice.Transcriber)
	voiceAd := voice.New(rec, f, cfg.Voice.Locale, func(t voice.Target, text string) {
		select {
		case voiceCh <- voiceTranscriptMsg{target: t, text: text}:
		default:
		}
	})

	return Model{
		currentView: ViewLogin,
		cfg:         cfg,
		store:       s,
		client:      client,
		aggregator:  aggregator,
		feed:        f,
		dispatcher:  dispatcher,
		chatSess:    chatSess,
		authMgr:     authMgr,
		voiceAd:     voiceAd,
		voiceCh:     voiceCh,
		keys:        k,
		loginView:   login.New(authMgr, 80, 24),
		dashView:    dashboard.New(aggregator, k, 80, 24),
		chatView:    chatview.New(chatSess, 80, 24),
		noteView:    notifications.New(f, k, 80, 24),
		cmdView:     command.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
	}
}

// Init restores the session if one exists, then either gates on the
// login form or goes straight to the dashboard.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.restoreSession(),
		m.waitForVoice(),
	)
}

// restoreSession checks for a persisted session record.
func (m Model) restoreSession() tea.Cmd {
	authMgr := m.authMgr
	return func() tea.Msg {
		sess, err := authMgr.Current(context.Background())
		if err != nil || sess == nil {
			return login.DoneMsg{Session: nil}
		}
		return login.DoneMsg{Session: sess}
	}
}

// startSession loads the persisted feed and transcript and kicks off
// the first refresh and the mail poll.
func (m *Model) startSession(sess *model.Session) tea.Cmd {
	m.session = sess
	m.currentView = ViewDashboard

	f, cs := m.feed, m.chatSess
	loadCmd := func() tea.Msg {
		ctx := context.Background()
		_ = f.Load(ctx)
		_ = cs.Load(ctx)
		return sessionReadyMsg{}
	}

	return tea.Batch(
		loadCmd,
		m.refreshAll(),
		m.fetchMailCount(),
		m.pollTick(),
	)
}

// refreshAll runs a full collection refresh off the UI goroutine.
func (m *Model) refreshAll() tea.Cmd {
	m.refreshing = true
	a := m.aggregator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		a.RefreshAll(ctx)
		return refreshedMsg{}
	}
}

// fetchMailCount queries the backend for the unread mail counter.
func (m Model) fetchMailCount() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		n, err := client.GetUnreadCount(ctx)
		return mailCountMsg{count: n, err: err}
	}
}

// pollTick schedules the next unread-mail poll.
func (m Model) pollTick() tea.Cmd {
	return tea.Tick(m.cfg.NotificationPollInterval(), func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// waitForVoice blocks on the next routed voice transcript.
func (m Model) waitForVoice() tea.Cmd {
	ch := m.voiceCh
	return func() tea.Msg {
		return <-ch
	}
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(msg.Width, msg.Height)
		m.dashView.SetSize(contentWidth, contentHeight)
		m.chatView.SetSize(contentWidth, contentHeight)
		m.noteView.SetSize(contentWidth, contentHeight)
		m.cmdView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		return m.updateActiveView(msg)

	case login.DoneMsg:
		if msg.Session == nil {
			m.currentView = ViewLogin
			return m, m.loginView.Init()
		}
		return m, m.startSession(msg.Session)

	case login.AbortMsg:
		return m, tea.Quit

	case sessionReadyMsg:
		m.chatView.Refresh()
		return m, nil

	case refreshedMsg:
		m.refreshing = false
		return m, nil

	case dispatchedMsg:
		m.cmdView.SetResult(msg.result)
		return m, nil

	case mailCountMsg:
		if msg.err == nil {
			m.mailCount = msg.count
		}
		return m, nil

	case pollTickMsg:
		if m.session == nil {
			return m, m.pollTick()
		}
		return m, tea.Batch(m.fetchMailCount(), m.pollTick())

	case voiceTranscriptMsg:
		switch msg.target {
		case voice.TargetChat:
			m.chatView.SetValue(msg.text)
		default:
			m.cmdView.SetValue(msg.text)
		}
		return m, m.waitForVoice()

	case command.SubmitMsg:
		dispatcher := m.dispatcher
		text := string(msg)
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return dispatchedMsg{result: dispatcher.Submit(ctx, text)}
		}

	case chatview.CloseMsg, notifications.CloseMsg:
		m.currentView = ViewDashboard
		return m, nil

	case tea.KeyMsg:
		if newModel, cmd, handled := m.handleGlobalKey(msg); handled {
			return newModel, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that switch views or act regardless
// of the focused view. Text-input views keep most keys to themselves.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.shutdown(), true

	case "ctrl+v":
		// Voice capture routes to whichever input is in front.
		target := voice.TargetCommand
		if m.currentView == ViewChat {
			target = voice.TargetChat
		}
		if m.voiceAd.State() == voice.Listening {
			m.voiceAd.Stop()
		} else {
			_ = m.voiceAd.Start(target)
		}
		return m, nil, true
	}

	// The remaining shortcuts are dashboard-level navigation; inputs
	// own their keys while focused.
	if m.currentView != ViewDashboard &&
		m.currentView != ViewNotifications &&
		m.currentView != ViewHelp {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		return m, m.shutdown(), true

	case ":":
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.cmdView.Focus(), true

	case "a":
		m.previousView = m.currentView
		m.currentView = ViewChat
		m.chatView.Refresh()
		return m, m.chatView.Focus(), true

	case "n":
		if m.currentView == ViewNotifications {
			m.currentView = ViewDashboard
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewNotifications
		return m, nil, true

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "r":
		if !m.refreshing {
			return m, m.refreshAll(), true
		}
		return m, nil, true

	case "esc":
		if m.currentView != ViewDashboard {
			m.currentView = ViewDashboard
			return m, nil, true
		}
	}

	return m, nil, false
}

// shutdown cancels pending background work before quitting.
func (m Model) shutdown() tea.Cmd {
	m.dispatcher.Close()
	m.voiceAd.Stop()
	return tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case ViewChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case ViewNotifications:
		m.noteView, cmd = m.noteView.Update(msg)
	case ViewCommand:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			m.currentView = m.previousView
			return m, nil
		}
		m.cmdView, cmd = m.cmdView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashView.View()
	case ViewChat:
		return m.chatView.View()
	case ViewNotifications:
		return m.noteView.View()
	case ViewCommand:
		return m.cmdView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerTitle is the app name plus the signed-in identity.
func (m Model) headerTitle() string {
	title := "PresentOS"
	if m.session != nil && m.session.DisplayName != "" {
		title += " · " + m.session.DisplayName
	}
	return title
}

// headerStatus summarizes unread counters and refresh state.
func (m Model) headerStatus() string {
	status := ""
	if m.refreshing {
		status = "refreshing · "
	}
	if m.voiceAd.State() == voice.Listening {
		status += "🎤 listening · "
	}
	status += fmt.Sprintf("mail %d · alerts %d", m.mailCount, m.feed.UnreadCount())
	return status
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewChat:
		return "enter send | ctrl+l clear | ctrl+v voice | esc back"
	case ViewNotifications:
		return "j/k move | enter mark read | A mark all | esc back"
	case ViewCommand:
		return "enter dispatch | ctrl+v voice | esc back"
	case ViewHelp:
		return "? close help"
	default:
		return "q quit | ? help | : command | a assistant | n alerts | r refresh | tab card | h/l page"
	}
}
