package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Collection paging
	NextPage key.Binding
	PrevPage key.Binding

	// Card cycling on the dashboard
	NextCard key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Command box
	Command key.Binding

	// Chat panel
	Chat key.Binding

	// Notification feed
	Notifications key.Binding
	MarkRead      key.Binding
	MarkAllRead   key.Binding

	// Voice capture
	Voice key.Binding

	// Manual refresh
	Refresh key.Binding

	// Help toggle
	Help key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev page"),
		),
		NextCard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next card"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Chat: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assistant"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notifications"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "mark read"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "mark all read"),
		),
		Voice: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "voice input"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Command, k.Chat, k.Notifications,
		k.Voice, k.Refresh, k.Quit,
	}
}

// FullHelp returns all keybindings grouped by category.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.NextCard},
		{k.Command, k.Chat, k.Notifications, k.Voice},
		{k.MarkRead, k.MarkAllRead, k.Refresh},
		{k.Back, k.Help, k.Quit},
	}
}
