package state

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
	Help     key.Binding
	Refresh  key.Binding
	Logout   key.Binding
	Dismiss  key.Binding
	Login    key.Binding
	Register key.Binding
	Confirm  key.Binding
	Cancel   key.Binding

	// group detail
	JoinGroup          key.Binding
	LeaveGroup         key.Binding
	NewGroupChallenge  key.Binding
	JoinGroupChallenge key.Binding
	GroupProgress      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss/back"),
		),
		Login: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log in"),
		),
		Register: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "register"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		JoinGroup: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "join group"),
		),
		LeaveGroup: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "leave group"),
		),
		NewGroupChallenge: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new challenge"),
		),
		JoinGroupChallenge: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "join challenge"),
		),
		GroupProgress: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "log progress"),
		),
	}
}
