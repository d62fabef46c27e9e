package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab          key.Binding
	ShiftTab     key.Binding
	Quit         key.Binding
	Help         key.Binding
	Refresh      key.Binding
	DopaminePass key.Binding
	DopamineFail key.Binding
	WorkoutDone  key.Binding
	WorkoutRest  key.Binding
	WorkoutMiss  key.Binding
	Mood         key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help, k.Refresh},
		{k.DopaminePass, k.DopamineFail, k.WorkoutDone, k.WorkoutRest, k.WorkoutMiss, k.Mood},
	}
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
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		DopaminePass: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "dopamine passed"),
		),
		DopamineFail: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "dopamine failed"),
		),
		WorkoutDone: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "workout done"),
		),
		WorkoutRest: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rest day"),
		),
		WorkoutMiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "workout missed"),
		),
		Mood: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "log mood"),
		),
	}
}
