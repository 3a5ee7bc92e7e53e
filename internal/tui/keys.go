package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Planner        key.Binding
	Daily          key.Binding
	Retro          key.Binding
	NextDay        key.Binding
	PrevDay        key.Binding
	NextField      key.Binding
	PrevField      key.Binding
	ToggleDone     key.Binding
	Bullet         key.Binding
	SuggestActions key.Binding
	SuggestGoal    key.Binding
	Summarize      key.Binding
	ClearDay       key.Binding
	ClearWeek      key.Binding
	Export         key.Binding
	Theme          key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Planner:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "planner")),
		Daily:          key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "daily")),
		Retro:          key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "retro")),
		NextDay:        key.NewBinding(key.WithKeys("pgdown", "ctrl+down"), key.WithHelp("pgdn", "next day")),
		PrevDay:        key.NewBinding(key.WithKeys("pgup", "ctrl+up"), key.WithHelp("pgup", "prev day")),
		NextField:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		ToggleDone:     key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "toggle done")),
		Bullet:         key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bullet")),
		SuggestActions: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "suggest actions")),
		SuggestGoal:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "suggest goal")),
		Summarize:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "summarize week")),
		ClearDay:       key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear day")),
		ClearWeek:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear week")),
		Export:         key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export day")),
		Theme:          key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Help:           key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "help")),
		Quit:           key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.NextDay, k.SuggestActions, k.Summarize, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Planner, k.Daily, k.Retro, k.NextDay, k.PrevDay, k.NextField, k.PrevField},
		// Editing
		{k.ToggleDone, k.Bullet, k.ClearDay, k.ClearWeek, k.Export},
		// Assistant / app
		{k.SuggestActions, k.SuggestGoal, k.Summarize, k.Theme, k.Help, k.Quit},
	}
}
