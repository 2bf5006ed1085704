package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New           key.Binding
	Edit          key.Binding
	Toggle        key.Binding
	Delete        key.Binding
	Search        key.Binding
	CycleStatus   key.Binding
	CyclePriority key.Binding
	CycleCategory key.Binding
	CycleSort     key.Binding
	Reset         key.Binding
	Export        key.Binding
	Tab1          key.Binding
	Tab2          key.Binding
	Tab3          key.Binding
	Tab4          key.Binding
	Tab5          key.Binding
	Tab           key.Binding
	Help          key.Binding
	Enter         key.Binding
	Back          key.Binding
	Up            key.Binding
	Down          key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "done/undo"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "status"),
	),
	CyclePriority: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "priority"),
	),
	CycleCategory: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category"),
	),
	CycleSort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset filters"),
	),
	Export: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "export"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "tasks"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "categories"),
	),
	Tab4: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "reports"),
	),
	Tab5: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "settings"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Search, k.CycleSort, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Edit, k.Toggle, k.Delete},
		{k.Search, k.CycleStatus, k.CyclePriority, k.CycleCategory, k.CycleSort, k.Reset},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5, k.Export},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
