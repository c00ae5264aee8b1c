package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/rwejlgaard/timesheet/internal/config"
)

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Back        key.Binding
	ToggleJob   key.Binding
	AddTask     key.Binding
	RemoveTask  key.Binding
	NextWorker  key.Binding
	PrevWorker  key.Binding
	SetDate     key.Binding
	Submit      key.Binding
	ToggleView  key.Binding
	Help        key.Binding
	Quit        key.Binding
	NextField   key.Binding
	WizardBack  key.Binding
	CommitEntry key.Binding
}

// newKeyMapFromConfig creates a keyMap from configuration
func newKeyMapFromConfig(cfg *config.Config) keyMap {
	kb := cfg.Keybindings
	bind := func(keys []string, desc string) key.Binding {
		return config.BuildKeyBinding(keys, formatKeyHelp(keys), desc)
	}

	return keyMap{
		Up:          bind(kb.Up, "move up"),
		Down:        bind(kb.Down, "move down"),
		Select:      bind(kb.Select, "select"),
		Back:        bind(kb.Back, "back"),
		ToggleJob:   bind(kb.ToggleJob, "toggle job"),
		AddTask:     bind(kb.AddTask, "add task"),
		RemoveTask:  bind(kb.RemoveTask, "remove task"),
		NextWorker:  bind(kb.NextWorker, "next name"),
		PrevWorker:  bind(kb.PrevWorker, "previous name"),
		SetDate:     bind(kb.SetDate, "set date"),
		Submit:      bind(kb.Submit, "submit timesheet"),
		ToggleView:  bind(kb.ToggleView, "toggle summary"),
		Help:        bind(kb.Help, "toggle help"),
		Quit:        bind(kb.Quit, "quit"),
		NextField:   bind(kb.NextField, "switch field"),
		WizardBack:  bind(kb.WizardBack, "back to tasks"),
		CommitEntry: bind(kb.CommitEntry, "add task"),
	}
}

// formatKeyHelp formats a slice of keys for display in help
func formatKeyHelp(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	// Take first two keys for display
	if len(keys) == 1 {
		return formatKey(keys[0])
	}
	return formatKey(keys[0]) + "/" + formatKey(keys[1])
}

// formatKey formats a single key for display
func formatKey(k string) string {
	if k == " " {
		return "space"
	}
	k = strings.ReplaceAll(k, "up", "↑")
	k = strings.ReplaceAll(k, "down", "↓")
	k = strings.ReplaceAll(k, "left", "←")
	k = strings.ReplaceAll(k, "right", "→")
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleJob, k.AddTask, k.Submit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.ToggleJob},
		{k.AddTask, k.RemoveTask, k.NextWorker, k.PrevWorker},
		{k.SetDate, k.Submit, k.ToggleView},
		{k.Help, k.Quit},
	}
}

// getAllBindings returns the form-screen keybindings as a flat list
func (k keyMap) getAllBindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.ToggleJob,
		k.AddTask, k.RemoveTask, k.NextWorker, k.PrevWorker,
		k.SetDate, k.Submit, k.ToggleView, k.Help, k.Quit,
	}
}
