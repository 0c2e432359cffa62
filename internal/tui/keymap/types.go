// Package keymap declares the diagram's key bindings and resolves key
// presses to named commands, keeping the TUI's Update free of key literals.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	CmdStart         Command = "start"
	CmdSimulateError Command = "simulate_error"
	CmdReset         Command = "reset"
	CmdShowStep      Command = "show_step"
	CmdFocusNext     Command = "focus_next"
	CmdFocusPrev     Command = "focus_prev"
	CmdShowFocused   Command = "show_focused"
	CmdShowManual    Command = "show_manual"
	CmdDismissInfo   Command = "dismiss_info"
	CmdToggleHelp    Command = "toggle_help"
	CmdQuit          Command = "quit"
)

// Binding ties a bubbles key.Binding to the command it triggers.
type Binding struct {
	key.Binding
	Command Command
	// Target is the step index (CmdShowStep) or entry id (CmdShowManual)
	// a binding refers to.
	Target string
}

// Keymap contains all key bindings of the diagram view.
type Keymap struct {
	Start    Binding
	Error    Binding
	Reset    Binding
	Steps    []Binding
	Prev     Binding
	Next     Binding
	Focused  Binding
	Manual   []Binding
	Dismiss  Binding
	Help     Binding
	Quit     Binding
	bindings []Binding
}

// Resolve looks up the binding for a key press.
// Returns the binding and true if found.
func (km *Keymap) Resolve(msg tea.KeyMsg) (Binding, bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, b.Binding) {
			return b, true
		}
	}
	return Binding{}, false
}

// All returns every binding in lookup order.
func (km *Keymap) All() []Binding {
	return append([]Binding(nil), km.bindings...)
}

// ShortHelp implements help.KeyMap.
func (km *Keymap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.Start.Binding,
		km.Error.Binding,
		km.Reset.Binding,
		km.Help.Binding,
		km.Quit.Binding,
	}
}

// FullHelp implements help.KeyMap.
func (km *Keymap) FullHelp() [][]key.Binding {
	stepsCol := []key.Binding{stepRangeHelp, km.Prev.Binding, km.Next.Binding, km.Focused.Binding}
	manualCol := make([]key.Binding, 0, len(km.Manual)+1)
	for _, b := range km.Manual {
		manualCol = append(manualCol, b.Binding)
	}
	manualCol = append(manualCol, km.Dismiss.Binding)

	return [][]key.Binding{
		{km.Start.Binding, km.Error.Binding, km.Reset.Binding},
		stepsCol,
		manualCol,
		{km.Help.Binding, km.Quit.Binding},
	}
}

// stepRangeHelp documents the ten digit bindings as a single help entry.
var stepRangeHelp = key.NewBinding(
	key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
	key.WithHelp("1-0", "step info"),
)
