package keymap

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// ManualEntry maps a key to a manual-testing entry id.
type ManualEntry struct {
	Key   string
	ID    string
	Label string
}

// DefaultManualEntries are the manual-testing notes reachable from the keyboard.
func DefaultManualEntries() []ManualEntry {
	return []ManualEntry{
		{Key: "m", ID: "log-creation", Label: "log creation notes"},
		{Key: "v", ID: "verification", Label: "verification notes"},
		{Key: "t", ID: "troubleshooting", Label: "troubleshooting notes"},
	}
}

func bind(cmd Command, keys []string, helpKey, helpDesc string) Binding {
	return Binding{
		Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, helpDesc)),
		Command: cmd,
	}
}

// DefaultKeymap returns the default key bindings for a pipeline of n steps.
// Digits 1-9 address steps 1-9 and 0 addresses step 10.
func DefaultKeymap(n int, manual []ManualEntry) *Keymap {
	km := &Keymap{
		Start:   bind(CmdStart, []string{"enter", " "}, "enter", "start"),
		Error:   bind(CmdSimulateError, []string{"e", "E"}, "e", "simulate error"),
		Reset:   bind(CmdReset, []string{"esc", "r", "R"}, "r/esc", "reset"),
		Prev:    bind(CmdFocusPrev, []string{"left", "h"}, "←/h", "previous step"),
		Next:    bind(CmdFocusNext, []string{"right", "l"}, "→/l", "next step"),
		Focused: bind(CmdShowFocused, []string{"i"}, "i", "focused step info"),
		Dismiss: bind(CmdDismissInfo, []string{"x"}, "x", "dismiss panel"),
		Help:    bind(CmdToggleHelp, []string{"?"}, "?", "toggle help"),
		Quit:    bind(CmdQuit, []string{"q", "ctrl+c"}, "q", "quit"),
	}

	for i := 1; i <= min(n, 10); i++ {
		digit := strconv.Itoa(i % 10)
		b := bind(CmdShowStep, []string{digit}, digit, fmt.Sprintf("step %d info", i))
		b.Target = strconv.Itoa(i)
		km.Steps = append(km.Steps, b)
	}

	for _, m := range manual {
		b := bind(CmdShowManual, []string{m.Key}, m.Key, m.Label)
		b.Target = m.ID
		km.Manual = append(km.Manual, b)
	}

	km.bindings = append(km.bindings, km.Start, km.Error, km.Reset, km.Prev, km.Next, km.Focused)
	km.bindings = append(km.bindings, km.Steps...)
	km.bindings = append(km.bindings, km.Manual...)
	km.bindings = append(km.bindings, km.Dismiss, km.Help, km.Quit)
	return km
}
