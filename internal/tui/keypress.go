package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/archiveflow/internal/tui/keymap"
)

// handleKeypress resolves a key press through the keymap and performs the
// bound command.
func (m Model) handleKeypress(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	b, ok := m.keys.Resolve(k)
	if !ok {
		return m, nil
	}

	m.errorMessage = ""

	switch b.Command {
	case keymap.CmdQuit:
		m.quitting = true
		m.ctrl.Reset()
		return m, tea.Quit

	case keymap.CmdStart:
		if m.ctrl.Start() {
			m.statusMessage = ""
		} else {
			m.statusMessage = "a run is already in progress"
		}

	case keymap.CmdSimulateError:
		if m.ctrl.SimulateError() {
			m.statusMessage = ""
		} else {
			m.statusMessage = "a run is already in progress"
		}

	case keymap.CmdReset:
		m.ctrl.Reset()
		m.statusMessage = "reset"

	case keymap.CmdShowStep:
		index, err := strconv.Atoi(b.Target)
		if err != nil {
			return m, nil
		}
		m.focus = index
		m.showStep(index)

	case keymap.CmdFocusNext:
		m.moveFocus(1)

	case keymap.CmdFocusPrev:
		m.moveFocus(-1)

	case keymap.CmdShowFocused:
		m.showStep(m.focus)

	case keymap.CmdShowManual:
		if !m.ctrl.ShowInfo(b.Target) {
			m.statusMessage = fmt.Sprintf("no entry named %q", b.Target)
		}

	case keymap.CmdDismissInfo:
		m.ctrl.DismissInfo()

	case keymap.CmdToggleHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) showStep(index int) {
	d, ok := m.catalog.At(index)
	if !ok {
		return
	}
	m.ctrl.ShowInfo(d.ID)
}

// moveFocus moves the focused step by delta, wrapping at both ends.
func (m *Model) moveFocus(delta int) {
	n := m.catalog.Len()
	if n == 0 {
		return
	}
	m.focus = ((m.focus-1+delta)%n+n)%n + 1
}
