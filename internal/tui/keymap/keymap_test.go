package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultKeymap_Resolve(t *testing.T) {
	km := DefaultKeymap(10, DefaultManualEntries())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		cmd    Command
		target string
	}{
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, CmdStart, ""},
		{"space starts", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, CmdStart, ""},
		{"e simulates error", runeKey('e'), CmdSimulateError, ""},
		{"esc resets", tea.KeyMsg{Type: tea.KeyEsc}, CmdReset, ""},
		{"r resets", runeKey('r'), CmdReset, ""},
		{"R resets", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}}, CmdReset, ""},
		{"E simulates error", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'E'}}, CmdSimulateError, ""},
		{"1 shows step 1", runeKey('1'), CmdShowStep, "1"},
		{"9 shows step 9", runeKey('9'), CmdShowStep, "9"},
		{"0 shows step 10", runeKey('0'), CmdShowStep, "10"},
		{"left focuses previous", tea.KeyMsg{Type: tea.KeyLeft}, CmdFocusPrev, ""},
		{"right focuses next", tea.KeyMsg{Type: tea.KeyRight}, CmdFocusNext, ""},
		{"i shows focused", runeKey('i'), CmdShowFocused, ""},
		{"m shows log creation", runeKey('m'), CmdShowManual, "log-creation"},
		{"v shows verification", runeKey('v'), CmdShowManual, "verification"},
		{"t shows troubleshooting", runeKey('t'), CmdShowManual, "troubleshooting"},
		{"x dismisses", runeKey('x'), CmdDismissInfo, ""},
		{"? toggles help", runeKey('?'), CmdToggleHelp, ""},
		{"q quits", runeKey('q'), CmdQuit, ""},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, CmdQuit, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := km.Resolve(tt.msg)
			if !ok {
				t.Fatalf("Resolve(%q) found nothing", tt.msg.String())
			}
			if b.Command != tt.cmd {
				t.Errorf("Command = %q, want %q", b.Command, tt.cmd)
			}
			if b.Target != tt.target {
				t.Errorf("Target = %q, want %q", b.Target, tt.target)
			}
		})
	}
}

func TestDefaultKeymap_Unbound(t *testing.T) {
	km := DefaultKeymap(10, DefaultManualEntries())
	for _, r := range []rune{'z', 'Q', '!'} {
		if b, ok := km.Resolve(runeKey(r)); ok {
			t.Errorf("Resolve(%q) = %q, want unbound", r, b.Command)
		}
	}
}

func TestDefaultKeymap_ShortPipeline(t *testing.T) {
	km := DefaultKeymap(3, nil)
	if len(km.Steps) != 3 {
		t.Fatalf("len(Steps) = %d, want 3", len(km.Steps))
	}
	if _, ok := km.Resolve(runeKey('4')); ok {
		t.Error("digit beyond the pipeline should be unbound")
	}
	if _, ok := km.Resolve(runeKey('m')); ok {
		t.Error("manual key bound without manual entries")
	}
}

func TestKeymap_Help(t *testing.T) {
	km := DefaultKeymap(10, DefaultManualEntries())

	if got := len(km.ShortHelp()); got != 5 {
		t.Errorf("ShortHelp() has %d entries, want 5", got)
	}
	full := km.FullHelp()
	if len(full) != 4 {
		t.Fatalf("FullHelp() has %d columns, want 4", len(full))
	}
	if got := len(full[2]); got != 4 {
		t.Errorf("manual column has %d entries, want 4", got)
	}
	for _, col := range full {
		for _, b := range col {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Errorf("binding %v missing help text", b.Keys())
			}
		}
	}
}
