package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/archiveflow/internal/clock"
	"github.com/Iron-Ham/archiveflow/internal/sequencer"
	"github.com/Iron-Ham/archiveflow/internal/steps"
	"github.com/Iron-Ham/archiveflow/internal/tui/msg"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	seq   *sequencer.Sequencer
	board *sequencer.Board
	clk   *clock.Fake
	now   time.Time
}

func newHarness(t *testing.T, opts Options) (*harness, Model) {
	t.Helper()
	h := &harness{clk: clock.NewFake(epoch), now: epoch}
	h.board = sequencer.NewBoard(steps.Default().Len())
	n := 0
	h.seq = sequencer.New(h.board,
		sequencer.WithScheduler(h.clk),
		sequencer.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("run-%d", n)
		}),
	)
	opts.Now = func() time.Time { return h.now }

	m := NewModel(h.seq, h.seq.Catalog(), h.board, Attach(h.board), opts)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
	return h, m
}

func update(t *testing.T, m Model, message tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(message)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return mm
}

// refresh feeds the board's current surface to the model, as the board
// listener would.
func (h *harness) refresh(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, msg.BoardMsg{Snapshot: h.board.Snapshot()})
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StartKey(t *testing.T) {
	h, m := newHarness(t, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = h.refresh(t, m)

	snap := m.Snapshot()
	if !snap.Running {
		t.Fatal("enter did not start a run")
	}
	if snap.StepState(1) != steps.StateActive {
		t.Errorf("step 1 = %s, want active", snap.StepState(1))
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.statusMessage == "" {
		t.Error("second start did not report the active run")
	}
}

func TestModel_SimulateErrorKey(t *testing.T) {
	h, m := newHarness(t, Options{})

	m = update(t, m, runeKey("e"))
	h.clk.Advance(16 * time.Second)
	m = h.refresh(t, m)

	idx := h.seq.FailureIndex()
	if got := m.Snapshot().StepState(idx); got != steps.StateError {
		t.Errorf("step %d = %s, want error", idx, got)
	}
}

func TestModel_ResetKey(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey("r"), {Type: tea.KeyEsc}} {
		t.Run(k.String(), func(t *testing.T) {
			h, m := newHarness(t, Options{})

			m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
			h.clk.Advance(5 * time.Second)
			m = update(t, m, k)
			m = h.refresh(t, m)

			snap := m.Snapshot()
			if snap.Running {
				t.Error("run still active after reset")
			}
			if got := snap.Count(steps.StateIdle); got != len(snap.Steps) {
				t.Errorf("idle steps = %d, want %d", got, len(snap.Steps))
			}
			if h.clk.Pending() != 0 {
				t.Errorf("pending timers = %d, want 0", h.clk.Pending())
			}
		})
	}
}

func TestModel_StepKeys(t *testing.T) {
	tests := []struct {
		key       string
		wantID    string
		wantFocus int
	}{
		{"1", "start", 1},
		{"3", "lock-decision", 3},
		{"0", steps.Default().Pipeline()[9].ID, 10},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			h, m := newHarness(t, Options{})

			m = update(t, m, runeKey(tt.key))

			info, ok := h.seq.Info()
			if !ok || info.ID != tt.wantID {
				t.Errorf("info = %q (visible %v), want %q", info.ID, ok, tt.wantID)
			}
			if m.Focus() != tt.wantFocus {
				t.Errorf("focus = %d, want %d", m.Focus(), tt.wantFocus)
			}
		})
	}
}

func TestModel_FocusNavigation(t *testing.T) {
	h, m := newHarness(t, Options{})
	n := h.seq.Catalog().Len()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Focus() != n {
		t.Errorf("focus after left from 1 = %d, want %d", m.Focus(), n)
	}

	m = update(t, m, runeKey("l"))
	if m.Focus() != 1 {
		t.Errorf("focus after wrap right = %d, want 1", m.Focus())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, runeKey("i"))
	if info, ok := h.seq.Info(); !ok || info.Index != 2 {
		t.Errorf("info = %+v (visible %v), want step 2", info, ok)
	}
}

func TestModel_ManualAndDismiss(t *testing.T) {
	h, m := newHarness(t, Options{})

	m = update(t, m, runeKey("v"))
	info, ok := h.seq.Info()
	if !ok || info.ID != "verification" {
		t.Fatalf("info = %q (visible %v), want verification", info.ID, ok)
	}
	if info.Kind != steps.KindManual {
		t.Errorf("kind = %s, want manual", info.Kind)
	}

	update(t, m, runeKey("x"))
	if _, ok := h.seq.Info(); ok {
		t.Error("panel still visible after dismiss")
	}
}

func TestModel_HelpToggle(t *testing.T) {
	_, m := newHarness(t, Options{})

	m = update(t, m, runeKey("?"))
	if !m.help.ShowAll {
		t.Error("help not expanded after ?")
	}
	m = update(t, m, runeKey("?"))
	if m.help.ShowAll {
		t.Error("help still expanded after second ?")
	}
}

func TestModel_Quit(t *testing.T) {
	h, m := newHarness(t, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit returned nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce tea.QuitMsg")
	}
	if h.clk.Pending() != 0 {
		t.Errorf("pending timers after quit = %d, want 0", h.clk.Pending())
	}
	if got := next.View(); got != "Goodbye!\n" {
		t.Errorf("View() after quit = %q", got)
	}
}

func TestModel_UnboundKeyIsIgnored(t *testing.T) {
	h, m := newHarness(t, Options{})

	next, cmd := m.Update(runeKey("z"))
	if cmd != nil {
		t.Error("unbound key returned a command")
	}
	if next.(Model).Focus() != 1 || h.seq.State().Running {
		t.Error("unbound key changed state")
	}
}

func TestModel_Welcome(t *testing.T) {
	tests := []struct {
		name    string
		show    bool
		running bool
		want    bool
	}{
		{"enabled and idle", true, false, true},
		{"disabled", false, false, false},
		{"run already started", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newHarness(t, Options{ShowWelcome: tt.show, WelcomeDisplay: 4 * time.Second})

			if tt.running {
				m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
				h.clk.Advance(time.Second)
				m = h.refresh(t, m)
			}
			update(t, m, msg.WelcomeMsg{})

			info, ok := h.seq.Info()
			got := ok && info.ID == steps.IDWelcome
			if got != tt.want {
				t.Errorf("welcome shown = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModel_WelcomeAutoHides(t *testing.T) {
	h, m := newHarness(t, Options{ShowWelcome: true, WelcomeDisplay: 4 * time.Second})

	update(t, m, msg.WelcomeMsg{})
	h.clk.Advance(4 * time.Second)

	if _, ok := h.seq.Info(); ok {
		t.Error("welcome panel still visible after its display time")
	}
}

func TestModel_TimingsMsg(t *testing.T) {
	h, m := newHarness(t, Options{})

	want := sequencer.DefaultTimings().WithSpeed(2)
	m = update(t, m, msg.TimingsMsg{Timings: want})

	if got := h.seq.Timings(); got != want {
		t.Errorf("Timings() = %+v, want %+v", got, want)
	}
	if m.statusMessage == "" {
		t.Error("reload not reported in status")
	}
}

func TestModel_ErrMsg(t *testing.T) {
	_, m := newHarness(t, Options{})

	m = update(t, m, msg.ErrMsg{Err: errors.New("theme not found")})
	if !strings.Contains(m.View(), "theme not found") {
		t.Error("error message not rendered")
	}

	m = update(t, m, runeKey("?"))
	if m.errorMessage != "" {
		t.Error("error message not cleared by the next command")
	}
}

func TestModel_BoardMsgRearmsListener(t *testing.T) {
	h, m := newHarness(t, Options{})

	_, cmd := m.Update(msg.BoardMsg{Snapshot: h.board.Snapshot()})
	if cmd == nil {
		t.Fatal("BoardMsg returned nil command")
	}
}

func TestModel_PulseFlash(t *testing.T) {
	h, m := newHarness(t, Options{})

	snap := h.board.Snapshot()
	snap.Pulses[0] = 1
	snap.Pulses[1] = 1

	m = update(t, m, msg.BoardMsg{Snapshot: snap})
	if !m.flashing(1) || !m.flashing(2) {
		t.Fatal("pulsed steps not highlighted")
	}
	if m.flashing(3) {
		t.Error("step 3 highlighted without a pulse")
	}

	// Same counts again start nothing new.
	h.now = h.now.Add(PulseFlash / 2)
	m = update(t, m, msg.BoardMsg{Snapshot: snap})
	if len(m.flash) != 2 {
		t.Errorf("flash entries = %d, want 2", len(m.flash))
	}

	h.now = h.now.Add(PulseFlash)
	next, cmd := m.Update(msg.TickMsg(h.now))
	m = next.(Model)
	if len(m.flash) != 0 {
		t.Errorf("flash entries after expiry = %d, want 0", len(m.flash))
	}
	if cmd != nil {
		t.Error("tick kept ticking with nothing to expire")
	}
}

func TestModel_FullRunPulsesEveryStep(t *testing.T) {
	h, m := newHarness(t, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	h.clk.Advance(sequencer.DefaultTimings().NormalRun(h.seq.Catalog().Len(), 1) + time.Second)
	m = h.refresh(t, m)

	for i := 1; i <= h.seq.Catalog().Len(); i++ {
		if !m.flashing(i) {
			t.Errorf("step %d not highlighted after the flourish", i)
		}
	}
	if m.Snapshot().Outcome != sequencer.OutcomeCompleted {
		t.Errorf("outcome = %q, want completed", m.Snapshot().Outcome)
	}
}

func TestModel_View(t *testing.T) {
	h, m := newHarness(t, Options{})

	if got := NewModel(h.seq, h.seq.Catalog(), h.board, nil, Options{}).View(); got != "Loading..." {
		t.Errorf("View() before size = %q, want Loading...", got)
	}

	view := m.View()
	for _, want := range []string{headerTitle, "Lock Decision Point", "decision", "idle", "0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = update(t, m, runeKey("1"))
	m = h.refresh(t, m)
	view = m.View()
	if !strings.Contains(view, "Script Initialization") || !strings.Contains(view, "x to dismiss") {
		t.Error("info panel not rendered")
	}
}

func TestModel_ViewRunStatus(t *testing.T) {
	h, m := newHarness(t, Options{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = h.refresh(t, m)
	if !strings.Contains(m.View(), "running normal run run-1") {
		t.Error("running status not rendered")
	}

	m = update(t, m, runeKey("r"))
	m = h.refresh(t, m)
	if !strings.Contains(m.View(), "last run canceled") {
		t.Error("canceled status not rendered")
	}
}

func TestModel_ViewCompact(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		connectors bool
	}{
		{"tall", 60, true},
		{"short", 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := newHarness(t, Options{})
			m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: tt.height})

			if got := strings.Contains(m.View(), "│"); got != tt.connectors {
				t.Errorf("connector lines drawn = %v, want %v", got, tt.connectors)
			}
		})
	}
}

func TestDimensions_Compact(t *testing.T) {
	tests := []struct {
		dims Dimensions
		want bool
	}{
		{Dimensions{Width: 80, Height: 0}, false},
		{Dimensions{Width: 80, Height: 20}, true},
		{Dimensions{Width: 80, Height: minFullHeight(10)}, false},
	}
	for _, tt := range tests {
		if got := tt.dims.Compact(10); got != tt.want {
			t.Errorf("%+v.Compact(10) = %v, want %v", tt.dims, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{8 * time.Second, "8s"},
		{1500 * time.Millisecond, "1.5s"},
		{1234 * time.Millisecond, "1.2s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
