package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/archiveflow/internal/sequencer"
)

// TickInterval is how often TickMsg fires while a pulse is visible.
const TickInterval = 100 * time.Millisecond

// Tick returns a command that sends a TickMsg after TickInterval.
func Tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Snapshotter is the part of a board the listener reads from.
type Snapshotter interface {
	Snapshot() sequencer.Snapshot
}

// WaitForBoard returns a command that blocks until the board signals a
// change on wake, then reports the board's current surface. Multiple
// changes between two reads collapse into one message.
// It returns nil once wake is closed.
func WaitForBoard(wake <-chan struct{}, board Snapshotter) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-wake; !ok {
			return nil
		}
		return BoardMsg{Snapshot: board.Snapshot()}
	}
}

// Welcome returns a command that sends WelcomeMsg after delay.
func Welcome(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return WelcomeMsg{}
	})
}
