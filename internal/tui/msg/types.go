package msg

import (
	"time"

	"github.com/Iron-Ham/archiveflow/internal/sequencer"
)

// TickMsg is sent periodically while a completion pulse is fading.
type TickMsg time.Time

// BoardMsg carries a fresh copy of the diagram surface after the sequencer
// changed it.
type BoardMsg struct {
	Snapshot sequencer.Snapshot
}

// WelcomeMsg fires once the welcome delay after launch has elapsed.
type WelcomeMsg struct{}

// TimingsMsg signals that configuration was reloaded and carries the
// timings the next run should use.
type TimingsMsg struct {
	Timings sequencer.Timings
}

// ErrMsg wraps an error to be displayed in the UI.
type ErrMsg struct {
	Err error
}
