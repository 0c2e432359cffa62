package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/archiveflow/internal/sequencer"
)

// Header text.
const (
	headerTitle    = "📦 Log Archive Automation"
	headerSubtitle = "log-archive.sh · developed with manual testing verification"
)

// renderHeader renders the title and subtitle.
func (m Model) renderHeader() string {
	return m.styles.Title.Render(headerTitle) + "\n" + m.styles.Subtitle.Render(headerSubtitle)
}

// renderStatus renders the run state followed by the latest status or
// error message.
func (m Model) renderStatus() string {
	parts := []string{m.runStatus()}
	if m.statusMessage != "" {
		parts = append(parts, m.statusMessage)
	}

	line := m.styles.StatusBar.Render(strings.Join(parts, " · "))
	if m.errorMessage != "" {
		line += " " + m.styles.Error.Render(m.errorMessage)
	}
	return line
}

func (m Model) runStatus() string {
	if m.snap.Running {
		return fmt.Sprintf("● running %s run %s", m.snap.Run.Kind, shortID(m.snap.Run.ID))
	}

	switch m.snap.Outcome {
	case sequencer.OutcomeCompleted:
		return "✓ last run completed"
	case sequencer.OutcomeFailed:
		return "✗ last run failed"
	case sequencer.OutcomeCanceled:
		return "last run canceled"
	default:
		return "idle"
	}
}

// shortID trims a run id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
