package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// renderInfoPanel renders the visible info panel within width columns, or
// an empty string when the panel is hidden.
func (m Model) renderInfoPanel(width int) string {
	info := m.snap.Info
	if !info.Visible {
		return ""
	}

	box := m.styles.InfoBox
	if info.Entry.ID == steps.IDArchiveFailed {
		box = m.styles.InfoErrorBox
	}

	// Border and padding take two columns on each side.
	inner := max(width-4, 20)

	title := m.styles.InfoTitle.Render(ansi.Truncate(info.Entry.Title, inner, "…"))
	body := m.styles.InfoBody.Render(ansi.Wordwrap(info.Entry.Description, inner, "-/"))
	footer := m.styles.InfoFooter.Render(fmt.Sprintf("closes in %s · x to dismiss", formatDuration(info.Duration)))

	return box.Width(inner + 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer))
}

// formatDuration renders d to a tenth of a second, e.g. "8s" or "1.5s".
func formatDuration(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}
