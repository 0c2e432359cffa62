package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/archiveflow/internal/steps"
	"github.com/Iron-Ham/archiveflow/internal/tui/styles"
)

// Column widths of a step row before the title.
const (
	markerWidth = 2
	numberWidth = 4
	gutterWidth = markerWidth + numberWidth + 1
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.quitting {
		return "Goodbye!\n"
	}

	dims := Dimensions{Width: m.width, Height: m.height}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderSteps(dims.Compact(m.catalog.Len())))
	b.WriteString("\n\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n")

	if panel := m.renderInfoPanel(min(m.width, 80)); panel != "" {
		b.WriteString("\n")
		b.WriteString(panel)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// renderSteps draws the pipeline top to bottom. In compact mode the
// connector lines are dropped and an animated connector is shown at the end
// of its row instead.
func (m Model) renderSteps(compact bool) string {
	pipeline := m.catalog.Pipeline()
	lines := make([]string, 0, 2*len(pipeline))

	for i, d := range pipeline {
		row := m.renderStep(d)
		animated := i < len(m.snap.Arrows) && m.snap.Arrows[i]
		last := i == len(pipeline)-1

		if compact {
			if animated && !last {
				row += " " + m.styles.ArrowAnimated.Render("↓")
			}
			lines = append(lines, row)
			continue
		}

		lines = append(lines, row)
		if !last {
			lines = append(lines, m.renderConnector(animated))
		}
	}

	return strings.Join(lines, "\n")
}

// renderStep draws one step row: focus marker, number, state icon, title
// and the decision tag.
func (m Model) renderStep(d steps.Descriptor) string {
	state := m.snap.StepState(d.Index)
	style := m.styles.StepStyle(state)
	if m.flashing(d.Index) {
		style = m.styles.StepPulse
	}

	marker := strings.Repeat(" ", markerWidth)
	titleStyle := style
	if d.Index == m.focus {
		marker = m.styles.Title.Render("›") + " "
		titleStyle = style.Underline(true)
	}

	var tag string
	if d.Decision {
		tag = " " + m.styles.DecisionTag.Render("decision")
	}

	avail := m.width - gutterWidth - 2 - lipgloss.Width(tag)
	title := ansi.Truncate(d.Title, max(avail, 8), "…")

	return marker +
		m.styles.StepNumber.Render(strconv.Itoa(d.Index)+".") + " " +
		style.Render(styles.StepIcon(state)) + " " +
		titleStyle.Render(title) +
		tag
}

// renderConnector draws the line between two steps, lit once the arrow
// leaving the upper step has animated.
func (m Model) renderConnector(animated bool) string {
	pad := strings.Repeat(" ", gutterWidth)
	if animated {
		return pad + m.styles.ArrowAnimated.Render("↓")
	}
	return pad + m.styles.Arrow.Render("│")
}

func (m Model) renderProgress() string {
	pct := m.snap.Progress
	return m.bar.ViewAs(pct/100) + m.styles.Muted.Render(fmt.Sprintf(" %3.0f%%", pct))
}
