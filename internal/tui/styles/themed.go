package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// ThemedStyles holds every style the diagram uses, derived from a palette.
type ThemedStyles struct {
	Palette *ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style

	// Step rows
	StepIdle      lipgloss.Style
	StepActive    lipgloss.Style
	StepCompleted lipgloss.Style
	StepError     lipgloss.Style
	StepFocused   lipgloss.Style
	StepPulse     lipgloss.Style
	StepNumber    lipgloss.Style
	DecisionTag   lipgloss.Style

	// Connectors between steps
	Arrow         lipgloss.Style
	ArrowAnimated lipgloss.Style

	// Info panel
	InfoBox      lipgloss.Style
	InfoErrorBox lipgloss.Style
	InfoTitle    lipgloss.Style
	InfoBody     lipgloss.Style
	InfoFooter   lipgloss.Style

	// Status and help
	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
}

// NewThemedStyles builds the style set for a palette.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	s := &ThemedStyles{Palette: p}

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)
	s.Subtitle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Error = lipgloss.NewStyle().Foreground(p.Error).Bold(true)

	s.StepIdle = lipgloss.NewStyle().Foreground(p.StepIdle)
	s.StepActive = lipgloss.NewStyle().Foreground(p.StepActive).Bold(true)
	s.StepCompleted = lipgloss.NewStyle().Foreground(p.StepCompleted)
	s.StepError = lipgloss.NewStyle().Foreground(p.StepError).Bold(true)
	s.StepFocused = lipgloss.NewStyle().Foreground(p.Primary).Underline(true)
	s.StepPulse = lipgloss.NewStyle().Foreground(p.Pulse).Bold(true)
	s.StepNumber = lipgloss.NewStyle().Foreground(p.Muted).Width(4).Align(lipgloss.Right)
	s.DecisionTag = lipgloss.NewStyle().Foreground(p.Warning).Italic(true)

	s.Arrow = lipgloss.NewStyle().Foreground(p.Border)
	s.ArrowAnimated = lipgloss.NewStyle().Foreground(p.Secondary)

	s.InfoBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(0, 1)
	s.InfoErrorBox = s.InfoBox.BorderForeground(p.Error)
	s.InfoTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Text)
	s.InfoBody = lipgloss.NewStyle().Foreground(p.Text)
	s.InfoFooter = lipgloss.NewStyle().Foreground(p.Muted).Italic(true)

	s.StatusBar = lipgloss.NewStyle().Foreground(p.Muted)
	s.HelpKey = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	s.HelpDesc = lipgloss.NewStyle().Foreground(p.Muted)

	return s
}

// StepStyle returns the style for a step state.
func (s *ThemedStyles) StepStyle(state steps.State) lipgloss.Style {
	switch state {
	case steps.StateActive:
		return s.StepActive
	case steps.StateCompleted:
		return s.StepCompleted
	case steps.StateError:
		return s.StepError
	default:
		return s.StepIdle
	}
}

// StepColor returns the color for a step state.
func (s *ThemedStyles) StepColor(state steps.State) lipgloss.Color {
	switch state {
	case steps.StateActive:
		return s.Palette.StepActive
	case steps.StateCompleted:
		return s.Palette.StepCompleted
	case steps.StateError:
		return s.Palette.StepError
	default:
		return s.Palette.StepIdle
	}
}
