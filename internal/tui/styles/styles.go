// Package styles defines the color palettes, custom theme files and lipgloss
// styles the diagram is drawn with.
package styles

import (
	"fmt"
	"strings"

	apperrors "github.com/Iron-Ham/archiveflow/internal/errors"
	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// Step state icons
const (
	IconIdle      = "○"
	IconActive    = "◉"
	IconCompleted = "✓"
	IconError     = "✗"
)

// StepIcon returns the icon for a step state.
func StepIcon(state steps.State) string {
	switch state {
	case steps.StateActive:
		return IconActive
	case steps.StateCompleted:
		return IconCompleted
	case steps.StateError:
		return IconError
	default:
		return IconIdle
	}
}

// Resolve returns the styles for a theme name. Empty means default. Unknown
// names return ErrInvalidTheme along with the default styles, so callers
// can warn and carry on.
func Resolve(name string) (*ThemedStyles, error) {
	if name == "" {
		name = string(ThemeDefault)
	}
	if !IsValidTheme(name) {
		return NewThemedStyles(DefaultPalette()), fmt.Errorf("%w: %q (available: %s)",
			apperrors.ErrInvalidTheme, name, strings.Join(ValidThemes(), ", "))
	}
	return NewThemedStyles(GetPalette(ThemeName(name))), nil
}
