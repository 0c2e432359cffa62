package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault       ThemeName = "default"        // Purple/green dark theme
	ThemeMonokai       ThemeName = "monokai"        // Classic Monokai editor colors
	ThemeDracula       ThemeName = "dracula"        // Dracula theme colors
	ThemeNord          ThemeName = "nord"           // Nord theme - cool blue-gray
	ThemeSolarizedDark ThemeName = "solarized-dark" // Solarized Dark by Ethan Schoonover
	ThemeGruvbox       ThemeName = "gruvbox"        // Gruvbox retro groove
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeDracula),
		string(ThemeNord),
		string(ThemeSolarizedDark),
		string(ThemeGruvbox),
	}
}

// ValidThemes returns all valid theme names (built-in + custom).
func ValidThemes() []string {
	themes := BuiltinThemes()
	themes = append(themes, CustomThemeNames()...)
	return themes
}

// IsValidTheme checks if a theme name is valid (built-in or custom).
func IsValidTheme(name string) bool {
	if slices.Contains(BuiltinThemes(), name) {
		return true
	}
	return IsCustomTheme(name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (title, focused step, progress fill)
	Primary lipgloss.Color
	// Secondary accent color (completed steps)
	Secondary lipgloss.Color
	// Warning color (active step, decision marker)
	Warning lipgloss.Color
	// Error color (failed step, error panel)
	Error lipgloss.Color
	// Muted color (idle steps, help text)
	Muted lipgloss.Color
	// Surface color (info panel background)
	Surface lipgloss.Color
	// Text color (primary text)
	Text lipgloss.Color
	// Border color (panel borders, idle arrows)
	Border lipgloss.Color

	// Step state colors
	StepIdle      lipgloss.Color
	StepActive    lipgloss.Color
	StepCompleted lipgloss.Color
	StepError     lipgloss.Color

	// Pulse is the flash color of the completion flourish
	Pulse lipgloss.Color
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500

		StepIdle:      lipgloss.Color("#9CA3AF"),
		StepActive:    lipgloss.Color("#F59E0B"),
		StepCompleted: lipgloss.Color("#10B981"),
		StepError:     lipgloss.Color("#F87171"),
		Pulse:         lipgloss.Color("#F472B6"), // Pink
	}
}

// MonokaiPalette returns the classic Monokai editor theme palette.
func MonokaiPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#F92672"), // Monokai pink/magenta
		Secondary: lipgloss.Color("#A6E22E"), // Monokai green
		Warning:   lipgloss.Color("#E6DB74"), // Monokai yellow
		Error:     lipgloss.Color("#F92672"), // Monokai pink (same as primary)
		Muted:     lipgloss.Color("#75715E"), // Monokai comment gray
		Surface:   lipgloss.Color("#272822"), // Monokai background
		Text:      lipgloss.Color("#F8F8F2"), // Monokai foreground
		Border:    lipgloss.Color("#49483E"), // Monokai selection

		StepIdle:      lipgloss.Color("#75715E"),
		StepActive:    lipgloss.Color("#E6DB74"),
		StepCompleted: lipgloss.Color("#A6E22E"),
		StepError:     lipgloss.Color("#F92672"),
		Pulse:         lipgloss.Color("#AE81FF"), // Purple
	}
}

// DraculaPalette returns the Dracula theme palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#BD93F9"), // Dracula purple
		Secondary: lipgloss.Color("#50FA7B"), // Dracula green
		Warning:   lipgloss.Color("#F1FA8C"), // Dracula yellow
		Error:     lipgloss.Color("#FF5555"), // Dracula red
		Muted:     lipgloss.Color("#6272A4"), // Dracula comment
		Surface:   lipgloss.Color("#282A36"), // Dracula background
		Text:      lipgloss.Color("#F8F8F2"), // Dracula foreground
		Border:    lipgloss.Color("#44475A"), // Dracula selection

		StepIdle:      lipgloss.Color("#6272A4"),
		StepActive:    lipgloss.Color("#F1FA8C"),
		StepCompleted: lipgloss.Color("#50FA7B"),
		StepError:     lipgloss.Color("#FF5555"),
		Pulse:         lipgloss.Color("#FF79C6"), // Dracula pink
	}
}

// NordPalette returns the Nord theme palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Nord frost (cyan)
		Secondary: lipgloss.Color("#A3BE8C"), // Nord aurora green
		Warning:   lipgloss.Color("#EBCB8B"), // Nord aurora yellow
		Error:     lipgloss.Color("#BF616A"), // Nord aurora red
		Muted:     lipgloss.Color("#4C566A"), // Nord polar night 3
		Surface:   lipgloss.Color("#2E3440"), // Nord polar night 0
		Text:      lipgloss.Color("#ECEFF4"), // Nord snow storm 2
		Border:    lipgloss.Color("#3B4252"), // Nord polar night 1

		StepIdle:      lipgloss.Color("#4C566A"),
		StepActive:    lipgloss.Color("#EBCB8B"),
		StepCompleted: lipgloss.Color("#A3BE8C"),
		StepError:     lipgloss.Color("#BF616A"),
		Pulse:         lipgloss.Color("#B48EAD"), // Nord aurora purple
	}
}

// SolarizedDarkPalette returns the Solarized Dark theme palette.
func SolarizedDarkPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#268BD2"), // Solarized blue
		Secondary: lipgloss.Color("#859900"), // Solarized green
		Warning:   lipgloss.Color("#B58900"), // Solarized yellow
		Error:     lipgloss.Color("#DC322F"), // Solarized red
		Muted:     lipgloss.Color("#586E75"), // Base01
		Surface:   lipgloss.Color("#002B36"), // Base03 background
		Text:      lipgloss.Color("#839496"), // Base0 text
		Border:    lipgloss.Color("#073642"), // Base02

		StepIdle:      lipgloss.Color("#586E75"),
		StepActive:    lipgloss.Color("#B58900"),
		StepCompleted: lipgloss.Color("#859900"),
		StepError:     lipgloss.Color("#DC322F"),
		Pulse:         lipgloss.Color("#D33682"), // Solarized magenta
	}
}

// GruvboxPalette returns the Gruvbox theme palette.
func GruvboxPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#83A598"), // Gruvbox aqua
		Secondary: lipgloss.Color("#B8BB26"), // Gruvbox green
		Warning:   lipgloss.Color("#FABD2F"), // Gruvbox yellow
		Error:     lipgloss.Color("#FB4934"), // Gruvbox red
		Muted:     lipgloss.Color("#928374"), // Gruvbox gray
		Surface:   lipgloss.Color("#282828"), // Gruvbox bg0
		Text:      lipgloss.Color("#EBDBB2"), // Gruvbox fg
		Border:    lipgloss.Color("#3C3836"), // Gruvbox bg1

		StepIdle:      lipgloss.Color("#928374"),
		StepActive:    lipgloss.Color("#FABD2F"),
		StepCompleted: lipgloss.Color("#B8BB26"),
		StepError:     lipgloss.Color("#FB4934"),
		Pulse:         lipgloss.Color("#D3869B"), // Gruvbox purple
	}
}

// GetPalette returns the color palette for the given theme name.
// Checks custom themes first, then falls back to built-in themes.
// Returns the default palette for unknown theme names.
func GetPalette(name ThemeName) *ColorPalette {
	if custom := GetCustomTheme(name); custom != nil {
		return custom.ToPalette()
	}

	switch name {
	case ThemeMonokai:
		return MonokaiPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeNord:
		return NordPalette()
	case ThemeSolarizedDark:
		return SolarizedDarkPalette()
	case ThemeGruvbox:
		return GruvboxPalette()
	default:
		return DefaultPalette()
	}
}
