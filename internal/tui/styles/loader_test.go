package styles

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		name     string
		color    string
		expected bool
	}{
		{"valid 6-digit hex", "#A78BFA", true},
		{"valid 6-digit hex lowercase", "#a78bfa", true},
		{"valid 3-digit hex", "#ABC", true},
		{"invalid - no hash", "A78BFA", false},
		{"invalid - too short", "#AB", false},
		{"invalid - too long", "#A78BFAAB", false},
		{"invalid - 4 digits", "#ABCD", false},
		{"invalid - bad characters", "#GHIJKL", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isValidHexColor(tt.color)
			if got != tt.expected {
				t.Errorf("isValidHexColor(%q) = %v, want %v", tt.color, got, tt.expected)
			}
		})
	}
}

func validTheme() ThemeFile {
	return ThemeFile{
		Name:    "Test Theme",
		Version: "1",
		Colors: ThemeColors{
			Primary:   "#A78BFA",
			Secondary: "#10B981",
			Warning:   "#F59E0B",
			Error:     "#F87171",
			Muted:     "#9CA3AF",
			Surface:   "#1F2937",
			Text:      "#F9FAFB",
			Border:    "#6B7280",
		},
	}
}

func TestThemeFileValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ThemeFile)
		errMsg string
	}{
		{"valid minimal theme", func(*ThemeFile) {}, ""},
		{"valid with step colors", func(f *ThemeFile) { f.Colors.Steps.Active = "#FFF" }, ""},
		{"missing name", func(f *ThemeFile) { f.Name = "" }, "theme name is required"},
		{"missing version", func(f *ThemeFile) { f.Version = "" }, "theme version is required"},
		{"unsupported version", func(f *ThemeFile) { f.Version = "2" }, "unsupported theme version"},
		{"missing primary", func(f *ThemeFile) { f.Colors.Primary = "" }, "color 'primary' is required"},
		{"bad border", func(f *ThemeFile) { f.Colors.Border = "gray" }, "color 'border' has invalid format"},
		{"bad step color", func(f *ThemeFile) { f.Colors.Steps.Error = "red" }, "color 'steps.error' has invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := validTheme()
			tt.modify(&theme)
			err := theme.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestThemeFileToPalette_Defaults(t *testing.T) {
	theme := validTheme()
	p := theme.ToPalette()

	if p.StepIdle != p.Muted {
		t.Errorf("StepIdle = %q, want muted %q", p.StepIdle, p.Muted)
	}
	if p.StepActive != p.Warning {
		t.Errorf("StepActive = %q, want warning %q", p.StepActive, p.Warning)
	}
	if p.StepCompleted != p.Secondary {
		t.Errorf("StepCompleted = %q, want secondary %q", p.StepCompleted, p.Secondary)
	}
	if p.StepError != p.Error {
		t.Errorf("StepError = %q, want error %q", p.StepError, p.Error)
	}

	theme.Colors.Steps.Pulse = "#123456"
	if got := theme.ToPalette().Pulse; got != "#123456" {
		t.Errorf("Pulse = %q, want #123456", got)
	}
}

func writeTheme(t *testing.T, dir, name string, theme ThemeFile) {
	t.Helper()
	data, err := yaml.Marshal(theme)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverCustomThemes(t *testing.T) {
	ClearCustomThemes()
	defer ClearCustomThemes()

	dir := t.TempDir()
	writeTheme(t, dir, "ocean.yaml", validTheme())
	writeTheme(t, dir, "forest.yml", validTheme())
	writeTheme(t, dir, "nord.yaml", validTheme()) // collides with a builtin
	broken := validTheme()
	broken.Version = ""
	writeTheme(t, dir, "broken.yaml", broken)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, errs := DiscoverCustomThemes(dir)
	slices.Sort(loaded)
	if !slices.Equal(loaded, []string{"forest", "ocean"}) {
		t.Errorf("loaded = %v, want [forest ocean]", loaded)
	}
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(errs), errs)
	}
	if !IsValidTheme("ocean") || !IsCustomTheme("forest") {
		t.Error("discovered themes not registered")
	}
	if GetPalette("ocean").Primary != "#A78BFA" {
		t.Error("GetPalette did not use the custom theme")
	}
}

func TestDiscoverCustomThemes_MissingDir(t *testing.T) {
	loaded, errs := DiscoverCustomThemes(filepath.Join(t.TempDir(), "nope"))
	if len(loaded) != 0 || len(errs) != 0 {
		t.Errorf("DiscoverCustomThemes(missing) = %v, %v, want nothing", loaded, errs)
	}
}

func TestExportTheme_RoundTrip(t *testing.T) {
	ClearCustomThemes()

	data, err := ExportTheme(ThemeGruvbox)
	if err != nil {
		t.Fatalf("ExportTheme() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "gruvbox-copy.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error = %v", err)
	}
	if *theme.ToPalette() != *GruvboxPalette() {
		t.Errorf("round-tripped palette differs:\n got %+v\nwant %+v", theme.ToPalette(), GruvboxPalette())
	}
}

func TestLoadThemeFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadThemeFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("name: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadThemeFile(bad); err == nil || !strings.Contains(err.Error(), "parsing theme file") {
		t.Errorf("LoadThemeFile(bad) error = %v, want parse error", err)
	}
}

func TestSaveTheme(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "themes")
	theme := validTheme()

	path, err := SaveTheme(dir, "mine", &theme)
	if err != nil {
		t.Fatalf("SaveTheme() error = %v", err)
	}
	if path != filepath.Join(dir, "mine.yaml") {
		t.Errorf("path = %q", path)
	}

	loaded, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error = %v", err)
	}
	if loaded.Colors != theme.Colors {
		t.Errorf("colors = %+v, want %+v", loaded.Colors, theme.Colors)
	}
}

func TestSaveTheme_Invalid(t *testing.T) {
	theme := validTheme()
	theme.Colors.Primary = "purple"

	if _, err := SaveTheme(t.TempDir(), "bad", &theme); err == nil {
		t.Error("SaveTheme() accepted an invalid theme")
	}
}
