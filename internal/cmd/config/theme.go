package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	appconfig "github.com/Iron-Ham/archiveflow/internal/config"
	"github.com/Iron-Ham/archiveflow/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the archiveflow diagram.

archiveflow supports both built-in themes and custom user-defined themes.
Custom themes are stored in ~/.config/archiveflow/themes/ as YAML files.

Use 'theme list' to see all available themes.
Use 'theme export' to create a template for custom themes.
Use 'theme info' to view details about a specific theme.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  archiveflow config theme export default               # Print default theme to stdout
  archiveflow config theme export dracula my-theme.yaml # Save dracula theme to file`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

var themeInfoCmd = &cobra.Command{
	Use:   "info <theme-name>",
	Short: "Show information about a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runThemeInfo,
}

var themePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the custom themes directory path",
	RunE:  runThemePath,
}

var themeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new custom theme from the default palette",
	Long: `Create a new custom theme file in your themes directory.

Example:
  archiveflow config theme create ocean
  # Creates ~/.config/archiveflow/themes/ocean.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runThemeCreate,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeInfoCmd)
	themeCmd.AddCommand(themePathCmd)
	themeCmd.AddCommand(themeCreateCmd)
	configCmd.AddCommand(themeCmd)
}

// discoverThemes registers the custom themes on disk and prints load
// failures as warnings.
func discoverThemes(errOut io.Writer) []error {
	_, loadErrs := styles.DiscoverCustomThemes(appconfig.ThemesDir())
	if len(loadErrs) > 0 {
		fmt.Fprintln(errOut, "Warning: Some themes failed to load:")
		for _, err := range loadErrs {
			fmt.Fprintf(errOut, "  - %v\n", err)
		}
		fmt.Fprintln(errOut)
	}
	return loadErrs
}

// requireTheme returns an error for unknown theme names, pointing at a
// failed load if the theme exists on disk.
func requireTheme(name string, loadErrs []error) error {
	if styles.IsValidTheme(name) {
		return nil
	}
	for _, err := range loadErrs {
		errStr := err.Error()
		if strings.HasPrefix(errStr, name+".yaml:") || strings.HasPrefix(errStr, name+".yml:") {
			return fmt.Errorf("theme '%s' exists but failed to load: %v\n\nFix the errors in your theme file and try again", name, err)
		}
	}
	return fmt.Errorf("unknown theme: %s\n\nRun 'archiveflow config theme list' to see available themes.\nCustom themes should be placed in: %s",
		name, appconfig.ThemesDir())
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	discoverThemes(cmd.ErrOrStderr())

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		fmt.Fprintf(out, "  - %s\n", name)
	}

	if customNames := styles.CustomThemeNames(); len(customNames) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Custom themes:")
		for _, name := range customNames {
			theme := styles.GetCustomTheme(styles.ThemeName(name))
			if theme != nil && theme.Author != "" {
				fmt.Fprintf(out, "  - %s (by %s)\n", name, theme.Author)
			} else {
				fmt.Fprintf(out, "  - %s\n", name)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Custom themes directory: %s\n", appconfig.ThemesDir())
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if err := requireTheme(themeName, discoverThemes(cmd.ErrOrStderr())); err != nil {
		return err
	}

	data, err := styles.ExportTheme(styles.ThemeName(themeName))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runThemeInfo(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if err := requireTheme(themeName, discoverThemes(cmd.ErrOrStderr())); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme: %s\n\n", themeName)

	if styles.IsBuiltinTheme(themeName) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: Custom")
		if theme := styles.GetCustomTheme(styles.ThemeName(themeName)); theme != nil {
			if theme.Author != "" {
				fmt.Fprintf(out, "Author: %s\n", theme.Author)
			}
			if theme.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", theme.Description)
			}
		}
	}

	p := styles.GetPalette(styles.ThemeName(themeName))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Base Colors:")
	fmt.Fprintf(out, "  Primary:   %s\n", p.Primary)
	fmt.Fprintf(out, "  Secondary: %s\n", p.Secondary)
	fmt.Fprintf(out, "  Warning:   %s\n", p.Warning)
	fmt.Fprintf(out, "  Error:     %s\n", p.Error)
	fmt.Fprintf(out, "  Muted:     %s\n", p.Muted)
	fmt.Fprintf(out, "  Surface:   %s\n", p.Surface)
	fmt.Fprintf(out, "  Text:      %s\n", p.Text)
	fmt.Fprintf(out, "  Border:    %s\n", p.Border)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Step Colors:")
	fmt.Fprintf(out, "  Idle:      %s\n", p.StepIdle)
	fmt.Fprintf(out, "  Active:    %s\n", p.StepActive)
	fmt.Fprintf(out, "  Completed: %s\n", p.StepCompleted)
	fmt.Fprintf(out, "  Error:     %s\n", p.StepError)
	fmt.Fprintf(out, "  Pulse:     %s\n", p.Pulse)

	return nil
}

func runThemePath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	themesDir := appconfig.ThemesDir()
	fmt.Fprintln(out, themesDir)

	if _, err := os.Stat(themesDir); os.IsNotExist(err) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Note: This directory does not exist yet.")
		fmt.Fprintln(out, "It will be created when you add your first custom theme.")
	}
	return nil
}

func runThemeCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	if name == "" {
		return fmt.Errorf("theme name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\:*?\"<>| ") {
		return fmt.Errorf("theme name contains invalid characters")
	}
	if styles.IsBuiltinTheme(name) {
		return fmt.Errorf("cannot create custom theme with built-in name '%s'", name)
	}

	themesDir := appconfig.ThemesDir()
	for _, ext := range []string{".yaml", ".yml"} {
		if _, err := os.Stat(filepath.Join(themesDir, name+ext)); err == nil {
			return fmt.Errorf("theme '%s' already exists in %s", name, themesDir)
		}
	}

	p := styles.DefaultPalette()
	theme := &styles.ThemeFile{
		Name:        capitalizeFirst(name),
		Description: "A custom archiveflow theme",
		Version:     "1",
		Colors: styles.ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
		},
	}

	path, err := styles.SaveTheme(themesDir, name, theme)
	if err != nil {
		return fmt.Errorf("creating theme: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created new theme: %s\n\n", path)
	fmt.Fprintln(out, "Edit this file to customize your theme colors.")
	fmt.Fprintf(out, "To use your new theme, run:\n")
	fmt.Fprintf(out, "  archiveflow config set tui.theme %s\n", name)
	return nil
}

// capitalizeFirst capitalizes the first character of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
