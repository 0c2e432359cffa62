// Package config provides CLI commands for managing archiveflow configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/archiveflow/internal/config"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify archiveflow configuration",
	Long: `View or modify archiveflow configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  archiveflow config set animation.speed 2
  archiveflow config set animation.failure_step verify
  archiveflow config set tui.theme dracula

Valid keys:
  animation.speed              - Pace multiplier, 0.1 to 20
  animation.*_ms               - Individual delays in milliseconds
  animation.failure_step       - Step id the error simulation fails at
  info.pipeline_display_ms     - How long a step panel stays visible
  info.manual_display_ms       - How long a manual-testing panel stays visible
  tui.theme                    - Color theme name
  tui.show_welcome             - Show the welcome notice (true/false)
  tui.welcome_delay_ms         - Delay before the welcome notice
  tui.welcome_display_ms       - How long the welcome notice stays visible
  catalog.path                 - YAML file overriding step titles and descriptions
  logging.enabled              - Write a debug log (true/false)
  logging.level                - debug, info, warn or error
  logging.dir                  - Log directory (default: the config directory)
  logging.mirror               - Also print log records to stderr in play mode`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/archiveflow/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  archiveflow config reset                  # Reset all to defaults
  archiveflow config reset animation.speed  # Reset only animation.speed`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// Value kinds of settable keys.
const (
	kindString = "string"
	kindBool   = "bool"
	kindInt    = "int"
	kindFloat  = "float"
)

// defaultValues maps every settable key to its default.
func defaultValues() map[string]any {
	d := appconfig.Default()
	return map[string]any{
		"animation.speed":                  d.Animation.Speed,
		"animation.info_delay_ms":          d.Animation.InfoDelayMs,
		"animation.step_dwell_ms":          d.Animation.StepDwellMs,
		"animation.settle_ms":              d.Animation.SettleMs,
		"animation.decision_pause_ms":      d.Animation.DecisionPauseMs,
		"animation.step_gap_ms":            d.Animation.StepGapMs,
		"animation.finale_delay_ms":        d.Animation.FinaleDelayMs,
		"animation.pulse_stagger_ms":       d.Animation.PulseStaggerMs,
		"animation.complete_info_delay_ms": d.Animation.CompleteInfoDelayMs,
		"animation.error_delay_ms":         d.Animation.ErrorDelayMs,
		"animation.error_hold_ms":          d.Animation.ErrorHoldMs,
		"animation.failure_step":           d.Animation.FailureStep,
		"info.pipeline_display_ms":         d.Info.PipelineDisplayMs,
		"info.manual_display_ms":           d.Info.ManualDisplayMs,
		"tui.theme":                        d.TUI.Theme,
		"tui.show_welcome":                 d.TUI.ShowWelcome,
		"tui.welcome_delay_ms":             d.TUI.WelcomeDelayMs,
		"tui.welcome_display_ms":           d.TUI.WelcomeDisplayMs,
		"catalog.path":                     d.Catalog.Path,
		"logging.enabled":                  d.Logging.Enabled,
		"logging.level":                    d.Logging.Level,
		"logging.dir":                      d.Logging.Dir,
		"logging.mirror":                   d.Logging.Mirror,
	}
}

// keyKind returns the value kind of a settable key.
func keyKind(key string) (string, bool) {
	v, ok := defaultValues()[key]
	if !ok {
		return "", false
	}
	switch v.(type) {
	case bool:
		return kindBool, true
	case int:
		return kindInt, true
	case float64:
		return kindFloat, true
	default:
		return kindString, true
	}
}

// parseValue converts a command-line value to the kind of key.
func parseValue(key, value string) (any, error) {
	kind, ok := keyKind(key)
	if !ok {
		return nil, unknownKeyError(key)
	}

	switch kind {
	case kindBool:
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected number", key)
		}
		return f, nil
	default:
		return value, nil
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	settings := viper.AllSettings()
	delete(settings, "config")

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	fmt.Fprint(out, string(data))

	if _, err := appconfig.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "\nWarning: %v\n", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)
	if _, err := appconfig.Load(); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

// writeConfig saves the current settings to the user's config file.
func writeConfig() (string, error) {
	if err := os.MkdirAll(appconfig.ConfigDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := appconfig.ConfigFile()
	if viper.ConfigFileUsed() != "" {
		configFile = viper.ConfigFileUsed()
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

// configTemplate is written by 'config init'.
const configTemplate = `# archiveflow configuration

# Pacing of a run. All delays are in milliseconds; speed scales them all.
animation:
  speed: 1
  info_delay_ms: 200
  step_dwell_ms: 1500
  settle_ms: 500
  # Extra wait after the lock decision step
  decision_pause_ms: 800
  step_gap_ms: 200
  finale_delay_ms: 500
  pulse_stagger_ms: 100
  complete_info_delay_ms: 1000
  error_delay_ms: 1000
  error_hold_ms: 8000
  # Step id the error simulation fails at
  failure_step: archive

# How long info panels stay visible
info:
  pipeline_display_ms: 8000
  manual_display_ms: 10000

# Terminal UI
tui:
  # default, monokai, dracula, nord, solarized-dark, gruvbox or a custom theme
  theme: default
  show_welcome: true
  welcome_delay_ms: 1500
  welcome_display_ms: 10000

# Optional YAML file overriding step titles and descriptions
catalog:
  path: ""

# Debug logging
logging:
  enabled: false
  level: info
  dir: ""
  mirror: false
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'archiveflow config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit this file to customize archiveflow's behavior.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintf(out, "\nEnvironment variables: %s_* (e.g., %s_ANIMATION_SPEED)\n", appconfig.EnvPrefix, appconfig.EnvPrefix)
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	defaults := defaultValues()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, key := range validKeys() {
			viper.Set(key, defaults[key])
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		key := args[0]
		value, ok := defaults[key]
		if !ok {
			return unknownKeyError(key)
		}
		viper.Set(key, value)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// validKeys returns every settable key in sorted order.
func validKeys() []string {
	keys := make([]string, 0, 32)
	for key := range defaultValues() {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func unknownKeyError(key string) error {
	if similar := suggestKeys(key); len(similar) > 0 {
		return fmt.Errorf("unknown configuration key: %s\nKeys in this section: %s", key, strings.Join(similar, ", "))
	}
	return fmt.Errorf("unknown configuration key: %s\nRun 'archiveflow config set --help' to see valid keys", key)
}

// suggestKeys returns the settable keys sharing key's section.
func suggestKeys(key string) []string {
	section, _, _ := strings.Cut(key, ".")
	var out []string
	for _, k := range validKeys() {
		if strings.HasPrefix(k, section+".") {
			out = append(out, k)
		}
	}
	return out
}
