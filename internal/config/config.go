package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName names the config directory, env prefix and log file.
const AppName = "archiveflow"

// EnvPrefix is prepended to environment overrides, e.g. ARCHIVEFLOW_ANIMATION_SPEED.
const EnvPrefix = "ARCHIVEFLOW"

// Config represents the complete archiveflow configuration
type Config struct {
	Animation AnimationConfig `mapstructure:"animation"`
	Info      InfoConfig      `mapstructure:"info"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AnimationConfig controls the pacing of a run. All durations are in
// milliseconds.
type AnimationConfig struct {
	// Speed multiplies the pace of every delay (2 runs twice as fast)
	Speed float64 `mapstructure:"speed"`
	// InfoDelayMs is the wait between a step activating and its panel appearing
	InfoDelayMs int `mapstructure:"info_delay_ms"`
	// StepDwellMs is how long a step stays active
	StepDwellMs int `mapstructure:"step_dwell_ms"`
	// SettleMs is the wait after a step completes
	SettleMs int `mapstructure:"settle_ms"`
	// DecisionPauseMs is the extra wait after the decision step
	DecisionPauseMs int `mapstructure:"decision_pause_ms"`
	// StepGapMs is the pause between steps
	StepGapMs int `mapstructure:"step_gap_ms"`
	// FinaleDelayMs is the wait before the completion pulse
	FinaleDelayMs int `mapstructure:"finale_delay_ms"`
	// PulseStaggerMs offsets each step's completion pulse
	PulseStaggerMs int `mapstructure:"pulse_stagger_ms"`
	// CompleteInfoDelayMs is the wait before the final panel
	CompleteInfoDelayMs int `mapstructure:"complete_info_delay_ms"`
	// ErrorDelayMs is the wait before the failing step turns red
	ErrorDelayMs int `mapstructure:"error_delay_ms"`
	// ErrorHoldMs is how long the failure panel stays up
	ErrorHoldMs int `mapstructure:"error_hold_ms"`
	// FailureStep is the step id the error simulation fails at (default: "archive")
	FailureStep string `mapstructure:"failure_step"`
}

// InfoConfig controls how long info panels stay visible
type InfoConfig struct {
	PipelineDisplayMs int `mapstructure:"pipeline_display_ms"`
	ManualDisplayMs   int `mapstructure:"manual_display_ms"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default").
	// Builtin themes or the name of a YAML file in the themes directory.
	Theme string `mapstructure:"theme"`
	// ShowWelcome shows the welcome notice shortly after launch
	ShowWelcome bool `mapstructure:"show_welcome"`
	// WelcomeDelayMs is the wait before the welcome notice
	WelcomeDelayMs int `mapstructure:"welcome_delay_ms"`
	// WelcomeDisplayMs is how long the welcome notice stays visible
	WelcomeDisplayMs int `mapstructure:"welcome_display_ms"`
}

// CatalogConfig points at optional narrative overrides
type CatalogConfig struct {
	// Path to a YAML file overriding step titles and descriptions.
	// Relative paths resolve against the config directory.
	Path string `mapstructure:"path"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is active (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory the log file is written to (default: the config directory)
	Dir string `mapstructure:"dir"`
	// Mirror also writes human-readable records to stderr (headless mode only)
	Mirror bool `mapstructure:"mirror"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			Speed:               1,
			InfoDelayMs:         200,
			StepDwellMs:         1500,
			SettleMs:            500,
			DecisionPauseMs:     800,
			StepGapMs:           200,
			FinaleDelayMs:       500,
			PulseStaggerMs:      100,
			CompleteInfoDelayMs: 1000,
			ErrorDelayMs:        1000,
			ErrorHoldMs:         8000,
			FailureStep:         "archive",
		},
		Info: InfoConfig{
			PipelineDisplayMs: 8000,
			ManualDisplayMs:   10000,
		},
		TUI: TUIConfig{
			Theme:            "default",
			ShowWelcome:      true,
			WelcomeDelayMs:   1500,
			WelcomeDisplayMs: 10000,
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "", // Empty means use ConfigDir()
			Mirror:  false,
		},
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// InfoDelay returns the info delay as a time.Duration
func (c *AnimationConfig) InfoDelay() time.Duration { return ms(c.InfoDelayMs) }

// StepDwell returns the step dwell as a time.Duration
func (c *AnimationConfig) StepDwell() time.Duration { return ms(c.StepDwellMs) }

// Settle returns the settle delay as a time.Duration
func (c *AnimationConfig) Settle() time.Duration { return ms(c.SettleMs) }

// DecisionPause returns the decision pause as a time.Duration
func (c *AnimationConfig) DecisionPause() time.Duration { return ms(c.DecisionPauseMs) }

// StepGap returns the step gap as a time.Duration
func (c *AnimationConfig) StepGap() time.Duration { return ms(c.StepGapMs) }

// FinaleDelay returns the finale delay as a time.Duration
func (c *AnimationConfig) FinaleDelay() time.Duration { return ms(c.FinaleDelayMs) }

// PulseStagger returns the pulse stagger as a time.Duration
func (c *AnimationConfig) PulseStagger() time.Duration { return ms(c.PulseStaggerMs) }

// CompleteInfoDelay returns the complete-panel delay as a time.Duration
func (c *AnimationConfig) CompleteInfoDelay() time.Duration { return ms(c.CompleteInfoDelayMs) }

// ErrorDelay returns the error delay as a time.Duration
func (c *AnimationConfig) ErrorDelay() time.Duration { return ms(c.ErrorDelayMs) }

// ErrorHold returns the error hold as a time.Duration
func (c *AnimationConfig) ErrorHold() time.Duration { return ms(c.ErrorHoldMs) }

// PipelineDisplay returns the pipeline panel hold as a time.Duration
func (c *InfoConfig) PipelineDisplay() time.Duration { return ms(c.PipelineDisplayMs) }

// ManualDisplay returns the manual panel hold as a time.Duration
func (c *InfoConfig) ManualDisplay() time.Duration { return ms(c.ManualDisplayMs) }

// WelcomeDelay returns the welcome delay as a time.Duration
func (c *TUIConfig) WelcomeDelay() time.Duration { return ms(c.WelcomeDelayMs) }

// WelcomeDisplay returns the welcome hold as a time.Duration
func (c *TUIConfig) WelcomeDisplay() time.Duration { return ms(c.WelcomeDisplayMs) }

// ResolveCatalogPath returns the absolute overrides path, or "" when unset.
func (c *CatalogConfig) ResolveCatalogPath(baseDir string) string {
	if c.Path == "" {
		return ""
	}
	path := expandHome(c.Path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return path
}

// ResolveDir returns the directory the log file goes to.
func (c *LoggingConfig) ResolveDir(baseDir string) string {
	if c.Dir == "" {
		return baseDir
	}
	return expandHome(c.Dir)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	return path
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("animation.speed", defaults.Animation.Speed)
	viper.SetDefault("animation.info_delay_ms", defaults.Animation.InfoDelayMs)
	viper.SetDefault("animation.step_dwell_ms", defaults.Animation.StepDwellMs)
	viper.SetDefault("animation.settle_ms", defaults.Animation.SettleMs)
	viper.SetDefault("animation.decision_pause_ms", defaults.Animation.DecisionPauseMs)
	viper.SetDefault("animation.step_gap_ms", defaults.Animation.StepGapMs)
	viper.SetDefault("animation.finale_delay_ms", defaults.Animation.FinaleDelayMs)
	viper.SetDefault("animation.pulse_stagger_ms", defaults.Animation.PulseStaggerMs)
	viper.SetDefault("animation.complete_info_delay_ms", defaults.Animation.CompleteInfoDelayMs)
	viper.SetDefault("animation.error_delay_ms", defaults.Animation.ErrorDelayMs)
	viper.SetDefault("animation.error_hold_ms", defaults.Animation.ErrorHoldMs)
	viper.SetDefault("animation.failure_step", defaults.Animation.FailureStep)

	viper.SetDefault("info.pipeline_display_ms", defaults.Info.PipelineDisplayMs)
	viper.SetDefault("info.manual_display_ms", defaults.Info.ManualDisplayMs)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.show_welcome", defaults.TUI.ShowWelcome)
	viper.SetDefault("tui.welcome_delay_ms", defaults.TUI.WelcomeDelayMs)
	viper.SetDefault("tui.welcome_display_ms", defaults.TUI.WelcomeDisplayMs)

	viper.SetDefault("catalog.path", defaults.Catalog.Path)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.mirror", defaults.Logging.Mirror)
}

// Load reads the configuration from viper into a Config struct and validates it.
// Returns an error if unmarshaling fails or if validation errors are found.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults on error.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the configuration directory path
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigFile returns the default config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ThemesDir returns the directory custom theme files are loaded from
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}
