package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "animation.step_dwell_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// nameRegex validates theme names and step ids, which double as file names
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// Speed bounds; outside them a run is either instant or takes hours.
const (
	MinSpeed = 0.1
	MaxSpeed = 20.0
)

// maxDelayMs caps any single delay at one minute.
const maxDelayMs = 60_000

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAnimation()...)
	errors = append(errors, c.validateInfo()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// checkDelay reports a delay outside 0..maxDelayMs.
func checkDelay(field string, value int) []ValidationError {
	if value < 0 {
		return []ValidationError{{Field: field, Value: value, Message: "must be non-negative"}}
	}
	if value > maxDelayMs {
		return []ValidationError{{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxDelayMs),
		}}
	}
	return nil
}

// validateAnimation validates the AnimationConfig
func (c *Config) validateAnimation() []ValidationError {
	var errors []ValidationError
	a := c.Animation

	if a.Speed < MinSpeed || a.Speed > MaxSpeed {
		errors = append(errors, ValidationError{
			Field:   "animation.speed",
			Value:   a.Speed,
			Message: fmt.Sprintf("must be between %g and %g", MinSpeed, MaxSpeed),
		})
	}

	errors = append(errors, checkDelay("animation.info_delay_ms", a.InfoDelayMs)...)
	errors = append(errors, checkDelay("animation.settle_ms", a.SettleMs)...)
	errors = append(errors, checkDelay("animation.decision_pause_ms", a.DecisionPauseMs)...)
	errors = append(errors, checkDelay("animation.step_gap_ms", a.StepGapMs)...)
	errors = append(errors, checkDelay("animation.finale_delay_ms", a.FinaleDelayMs)...)
	errors = append(errors, checkDelay("animation.pulse_stagger_ms", a.PulseStaggerMs)...)
	errors = append(errors, checkDelay("animation.complete_info_delay_ms", a.CompleteInfoDelayMs)...)
	errors = append(errors, checkDelay("animation.error_delay_ms", a.ErrorDelayMs)...)
	errors = append(errors, checkDelay("animation.error_hold_ms", a.ErrorHoldMs)...)

	// A step must be visibly active for some time
	if a.StepDwellMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "animation.step_dwell_ms",
			Value:   a.StepDwellMs,
			Message: "must be positive",
		})
	} else {
		errors = append(errors, checkDelay("animation.step_dwell_ms", a.StepDwellMs)...)
	}

	if a.FailureStep != "" && !nameRegex.MatchString(a.FailureStep) {
		errors = append(errors, ValidationError{
			Field:   "animation.failure_step",
			Value:   a.FailureStep,
			Message: "must be a step id (letters, digits, hyphen, underscore)",
		})
	}

	return errors
}

// validateInfo validates the InfoConfig
func (c *Config) validateInfo() []ValidationError {
	var errors []ValidationError

	if c.Info.PipelineDisplayMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "info.pipeline_display_ms",
			Value:   c.Info.PipelineDisplayMs,
			Message: "must be positive",
		})
	}
	if c.Info.ManualDisplayMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "info.manual_display_ms",
			Value:   c.Info.ManualDisplayMs,
			Message: "must be positive",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !nameRegex.MatchString(c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: "must be a theme name (letters, digits, hyphen, underscore)",
		})
	}

	errors = append(errors, checkDelay("tui.welcome_delay_ms", c.TUI.WelcomeDelayMs)...)

	if c.TUI.ShowWelcome && c.TUI.WelcomeDisplayMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "tui.welcome_display_ms",
			Value:   c.TUI.WelcomeDisplayMs,
			Message: "must be positive when show_welcome is enabled",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
