// Package errors provides the error definitions shared across archiveflow.
// It defines sentinel errors, typed errors that carry context about where a
// failure happened, and classification helpers used by the CLI to decide
// what is safe to print.
//
// # Error Types
//
//   - CatalogError: a step catalog override file could not be used
//   - RenderError: a renderer faulted while the sequencer drove it
//
// # Usage
//
//	err := errors.NewCatalogError("unknown step id", errors.ErrUnknownStep).
//		WithPath("/etc/archiveflow/steps.yaml").
//		WithStepID("tarball")
//
//	if errors.Is(err, errors.ErrUnknownStep) { ... }
//
//	var catErr *errors.CatalogError
//	if errors.As(err, &catErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrUnknownStep indicates that a step id is not part of the catalog.
	ErrUnknownStep = New("unknown step")
	// ErrInvalidCatalog indicates that a catalog definition is malformed.
	ErrInvalidCatalog = New("invalid step catalog")
	// ErrRunInProgress indicates that a run is already active.
	ErrRunInProgress = New("run already in progress")
	// ErrInvalidTheme indicates that a theme file is malformed.
	ErrInvalidTheme = New("invalid theme")
	// ErrRendererPanic indicates that a renderer panicked while drawing.
	ErrRendererPanic = New("renderer panicked")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// classified is implemented by every typed error in this package.
type classified interface {
	error
	Severity() Severity
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Domain Errors
// -----------------------------------------------------------------------------

// CatalogError represents a problem with a step catalog definition.
//
// Example:
//
//	err := errors.NewCatalogError("empty title", errors.ErrInvalidCatalog).WithStepID("lock")
//	fmt.Println(err) // "catalog error [step=lock]: empty title: invalid step catalog"
type CatalogError struct {
	baseError
	Path   string
	StepID string
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(message string, cause error) *CatalogError {
	return &CatalogError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithPath adds the catalog file path to the error context.
func (e *CatalogError) WithPath(path string) *CatalogError {
	e.Path = path
	return e
}

// WithStepID adds the offending step id to the error context.
func (e *CatalogError) WithStepID(id string) *CatalogError {
	e.StepID = id
	return e
}

// Error returns the formatted error message.
func (e *CatalogError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.StepID != "" {
		parts = append(parts, fmt.Sprintf("step=%s", e.StepID))
	}
	return formatPrefixed("catalog error", parts, &e.baseError)
}

// RenderError records a fault raised by a renderer while the sequencer was
// applying a visual transition. These are logged and swallowed; they never
// reach the caller of a sequencer operation.
type RenderError struct {
	baseError
	Step      int
	Operation string
}

// NewRenderError creates a new RenderError.
func NewRenderError(operation string, cause error) *RenderError {
	return &RenderError{
		baseError: baseError{
			message:  "render failed",
			cause:    cause,
			severity: SeverityWarning,
		},
		Operation: operation,
	}
}

// WithStep adds the step index that was being drawn.
func (e *RenderError) WithStep(index int) *RenderError {
	e.Step = index
	return e
}

// Error returns the formatted error message.
func (e *RenderError) Error() string {
	var parts []string
	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Operation))
	}
	if e.Step > 0 {
		parts = append(parts, fmt.Sprintf("step=%d", e.Step))
	}
	return formatPrefixed("render error", parts, &e.baseError)
}

func formatPrefixed(prefix string, parts []string, base *baseError) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if base.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, base.message, base.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, base.message)
}

// FromPanic converts a recovered panic value into an error wrapping
// ErrRendererPanic.
func FromPanic(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrRendererPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrRendererPanic, r)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end
// users without a stack of internal context.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var c classified
	if As(err, &c) {
		return c.IsUserFacing()
	}
	return Is(err, ErrUnknownStep) || Is(err, ErrInvalidCatalog) || Is(err, ErrInvalidTheme)
}

// GetSeverity returns the severity level of the error.
// Unknown errors default to SeverityError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var c classified
	if As(err, &c) {
		return c.Severity()
	}
	return SeverityError
}
