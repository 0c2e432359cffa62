// Package tui provides the interactive terminal diagram of the log-archive
// script.
//
// This file defines the narrow interfaces the model depends on so the view
// can be driven by a real sequencer or by a stub in tests.
package tui

import (
	"time"

	"github.com/Iron-Ham/archiveflow/internal/sequencer"
	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// Controller is the set of sequencer operations the diagram triggers from
// key presses. *sequencer.Sequencer satisfies it.
type Controller interface {
	// Start begins a normal run. It reports false when a run is already active.
	Start() bool
	// SimulateError begins a run that fails at the failure step.
	SimulateError() bool
	// Reset cancels any run and clears the diagram.
	Reset()
	// ShowInfo opens the panel for a pipeline step or manual note.
	ShowInfo(id string) bool
	// Announce opens the panel for an arbitrary entry for d.
	Announce(entry steps.Descriptor, d time.Duration)
	// DismissInfo closes the panel.
	DismissInfo()
	// SetTimings replaces the pacing used by the next run.
	SetTimings(t sequencer.Timings)
}

var _ Controller = (*sequencer.Sequencer)(nil)

// Dimensions represents the width and height of a UI region.
type Dimensions struct {
	Width  int
	Height int
}

// Compact reports whether the region is too short to draw a connector line
// between every pair of steps.
func (d Dimensions) Compact(steps int) bool {
	return d.Height > 0 && d.Height < minFullHeight(steps)
}

// minFullHeight is the number of rows the full layout needs: header,
// steps with connectors, progress bar, an info panel and help.
func minFullHeight(steps int) int {
	return 3 + (2*steps - 1) + 2 + 8 + 2
}
