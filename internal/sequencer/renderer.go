package sequencer

import (
	"time"

	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// Renderer receives every visual transition the sequencer makes.
//
// Methods are called serially while the sequencer holds its lock: they
// must return quickly and must not call back into the Sequencer.
type Renderer interface {
	// Cleared returns every step, arrow, pulse and the progress bar to
	// their initial state for a pipeline of total steps.
	Cleared(total int)
	StepChanged(step steps.Descriptor, state steps.State)
	ArrowAnimated(index int)
	Progress(percent float64)
	InfoShown(entry steps.Descriptor, d time.Duration)
	InfoHidden()
	Pulsed(index int)
	RunStarted(run Run)
	RunFinished(run Run, outcome Outcome)
}

// NopRenderer implements Renderer with no-ops. Embed it to implement only
// the methods you care about.
type NopRenderer struct{}

func (NopRenderer) Cleared(int)                               {}
func (NopRenderer) StepChanged(steps.Descriptor, steps.State) {}
func (NopRenderer) ArrowAnimated(int)                         {}
func (NopRenderer) Progress(float64)                          {}
func (NopRenderer) InfoShown(steps.Descriptor, time.Duration) {}
func (NopRenderer) InfoHidden()                               {}
func (NopRenderer) Pulsed(int)                                {}
func (NopRenderer) RunStarted(Run)                            {}
func (NopRenderer) RunFinished(Run, Outcome)                  {}

// Renderers fans every call out to each renderer in order. A panicking
// renderer does not stop the ones after it; the first panic is raised
// again once every renderer has been called.
type Renderers []Renderer

func (rs Renderers) each(fn func(Renderer)) {
	var fault any
	for _, r := range rs {
		func() {
			defer func() {
				if p := recover(); p != nil && fault == nil {
					fault = p
				}
			}()
			fn(r)
		}()
	}
	if fault != nil {
		panic(fault)
	}
}

func (rs Renderers) Cleared(total int) {
	rs.each(func(r Renderer) { r.Cleared(total) })
}

func (rs Renderers) StepChanged(step steps.Descriptor, state steps.State) {
	rs.each(func(r Renderer) { r.StepChanged(step, state) })
}

func (rs Renderers) ArrowAnimated(index int) {
	rs.each(func(r Renderer) { r.ArrowAnimated(index) })
}

func (rs Renderers) Progress(percent float64) {
	rs.each(func(r Renderer) { r.Progress(percent) })
}

func (rs Renderers) InfoShown(entry steps.Descriptor, d time.Duration) {
	rs.each(func(r Renderer) { r.InfoShown(entry, d) })
}

func (rs Renderers) InfoHidden() {
	rs.each(func(r Renderer) { r.InfoHidden() })
}

func (rs Renderers) Pulsed(index int) {
	rs.each(func(r Renderer) { r.Pulsed(index) })
}

func (rs Renderers) RunStarted(run Run) {
	rs.each(func(r Renderer) { r.RunStarted(run) })
}

func (rs Renderers) RunFinished(run Run, outcome Outcome) {
	rs.each(func(r Renderer) { r.RunFinished(run, outcome) })
}
