package sequencer

import (
	"time"

	"github.com/Iron-Ham/archiveflow/internal/clock"
	"github.com/Iron-Ham/archiveflow/internal/event"
	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// BusRenderer publishes every transition as an event on a Bus.
type BusRenderer struct {
	bus   *event.Bus
	clock clock.Scheduler
}

var _ Renderer = (*BusRenderer)(nil)

// NewBusRenderer returns a renderer stamping events with clk's time.
func NewBusRenderer(bus *event.Bus, clk clock.Scheduler) *BusRenderer {
	if clk == nil {
		clk = clock.Real{}
	}
	return &BusRenderer{bus: bus, clock: clk}
}

func (r *BusRenderer) Cleared(total int) {
	r.bus.Publish(event.NewBoardClearedEvent(r.clock.Now(), total))
}

func (r *BusRenderer) StepChanged(step steps.Descriptor, state steps.State) {
	r.bus.Publish(event.NewStepChangedEvent(r.clock.Now(), step.Index, step.ID, state))
}

func (r *BusRenderer) ArrowAnimated(index int) {
	r.bus.Publish(event.NewArrowAnimatedEvent(r.clock.Now(), index))
}

func (r *BusRenderer) Progress(percent float64) {
	r.bus.Publish(event.NewProgressEvent(r.clock.Now(), percent))
}

func (r *BusRenderer) InfoShown(entry steps.Descriptor, d time.Duration) {
	r.bus.Publish(event.NewInfoShownEvent(r.clock.Now(), entry, d))
}

func (r *BusRenderer) InfoHidden() {
	r.bus.Publish(event.NewInfoHiddenEvent(r.clock.Now()))
}

func (r *BusRenderer) Pulsed(index int) {
	r.bus.Publish(event.NewStepPulsedEvent(r.clock.Now(), index))
}

func (r *BusRenderer) RunStarted(run Run) {
	r.bus.Publish(event.NewRunStartedEvent(r.clock.Now(), run.ID, string(run.Kind)))
}

func (r *BusRenderer) RunFinished(run Run, outcome Outcome) {
	r.bus.Publish(event.NewRunFinishedEvent(r.clock.Now(), run.ID, string(run.Kind), string(outcome)))
}
