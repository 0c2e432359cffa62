package sequencer

import (
	"slices"
	"sync"
	"time"

	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// InfoPanel is the visible state of the info panel.
type InfoPanel struct {
	Visible  bool
	Entry    steps.Descriptor
	Duration time.Duration
}

// Snapshot is a point-in-time copy of the whole visual surface.
// Slices are indexed from 0 for step 1.
type Snapshot struct {
	Steps    []steps.State
	Arrows   []bool
	Pulses   []int
	Progress float64
	Info     InfoPanel
	Running  bool
	Run      Run
	Outcome  Outcome // outcome of the last finished run, empty while running
}

// StepState returns the state of a 1-based step, or idle when out of range.
func (s Snapshot) StepState(index int) steps.State {
	if index < 1 || index > len(s.Steps) {
		return steps.StateIdle
	}
	return s.Steps[index-1]
}

// Count returns how many steps are in state st.
func (s Snapshot) Count(st steps.State) int {
	n := 0
	for _, v := range s.Steps {
		if v == st {
			n++
		}
	}
	return n
}

// Board is a Renderer that records the visual surface, the equivalent of
// the page's step elements, arrows, progress bar and info panel. Calls for
// elements that don't exist are dropped.
type Board struct {
	mu       sync.Mutex
	snap     Snapshot
	onChange func()
}

var _ Renderer = (*Board)(nil)

// NewBoard returns a cleared board with total steps.
func NewBoard(total int) *Board {
	b := &Board{}
	b.clear(total)
	return b
}

// OnChange registers fn to be called after every mutation. fn runs with
// the board unlocked but still inside the sequencer's lock, so it must not
// block.
func (b *Board) OnChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Snapshot returns a deep copy of the current surface.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.snap
	s.Steps = slices.Clone(b.snap.Steps)
	s.Arrows = slices.Clone(b.snap.Arrows)
	s.Pulses = slices.Clone(b.snap.Pulses)
	return s
}

func (b *Board) update(fn func(s *Snapshot)) {
	b.mu.Lock()
	fn(&b.snap)
	notify := b.onChange
	b.mu.Unlock()

	if notify != nil {
		notify()
	}
}

func (b *Board) clear(total int) {
	b.snap.Steps = make([]steps.State, total)
	for i := range b.snap.Steps {
		b.snap.Steps[i] = steps.StateIdle
	}
	b.snap.Arrows = make([]bool, total)
	b.snap.Pulses = make([]int, total)
	b.snap.Progress = 0
}

func inRange(index, n int) bool {
	return index >= 1 && index <= n
}

func (b *Board) Cleared(total int) {
	b.update(func(s *Snapshot) {
		b.clear(total)
	})
}

func (b *Board) StepChanged(step steps.Descriptor, state steps.State) {
	b.update(func(s *Snapshot) {
		if inRange(step.Index, len(s.Steps)) {
			s.Steps[step.Index-1] = state
		}
	})
}

func (b *Board) ArrowAnimated(index int) {
	b.update(func(s *Snapshot) {
		if inRange(index, len(s.Arrows)) {
			s.Arrows[index-1] = true
		}
	})
}

func (b *Board) Progress(percent float64) {
	b.update(func(s *Snapshot) {
		s.Progress = min(max(percent, 0), 100)
	})
}

func (b *Board) InfoShown(entry steps.Descriptor, d time.Duration) {
	b.update(func(s *Snapshot) {
		s.Info = InfoPanel{Visible: true, Entry: entry, Duration: d}
	})
}

func (b *Board) InfoHidden() {
	b.update(func(s *Snapshot) {
		s.Info.Visible = false
	})
}

func (b *Board) Pulsed(index int) {
	b.update(func(s *Snapshot) {
		if inRange(index, len(s.Pulses)) {
			s.Pulses[index-1]++
		}
	})
}

func (b *Board) RunStarted(run Run) {
	b.update(func(s *Snapshot) {
		s.Running = true
		s.Run = run
		s.Outcome = ""
	})
}

func (b *Board) RunFinished(run Run, outcome Outcome) {
	b.update(func(s *Snapshot) {
		s.Running = false
		s.Run = run
		s.Outcome = outcome
	})
}
