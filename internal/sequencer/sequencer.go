// Package sequencer drives the step animation: it walks the pipeline in
// order, applying timed visual transitions through a Renderer, and can
// short-circuit into a scripted failure.
//
// A Sequencer is owned by its caller; any number may exist side by side.
// All deferred work is scheduled through a clock.Scheduler and tagged with
// the generation current at scheduling time. Reset bumps the generation
// and stops pending timers, so nothing scheduled before a reset can touch
// the surface afterwards.
package sequencer

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/archiveflow/internal/clock"
	apperrors "github.com/Iron-Ham/archiveflow/internal/errors"
	"github.com/Iron-Ham/archiveflow/internal/logging"
	"github.com/Iron-Ham/archiveflow/internal/steps"
)

// DefaultFailureStep is the step id the error simulation fails at.
const DefaultFailureStep = "archive"

// RunKind distinguishes a normal run from an error simulation.
type RunKind string

const (
	RunNormal RunKind = "normal"
	RunError  RunKind = "error"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeCanceled  Outcome = "canceled"
)

// Run identifies one traversal of the pipeline.
type Run struct {
	ID        string
	Kind      RunKind
	StartedAt time.Time
}

// State is the sequencer's externally visible state.
type State struct {
	CurrentStep int
	Running     bool
	Progress    float64
	// Run is the active run, or the last one if none is active.
	Run Run
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithScheduler sets the scheduler used for every delay.
func WithScheduler(s clock.Scheduler) Option {
	return func(seq *Sequencer) { seq.sched = s }
}

// WithTimings sets the initial timings.
func WithTimings(t Timings) Option {
	return func(seq *Sequencer) { seq.timings = t }
}

// WithCatalog replaces the built-in step catalog.
func WithCatalog(c *steps.Catalog) Option {
	return func(seq *Sequencer) { seq.catalog = c }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(seq *Sequencer) { seq.logger = l }
}

// WithFailureStep sets the pipeline step id the error simulation fails at.
func WithFailureStep(id string) Option {
	return func(seq *Sequencer) { seq.failAt = id }
}

// WithIDGenerator overrides run id generation.
func WithIDGenerator(fn func() string) Option {
	return func(seq *Sequencer) { seq.newID = fn }
}

// Sequencer is the step-sequencing driver. It is safe for concurrent use.
type Sequencer struct {
	mu       sync.Mutex
	catalog  *steps.Catalog
	timings  Timings
	sched    clock.Scheduler
	renderer Renderer
	logger   *logging.Logger
	failAt   string
	newID    func() string

	state State
	gen   uint64

	// pending holds every live timer by id; a timer only runs its callback
	// if it is still present here and its generation is current.
	nextTimer uint64
	pending   map[uint64]clock.Timer

	info      *steps.Descriptor
	infoTimer uint64

	run       Timings // timings captured when the active run began
	runLogger *logging.Logger
}

// New creates a Sequencer drawing on r.
func New(r Renderer, opts ...Option) *Sequencer {
	s := &Sequencer{
		catalog:  steps.Default(),
		timings:  DefaultTimings(),
		sched:    clock.Real{},
		renderer: r,
		logger:   logging.NopLogger(),
		failAt:   DefaultFailureStep,
		newID:    uuid.NewString,
		pending:  make(map[uint64]clock.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = NopRenderer{}
	}
	s.runLogger = s.logger
	return s
}

// Catalog returns the catalog the sequencer narrates.
func (s *Sequencer) Catalog() *steps.Catalog {
	return s.catalog
}

// State returns a copy of the current state.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Info returns the entry on the info panel, if it is visible.
func (s *Sequencer) Info() (steps.Descriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.info == nil {
		return steps.Descriptor{}, false
	}
	return *s.info, true
}

// Timings returns the timings the next run will use.
func (s *Sequencer) Timings() Timings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timings
}

// SetTimings replaces the timings. An active run keeps the timings it
// started with.
func (s *Sequencer) SetTimings(t Timings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timings = t
	s.logger.Debug("timings updated", "step_dwell_ms", t.StepDwell.Milliseconds())
}

// FailureIndex returns the 1-based index of the step the error simulation
// fails at. Unknown ids fall back to the last step.
func (s *Sequencer) FailureIndex() int {
	if idx := s.catalog.IndexOf(s.failAt); idx > 0 {
		return idx
	}
	return s.catalog.Len()
}

// Start runs the whole pipeline. It returns false, changing nothing, if a
// run is already active.
func (s *Sequencer) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Running {
		s.logger.Debug("start ignored", "reason", apperrors.ErrRunInProgress.Error())
		return false
	}

	s.resetLocked()
	s.beginRunLocked(RunNormal)
	s.runLogger.Info("starting log archive automation process", "steps", s.catalog.Len())

	s.runStepsLocked(1, s.catalog.Len(), true, s.finaleLocked)
	return true
}

// SimulateError runs the pipeline up to the failure step and fails there.
// It returns false, changing nothing, if a run is already active.
func (s *Sequencer) SimulateError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Running {
		s.logger.Debug("error simulation ignored", "reason", apperrors.ErrRunInProgress.Error())
		return false
	}

	s.resetLocked()
	s.beginRunLocked(RunError)
	failAt := s.FailureIndex()
	s.runLogger.Info("simulating error scenario", "fail_at", failAt)

	s.runStepsLocked(1, failAt-1, false, func() {
		s.failLocked(failAt)
	})
	return true
}

// Reset clears the surface and cancels everything pending, including an
// active run. It is safe to call at any time.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// ShowInfo shows the panel for a pipeline step or manual-testing entry and
// schedules it to hide again. Unknown ids are ignored and return false.
func (s *Sequencer) ShowInfo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.catalog.Lookup(id)
	if !ok {
		s.logger.Debug("info requested for unknown step", "step_id", id)
		return false
	}
	hold := s.timings.PipelineInfo
	if d.Kind == steps.KindManual {
		hold = s.timings.ManualInfo
	}
	s.showLocked(d, hold)
	return true
}

// Announce shows an arbitrary entry, such as the welcome notice, for d.
func (s *Sequencer) Announce(entry steps.Descriptor, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showLocked(entry, d)
}

// DismissInfo hides the info panel if it is visible.
func (s *Sequencer) DismissInfo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideInfoLocked()
}

// -----------------------------------------------------------------------------
// Run choreography. Everything below runs with s.mu held.
// -----------------------------------------------------------------------------

func (s *Sequencer) beginRunLocked(kind RunKind) {
	s.run = s.timings
	run := Run{ID: s.newID(), Kind: kind, StartedAt: s.sched.Now()}
	s.state.Running = true
	s.state.Run = run
	s.runLogger = s.logger.WithRun(run.ID, string(kind))
	s.render("run_started", 0, func(r Renderer) { r.RunStarted(run) })
}

func (s *Sequencer) finishRunLocked(outcome Outcome) {
	if !s.state.Running {
		return
	}
	s.state.Running = false
	run := s.state.Run
	s.runLogger.Info("run finished", "outcome", string(outcome), "elapsed_ms", s.sched.Now().Sub(run.StartedAt).Milliseconds())
	s.render("run_finished", 0, func(r Renderer) { r.RunFinished(run, outcome) })
}

// runStepsLocked animates steps from..to in order, then calls done. The
// decision pause only applies when pauseOnDecision is set.
func (s *Sequencer) runStepsLocked(from, to int, pauseOnDecision bool, done func()) {
	if from > to {
		done()
		return
	}
	s.stepLocked(from, pauseOnDecision, func() {
		s.runStepsLocked(from+1, to, pauseOnDecision, done)
	})
}

// stepLocked animates a single step and calls next once it has settled.
// Timers are armed before anything that can fault so the run always
// reaches next.
func (s *Sequencer) stepLocked(index int, pauseOnDecision bool, next func()) {
	d, ok := s.catalog.At(index)
	if !ok {
		s.runLogger.Warn("step element missing, skipping", "step", index)
		next()
		return
	}
	t := s.run
	decision := pauseOnDecision && d.Decision

	s.afterLocked(t.InfoDelay, func() {
		s.showLocked(d, t.PipelineInfo)
	})
	s.afterLocked(t.StepDwell, func() {
		s.afterLocked(t.Settle, func() {
			pause := t.StepGap
			if decision {
				pause += t.DecisionPause
			}
			s.afterLocked(pause, next)
			if decision {
				s.runLogger.WithStep(index, d.ID).Info("evaluating lock file decision")
			}
		})
		s.render("step_changed", index, func(r Renderer) { r.StepChanged(d, steps.StateCompleted) })
		s.render("arrow_animated", index, func(r Renderer) { r.ArrowAnimated(index) })
	})

	s.state.CurrentStep = index
	s.runLogger.WithStep(index, d.ID).Info(fmt.Sprintf("executing step %d", index))
	s.render("step_changed", index, func(r Renderer) { r.StepChanged(d, steps.StateActive) })
	s.setProgressLocked(index)
}

// finaleLocked runs the completion flourish after the last step.
func (s *Sequencer) finaleLocked() {
	t := s.run
	s.afterLocked(t.FinaleDelay, func() {
		defer s.finishRunLocked(OutcomeCompleted)

		s.afterLocked(t.CompleteInfoDelay, func() {
			if d, ok := s.catalog.Entry(steps.IDComplete); ok {
				s.showLocked(d, t.PipelineInfo)
			}
		})
		for i := 1; i <= s.catalog.Len(); i++ {
			s.afterLocked(time.Duration(i-1)*t.PulseStagger, func() {
				s.render("pulsed", i, func(r Renderer) { r.Pulsed(i) })
			})
		}
		s.runLogger.Info("log archive automation process completed successfully")
	})
}

// failLocked marks the failure step red and ends the run after the hold.
func (s *Sequencer) failLocked(index int) {
	t := s.run
	s.afterLocked(t.ErrorDelay, func() {
		s.afterLocked(t.ErrorHold, func() {
			defer s.finishRunLocked(OutcomeFailed)
			s.hideInfoLocked()
		})

		s.state.CurrentStep = index
		if d, ok := s.catalog.At(index); ok {
			s.render("step_changed", index, func(r Renderer) { r.StepChanged(d, steps.StateError) })
		} else {
			s.runLogger.Warn("failure step element missing", "step", index)
		}
		s.setProgressLocked(index - 1)

		if notice, ok := s.catalog.Entry(steps.IDArchiveFailed); ok {
			s.showLocked(notice, t.ErrorHold)
		}
		s.runLogger.Error("archive creation failed - simulated error", "step", index)
	})
}

func (s *Sequencer) setProgressLocked(index int) {
	percent := 0.0
	if n := s.catalog.Len(); n > 0 {
		percent = float64(index) / float64(n) * 100
	}
	s.state.Progress = percent
	s.render("progress", index, func(r Renderer) { r.Progress(percent) })
}

func (s *Sequencer) resetLocked() {
	s.cancelLocked()

	wasRunning := s.state.Running
	run := s.state.Run

	s.state = State{Run: run}
	s.render("cleared", 0, func(r Renderer) { r.Cleared(s.catalog.Len()) })
	s.hideInfoLocked()

	if wasRunning {
		s.runLogger.Info("run canceled by reset")
		s.render("run_finished", 0, func(r Renderer) { r.RunFinished(run, OutcomeCanceled) })
	}
	s.runLogger = s.logger
	s.logger.Debug("animation reset")
}

// cancelLocked invalidates every pending callback.
func (s *Sequencer) cancelLocked() {
	s.gen++
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
	s.infoTimer = 0
}

func (s *Sequencer) showLocked(d steps.Descriptor, hold time.Duration) {
	s.stopTimerLocked(s.infoTimer)
	entry := d
	s.info = &entry
	s.render("info_shown", d.Index, func(r Renderer) { r.InfoShown(d, hold) })

	s.infoTimer = s.afterLocked(hold, func() {
		s.infoTimer = 0
		s.hideInfoLocked()
	})
}

func (s *Sequencer) hideInfoLocked() {
	s.stopTimerLocked(s.infoTimer)
	s.infoTimer = 0
	if s.info == nil {
		return
	}
	s.info = nil
	s.render("info_hidden", 0, func(r Renderer) { r.InfoHidden() })
}

func (s *Sequencer) stopTimerLocked(id uint64) {
	if id == 0 {
		return
	}
	if t, ok := s.pending[id]; ok {
		t.Stop()
		delete(s.pending, id)
	}
}

// afterLocked schedules fn to run with the lock held after d, unless the
// timer is stopped or the generation moves on first.
func (s *Sequencer) afterLocked(d time.Duration, fn func()) uint64 {
	gen := s.gen
	s.nextTimer++
	id := s.nextTimer

	s.pending[id] = s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, live := s.pending[id]; !live || s.gen != gen {
			return
		}
		delete(s.pending, id)
		s.guard("timer", s.state.CurrentStep, fn)
	})
	return id
}

// render invokes one renderer method, containing any panic.
func (s *Sequencer) render(op string, index int, fn func(Renderer)) {
	s.guard(op, index, func() { fn(s.renderer) })
}

// guard runs fn and converts a panic into a logged RenderError so a fault
// never escapes the sequencer.
func (s *Sequencer) guard(op string, index int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.NewRenderError(op, apperrors.FromPanic(r)).WithStep(index)
			s.runLogger.Error("animation fault recovered", "error", err.Error())
		}
	}()
	fn()
}
