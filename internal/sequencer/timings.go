package sequencer

import "time"

// Timings holds every delay the sequencer waits on.
type Timings struct {
	// InfoDelay is the wait between a step turning active and its info panel appearing.
	InfoDelay time.Duration
	// StepDwell is how long a step stays active before it completes.
	StepDwell time.Duration
	// Settle is the wait after a step completes.
	Settle time.Duration
	// DecisionPause is the extra wait after a decision step.
	DecisionPause time.Duration
	// StepGap is the pause between consecutive steps.
	StepGap time.Duration
	// FinaleDelay is the wait between the last step and the completion flourish.
	FinaleDelay time.Duration
	// PulseStagger offsets each step's pulse in the completion flourish.
	PulseStagger time.Duration
	// CompleteInfoDelay is the wait between the flourish and the final info panel.
	CompleteInfoDelay time.Duration
	// ErrorDelay is the wait before the failing step turns red.
	ErrorDelay time.Duration
	// ErrorHold is how long the failure panel stays up before the run ends.
	ErrorHold time.Duration
	// PipelineInfo is how long a pipeline step's panel stays visible.
	PipelineInfo time.Duration
	// ManualInfo is how long a manual-testing panel stays visible.
	ManualInfo time.Duration
}

// DefaultTimings returns the standard pacing, about 23 seconds for a full run.
func DefaultTimings() Timings {
	return Timings{
		InfoDelay:         200 * time.Millisecond,
		StepDwell:         1500 * time.Millisecond,
		Settle:            500 * time.Millisecond,
		DecisionPause:     800 * time.Millisecond,
		StepGap:           200 * time.Millisecond,
		FinaleDelay:       500 * time.Millisecond,
		PulseStagger:      100 * time.Millisecond,
		CompleteInfoDelay: 1000 * time.Millisecond,
		ErrorDelay:        1000 * time.Millisecond,
		ErrorHold:         8 * time.Second,
		PipelineInfo:      8 * time.Second,
		ManualInfo:        10 * time.Second,
	}
}

// WithSpeed returns a copy with every delay divided by speed.
// Non-positive speeds return t unchanged.
func (t Timings) WithSpeed(speed float64) Timings {
	if speed <= 0 || speed == 1 {
		return t
	}
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) / speed)
	}
	return Timings{
		InfoDelay:         scale(t.InfoDelay),
		StepDwell:         scale(t.StepDwell),
		Settle:            scale(t.Settle),
		DecisionPause:     scale(t.DecisionPause),
		StepGap:           scale(t.StepGap),
		FinaleDelay:       scale(t.FinaleDelay),
		PulseStagger:      scale(t.PulseStagger),
		CompleteInfoDelay: scale(t.CompleteInfoDelay),
		ErrorDelay:        scale(t.ErrorDelay),
		ErrorHold:         scale(t.ErrorHold),
		PipelineInfo:      scale(t.PipelineInfo),
		ManualInfo:        scale(t.ManualInfo),
	}
}

// StepDuration is the time one step occupies, excluding any decision pause.
func (t Timings) StepDuration() time.Duration {
	return t.StepDwell + t.Settle + t.StepGap
}

// NormalRun returns how long a full run keeps the running flag set for a
// pipeline of n steps containing decisions decision steps.
func (t Timings) NormalRun(n, decisions int) time.Duration {
	return time.Duration(n)*t.StepDuration() + time.Duration(decisions)*t.DecisionPause + t.FinaleDelay
}

// ErrorRun returns how long an error simulation failing at step failAt keeps
// the running flag set. Decision steps do not pause on this path.
func (t Timings) ErrorRun(failAt int) time.Duration {
	return time.Duration(failAt-1)*t.StepDuration() + t.ErrorDelay + t.ErrorHold
}
