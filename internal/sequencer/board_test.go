package sequencer

import (
	"testing"
	"time"

	"github.com/Iron-Ham/archiveflow/internal/steps"
)

func TestBoard_DropsOutOfRange(t *testing.T) {
	b := NewBoard(3)

	b.StepChanged(steps.Descriptor{ID: "ghost", Index: 0}, steps.StateActive)
	b.StepChanged(steps.Descriptor{ID: "ghost", Index: 4}, steps.StateActive)
	b.ArrowAnimated(9)
	b.Pulsed(-1)

	snap := b.Snapshot()
	if snap.Count(steps.StateIdle) != 3 {
		t.Errorf("idle steps = %d, want 3", snap.Count(steps.StateIdle))
	}
	for i, a := range snap.Arrows {
		if a {
			t.Errorf("arrow %d animated", i+1)
		}
	}
	if got := snap.StepState(42); got != steps.StateIdle {
		t.Errorf("StepState(42) = %s, want idle", got)
	}
}

func TestBoard_ProgressClamped(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -5, want: 0},
		{in: 0, want: 0},
		{in: 42.5, want: 42.5},
		{in: 100, want: 100},
		{in: 250, want: 100},
	}
	for _, tt := range tests {
		b := NewBoard(10)
		b.Progress(tt.in)
		if got := b.Snapshot().Progress; got != tt.want {
			t.Errorf("Progress(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBoard_SnapshotIsCopy(t *testing.T) {
	b := NewBoard(2)
	snap := b.Snapshot()
	snap.Steps[0] = steps.StateError
	snap.Arrows[0] = true
	snap.Pulses[0] = 7

	fresh := b.Snapshot()
	if fresh.StepState(1) != steps.StateIdle || fresh.Arrows[0] || fresh.Pulses[0] != 0 {
		t.Errorf("snapshot mutation leaked into board: %+v", fresh)
	}
}

func TestBoard_OnChange(t *testing.T) {
	b := NewBoard(10)
	calls := 0
	b.OnChange(func() { calls++ })

	b.Progress(10)
	b.InfoShown(steps.Descriptor{ID: "lock"}, 8*time.Second)
	b.InfoHidden()
	b.Cleared(10)

	if calls != 4 {
		t.Errorf("OnChange calls = %d, want 4", calls)
	}
}

func TestBoard_RunLifecycle(t *testing.T) {
	b := NewBoard(10)
	run := Run{ID: "r1", Kind: RunError}

	b.RunStarted(run)
	snap := b.Snapshot()
	if !snap.Running || snap.Run.ID != "r1" || snap.Outcome != "" {
		t.Errorf("after start: %+v", snap)
	}

	b.RunFinished(run, OutcomeFailed)
	snap = b.Snapshot()
	if snap.Running || snap.Outcome != OutcomeFailed {
		t.Errorf("after finish: running=%v outcome=%q", snap.Running, snap.Outcome)
	}

	// Clearing the surface keeps the last outcome for status lines.
	b.Cleared(10)
	if b.Snapshot().Outcome != OutcomeFailed {
		t.Error("Cleared dropped the last outcome")
	}
}

func TestBoard_ClearedResizes(t *testing.T) {
	b := NewBoard(3)
	b.Cleared(5)
	snap := b.Snapshot()
	if len(snap.Steps) != 5 || len(snap.Arrows) != 5 || len(snap.Pulses) != 5 {
		t.Errorf("lengths = %d/%d/%d, want 5", len(snap.Steps), len(snap.Arrows), len(snap.Pulses))
	}
}
