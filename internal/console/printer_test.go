package console

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/archiveflow/internal/clock"
	"github.com/Iron-Ham/archiveflow/internal/event"
	"github.com/Iron-Ham/archiveflow/internal/sequencer"
	"github.com/Iron-Ham/archiveflow/internal/steps"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newRun(t *testing.T, format Format) (*sequencer.Sequencer, *clock.Fake, *Printer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	clk := clock.NewFake(epoch)
	bus := event.NewBus(nil)
	p := New(&buf, Options{Format: format, NoColor: true})
	p.Attach(bus)
	seq := sequencer.New(sequencer.NewBusRenderer(bus, clk),
		sequencer.WithScheduler(clk),
		sequencer.WithIDGenerator(func() string { return "run-1" }),
	)
	return seq, clk, p, &buf
}

func isDone(p *Printer) bool {
	select {
	case <-p.Done():
		return true
	default:
		return false
	}
}

func TestPrinter_TextCompletedRun(t *testing.T) {
	seq, clk, p, buf := newRun(t, FormatText)

	seq.Start()
	clk.Advance(sequencer.DefaultTimings().NormalRun(10, 1))
	if isDone(p) {
		t.Fatal("done before the completion panel appeared")
	}

	clk.Advance(2 * time.Second)
	if !isDone(p) {
		t.Fatal("done not closed after the completion panel")
	}

	out := buf.String()
	for _, want := range []string{
		"▶ normal run started run-1",
		"step  1 start",
		"progress 100%",
		"✦ pulse step 10",
		"■ normal run completed run-1",
		"[   0.0s]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("output contains escape sequences with NoColor")
	}
	if err := p.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestPrinter_DoneOnFailureAndCancel(t *testing.T) {
	tests := []struct {
		name    string
		run     func(*sequencer.Sequencer, *clock.Fake)
		outcome string
	}{
		{
			name: "failed",
			run: func(s *sequencer.Sequencer, c *clock.Fake) {
				s.SimulateError()
				c.Advance(sequencer.DefaultTimings().ErrorRun(7))
			},
			outcome: "■ error run failed",
		},
		{
			name: "canceled",
			run: func(s *sequencer.Sequencer, c *clock.Fake) {
				s.Start()
				c.Advance(3 * time.Second)
				s.Reset()
			},
			outcome: "■ normal run canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, clk, p, buf := newRun(t, FormatText)
			tt.run(seq, clk)

			if !isDone(p) {
				t.Fatal("done not closed")
			}
			if !strings.Contains(buf.String(), tt.outcome) {
				t.Errorf("output missing %q:\n%s", tt.outcome, buf.String())
			}
		})
	}
}

func TestPrinter_JSONLines(t *testing.T) {
	seq, clk, p, buf := newRun(t, FormatJSON)

	seq.SimulateError()
	clk.Advance(sequencer.DefaultTimings().ErrorRun(7))
	if !isDone(p) {
		t.Fatal("done not closed after failed run")
	}

	var records []record
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var r record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("line %q is not JSON: %v", sc.Text(), err)
		}
		records = append(records, r)
	}
	if len(records) == 0 {
		t.Fatal("no records written")
	}

	first, last := records[0], records[len(records)-1]
	if first.OffsetMs != 0 {
		t.Errorf("first offset = %d, want 0", first.OffsetMs)
	}
	if last.Type != event.TypeRunFinished || last.Outcome != "failed" {
		t.Errorf("last record = %+v, want failed run.finished", last)
	}
	if want := sequencer.DefaultTimings().ErrorRun(7).Milliseconds(); last.OffsetMs != want {
		t.Errorf("last offset = %d, want %d", last.OffsetMs, want)
	}

	var sawError bool
	lastProgress := -1.0
	for _, r := range records {
		if r.Type == event.TypeStepChanged && r.State == steps.StateError {
			sawError = r.Index == 7 && r.StepID == "archive"
		}
		if r.Type == event.TypeProgress {
			if r.Percent == nil {
				t.Fatalf("progress record without percent: %+v", r)
			}
			lastProgress = *r.Percent
		}
	}
	if !sawError {
		t.Error("no error record for step 7")
	}
	if lastProgress != 60 {
		t.Errorf("last progress = %v, want 60", lastProgress)
	}
}

func TestPrinter_JSONKeepsZeroPercent(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, Options{Format: FormatJSON})
	p.Handle(event.NewProgressEvent(epoch, 0))

	if !strings.Contains(buf.String(), `"percent":0`) {
		t.Errorf("output = %s, want percent 0", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPrinter_WriteError(t *testing.T) {
	p := New(failingWriter{}, Options{NoColor: true})
	p.Handle(event.NewProgressEvent(epoch, 10))
	p.Handle(event.NewProgressEvent(epoch, 20))

	err := p.Err()
	if err == nil || !strings.Contains(err.Error(), "closed pipe") {
		t.Errorf("Err() = %v, want write error", err)
	}
}
