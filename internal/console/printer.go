// Package console prints a run's events for non-interactive use, either as
// styled text lines or as JSON lines.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Iron-Ham/archiveflow/internal/event"
	"github.com/Iron-Ham/archiveflow/internal/sequencer"
	"github.com/Iron-Ham/archiveflow/internal/steps"
	"github.com/Iron-Ham/archiveflow/internal/tui/styles"
)

var completed = string(sequencer.OutcomeCompleted)

// Format selects how events are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures a Printer.
type Options struct {
	Format Format
	// NoColor forces plain text regardless of the terminal.
	NoColor bool
	// Palette colors text output. Nil means the default palette.
	Palette *styles.ColorPalette
}

// Printer writes bus events to w. It is safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
	st     textStyles
	start  time.Time
	err    error

	completed bool
	done      chan struct{}
	doneOnce  sync.Once
}

// New returns a printer writing to w.
func New(w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Palette == nil {
		opts.Palette = styles.DefaultPalette()
	}

	r := lipgloss.NewRenderer(w)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:      w,
		format: opts.Format,
		st:     newTextStyles(r, opts.Palette),
		done:   make(chan struct{}),
	}
}

// Attach subscribes the printer to every event on bus and returns the
// subscription id.
func (p *Printer) Attach(bus *event.Bus) string {
	return bus.SubscribeAll(p.Handle)
}

// Done is closed once the run is over: when it fails or is canceled, or
// when the completion panel appears after a successful run.
func (p *Printer) Done() <-chan struct{} {
	return p.done
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Handle prints one event.
func (p *Printer) Handle(e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.start.IsZero() {
		p.start = e.Timestamp()
	}

	var line string
	if p.format == FormatJSON {
		data, err := json.Marshal(p.record(e))
		if err != nil {
			p.setErr(fmt.Errorf("encoding %s event: %w", e.EventType(), err))
			return
		}
		line = string(data)
	} else {
		line = p.text(e)
	}

	if line != "" {
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			p.setErr(fmt.Errorf("writing %s event: %w", e.EventType(), err))
		}
	}

	p.track(e)
}

// track closes done at the end of a run.
func (p *Printer) track(e event.Event) {
	switch v := e.(type) {
	case event.RunFinishedEvent:
		if v.Outcome == completed {
			p.completed = true
			return
		}
		p.finish()
	case event.InfoShownEvent:
		if p.completed && v.Entry.ID == steps.IDComplete {
			p.finish()
		}
	}
}

func (p *Printer) finish() {
	p.doneOnce.Do(func() { close(p.done) })
}

func (p *Printer) setErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

// record is the JSON line shape of an event.
type record struct {
	Type       string            `json:"type"`
	Time       time.Time         `json:"time"`
	OffsetMs   int64             `json:"offset_ms"`
	RunID      string            `json:"run_id,omitempty"`
	Kind       string            `json:"kind,omitempty"`
	Outcome    string            `json:"outcome,omitempty"`
	Steps      int               `json:"steps,omitempty"`
	Index      int               `json:"index,omitempty"`
	StepID     string            `json:"step_id,omitempty"`
	State      steps.State       `json:"state,omitempty"`
	Percent    *float64          `json:"percent,omitempty"`
	Entry      *steps.Descriptor `json:"entry,omitempty"`
	DurationMs int64             `json:"duration_ms,omitempty"`
}

func (p *Printer) record(e event.Event) record {
	r := record{
		Type:     e.EventType(),
		Time:     e.Timestamp(),
		OffsetMs: e.Timestamp().Sub(p.start).Milliseconds(),
	}

	switch v := e.(type) {
	case event.RunStartedEvent:
		r.RunID, r.Kind = v.RunID, v.Kind
	case event.RunFinishedEvent:
		r.RunID, r.Kind, r.Outcome = v.RunID, v.Kind, v.Outcome
	case event.BoardClearedEvent:
		r.Steps = v.Steps
	case event.StepChangedEvent:
		r.Index, r.StepID, r.State = v.Index, v.StepID, v.State
	case event.ArrowAnimatedEvent:
		r.Index = v.Index
	case event.ProgressEvent:
		pct := v.Percent
		r.Percent = &pct
	case event.StepPulsedEvent:
		r.Index = v.Index
	case event.InfoShownEvent:
		entry := v.Entry
		r.Entry = &entry
		r.DurationMs = v.Duration.Milliseconds()
	}
	return r
}

// text renders an event as one styled line prefixed with its offset from
// the first event.
func (p *Printer) text(e event.Event) string {
	var body string

	switch v := e.(type) {
	case event.RunStartedEvent:
		body = p.st.title.Render(fmt.Sprintf("▶ %s run started", v.Kind)) + p.st.muted.Render(" "+v.RunID)
	case event.RunFinishedEvent:
		style := p.st.done
		if v.Outcome != completed {
			style = p.st.failed
		}
		body = style.Render(fmt.Sprintf("■ %s run %s", v.Kind, v.Outcome)) + p.st.muted.Render(" "+v.RunID)
	case event.BoardClearedEvent:
		body = p.st.muted.Render(fmt.Sprintf("board cleared (%d steps)", v.Steps))
	case event.StepChangedEvent:
		style := p.st.step(v.State)
		body = style.Render(fmt.Sprintf("%s step %2d %-16s %s", styles.StepIcon(v.State), v.Index, v.StepID, v.State))
	case event.ArrowAnimatedEvent:
		body = p.st.arrow.Render(fmt.Sprintf("  ↓ after step %d", v.Index))
	case event.ProgressEvent:
		body = p.st.muted.Render(fmt.Sprintf("progress %3.0f%%", v.Percent))
	case event.StepPulsedEvent:
		body = p.st.pulse.Render(fmt.Sprintf("✦ pulse step %d", v.Index))
	case event.InfoShownEvent:
		body = p.st.info.Render("ℹ "+v.Entry.Title) + p.st.muted.Render(fmt.Sprintf(" (%s)", v.Duration))
	case event.InfoHiddenEvent:
		body = p.st.muted.Render("info hidden")
	default:
		body = p.st.muted.Render(e.EventType())
	}

	offset := e.Timestamp().Sub(p.start).Seconds()
	return p.st.muted.Render(fmt.Sprintf("[%6.1fs]", offset)) + " " + body
}

type textStyles struct {
	title, muted, info, arrow, pulse, done, failed lipgloss.Style
	states                                         map[steps.State]lipgloss.Style
}

func newTextStyles(r *lipgloss.Renderer, pal *styles.ColorPalette) textStyles {
	return textStyles{
		title:  r.NewStyle().Bold(true).Foreground(pal.Primary),
		muted:  r.NewStyle().Foreground(pal.Muted),
		info:   r.NewStyle().Foreground(pal.Text).Bold(true),
		arrow:  r.NewStyle().Foreground(pal.Secondary),
		pulse:  r.NewStyle().Foreground(pal.Pulse).Bold(true),
		done:   r.NewStyle().Foreground(pal.StepCompleted).Bold(true),
		failed: r.NewStyle().Foreground(pal.StepError).Bold(true),
		states: map[steps.State]lipgloss.Style{
			steps.StateIdle:      r.NewStyle().Foreground(pal.StepIdle),
			steps.StateActive:    r.NewStyle().Foreground(pal.StepActive).Bold(true),
			steps.StateCompleted: r.NewStyle().Foreground(pal.StepCompleted),
			steps.StateError:     r.NewStyle().Foreground(pal.StepError).Bold(true),
		},
	}
}

func (s textStyles) step(st steps.State) lipgloss.Style {
	if style, ok := s.states[st]; ok {
		return style
	}
	return s.muted
}
