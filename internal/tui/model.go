package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/archiveflow/internal/sequencer"
	"github.com/Iron-Ham/archiveflow/internal/steps"
	"github.com/Iron-Ham/archiveflow/internal/tui/keymap"
	"github.com/Iron-Ham/archiveflow/internal/tui/msg"
	"github.com/Iron-Ham/archiveflow/internal/tui/styles"
)

// PulseFlash is how long a step row stays highlighted after a pulse.
const PulseFlash = 400 * time.Millisecond

// Options configures the diagram model.
type Options struct {
	// Styles is the theme to draw with. Nil means the default theme.
	Styles *styles.ThemedStyles
	// Manual lists the manual-note shortcuts. Nil means the defaults.
	Manual []keymap.ManualEntry

	// ShowWelcome opens the welcome panel WelcomeDelay after launch and
	// keeps it up for WelcomeDisplay.
	ShowWelcome    bool
	WelcomeDelay   time.Duration
	WelcomeDisplay time.Duration

	// Now is the clock used for pulse highlights. Nil means time.Now.
	Now func() time.Time
}

// Model is the Bubbletea model of the diagram.
type Model struct {
	ctrl    Controller
	catalog *steps.Catalog
	board   msg.Snapshotter
	wake    <-chan struct{}

	keys   *keymap.Keymap
	help   help.Model
	bar    progress.Model
	styles *styles.ThemedStyles
	opts   Options

	snap  sequencer.Snapshot
	focus int // 1-based focused step

	// flash holds the expiry of each step row's pulse highlight, keyed by
	// 1-based step index.
	flash  map[int]time.Time
	ticker bool

	width    int
	height   int
	ready    bool
	quitting bool

	statusMessage string
	errorMessage  string
}

// NewModel returns a model that drives ctrl and redraws whenever board
// signals on wake.
func NewModel(ctrl Controller, catalog *steps.Catalog, board msg.Snapshotter, wake <-chan struct{}, opts Options) Model {
	if opts.Styles == nil {
		opts.Styles = styles.NewThemedStyles(styles.DefaultPalette())
	}
	if opts.Manual == nil {
		opts.Manual = keymap.DefaultManualEntries()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	h := help.New()
	h.Styles.ShortKey = opts.Styles.HelpKey
	h.Styles.ShortDesc = opts.Styles.HelpDesc
	h.Styles.ShortSeparator = opts.Styles.Muted
	h.Styles.FullKey = opts.Styles.HelpKey
	h.Styles.FullDesc = opts.Styles.HelpDesc
	h.Styles.FullSeparator = opts.Styles.Muted
	h.Styles.Ellipsis = opts.Styles.Muted

	bar := progress.New(
		progress.WithSolidFill(string(opts.Styles.Palette.Primary)),
		progress.WithoutPercentage(),
	)

	return Model{
		ctrl:    ctrl,
		catalog: catalog,
		board:   board,
		wake:    wake,
		keys:    keymap.DefaultKeymap(catalog.Len(), opts.Manual),
		help:    h,
		bar:     bar,
		styles:  opts.Styles,
		opts:    opts,
		snap:    board.Snapshot(),
		focus:   1,
		flash:   make(map[int]time.Time),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{msg.WaitForBoard(m.wake, m.board)}
	if m.opts.ShowWelcome {
		cmds = append(cmds, msg.Welcome(m.opts.WelcomeDelay))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch v := message.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(v)

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.ready = true
		m.bar.Width = min(max(v.Width-12, 10), 60)
		m.help.Width = v.Width
		return m, nil

	case msg.BoardMsg:
		cmd := m.applySnapshot(v.Snapshot)
		return m, tea.Batch(cmd, msg.WaitForBoard(m.wake, m.board))

	case msg.TickMsg:
		return m, m.expireFlashes()

	case msg.WelcomeMsg:
		m.showWelcome()
		return m, nil

	case msg.TimingsMsg:
		m.ctrl.SetTimings(v.Timings)
		m.statusMessage = "configuration reloaded"
		return m, nil

	case msg.ErrMsg:
		if v.Err != nil {
			m.errorMessage = v.Err.Error()
		}
		return m, nil
	}

	return m, nil
}

// Snapshot returns the surface the model last drew.
func (m Model) Snapshot() sequencer.Snapshot {
	return m.snap
}

// Focus returns the 1-based index of the focused step.
func (m Model) Focus() int {
	return m.focus
}

// applySnapshot stores a new surface and starts a highlight for every step
// whose pulse count went up since the previous one.
func (m *Model) applySnapshot(s sequencer.Snapshot) tea.Cmd {
	now := m.opts.Now()
	for i, n := range s.Pulses {
		prev := 0
		if i < len(m.snap.Pulses) {
			prev = m.snap.Pulses[i]
		}
		if n > prev {
			m.flash[i+1] = now.Add(PulseFlash)
		}
	}
	if !s.Running && s.Count(steps.StateIdle) == len(s.Steps) {
		clear(m.flash)
	}
	m.snap = s

	if len(m.flash) > 0 && !m.ticker {
		m.ticker = true
		return msg.Tick()
	}
	return nil
}

func (m *Model) expireFlashes() tea.Cmd {
	now := m.opts.Now()
	for i, until := range m.flash {
		if !now.Before(until) {
			delete(m.flash, i)
		}
	}
	if len(m.flash) == 0 {
		m.ticker = false
		return nil
	}
	return msg.Tick()
}

// flashing reports whether step index is inside its pulse highlight.
func (m Model) flashing(index int) bool {
	until, ok := m.flash[index]
	return ok && m.opts.Now().Before(until)
}

// showWelcome opens the welcome panel unless a run or another panel
// already has the user's attention.
func (m *Model) showWelcome() {
	if !m.opts.ShowWelcome || m.snap.Running || m.snap.Info.Visible {
		return
	}
	entry, ok := m.catalog.Entry(steps.IDWelcome)
	if !ok {
		return
	}
	m.ctrl.Announce(entry, m.opts.WelcomeDisplay)
}
