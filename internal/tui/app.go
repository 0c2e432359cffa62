package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/archiveflow/internal/logging"
	"github.com/Iron-Ham/archiveflow/internal/sequencer"
)

// App is the main TUI application.
type App struct {
	program *tea.Program
	model   Model
	seq     *sequencer.Sequencer
	logger  *logging.Logger
}

// New creates a new TUI application for seq. board must be one of the
// renderers seq draws on.
func New(seq *sequencer.Sequencer, board *sequencer.Board, logger *logging.Logger, opts Options) *App {
	if logger == nil {
		logger = logging.NopLogger()
	}
	wake := Attach(board)
	model := NewModel(seq, seq.Catalog(), board, wake, opts)
	return &App{
		program: tea.NewProgram(model, tea.WithAltScreen()),
		model:   model,
		seq:     seq,
		logger:  logger,
	}
}

// Attach subscribes to board changes and returns the channel the model
// waits on. Bursts of changes coalesce into a single pending signal.
func Attach(board *sequencer.Board) <-chan struct{} {
	wake := make(chan struct{}, 1)
	board.OnChange(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	return wake
}

// Send delivers msg to the running program. It blocks until the program's
// event loop is running, so call it from a goroutine that outlives startup.
func (a *App) Send(msg tea.Msg) {
	a.program.Send(msg)
}

// Run starts the TUI application and blocks until the user quits.
func (a *App) Run() error {
	// Stop any pending timers however the program exits.
	defer a.seq.Reset()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		sig, ok := <-sigChan
		if !ok {
			return
		}
		a.logger.Info("received signal, shutting down", "signal", sig.String())
		a.program.Send(tea.Quit())
	}()

	a.logger.Info("tui started")
	_, err := a.program.Run()
	if err != nil {
		a.logger.Error("tui exited with error", "error", err)
		return err
	}
	a.logger.Info("tui stopped")
	return nil
}
