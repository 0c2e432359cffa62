package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/archiveflow/internal/config"
	"github.com/Iron-Ham/archiveflow/internal/console"
	"github.com/Iron-Ham/archiveflow/internal/event"
	"github.com/Iron-Ham/archiveflow/internal/sequencer"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Print a single run to stdout",
	Long: `Play one run of the pipeline without the interactive diagram and print
every transition as it happens. Exits when the run ends.

Examples:
  # Watch a normal run at double speed
  archiveflow play --speed 2

  # Simulate the archive failure and emit JSON lines
  archiveflow play --error --json`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var (
	playError   bool
	playSpeed   float64
	playJSON    bool
	playNoColor bool
	playTheme   string
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().BoolVar(&playError, "error", false, "Simulate the failure instead of a normal run")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 0, "Pace multiplier (overrides animation.speed)")
	playCmd.Flags().BoolVar(&playJSON, "json", false, "Emit one JSON object per event")
	playCmd.Flags().BoolVar(&playNoColor, "no-color", false, "Disable colors")
	playCmd.Flags().StringVar(&playTheme, "theme", "", "Color theme (overrides tui.theme)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playSpeed != 0 && (playSpeed < config.MinSpeed || playSpeed > config.MaxSpeed) {
		return fmt.Errorf("--speed must be between %g and %g", config.MinSpeed, config.MaxSpeed)
	}

	env, err := loadEnvironment(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Close() }()

	out := cmd.OutOrStdout()
	noColor := playNoColor
	if f, ok := out.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		noColor = true
	}
	format := console.FormatText
	if playJSON {
		format = console.FormatJSON
	}

	bus := event.NewBus(env.logger)
	printer := console.New(out, console.Options{
		Format:  format,
		NoColor: noColor,
		Palette: resolveTheme(playTheme, env.cfg, cmd.ErrOrStderr()).Palette,
	})
	sub := printer.Attach(bus)

	seq := env.newSequencer(sequencer.NewBusRenderer(bus, nil), playSpeed)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if playError {
		seq.SimulateError()
	} else {
		seq.Start()
	}

	select {
	case <-printer.Done():
	case <-ctx.Done():
		env.logger.Info("play interrupted")
	}

	// Stop pending panel timers without printing the teardown.
	bus.Unsubscribe(sub)
	seq.Reset()

	return printer.Err()
}
