package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/archiveflow/internal/config"
	"github.com/Iron-Ham/archiveflow/internal/sequencer"
	"github.com/Iron-Ham/archiveflow/internal/tui"
	"github.com/Iron-Ham/archiveflow/internal/tui/msg"
	"github.com/Iron-Ham/archiveflow/internal/tui/styles"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the interactive diagram",
	Long: `Open the interactive diagram of the log archive script.

Press Enter to run the pipeline, E to simulate a failure at the archive
step, and 1-9/0 to read about a step. Press ? for every key.

When stdout is not a terminal, a single run is printed instead (see 'play').`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

var (
	startTheme     string
	startNoWelcome bool
)

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVar(&startTheme, "theme", "", "Color theme (overrides tui.theme)")
	startCmd.Flags().BoolVar(&startNoWelcome, "no-welcome", false, "Skip the welcome notice")
}

// resolveTheme registers custom themes and returns the styles for name,
// falling back to the configured theme. Problems are reported to errOut
// and never fatal.
func resolveTheme(name string, cfg *config.Config, errOut io.Writer) *styles.ThemedStyles {
	_, loadErrs := styles.DiscoverCustomThemes(config.ThemesDir())
	for _, err := range loadErrs {
		fmt.Fprintf(errOut, "Warning: %v\n", err)
	}

	if name == "" {
		name = cfg.TUI.Theme
	}
	st, err := styles.Resolve(name)
	if err != nil {
		fmt.Fprintf(errOut, "Warning: %v\n", err)
	}
	return st
}

func runStart(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return runPlay(cmd, nil)
	}

	env, err := loadEnvironment(nil)
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Close() }()

	board := sequencer.NewBoard(env.catalog.Len())
	seq := env.newSequencer(board, 0)

	app := tui.New(seq, board, env.logger, tui.Options{
		Styles:         resolveTheme(startTheme, env.cfg, cmd.ErrOrStderr()),
		ShowWelcome:    env.cfg.TUI.ShowWelcome && !startNoWelcome,
		WelcomeDelay:   env.cfg.TUI.WelcomeDelay(),
		WelcomeDisplay: env.cfg.TUI.WelcomeDisplay(),
	})

	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			env.logger.Info("config file changed", "file", e.Name, "op", e.Op.String())
			cfg, err := config.Load()
			if err != nil {
				app.Send(msg.ErrMsg{Err: fmt.Errorf("reloading %s: %w", e.Name, err)})
				return
			}
			app.Send(msg.TimingsMsg{Timings: timingsFromConfig(cfg, 0)})
		})
		viper.WatchConfig()
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
