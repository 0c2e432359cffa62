package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdconfig "github.com/Iron-Ham/archiveflow/internal/cmd/config"
	"github.com/Iron-Ham/archiveflow/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "archiveflow",
	Short: "Animated walkthrough of the log archive script",
	Long: `archiveflow plays the ten steps of the log archive script as an
animated diagram: lock, find, filter, archive, verify, clean up.

Run 'archiveflow start' for the interactive diagram, or 'archiveflow play'
to print a single run to stdout.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/archiveflow/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	cmdconfig.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix(config.EnvPrefix)
	// e.g. ARCHIVEFLOW_ANIMATION_SPEED for animation.speed
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
