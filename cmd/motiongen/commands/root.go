// Package commands implements the CLI commands for motiongen.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hazzler78/sd-motion-generator/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "motiongen",
	Short: "Municipal motion generator backed by Kolada statistics",
	Long: `Motiongen generates Swedish municipal motions with an LLM and grounds
them in statistics from Kolada and the national crime statistics page.

Examples:
  # Run the HTTP API
  motiongen serve

  # Generate a motion from the command line
  motiongen motion --topic "trygghet" --municipality karlstad \
      --stats befolkning,trygghet

  # Look up a single statistic
  motiongen stats --type befolkning --municipality arvika --year 2024`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.motiongen.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".motiongen")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("MOTIONGEN")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("llm.api_key", "XAI_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
