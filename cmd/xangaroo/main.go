// xangaroo is an endless runner for the terminal: a kangaroo hops across a
// scrolling landscape on a limited energy reserve.
//
// Usage:
//
//	xangaroo play            - Play in the terminal
//	xangaroo sim             - Run headless with a scripted jumper
//	xangaroo defaults        - Print the default configuration
//
// Global flags:
//
//	--fps <rate>            - Set tick rate (default: 60)
//	--seed <value>          - Set RNG seed for reproducible runs
//	--config <path>         - Load a custom configuration file
//	--difficulty <preset>   - easy, normal or hard
//	--log-level <level>     - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sleewja/xangaroo/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "xangaroo",
	Short: "xangaroo - an endless runner in your terminal",
	Long: `xangaroo is a side-scrolling endless runner. Obstacles, pickups and
scenery arrive at perspective-scaled speeds; every jump costs energy and
landings give a little of it back.

Available commands:
  play      - Play in the terminal
  sim       - Headless run for tuning configurations
  defaults  - Print the embedded default configuration

Examples:
  xangaroo play
  xangaroo play --difficulty hard --seed 7
  xangaroo sim --seconds 120 --jump-every 900
  xangaroo defaults > ~/.xangaroo/configs/xangaroo.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(defaultsCmd)
}

// loadConfig resolves the configuration and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// newLogger creates the CLI logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "xangaroo",
	})
	logger.SetLevel(level)
	return logger, nil
}
