package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sleewja/xangaroo/internal/core"
	"github.com/sleewja/xangaroo/internal/platform/tui"
	"github.com/sleewja/xangaroo/internal/runner"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/Up   - Jump (a press while airborne is kept for the next bounce)
  Down/S     - Stop a jump
  P/Esc      - Pause
  R          - Restart (after the run ends)
  ?          - Show all keys
  Q/Ctrl+C   - Quit

Examples:
  xangaroo play
  xangaroo play --difficulty easy
  xangaroo play --config ./my-run.yaml --log-file run.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is taken by the game)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := newLogger(out)
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	game, err := runner.New(cfg, runner.WithLogger(logger))
	if err != nil {
		return err
	}

	return tui.Run(game, rt, logger)
}
