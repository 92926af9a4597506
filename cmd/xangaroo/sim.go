package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sleewja/xangaroo/internal/core"
	"github.com/sleewja/xangaroo/internal/runner"
)

var (
	flagSimSeconds   float64
	flagSimJumpEvery int
	flagSimStopAfter int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless with a scripted jumper",
	Long: `Run the simulation without a terminal UI. A scripted player presses
jump every --jump-every milliseconds and, when --stop-after is set, releases
it that many milliseconds later. Events are logged to stderr and a summary
is printed when the run ends or the time limit is reached.

Examples:
  xangaroo sim --seconds 60
  xangaroo sim --seed 3 --jump-every 700 --stop-after 150 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 60, "Simulated seconds to run")
	simCmd.Flags().IntVar(&flagSimJumpEvery, "jump-every", 1000, "Milliseconds between jump presses (0 = never)")
	simCmd.Flags().IntVar(&flagSimStopAfter, "stop-after", 0, "Milliseconds after each press to stop the jump (0 = never)")
}

// simOptions scripts a headless run.
type simOptions struct {
	Seconds   float64
	JumpEvery time.Duration
	StopAfter time.Duration
}

// simSummary is the outcome of a headless run.
type simSummary struct {
	Frames  int
	Seconds float64
	State   core.GameState
	EndedBy string
	Jumps   int
	Landed  int

	Shielded int // hazards absorbed by an accessory
}

// simulate steps the game with the scripted input until it ends or the
// time limit is reached.
func simulate(game *runner.Game, rt core.RuntimeConfig, opts simOptions, logger *log.Logger) simSummary {
	game.Reset(rt)
	dt := rt.Dt()
	frames := int(math.Round(opts.Seconds / dt))
	every := max(int(math.Round(opts.JumpEvery.Seconds()/dt)), 0)
	stop := max(int(math.Round(opts.StopAfter.Seconds()/dt)), 0)

	var sum simSummary
	input := core.NewInputFrame()
	for f := 1; f <= frames; f++ {
		input.Clear()
		if every > 0 && f%every == 0 {
			input.Set(core.ActionJump)
			sum.Jumps++
		}
		if every > 0 && stop > 0 && f > stop && (f-stop)%every == 0 {
			input.Set(core.ActionJumpStop)
		}

		res := game.Step(input)
		sum.Frames = f
		for _, ev := range res.Events {
			switch ev.Type {
			case runner.EventLanded:
				sum.Landed++
			case runner.EventAccessoryConsumed:
				sum.Shielded++
			}
			logger.Debug("event", "t", fmt.Sprintf("%.2f", float64(f)*dt), "type", ev.Type, "name", ev.Name, "value", ev.Value)
		}
		sum.State = res.State
		if res.State.GameOver {
			break
		}
	}
	sum.Seconds = float64(sum.Frames) * dt
	sum.EndedBy = game.EndedBy()
	return sum
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	if flagSimSeconds <= 0 {
		return fmt.Errorf("--seconds must be positive, got %v", flagSimSeconds)
	}

	game, err := runner.New(cfg, runner.WithLogger(logger))
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = seed
	sum := simulate(game, rt, simOptions{
		Seconds:   flagSimSeconds,
		JumpEvery: time.Duration(flagSimJumpEvery) * time.Millisecond,
		StopAfter: time.Duration(flagSimStopAfter) * time.Millisecond,
	}, logger)

	outcome := "time limit"
	switch {
	case sum.State.Won:
		outcome = "finished"
	case sum.State.GameOver:
		outcome = "game over (" + sum.EndedBy + ")"
	}
	fmt.Printf("seed:      %d\n", seed)
	fmt.Printf("outcome:   %s after %.1fs\n", outcome, sum.Seconds)
	fmt.Printf("distance:  %d\n", sum.State.Score())
	fmt.Printf("speed:     %.0f\n", sum.State.Speed)
	fmt.Printf("energy:    %.1f\n", sum.State.EnergyReserve)
	fmt.Printf("jumps:     %d pressed, %d landings\n", sum.Jumps, sum.Landed)
	fmt.Printf("shielded:  %d\n", sum.Shielded)
	return nil
}
