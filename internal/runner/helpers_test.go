package runner

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
)

// testConfig is the default configuration without spawn tables, jitter or
// pre-population, so tests add exactly what they need.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Symbols = nil
	cfg.Messages = nil
	cfg.Jump.JitterPercent = 0
	cfg.World.PrePopulateSeconds = 0
	return cfg
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestGame(t *testing.T, cfg config.Config, opts ...Option) *Game {
	t.Helper()
	g, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Reset(testRuntime(42))
	return g
}

// runFrames steps g n times and collects every event. input may be nil.
func runFrames(g *Game, n int, input func(frame int) core.InputFrame) []Event {
	var events []Event
	for i := 0; i < n; i++ {
		in := core.NewInputFrame()
		if input != nil {
			in = input(i)
		}
		events = append(events, g.Step(in).Events...)
	}
	return events
}

func countEvents(events []Event, t EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestEngine(cfg config.Config, scroll float64) (*JumpEngine, *SimulationContext, *World) {
	ctx := NewSimulationContext(7, scroll)
	world := NewWorld()
	body := world.Add(&Entity{
		Kind:   KindPlayer,
		Pos:    core.Vec{X: cfg.World.PlayerX, Y: cfg.World.Height - cfg.World.PlayerSize},
		W:      cfg.World.PlayerSize,
		H:      cfg.World.PlayerSize,
		Static: true,
	})
	return NewJumpEngine(cfg, ctx, world, body, quietLogger()), ctx, world
}

// advance moves game time forward and runs due callbacks.
func advance(ctx *SimulationContext, seconds float64) {
	ctx.Time += seconds
	ctx.deferred.Drain(ctx.Time)
}
