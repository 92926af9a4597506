package main

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
	"github.com/sleewja/xangaroo/internal/runner"
)

func TestSimulateIsDeterministic(t *testing.T) {
	run := func() simSummary {
		game, err := runner.New(config.Default())
		if err != nil {
			t.Fatal(err)
		}
		rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 11}
		return simulate(game, rt, simOptions{
			Seconds:   30,
			JumpEvery: 800 * time.Millisecond,
			StopAfter: 100 * time.Millisecond,
		}, log.New(io.Discard))
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed gave different runs:\n%+v\n%+v", a, b)
	}
	if a.Frames == 0 || a.State.Distance <= 0 {
		t.Errorf("nothing simulated: %+v", a)
	}
	if a.Landed == 0 {
		t.Error("expected at least one landing")
	}
}

func TestSimulateStopsAtLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Symbols = nil
	cfg.Messages = nil
	game, err := runner.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rt := core.RuntimeConfig{TickRate: 50, Seed: 1}
	sum := simulate(game, rt, simOptions{Seconds: 2}, log.New(io.Discard))
	if sum.Frames != 100 || sum.Jumps != 0 {
		t.Errorf("frames %d jumps %d, want 100 and 0", sum.Frames, sum.Jumps)
	}
	if sum.State.GameOver {
		t.Error("empty world ended the run")
	}
}

func TestLoadConfigRejectsUnknownDifficulty(t *testing.T) {
	old := flagDifficulty
	defer func() { flagDifficulty = old }()

	flagDifficulty = "nightmare"
	if _, err := loadConfig(); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}
