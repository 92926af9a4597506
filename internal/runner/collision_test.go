package runner

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
)

func TestDetectorsAgree(t *testing.T) {
	world := config.Default().World
	spatial := NewSpatialDetector(world)
	rng := rand.New(rand.NewSource(5))
	w := NewWorld()
	player := w.Add(&Entity{Kind: KindPlayer, Pos: core.Vec{X: world.PlayerX, Y: 300}, W: 10, H: 10})

	for round := 0; round < 20; round++ {
		w.Reset()
		w.Add(player)
		var candidates []*Entity
		for i := 0; i < 60; i++ {
			e := w.Add(&Entity{
				Kind: KindHazard,
				Pos:  core.Vec{X: 540 + rng.Float64()*100, Y: 260 + rng.Float64()*80},
				W:    2 + rng.Float64()*20,
				H:    2 + rng.Float64()*20,
			})
			candidates = append(candidates, e)
		}
		got := spatial.Detect(player, candidates)
		want := BoxDetector{}.Detect(player, candidates)
		if !slices.Equal(got, want) {
			t.Fatalf("round %d: spatial %d hits, brute force %d", round, len(got), len(want))
		}
	}
}

func TestDetectorForgetsDestroyed(t *testing.T) {
	world := config.Default().World
	d := NewSpatialDetector(world).(*spatialDetector)
	w := NewWorld()
	player := w.Add(&Entity{Kind: KindPlayer, Pos: core.Vec{X: world.PlayerX, Y: 300}, W: 10, H: 10})
	a := w.Add(&Entity{Kind: KindHazard, Pos: player.Pos, W: 10, H: 10})
	b := w.Add(&Entity{Kind: KindPickup, Pos: player.Pos, W: 10, H: 10})

	if got := d.Detect(player, []*Entity{a, b}); len(got) != 2 {
		t.Fatalf("%d hits, want 2", len(got))
	}
	w.Destroy(a)
	w.Sweep()
	if got := d.Detect(player, []*Entity{b}); !slices.Equal(got, []*Entity{b}) {
		t.Errorf("hits after destroy = %v, want only the pickup", got)
	}
	if d.space.Len() != 1 {
		t.Errorf("space tracks %d bodies, want 1", d.space.Len())
	}
}

func TestGameWithBoxDetector(t *testing.T) {
	g := newTestGame(t, wallConfig(60, 0), WithDetector(BoxDetector{}))
	runFrames(g, 300, nil)
	if !g.State().GameOver || g.EndedBy() != "wall" {
		t.Errorf("state %+v ended by %q, want game over by wall", g.State(), g.EndedBy())
	}
}

func TestCustomReactions(t *testing.T) {
	touched := 0
	table := DefaultReactions()
	table[KindHazard] = func(*Game, *Entity) bool {
		touched++
		return true
	}
	g := newTestGame(t, wallConfig(60, 0), WithReactions(table))
	runFrames(g, 300, nil)
	if g.State().GameOver {
		t.Error("replaced hazard reaction still ended the run")
	}
	if touched != 1 {
		t.Errorf("hazard reaction ran %d times, want 1", touched)
	}
}
