package runner

import (
	"testing"

	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
)

func newTestScheduler(t *testing.T, cfg config.Config, scroll float64) (*Scheduler, *SimulationContext, *World) {
	t.Helper()
	ctx := NewSimulationContext(3, scroll)
	world := NewWorld()
	s, err := NewScheduler(cfg, world, ctx, quietLogger())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	return s, ctx, world
}

func fptr(v float64) *float64 { return &v }

func postSymbol() config.SymbolConfig {
	return config.SymbolConfig{
		Name:          "post",
		Kind:          "hazard",
		Glyph:         "|",
		FirstDistance: fptr(0),
		Interval:      &config.Range{Min: 100, Max: 100},
		Y:             config.Range{Min: 300, Max: 300},
		Size:          config.Size{W: 10, H: 10},
	}
}

func TestNextDueIsArithmetic(t *testing.T) {
	cfg := testConfig()
	cfg.Symbols = []config.SymbolConfig{postSymbol()}
	s, _, _ := newTestScheduler(t, cfg, 30)
	s.Reset(0)
	spec := s.Specs()[0]

	var dues []float64
	for d := 0.0; d <= 1000; d += 10 {
		if len(s.Tick(d)) > 0 {
			dues = append(dues, spec.NextDue())
		}
	}
	if len(dues) != 11 {
		t.Fatalf("spawned %d times, want 11", len(dues))
	}
	for i, due := range dues {
		if want := 100 * float64(i+1); due != want {
			t.Errorf("nextDue[%d] = %v, want %v", i, due, want)
		}
	}
}

func TestLastDistanceStopsSpec(t *testing.T) {
	cfg := testConfig()
	sym := postSymbol()
	sym.LastDistance = fptr(250)
	cfg.Symbols = []config.SymbolConfig{sym}
	s, _, world := newTestScheduler(t, cfg, 30)
	s.Reset(0)

	for d := 0.0; d <= 600; d += 10 {
		s.Tick(d)
	}
	if world.Len() != 3 {
		t.Errorf("spawned %d entities, want 3", world.Len())
	}
	if s.Specs()[0].Continue() {
		t.Error("spec still continues past its last distance")
	}
}

func TestOneShotSpec(t *testing.T) {
	cfg := testConfig()
	sym := postSymbol()
	sym.Interval = nil
	sym.FirstDistance = fptr(50)
	cfg.Symbols = []config.SymbolConfig{sym}
	s, _, world := newTestScheduler(t, cfg, 30)
	s.Reset(0)

	for d := 0.0; d <= 500; d += 10 {
		s.Tick(d)
	}
	if world.Len() != 1 {
		t.Errorf("one-shot spec spawned %d entities", world.Len())
	}
	if s.Specs()[0].Continue() {
		t.Error("one-shot spec continues")
	}
}

func TestPatternPlacement(t *testing.T) {
	cfg := testConfig()
	sym := postSymbol()
	sym.Patterns = [][]config.Offset{{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: -1}}}
	cfg.Symbols = []config.SymbolConfig{sym}
	s, _, _ := newTestScheduler(t, cfg, 30)
	s.Reset(0)

	cells := s.Tick(0)
	if len(cells) != 3 {
		t.Fatalf("spawned %d cells, want 3", len(cells))
	}
	right := cfg.World.Right()
	want := []core.Vec{{X: right, Y: 300}, {X: right + 10, Y: 300}, {X: right + 20, Y: 290}}
	for i, c := range cells {
		if c.Pos != want[i] {
			t.Errorf("cell %d at %v, want %v", i, c.Pos, want[i])
		}
		if c.VX != -30 {
			t.Errorf("cell %d VX = %v, want -30", i, c.VX)
		}
		if c.Spec == nil || c.Spec.Name != "post" {
			t.Errorf("cell %d lost its spec", i)
		}
	}
}

func TestDepthFollowsY(t *testing.T) {
	cfg := testConfig()
	cfg.Symbols = []config.SymbolConfig{{
		Name:     "cloud",
		Kind:     "decoration",
		Glyph:    "~",
		Interval: &config.Range{Min: 1, Max: 1},
		Y:        config.Range{Min: 100, Max: 200},
		Depth:    config.DepthRange{AtYMin: -800, AtYMax: -400},
		Speed:    &config.Range{Min: -5, Max: 5},
		Size:     config.Size{W: 10, H: 6},
	}}
	s, _, world := newTestScheduler(t, cfg, 30)
	s.Reset(0)
	for d := 0.0; d < 50; d++ {
		s.Tick(d)
	}
	if world.Len() == 0 {
		t.Fatal("nothing spawned")
	}
	for _, e := range world.Entities() {
		want := core.Lerp(-800, -400, (e.Pos.Y-100)/100)
		if !core.NearlyEqual(e.Depth, want, 1e-9) {
			t.Errorf("y %v: depth %v, want %v", e.Pos.Y, e.Depth, want)
		}
		scrollOnly := s.persp.VisualSpeed(-30, e.Depth)
		if d := e.VX - scrollOnly; d < s.persp.VisualSpeed(-5, e.Depth)-1e-9 || d > s.persp.VisualSpeed(5, e.Depth)+1e-9 {
			t.Errorf("own component %v out of range at depth %v", d, e.Depth)
		}
	}
}

func TestPrePopulate(t *testing.T) {
	cfg := testConfig()
	cfg.World.PrePopulateSeconds = 20
	cfg.World.PrePopulateStep = 5
	cfg.Symbols = []config.SymbolConfig{{
		Name:     "cloud",
		Kind:     "decoration",
		Glyph:    "~",
		Interval: &config.Range{Min: 60, Max: 60},
		Y:        config.Range{Min: 50, Max: 50},
		Depth:    config.DepthRange{AtYMin: -500, AtYMax: -500},
		Size:     config.Size{W: 10, H: 6},
	}}
	s, _, world := newTestScheduler(t, cfg, 30)

	n := s.PrePopulate()
	if n != 10 || world.Len() != 10 {
		t.Fatalf("prepopulated %d (world %d), want 10", n, world.Len())
	}
	for _, e := range world.Entities() {
		if e.Pos.X < 350 || e.Pos.X >= cfg.World.Right() {
			t.Errorf("entity at x %v outside the back-projected range", e.Pos.X)
		}
	}
	if due := s.Specs()[0].NextDue(); due != 0 {
		t.Errorf("nextDue after prepopulation = %v, want 0", due)
	}
}

func TestPrePopulateDiscardsCulledSpawns(t *testing.T) {
	cfg := testConfig()
	cfg.World.PrePopulateSeconds = 40
	cfg.World.PrePopulateStep = 5
	sym := postSymbol()
	sym.FirstDistance = nil
	cfg.Symbols = []config.SymbolConfig{sym}
	s, _, world := newTestScheduler(t, cfg, 30)

	s.PrePopulate()
	// x = right - |d| at depth 0; spawns from d <= -700 are already past
	// the left boundary minus the grace margin.
	if world.Len() != 6 {
		t.Errorf("world has %d entities, want 6", world.Len())
	}
}

func TestCull(t *testing.T) {
	cfg := testConfig()
	s, _, world := newTestScheduler(t, cfg, 30)

	gone := world.Add(&Entity{Kind: KindHazard, Pos: core.Vec{X: 0, Y: 300}, W: 10, H: 10, VX: -30})
	grace := world.Add(&Entity{Kind: KindHazard, Pos: core.Vec{X: 25, Y: 300}, W: 10, H: 10, VX: -30})
	above := world.Add(&Entity{Kind: KindDecoration, Pos: core.Vec{X: 300, Y: -50}, W: 10, H: 10})
	below := world.Add(&Entity{Kind: KindDecoration, Pos: core.Vec{X: 300, Y: 400}, W: 10, H: 10})
	holder := world.Add(&Entity{Kind: KindHazard, Pos: core.Vec{X: 300, Y: 300}, W: 10, H: 10})
	worn := world.Add(&Entity{Kind: KindAccessory, Pos: core.Vec{X: -500, Y: 300}, W: 8, H: 8})
	holder.Attach(worn)
	floor := world.Add(&Entity{Kind: KindGround, Pos: core.Vec{X: -1000, Y: 337.5}, W: 10, H: 10, Static: true})

	if n := s.Cull(); n != 3 {
		t.Errorf("Cull removed %d, want 3", n)
	}
	for _, e := range []*Entity{gone, above, below} {
		if !e.Dead() {
			t.Errorf("entity %d should be culled", e.ID)
		}
	}
	for _, e := range []*Entity{grace, holder, worn, floor} {
		if e.Dead() {
			t.Errorf("entity %d should survive", e.ID)
		}
	}
	world.Sweep()
	if world.Len() != 4 {
		t.Errorf("world has %d entities after sweep, want 4", world.Len())
	}
}
