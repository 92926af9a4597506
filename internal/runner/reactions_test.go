package runner

import (
	"testing"

	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
)

func pickupEntity(t *testing.T, g *Game, sc config.SymbolConfig) *Entity {
	t.Helper()
	sc.Kind = "pickup"
	sc.Size = config.Size{W: 8, H: 8}
	spec, err := NewSymbolSpec(sc)
	if err != nil {
		t.Fatal(err)
	}
	return g.World().Add(&Entity{Kind: KindPickup, W: 8, H: 8, Spec: spec, Pos: core.Vec{X: 300, Y: 300}, VX: -30})
}

func TestCollectEnergy(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		gain  float64
		want  float64
	}{
		{"gain", 100, 40, 140},
		{"capped", 280, 40, 300},
		{"above cap", 320, 40, 320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, testConfig())
			g.Jump().SetEnergy(tt.start)
			e := pickupEntity(t, g, config.SymbolConfig{Name: "carrot", EnergyGain: tt.gain})

			if !collectPickup(g, e) {
				t.Fatal("pickup declined")
			}
			if got := g.Player().EnergyReserve(); got != tt.want {
				t.Errorf("energy = %v, want %v", got, tt.want)
			}
			if !e.Dead() {
				t.Error("pickup not destroyed")
			}
		})
	}
}

func TestSpeedPickupRescales(t *testing.T) {
	g := newTestGame(t, testConfig())
	cloud := g.World().Add(&Entity{Kind: KindDecoration, Depth: -500, VX: g.Perspective().VisualSpeed(4-30, -500)})

	collectPickup(g, pickupEntity(t, g, config.SymbolConfig{Name: "espresso", SpeedDelta: 1}))
	if g.State().Speed != 40 {
		t.Fatalf("speed = %v, want 40", g.State().Speed)
	}
	if want := g.Perspective().VisualSpeed(4-40, -500); !core.NearlyEqual(cloud.VX, want, 1e-9) {
		t.Errorf("cloud VX = %v, want %v", cloud.VX, want)
	}

	collectPickup(g, pickupEntity(t, g, config.SymbolConfig{Name: "hay", SpeedDelta: -3}))
	if g.State().Speed != 10 {
		t.Errorf("speed = %v, want 10", g.State().Speed)
	}
	g.Context().drainEvents()
	collectPickup(g, pickupEntity(t, g, config.SymbolConfig{Name: "hay", SpeedDelta: -1}))
	if g.State().Speed != 10 {
		t.Errorf("speed dropped below the minimum: %v", g.State().Speed)
	}
	if n := countEvents(g.Context().drainEvents(), EventSpeedChanged); n != 0 {
		t.Errorf("speed change emitted at the minimum")
	}
}

func TestLandOnRequiresDescentFromAbove(t *testing.T) {
	g := newTestGame(t, testConfig())
	p := g.Player()
	log := g.World().Add(&Entity{Kind: KindGround, Pos: core.Vec{X: 580, Y: 250}, W: 40, H: 6})

	// The player starts in the air, descending, with its feet above the log.
	p.Body.Pos.Y = log.Pos.Y - p.Body.H - 2
	p.prevBottom = p.Body.Bottom()
	p.Body.Pos.Y += 4
	if !landOn(g, log) {
		t.Fatal("landing from above was declined")
	}
	if p.State() != Grounded || p.Body.Bottom() != log.Pos.Y {
		t.Errorf("state %v, feet at %v, want grounded on %v", p.State(), p.Body.Bottom(), log.Pos.Y)
	}

	g2 := newTestGame(t, testConfig())
	p2 := g2.Player()
	side := g2.World().Add(&Entity{Kind: KindGround, Pos: core.Vec{X: 580, Y: 250}, W: 40, H: 6})
	p2.Body.Pos.Y = 252
	p2.prevBottom = 262
	if landOn(g2, side) {
		t.Error("touch from below the top edge was accepted")
	}
}

func TestDispatchRearms(t *testing.T) {
	g := newTestGame(t, testConfig())
	target := g.World().Add(&Entity{Kind: KindDecoration})

	calls := 0
	accept := false
	table := ReactionTable{KindDecoration: func(*Game, *Entity) bool {
		calls++
		return accept
	}}

	table.dispatch(g, []*Entity{target})
	table.dispatch(g, []*Entity{target})
	if calls != 2 {
		t.Fatalf("declined reaction ran %d times, want 2", calls)
	}
	accept = true
	table.dispatch(g, []*Entity{target})
	table.dispatch(g, []*Entity{target})
	if calls != 3 {
		t.Fatalf("accepted reaction ran again during the same contact (%d calls)", calls)
	}
	table.dispatch(g, nil)
	table.dispatch(g, []*Entity{target})
	if calls != 4 {
		t.Errorf("reaction not re-armed after the contact ended (%d calls)", calls)
	}
}

func TestHazardWindow(t *testing.T) {
	g := newTestGame(t, wallConfig(60, 30))
	spec := g.Scheduler().Specs()[0]
	g.Jump().SetEnergy(200)
	a := g.World().Add(&Entity{Kind: KindHazard, Spec: spec, Pos: core.Vec{X: 590, Y: 300}, W: 10, H: 10})
	b := g.World().Add(&Entity{Kind: KindHazard, Spec: spec, Pos: core.Vec{X: 600, Y: 300}, W: 10, H: 10})
	far := g.World().Add(&Entity{Kind: KindHazard, Spec: spec, Pos: core.Vec{X: 800, Y: 300}, W: 10, H: 10})

	hitHazard(g, a)
	hitHazard(g, b)
	if got := g.Player().EnergyReserve(); got != 170 {
		t.Errorf("energy after two cells of one pattern = %v, want 170", got)
	}
	if !b.Spent {
		t.Error("neighbouring cell not marked spent")
	}
	hitHazard(g, far)
	if got := g.Player().EnergyReserve(); got != 140 {
		t.Errorf("energy after a distinct hazard = %v, want 140", got)
	}
}
