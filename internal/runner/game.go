// Package runner implements the endless-runner simulation: a character
// scrolls through a procedurally populated world, jumping on a
// stamina-like energy reserve while obstacles and pickups arrive along the
// distance axis at perspective-scaled speeds.
//
// A Game is advanced one fixed tick at a time with Step. Within a frame the
// order is fixed: game time and deferred callbacks, distance, entity motion
// with spawning and culling, player physics, then collision reactions.
package runner

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
)

// Player sprite and floor glyphs.
const (
	PlayerGlyph = '█'
	FloorGlyph  = '▀'
)

// StepResult is returned by every Step.
type StepResult struct {
	State  core.GameState
	Events []Event
}

// Game is one run of the simulation.
type Game struct {
	cfg     config.Config
	runtime core.RuntimeConfig

	ctx       *SimulationContext
	world     *World
	persp     Perspective
	sched     *Scheduler
	jump      *JumpEngine
	reactions ReactionTable
	detector  Detector
	trail     *Trail
	effects   *Effects

	player *Entity
	floor  *Entity

	touching   map[*Entity]bool
	hazardHit  bool
	lastHazard float64 // distance-axis position of the last hazard hit

	over    bool
	won     bool
	paused  bool
	endedBy string

	logger *log.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. Runs are silent by default.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithDetector replaces the spatial-hash collision detector.
func WithDetector(d Detector) Option {
	return func(g *Game) {
		g.detector = d
	}
}

// WithReactions replaces the reaction table.
func WithReactions(t ReactionTable) Option {
	return func(g *Game) {
		g.reactions = t
	}
}

// New creates a game from cfg. Call Reset before the first Step.
func New(cfg config.Config, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		logger:    log.New(io.Discard),
		reactions: DefaultReactions(),
		touching:  make(map[*Entity]bool),
		persp:     Perspective{BackgroundDepth: cfg.World.BackgroundDepth},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.detector == nil {
		g.detector = NewSpatialDetector(cfg.World)
	}

	g.ctx = NewSimulationContext(0, cfg.Speed.Start)
	g.world = NewWorld()
	sched, err := NewScheduler(cfg, g.world, g.ctx, g.logger)
	if err != nil {
		return nil, err
	}
	g.sched = sched
	g.trail = NewTrail(cfg.Trail, cfg.World)
	g.effects = NewEffects(g.ctx, cfg.Effects.FlashSeconds)

	size := cfg.World.PlayerSize
	g.player = &Entity{
		Kind:   KindPlayer,
		W:      size,
		H:      size,
		Depth:  cfg.World.PlayerZ,
		Glyph:  PlayerGlyph,
		Static: true,
	}
	g.jump = NewJumpEngine(cfg, g.ctx, g.world, g.player, g.logger)
	return g, nil
}

// Reset starts a fresh run and pre-populates the world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	w := g.cfg.World

	g.ctx.Reset(runtime.Seed, g.cfg.Speed.Start)
	g.world.Reset()
	g.floor = g.world.Add(&Entity{
		Kind:   KindGround,
		Pos:    core.Vec{X: w.LeftMargin, Y: w.Height},
		W:      w.Width,
		H:      w.FloorThickness,
		Glyph:  FloorGlyph,
		Static: true,
	})

	*g.player = Entity{
		Kind:   KindPlayer,
		Pos:    core.Vec{X: w.PlayerX, Y: w.Height - 3*w.PlayerSize},
		W:      w.PlayerSize,
		H:      w.PlayerSize,
		Depth:  w.PlayerZ,
		Glyph:  PlayerGlyph,
		Static: true,
	}
	g.world.Add(g.player)
	g.jump.Reset()

	clear(g.touching)
	g.hazardHit = false
	g.lastHazard = 0
	g.over = false
	g.won = false
	g.paused = false
	g.endedBy = ""
	g.trail.Reset()
	g.effects.Reset()

	n := g.sched.PrePopulate()
	g.ctx.drainEvents()
	g.logger.Info("run start", "seed", runtime.Seed, "speed", g.ctx.Scroll, "prepopulated", n)
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) StepResult {
	if g.over {
		return StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return StepResult{State: g.State()}
	}

	ctx := g.ctx
	dt := g.runtime.Dt()
	ctx.Frame++
	ctx.Time += dt
	ctx.deferred.Drain(ctx.Time)

	if in.Has(core.ActionJumpStop) {
		g.jump.RequestJumpStop()
	}
	if in.Has(core.ActionJump) {
		g.jump.RequestJump()
	}

	ctx.Distance += ctx.Scroll * dt
	g.world.Advance(dt)
	g.sched.Tick(ctx.Distance)
	if n := g.sched.Cull(); n > 0 {
		g.logger.Debug("culled", "entities", n)
	}
	g.world.Sweep()

	g.jump.Update(dt)
	g.world.FollowParents()

	g.collide()

	g.trail.Update(ctx.Frame, ctx.Distance, core.Vec{X: g.player.Pos.X, Y: g.player.Bottom()})
	g.effects.Update(dt)
	g.world.Sweep()

	return StepResult{State: g.State(), Events: ctx.drainEvents()}
}

// collide dispatches reactions for entities on the player's plane.
func (g *Game) collide() {
	limit := g.cfg.World.CollisionDepth
	candidates := make([]*Entity, 0, g.world.Len())
	for _, e := range g.world.Entities() {
		if e == g.player || e.dead || e.parent != nil {
			continue
		}
		if _, ok := g.reactions[e.Kind]; !ok {
			continue
		}
		if math.Abs(e.Depth) > limit {
			continue
		}
		candidates = append(candidates, e)
	}
	hits := g.detector.Detect(g.player, candidates)
	g.reactions.dispatch(g, hits)
}

// ChangeSpeed adds delta to the scroll speed, keeping its magnitude at or
// above the configured minimum, and rescales every moving entity.
func (g *Game) ChangeSpeed(delta float64) {
	old := g.ctx.Scroll
	next := old + delta
	if minimum := g.cfg.Speed.MinMagnitude; math.Abs(next) < minimum {
		if next < 0 || (next == 0 && old < 0) {
			next = -minimum
		} else {
			next = minimum
		}
	}
	if next == old {
		return
	}
	g.persp.Rescale(g.world.Moving(), old, next)
	g.ctx.Scroll = next
	g.ctx.emit(Event{Type: EventSpeedChanged, Value: next})
	g.logger.Info("speed changed", "from", old, "to", next)
}

// finish ends the run once.
func (g *Game) finish(won bool, by string) {
	if g.over {
		return
	}
	g.over = true
	g.won = won
	g.endedBy = by
	if won {
		g.ctx.emit(Event{Type: EventWon, Name: by})
		g.logger.Info("finish reached", "distance", g.ctx.Distance)
	} else {
		g.ctx.emit(Event{Type: EventGameOver, Name: by})
		g.logger.Info("game over", "hazard", by, "distance", g.ctx.Distance)
	}
	g.ctx.Teardown()
	// Pending marker removals went with the teardown.
	g.effects.Reset()
}

// State returns the summary a host needs after each tick.
func (g *Game) State() core.GameState {
	p := g.jump.Player()
	return core.GameState{
		Distance:              g.ctx.Distance,
		Speed:                 g.ctx.Scroll,
		EnergyReserve:         p.EnergyReserve(),
		ControlledEnergySpent: p.ControlledEnergySpent(),
		EnergyForNextJump:     g.jump.EnergyForNextJump(),
		GameOver:              g.over,
		Won:                   g.won,
		Paused:                g.paused,
	}
}

// EndedBy returns the name of the hazard or finish marker that ended the run.
func (g *Game) EndedBy() string { return g.endedBy }

func (g *Game) Config() config.Config { return g.cfg }
func (g *Game) Context() *SimulationContext { return g.ctx }
func (g *Game) World() *World { return g.world }
func (g *Game) Scheduler() *Scheduler { return g.sched }
func (g *Game) Jump() *JumpEngine { return g.jump }
func (g *Game) Player() *Player { return g.jump.Player() }
func (g *Game) Trail() *Trail { return g.trail }
func (g *Game) Effects() *Effects { return g.effects }
func (g *Game) Perspective() Perspective { return g.persp }
