package runner

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
)

var singleCell = []config.Offset{{X: 0, Y: 0}}

// SymbolSpec is a spawn rule plus its scheduling state.
type SymbolSpec struct {
	Name  string
	Kind  Kind
	Glyph rune

	First    *float64 // nil: due as soon as the schedule starts
	Last     *float64 // nil: repeats forever
	Interval *config.Range
	Y        config.Range
	Depth    config.DepthRange
	Speed    *config.Range
	Size     config.Size
	Patterns [][]config.Offset

	EnergyPenalty *float64 // nil: the configured default
	EnergyGain    float64
	SpeedDelta    int
	Accessory     *config.AccessoryConfig

	nextDue float64
	cont    bool
}

// NewSymbolSpec builds a spawn rule from its configuration.
func NewSymbolSpec(c config.SymbolConfig) (*SymbolSpec, error) {
	kind, ok := ParseKind(c.Kind)
	if !ok {
		return nil, fmt.Errorf("runner: symbol %q: unknown kind %q", c.Name, c.Kind)
	}
	glyph, _ := utf8.DecodeRuneInString(c.Glyph)
	if glyph == utf8.RuneError {
		glyph = '*'
	}
	patterns := c.Patterns
	if len(patterns) == 0 {
		patterns = [][]config.Offset{singleCell}
	}
	return &SymbolSpec{
		Name:          c.Name,
		Kind:          kind,
		Glyph:         glyph,
		First:         c.FirstDistance,
		Last:          c.LastDistance,
		Interval:      c.Interval,
		Y:             c.Y,
		Depth:         c.Depth,
		Speed:         c.Speed,
		Size:          c.Size,
		Patterns:      patterns,
		EnergyPenalty: c.EnergyPenalty,
		EnergyGain:    c.EnergyGain,
		SpeedDelta:    c.SpeedDelta,
		Accessory:     c.Accessory,
		cont:          true,
	}, nil
}

// NextDue returns the distance at which the rule spawns next.
func (s *SymbolSpec) NextDue() float64 {
	return s.nextDue
}

// Continue reports whether the rule will spawn again.
func (s *SymbolSpec) Continue() bool {
	return s.cont
}

func (s *SymbolSpec) reset(start float64) {
	s.cont = true
	s.nextDue = start
	if s.First != nil {
		s.nextDue = *s.First
	}
}

// depthAt interpolates depth from a sampled y.
func (s *SymbolSpec) depthAt(y float64) float64 {
	if s.Y.Max == s.Y.Min {
		return s.Depth.AtYMin
	}
	return core.Lerp(s.Depth.AtYMin, s.Depth.AtYMax, (y-s.Y.Min)/(s.Y.Max-s.Y.Min))
}

func patternExtent(p []config.Offset) (minX, maxX int) {
	minX, maxX = p[0].X, p[0].X
	for _, o := range p[1:] {
		minX = min(minX, o.X)
		maxX = max(maxX, o.X)
	}
	return minX, maxX
}

// Scheduler populates the world along the distance axis from a table of
// symbol specs and message specs, and culls entities that left the view.
type Scheduler struct {
	specs    []*SymbolSpec
	messages []*MessageSpec
	world    *World
	ctx      *SimulationContext
	persp    Perspective
	cfg      config.WorldConfig
	logger   *log.Logger
}

// NewScheduler builds the spawn tables from cfg.
func NewScheduler(cfg config.Config, world *World, ctx *SimulationContext, logger *log.Logger) (*Scheduler, error) {
	s := &Scheduler{
		world:  world,
		ctx:    ctx,
		persp:  Perspective{BackgroundDepth: cfg.World.BackgroundDepth},
		cfg:    cfg.World,
		logger: logger,
	}
	for _, sc := range cfg.Symbols {
		spec, err := NewSymbolSpec(sc)
		if err != nil {
			return nil, err
		}
		s.specs = append(s.specs, spec)
	}
	for _, mc := range cfg.Messages {
		s.messages = append(s.messages, NewMessageSpec(mc))
	}
	return s, nil
}

// Specs returns the symbol specs in table order.
func (s *Scheduler) Specs() []*SymbolSpec {
	return s.specs
}

// Messages returns the message specs in table order.
func (s *Scheduler) Messages() []*MessageSpec {
	return s.messages
}

// Reset rewinds every schedule. Specs without a first distance become due
// at start.
func (s *Scheduler) Reset(start float64) {
	for _, spec := range s.specs {
		spec.reset(start)
	}
	for _, m := range s.messages {
		m.cont = true
	}
}

// Tick spawns every rule that is due at distance and returns the new
// entities. Negative distances stand for the simulated past of a
// pre-population pass.
func (s *Scheduler) Tick(distance float64) []*Entity {
	var spawned []*Entity
	for _, spec := range s.specs {
		if !spec.cont {
			continue
		}
		if spec.Last != nil && distance > *spec.Last {
			spec.cont = false
			continue
		}
		if distance < spec.nextDue {
			continue
		}
		spawned = append(spawned, s.spawn(spec, distance)...)
		if spec.Interval == nil {
			spec.cont = false
		} else {
			spec.nextDue += s.ctx.Uniform(spec.Interval.Min, spec.Interval.Max)
		}
	}
	for _, m := range s.messages {
		if !m.cont {
			continue
		}
		if distance < m.Due(s.persp, s.cfg.Right(), s.ctx.Scroll) {
			continue
		}
		spawned = append(spawned, s.spawnMessage(m, distance)...)
		m.cont = false
	}
	return spawned
}

// spawn instantiates one pattern of spec at the right edge of the world.
func (s *Scheduler) spawn(spec *SymbolSpec, distance float64) []*Entity {
	scroll := s.ctx.Scroll
	y := s.ctx.Uniform(spec.Y.Min, spec.Y.Max)
	depth := spec.depthAt(y)
	own := 0.0
	if spec.Speed != nil {
		own = s.ctx.Uniform(spec.Speed.Min, spec.Speed.Max)
	}
	v := s.persp.VisualSpeed(own-scroll, depth)
	pattern := spec.Patterns[s.ctx.Intn(len(spec.Patterns))]
	minX, maxX := patternExtent(pattern)

	x := s.cfg.Right() - float64(minX)*spec.Size.W
	if distance < 0 && scroll != 0 {
		x += v * (-distance / math.Abs(scroll))
	}
	if s.culledAt(x+float64(maxX)*spec.Size.W, v) {
		s.logger.Debug("spawn discarded", "symbol", spec.Name, "x", x)
		return nil
	}

	cells := make([]*Entity, 0, len(pattern))
	for _, o := range pattern {
		e := s.world.Add(&Entity{
			Kind:  spec.Kind,
			Pos:   core.Vec{X: x + float64(o.X)*spec.Size.W, Y: y + float64(o.Y)*spec.Size.H},
			W:     spec.Size.W,
			H:     spec.Size.H,
			Depth: depth,
			VX:    v,
			Glyph: spec.Glyph,
			Spec:  spec,
		})
		cells = append(cells, e)
	}
	s.ctx.emit(Event{Type: EventSpawned, Name: spec.Name, Value: distance, Entity: cells[0]})
	s.logger.Debug("spawn", "symbol", spec.Name, "distance", distance, "x", x, "cells", len(cells))
	return cells
}

func (s *Scheduler) culledAt(x, v float64) bool {
	return x < s.cfg.LeftMargin-math.Abs(v)*s.cfg.DisappearDelay
}

// offscreen reports whether e has left the view for good.
func (s *Scheduler) offscreen(e *Entity) bool {
	if s.culledAt(e.Pos.X, e.VX) {
		return true
	}
	return e.Bottom() < 0 || e.Pos.Y > s.cfg.Height+s.cfg.FloorThickness
}

// Cull destroys free entities that left the view and returns how many.
func (s *Scheduler) Cull() int {
	n := 0
	for _, e := range s.world.Entities() {
		if e.Static || e.parent != nil || e.dead || e.Kind == KindPlayer {
			continue
		}
		if s.offscreen(e) {
			s.world.Destroy(e)
			n++
		}
	}
	return n
}

// PrePopulate replays the schedule over the distance the world would have
// scrolled in the configured number of seconds before the run, so the
// first frame already shows a populated world. It returns the number of
// entities spawned.
func (s *Scheduler) PrePopulate() int {
	scroll := math.Abs(s.ctx.Scroll)
	if s.cfg.PrePopulateSeconds <= 0 || s.cfg.PrePopulateStep <= 0 || scroll == 0 {
		s.Reset(0)
		return 0
	}
	start := -scroll * s.cfg.PrePopulateSeconds
	s.Reset(start)
	n := 0
	for d := start; d < 0; d += s.cfg.PrePopulateStep {
		n += len(s.Tick(d))
	}
	s.Cull()
	s.world.Sweep()
	s.logger.Debug("prepopulated", "from", start, "entities", n)
	return n
}
