package runner

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/sleewja/xangaroo/internal/config"
)

// JumpState is the vertical phase of the player.
type JumpState int

const (
	Grounded JumpState = iota
	Ascending
	Descending
)

func (s JumpState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "unknown"
	}
}

// JumpPlan is the analytic solution computed when a jump starts.
// RiseTime/FallTime equals the square root of the gravity ratio.
type JumpPlan struct {
	Height       float64 // target height after jitter
	Distance     float64 // horizontal travel, world pixels
	RiseTime     float64 // seconds to the peak
	FallTime     float64 // seconds from the peak back to liftoff height
	InitialSpeed float64 // upward speed at liftoff
	Gravity      float64 // rise-phase gravity
}

type jumpRequest struct {
	latched bool
	at      float64
}

// Player is the jumping character. Its vertical motion and energy are only
// changed through the JumpEngine.
type Player struct {
	Body *Entity

	state      JumpState
	vy         float64
	gravity    float64 // kept while weight is 0
	weight     float64
	lastWeight float64 // last non-zero weight

	energy          float64
	controlled      bool
	controlledSpent float64
	frozen          bool

	liftoffY    float64 // feet at liftoff
	liftoffTime float64
	landingTime float64
	landings    int
	fromDescent bool
	prevBottom  float64 // feet before the last update
	request     jumpRequest
	plan        JumpPlan
}

func (p *Player) State() JumpState { return p.state }
func (p *Player) VerticalVelocity() float64 { return p.vy }
func (p *Player) Weight() float64 { return p.weight }
func (p *Player) EnergyReserve() float64 { return p.energy }
func (p *Player) ControlledEnergySpent() float64 { return p.controlledSpent }
func (p *Player) Controlled() bool { return p.controlled }
func (p *Player) Frozen() bool { return p.frozen }
func (p *Player) Plan() JumpPlan { return p.plan }

// PrevBottom returns the y of the player's feet before the last update.
func (p *Player) PrevBottom() float64 {
	return p.prevBottom
}

// Gravity returns the gravity currently applied: zero while weightless.
func (p *Player) Gravity() float64 {
	if p.weight == 0 {
		return 0
	}
	return p.gravity
}

// RequestLatched reports whether a jump request waits for the next landing.
func (p *Player) RequestLatched() bool {
	return p.request.latched
}

// Accessories returns the worn accessories in attachment order.
func (p *Player) Accessories() []*Entity {
	var out []*Entity
	for _, c := range p.Body.Children() {
		if c.Kind == KindAccessory {
			out = append(out, c)
		}
	}
	return out
}

// Wears reports whether an accessory spawned from the named rule is worn.
func (p *Player) Wears(name string) bool {
	for _, a := range p.Accessories() {
		if a.Name() == name {
			return true
		}
	}
	return false
}

// JumpEngine drives the player state machine: rebounce after landing,
// analytic jump trajectories, double jumps, energy settlement and the
// weight modifiers of worn accessories.
type JumpEngine struct {
	p      *Player
	ctx    *SimulationContext
	world  *World
	jump   config.JumpConfig
	energy config.EnergyConfig
	top    float64 // y of the top of the playfield
	floor  float64 // y below which the player is back on the floor
	logger *log.Logger
}

// NewJumpEngine creates the engine for body. The player starts falling
// from where body is placed.
func NewJumpEngine(cfg config.Config, ctx *SimulationContext, world *World, body *Entity, logger *log.Logger) *JumpEngine {
	e := &JumpEngine{
		p:      &Player{Body: body},
		ctx:    ctx,
		world:  world,
		jump:   cfg.Jump,
		energy: cfg.Energy,
		floor:  cfg.World.Height,
		logger: logger,
	}
	e.Reset()
	return e
}

// Reset puts the player back in the air with the starting energy.
func (e *JumpEngine) Reset() {
	body := e.p.Body
	*e.p = Player{
		Body:       body,
		state:      Descending,
		gravity:    e.jump.InitialGravity,
		weight:     e.jump.BaseWeight,
		lastWeight: e.jump.BaseWeight,
		energy:     math.Max(e.energy.Start, e.energy.Min),
	}
	e.p.prevBottom = body.Bottom()
}

// Player returns the player driven by the engine.
func (e *JumpEngine) Player() *Player {
	return e.p
}

// AffordableHeight returns the height a controlled jump could reach with
// the current reserve. It is infinite while weightless.
func (e *JumpEngine) AffordableHeight() float64 {
	if e.p.weight == 0 {
		return math.Inf(1)
	}
	return math.Max(e.p.energy, e.energy.Min) / e.p.weight
}

// EnergyForNextJump returns the energy committed to the next rebounce: the
// whole reserve once a controlled jump is latched, nothing otherwise.
func (e *JumpEngine) EnergyForNextJump() float64 {
	if !e.p.request.latched {
		return 0
	}
	return e.p.energy
}

func (e *JumpEngine) headroom() float64 {
	return math.Max(e.p.Body.Pos.Y-e.top, 0)
}

// RequestJump asks for a player-controlled jump. Early in the ascent of a
// default jump it upgrades that jump; otherwise it is latched for the next
// landing.
func (e *JumpEngine) RequestJump() {
	p := e.p
	now := e.ctx.Time
	if p.state == Ascending && !p.controlled && (now-p.liftoffTime)*1000 <= e.jump.DoubleJumpWindowMs {
		if e.upgrade() {
			return
		}
	}
	p.request = jumpRequest{latched: true, at: now}
}

// upgrade turns the current default jump into a controlled one if the
// reserve affords more than what was already climbed.
func (e *JumpEngine) upgrade() bool {
	p := e.p
	climbed := p.liftoffY - p.Body.Bottom()
	affordable := e.AffordableHeight()
	if affordable <= climbed {
		return false
	}
	p.controlled = true
	p.request = jumpRequest{}
	delta := math.Min(affordable, climbed+e.headroom()) - climbed
	e.logger.Debug("double jump", "climbed", climbed, "delta", delta)
	e.StartJump(delta)
	return true
}

// RequestJumpStop cancels a latched request and ends a controlled ascent,
// settling the energy it spent.
func (e *JumpEngine) RequestJumpStop() {
	p := e.p
	p.request = jumpRequest{}
	if p.controlled && p.state == Ascending {
		e.releaseControl()
		if p.vy < 0 {
			p.vy = 0
		}
	}
}

func (e *JumpEngine) releaseControl() {
	p := e.p
	if !p.controlled {
		return
	}
	spent := p.controlledSpent
	p.controlled = false
	p.controlledSpent = 0
	e.SetEnergy(p.energy - spent)
}

// SetEnergy sets the reserve, floored at the configured minimum.
func (e *JumpEngine) SetEnergy(v float64) {
	v = math.Max(v, e.energy.Min)
	if v == e.p.energy {
		return
	}
	e.p.energy = v
	e.ctx.emit(Event{Type: EventEnergyChanged, Value: v, Entity: e.p.Body})
}

// AddEnergy adds gain to the reserve without going over limit. A reserve
// already above limit is kept.
func (e *JumpEngine) AddEnergy(gain, limit float64) {
	if e.p.energy >= limit {
		return
	}
	e.SetEnergy(math.Min(e.p.energy+gain, limit))
}

// StartJump launches the player toward target pixels above its current
// position and returns the computed plan.
func (e *JumpEngine) StartJump(target float64) JumpPlan {
	p := e.p
	h := target
	if j := e.jump.JitterPercent / 100; j > 0 {
		h *= 1 + e.ctx.Uniform(-j, j)
	}
	s := math.Abs(e.ctx.Scroll)
	if h <= 0 || s == 0 {
		p.vy = 0
		p.plan = JumpPlan{}
		return p.plan
	}
	dist := h / e.jump.HeightDistanceRatio
	sq := math.Sqrt(e.jump.GravityRatio)
	rise := dist / (s * (1 + 1/sq))
	v0 := 2 * h / rise
	g := 2 * h / (rise * rise)

	p.vy = -v0
	p.gravity = math.Min(g, e.jump.GravityMax)
	p.plan = JumpPlan{
		Height:       h,
		Distance:     dist,
		RiseTime:     rise,
		FallTime:     rise / sq,
		InitialSpeed: v0,
		Gravity:      g,
	}
	return p.plan
}

// Update integrates the vertical motion over dt and detects the peak.
func (e *JumpEngine) Update(dt float64) {
	p := e.p
	body := p.Body
	p.prevBottom = body.Bottom()
	if p.state == Grounded {
		return
	}

	g := p.Gravity()
	prevY := body.Pos.Y
	body.Pos.Y += p.vy*dt + 0.5*g*dt*dt
	p.vy += g * dt
	if body.Pos.Y < e.top {
		body.Pos.Y = e.top
		if p.vy < 0 {
			p.vy = 0
		}
	}

	if p.state == Ascending {
		if p.controlled && !p.frozen {
			p.controlledSpent = math.Max(p.liftoffY-body.Bottom(), 0) * p.weight
		}
		if body.Pos.Y >= prevY {
			e.peak()
		}
		return
	}

	// Safety net for a fall that skipped the floor between two frames.
	if body.Pos.Y > e.floor {
		e.Land(e.floor)
	}
}

func (e *JumpEngine) peak() {
	p := e.p
	p.state = Descending
	p.gravity = math.Min(p.gravity*e.jump.GravityRatio, e.jump.GravityMax)
	reached := p.liftoffY - p.Body.Bottom()
	if p.controlled {
		e.releaseControl()
	}
	e.ctx.emit(Event{Type: EventPeakReached, Value: reached, Entity: p.Body})
	e.logger.Debug("peak reached",
		"gravity", p.gravity,
		"jump_speed", p.plan.InitialSpeed,
		"height", reached,
		"rise_time", e.ctx.Time-p.liftoffTime)
}

// Land puts the player on a surface whose top is at surfaceY. It ends
// player control, drops control-override accessories and schedules the
// rebounce.
func (e *JumpEngine) Land(surfaceY float64) {
	p := e.p
	if p.state == Grounded {
		return
	}
	p.fromDescent = p.state == Descending
	p.Body.Pos.Y = surfaceY - p.Body.H
	p.vy = 0
	p.state = Grounded
	p.landingTime = e.ctx.Time
	p.landings++
	e.releaseControl()
	e.dropOverrides()
	e.world.FollowParents()

	e.ctx.emit(Event{Type: EventLanded, Value: surfaceY, Entity: p.Body})
	landing := p.landings
	e.ctx.After(e.jump.AcceptAfterMs/1000, func() {
		if p.landings == landing {
			e.rebounce()
		}
	})
}

// rebounce starts the next jump: controlled if a request was latched close
// enough to the landing, default otherwise.
func (e *JumpEngine) rebounce() {
	p := e.p
	if p.state != Grounded {
		return
	}
	window := (e.jump.AcceptBeforeMs + e.jump.AcceptAfterMs) / 1000
	var h float64
	if p.request.latched && math.Abs(p.landingTime-p.request.at) <= window {
		p.controlled = true
		h = math.Min(e.AffordableHeight(), e.headroom())
	} else {
		if p.request.latched {
			e.logger.Debug("jump request expired", "latched_at", p.request.at, "landed_at", p.landingTime)
		}
		p.controlled = false
		h = math.Min(e.energy.DefaultJump, math.Max(p.energy, e.energy.Min))
		if p.fromDescent {
			e.AddEnergy(e.energy.LandingGain, e.energy.LandingCap)
		}
	}
	p.request = jumpRequest{}
	p.state = Ascending
	p.liftoffY = p.Body.Bottom()
	p.liftoffTime = e.ctx.Time
	p.controlledSpent = 0
	plan := e.StartJump(h)

	e.ctx.emit(Event{Type: EventRebounced, Value: plan.Height, Entity: p.Body})
	e.logger.Debug("rebounce", "controlled", p.controlled, "height", plan.Height, "energy", p.energy)
}

// SetWeight changes the gravity multiplier. Gravity is rescaled by the
// ratio to the last non-zero weight; zero suspends it without losing it.
// Negative weights are ignored.
func (e *JumpEngine) SetWeight(w float64) {
	p := e.p
	if w < 0 {
		e.logger.Debug("negative weight ignored", "weight", w)
		return
	}
	if w > 0 {
		if p.lastWeight > 0 && w != p.lastWeight {
			p.gravity = math.Min(p.gravity*w/p.lastWeight, e.jump.GravityMax)
		}
		p.lastWeight = w
	}
	p.weight = w
}

// Wear attaches an accessory above the player's head. It reports false if
// an accessory of the same rule is already worn.
func (e *JumpEngine) Wear(acc *Entity) bool {
	p := e.p
	if acc.parent == p.Body || p.Wears(acc.Name()) {
		return false
	}
	stack := 0.0
	for _, a := range p.Accessories() {
		stack += a.H
	}
	acc.Pos.X = p.Body.Pos.X + (p.Body.W-acc.W)/2
	acc.Pos.Y = p.Body.Pos.Y - stack - acc.H
	p.Body.Attach(acc)
	e.refreshAccessories()

	if a := acc.Spec.Accessory; a != nil && a.LifetimeSeconds > 0 {
		e.ctx.After(a.LifetimeSeconds, func() {
			if acc.parent == p.Body {
				e.logger.Debug("accessory expired", "accessory", acc.Name())
				e.Remove(acc)
			}
		})
	}
	e.ctx.emit(Event{Type: EventAccessoryAttached, Name: acc.Name(), Entity: acc})
	return true
}

// Remove takes off a worn accessory and destroys it.
func (e *JumpEngine) Remove(acc *Entity) {
	if !e.p.Body.Detach(acc) {
		return
	}
	e.world.Destroy(acc)
	e.refreshAccessories()
}

// TakeProtection detaches the first protective accessory, in priority
// order, then in attachment order for unlisted ones. It returns nil if
// nothing worn protects.
func (e *JumpEngine) TakeProtection(priority []string) *Entity {
	worn := e.p.Accessories()
	pick := func(match func(*Entity) bool) *Entity {
		for _, a := range worn {
			if a.Spec.Accessory != nil && a.Spec.Accessory.Protects && match(a) {
				return a
			}
		}
		return nil
	}
	var acc *Entity
	for _, name := range priority {
		if acc = pick(func(a *Entity) bool { return a.Name() == name }); acc != nil {
			break
		}
	}
	if acc == nil {
		acc = pick(func(*Entity) bool { return true })
	}
	if acc == nil {
		return nil
	}
	e.p.Body.Detach(acc)
	e.refreshAccessories()
	return acc
}

func (e *JumpEngine) dropOverrides() {
	for _, a := range e.p.Accessories() {
		if a.Spec.Accessory != nil && a.Spec.Accessory.OverridesControl {
			e.Remove(a)
		}
	}
}

// refreshAccessories recomputes weight and control override from what is worn.
func (e *JumpEngine) refreshAccessories() {
	w := e.jump.BaseWeight
	frozen := false
	for _, a := range e.p.Accessories() {
		if cfg := a.Spec.Accessory; cfg != nil {
			w *= cfg.WeightFactor
			frozen = frozen || cfg.OverridesControl
		}
	}
	e.p.frozen = frozen
	e.SetWeight(w)
}
