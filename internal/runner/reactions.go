package runner

import "math"

// Reaction handles the player touching e. It returns false when the touch
// does not count (wrong side, wrong phase); the contact then stays armed
// and is tried again on the next frame.
type Reaction func(g *Game, e *Entity) bool

// ReactionTable maps entity kinds to their reactions. Kinds without an
// entry are ignored by collision dispatch.
type ReactionTable map[Kind]Reaction

// DefaultReactions returns the standard reaction table.
func DefaultReactions() ReactionTable {
	return ReactionTable{
		KindGround:    landOn,
		KindHazard:    hitHazard,
		KindPickup:    collectPickup,
		KindAccessory: wearAccessory,
		KindFinish:    reachFinish,
	}
}

// dispatch runs reactions for this frame's contacts. A reaction fires once
// per contact: it is re-armed when the contact ends or when it declined.
func (t ReactionTable) dispatch(g *Game, hits []*Entity) {
	current := make(map[*Entity]bool, len(hits))
	for _, e := range hits {
		if e == nil {
			panic("runner: collision reported without an entity")
		}
		current[e] = true
		if g.touching[e] || e.dead {
			continue
		}
		react, ok := t[e.Kind]
		if !ok {
			continue
		}
		if react(g, e) {
			g.touching[e] = true
		}
		if g.over {
			return
		}
	}
	for e := range g.touching {
		if !current[e] || e.dead {
			delete(g.touching, e)
		}
	}
}

// landOn lands the player if it comes down onto the top of e.
func landOn(g *Game, e *Entity) bool {
	p := g.jump.Player()
	if p.State() != Descending {
		return false
	}
	if p.PrevBottom() > e.Pos.Y+g.cfg.World.LandingTolerance {
		return false
	}
	g.jump.Land(e.Pos.Y)
	return true
}

// hitHazard consumes protection, costs energy or ends the run. Cells of
// one pattern are close on the distance axis and count as one hit.
func hitHazard(g *Game, e *Entity) bool {
	if e.Spent {
		return true
	}
	axis := g.ctx.Distance + e.Pos.X
	if g.hazardHit && math.Abs(axis-g.lastHazard) <= g.cfg.World.HazardWindow {
		e.Spent = true
		return true
	}

	if acc := g.jump.TakeProtection(g.cfg.ProtectionPriority); acc != nil {
		e.Attach(acc)
		acc.Spent = true
		g.markHazard(e, axis)
		g.ctx.emit(Event{Type: EventAccessoryConsumed, Name: acc.Name(), Entity: acc})
		g.logger.Info("protection consumed", "accessory", acc.Name(), "hazard", e.Name())
		return true
	}

	penalty := g.cfg.Energy.HazardPenalty
	if e.Spec != nil && e.Spec.EnergyPenalty != nil {
		penalty = *e.Spec.EnergyPenalty
	}
	if penalty > 0 {
		g.jump.SetEnergy(g.jump.Player().EnergyReserve() - penalty)
		g.effects.Flash(e.Pos, e.Glyph)
		g.markHazard(e, axis)
		return true
	}

	g.markHazard(e, axis)
	g.finish(false, e.Name())
	return true
}

func (g *Game) markHazard(e *Entity, axis float64) {
	e.Spent = true
	g.hazardHit = true
	g.lastHazard = axis
}

// collectPickup applies energy and speed bonuses, then removes the pickup.
func collectPickup(g *Game, e *Entity) bool {
	if spec := e.Spec; spec != nil {
		if spec.EnergyGain > 0 {
			g.jump.AddEnergy(spec.EnergyGain, g.cfg.Energy.PickupCap)
		}
		if spec.SpeedDelta != 0 {
			g.ChangeSpeed(float64(spec.SpeedDelta) * g.cfg.Speed.Unit)
		}
	}
	g.world.Destroy(e)
	return true
}

// wearAccessory puts e on the player unless one like it is already worn.
func wearAccessory(g *Game, e *Entity) bool {
	if g.jump.Wear(e) {
		g.logger.Info("accessory attached", "accessory", e.Name())
	}
	return true
}

func reachFinish(g *Game, e *Entity) bool {
	g.finish(true, e.Name())
	return true
}
