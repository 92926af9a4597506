package runner

// Perspective converts absolute horizontal speeds into on-screen velocities.
// Visual speed scales linearly with depth: it equals the absolute speed on
// the player's plane (depth 0) and vanishes at the background depth.
type Perspective struct {
	BackgroundDepth float64 // negative
}

// VisualSpeed returns the on-screen velocity of something moving at
// absolute speed at the given depth.
func (p Perspective) VisualSpeed(absolute, depth float64) float64 {
	return absolute * (depth - p.BackgroundDepth) / -p.BackgroundDepth
}

// Decompose splits an on-screen velocity into the part caused by the world
// scrolling at scroll and the entity's own motion.
func (p Perspective) Decompose(velocity, depth, scroll float64) (scrolled, own float64) {
	scrolled = p.VisualSpeed(-scroll, depth)
	return scrolled, velocity - scrolled
}

// RescaleVelocity returns the velocity an entity should have after the
// scroll speed changes from oldScroll to newScroll. Only the scroll part is
// scaled; the entity's own motion is kept.
func (p Perspective) RescaleVelocity(velocity, depth, oldScroll, newScroll float64) float64 {
	if oldScroll == 0 {
		return velocity + p.VisualSpeed(-newScroll, depth)
	}
	scrolled, own := p.Decompose(velocity, depth, oldScroll)
	return newScroll/oldScroll*scrolled + own
}

// Rescale applies RescaleVelocity to every free moving entity. Attached and
// static entities are left alone.
func (p Perspective) Rescale(entities []*Entity, oldScroll, newScroll float64) {
	for _, e := range entities {
		if e.Static || e.parent != nil || e.dead {
			continue
		}
		e.VX = p.RescaleVelocity(e.VX, e.Depth, oldScroll, newScroll)
	}
}
