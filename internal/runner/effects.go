package runner

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/sleewja/xangaroo/internal/core"
)

// Effect is a transient visual marker, such as the flash of a hazard hit.
type Effect struct {
	Pos       core.Vec
	Glyph     rune
	Intensity float64

	tween *gween.Tween
}

// Effects owns transient markers. Each one fades out and is removed by a
// deferred callback once its duration has elapsed.
type Effects struct {
	ctx      *SimulationContext
	duration float64
	active   []*Effect
}

// NewEffects creates an effect list whose markers last duration seconds.
func NewEffects(ctx *SimulationContext, duration float64) *Effects {
	return &Effects{ctx: ctx, duration: duration}
}

// Active returns the live markers.
func (fx *Effects) Active() []*Effect {
	return fx.active
}

// Flash adds a marker at pos.
func (fx *Effects) Flash(pos core.Vec, glyph rune) *Effect {
	e := &Effect{
		Pos:       pos,
		Glyph:     glyph,
		Intensity: 1,
		tween:     gween.New(1, 0, float32(fx.duration), ease.OutQuad),
	}
	fx.active = append(fx.active, e)
	fx.ctx.After(fx.duration, func() { fx.remove(e) })
	return e
}

// Update fades the markers.
func (fx *Effects) Update(dt float64) {
	for _, e := range fx.active {
		v, _ := e.tween.Update(float32(dt))
		e.Intensity = float64(v)
	}
}

func (fx *Effects) remove(e *Effect) {
	for i, a := range fx.active {
		if a == e {
			fx.active = append(fx.active[:i], fx.active[i+1:]...)
			return
		}
	}
}

// Reset drops every marker.
func (fx *Effects) Reset() {
	clear(fx.active)
	fx.active = fx.active[:0]
}
