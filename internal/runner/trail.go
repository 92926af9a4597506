package runner

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
)

// TraceMarker is one footprint left behind the player.
type TraceMarker struct {
	Pos   core.Vec
	Size  float64
	Alpha float64 // 1 at the player, 0 at the left boundary
}

// Trail is a FIFO of fading footprints. Markers scroll left with the
// ground and fade out toward the left boundary.
type Trail struct {
	markers      []TraceMarker
	step         int
	size         float64
	left         float64
	fade         *gween.Tween
	lastDistance float64
}

// NewTrail creates a trail that fades between the left boundary and the
// player's x.
func NewTrail(cfg config.TrailConfig, world config.WorldConfig) *Trail {
	step := cfg.FrameStep
	if step <= 0 {
		step = 1
	}
	span := world.PlayerX - world.LeftMargin
	if span <= 0 {
		span = 1
	}
	return &Trail{
		step: step,
		size: cfg.Size,
		left: world.LeftMargin,
		fade: gween.New(0, 1, float32(span), ease.Linear),
	}
}

// Markers returns the footprints, oldest first.
func (t *Trail) Markers() []TraceMarker {
	return t.markers
}

// Reset clears the trail.
func (t *Trail) Reset() {
	t.markers = t.markers[:0]
	t.lastDistance = 0
}

// Update shifts and fades the markers and leaves a new one at feet. It
// only does work every configured number of frames.
func (t *Trail) Update(frame int, distance float64, feet core.Vec) {
	if frame%t.step != 0 {
		return
	}
	travelled := distance - t.lastDistance
	t.lastDistance = distance

	for i := range t.markers {
		m := &t.markers[i]
		m.Pos.X -= travelled
		alpha, _ := t.fade.Set(float32(m.Pos.X - t.left))
		m.Alpha = float64(alpha)
	}
	drop := 0
	for drop < len(t.markers) && t.markers[drop].Pos.X < t.left {
		drop++
	}
	t.markers = t.markers[drop:]

	t.markers = append(t.markers, TraceMarker{
		Pos:   core.Vec{X: feet.X - t.size, Y: feet.Y - t.size},
		Size:  t.size,
		Alpha: 1,
	})
}
