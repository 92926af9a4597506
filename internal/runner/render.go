package runner

import (
	"fmt"
	"math"
	"sort"

	"github.com/sleewja/xangaroo/internal/core"
)

// Glyphs for markers drawn on top of entities.
const (
	TrailGlyph  = '·'
	EffectGlyph = '*'
)

// viewport maps world pixels onto screen cells. Row 0 is kept for the HUD.
type viewport struct {
	left          float64
	scaleX, scale float64
}

func newViewport(g *Game, dst *core.Screen) viewport {
	wc := g.cfg.World
	rows := dst.Height() - 1
	return viewport{
		left:   wc.LeftMargin,
		scaleX: float64(dst.Width()) / wc.Width,
		scale:  float64(rows) / (wc.Height + wc.FloorThickness),
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x - v.left) * v.scaleX))
}

func (v viewport) row(y float64) int {
	return 1 + int(math.Floor(y*v.scale))
}

// fill draws glyph over every cell the box covers, at least one.
func (v viewport) fill(dst *core.Screen, b core.Box, glyph rune, c core.Color) {
	x0, x1 := v.col(b.X), v.col(b.Right()-1e-9)
	y0, y1 := v.row(b.Y), v.row(b.Bottom()-1e-9)
	for y := y0; y <= max(y0, y1); y++ {
		if y < 1 {
			continue
		}
		for x := x0; x <= max(x0, x1); x++ {
			dst.SetColored(x, y, glyph, c)
		}
	}
}

func kindColor(k Kind) core.Color {
	switch k {
	case KindHazard:
		return core.ColorHazard
	case KindGround:
		return core.ColorGround
	case KindPickup:
		return core.ColorPickup
	case KindAccessory:
		return core.ColorAccessory
	case KindDecoration:
		return core.ColorDecoration
	case KindFinish:
		return core.ColorFinish
	case KindMessageCell:
		return core.ColorMessage
	default:
		return core.ColorDefault
	}
}

// Render draws the world, far entities first, then the trail, effects,
// player and HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 3 {
		return
	}
	v := newViewport(g, dst)

	entities := make([]*Entity, 0, g.world.Len())
	for _, e := range g.world.Entities() {
		if e != g.player && !e.dead {
			entities = append(entities, e)
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Depth < entities[j].Depth
	})
	for _, e := range entities {
		c := kindColor(e.Kind)
		if e == g.floor {
			c = core.ColorFloor
		}
		v.fill(dst, e.Box(), e.Glyph, c)
	}

	for _, m := range g.trail.Markers() {
		c := core.ColorTrail
		if m.Alpha < 0.5 {
			c = core.ColorTrailFaded
		}
		dst.SetColored(v.col(m.Pos.X), v.row(m.Pos.Y), TrailGlyph, c)
	}
	for _, fx := range g.effects.Active() {
		if fx.Intensity > 0.05 {
			dst.SetColored(v.col(fx.Pos.X), v.row(fx.Pos.Y), EffectGlyph, core.ColorEffect)
		}
	}

	pc := core.ColorPlayer
	if g.jump.Player().State() == Grounded {
		pc = core.ColorPlayerLanding
	}
	v.fill(dst, g.player.Box(), PlayerGlyph, pc)

	g.drawHUD(dst)
	switch {
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.won:
		drawCenteredMessage(dst, "FINISH!", fmt.Sprintf("Distance: %d  |  Press R to restart", int(g.ctx.Distance)))
	case g.over:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Distance: %d  |  Press R to restart", int(g.ctx.Distance)))
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	p := g.jump.Player()
	left := fmt.Sprintf(" Distance: %d ", int(g.ctx.Distance))
	dst.DrawText(1, 0, left, core.ColorHUD)
	right := fmt.Sprintf(" Speed: %.0f  Energy: %.0f ", g.ctx.Scroll, p.EnergyReserve())
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right, core.ColorHUD)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorHUD)
	dst.DrawText(boxX+(boxW-tw)/2, boxY+1, title, core.ColorHUD)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle, core.ColorHUD)
}
