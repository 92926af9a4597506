package runner

import (
	"math"

	"github.com/sleewja/xangaroo/internal/config"
	"github.com/sleewja/xangaroo/internal/core"
)

// MessageSpec is an ASCII-art banner. Each non-blank character becomes one
// message cell that slides in from the right and settles in the reveal
// rectangle when the distance reaches RevealDistance.
type MessageSpec struct {
	Name           string
	Lines          [][]rune
	RevealDistance float64
	RevealX        float64
	RevealY        float64
	Cell           config.Size
	DepthFirstRow  float64
	DepthLastRow   float64
	DepthJitter    float64

	cont bool
}

// NewMessageSpec builds a banner from its configuration.
func NewMessageSpec(c config.MessageConfig) *MessageSpec {
	lines := make([][]rune, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = []rune(l)
	}
	return &MessageSpec{
		Name:           c.Name,
		Lines:          lines,
		RevealDistance: c.RevealDistance,
		RevealX:        c.RevealX,
		RevealY:        c.RevealY,
		Cell:           c.Cell,
		DepthFirstRow:  c.DepthFirstRow,
		DepthLastRow:   c.DepthLastRow,
		DepthJitter:    math.Abs(c.DepthJitter),
		cont:           true,
	}
}

// Continue reports whether the banner is still waiting to spawn.
func (m *MessageSpec) Continue() bool {
	return m.cont
}

// RowDepth interpolates the depth of a row between the first and last row.
func (m *MessageSpec) RowDepth(row int) float64 {
	if len(m.Lines) <= 1 {
		return m.DepthFirstRow
	}
	return core.Lerp(m.DepthFirstRow, m.DepthLastRow, float64(row)/float64(len(m.Lines)-1))
}

// SlowestDepth is the farthest depth any cell can get, jitter included.
func (m *MessageSpec) SlowestDepth() float64 {
	return min(m.DepthFirstRow, m.DepthLastRow) - m.DepthJitter
}

// Expansion returns the extra distance the world must scroll, beyond the
// width between the right edge and the reveal point, for the slowest cell
// to travel that width. It does not depend on the scroll speed.
func (m *MessageSpec) Expansion(p Perspective, right, scroll float64) float64 {
	vs := p.VisualSpeed(scroll, m.SlowestDepth())
	if vs == 0 {
		return 0
	}
	return (right - m.RevealX) * scroll / vs
}

// Due returns the distance at which the banner must spawn.
func (m *MessageSpec) Due(p Perspective, right, scroll float64) float64 {
	return m.RevealDistance - m.Expansion(p, right, scroll)
}

// spawnMessage places every cell so that it reaches its column of the
// reveal rectangle exactly at the reveal distance, whatever its depth.
func (s *Scheduler) spawnMessage(m *MessageSpec, distance float64) []*Entity {
	scroll := s.ctx.Scroll
	if scroll == 0 {
		return nil
	}
	expansion := m.Expansion(s.persp, s.cfg.Right(), scroll)
	nominal := m.RevealDistance - expansion
	lead := expansion / scroll

	// Positions are for the present: distance 0 while pre-populating.
	now := math.Max(distance, 0)
	late := (now - nominal) / scroll

	var cells []*Entity
	for row, line := range m.Lines {
		for col, r := range line {
			if r == ' ' {
				continue
			}
			depth := m.RowDepth(row) + s.ctx.Uniform(-m.DepthJitter, m.DepthJitter)
			v := s.persp.VisualSpeed(-scroll, depth)
			x := m.RevealX + float64(col)*m.Cell.W - v*lead + v*late
			if s.culledAt(x, v) {
				continue
			}
			cells = append(cells, s.world.Add(&Entity{
				Kind:    KindMessageCell,
				Pos:     core.Vec{X: x, Y: m.RevealY + float64(row)*m.Cell.H},
				W:       m.Cell.W,
				H:       m.Cell.H,
				Depth:   depth,
				VX:      v,
				Glyph:   r,
				Message: m,
			}))
		}
	}
	if len(cells) > 0 {
		s.ctx.emit(Event{Type: EventSpawned, Name: m.Name, Value: distance, Entity: cells[0]})
	}
	s.logger.Debug("message spawn", "message", m.Name, "distance", distance, "expansion", expansion, "cells", len(cells))
	return cells
}
