// Package core provides the value types shared by the runner simulation and
// its hosts. It has no dependency on any UI library so that simulation code
// stays pure and testable.
package core

import "math"

// Vec is a 2D vector in world pixels. Y grows downward (screen space).
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Box is an axis-aligned bounding box in world pixels.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewBox creates a box from its top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (b Box) Intersects(o Box) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// Lerp maps t in [0, 1] onto [a, b].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// NearlyEqual compares two floats with an absolute tolerance.
func NearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
